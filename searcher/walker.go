package searcher

import (
	"lukechampine.com/frand"

	"hundred/game"
)

// Rand is the uniform source a walker draws from. The production source is
// frand; tests inject a seeded generator for reproducible walks. Uniformity
// over candidates matters: a biased pick skews which solutions the Monte
// Carlo search can reach.
type Rand interface {
	Intn(n int) int
}

// Walker drives single games to completion or a dead end. Owned by one
// worker goroutine; it carries no state beyond its random source and a
// reusable candidate buffer.
type Walker struct {
	rng Rand
	buf []game.Position
}

// NewWalker returns a walker over rng, defaulting to a fresh frand generator
// when rng is nil.
func NewWalker(rng Rand) *Walker {
	if rng == nil {
		rng = frand.New()
	}
	return &Walker{
		rng: rng,
		buf: make([]game.Position, 0, len(game.MoveOffsets)),
	}
}

// PlayRandomGame fills b from a uniformly random start cell, jumping to a
// uniformly random legal candidate until the board is complete or no
// candidate remains. The returned score is the number of cells visited; a
// dead end is a normal outcome, not an error. There is no backtracking, so
// the loop runs at most once per cell.
func (w *Walker) PlayRandomGame(b *game.Board) uint32 {
	b.Fill(w.rng.Intn(game.GridSize), w.rng.Intn(game.GridSize))
	for !b.IsComplete() {
		w.buf = b.CandidateMoves(w.buf)
		if len(w.buf) == 0 {
			break
		}
		next := w.buf[w.rng.Intn(len(w.buf))]
		b.Fill(next.X, next.Y)
	}
	return uint32(b.Score())
}
