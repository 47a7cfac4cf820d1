package stats

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"hundred/game"
)

// FlushBatchSize is the default number of games a worker accumulates locally
// before merging into the shared counters. Larger batches mean staler global
// numbers but less lock contention.
const FlushBatchSize = 10000

// SolutionSink receives every variant grid of a discovered solution.
// Implementations need not be safe for concurrent use: Flush invokes the
// sink while holding the global lock.
type SolutionSink interface {
	SaveGrid(b *game.Board) error
}

// Local accumulates one worker's statistics between flushes. Exclusively
// owned by that worker; no synchronization.
type Local struct {
	GamesPlayed uint64
	BestScore   uint32
	Pending     []*game.Board

	flushEvery uint64
}

// NewLocal returns an empty accumulator flushing every flushEvery games,
// defaulting to FlushBatchSize when zero.
func NewLocal(flushEvery uint64) *Local {
	if flushEvery == 0 {
		flushEvery = FlushBatchSize
	}
	return &Local{flushEvery: flushEvery}
}

// Record accounts for one finished game. A perfect-score board is cloned
// onto the pending list, since the caller is about to reuse it.
func (l *Local) Record(score uint32, b *game.Board) {
	l.GamesPlayed++
	if score > l.BestScore {
		l.BestScore = score
	}
	if score == game.CellCount {
		l.appendPending(b)
	}
}

// appendPending clones the board behind a recover: under memory pressure the
// solution record is dropped, but the game counters already updated in
// Record survive and the worker keeps running.
func (l *Local) appendPending(b *game.Board) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("cause", r).Msg("dropping solution record")
		}
	}()
	l.Pending = append(l.Pending, b.Clone())
}

// ShouldFlush reports whether the accumulator has reached its batch size.
// Pacing only; flushing early or late is never incorrect.
func (l *Local) ShouldFlush() bool {
	return l.GamesPlayed > 0 && l.GamesPlayed%l.flushEvery == 0
}

func (l *Local) reset() {
	l.GamesPlayed = 0
	l.BestScore = 0
	l.Pending = l.Pending[:0]
}

// Global holds the shared search counters. All access after construction
// goes through the mutex; workers touch it once per batch.
type Global struct {
	mu             sync.Mutex
	totalGames     uint64
	bestScore      uint32
	solutionsFound uint64
	sink           SolutionSink
}

// NewGlobal returns shared counters that hand solution variants to sink.
// A nil sink discards them.
func NewGlobal(sink SolutionSink) *Global {
	if sink == nil {
		sink = discardSink{}
	}
	return &Global{sink: sink}
}

// Flush merges a worker's local accumulator into the shared counters,
// classifies any pending perfect boards and persists their variants, then
// resets the local accumulator. Classification and persistence happen under
// the lock so a non-thread-safe sink never sees concurrent calls.
func (g *Global) Flush(l *Local) {
	g.mu.Lock()
	g.totalGames += l.GamesPlayed
	if l.BestScore > g.bestScore {
		g.bestScore = l.BestScore
	}
	for _, b := range l.Pending {
		g.solutionsFound++
		sol := game.NewSolution(b)
		log.Info().
			Bool("cyclic", sol.Cyclic).
			Int("variants", len(sol.Variants)).
			Uint64("solutions", g.solutionsFound).
			Msg("found a perfect solution")
		for _, v := range sol.Variants {
			if err := g.sink.SaveGrid(v); err != nil {
				log.Error().Err(err).Msg("failed to persist solution variant")
			}
		}
	}
	g.mu.Unlock()
	l.reset()
}

// Snapshot is a point-in-time copy of the shared counters.
type Snapshot struct {
	TotalGames     uint64
	BestScore      uint32
	SolutionsFound uint64
	Taken          time.Time
}

// Snapshot reads the shared counters under the lock.
func (g *Global) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return Snapshot{
		TotalGames:     g.totalGames,
		BestScore:      g.bestScore,
		SolutionsFound: g.solutionsFound,
		Taken:          time.Now(),
	}
}

// Report is a periodic throughput sample derived from two snapshots.
type Report struct {
	RatePerSecond  float64
	BestScore      uint32
	SolutionsFound uint64
}

// DeltaReport computes the games-per-second rate between two snapshots.
func DeltaReport(prev, cur Snapshot) Report {
	elapsed := cur.Taken.Sub(prev.Taken)
	r := Report{
		BestScore:      cur.BestScore,
		SolutionsFound: cur.SolutionsFound,
	}
	if elapsed > 0 {
		r.RatePerSecond = float64(cur.TotalGames-prev.TotalGames) / elapsed.Seconds()
	}
	return r
}

type discardSink struct{}

func (discardSink) SaveGrid(*game.Board) error { return nil }
