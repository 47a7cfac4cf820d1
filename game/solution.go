package game

import (
	"fmt"

	"github.com/samber/lo"
)

// Solution pairs a perfect board with its full symmetry-and-shift orbit.
// Immutable after construction.
type Solution struct {
	Board    *Board
	Cyclic   bool
	Variants []*Board
}

// NewSolution classifies a completed board. Calling it on an incomplete
// board is a bug in the caller.
func NewSolution(b *Board) *Solution {
	return &Solution{
		Board:    b,
		Cyclic:   IsCyclic(b),
		Variants: GenerateVariants(b),
	}
}

// IsCyclic reports whether the walk's last cell is a legal jump away from
// its first, so the walk can restart from any cell along the path.
func IsCyclic(b *Board) bool {
	if !b.IsComplete() {
		panic("classifying an incomplete board")
	}
	return isJump(b.path[CellCount-1], b.path[0])
}

// isJump reports whether from→to matches one of the eight move offsets.
func isJump(from, to Position) bool {
	dx := abs(to.X - from.X)
	dy := abs(to.Y - from.Y)
	return (dx == 3 && dy == 0) || (dx == 0 && dy == 3) || (dx == 2 && dy == 2)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Flip mirrors the board across the vertical axis: column j becomes column
// GridSize-1-j. Visit numbers are preserved.
func Flip(b *Board) *Board {
	return remap(b, func(p Position) Position {
		return Position{X: GridSize - 1 - p.X, Y: p.Y}
	})
}

// Invert mirrors the board across the horizontal axis: row i becomes row
// GridSize-1-i. Visit numbers are preserved.
func Invert(b *Board) *Board {
	return remap(b, func(p Position) Position {
		return Position{X: p.X, Y: GridSize - 1 - p.Y}
	})
}

// remap rebuilds the board with every path position run through transform,
// keeping visit order intact.
func remap(b *Board, transform func(Position) Position) *Board {
	t := &Board{filled: b.filled}
	for i := 0; i < b.filled; i++ {
		p := transform(b.path[i])
		t.path[i] = p
		t.cells[p.Y][p.X] = i + 1
		t.occupied[p.Y][p.X] = true
	}
	if t.filled > 0 {
		t.last = t.path[t.filled-1]
	}
	return t
}

// Shift cyclically rotates a complete cyclic walk so it starts at path[k],
// re-numbering cells 1..100 in the rotated order. Shift(b, 0) equals b. Only
// cyclicity makes the wrap-around step a legal move, so shifting a
// non-cyclic board is a bug in the caller.
func Shift(b *Board, k int) *Board {
	if !IsCyclic(b) {
		panic("shifting a non-cyclic board")
	}
	if k < 0 || k >= CellCount {
		panic(fmt.Sprintf("shift offset %d out of range", k))
	}
	s := &Board{filled: CellCount}
	for i := 0; i < CellCount; i++ {
		p := b.path[(k+i)%CellCount]
		s.path[i] = p
		s.cells[p.Y][p.X] = i + 1
		s.occupied[p.Y][p.X] = true
	}
	s.last = s.path[CellCount-1]
	return s
}

// GenerateVariants returns the deduplication orbit of a complete board: the
// four symmetry transforms for a non-cyclic walk, or all 100 cyclic
// rotations times the four transforms (400 boards) for a cyclic one. The
// ordering is shift-major, transform-minor and is a contract: consumers that
// deduplicate by content hash rely on it being reproducible.
func GenerateVariants(b *Board) []*Board {
	if !IsCyclic(b) {
		return symmetries(b)
	}
	return lo.FlatMap(lo.RangeFrom(0, CellCount), func(k int, _ int) []*Board {
		return symmetries(Shift(b, k))
	})
}

// symmetries returns the board and its three mirror images, in the canonical
// order: identity, flip, invert, invert-of-flip.
func symmetries(b *Board) []*Board {
	return []*Board{b, Flip(b), Invert(b), Invert(Flip(b))}
}
