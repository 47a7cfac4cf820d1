package game

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/cespare/xxhash"
)

const (
	// GridSize is the side length of the playing field.
	GridSize = 10
	// CellCount is the number of cells a perfect walk visits.
	CellCount = GridSize * GridSize
)

// Position identifies a cell on the grid. Immutable value type.
type Position struct {
	X int
	Y int
}

// Offset is a relative jump between two cells.
type Offset struct {
	DX int
	DY int
}

// MoveOffsets are the eight jumps the rules allow: exactly three cells
// orthogonally or exactly two cells diagonally.
var MoveOffsets = [8]Offset{
	{3, 0}, {-3, 0}, {0, 3}, {0, -3},
	{2, 2}, {2, -2}, {-2, 2}, {-2, -2},
}

// Board holds the state of one walk across the grid. Cells carry their visit
// order (0 = unvisited, 1..100 = move index). A cell is never unfilled: the
// walk is monotonic, there is no backtracking.
type Board struct {
	cells    [GridSize][GridSize]int
	occupied [GridSize][GridSize]bool
	filled   int
	last     Position
	path     [CellCount]Position
}

// NewBoard returns an empty board.
func NewBoard() *Board {
	return &Board{}
}

// IsLegalTarget reports whether (x, y) is on the grid and unvisited.
func (b *Board) IsLegalTarget(x, y int) bool {
	if x < 0 || x >= GridSize || y < 0 || y >= GridSize {
		return false
	}
	return !b.occupied[y][x]
}

// Fill marks (x, y) as the next visited cell. The target must be legal;
// filling an occupied or out-of-bounds cell is a bug in the caller.
func (b *Board) Fill(x, y int) {
	if !b.IsLegalTarget(x, y) {
		panic(fmt.Sprintf("illegal fill at (%d, %d)", x, y))
	}
	b.filled++
	b.cells[y][x] = b.filled
	b.occupied[y][x] = true
	b.last = Position{X: x, Y: y}
	b.path[b.filled-1] = b.last
}

// CandidateMoves appends every legal target reachable from the last visited
// cell to buf and returns it. Callers reuse buf across games to avoid
// per-move allocations. Meaningless on an empty board: the first cell is
// chosen freely, not by offset.
func (b *Board) CandidateMoves(buf []Position) []Position {
	buf = buf[:0]
	for _, o := range MoveOffsets {
		x := b.last.X + o.DX
		y := b.last.Y + o.DY
		if b.IsLegalTarget(x, y) {
			buf = append(buf, Position{X: x, Y: y})
		}
	}
	return buf
}

// IsComplete reports whether every cell has been visited.
func (b *Board) IsComplete() bool {
	return b.filled == CellCount
}

// Score is the number of cells visited so far.
func (b *Board) Score() int {
	return b.filled
}

// Last returns the most recently visited cell.
func (b *Board) Last() Position {
	return b.last
}

// Cell returns the visit-order number at (x, y), 0 if unvisited.
func (b *Board) Cell(x, y int) int {
	return b.cells[y][x]
}

// Path returns the visited cells in visit order. The returned slice aliases
// the board's internal storage and is invalidated by Fill or Reset.
func (b *Board) Path() []Position {
	return b.path[:b.filled]
}

// Clone returns an independent copy of the board.
func (b *Board) Clone() *Board {
	c := *b
	return &c
}

// Reset clears the board for the next game.
func (b *Board) Reset() {
	*b = Board{}
}

// Equal reports cell-by-cell and occupancy-by-occupancy equality.
func (b *Board) Equal(other *Board) bool {
	return b.cells == other.cells &&
		b.occupied == other.occupied &&
		b.filled == other.filled
}

// Hash returns a content hash of the board, stable across runs for identical
// grids. Used by the persistence layer to deduplicate variant files.
func (b *Board) Hash() uint64 {
	hasher := xxhash.New()
	for y := 0; y < GridSize; y++ {
		for x := 0; x < GridSize; x++ {
			binary.Write(hasher, binary.LittleEndian, int64(b.cells[y][x]))
			binary.Write(hasher, binary.LittleEndian, b.occupied[y][x])
		}
	}
	binary.Write(hasher, binary.LittleEndian, int64(b.filled))
	return hasher.Sum64()
}

// String renders the grid as rows of right-aligned visit numbers.
func (b *Board) String() string {
	var sb strings.Builder
	for y := 0; y < GridSize; y++ {
		for x := 0; x < GridSize; x++ {
			if x > 0 {
				sb.WriteByte(' ')
			}
			fmt.Fprintf(&sb, "%3d", b.cells[y][x])
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
