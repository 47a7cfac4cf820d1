// Package persist stores discovered solution grids on disk, one file per
// structurally distinct grid.
package persist

import (
	"fmt"
	"os"
	"path/filepath"

	"hundred/game"
)

// GridWriter writes each grid's textual rendering into a base directory,
// named by the grid's content hash. Two structurally identical grids map to
// the same file, so duplicates collapse instead of piling up.
type GridWriter struct {
	baseDir string
}

// NewGridWriter creates baseDir if needed and returns a writer into it.
func NewGridWriter(baseDir string) (*GridWriter, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create solutions directory: %w", err)
	}
	return &GridWriter{baseDir: baseDir}, nil
}

// SaveGrid writes the grid to its content-addressed file. Rewriting an
// existing file writes identical bytes, so the operation is idempotent.
func (w *GridWriter) SaveGrid(b *game.Board) error {
	path := filepath.Join(w.baseDir, fmt.Sprintf("%016x.txt", b.Hash()))
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("failed to write solution grid: %w", err)
	}
	return nil
}
