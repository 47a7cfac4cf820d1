package persist

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"hundred/game"
)

func TestGridWriter(t *testing.T) {
	t.Run("writes the grid under its content hash", func(t *testing.T) {
		dir := t.TempDir()
		w, err := NewGridWriter(dir)
		require.NoError(t, err, "the base directory should be usable")

		b := game.NewBoard()
		b.Fill(0, 0)
		b.Fill(3, 0)

		require.NoError(t, w.SaveGrid(b), "saving a grid should succeed")

		path := filepath.Join(dir, fmt.Sprintf("%016x.txt", b.Hash()))
		content, err := os.ReadFile(path)
		require.NoError(t, err, "the content-addressed file should exist")
		require.Equal(t, b.String(), string(content), "the file should hold the grid rendering")
	})

	t.Run("identical grids collapse to one file", func(t *testing.T) {
		dir := t.TempDir()
		w, err := NewGridWriter(dir)
		require.NoError(t, err)

		b := game.NewBoard()
		b.Fill(5, 5)

		require.NoError(t, w.SaveGrid(b))
		require.NoError(t, w.SaveGrid(b.Clone()))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1, "a structural duplicate should not add a file")
	})

	t.Run("distinct grids get distinct files", func(t *testing.T) {
		dir := t.TempDir()
		w, err := NewGridWriter(dir)
		require.NoError(t, err)

		a := game.NewBoard()
		a.Fill(0, 0)
		b := game.NewBoard()
		b.Fill(9, 9)

		require.NoError(t, w.SaveGrid(a))
		require.NoError(t, w.SaveGrid(b))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 2, "different grids should never share a file")
	})

	t.Run("creates the base directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "nested", "solutions")

		_, err := NewGridWriter(dir)

		require.NoError(t, err, "missing parents should be created")
		info, err := os.Stat(dir)
		require.NoError(t, err)
		require.True(t, info.IsDir(), "the base path should be a directory")
	})
}
