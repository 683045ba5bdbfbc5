package writer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileWriter_Replaces(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "game.gba")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o600))

	w := &FileWriter{Path: path, Perm: 0o644}
	require.NoError(t, w.WriteROM([]byte{1, 2, 3, 4}))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3, 4}, got)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp file left behind")
}

func TestFileWriter_MissingDir(t *testing.T) {
	w := &FileWriter{Path: filepath.Join(t.TempDir(), "nope", "game.gba")}
	require.Error(t, w.WriteROM([]byte{1}))
}
