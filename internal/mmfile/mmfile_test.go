package mmfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMap_ReadsContents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.gba")
	want := []byte{0xde, 0xad, 0xbe, 0xef, 0x42}
	require.NoError(t, os.WriteFile(path, want, 0o644))

	data, cleanup, err := Map(path, 1<<20)
	require.NoError(t, err)
	require.Equal(t, want, append([]byte(nil), data...))
	require.NoError(t, cleanup())
	require.NoError(t, cleanup(), "second cleanup is a no-op")
}

func TestMap_ZeroLength(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.gba")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	data, cleanup, err := Map(path, 16)
	require.NoError(t, err)
	require.Empty(t, data)
	require.NotNil(t, cleanup)
	require.NoError(t, cleanup())
}

func TestMap_Limit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "big.gba")
	require.NoError(t, os.WriteFile(path, make([]byte, 32), 0o644))

	_, _, err := Map(path, 16)
	require.ErrorIs(t, err, ErrTooLarge)
}

func TestMap_Missing(t *testing.T) {
	_, _, err := Map(filepath.Join(t.TempDir(), "nope.gba"), 16)
	require.ErrorIs(t, err, os.ErrNotExist)
}
