package dirty

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTracker_Coalesce(t *testing.T) {
	dt := NewTracker()
	dt.Add(0x5010, 8)
	dt.Add(0x0000, 0x10)
	dt.Add(0x1FFF, 2)
	dt.Add(0x6000, 0x10)
	dt.Add(0x9000, 0) // ignored

	require.Equal(t, []Range{
		{Off: 0x0000, Len: 0x3000},
		{Off: 0x5000, Len: 0x2000},
	}, dt.Ranges())
}

func TestTracker_EmptyAndReset(t *testing.T) {
	dt := NewTracker()
	require.True(t, dt.Empty())
	require.Nil(t, dt.Ranges())

	dt.Add(4, 4)
	require.False(t, dt.Empty())
	dt.Reset()
	require.True(t, dt.Empty())
}

func TestTracker_Merge(t *testing.T) {
	a, b := NewTracker(), NewTracker()
	a.Add(0, 1)
	b.Add(0x2000, 1)
	a.Merge(b)
	a.Merge(nil)
	require.Len(t, a.Ranges(), 2)
}

func TestTracker_FlushWritesOnlyDirtyPages(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rom.gba")
	orig := bytes.Repeat([]byte{0x11}, 0x3000)
	require.NoError(t, os.WriteFile(path, orig, 0o600))

	data := bytes.Repeat([]byte{0x22}, 0x4000)
	dt := NewTracker()
	dt.Add(0x1004, 4)
	dt.Add(0x3000, 0x1000)

	f, err := os.OpenFile(path, os.O_RDWR, 0)
	require.NoError(t, err)
	defer f.Close()

	require.NoError(t, dt.Flush(context.Background(), f, data, FlushAuto))
	require.True(t, dt.Empty())

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Len(t, got, 0x4000)
	require.Equal(t, orig[:0x1000], got[:0x1000])
	require.Equal(t, data[0x1000:0x2000], got[0x1000:0x2000])
	require.Equal(t, orig[0x2000:0x3000], got[0x2000:0x3000])
	require.Equal(t, data[0x3000:], got[0x3000:])
}

func TestTracker_FlushCancelled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rom.gba")
	require.NoError(t, os.WriteFile(path, make([]byte, 16), 0o600))
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	require.NoError(t, err)
	defer f.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	dt := NewTracker()
	dt.Add(0, 16)
	require.ErrorIs(t, dt.Flush(ctx, f, make([]byte, 16), FlushDataOnly), context.Canceled)
	require.False(t, dt.Empty())
}
