package rom

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/romkit/internal/format"
)

// blank returns n filler bytes.
func blank(n int) []byte {
	b := make([]byte, n)
	format.Fill(b)
	return b
}

// putChunk writes a valid chunk carrying payload at off.
func putChunk(t testing.TB, data []byte, off int, payload []byte) {
	t.Helper()
	require.NoError(t, format.PutChunkHeader(data, off, len(payload)))
	copy(data[off+format.ChunkHeaderSize:], payload)
}
