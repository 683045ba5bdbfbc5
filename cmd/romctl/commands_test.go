package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/romkit/internal/format"
	"github.com/joshuapare/romkit/rom"
)

func TestInfoCommand(t *testing.T) {
	resetFlags()
	path := writeROM(t)

	output, err := captureOutput(t, func() error { return runInfo([]string{path}) })
	require.NoError(t, err)
	require.Contains(t, output, "ROMKIT TEST (RKTE)")
	require.Contains(t, output, "Count: 1")

	jsonOut = true
	output, err = captureOutput(t, func() error { return runInfo([]string{path}) })
	require.NoError(t, err)

	var res infoResult
	decodeJSON(t, output, &res)
	require.Equal(t, testROMSize, res.Size)
	require.Equal(t, "RKTE", res.GameCode)
	require.Equal(t, 1, res.Chunks)
	require.Equal(t, format.ChunkHeaderSize+testChunkLen, res.ChunkBytes)
	require.Equal(t, testROMSize-0x218, res.FreeBytes)
	require.Equal(t, "0x000218", res.Largest)
}

func TestChunksCommand(t *testing.T) {
	resetFlags()
	jsonOut = true
	path := writeROM(t)

	output, err := captureOutput(t, func() error { return runChunks([]string{path}) })
	require.NoError(t, err)

	var entries []chunkEntry
	decodeJSON(t, output, &entries)
	require.Len(t, entries, 1)
	require.Equal(t, "0x000200", entries[0].Addr)
	require.Equal(t, "0x08000208", entries[0].Pointer)
	require.Equal(t, testChunkLen, entries[0].Length)
}

func TestFreeCommand(t *testing.T) {
	resetFlags()
	jsonOut = true
	path := writeROM(t)

	output, err := captureOutput(t, func() error { return runFree([]string{path}) })
	require.NoError(t, err)
	var entries []freeEntry
	decodeJSON(t, output, &entries)
	require.Len(t, entries, 1)
	require.Equal(t, testROMSize-0x218, entries[0].Size)

	freeMin = 0x1000
	output, err = captureOutput(t, func() error { return runFree([]string{path}) })
	require.NoError(t, err)
	decodeJSON(t, output, &entries)
	require.Empty(t, entries)
}

func TestValidateCommand(t *testing.T) {
	resetFlags()
	path := writeROM(t)

	output, err := captureOutput(t, func() error { return runValidate([]string{path}) })
	require.NoError(t, err)
	require.Contains(t, output, "Chunk headers valid")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	copy(data[0x300:], "STAR\x10\x00\x00\x00")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	_, err = captureOutput(t, func() error { return runValidate([]string{path}) })
	require.Error(t, err)
}

func TestCompressRoundTrip(t *testing.T) {
	resetFlags()
	dir := t.TempDir()
	in := filepath.Join(dir, "layer.bin")
	packed := filepath.Join(dir, "layer.rle")
	out := filepath.Join(dir, "layer.out")

	raw := make([]byte, 0x200)
	for i := 0; i < len(raw); i += 2 {
		format.PutU16(raw, i, uint16(0x1000+i/64))
	}
	require.NoError(t, os.WriteFile(in, raw, 0o644))

	_, err := captureOutput(t, func() error { return runCompress([]string{in, packed}) })
	require.NoError(t, err)
	st, err := os.Stat(packed)
	require.NoError(t, err)
	require.Less(t, st.Size(), int64(len(raw)))

	_, err = captureOutput(t, func() error { return runDecompress([]string{packed, out}) })
	require.Error(t, err, "--count is required")

	decompressCount = len(raw) / 2
	_, err = captureOutput(t, func() error { return runDecompress([]string{packed, out}) })
	require.NoError(t, err)
	got, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Equal(t, raw, got)
}

func TestInsertCommand(t *testing.T) {
	resetFlags()
	path := writeROM(t)
	dir := filepath.Dir(path)
	payload := filepath.Join(dir, "payload.bin")
	require.NoError(t, os.WriteFile(payload, []byte("new level data!!"), 0o644))

	insertOwner = testOwner.String()
	insertBackup = filepath.Join(dir, "test.gba.zst")
	_, err := captureOutput(t, func() error {
		return runInsert(context.Background(), []string{path, payload})
	})
	require.NoError(t, err)

	img, err := rom.Load(path)
	require.NoError(t, err)
	ptr, err := img.ReadPointer(testOwner)
	require.NoError(t, err)

	// The old chunk was erased, so the new one reuses its space.
	require.Equal(t, testChunk+format.ChunkHeaderSize, ptr)
	c, err := rom.ChunkAt(img.Bytes(), testChunk)
	require.NoError(t, err)
	require.Equal(t, []byte("new level data!!"), c.Payload)

	// The backup holds the original image.
	restored := filepath.Join(dir, "restored.gba")
	_, err = captureOutput(t, func() error { return runRestore([]string{insertBackup, restored}) })
	require.NoError(t, err)
	orig, err := rom.Load(restored)
	require.NoError(t, err)
	c, err = rom.ChunkAt(orig.Bytes(), testChunk)
	require.NoError(t, err)
	require.Equal(t, byte(0xAA), c.Payload[0])
}

func TestInsertCommand_Grows(t *testing.T) {
	resetFlags()
	path := writeROM(t)
	payload := filepath.Join(filepath.Dir(path), "big.bin")
	require.NoError(t, os.WriteFile(payload, make([]byte, 0x300), 0o644))

	insertReplace = false
	growStep = 0x400
	_, err := captureOutput(t, func() error {
		return runInsert(context.Background(), []string{path, payload})
	})
	require.NoError(t, err)

	st, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, int64(testROMSize+0x400), st.Size())

	growStep = -1
	_, err = captureOutput(t, func() error {
		return runInsert(context.Background(), []string{path, payload})
	})
	require.ErrorIs(t, err, rom.ErrInsufficientSpace)
}

func TestInvalidateCommand(t *testing.T) {
	resetFlags()
	path := writeROM(t)

	invalidatePointers = true
	_, err := captureOutput(t, func() error {
		return runInvalidate(context.Background(), []string{path, testOwner.String()})
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, format.IsFiller(data[testChunk.Offset():]))

	// Erasing again is a no-op.
	invalidatePointers = false
	output, err := captureOutput(t, func() error {
		return runInvalidate(context.Background(), []string{path, testChunk.String()})
	})
	require.NoError(t, err)
	require.Contains(t, output, "0 bytes erased")
}
