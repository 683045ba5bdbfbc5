package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/romkit/internal/format"
	"github.com/joshuapare/romkit/rom"
	"github.com/joshuapare/romkit/rom/alloc"
)

const (
	testOwner    = rom.Address(0x100)
	testChunk    = rom.Address(0x200)
	testROMSize  = 0x400
	testChunkLen = 16
)

// writeROM creates a small ROM in a temp dir: a cartridge header, an owner
// slot at testOwner pointing at a 16-byte chunk at testChunk, and filler from
// the end of that chunk to the end of the image.
func writeROM(t *testing.T) string {
	t.Helper()
	data := make([]byte, testROMSize)
	copy(data[format.GBATitleOffset:], "ROMKIT TEST")
	copy(data[format.GBAGameCodeOffset:], "RKTE")
	copy(data[format.GBAMakerCodeOffset:], "01")
	data[format.GBAFixedValueOffset] = format.GBAFixedValue

	require.NoError(t, format.PutChunkHeader(data, testChunk.Offset(), testChunkLen))
	copy(data[testChunk.Offset()+format.ChunkHeaderSize:], bytes.Repeat([]byte{0xAA}, testChunkLen))
	format.PutU32(data, testOwner.Offset(), (testChunk + format.ChunkHeaderSize).Pointer())
	format.Fill(data[testChunk.Offset()+format.ChunkHeaderSize+testChunkLen:])

	path := filepath.Join(t.TempDir(), "test.gba")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

// resetFlags restores every global flag to its default.
func resetFlags() {
	verbose, quiet, jsonOut = false, false, false
	floorFlag = "0xC0"
	growStep = alloc.DefaultGrowStep
	freeMin = format.ChunkHeaderSize
	decompressCount = 0
	insertOwner, insertAlign, insertKind, insertBackup = "", true, "data", ""
	insertReplace, insertCompress = true, false
	invalidatePointers = false
}

// captureOutput captures stdout while running a function
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	origStdout := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	fnErr := fn()

	w.Close()
	os.Stdout = origStdout

	var buf bytes.Buffer
	_, err = buf.ReadFrom(r)
	require.NoError(t, err)
	return buf.String(), fnErr
}

// decodeJSON unmarshals captured output into v.
func decodeJSON(t *testing.T, output string, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal([]byte(output), v), "output: %s", output)
}
