package format

import (
	"bytes"
	"fmt"
)

// ChunkHeader is a decoded RATS header.
type ChunkHeader struct {
	Length     uint16 // Payload length in bytes
	Complement uint16 // 0xFFFF - Length on a valid header
}

// Valid reports whether the length and complement fields agree.
func (h ChunkHeader) Valid() bool {
	return int(h.Length)+int(h.Complement) == ChunkComplementSum
}

// Size returns the total chunk size including the header.
func (h ChunkHeader) Size() int {
	return ChunkHeaderSize + int(h.Length)
}

// HasMagic reports whether b[off:] starts with the chunk magic.
func HasMagic(b []byte, off int) bool {
	m, ok := Slice(b, off, ChunkMagicSize)
	return ok && bytes.Equal(m, ChunkMagic)
}

// ParseChunkHeader decodes the header at off.
//
// It returns ErrSignatureMismatch when the magic is absent, ErrTruncated when
// the header or its payload runs past the buffer, and ErrComplement when the
// length and complement disagree. The header is returned alongside
// ErrComplement so callers can report both fields.
func ParseChunkHeader(b []byte, off int) (ChunkHeader, error) {
	if !HasMagic(b, off) {
		return ChunkHeader{}, fmt.Errorf("chunk header: %w", ErrSignatureMismatch)
	}
	if !Has(b, off, ChunkHeaderSize) {
		return ChunkHeader{}, fmt.Errorf("chunk header: %w", ErrTruncated)
	}
	h := ChunkHeader{
		Length:     ReadU16(b, off+ChunkLengthOffset),
		Complement: ReadU16(b, off+ChunkComplementOffset),
	}
	if !h.Valid() {
		return h, fmt.Errorf("chunk header: length 0x%X complement 0x%X: %w",
			h.Length, h.Complement, ErrComplement)
	}
	if !Has(b, off, h.Size()) {
		return h, fmt.Errorf("chunk payload: %w", ErrTruncated)
	}
	return h, nil
}

// PutChunkHeader writes a RATS header for a payload of length bytes at off.
func PutChunkHeader(b []byte, off, length int) error {
	if length < 0 || length > MaxChunkPayload {
		return fmt.Errorf("chunk header: length %d: %w", length, ErrPayloadTooLarge)
	}
	if !Has(b, off, ChunkHeaderSize+length) {
		return fmt.Errorf("chunk header: %w", ErrTruncated)
	}
	copy(b[off:off+ChunkMagicSize], ChunkMagic)
	PutU16(b, off+ChunkLengthOffset, uint16(length))
	PutU16(b, off+ChunkComplementOffset, uint16(ChunkComplementSum-length))
	return nil
}

// IsFiller reports whether every byte of b is the filler byte.
func IsFiller(b []byte) bool {
	for _, c := range b {
		if c != Filler {
			return false
		}
	}
	return true
}

// Fill overwrites b with the filler byte.
func Fill(b []byte) {
	for i := range b {
		b[i] = Filler
	}
}
