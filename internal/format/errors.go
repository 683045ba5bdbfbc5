package format

import "errors"

var (
	// ErrSignatureMismatch indicates the bytes at an offset are not a chunk magic.
	ErrSignatureMismatch = errors.New("format: signature mismatch")
	// ErrTruncated indicates the buffer lacked the bytes required for a structure.
	ErrTruncated = errors.New("format: truncated buffer")
	// ErrComplement indicates a chunk header whose length and complement disagree.
	ErrComplement = errors.New("format: length/complement mismatch")
	// ErrPayloadTooLarge indicates a payload that does not fit the 16-bit length field.
	ErrPayloadTooLarge = errors.New("format: payload exceeds chunk limit")
)
