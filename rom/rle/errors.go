package rle

import "errors"

var (
	// ErrOverrun indicates a run or span that would write past the declared output size.
	ErrOverrun = errors.New("rle: output overrun")

	// ErrTruncated indicates the stream ended before an opcode or its literals.
	ErrTruncated = errors.New("rle: truncated stream")

	// ErrElementRange indicates an element that does not fit the codec's element width.
	ErrElementRange = errors.New("rle: element out of range")

	// ErrOutputSize indicates an output size that is negative or not a multiple of the element width.
	ErrOutputSize = errors.New("rle: bad output size")

	// ErrLayerType indicates a layer whose leading type byte names no codec.
	ErrLayerType = errors.New("rle: unknown layer type")
)
