// Package rle implements the run-length scheme used for compressed layer and
// graphics data in RATS-tagged GBA ROMs.
//
// # Stream format
//
// A stream is a sequence of opcodes terminated by opcode 0:
//
//	opcode & HIGH_BIT != 0  run:  one element follows, repeated (opcode &^ HIGH_BIT) times
//	opcode & HIGH_BIT == 0  span: opcode elements follow verbatim
//	opcode == 0             end of stream
//
// Two parameterizations share the algorithm:
//
//	RLE8:  1-byte opcodes, 1-byte elements, jump limit 0x7F
//	RLE16: 2-byte opcodes, 2-byte elements (big-endian), jump limit 0x7FFF
//
// # Compression
//
// Compression is greedy. A run of three or more equal elements becomes a run
// opcode; everything else is gathered into literal spans. A run of two costs
// the same as two literals inside a span, so it is never emitted as a run.
// Runs and spans longer than the jump limit are split.
//
// # Length estimation
//
// JumpTable precomputes, for every position, the run length and the literal
// span length starting there. Walking the table yields the exact compressed
// size in O(n) without emitting bytes, so callers can test whether data fits a
// free region before compressing it:
//
//	n := rle.RLE8.CompressedLength(elems)
//	if n > region.Size {
//	    return alloc.InsufficientSpace
//	}
//
// # Layers
//
// A 16-bit tile layer is stored as a type byte (1 = RLE8, 2 = RLE16) followed by
// two streams: the low bytes of every tile, then the high bytes. CompressLayer
// picks whichever codec is smaller using the jump table.
package rle
