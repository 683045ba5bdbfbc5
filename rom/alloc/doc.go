// Package alloc places pending RATS chunks into the free regions of a ROM image.
//
// # Protocol
//
// The Driver is a cooperative loop. It asks the free-space scanner for the next
// region and offers it to the allocator, which answers with a Result:
//
//   - Accept: the region holds the chunk at the allocator's cursor. The allocator
//     fills SaveData with the chunk and its header address and advances.
//   - InsufficientSpace: the chunk does not fit after alignment padding, the
//     8-byte header and the kind prefix. The driver offers the next region.
//   - NoMoreChunks: the sequence is exhausted and the driver returns.
//
// When the scanner runs out of regions the driver grows the image by appending
// filler, erases the chunks it placed during this pass and restarts with
// reset=true. The allocator must rewind its own cursor on that signal.
//
// The allocator can be a plain Func, matching the callback form editors use, or
// a Source iterator. Sequence is a Source that emits data chunks and then one
// manifest chunk whose payload is built from the resolved data addresses:
//
//	seq, err := alloc.NewSequence(
//	    []*alloc.Chunk{palette, tiles, mapping},
//	    &alloc.Chunk{Kind: alloc.KindManifest, Align: true},
//	    alloc.PointerTable,
//	)
//	placed, err := alloc.NewDriver(alloc.DefaultOptions()).RunSource(work, seq)
//
// # Alignment
//
// Aligned chunks start at the first 4-byte boundary at or after the region
// start. The header overhead is always 8 bytes; kinds that carry extra prefix
// bytes declare them in Kind.Prefix.
//
// # Thread Safety
//
// Drivers are not thread-safe.
package alloc
