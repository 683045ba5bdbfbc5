// Package rom models a GBA ROM image that stores relocatable data in
// RATS-tagged chunks.
//
// # Overview
//
// An Image owns one mutable byte buffer. Editors never write into it directly:
// a save clones the image into a private arena, mutates the arena, and
// publishes it with Publish only when every step succeeded. The committed
// buffer therefore never holds a half-written save.
//
// # Chunks
//
// A chunk is an 8-byte RATS header followed by its payload:
//
//	0x00  "STAR"
//	0x04  length      u16 LE
//	0x06  0xFFFF-len  u16 LE
//	0x08  payload[length]
//
// Unused space and erased chunks hold the filler byte 0xFF. ChunkAt decodes a
// header at a known address; FindChunk scans forward for the next valid chunk
// accepted by a predicate; Chunks walks every chunk from a floor address.
//
// # Addresses
//
// Address is a ROM offset below the 128 MiB cartridge window. Pointers stored
// in the ROM carry the 0x08000000 bus tag; Address.Pointer and FromPointer
// convert between the two so no caller masks bits by hand:
//
//	a, _ := rom.NewAddress(0x7F0008)
//	a.Pointer()              // 0x087F0008
//	rom.FromPointer(0x087F0008) // 0x7F0008
//
// # Persistence
//
// Load maps a file read-only and copies it. Flush rewrites only the ranges
// touched by published saves; WriteFile replaces the whole file atomically.
// WriteBackup stores a zstd-compressed snapshot before a destructive save.
//
// # Thread Safety
//
// Images are not thread-safe. A save owns its image for the whole call.
package rom
