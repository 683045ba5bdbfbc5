// Package format houses the low-level layout of RATS-tagged ROM images: the
// chunk header, the filler byte, the GBA cartridge header and the pointer
// tagging scheme. Higher-level packages build on these helpers and never
// hardcode offsets themselves.
package format

var (
	// ChunkMagic is the four-byte signature at the start of every RATS chunk.
	// Layout:
	//   0x00  'S' 'T' 'A' 'R'
	ChunkMagic = []byte{'S', 'T', 'A', 'R'}
)

const (
	// ChunkHeaderSize is the size of a RATS header: magic, length, complement.
	//
	//	Offset  Size  Description
	//	0x00    4     "STAR"
	//	0x04    2     payload length (u16 LE)
	//	0x06    2     0xFFFF - length (u16 LE)
	//	0x08    ...   payload
	ChunkHeaderSize = 8

	// ChunkMagicSize is the length of ChunkMagic.
	ChunkMagicSize = 4

	// ChunkLengthOffset is the offset of the payload length field.
	ChunkLengthOffset = 4

	// ChunkComplementOffset is the offset of the complement field.
	ChunkComplementOffset = 6

	// ChunkComplementSum is the value length + complement must add up to.
	ChunkComplementSum = 0xFFFF

	// MaxChunkPayload is the largest payload a single chunk can carry.
	// The header is counted against the 16-bit field so a chunk never spans
	// more than 64 KiB.
	MaxChunkPayload = ChunkComplementSum - ChunkHeaderSize

	// Filler is the byte used for unused ROM space and erased chunks.
	Filler = 0xFF

	// AddressCeiling is the first offset past the 128 MiB GBA cartridge window.
	AddressCeiling = 0x8000000

	// PointerTag marks a ROM offset as a cartridge bus address (0x08000000).
	PointerTag = 0x8000000

	// PointerOffsetMask selects bits 0-26 of a tagged pointer.
	PointerOffsetMask = 0x7FFFFFF

	// PointerLowMask selects every bit a patched pointer replaces (offset + tag).
	PointerLowMask = 0xFFFFFFF

	// PointerSize is the width of a pointer slot in bytes.
	PointerSize = 4

	// ChunkAlignment is the alignment of aligned chunks.
	ChunkAlignment = 4

	// ChunkAlignmentMask is ChunkAlignment - 1.
	ChunkAlignmentMask = ChunkAlignment - 1
)

// GBA cartridge header fields.
const (
	// GBAHeaderSize is the size of the cartridge header at offset 0.
	GBAHeaderSize = 0xC0

	// GBATitleOffset is the offset of the 12-byte game title.
	GBATitleOffset = 0xA0
	// GBATitleSize is the length of the game title field.
	GBATitleSize = 12

	// GBAGameCodeOffset is the offset of the 4-byte game code.
	GBAGameCodeOffset = 0xAC
	// GBAGameCodeSize is the length of the game code field.
	GBAGameCodeSize = 4

	// GBAMakerCodeOffset is the offset of the 2-byte maker code.
	GBAMakerCodeOffset = 0xB0
	// GBAMakerCodeSize is the length of the maker code field.
	GBAMakerCodeSize = 2

	// GBAVersionOffset is the offset of the software version byte.
	GBAVersionOffset = 0xBC

	// GBAFixedValueOffset holds the fixed value 0x96.
	GBAFixedValueOffset = 0xB2
	// GBAFixedValue is the value every licensed header carries at 0xB2.
	GBAFixedValue = 0x96
)
