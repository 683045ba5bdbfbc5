// Package verify checks the structural invariants of a ROM image.
//
// # Overview
//
// The checks are used by the save path (save.Options.Verify), by romctl
// validate and by tests after modifications.
//
// Validation categories:
//   - Size: the image fits the cartridge window
//   - Chunks: every "STAR" header from the floor has a matching complement, a
//     length within the 16-bit chunk limit and a payload inside the image
//   - NoOverlap: placements written by one save never share a byte
//   - Placements: the chunks written by one save parse back with their lengths
//   - CartridgeHeader: the fixed byte of the GBA header is present
//
// # Quick Start
//
//	data, _ := os.ReadFile("game.gba")
//	if err := verify.AllInvariants(data, 0xC0, nil); err != nil {
//	    fmt.Printf("Validation failed: %v\n", err)
//	}
//
// # ValidationError
//
// All validation functions return *ValidationError on failure:
//
//	var verr *verify.ValidationError
//	if errors.As(err, &verr) {
//	    fmt.Printf("%s at 0x%X: %s\n", verr.Type, verr.Offset, verr.Message)
//	}
//
// Offset is -1 when the failure is not tied to a position.
//
// # Limitations
//
// Chunk payloads are opaque. Manifests, pointer tables and compressed layers
// are not decoded, and pointers into chunks are not followed.
package verify
