package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/romkit/internal/format"
	"github.com/joshuapare/romkit/internal/logger"
	"github.com/joshuapare/romkit/rom"
	"github.com/joshuapare/romkit/rom/alloc"
	"github.com/joshuapare/romkit/rom/rle"
	"github.com/joshuapare/romkit/rom/save"
)

var (
	insertOwner    string
	insertAlign    bool
	insertKind     string
	insertBackup   string
	insertReplace  bool
	insertCompress bool
)

func init() {
	cmd := newInsertCmd()
	cmd.Flags().StringVar(&insertOwner, "owner", "", "Address of the 4-byte pointer slot to patch")
	cmd.Flags().BoolVar(&insertAlign, "align", true, "Start the chunk on a 4-byte boundary")
	cmd.Flags().StringVar(&insertKind, "kind", "data", "Chunk kind (data, manifest)")
	cmd.Flags().StringVar(&insertBackup, "backup", "", "Write a zstd snapshot of the ROM here before saving")
	cmd.Flags().BoolVar(&insertReplace, "replace", true, "Invalidate the chunk the owner currently points at")
	cmd.Flags().BoolVar(&insertCompress, "compress", false, "Treat the payload as 16-bit tiles and RLE-compress it")
	rootCmd.AddCommand(cmd)
}

func newInsertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "insert <rom> <payload>",
		Short: "Save a file as a new RATS chunk",
		Long: `The insert command stores a payload file in the ROM as a new chunk.
With --owner, the chunk the owner slot points at is invalidated first and the
slot is patched with the new payload address. The ROM is modified only if the
whole save succeeds.

Example:
  romctl insert game.gba level1.rle --owner 0x3F2A10
  romctl insert game.gba tiles.bin --owner 0x3F2A10 --compress --backup game.gba.zst`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInsert(cmd.Context(), args)
		},
	}
	return cmd
}

func chunkKind(name string) (alloc.Kind, error) {
	switch name {
	case alloc.KindData.Name:
		return alloc.KindData, nil
	case alloc.KindManifest.Name:
		return alloc.KindManifest, nil
	default:
		return alloc.Kind{}, fmt.Errorf("unknown chunk kind: %s (must be data or manifest)", name)
	}
}

func runInsert(ctx context.Context, args []string) error {
	romPath, payloadPath := args[0], args[1]

	kind, err := chunkKind(insertKind)
	if err != nil {
		return err
	}
	aopts, err := allocOptions()
	if err != nil {
		return err
	}
	payload, err := os.ReadFile(payloadPath)
	if err != nil {
		return err
	}
	if insertCompress {
		if len(payload)%2 != 0 {
			return fmt.Errorf("%s: odd length %d, expected 16-bit tiles", payloadPath, len(payload))
		}
		tiles := make([]uint16, len(payload)/2)
		for i := range tiles {
			tiles[i] = format.ReadU16(payload, i*2)
		}
		payload = rle.CompressLayer(tiles)
		printVerbose("Compressed %d tiles to %d bytes\n", len(tiles), len(payload))
	}

	printVerbose("Loading ROM: %s\n", romPath)
	img, err := rom.Load(romPath)
	if err != nil {
		return fmt.Errorf("failed to load ROM: %w", err)
	}
	if insertBackup != "" {
		if err := img.Backup(insertBackup); err != nil {
			return err
		}
		printVerbose("Backup written: %s\n", insertBackup)
	}

	s := save.NewSession(img, save.Options{Alloc: aopts, Verify: true, Logger: logger.L})
	c := s.NewChunk(kind, payload, insertAlign)
	if insertOwner != "" {
		owner, err := rom.ParseAddress(insertOwner)
		if err != nil {
			return fmt.Errorf("--owner: %w", err)
		}
		if insertReplace {
			if err := s.InvalidatePointer(owner); err != nil {
				return err
			}
		}
		c.Owner = &owner
	}

	seq, err := alloc.NewSequence([]*alloc.Chunk{c}, nil, nil)
	if err != nil {
		return err
	}
	rep, err := s.SaveSource(seq, nil)
	if err != nil {
		return fmt.Errorf("failed to save chunk: %w", err)
	}
	if err := s.Commit(ctx); err != nil {
		return fmt.Errorf("failed to write ROM: %w", err)
	}

	p := rep.Placements[0]
	if jsonOut {
		return printJSON(map[string]any{
			"rom":         romPath,
			"addr":        p.Addr.String(),
			"payload":     p.PayloadAddr().String(),
			"length":      c.Length(),
			"invalidated": addrStrings(rep.Invalidated),
			"grown":       rep.Grown,
			"fingerprint": fmt.Sprintf("%016x", rep.Fingerprint),
		})
	}

	printInfo("\nInserted %s chunk into %s:\n", kind.Name, romPath)
	printInfo("  Header: %s\n", p.Addr)
	printInfo("  Payload: %s (ptr 0x%08X)\n", p.PayloadAddr(), p.PayloadAddr().Pointer())
	printInfo("  Length: %d bytes\n", c.Length())
	for _, a := range rep.Invalidated {
		printInfo("  Invalidated: %s\n", a)
	}
	if rep.Grown > 0 {
		printInfo("  Grown: %s\n", formatSize(rep.Grown))
	}
	printInfo("\n✓ Chunk saved\n")
	return nil
}

func addrStrings(addrs []rom.Address) []string {
	out := make([]string, len(addrs))
	for i, a := range addrs {
		out[i] = a.String()
	}
	return out
}
