package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/romkit/internal/format"
	"github.com/joshuapare/romkit/rom/rle"
)

var decompressCount int

func init() {
	rootCmd.AddCommand(newCompressCmd())

	cmd := newDecompressCmd()
	cmd.Flags().IntVar(&decompressCount, "count", 0, "Number of 16-bit tiles in the layer (required)")
	rootCmd.AddCommand(cmd)
}

func newCompressCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compress <in> <out>",
		Short: "Compress a raw tile layer",
		Long: `The compress command reads a layer of little-endian 16-bit tiles and
writes it in the two-plane RLE layer format, choosing RLE8 or RLE16
depending on which is smaller.

Example:
  romctl compress level1.bin level1.rle`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompress(args)
		},
	}
	return cmd
}

func newDecompressCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decompress <in> <out>",
		Short: "Decompress an RLE tile layer",
		Long: `The decompress command reverses compress. The layer format does not
store its tile count, so it must be given with --count.

Example:
  romctl decompress level1.rle level1.bin --count 4096`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDecompress(args)
		},
	}
	return cmd
}

func runCompress(args []string) error {
	raw, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	if len(raw)%2 != 0 {
		return fmt.Errorf("%s: odd length %d, expected 16-bit tiles", args[0], len(raw))
	}

	tiles := make([]uint16, len(raw)/2)
	for i := range tiles {
		tiles[i] = format.ReadU16(raw, i*2)
	}
	out := rle.CompressLayer(tiles)
	if err := os.WriteFile(args[1], out, 0o644); err != nil {
		return err
	}

	codec := "rle8"
	if len(out) > 0 && out[0] == rle.LayerRLE16 {
		codec = "rle16"
	}
	if jsonOut {
		return printJSON(map[string]any{
			"tiles":      len(tiles),
			"input":      len(raw),
			"compressed": len(out),
			"codec":      codec,
		})
	}
	printInfo("%d tiles: %d -> %d bytes (%s)\n", len(tiles), len(raw), len(out), codec)
	return nil
}

func runDecompress(args []string) error {
	if decompressCount <= 0 {
		return errors.New("--count is required")
	}
	src, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	tiles, err := rle.DecompressLayer(src, decompressCount)
	if err != nil {
		return fmt.Errorf("failed to decompress %s: %w", args[0], err)
	}

	raw := make([]byte, len(tiles)*2)
	for i, v := range tiles {
		format.PutU16(raw, i*2, v)
	}
	if err := os.WriteFile(args[1], raw, 0o644); err != nil {
		return err
	}
	printInfo("%d tiles: %d -> %d bytes\n", len(tiles), len(src), len(raw))
	return nil
}
