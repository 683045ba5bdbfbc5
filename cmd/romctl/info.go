package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/romkit/rom"
	"github.com/joshuapare/romkit/rom/space"
)

func init() {
	rootCmd.AddCommand(newInfoCmd())
}

func newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <rom>",
		Short: "Report header, chunk and free space summary",
		Long: `The info command loads a ROM image and displays its cartridge header,
size, fingerprint, the number of chunks above the floor and the free space
available for new chunks.

Example:
  romctl info game.gba
  romctl info game.gba --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(args)
		},
	}
	return cmd
}

type infoResult struct {
	File        string `json:"file"`
	Size        int    `json:"size"`
	Title       string `json:"title,omitempty"`
	GameCode    string `json:"game_code,omitempty"`
	MakerCode   string `json:"maker_code,omitempty"`
	Version     byte   `json:"version"`
	Fingerprint string `json:"fingerprint"`
	Chunks      int    `json:"chunks"`
	ChunkBytes  int    `json:"chunk_bytes"`
	FreeRegions int    `json:"free_regions"`
	FreeBytes   int    `json:"free_bytes"`
	Largest     string `json:"largest_region,omitempty"`
	LargestSize int    `json:"largest_size"`
}

func runInfo(args []string) error {
	romPath := args[0]
	f, err := floor()
	if err != nil {
		return err
	}

	printVerbose("Loading ROM: %s\n", romPath)
	img, err := rom.Load(romPath)
	if err != nil {
		return fmt.Errorf("failed to load ROM: %w", err)
	}

	res := infoResult{
		File:        romPath,
		Size:        img.Size(),
		Fingerprint: fmt.Sprintf("%016x", img.Fingerprint()),
	}
	if h, err := img.Header(); err == nil {
		res.Title, res.GameCode, res.MakerCode, res.Version = h.Title, h.GameCode, h.MakerCode, h.Version
	} else {
		printVerbose("No cartridge header: %v\n", err)
	}

	it := rom.Chunks(img.Bytes(), f)
	for c, ok := it.Next(); ok; c, ok = it.Next() {
		res.Chunks++
		res.ChunkBytes += c.Size()
	}
	if err := it.Err(); err != nil {
		return fmt.Errorf("failed to walk chunks: %w", err)
	}

	st, err := space.New(img.Bytes(), f).Summary()
	if err != nil {
		return fmt.Errorf("failed to scan free space: %w", err)
	}
	res.FreeRegions, res.FreeBytes = st.Regions, st.Free
	if st.Regions > 0 {
		res.Largest, res.LargestSize = st.Largest.Addr.String(), st.Largest.Size
	}

	if jsonOut {
		return printJSON(res)
	}

	printInfo("\nROM Information:\n")
	printInfo("  File: %s\n", res.File)
	printInfo("  Size: %s\n", formatSize(res.Size))
	if res.Title != "" || res.GameCode != "" {
		printInfo("  Title: %s (%s)\n", res.Title, res.GameCode)
		printInfo("  Maker: %s  Version: %d\n", res.MakerCode, res.Version)
	}
	printInfo("  Fingerprint: %s\n", res.Fingerprint)
	printInfo("\nChunks:\n")
	printInfo("  Count: %d\n", res.Chunks)
	printInfo("  Bytes: %s\n", formatSize(res.ChunkBytes))
	printInfo("\nFree space:\n")
	printInfo("  Regions: %d\n", res.FreeRegions)
	printInfo("  Bytes: %s\n", formatSize(res.FreeBytes))
	if res.Largest != "" {
		printInfo("  Largest: %s (%s)\n", res.Largest, formatSize(res.LargestSize))
	}
	return nil
}
