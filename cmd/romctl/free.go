package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/romkit/internal/format"
	"github.com/joshuapare/romkit/rom"
	"github.com/joshuapare/romkit/rom/space"
)

var freeMin int

func init() {
	cmd := newFreeCmd()
	cmd.Flags().IntVar(&freeMin, "min", format.ChunkHeaderSize, "Only list regions of at least this many bytes")
	rootCmd.AddCommand(cmd)
}

func newFreeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "free <rom>",
		Short: "List free space regions",
		Long: `The free command lists every run of 0xFF filler bytes that is not part
of a valid chunk, from the floor up.

Example:
  romctl free game.gba
  romctl free game.gba --min 4096`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFree(args)
		},
	}
	return cmd
}

type freeEntry struct {
	Addr string `json:"addr"`
	End  string `json:"end"`
	Size int    `json:"size"`
}

func runFree(args []string) error {
	f, err := floor()
	if err != nil {
		return err
	}
	img, err := rom.Load(args[0])
	if err != nil {
		return fmt.Errorf("failed to load ROM: %w", err)
	}

	regions, err := space.New(img.Bytes(), f).Regions(freeMin)
	if err != nil {
		return fmt.Errorf("failed to scan free space: %w", err)
	}

	entries := make([]freeEntry, 0, len(regions))
	total := 0
	for _, r := range regions {
		entries = append(entries, freeEntry{Addr: r.Addr.String(), End: r.End().String(), Size: r.Size})
		total += r.Size
	}

	if jsonOut {
		return printJSON(entries)
	}
	for _, e := range entries {
		printInfo("%s-%s  %s\n", e.Addr, e.End, formatSize(e.Size))
	}
	printInfo("\n%d region(s), %s free\n", len(entries), formatSize(total))
	return nil
}
