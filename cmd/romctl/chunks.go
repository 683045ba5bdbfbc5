package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/romkit/rom"
)

func init() {
	rootCmd.AddCommand(newChunksCmd())
}

func newChunksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chunks <rom>",
		Short: "List the RATS chunks in a ROM",
		Long: `The chunks command walks every valid RATS chunk at or after the floor
and prints its header address, payload address and length.

Example:
  romctl chunks game.gba
  romctl chunks game.gba --floor 0x700000 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChunks(args)
		},
	}
	return cmd
}

type chunkEntry struct {
	Addr    string `json:"addr"`
	Payload string `json:"payload"`
	Pointer string `json:"pointer"`
	Length  int    `json:"length"`
}

func runChunks(args []string) error {
	f, err := floor()
	if err != nil {
		return err
	}
	img, err := rom.Load(args[0])
	if err != nil {
		return fmt.Errorf("failed to load ROM: %w", err)
	}

	var entries []chunkEntry
	it := rom.Chunks(img.Bytes(), f)
	for c, ok := it.Next(); ok; c, ok = it.Next() {
		entries = append(entries, chunkEntry{
			Addr:    c.Addr.String(),
			Payload: c.PayloadAddr().String(),
			Pointer: fmt.Sprintf("0x%08X", c.PayloadAddr().Pointer()),
			Length:  int(c.Header.Length),
		})
	}
	walkErr := it.Err()

	if jsonOut {
		if walkErr != nil {
			return walkErr
		}
		return printJSON(entries)
	}

	for _, e := range entries {
		printInfo("%s  payload %s  ptr %s  len 0x%04X\n", e.Addr, e.Payload, e.Pointer, e.Length)
	}
	printVerbose("%d chunk(s)\n", len(entries))
	if walkErr != nil {
		return fmt.Errorf("chunk walk stopped: %w", walkErr)
	}
	return nil
}
