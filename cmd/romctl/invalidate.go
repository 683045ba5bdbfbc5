package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/romkit/internal/logger"
	"github.com/joshuapare/romkit/rom"
	"github.com/joshuapare/romkit/rom/alloc"
	"github.com/joshuapare/romkit/rom/save"
	"github.com/joshuapare/romkit/rom/space"
)

var invalidatePointers bool

func init() {
	cmd := newInvalidateCmd()
	cmd.Flags().BoolVar(&invalidatePointers, "pointers", false, "Arguments are pointer slots; erase the chunks they point at")
	rootCmd.AddCommand(cmd)
}

func newInvalidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "invalidate <rom> <addr>...",
		Short: "Erase chunks",
		Long: `The invalidate command overwrites chunks with 0xFF so their space can be
reused. Addresses are chunk header addresses, or pointer slots with
--pointers. Erasing an already erased chunk is a no-op.

Example:
  romctl invalidate game.gba 0x7F0000 0x7F1000
  romctl invalidate game.gba 0x3F2A10 --pointers`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInvalidate(cmd.Context(), args)
		},
	}
	return cmd
}

func runInvalidate(ctx context.Context, args []string) error {
	romPath := args[0]
	aopts, err := allocOptions()
	if err != nil {
		return err
	}
	img, err := rom.Load(romPath)
	if err != nil {
		return fmt.Errorf("failed to load ROM: %w", err)
	}

	s := save.NewSession(img, save.Options{Alloc: aopts, Logger: logger.L})
	for _, arg := range args[1:] {
		a, err := rom.ParseAddress(arg)
		if err != nil {
			return err
		}
		if invalidatePointers {
			if err := s.InvalidatePointer(a); err != nil {
				return err
			}
			continue
		}
		s.Invalidate(a)
	}

	none := func([]byte, space.Region, *alloc.SaveData, bool) alloc.Result { return alloc.NoMoreChunks }
	rep, err := s.Save(none, nil)
	if err != nil {
		return fmt.Errorf("failed to invalidate: %w", err)
	}
	if err := s.Commit(ctx); err != nil {
		return fmt.Errorf("failed to write ROM: %w", err)
	}

	if jsonOut {
		return printJSON(map[string]any{
			"rom":         romPath,
			"invalidated": addrStrings(rep.Invalidated),
			"erased":      rep.Erased,
		})
	}
	for _, a := range rep.Invalidated {
		printInfo("  Invalidated: %s\n", a)
	}
	printInfo("\n✓ %s erased\n", formatSize(rep.Erased))
	return nil
}
