package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/romkit/rom"
	"github.com/joshuapare/romkit/rom/verify"
)

func init() {
	rootCmd.AddCommand(newValidateCmd())
}

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <rom>",
		Short: "Validate chunk headers",
		Long: `The validate command checks every RATS chunk at or after the floor:
the length and complement must agree, the length must fit the chunk limit
and the payload must lie inside the image. A missing cartridge header is
reported as a warning.

Example:
  romctl validate game.gba
  romctl validate game.gba --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(args)
		},
	}
	return cmd
}

func runValidate(args []string) error {
	romPath := args[0]
	f, err := floor()
	if err != nil {
		return err
	}

	printVerbose("Validating ROM: %s\n", romPath)
	img, err := rom.Load(romPath)
	if err != nil {
		return fmt.Errorf("failed to load ROM: %w", err)
	}

	verr := verify.AllInvariants(img.Bytes(), f, nil)
	herr := verify.CartridgeHeader(img.Bytes())

	result := map[string]any{
		"file":  romPath,
		"valid": verr == nil,
	}
	if verr != nil {
		result["error"] = verr.Error()
	}
	if herr != nil {
		result["warning"] = herr.Error()
	}

	if jsonOut {
		if err := printJSON(result); err != nil {
			return err
		}
		return verr
	}

	printInfo("\nValidating %s...\n\n", romPath)
	if herr != nil {
		printInfo("  ! %v\n", herr)
	}
	if verr != nil {
		printInfo("  ✗ %v\n", verr)
		return fmt.Errorf("validation failed: %w", verr)
	}
	printInfo("  ✓ Chunk headers valid\n")
	return nil
}
