package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/romkit/rom"
)

func init() {
	rootCmd.AddCommand(newRestoreCmd())
}

func newRestoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "restore <backup> <rom>",
		Short: "Restore a ROM from a zstd backup",
		Long: `The restore command decompresses a snapshot written by insert --backup
and replaces the ROM with it.

Example:
  romctl restore game.gba.zst game.gba`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRestore(args)
		},
	}
	return cmd
}

func runRestore(args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	data, err := rom.ReadBackup(f)
	if err != nil {
		return fmt.Errorf("failed to read backup: %w", err)
	}
	img := rom.New(data)
	if err := img.WriteFile(args[1]); err != nil {
		return err
	}
	printInfo("Restored %s (%s, fingerprint %016x)\n", args[1], formatSize(img.Size()), img.Fingerprint())
	return nil
}
