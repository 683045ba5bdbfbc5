package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/romkit/internal/logger"
	"github.com/joshuapare/romkit/rom"
	"github.com/joshuapare/romkit/rom/alloc"
)

var (
	// Global flags
	verbose   bool
	quiet     bool
	jsonOut   bool
	floorFlag string
	growStep  int
	logDir    string
)

var rootCmd = &cobra.Command{
	Use:   "romctl",
	Short: "Inspect and edit RATS chunks in GBA ROM images",
	Long: `romctl is a tool for inspecting and modifying the RATS-protected data
chunks of a GBA ROM image. It lists chunks and free space, validates chunk
headers, compresses level layers and saves new chunks with copy-on-save
semantics.`,
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logger.Init(logger.Options{
			Enabled: verbose && !quiet,
			LogDir:  logDir,
			Level:   slog.LevelDebug,
		})
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output and debug logging")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().StringVar(&floorFlag, "floor", "0xC0", "Lowest address scanned for chunks and free space")
	rootCmd.PersistentFlags().IntVar(&growStep, "grow-step", alloc.DefaultGrowStep, "Bytes appended when a save runs out of space (negative disables growth)")
	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", "", "Write JSON debug logs to this directory instead of stderr")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// floor parses the --floor flag.
func floor() (rom.Address, error) {
	a, err := rom.ParseAddress(floorFlag)
	if err != nil {
		return 0, fmt.Errorf("--floor: %w", err)
	}
	return a, nil
}

// allocOptions builds driver options from the global flags.
func allocOptions() (alloc.Options, error) {
	f, err := floor()
	if err != nil {
		return alloc.Options{}, err
	}
	opts := alloc.DefaultOptions()
	opts.Floor = f
	opts.GrowStep = growStep
	opts.Logger = logger.L
	return opts, nil
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...any) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...any) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// formatSize renders a byte count the way info prints file sizes.
func formatSize(n int) string {
	switch {
	case n < 1024:
		return fmt.Sprintf("%d bytes", n)
	case n < 1024*1024:
		return fmt.Sprintf("%.1f KB", float64(n)/1024)
	default:
		return fmt.Sprintf("%.1f MB", float64(n)/(1024*1024))
	}
}
