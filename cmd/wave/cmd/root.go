package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "wave",
	Short: "OpenTraceWave - VCD waveform extraction tools",
	Long: `OpenTraceWave (wave) decodes Value Change Dump (VCD) simulation traces
into normalized per-signal time series, with all times rescaled to
nanoseconds.

Examples:
  wave extract trace.vcd              # Extract and display all signals
  wave extract --json trace.vcd      # Emit the JSON response shape
  wave signals trace.vcd             # List signal names only`,
	Version: "0.1.0",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Optional .env for OTW_* settings; absence is fine.
	_ = godotenv.Load()

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// decodingDisabled reports whether decoding is switched off by policy
// via the environment.
func decodingDisabled() bool {
	switch os.Getenv("OTW_DISABLE_DECODER") {
	case "1", "true", "yes":
		return true
	}
	return false
}
