package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceWave/pkg/extract"
	"github.com/OpenTraceLab/OpenTraceWave/pkg/vcd"
)

var (
	asJSON     bool
	maxSamples int
	maxSize    int64
)

// response mirrors the JSON shape the original upload endpoint returned
// to its frontend.
type response struct {
	Success   bool             `json:"success"`
	Message   string           `json:"message"`
	Signals   []extract.Signal `json:"signals"`
	Timescale *vcd.Timescale   `json:"timescale,omitempty"`
}

var extractCmd = &cobra.Command{
	Use:   "extract <vcd-file>",
	Short: "Extract normalized signal data from a VCD file",
	Long: `Extract decodes a VCD file and prints each signal with its value
changes, times rescaled to nanoseconds.

Examples:
  wave extract trace.vcd
  wave extract -v --samples 5 trace.vcd
  wave extract --json trace.vcd`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().BoolVar(&asJSON, "json", false,
		"emit the {success, message, signals} JSON response")
	extractCmd.Flags().IntVar(&maxSamples, "samples", 10,
		"samples shown per signal in text output (0 = all)")
	extractCmd.Flags().Int64Var(&maxSize, "max-size", extract.DefaultMaxSize,
		"largest accepted file in bytes")
}

func runExtract(cmd *cobra.Command, args []string) error {
	filename := args[0]

	extractor := extract.New(extract.Options{
		Disabled: decodingDisabled(),
		MaxSize:  maxSize,
	})

	result, err := extractor.Extract(filename)
	if asJSON {
		return emitJSON(result, err)
	}
	if err != nil {
		return err
	}

	fmt.Printf("File: %s\n", filename)
	fmt.Printf("Status: %s\n", result.Message)
	fmt.Printf("Timescale: %g %s (normalized)\n", result.Timescale.Value, result.Timescale.Unit)
	fmt.Printf("Signals: %d total\n\n", len(result.Signals))

	for _, sig := range result.Signals {
		fmt.Printf("  %s (%d samples)\n", sig.Name, len(sig.Data))
		shown := len(sig.Data)
		if maxSamples > 0 && shown > maxSamples {
			shown = maxSamples
		}
		for _, s := range sig.Data[:shown] {
			fmt.Printf("    %12g ns  %s\n", s.Time, s.Value)
		}
		if shown < len(sig.Data) {
			fmt.Printf("    ... and %d more samples\n", len(sig.Data)-shown)
		}
	}
	return nil
}

// emitJSON prints the response object for both outcomes; decode failures
// are a handled result for JSON consumers, not a CLI error.
func emitJSON(result *extract.Result, err error) error {
	resp := response{Signals: []extract.Signal{}}
	if err != nil {
		resp.Message = err.Error()
	} else {
		resp.Success = true
		resp.Message = result.Message
		resp.Signals = result.Signals
		resp.Timescale = &result.Timescale
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}
