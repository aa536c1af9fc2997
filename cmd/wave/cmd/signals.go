package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceWave/pkg/extract"
)

var signalsCmd = &cobra.Command{
	Use:   "signals <vcd-file>",
	Short: "List the signal names declared in a VCD file",
	Long: `Signals decodes a VCD file and prints its fully qualified signal
names, sorted alphabetically.

Examples:
  wave signals trace.vcd`,
	Args: cobra.ExactArgs(1),
	RunE: runSignals,
}

func init() {
	rootCmd.AddCommand(signalsCmd)
}

func runSignals(cmd *cobra.Command, args []string) error {
	extractor := extract.New(extract.Options{
		Disabled: decodingDisabled(),
	})

	result, err := extractor.Extract(args[0])
	if err != nil {
		return err
	}

	for _, sig := range result.Signals {
		fmt.Println(sig.Name)
	}
	return nil
}
