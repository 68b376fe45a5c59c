// Package main provides the CLI entrypoint for dealdocs.
//
// dealdocs fills interactive PDF forms from deal records:
//   - extract lists a template's fields and their kinds
//   - map suggests field-to-record mappings and exports them for review
//   - fill produces a filled, still-editable document
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global flags
	verbose bool
	dump    bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "dealdocs",
	Short: "Fill PDF form templates from deal records",
	Long: `dealdocs maps the fields of an interactive PDF template onto a deal record
(buyer, co-buyer, vehicle, deal terms) and fills the template.

Mappings are inferred from field names unless a reviewed mapping file is given.
Missing data never blocks the document: gaps are reported, not fatal.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}

		var err error

		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().BoolVar(&dump, "dump", false, "Dump intermediate structures to stderr")

	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(mapCmd)
	rootCmd.AddCommand(fillCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
