package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"dealdocs/internal/mapping"
	"dealdocs/internal/record"
	"dealdocs/internal/report"
)

var (
	fillRecord   string
	fillMappings string
	fillOutput   string
	fillJSON     bool
	fillXLSX     string
)

var fillCmd = &cobra.Command{
	Use:   "fill <template.pdf>",
	Short: "Fill the template from a record",
	Long: `fill resolves every mapped field against the record (JSON or YAML) and
writes the filled document. Without --mappings the template is auto-mapped.

Skipped fields and missing required data are reported; they do not stop the
document from being written.`,
	Args: cobra.ExactArgs(1),
	RunE: runFill,
}

func init() {
	fillCmd.Flags().StringVarP(&fillRecord, "record", "r", "", "Record file, .json or .yaml (required)")
	fillCmd.Flags().StringVarP(&fillMappings, "mappings", "m", "", "Reviewed mapping file (.yaml)")
	fillCmd.Flags().StringVarP(&fillOutput, "output", "o", "", "Filled PDF path (required)")
	fillCmd.Flags().BoolVar(&fillJSON, "json", false, "Print the fill report as JSON")
	fillCmd.Flags().StringVar(&fillXLSX, "xlsx", "", "Write a fill report workbook to this path")
	_ = fillCmd.MarkFlagRequired("record")
	_ = fillCmd.MarkFlagRequired("output")
}

func runFill(cmd *cobra.Command, args []string) error {
	tpl, err := readTemplate(args[0])
	if err != nil {
		return err
	}

	rec, err := record.LoadFile(fillRecord)
	if err != nil {
		return err
	}

	var mappings []mapping.FieldMapping

	if fillMappings != "" {
		mf, err := mapping.LoadFile(fillMappings)
		if err != nil {
			return err
		}

		if diags := mapping.Validate(mf); !diags.IsValid() {
			printDiagnostics(cmd.ErrOrStderr(), *diags)

			return fmt.Errorf("mapping file %s is invalid", fillMappings)
		}

		// An empty list still means "use these", not "auto-map".
		mappings = mf.Fields
		if mappings == nil {
			mappings = []mapping.FieldMapping{}
		}
	}

	dumpValues(cmd, "inputs", rec, mappings)

	res, err := newEngine().Fill(tpl, rec, mappings)
	if err != nil {
		return err
	}

	dumpValues(cmd, "prepared", res.Fields)

	if err := os.WriteFile(fillOutput, res.Document, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	logger.Info("filled document written",
		zapPath(fillOutput),
		zap.String("run", res.RunID))

	if fillXLSX != "" {
		data, err := report.FillWorkbook(res)
		if err != nil {
			return err
		}

		if err := os.WriteFile(fillXLSX, data, 0o644); err != nil {
			return fmt.Errorf("write workbook: %w", err)
		}
	}

	out := cmd.OutOrStdout()

	if fillJSON {
		return writeJSON(out, res)
	}

	fmt.Fprintf(out, "filled %d, skipped %d, validation errors %d, write errors %d\n",
		res.Filled, res.Skipped, len(res.ValidationErrors), len(res.WriteErrors))

	for _, ve := range res.ValidationErrors {
		fmt.Fprintf(out, "  missing: %s\n", ve.Error())
	}

	for _, we := range res.WriteErrors {
		fmt.Fprintf(out, "  not written: %s\n", we.Error())
	}

	if verbose {
		printDiagnostics(out, res.Diagnostics)
	}

	return nil
}

func zapPath(p string) zap.Field {
	return zap.String("path", p)
}
