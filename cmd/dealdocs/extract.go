package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"dealdocs/internal/acroform"
)

var extractJSON bool

var extractCmd = &cobra.Command{
	Use:   "extract <template.pdf>",
	Short: "List the template's form fields",
	Args:  cobra.ExactArgs(1),
	RunE:  runExtract,
}

func init() {
	extractCmd.Flags().BoolVar(&extractJSON, "json", false, "Print JSON")
}

func runExtract(cmd *cobra.Command, args []string) error {
	tpl, err := readTemplate(args[0])
	if err != nil {
		return err
	}

	fields, stats, err := acroform.ExtractWithStats(tpl, acroform.WithLogger(logger))
	if err != nil {
		return err
	}

	dumpValues(cmd, "fields", fields, stats)

	out := cmd.OutOrStdout()

	if extractJSON {
		return writeJSON(out, struct {
			Fields []acroform.Field `json:"fields"`
			Stats  acroform.Stats   `json:"stats"`
		}{fields, stats})
	}

	tw := newTable(out)
	fmt.Fprintln(tw, "FIELD\tKIND")

	for _, f := range fields {
		fmt.Fprintf(tw, "%s\t%s\n", f.Name, f.Kind)
	}

	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(out, "\n%d fields, %d unclassified, %d malformed nodes skipped\n",
		len(fields), stats.Unclassified, stats.Skipped)

	return nil
}
