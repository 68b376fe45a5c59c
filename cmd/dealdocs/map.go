package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"dealdocs/internal/mapping"
	"dealdocs/internal/match"
	"dealdocs/internal/report"
)

var (
	mapJSON    bool
	mapExplain string
	mapXLSX    string
	mapYAML    string
)

var mapCmd = &cobra.Command{
	Use:   "map <template.pdf>",
	Short: "Suggest mappings from template fields to record paths",
	Long: `map auto-maps every field of the template and prints the result.

--yaml writes a mapping file that "fill --mappings" accepts after review.
--xlsx writes a review workbook. --explain shows how one name was scored.`,
	Args: cobra.RangeArgs(0, 1),
	RunE: runMap,
}

func init() {
	mapCmd.Flags().BoolVar(&mapJSON, "json", false, "Print JSON")
	mapCmd.Flags().StringVar(&mapExplain, "explain", "", "Explain the scoring of one field name")
	mapCmd.Flags().StringVar(&mapXLSX, "xlsx", "", "Write a review workbook to this path")
	mapCmd.Flags().StringVar(&mapYAML, "yaml", "", "Write a mapping file to this path")
}

func runMap(cmd *cobra.Command, args []string) error {
	if mapExplain != "" {
		return runExplain(cmd, mapExplain)
	}

	if len(args) != 1 {
		return fmt.Errorf("map needs a template unless --explain is given")
	}

	tpl, err := readTemplate(args[0])
	if err != nil {
		return err
	}

	res, err := newEngine().Map(tpl)
	if err != nil {
		return err
	}

	dumpValues(cmd, "auto-map", res)

	if mapYAML != "" {
		mf := mapping.NewMappingFile(filepath.Base(args[0]), res.Mappings)
		if err := mapping.WriteFile(mf, mapYAML); err != nil {
			return err
		}

		logger.Info("mapping file written", zapPath(mapYAML))
	}

	if mapXLSX != "" {
		data, err := report.MappingWorkbook(res)
		if err != nil {
			return err
		}

		if err := os.WriteFile(mapXLSX, data, 0o644); err != nil {
			return fmt.Errorf("write workbook: %w", err)
		}

		logger.Info("review workbook written", zapPath(mapXLSX))
	}

	out := cmd.OutOrStdout()

	if mapJSON {
		return writeJSON(out, res)
	}

	tw := newTable(out)
	fmt.Fprintln(tw, "FIELD\tPATH\tSCORE\tTRANSFORM\tREQUIRED")

	for _, m := range res.Mappings {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%t\n", m.PDFFieldName, m.DataPath, m.Score, m.Transform, m.Required)
	}

	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(out, "\n%d mapped, %d unmatched, %d excluded\n",
		len(res.Mappings), len(res.Unmatched), len(res.Excluded))

	for _, u := range res.Unmatched {
		if u.Suggestion != "" {
			fmt.Fprintf(out, "  %s: closest is %s (%.2f)\n", u.Field, u.Suggestion, u.Similarity)
		}
	}

	return nil
}

func runExplain(cmd *cobra.Command, name string) error {
	ex := match.Explain(name)
	dumpValues(cmd, "explain", ex)

	out := cmd.OutOrStdout()

	if mapJSON {
		return writeJSON(out, ex)
	}

	n := ex.Normalized
	fmt.Fprintf(out, "name:     %q -> %q (suffix %d)\n", n.Raw, n.Name, n.Suffix)
	fmt.Fprintf(out, "allowed:  %v\n", ex.Allowed)

	if ex.Excluded {
		fmt.Fprintln(out, "excluded: left for manual completion")

		return nil
	}

	tw := newTable(out)
	fmt.Fprintln(tw, "PATH\tALIAS\tSCORE\tACCEPTED")

	for _, c := range ex.Candidates.Top(10) {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%t\n", c.Entry.Path, c.Alias, c.Score, c.Accepted())
	}

	if err := tw.Flush(); err != nil {
		return err
	}

	if ex.Mapping == nil {
		fmt.Fprintln(out, "result:   unmapped")
	} else {
		fmt.Fprintf(out, "result:   %s\n", ex.Mapping.DataPath)
	}

	return nil
}
