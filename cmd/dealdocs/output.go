package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/davecgh/go-spew/spew"
	gojson "github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"dealdocs/internal/diagnostic"
	"dealdocs/internal/engine"
)

func newEngine() *engine.Engine {
	l := logger
	if l == nil {
		l = zap.NewNop()
	}

	return engine.New(engine.WithLogger(l))
}

func readTemplate(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read template: %w", err)
	}

	return data, nil
}

func writeJSON(w io.Writer, v any) error {
	b, err := gojson.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}

	_, err = fmt.Fprintln(w, string(b))

	return err
}

// dumpValues writes a spew dump of each value when --dump is set.
func dumpValues(cmd *cobra.Command, label string, values ...any) {
	if !dump {
		return
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "--- %s ---\n", label)
	spew.Fdump(cmd.ErrOrStderr(), values...)
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

func printDiagnostics(w io.Writer, d diagnostic.Diagnostics) {
	for _, list := range [][]diagnostic.Diagnostic{d.Errors, d.Warnings, d.Infos} {
		for _, diag := range list {
			fmt.Fprintf(w, "%-7s %s\n", diag.Severity, diag.String())
		}
	}
}
