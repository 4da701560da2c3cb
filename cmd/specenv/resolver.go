package main

import (
	"github.com/spf13/cobra"

	"github.com/gorewood/specenv/internal/output"
	"github.com/gorewood/specenv/internal/workspace"
)

// printerLogger routes resolver diagnostics through the printer's error
// writer. Debug lines only appear with --verbose.
type printerLogger struct {
	printer *output.Printer
	verbose bool
}

func (l printerLogger) Debugf(format string, args ...any) {
	if l.verbose {
		l.printer.Stderr("debug: "+format+"\n", args...)
	}
}

func (l printerLogger) Warnf(format string, args ...any) {
	l.printer.Warn(format, args...)
}

// newResolver builds a Resolver for the working directory using git and PATH.
func newResolver(cmd *cobra.Command, printer *output.Printer) *workspace.Resolver {
	resolver := workspace.New(".", nil, nil)
	resolver.Log = printerLogger{printer: printer, verbose: isVerbose(cmd)}
	return resolver
}
