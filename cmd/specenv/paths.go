package main

import (
	"github.com/spf13/cobra"
)

// newPathsCmd creates the paths command.
func newPathsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "paths",
		Short: "Show the active feature and its document paths",
		Long: `Show the repository root, the active feature and the paths of its seven
planning documents. Nothing is created or probed.

Examples:
  specenv paths         # Human-readable paths, missing ones marked
  specenv paths --json  # JSON record; unresolved paths are null`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPaths(cmd)
		},
	}
}

// runPaths executes the paths command.
func runPaths(cmd *cobra.Command) error {
	printer := newPrinter(cmd)

	feature, err := newResolver(cmd, printer).Locate(cmd.Context())
	if err != nil {
		printer.Error(err)
		return err
	}

	if feature.FeatureDir == "" {
		printer.Warn("no feature directory under specs/; document paths are unresolved")
	}
	return printRecord(printer, feature.Record())
}
