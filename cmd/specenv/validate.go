package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/gorewood/specenv/internal/workspace"
)

// newValidateCmd creates the validate command.
func newValidateCmd() *cobra.Command {
	var opts workspace.Options
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Resolve the environment for a validation run",
		Long: `Resolve the environment for validating the current feature.

Reports the repository root, the active feature and its planning documents,
which validation tools are installed, and a timestamped report path under
.specify/validation/. The report directory is created; nothing else is
written.

Examples:
  specenv validate                      # Human-readable environment
  specenv validate --focus=budget       # Narrow the downstream check
  specenv validate --json               # Single JSON record for scripting`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runValidate(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Focus, "focus", "",
		"Restrict to one area: "+strings.Join(workspace.FocusAreas, ", "))
	return cmd
}

// runValidate executes the validate command.
func runValidate(cmd *cobra.Command, opts workspace.Options) error {
	printer := newPrinter(cmd)

	env, err := newResolver(cmd, printer).Resolve(cmd.Context(), workspace.ModeValidate, opts)
	if err != nil {
		printer.Error(err)
		return err
	}

	return printRecord(printer, env.Record())
}
