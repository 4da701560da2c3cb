package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/gorewood/specenv/internal/workspace"
)

// newCleanupCmd creates the cleanup command.
func newCleanupCmd() *cobra.Command {
	var opts workspace.Options
	cmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Resolve the environment for a cleanup run and create a checkpoint",
		Long: `Resolve the environment for cleaning up the repository.

Cleanup refuses to run on a working tree with uncommitted changes. On a
clean tree it creates a cleanup-backup-<timestamp> branch at HEAD before
reporting, so any later change can be rolled back with git reset --hard.
Outside git, the result asks for a manual backup instead.

The run is a dry run unless --execute is given.

Examples:
  specenv cleanup                          # Dry run over all cleanup types
  specenv cleanup --type=dead-code         # Only dead code
  specenv cleanup --execute --archive-only # Act, archiving instead of deleting
  specenv cleanup --json                   # Single JSON record for scripting`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCleanup(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.CleanupType, "type", workspace.DefaultCleanupType,
		"Cleanup type: "+strings.Join(workspace.CleanupTypes, ", "))
	cmd.Flags().BoolVar(&opts.Execute, "execute", false, "Apply changes instead of a dry run")
	cmd.Flags().BoolVar(&opts.ArchiveOnly, "archive-only", false, "Archive files instead of deleting them")
	return cmd
}

// runCleanup executes the cleanup command.
func runCleanup(cmd *cobra.Command, opts workspace.Options) error {
	printer := newPrinter(cmd)

	env, err := newResolver(cmd, printer).Resolve(cmd.Context(), workspace.ModeCleanup, opts)
	if err != nil {
		printer.Error(err)
		return err
	}

	if err := printRecord(printer, env.Record()); err != nil {
		return err
	}
	printCleanupSafety(printer, env)
	return nil
}
