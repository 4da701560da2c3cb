// Package main provides the entry point for the specenv CLI.
package main

import (
	"context"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/gorewood/specenv/internal/config"
	"github.com/gorewood/specenv/internal/envfile"
	"github.com/gorewood/specenv/internal/output"
)

// Build info set via ldflags at build time by goreleaser.
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123 -X main.date=2024-01-01"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// isJSONMode reads the --json persistent flag from the command hierarchy.
func isJSONMode(cmd *cobra.Command) bool {
	return boolFlag(cmd, "json")
}

// isVerbose reads the --verbose persistent flag.
func isVerbose(cmd *cobra.Command) bool {
	return boolFlag(cmd, "verbose")
}

func boolFlag(cmd *cobra.Command, name string) bool {
	flag := cmd.Flags().Lookup(name)
	if flag == nil {
		flag = cmd.Root().PersistentFlags().Lookup(name)
	}
	return flag != nil && flag.Value.String() == "true"
}

// useColor resolves --color against the command's output writer.
func useColor(cmd *cobra.Command) bool {
	mode := output.ColorAuto
	flag := cmd.Flags().Lookup("color")
	if flag == nil {
		flag = cmd.Root().PersistentFlags().Lookup("color")
	}
	if flag != nil {
		mode = flag.Value.String()
	}
	return output.ResolveColorMode(mode, output.IsTTY(cmd.OutOrStdout()))
}

// newPrinter creates the printer every command writes through. Diagnostics
// go to the command's error writer.
func newPrinter(cmd *cobra.Command) *output.Printer {
	return output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd)).
		WithStderr(cmd.ErrOrStderr())
}

// buildVersion returns the full version string including commit and date.
func buildVersion() string {
	if commit == "none" && date == "unknown" {
		return version
	}
	shortCommit := commit
	if len(commit) > 7 {
		shortCommit = commit[:7]
	}
	return fmt.Sprintf("%s (%s, %s)", version, shortCommit, date)
}

func main() {
	code := run()
	os.Exit(code)
}

func run() int {
	cmd := newRootCmd()
	err := fang.Execute(context.Background(), cmd, fang.WithVersion(buildVersion()))
	return output.GetExitCode(err)
}

// newRootCmd creates the root command for the specenv CLI.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "specenv",
		Short: "Resolve feature environments for spec-driven development",
		Long: `specenv - Resolve the feature environment of a spec-driven repository.

specenv answers the questions every workflow step starts with:
  - Where is the repository root?
  - Which feature is active, and where is its specs/ directory?
  - Where do the spec, plan, tasks, research, data model, contracts and
    quickstart documents live, and do they exist yet?
  - Which optional tools are installed, and where should the report go?

Missing directories, documents and tools never fail a run; they are
reported as missing. All commands support --json for structured output.`,
		Version:       buildVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if isJSONMode(cmd) {
				printer := newPrinter(cmd)
				err := output.NewUserError("no command specified. Run 'specenv --help' for usage")
				printer.Error(err)
				return err
			}
			return cmd.Help()
		},
	}

	// Env files may provide SPECIFY_FEATURE when git is unavailable.
	// Variables already in the environment always take precedence.
	cmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		loaded, err := loadEnvFiles()
		printer := newPrinter(cmd)
		if err != nil {
			printer.Warn("%v", err)
		}
		if isVerbose(cmd) {
			for _, key := range slices.Sorted(maps.Keys(loaded)) {
				printer.Stderr("debug: %s loaded from %s\n", key, loaded[key])
			}
		}
		return nil
	}

	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	cmd.PersistentFlags().String("color", output.ColorAuto, "Color output: auto, always or never")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Print resolution steps to stderr")

	lipgloss.SetHasDarkBackground(true)

	addCommandGroups(cmd)
	addCommands(cmd)

	return cmd
}

// loadEnvFiles loads env files in priority order and returns the keys it
// applied with their source file. A malformed file is reported in the
// error but does not stop the others from loading.
//
// Resolution order:
//  1. $CWD/.env.local   (per-repo override, gitignored)
//  2. $CWD/.env         (per-repo)
//  3. ~/.config/specenv/env (global fallback)
func loadEnvFiles() (map[string]string, error) {
	paths := []string{".env.local", ".env"}
	if dir := config.Dir(); dir != "" {
		paths = append(paths, filepath.Join(dir, "env"))
	}
	return envfile.LoadAll(paths...)
}

// addCommandGroups defines the command groups for help output.
func addCommandGroups(cmd *cobra.Command) {
	cmd.AddGroup(&cobra.Group{ID: "core", Title: "Core Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "agent", Title: "Agent Commands:"})
}

// addCommands adds all subcommands with their group assignments.
func addCommands(cmd *cobra.Command) {
	addGroupedCommand(cmd, newValidateCmd(), "core")
	addGroupedCommand(cmd, newCleanupCmd(), "core")
	addGroupedCommand(cmd, newPathsCmd(), "core")

	addGroupedCommand(cmd, newCreatePRPCmd(), "agent")
	addGroupedCommand(cmd, newServeCmd(), "agent")
}

// addGroupedCommand adds a subcommand with a group assignment.
func addGroupedCommand(parent *cobra.Command, child *cobra.Command, groupID string) {
	child.GroupID = groupID
	parent.AddCommand(child)
}
