package main

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/gorewood/specenv/internal/output"
	"github.com/gorewood/specenv/internal/workspace"
)

// printRecord writes a record as JSON, or as KEY: value lines grouped into
// sections followed by a tool table.
func printRecord(printer *output.Printer, rec workspace.Record) error {
	if printer.IsJSON() {
		return printer.WriteJSON(rec)
	}

	section := ""
	for _, field := range rec {
		if field.Key == workspace.ToolsKey {
			continue
		}
		if field.Section != section {
			section = field.Section
			printer.Section(section)
		}
		printer.KeyValue(field.Key, field.Human())
	}

	if tools, ok := rec.Get(workspace.ToolsKey); ok {
		printTools(printer, tools)
	}
	return nil
}

// printTools renders the TOOLS field as a summary line and a table.
func printTools(printer *output.Printer, field workspace.Field) {
	printer.Section(workspace.SectionTools)
	printer.KeyValue(field.Key, field.Human())

	tools, _ := field.Value.(map[string]bool)
	if len(tools) == 0 {
		return
	}
	rows := make([][]string, 0, len(tools))
	for _, name := range slices.Sorted(maps.Keys(tools)) {
		status := "missing"
		if tools[name] {
			status = "available"
		}
		rows = append(rows, []string{name, status})
	}
	printer.Println()
	printer.Table([]string{"TOOL", "STATUS"}, rows)
}

// printCleanupSafety shows the checkpoint and how to roll back to it.
func printCleanupSafety(printer *output.Printer, env *workspace.Environment) {
	if printer.IsJSON() {
		return
	}

	var lines []string
	switch {
	case env.BackupBranch == workspace.ManualBackupRequired && env.HasVersionControl:
		lines = append(lines, "No commits to checkpoint: back up the project manually before changing files.")
	case env.BackupBranch == workspace.ManualBackupRequired:
		lines = append(lines, "No git repository: back up the project manually before changing files.")
	default:
		lines = append(lines,
			"Checkpoint: "+env.BackupBranch,
			"Rollback:   git reset --hard "+env.BackupBranch)
	}
	if env.Options.DryRun() {
		lines = append(lines, "Dry run: report only. Re-run with --execute to apply changes.")
	} else if env.Options.ArchiveOnly {
		lines = append(lines, "Archive only: move files to .archived/ instead of deleting them.")
	}

	printer.Println()
	printer.Box(fmt.Sprintf("Cleanup safety (%s)", env.Options.CleanupType), strings.Join(lines, "\n"))
}
