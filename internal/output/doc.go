// Package output provides structured output handling for the specenv CLI.
//
// Every command renders either a single JSON record (--json) for agents or
// "KEY: value" lines for humans. Both are produced through a Printer:
//
//	printer := output.NewPrinter(cmd.OutOrStdout(), jsonMode, output.IsTTY(cmd.OutOrStdout()))
//	printer.Section("Repository")
//	printer.KeyValue("REPO_ROOT", root)
//	printer.Error(err)
//
// # JSON Mode
//
//	// Success: {"REPO_ROOT": "...", ...}
//	// Error:   {"error": "message", "code": N}
//
// # Styling
//
// Human output is styled with lipgloss when writing to a terminal. Styles
// collapse to plain text when piped or when --color never is given.
//
// # Exit Codes
//
//	output.ExitSuccess     // 0: Success, including degraded results
//	output.ExitUserError   // 1: Fatal resolution error or bad invocation
//	output.ExitSystemError // 2: Unexpected git or I/O failure
package output
