package workspace

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gorewood/specenv/internal/output"
)

// Mode selects the report directory, tool list and safety preconditions.
type Mode string

// Supported modes.
const (
	ModeValidate Mode = "validate"
	ModeCleanup  Mode = "cleanup"
)

// FocusAreas are the accepted values for Options.Focus in validate mode.
var FocusAreas = []string{"requirements", "budget", "consistency", "constitution", "practices"}

// CleanupTypes are the accepted values for Options.CleanupType.
var CleanupTypes = []string{"dead-code", "duplicates", "unused-files", "outdated-docs", "all"}

// DefaultCleanupType is used when Options.CleanupType is empty.
const DefaultCleanupType = "all"

// Options configures a resolution. Fields that do not apply to the mode are
// ignored; zero values take the documented defaults.
type Options struct {
	// Focus restricts which validation phase the caller cares about.
	Focus string
	// CleanupType is one of CleanupTypes; defaults to "all".
	CleanupType string
	// Execute disables dry-run. Defaults to false.
	Execute bool
	// ArchiveOnly asks the caller to archive instead of delete.
	ArchiveOnly bool
}

// DryRun reports whether the caller should only report, not act.
func (o Options) DryRun() bool {
	return !o.Execute
}

// normalize validates the options for mode and fills defaults.
func (o Options) normalize(mode Mode) (Options, error) {
	switch mode {
	case ModeValidate:
		if o.Focus != "" && !slices.Contains(FocusAreas, o.Focus) {
			return o, output.NewUserError(fmt.Sprintf(
				"unknown focus area %q (expected one of: %s)", o.Focus, strings.Join(FocusAreas, ", ")))
		}
		return Options{Focus: o.Focus}, nil
	case ModeCleanup:
		if o.CleanupType == "" {
			o.CleanupType = DefaultCleanupType
		}
		if !slices.Contains(CleanupTypes, o.CleanupType) {
			return o, output.NewUserError(fmt.Sprintf(
				"unknown cleanup type %q (expected one of: %s)", o.CleanupType, strings.Join(CleanupTypes, ", ")))
		}
		o.Focus = ""
		return o, nil
	default:
		return o, output.NewUserError(fmt.Sprintf("unknown mode %q", mode))
	}
}

// reportDirName is both the .specify/ subdirectory and the report file prefix.
func (m Mode) reportDirName() string {
	if m == ModeCleanup {
		return "cleanup"
	}
	return "validation"
}

// configFile is the optional, caller-side configuration for the mode.
func (m Mode) configFile() string {
	return m.reportDirName() + "-config.json"
}

// defaultTools are probed on PATH for each mode.
func (m Mode) defaultTools() []string {
	if m == ModeCleanup {
		return []string{"python3", "vulture", "ts-prune", "eslint", "jscpd"}
	}
	return []string{"python3", "markdownlint"}
}
