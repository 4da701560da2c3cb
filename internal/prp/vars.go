package prp

import (
	"regexp"
	"time"

	"github.com/gorewood/specenv/internal/workspace"
)

// DateFormat is the layout of the DATE variable.
const DateFormat = "2006-01-02"

var numberPrefixRe = regexp.MustCompile(`^[0-9]+-`)

// FeatureName strips the numeric ordering prefix from a feature identifier:
// "042-add-export" becomes "add-export". Identifiers without a prefix are
// returned unchanged.
func FeatureName(feature string) string {
	if name := numberPrefixRe.ReplaceAllString(feature, ""); name != "" {
		return name
	}
	return feature
}

// BuildVars creates the substitution set for a feature. branch names the
// feature being materialized and decides PRP_FILE, the output target.
// Feature paths are rendered for display: unresolved paths become
// "(unresolved)" and paths that do not exist carry a " (missing)" suffix.
func BuildVars(feature *workspace.Feature, branch string, date time.Time) map[string]string {
	vars := map[string]string{
		"FEATURE_BRANCH": branch,
		"FEATURE_NAME":   FeatureName(branch),
		"DATE":           date.Format(DateFormat),
		"REPO_ROOT":      feature.RepoRoot,
		"FEATURE_DIR":    workspace.DisplayPath(feature.FeatureDir),
		"PRP_FILE":       Path(feature.RepoRoot, branch),
	}
	for _, artifact := range feature.Artifacts {
		vars[artifact.Key] = artifact.Display()
	}
	return vars
}
