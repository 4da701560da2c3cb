package prp

import (
	"time"

	"github.com/gorewood/specenv/internal/workspace"
)

// Request configures Create. Zero fields take defaults.
type Request struct {
	// TemplatePath defaults to DefaultTemplatePath(feature.RepoRoot).
	TemplatePath string
	// Branch defaults to the feature's current identifier.
	Branch string
	// Date defaults to time.Now.
	Date time.Time
}

// Result describes a materialized PRP.
type Result struct {
	Path     string
	Branch   string
	Template string
	// Unconsumed lists placeholders that had no value and were left as-is.
	Unconsumed []string
}

// Create loads the template, materializes it for feature and writes
// prps/<branch>.md, overwriting any previous version.
func Create(feature *workspace.Feature, req Request) (*Result, error) {
	if req.TemplatePath == "" {
		req.TemplatePath = DefaultTemplatePath(feature.RepoRoot)
	}
	if req.Branch == "" {
		req.Branch = feature.CurrentFeature
	}
	if req.Date.IsZero() {
		req.Date = time.Now()
	}

	tmpl, err := LoadTemplate(req.TemplatePath)
	if err != nil {
		return nil, err
	}

	content := Materialize(tmpl.Content, BuildVars(feature, req.Branch, req.Date))
	path, err := Write(feature.RepoRoot, req.Branch, content)
	if err != nil {
		return nil, err
	}

	return &Result{
		Path:       path,
		Branch:     req.Branch,
		Template:   tmpl.Source,
		Unconsumed: Unconsumed(content),
	}, nil
}
