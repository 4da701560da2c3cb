package workspace

import "path/filepath"

// Canonical artifact names.
const (
	ArtifactSpec       = "spec"
	ArtifactPlan       = "plan"
	ArtifactTasks      = "tasks"
	ArtifactResearch   = "research"
	ArtifactDataModel  = "data-model"
	ArtifactContracts  = "contracts"
	ArtifactQuickstart = "quickstart"
)

// Display markers for human output.
const (
	MissingSuffix = " (missing)"
	Unresolved    = "(unresolved)"
)

type artifactDef struct {
	name string
	key  string
	file string
}

// artifactDefs lists the seven canonical artifacts in output order.
var artifactDefs = []artifactDef{
	{ArtifactSpec, "FEATURE_SPEC", "spec.md"},
	{ArtifactPlan, "IMPL_PLAN", "plan.md"},
	{ArtifactTasks, "TASKS", "tasks.md"},
	{ArtifactResearch, "RESEARCH", "research.md"},
	{ArtifactDataModel, "DATA_MODEL", "data-model.md"},
	{ArtifactContracts, "CONTRACTS_DIR", "contracts"},
	{ArtifactQuickstart, "QUICKSTART", "quickstart.md"},
}

// Artifact is a per-feature planning document location.
// Path is empty when the feature directory is unresolved.
type Artifact struct {
	Name string
	Key  string
	Path string
}

// Resolved reports whether the artifact has a path at all.
func (a Artifact) Resolved() bool {
	return a.Path != ""
}

// Exists checks the filesystem now; it is never cached.
func (a Artifact) Exists() bool {
	return a.Resolved() && exists(a.Path)
}

// Display renders the path for humans: "(unresolved)", the path, or the
// path with a " (missing)" suffix.
func (a Artifact) Display() string {
	return DisplayPath(a.Path)
}

// DisplayPath annotates a path for human output.
func DisplayPath(path string) string {
	switch {
	case path == "":
		return Unresolved
	case !exists(path):
		return path + MissingSuffix
	default:
		return path
	}
}

// artifactsFor derives all artifacts from featureDir. Every artifact is
// returned even when featureDir is empty.
func artifactsFor(featureDir string) []Artifact {
	artifacts := make([]Artifact, 0, len(artifactDefs))
	for _, def := range artifactDefs {
		artifact := Artifact{Name: def.name, Key: def.key}
		if featureDir != "" {
			artifact.Path = filepath.Join(featureDir, def.file)
		}
		artifacts = append(artifacts, artifact)
	}
	return artifacts
}
