package workspace

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/gorewood/specenv/internal/config"
	"github.com/gorewood/specenv/internal/output"
)

// ErrNoRepoRoot is returned when neither version control nor a .git/.specify
// marker locates a repository root.
var ErrNoRepoRoot = errors.New("no repository root found")

// FeatureEnvVar overrides the active feature when version control is unavailable.
const FeatureEnvVar = "SPECIFY_FEATURE"

// Fallback feature names.
const (
	FallbackBranch  = "main"
	FallbackFeature = "unknown"
)

// SpecsDir is the directory under the repo root holding one directory per feature.
const SpecsDir = "specs"

// reservedFeatures never map directly to specs/<name>.
var reservedFeatures = []string{"main", "master", "unknown"}

// Feature is the repository-level part of a resolved environment.
type Feature struct {
	RepoRoot          string
	HasVersionControl bool
	CurrentFeature    string
	// FeatureDir is empty when no feature directory could be found.
	FeatureDir string
	Artifacts  []Artifact
}

// Artifact returns the artifact with the given name.
func (f *Feature) Artifact(name string) (Artifact, bool) {
	for _, a := range f.Artifacts {
		if a.Name == name {
			return a, true
		}
	}
	return Artifact{}, false
}

// Resolver produces Features and Environments for a start directory.
// Each call re-reads the filesystem, version control and PATH.
type Resolver struct {
	startDir string
	vcs      VersionControl
	tools    ToolProbe

	// Now, Getenv and Log default to time.Now, os.Getenv and a no-op logger.
	Now    func() time.Time
	Getenv func(string) string
	Log    Logger

	// FeatureOverride, when set, replaces branch and environment detection.
	FeatureOverride string

	project *config.Project
}

// New creates a Resolver for startDir.
// A nil vcs uses git from startDir; a nil probe uses exec.LookPath.
func New(startDir string, vcs VersionControl, probe ToolProbe) *Resolver {
	if vcs == nil {
		vcs = NewGitVersionControl(startDir)
	}
	if probe == nil {
		probe = PathProbe{}
	}
	return &Resolver{
		startDir: startDir,
		vcs:      vcs,
		tools:    probe,
		Now:      time.Now,
		Getenv:   os.Getenv,
		Log:      nopLogger{},
	}
}

// Locate discovers the repository root, the active feature, the feature
// directory and the canonical artifact paths. It writes nothing.
func (r *Resolver) Locate(ctx context.Context) (*Feature, error) {
	start, err := filepath.Abs(r.startDir)
	if err != nil {
		return nil, output.NewSystemErrorWithCause("resolving start directory", err)
	}

	feature := &Feature{}
	if root, vcsErr := r.vcs.CurrentRoot(ctx); vcsErr == nil {
		feature.RepoRoot = root
		feature.HasVersionControl = true
	} else {
		r.Log.Debugf("version control root unavailable (%v), searching for markers", vcsErr)
		root, ok := findMarkerRoot(start)
		if !ok {
			return nil, output.NewUserErrorWithCause(
				"could not determine repository root: no .git or .specify directory found above "+start,
				ErrNoRepoRoot)
		}
		feature.RepoRoot = root
	}
	r.Log.Debugf("repo root: %s (version control: %v)", feature.RepoRoot, feature.HasVersionControl)

	r.loadProject(feature.RepoRoot)
	feature.CurrentFeature = r.currentFeature(ctx, feature.HasVersionControl)
	feature.FeatureDir = r.featureDir(feature.RepoRoot, feature.CurrentFeature)
	feature.Artifacts = artifactsFor(feature.FeatureDir)
	return feature, nil
}

// findMarkerRoot walks up from start looking for .git or .specify.
func findMarkerRoot(start string) (string, bool) {
	dir := start
	for {
		// .git may be a file in worktrees and submodules.
		if exists(filepath.Join(dir, ".git")) || isDir(filepath.Join(dir, ".specify")) {
			return dir, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

func (r *Resolver) currentFeature(ctx context.Context, hasVCS bool) string {
	if r.FeatureOverride != "" {
		return r.FeatureOverride
	}
	if !hasVCS {
		if name := strings.TrimSpace(r.Getenv(FeatureEnvVar)); name != "" {
			return name
		}
		return FallbackFeature
	}

	branch, err := r.vcs.CurrentBranch(ctx)
	if err != nil {
		r.Log.Debugf("branch query failed: %v", err)
	}
	if branch = strings.TrimSpace(branch); branch == "" {
		r.Log.Debugf("no branch name (detached HEAD?), using %q", FallbackBranch)
		return FallbackBranch
	}
	return branch
}

// featureDir resolves specs/<feature>, falling back to the lexicographically
// greatest directory under specs/. Returns "" when specs/ has no candidates.
func (r *Resolver) featureDir(root, feature string) string {
	specs := filepath.Join(root, SpecsDir)

	if !r.isReserved(feature) {
		candidate := filepath.Join(specs, feature)
		if isDir(candidate) {
			return candidate
		}
		r.Log.Debugf("%s does not exist, falling back to latest feature directory", candidate)
	}

	latest := latestSubdir(specs)
	if latest == "" {
		r.Log.Debugf("no feature directories under %s", specs)
		return ""
	}
	return filepath.Join(specs, latest)
}

func (r *Resolver) isReserved(feature string) bool {
	if slices.Contains(reservedFeatures, feature) {
		return true
	}
	return r.project != nil && slices.Contains(r.project.ReservedFeatures, feature)
}

// latestSubdir returns the greatest non-hidden subdirectory name of dir.
// Names are expected to carry a zero-padded numeric prefix.
func latestSubdir(dir string) string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}
	var names []string
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		names = append(names, entry.Name())
	}
	if len(names) == 0 {
		return ""
	}
	slices.Sort(names)
	return names[len(names)-1]
}

// loadProject reads .specify/specenv.yaml. A broken file is reported and
// ignored so resolution can still complete.
func (r *Resolver) loadProject(root string) {
	project, err := config.LoadProject(root)
	if err != nil {
		r.Log.Warnf("ignoring project config: %v", err)
		project = &config.Project{}
	}
	if project.Source != "" {
		r.Log.Debugf("project config: %s", project.Source)
	}
	r.project = project
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
