package workspace

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/gorewood/specenv/internal/output"
)

// ErrDirtyWorkingTree is returned in cleanup mode when version control
// reports uncommitted changes.
var ErrDirtyWorkingTree = errors.New("working tree has uncommitted changes")

// ErrCheckpointExists is returned when the cleanup checkpoint name is taken,
// typically by a second run within the same second.
var ErrCheckpointExists = errors.New("checkpoint already exists")

// ErrNothingToCheckpoint is returned by a VersionControl that has no
// committed state to point a checkpoint at.
var ErrNothingToCheckpoint = errors.New("no committed state to checkpoint")

// TimestampFormat is the second-granularity stamp used in report and
// checkpoint names.
const TimestampFormat = "20060102_150405"

// Checkpoint naming.
const (
	CheckpointPrefix     = "cleanup-backup-"
	ManualBackupRequired = "manual-backup-required"
)

// Environment is a fully resolved feature environment for one invocation.
type Environment struct {
	Feature

	Mode    Mode
	Options Options
	// Tools maps each probed tool to its presence on PATH.
	Tools map[string]bool
	// ReportPath is where the caller should write its report. Its directory
	// exists; the file does not.
	ReportPath string
	// HasConfig reports whether .specify/<mode>-config.json exists.
	HasConfig bool

	// Cleanup mode only.
	BackupBranch     string
	ProjectLanguages []string
}

// Resolve produces an Environment for mode. In cleanup mode with version
// control it refuses a dirty tree and then creates a checkpoint branch.
func (r *Resolver) Resolve(ctx context.Context, mode Mode, opts Options) (*Environment, error) {
	opts, err := opts.normalize(mode)
	if err != nil {
		return nil, err
	}

	feature, err := r.Locate(ctx)
	if err != nil {
		return nil, err
	}

	env := &Environment{
		Feature:   *feature,
		Mode:      mode,
		Options:   opts,
		HasConfig: exists(filepath.Join(feature.RepoRoot, ".specify", mode.configFile())),
	}
	env.Tools = r.probeTools(mode)

	stamp := r.Now().Format(TimestampFormat)

	if mode == ModeCleanup && env.HasVersionControl {
		if err := r.requireCleanTree(ctx); err != nil {
			return nil, err
		}
	}

	reportDir := filepath.Join(feature.RepoRoot, ".specify", mode.reportDirName())
	if err := os.MkdirAll(reportDir, 0o755); err != nil {
		return nil, output.NewSystemErrorWithCause("creating report directory "+reportDir, err)
	}
	env.ReportPath = filepath.Join(reportDir, mode.reportDirName()+"-report-"+stamp+".md")
	r.Log.Debugf("report path: %s", env.ReportPath)

	if mode == ModeCleanup {
		if err := r.checkpoint(ctx, env, stamp); err != nil {
			return nil, err
		}
		env.ProjectLanguages = DetectLanguages(feature.RepoRoot, r.languages())
		r.Log.Debugf("project languages: %v", env.ProjectLanguages)
	}

	return env, nil
}

// requireCleanTree fails on uncommitted changes. A failing status query is
// an error in its own right, never treated as clean.
func (r *Resolver) requireCleanTree(ctx context.Context) error {
	clean, err := r.vcs.IsClean(ctx)
	if err != nil {
		return output.NewSystemErrorWithCause("checking working tree status: "+err.Error(), err)
	}
	if !clean {
		return output.NewUserErrorWithCause(
			"working tree has uncommitted changes; commit or stash them before running cleanup",
			ErrDirtyWorkingTree)
	}
	return nil
}

func (r *Resolver) checkpoint(ctx context.Context, env *Environment, stamp string) error {
	if !env.HasVersionControl {
		env.BackupBranch = ManualBackupRequired
		r.Log.Warnf("no version control: back up the repository manually before cleanup")
		return nil
	}

	name := CheckpointPrefix + stamp
	if err := r.vcs.CreateCheckpoint(ctx, name); err != nil {
		if errors.Is(err, ErrNothingToCheckpoint) {
			env.BackupBranch = ManualBackupRequired
			r.Log.Warnf("no commits to checkpoint: back up the repository manually before cleanup")
			return nil
		}
		if errors.Is(err, ErrCheckpointExists) {
			return output.NewUserErrorWithCause(
				"checkpoint "+name+" already exists; wait a second and retry", err)
		}
		return output.NewSystemErrorWithCause("creating checkpoint "+name+": "+err.Error(), err)
	}
	env.BackupBranch = name
	r.Log.Debugf("created checkpoint %s", name)
	return nil
}

// probeTools checks each tool for mode, plus project extras, on PATH.
func (r *Resolver) probeTools(mode Mode) map[string]bool {
	names := mode.defaultTools()
	if r.project != nil {
		switch mode {
		case ModeValidate:
			names = append(names, r.project.Tools.Validate...)
		case ModeCleanup:
			names = append(names, r.project.Tools.Cleanup...)
		}
	}

	tools := make(map[string]bool, len(names))
	for _, name := range names {
		if _, seen := tools[name]; seen {
			continue
		}
		tools[name] = r.tools.Available(name)
		r.Log.Debugf("tool %s available: %v", name, tools[name])
	}
	return tools
}

func (r *Resolver) languages() map[string]string {
	langs := make(map[string]string, len(DefaultLanguages))
	for ext, name := range DefaultLanguages {
		langs[ext] = name
	}
	if r.project != nil {
		for ext, name := range r.project.Languages {
			langs[ext] = name
		}
	}
	return langs
}
