package workspace

import (
	"context"
	"errors"
	"fmt"
	"os/exec"

	"github.com/gorewood/specenv/internal/git"
)

// VersionControl is the subset of version-control queries the resolver needs.
type VersionControl interface {
	// CurrentRoot returns the absolute working tree root, or an error when the
	// start directory is not under version control or the tool is missing.
	CurrentRoot(ctx context.Context) (string, error)
	// CurrentBranch returns the branch name, "" on a detached HEAD.
	CurrentBranch(ctx context.Context) (string, error)
	// IsClean reports whether the working tree has no uncommitted changes.
	IsClean(ctx context.Context) (bool, error)
	// CreateCheckpoint adds a named reference at the current state. A name
	// that is already taken returns an error wrapping ErrCheckpointExists;
	// a repository without commits returns one wrapping ErrNothingToCheckpoint.
	CreateCheckpoint(ctx context.Context, name string) error
}

// ToolProbe reports whether an external tool can be resolved on PATH.
type ToolProbe interface {
	Available(name string) bool
}

// ProbeFunc adapts a plain function to ToolProbe.
type ProbeFunc func(name string) bool

// Available calls f(name).
func (f ProbeFunc) Available(name string) bool {
	return f(name)
}

// PathProbe resolves tools with exec.LookPath on every call.
type PathProbe struct{}

// Available reports whether name resolves on PATH.
func (PathProbe) Available(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// Logger receives resolution diagnostics.
type Logger interface {
	Debugf(format string, args ...any)
	Warnf(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any) {}
func (nopLogger) Warnf(string, ...any)  {}

// gitVersionControl implements VersionControl with the git package.
type gitVersionControl struct {
	repo *git.Repo
}

// NewGitVersionControl returns a VersionControl backed by the git binary,
// running every query from dir.
func NewGitVersionControl(dir string) VersionControl {
	return gitVersionControl{repo: git.NewRepo(dir)}
}

func (g gitVersionControl) CurrentRoot(ctx context.Context) (string, error) {
	return g.repo.Toplevel(ctx)
}

func (g gitVersionControl) CurrentBranch(ctx context.Context) (string, error) {
	return g.repo.CurrentBranch(ctx)
}

func (g gitVersionControl) IsClean(ctx context.Context) (bool, error) {
	dirty, err := g.repo.HasUncommittedChanges(ctx)
	if err != nil {
		return false, err
	}
	return !dirty, nil
}

func (g gitVersionControl) CreateCheckpoint(ctx context.Context, name string) error {
	err := g.repo.CreateBranch(ctx, name)
	switch {
	case errors.Is(err, git.ErrBranchExists):
		return fmt.Errorf("checkpoint %s: %w", name, ErrCheckpointExists)
	case errors.Is(err, git.ErrNoCommits):
		return fmt.Errorf("checkpoint %s: %w", name, ErrNothingToCheckpoint)
	}
	return err
}
