// Package git provides Git operations via exec for the specenv CLI.
package git

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/gorewood/specenv/internal/output"
)

// ErrNotFound is returned when the git executable is not on PATH.
var ErrNotFound = errors.New("git executable not found")

// ErrBranchExists is returned by CreateBranch when the branch name is taken.
var ErrBranchExists = errors.New("branch already exists")

// ErrNoCommits is returned by CreateBranch when HEAD is unborn.
var ErrNoCommits = errors.New("repository has no commits")

// RunIn executes a git command with the given context in dir.
// An empty dir runs in the process working directory.
// Stdout is returned trimmed. Failures are *output.ExitError system errors
// carrying git's stderr.
func RunIn(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var execErr *exec.Error
		if errors.As(err, &execErr) {
			return "", output.NewSystemErrorWithCause("git not found: ensure git is installed and in PATH", ErrNotFound)
		}

		errMsg := strings.TrimSpace(stderr.String())
		if errMsg == "" {
			errMsg = err.Error()
		}
		return "", output.NewSystemErrorWithCause("git "+args[0]+" failed: "+errMsg, err)
	}

	return strings.TrimSpace(stdout.String()), nil
}

// Repo runs git commands from a fixed starting directory.
type Repo struct {
	Dir string
}

// NewRepo returns a Repo rooted at dir.
func NewRepo(dir string) *Repo {
	return &Repo{Dir: dir}
}

// Toplevel returns the absolute root of the working tree containing Dir.
func (r *Repo) Toplevel(ctx context.Context) (string, error) {
	root, err := RunIn(ctx, r.Dir, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", err
	}
	if root == "" {
		return "", output.NewSystemError("git rev-parse returned an empty toplevel")
	}
	// Git for Windows reports forward slashes.
	return filepath.FromSlash(root), nil
}

// CurrentBranch returns the checked-out branch name.
// The result is empty on a detached HEAD.
func (r *Repo) CurrentBranch(ctx context.Context) (string, error) {
	return RunIn(ctx, r.Dir, "branch", "--show-current")
}

// HasUncommittedChanges reports staged, unstaged or untracked changes.
// Unlike a best-effort probe, a failing status query is returned as an error.
func (r *Repo) HasUncommittedChanges(ctx context.Context) (bool, error) {
	out, err := RunIn(ctx, r.Dir, "status", "--porcelain")
	if err != nil {
		return false, err
	}
	return out != "", nil
}

// BranchExists reports whether refs/heads/<name> exists.
func (r *Repo) BranchExists(ctx context.Context, name string) bool {
	_, err := RunIn(ctx, r.Dir, "show-ref", "--verify", "--quiet", "refs/heads/"+name)
	return err == nil
}

// HasCommits reports whether HEAD points at a commit.
// It is false in a freshly initialized repository.
func (r *Repo) HasCommits(ctx context.Context) bool {
	_, err := RunIn(ctx, r.Dir, "rev-parse", "--verify", "--quiet", "HEAD^{commit}")
	return err == nil
}

// CreateBranch creates a branch at HEAD without checking it out.
// Returns an error wrapping ErrBranchExists if the name is already taken,
// or ErrNoCommits if there is nothing to point it at.
func (r *Repo) CreateBranch(ctx context.Context, name string) error {
	if !r.HasCommits(ctx) {
		return output.NewUserErrorWithCause("cannot create branch "+name+": no commits yet", ErrNoCommits)
	}
	if r.BranchExists(ctx, name) {
		return branchExistsError(name)
	}
	return r.createRef(ctx, name)
}

// createRef writes refs/heads/<name> only if it does not exist yet, so a
// concurrent writer that wins the race turns into ErrBranchExists.
func (r *Repo) createRef(ctx context.Context, name string) error {
	if _, err := RunIn(ctx, r.Dir, "check-ref-format", "--branch", name); err != nil {
		return err
	}
	_, err := RunIn(ctx, r.Dir, "update-ref", "refs/heads/"+name, "HEAD", "")
	if err != nil && r.BranchExists(ctx, name) {
		return branchExistsError(name)
	}
	return err
}

func branchExistsError(name string) error {
	return output.NewUserErrorWithCause("branch "+name+" already exists", ErrBranchExists)
}
