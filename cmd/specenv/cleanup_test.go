package main

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gorewood/specenv/internal/output"
)

func TestCleanupCommand_CreatesCheckpoint(t *testing.T) {
	tempDir := setupRepo(t, "042-add-export")
	writeFile(t, tempDir, "src/app.py", "print('hi')\n")
	commitAll(t, tempDir, "Add app")
	head := runGitOutput(t, tempDir, "rev-parse", "HEAD")

	res := execute(t, tempDir, "cleanup", "--json", "--type", "dead-code")
	if res.err != nil {
		t.Fatalf("command failed: %v\nstderr: %s", res.err, res.stderr)
	}

	var result map[string]any
	if err := json.Unmarshal([]byte(res.stdout), &result); err != nil {
		t.Fatalf("failed to parse JSON output: %v\nOutput: %s", err, res.stdout)
	}

	backup, _ := result["BACKUP_BRANCH"].(string)
	if !strings.HasPrefix(backup, "cleanup-backup-") {
		t.Fatalf("BACKUP_BRANCH = %q", backup)
	}
	if got := runGitOutput(t, tempDir, "rev-parse", backup); got != head {
		t.Errorf("checkpoint %s points at %s, want HEAD %s", backup, got, head)
	}
	if branches := runGitOutput(t, tempDir, "branch", "--list", "cleanup-backup-*"); strings.Count(branches, "cleanup-backup-") != 1 {
		t.Errorf("want exactly one checkpoint branch, got:\n%s", branches)
	}
	if current := runGitOutput(t, tempDir, "branch", "--show-current"); current != "042-add-export" {
		t.Errorf("current branch = %q, checkpoint must not be checked out", current)
	}

	wantFields := map[string]any{
		"CURRENT_BRANCH": "042-add-export",
		"CLEANUP_TYPE":   "dead-code",
		"DRY_RUN":        true,
		"ARCHIVE_ONLY":   false,
	}
	for key, want := range wantFields {
		if result[key] != want {
			t.Errorf("field %q = %v, want %v", key, result[key], want)
		}
	}

	langs, _ := result["PROJECT_LANGUAGES"].([]any)
	if len(langs) != 1 || langs[0] != "python" {
		t.Errorf("PROJECT_LANGUAGES = %v, want [python]", result["PROJECT_LANGUAGES"])
	}

	report, _ := result["CLEANUP_REPORT"].(string)
	if !strings.HasSuffix(report, strings.TrimPrefix(backup, "cleanup-backup-")+".md") {
		t.Errorf("report %q and checkpoint %q should share a timestamp", report, backup)
	}
	if info, err := os.Stat(filepath.Dir(report)); err != nil || !info.IsDir() {
		t.Errorf("report directory missing: %v", err)
	}
}

func TestCleanupCommand_DirtyTree(t *testing.T) {
	tempDir := setupRepo(t, "042-add-export")
	writeFile(t, tempDir, "wip.txt", "uncommitted\n")

	res := execute(t, tempDir, "cleanup", "--execute")
	if res.err == nil {
		t.Fatal("expected error for dirty working tree")
	}
	if code := output.GetExitCode(res.err); code != output.ExitUserError {
		t.Errorf("exit code = %d, want %d", code, output.ExitUserError)
	}
	if !strings.Contains(res.stderr, "commit or stash") {
		t.Errorf("stderr = %q, want commit-or-stash advice", res.stderr)
	}
	if branches := runGitOutput(t, tempDir, "branch", "--list", "cleanup-backup-*"); branches != "" {
		t.Errorf("no checkpoint expected on a dirty tree, got:\n%s", branches)
	}
	if _, err := os.Stat(filepath.Join(tempDir, ".specify", "cleanup")); !os.IsNotExist(err) {
		t.Errorf("report directory must not be created on a dirty tree: %v", err)
	}
}

func TestCleanupCommand_InvalidType(t *testing.T) {
	tempDir := setupRepo(t, "042-add-export")

	res := execute(t, tempDir, "cleanup", "--type", "everything")
	if code := output.GetExitCode(res.err); code != output.ExitUserError {
		t.Errorf("exit code = %d, want %d", code, output.ExitUserError)
	}
	if branches := runGitOutput(t, tempDir, "branch", "--list", "cleanup-backup-*"); branches != "" {
		t.Errorf("no checkpoint expected for invalid arguments, got:\n%s", branches)
	}
}

func TestCleanupCommand_HumanSafetyBanner(t *testing.T) {
	tempDir := setupRepo(t, "042-add-export")

	res := execute(t, tempDir, "cleanup", "--color", "never")
	if res.err != nil {
		t.Fatalf("command failed: %v\nstderr: %s", res.err, res.stderr)
	}

	values := parseKeyValues(res.stdout)
	backup := values["BACKUP_BRANCH"]
	if !strings.HasPrefix(backup, "cleanup-backup-") {
		t.Fatalf("BACKUP_BRANCH = %q\n%s", backup, res.stdout)
	}
	for _, want := range []string{
		"Cleanup safety (all)",
		"git reset --hard " + backup,
		"Re-run with --execute",
	} {
		if !strings.Contains(res.stdout, want) {
			t.Errorf("output missing %q:\n%s", want, res.stdout)
		}
	}
	if values["PROJECT_LANGUAGES"] != "none" {
		t.Errorf("PROJECT_LANGUAGES = %q, want none", values["PROJECT_LANGUAGES"])
	}
}

func TestCleanupCommand_WithoutGit(t *testing.T) {
	tempDir := t.TempDir()
	writeFile(t, tempDir, ".specify/cleanup-config.json", "{}\n")
	t.Setenv("SPECIFY_FEATURE", "")
	t.Setenv("GIT_CEILING_DIRECTORIES", filepath.Dir(tempDir))

	res := execute(t, tempDir, "cleanup", "--json")
	if res.err != nil {
		t.Fatalf("command failed: %v\nstderr: %s", res.err, res.stderr)
	}

	var result map[string]any
	if err := json.Unmarshal([]byte(res.stdout), &result); err != nil {
		t.Fatalf("failed to parse JSON output: %v\nOutput: %s", err, res.stdout)
	}
	if result["BACKUP_BRANCH"] != "manual-backup-required" || result["HAS_GIT"] != false {
		t.Errorf("result = %v", result)
	}
	if result["CURRENT_BRANCH"] != "unknown" {
		t.Errorf("CURRENT_BRANCH = %v, want unknown", result["CURRENT_BRANCH"])
	}
	if !strings.Contains(res.stderr, "warning") {
		t.Errorf("stderr = %q, want a manual backup warning", res.stderr)
	}
}

func TestCleanupCommand_FreshRepository(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
	t.Setenv("SPECIFY_FEATURE", "")
	tempDir, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("EvalSymlinks: %v", err)
	}
	runGit(t, tempDir, "init")

	res := execute(t, tempDir, "cleanup", "--json")
	if res.err != nil {
		t.Fatalf("command failed: %v\nstdout: %s\nstderr: %s", res.err, res.stdout, res.stderr)
	}

	var result map[string]any
	if err := json.Unmarshal([]byte(res.stdout), &result); err != nil {
		t.Fatalf("failed to parse JSON output: %v\nOutput: %s", err, res.stdout)
	}
	if result["BACKUP_BRANCH"] != "manual-backup-required" {
		t.Errorf("BACKUP_BRANCH = %v, want manual-backup-required", result["BACKUP_BRANCH"])
	}
	if result["HAS_GIT"] != true {
		t.Errorf("HAS_GIT = %v, want true", result["HAS_GIT"])
	}
	if branches := runGitOutput(t, tempDir, "branch", "--list"); branches != "" {
		t.Errorf("no branch should be created, got:\n%s", branches)
	}
	if !strings.Contains(res.stderr, "warning") {
		t.Errorf("stderr = %q, want a manual backup warning", res.stderr)
	}
}
