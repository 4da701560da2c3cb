package mcp

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/specenv/internal/workspace"
)

// --- Mock version control ---

type mockVCS struct {
	root        string
	branch      string
	dirty       bool
	checkpoints []string
}

func (m *mockVCS) CurrentRoot(context.Context) (string, error) {
	if m.root == "" {
		return "", errors.New("not a git repository")
	}
	return m.root, nil
}

func (m *mockVCS) CurrentBranch(context.Context) (string, error) { return m.branch, nil }
func (m *mockVCS) IsClean(context.Context) (bool, error)         { return !m.dirty, nil }

func (m *mockVCS) CreateCheckpoint(_ context.Context, name string) error {
	m.checkpoints = append(m.checkpoints, name)
	return nil
}

// --- Test helpers ---

func makeRepo(t *testing.T, files ...string) string {
	t.Helper()
	root, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for _, file := range files {
		path := filepath.Join(root, filepath.FromSlash(file))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("{{FEATURE_BRANCH}} {{DATE}} {{OWNER}}\n"), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func factory(root string, vcs *mockVCS, tools ...string) ResolverFactory {
	return func() *workspace.Resolver {
		resolver := workspace.New(root, vcs, workspace.ProbeFunc(func(name string) bool {
			return slices.Contains(tools, name)
		}))
		resolver.Now = func() time.Time { return time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC) }
		return resolver
	}
}

// --- feature_paths tests ---

func TestHandleFeaturePaths(t *testing.T) {
	root := makeRepo(t, "specs/042-add-export/spec.md")
	handler := handleFeaturePaths(factory(root, &mockVCS{root: root, branch: "042-add-export"}))

	_, out, err := handler(context.Background(), &mcp.CallToolRequest{}, FeaturePathsInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.RepoRoot != root || out.CurrentBranch != "042-add-export" || !out.HasGit {
		t.Errorf("got %+v", out)
	}
	if len(out.Artifacts) != 7 {
		t.Fatalf("len(Artifacts) = %d, want 7", len(out.Artifacts))
	}
	if spec := out.Artifacts[0]; spec.Key != "FEATURE_SPEC" || !spec.Exists {
		t.Errorf("Artifacts[0] = %+v, want existing FEATURE_SPEC", spec)
	}
	if plan := out.Artifacts[1]; plan.Exists || plan.Path == "" {
		t.Errorf("Artifacts[1] = %+v, want resolved but missing", plan)
	}
}

func TestHandleFeaturePaths_NoRoot(t *testing.T) {
	start := filepath.Join(t.TempDir(), "nowhere")
	if err := os.MkdirAll(start, 0o755); err != nil {
		t.Fatal(err)
	}
	handler := handleFeaturePaths(factory(start, &mockVCS{}))

	_, _, err := handler(context.Background(), &mcp.CallToolRequest{}, FeaturePathsInput{})
	if !errors.Is(err, workspace.ErrNoRepoRoot) {
		t.Errorf("error = %v, want ErrNoRepoRoot", err)
	}
}

// --- resolve_environment tests ---

func TestHandleResolveEnvironment_Validate(t *testing.T) {
	root := makeRepo(t)
	vcs := &mockVCS{root: root, branch: "main"}
	handler := handleResolveEnvironment(factory(root, vcs, "python3"))

	_, out, err := handler(context.Background(), &mcp.CallToolRequest{}, ResolveInput{Mode: "validate", Focus: "budget"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasSuffix(out.ReportPath, filepath.Join(".specify", "validation", "validation-report-20260203_040506.md")) {
		t.Errorf("ReportPath = %q", out.ReportPath)
	}
	if out.Focus != "budget" || out.BackupBranch != "" {
		t.Errorf("got %+v", out)
	}
	if !out.Tools["python3"] || out.Tools["markdownlint"] {
		t.Errorf("Tools = %v", out.Tools)
	}
	if out.Feature.FeatureDir != "" {
		t.Errorf("FeatureDir = %q, want unresolved", out.Feature.FeatureDir)
	}
}

func TestHandleResolveEnvironment_Cleanup(t *testing.T) {
	root := makeRepo(t, "main.go")
	vcs := &mockVCS{root: root}
	handler := handleResolveEnvironment(factory(root, vcs))

	_, out, err := handler(context.Background(), &mcp.CallToolRequest{}, ResolveInput{Mode: "cleanup", CleanupType: "duplicates"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.BackupBranch != "cleanup-backup-20260203_040506" {
		t.Errorf("BackupBranch = %q", out.BackupBranch)
	}
	if !out.DryRun || out.CleanupType != "duplicates" {
		t.Errorf("got %+v", out)
	}
	if !slices.Equal(out.ProjectLanguages, []string{"go"}) {
		t.Errorf("ProjectLanguages = %v", out.ProjectLanguages)
	}
	if len(vcs.checkpoints) != 1 {
		t.Errorf("checkpoints = %v", vcs.checkpoints)
	}
}

func TestHandleResolveEnvironment_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   ResolveInput
		dirty   bool
		wantErr error
	}{
		{name: "dirty tree", input: ResolveInput{Mode: "cleanup"}, dirty: true, wantErr: workspace.ErrDirtyWorkingTree},
		{name: "bad mode", input: ResolveInput{Mode: "deploy"}},
		{name: "bad focus", input: ResolveInput{Mode: "validate", Focus: "everything"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := makeRepo(t)
			vcs := &mockVCS{root: root, dirty: tt.dirty}
			handler := handleResolveEnvironment(factory(root, vcs))

			_, _, err := handler(context.Background(), &mcp.CallToolRequest{}, tt.input)
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
			if len(vcs.checkpoints) != 0 {
				t.Errorf("checkpoints = %v, want none", vcs.checkpoints)
			}
		})
	}
}

// --- create_prp tests ---

func TestHandleCreatePRP(t *testing.T) {
	root := makeRepo(t, ".specify/templates/prp-template.md")
	handler := handleCreatePRP(factory(root, &mockVCS{root: root, branch: "007-login"}))

	_, out, err := handler(context.Background(), &mcp.CallToolRequest{}, CreatePRPInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Path != filepath.Join(root, "prps", "007-login.md") || out.Feature != "007-login" {
		t.Errorf("got %+v", out)
	}
	if !slices.Equal(out.Unconsumed, []string{"OWNER"}) || out.Warning == "" {
		t.Errorf("Unconsumed = %v, Warning = %q", out.Unconsumed, out.Warning)
	}

	data, err := os.ReadFile(out.Path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "007-login ") {
		t.Errorf("PRP = %q", data)
	}
}

func TestHandleCreatePRP_MissingTemplate(t *testing.T) {
	root := makeRepo(t)
	handler := handleCreatePRP(factory(root, &mockVCS{root: root, branch: "007-login"}))

	_, _, err := handler(context.Background(), &mcp.CallToolRequest{}, CreatePRPInput{Feature: "008-other"})
	if err == nil || !strings.Contains(err.Error(), "template not found") {
		t.Errorf("error = %v, want template not found", err)
	}
}

// --- Server registration test ---

func TestNewServer_RegistersTools(t *testing.T) {
	root := makeRepo(t)

	// Should not panic
	server := NewServer("test-version", factory(root, &mockVCS{root: root}))
	if server == nil {
		t.Fatal("NewServer returned nil")
	}
}
