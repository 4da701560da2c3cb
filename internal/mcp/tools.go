package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/specenv/internal/prp"
	"github.com/gorewood/specenv/internal/workspace"
)

// --- Shared types ---

// ArtifactInfo is one planning artifact location.
type ArtifactInfo struct {
	Name   string `json:"name"           jsonschema:"artifact name, e.g. spec or data-model"`
	Key    string `json:"key"            jsonschema:"output key, e.g. FEATURE_SPEC"`
	Path   string `json:"path,omitempty" jsonschema:"absolute path; empty when no feature directory was found"`
	Exists bool   `json:"exists"         jsonschema:"whether the path exists on disk"`
}

// FeatureInfo is the repository-level part of every response.
type FeatureInfo struct {
	RepoRoot      string         `json:"repo_root"             jsonschema:"absolute repository root"`
	CurrentBranch string         `json:"current_branch"        jsonschema:"active feature identifier"`
	HasGit        bool           `json:"has_git"               jsonschema:"whether git resolved the root"`
	FeatureDir    string         `json:"feature_dir,omitempty" jsonschema:"feature directory; empty when unresolved"`
	Artifacts     []ArtifactInfo `json:"artifacts"             jsonschema:"the seven canonical artifacts in fixed order"`
}

func toFeatureInfo(feature *workspace.Feature) FeatureInfo {
	info := FeatureInfo{
		RepoRoot:      feature.RepoRoot,
		CurrentBranch: feature.CurrentFeature,
		HasGit:        feature.HasVersionControl,
		FeatureDir:    feature.FeatureDir,
		Artifacts:     make([]ArtifactInfo, 0, len(feature.Artifacts)),
	}
	for _, artifact := range feature.Artifacts {
		info.Artifacts = append(info.Artifacts, ArtifactInfo{
			Name:   artifact.Name,
			Key:    artifact.Key,
			Path:   artifact.Path,
			Exists: artifact.Exists(),
		})
	}
	return info
}

// --- feature_paths tool ---

// FeaturePathsInput is the input for the feature_paths tool (no parameters).
type FeaturePathsInput struct{}

func handleFeaturePaths(newResolver ResolverFactory) mcp.ToolHandlerFor[FeaturePathsInput, FeatureInfo] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ FeaturePathsInput) (*mcp.CallToolResult, FeatureInfo, error) {
		feature, err := newResolver().Locate(ctx)
		if err != nil {
			return nil, FeatureInfo{}, err
		}
		return nil, toFeatureInfo(feature), nil
	}
}

// --- resolve_environment tool ---

// ResolveInput is the input for the resolve_environment tool.
type ResolveInput struct {
	Mode        string `json:"mode"                   jsonschema:"validate or cleanup"`
	Focus       string `json:"focus,omitempty"        jsonschema:"validate only: requirements, budget, consistency, constitution or practices"`
	CleanupType string `json:"cleanup_type,omitempty" jsonschema:"cleanup only: dead-code, duplicates, unused-files, outdated-docs or all (default)"`
	Execute     bool   `json:"execute,omitempty"      jsonschema:"cleanup only: act instead of dry-run"`
	ArchiveOnly bool   `json:"archive_only,omitempty" jsonschema:"cleanup only: archive instead of delete"`
}

// ResolveOutput is the output for the resolve_environment tool.
type ResolveOutput struct {
	Feature          FeatureInfo     `json:"feature"                     jsonschema:"repository, feature and artifact paths"`
	Mode             string          `json:"mode"                        jsonschema:"resolved mode"`
	ReportPath       string          `json:"report_path"                 jsonschema:"where to write the report; the directory exists"`
	HasConfig        bool            `json:"has_config"                  jsonschema:"whether .specify/<mode>-config.json exists"`
	Tools            map[string]bool `json:"tools"                       jsonschema:"tool name to availability on PATH"`
	Focus            string          `json:"focus,omitempty"             jsonschema:"validate focus area"`
	CleanupType      string          `json:"cleanup_type,omitempty"      jsonschema:"cleanup type"`
	DryRun           bool            `json:"dry_run,omitempty"           jsonschema:"cleanup: report only"`
	ArchiveOnly      bool            `json:"archive_only,omitempty"      jsonschema:"cleanup: archive instead of delete"`
	BackupBranch     string          `json:"backup_branch,omitempty"     jsonschema:"cleanup: checkpoint branch or manual-backup-required"`
	ProjectLanguages []string        `json:"project_languages,omitempty" jsonschema:"cleanup: detected source languages"`
}

func handleResolveEnvironment(newResolver ResolverFactory) mcp.ToolHandlerFor[ResolveInput, ResolveOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ResolveInput) (*mcp.CallToolResult, ResolveOutput, error) {
		env, err := newResolver().Resolve(ctx, workspace.Mode(input.Mode), workspace.Options{
			Focus:       input.Focus,
			CleanupType: input.CleanupType,
			Execute:     input.Execute,
			ArchiveOnly: input.ArchiveOnly,
		})
		if err != nil {
			return nil, ResolveOutput{}, err
		}

		out := ResolveOutput{
			Feature:    toFeatureInfo(&env.Feature),
			Mode:       string(env.Mode),
			ReportPath: env.ReportPath,
			HasConfig:  env.HasConfig,
			Tools:      env.Tools,
			Focus:      env.Options.Focus,
		}
		if env.Mode == workspace.ModeCleanup {
			out.CleanupType = env.Options.CleanupType
			out.DryRun = env.Options.DryRun()
			out.ArchiveOnly = env.Options.ArchiveOnly
			out.BackupBranch = env.BackupBranch
			out.ProjectLanguages = env.ProjectLanguages
		}
		return nil, out, nil
	}
}

// --- create_prp tool ---

// CreatePRPInput is the input for the create_prp tool.
type CreatePRPInput struct {
	Template string `json:"template,omitempty" jsonschema:"template path; defaults to .specify/templates/prp-template.md"`
	Feature  string `json:"feature,omitempty"  jsonschema:"feature identifier; defaults to the current branch"`
}

// CreatePRPOutput is the output for the create_prp tool.
type CreatePRPOutput struct {
	Path       string   `json:"path"                 jsonschema:"written PRP file"`
	Feature    string   `json:"feature"              jsonschema:"feature identifier used"`
	Template   string   `json:"template"             jsonschema:"template that was read"`
	Unconsumed []string `json:"unconsumed,omitempty" jsonschema:"placeholders left without a value"`
	Warning    string   `json:"warning,omitempty"    jsonschema:"non-fatal warning message"`
}

func handleCreatePRP(newResolver ResolverFactory) mcp.ToolHandlerFor[CreatePRPInput, CreatePRPOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CreatePRPInput) (*mcp.CallToolResult, CreatePRPOutput, error) {
		resolver := newResolver()
		resolver.FeatureOverride = input.Feature
		feature, err := resolver.Locate(ctx)
		if err != nil {
			return nil, CreatePRPOutput{}, err
		}

		result, err := prp.Create(feature, prp.Request{TemplatePath: input.Template})
		if err != nil {
			return nil, CreatePRPOutput{}, err
		}

		out := CreatePRPOutput{
			Path:       result.Path,
			Feature:    result.Branch,
			Template:   result.Template,
			Unconsumed: result.Unconsumed,
		}
		if len(result.Unconsumed) > 0 {
			out.Warning = "template placeholders without a value were left in place"
		}
		return nil, out, nil
	}
}
