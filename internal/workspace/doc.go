// Package workspace resolves the feature environment of a repository.
//
// Resolution gathers facts and never judges them. Only three conditions are
// fatal: no repository root (ErrNoRepoRoot), a dirty working tree in cleanup
// mode (ErrDirtyWorkingTree) and a checkpoint name collision
// (ErrCheckpointExists). A missing specs/ directory, missing artifact files,
// missing optional tools or an empty branch name all produce a complete
// Environment with explicit fallback markers.
//
// Version control and PATH lookups sit behind the VersionControl and
// ToolProbe interfaces so tests can swap in fakes:
//
//	resolver := workspace.New(dir, nil, nil) // git + exec.LookPath
//	env, err := resolver.Resolve(ctx, workspace.ModeCleanup, workspace.Options{})
//
// Locate runs only root, feature and artifact discovery and has no side
// effects at all.
package workspace
