// Package git provides Git operations via exec for the specenv CLI.
//
// This package shells out to the git executable, capturing stdout/stderr and
// translating failures to *output.ExitError values. It covers only the queries
// the resolver needs:
//
//	repo := git.NewRepo(dir)
//	repo.Toplevel(ctx)              // working tree root
//	repo.CurrentBranch(ctx)         // "" on detached HEAD
//	repo.HasUncommittedChanges(ctx) // porcelain status
//	repo.CreateBranch(ctx, name)    // additive checkpoint, never checked out
//
// For anything else use RunIn:
//
//	out, err := git.RunIn(ctx, dir, "log", "--oneline", "-5")
package git
