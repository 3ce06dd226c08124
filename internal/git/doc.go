// Package git provides git operations via exec for the moss CLI.
//
// All repository operations shell out to the git executable, capturing
// stdout/stderr and translating failures into coded errors. Remote
// access therefore uses whatever credential mechanism the environment
// already has (SSH agent, credential helpers); this package never
// manages transport credentials.
//
// A Repo is a handle on the managed working copy:
//
//	repo := git.Repo{Dir: settings.RepoPath}
//	out, err := repo.RunContext(ctx, "status", "--porcelain")
//
// Higher-level operations cover the moss workflow:
//
//	repo, state, err := git.EnsureClone(ctx, url, dir) // clone or heal the local copy
//	res, err := repo.Sync(ctx, branch)                 // reconcile with origin/<branch>
//	id, err := repo.ResolveIdentity(ctx, name, email)  // settings then repo config
//	sha, err := repo.Commit(ctx, opts)                 // explicit identity, optional backdate
//	err = repo.Push(ctx, "origin", branch, false)
//
// Errors are wrapped with exit codes: ExitSystemError (2) for git or
// transport failures, ExitConflict (3) for rejected non-fast-forward
// pushes, and ExitUserError (1) for unresolvable identity.
package git
