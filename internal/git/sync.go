package git

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fenwood/moss/internal/output"
)

// CloneState describes what EnsureClone had to do to produce a usable
// working copy.
type CloneState int

const (
	// CloneExisting means a valid clone was already in place.
	CloneExisting CloneState = iota
	// CloneFresh means the path was absent and a new clone was made.
	CloneFresh
	// CloneReplaced means a broken directory was deleted and re-cloned.
	CloneReplaced
)

// String names the state for display.
func (s CloneState) String() string {
	switch s {
	case CloneFresh:
		return "fresh"
	case CloneReplaced:
		return "replaced"
	default:
		return "existing"
	}
}

// EnsureClone guarantees a usable working copy at dir, cloning from url
// when the path is absent and deleting-then-recloning when the path
// exists but is not a valid repository. The local copy is treated as a
// disposable cache of the remote.
func EnsureClone(ctx context.Context, url, dir string) (Repo, CloneState, error) {
	repo := Repo{Dir: dir}

	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := clone(ctx, url, dir); err != nil {
			return Repo{}, CloneFresh, err
		}
		return repo, CloneFresh, nil
	}

	if repo.IsRepo(ctx) {
		return repo, CloneExisting, nil
	}

	if err := os.RemoveAll(dir); err != nil {
		return Repo{}, CloneReplaced, output.NewSystemErrorWithCause("failed to remove broken clone at "+dir, err)
	}
	if err := clone(ctx, url, dir); err != nil {
		return Repo{}, CloneReplaced, err
	}
	return repo, CloneReplaced, nil
}

// clone runs git clone into dir, creating parent directories first.
func clone(ctx context.Context, url, dir string) error {
	if parent := filepath.Dir(dir); parent != "." {
		if err := os.MkdirAll(parent, 0o755); err != nil {
			return output.NewSystemErrorWithCause("failed to create "+parent, err)
		}
	}
	if _, err := run(ctx, "", nil, "clone", url, dir); err != nil {
		return err
	}
	return nil
}

// SyncResult reports what Sync did to the local branch.
type SyncResult struct {
	// RemoteBranch is true when the branch existed on origin and the
	// local branch was reset to match it.
	RemoteBranch bool
	// Discarded is true when the reset threw away local commits that
	// were not reachable from the remote tip.
	Discarded bool
	// DiscardedFrom is the local HEAD before a discarding reset.
	DiscardedFrom string
	// HEAD is the commit the branch points at after the sync; empty on
	// a repository with no commits yet.
	HEAD string
}

// Sync reconciles the local branch with origin/<branch>. When the
// remote branch exists the local branch is created or hard-reset to the
// remote tip, discarding any divergent local commits; otherwise the
// existing local branch is checked out, or a fresh one is created from
// the current HEAD. Remote state wins over local history.
func (r Repo) Sync(ctx context.Context, branch string) (SyncResult, error) {
	var res SyncResult

	if _, err := r.RunContext(ctx, "fetch", "--all", "--prune"); err != nil {
		return res, err
	}

	if r.remoteBranchExists(ctx, branch) {
		res.RemoteBranch = true
		prev, _ := r.RunContext(ctx, "rev-parse", "HEAD") // empty before the first commit

		if _, err := r.RunContext(ctx, "checkout", "-B", branch, "origin/"+branch); err != nil {
			return res, err
		}
		if _, err := r.RunContext(ctx, "reset", "--hard", "origin/"+branch); err != nil {
			return res, err
		}

		head, err := r.HEAD(ctx)
		if err != nil {
			return res, err
		}
		res.HEAD = head
		if prev != "" && prev != head && !r.isAncestor(ctx, prev, head) {
			res.Discarded = true
			res.DiscardedFrom = prev
		}
		return res, nil
	}

	// No remote branch: fall back to the local one, or create it.
	if r.localBranchExists(ctx, branch) {
		if _, err := r.RunContext(ctx, "checkout", branch); err != nil {
			return res, err
		}
	} else {
		if _, err := r.RunContext(ctx, "checkout", "-B", branch); err != nil {
			return res, err
		}
	}

	head, _ := r.RunContext(ctx, "rev-parse", "HEAD") // unborn branch has no HEAD
	res.HEAD = head
	return res, nil
}

// remoteBranchExists queries origin for the branch without touching the
// local state. Lookup failures count as absent.
func (r Repo) remoteBranchExists(ctx context.Context, branch string) bool {
	out, err := r.RunContext(ctx, "ls-remote", "--heads", "origin", branch)
	if err != nil {
		return false
	}
	return out != ""
}

// localBranchExists checks for refs/heads/<branch>.
func (r Repo) localBranchExists(ctx context.Context, branch string) bool {
	_, err := r.RunContext(ctx, "show-ref", "--verify", "--quiet", fmt.Sprintf("refs/heads/%s", branch))
	return err == nil
}
