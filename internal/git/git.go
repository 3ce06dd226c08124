package git

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"

	"github.com/fenwood/moss/internal/output"
)

// Repo is a handle on a local working copy. Methods shell out to the
// git binary with the repository as the working directory.
type Repo struct {
	Dir string
}

// run executes git with the given working directory and extra
// environment, capturing stdout as a trimmed string. Terminal prompts
// are disabled so a missing credential fails instead of hanging.
func run(ctx context.Context, dir string, extraEnv []string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")
	cmd.Env = append(cmd.Env, extraEnv...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		var execErr *exec.Error
		if errors.As(err, &execErr) {
			return "", output.NewSystemError("git not found: ensure git is installed and in PATH")
		}

		errMsg := strings.TrimSpace(stderr.String())
		if errMsg == "" {
			errMsg = err.Error()
		}
		return "", output.NewSystemErrorWithCause("git command failed: "+errMsg, err)
	}

	return strings.TrimSpace(stdout.String()), nil
}

// Run executes a git command in the repository.
func (r Repo) Run(args ...string) (string, error) {
	return r.RunContext(context.Background(), args...)
}

// RunContext executes a git command in the repository with a context.
func (r Repo) RunContext(ctx context.Context, args ...string) (string, error) {
	return run(ctx, r.Dir, nil, args...)
}

// runEnv executes a git command with extra environment variables, used
// for commits that override the author/committer identity and dates.
func (r Repo) runEnv(ctx context.Context, extraEnv []string, args ...string) (string, error) {
	return run(ctx, r.Dir, extraEnv, args...)
}

// IsRepo checks whether the handle's directory is a valid git repository.
func (r Repo) IsRepo(ctx context.Context) bool {
	_, err := r.RunContext(ctx, "rev-parse", "--git-dir")
	return err == nil
}

// HEAD returns the full SHA of the current HEAD commit.
// Fails on a repository with no commits yet.
func (r Repo) HEAD(ctx context.Context) (string, error) {
	sha, err := r.RunContext(ctx, "rev-parse", "HEAD")
	if err != nil {
		return "", output.NewSystemErrorWithCause("failed to resolve HEAD", err)
	}
	return sha, nil
}

// CurrentBranch returns the name of the checked-out branch.
func (r Repo) CurrentBranch(ctx context.Context) (string, error) {
	branch, err := r.RunContext(ctx, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", output.NewSystemErrorWithCause("failed to get current branch", err)
	}
	return branch, nil
}

// IsDirty reports whether the working tree differs from HEAD,
// considering the index, tracked modifications, and untracked files.
func (r Repo) IsDirty(ctx context.Context) bool {
	out, err := r.RunContext(ctx, "status", "--porcelain")
	if err != nil {
		return false
	}
	return out != ""
}

// isAncestor reports whether commit a is reachable from commit b.
func (r Repo) isAncestor(ctx context.Context, a, b string) bool {
	_, err := r.RunContext(ctx, "merge-base", "--is-ancestor", a, b)
	return err == nil
}
