package git

import (
	"context"
	"errors"
	"strings"

	"github.com/fenwood/moss/internal/output"
)

// EnsureRemote guarantees that the named remote exists and points at
// url, creating it or correcting a drifted URL. Reports whether
// anything was changed.
func (r Repo) EnsureRemote(ctx context.Context, name, url string) (bool, error) {
	current, err := r.RunContext(ctx, "remote", "get-url", name)
	if err != nil {
		if _, err := r.RunContext(ctx, "remote", "add", name, url); err != nil {
			return false, err
		}
		return true, nil
	}

	if current != url {
		if _, err := r.RunContext(ctx, "remote", "set-url", name, url); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}

// HasRemote checks whether the named remote is configured.
func (r Repo) HasRemote(ctx context.Context, name string) bool {
	_, err := r.RunContext(ctx, "remote", "get-url", name)
	return err == nil
}

// Remotes lists the configured remote names.
func (r Repo) Remotes(ctx context.Context) ([]string, error) {
	out, err := r.RunContext(ctx, "remote")
	if err != nil {
		return nil, err
	}
	if out == "" {
		return nil, nil
	}
	return strings.Fields(out), nil
}

// HasUpstream reports whether the current branch has a tracking branch
// configured.
func (r Repo) HasUpstream(ctx context.Context) bool {
	_, err := r.RunContext(ctx, "rev-parse", "--abbrev-ref", "--symbolic-full-name", "@{u}")
	return err == nil
}

// Push pushes the branch to the named remote, optionally forced.
// A rejected non-fast-forward push is reported as a conflict error.
func (r Repo) Push(ctx context.Context, remote, branch string, force bool) error {
	args := []string{"push", remote, branch}
	if force {
		args = append(args, "--force")
	}
	if _, err := r.RunContext(ctx, args...); err != nil {
		return classifyPushError(remote, err)
	}
	return nil
}

// PushSetUpstream pushes the branch to origin and records it as the
// upstream for future pushes. Used on the first push of a branch.
func (r Repo) PushSetUpstream(ctx context.Context, branch string) error {
	if _, err := r.RunContext(ctx, "push", "--set-upstream", "origin", branch); err != nil {
		return classifyPushError("origin", err)
	}
	return nil
}

// classifyPushError upgrades rejected pushes to conflict errors so the
// process exit code distinguishes them from transport failures.
func classifyPushError(remote string, err error) error {
	var exitErr *output.ExitError
	if errors.As(err, &exitErr) {
		msg := exitErr.Message
		if strings.Contains(msg, "non-fast-forward") || strings.Contains(msg, "[rejected]") || strings.Contains(msg, "fetch first") {
			return output.NewConflictError("push to " + remote + " rejected: " + msg)
		}
	}
	return err
}
