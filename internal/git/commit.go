package git

import (
	"context"
	"time"
)

// gitDateFormat is the timestamp form git accepts in the author and
// committer date environment variables: "2006-01-02 15:04:05 +0200".
const gitDateFormat = "2006-01-02 15:04:05 -0700"

// FormatDate renders a timestamp for GIT_AUTHOR_DATE/GIT_COMMITTER_DATE.
func FormatDate(t time.Time) string {
	return t.Format(gitDateFormat)
}

// CommitOptions control a single commit.
type CommitOptions struct {
	Message  string
	Identity Identity
	// When, if non-zero, backdates both the author and committer
	// timestamps to the given moment.
	When time.Time
}

// StageAll stages every working-tree change, including untracked files.
func (r Repo) StageAll(ctx context.Context) error {
	_, err := r.RunContext(ctx, "add", "-A")
	return err
}

// Commit creates one commit carrying the identity on both the author
// and committer fields, backdated when opts.When is set. Returns the
// new HEAD SHA. Callers are expected to have staged changes and checked
// IsDirty; committing a clean tree is an error.
func (r Repo) Commit(ctx context.Context, opts CommitOptions) (string, error) {
	env := []string{
		"GIT_AUTHOR_NAME=" + opts.Identity.Name,
		"GIT_AUTHOR_EMAIL=" + opts.Identity.Email,
		"GIT_COMMITTER_NAME=" + opts.Identity.Name,
		"GIT_COMMITTER_EMAIL=" + opts.Identity.Email,
	}
	if !opts.When.IsZero() {
		stamp := FormatDate(opts.When)
		env = append(env,
			"GIT_AUTHOR_DATE="+stamp,
			"GIT_COMMITTER_DATE="+stamp,
		)
	}

	if _, err := r.runEnv(ctx, env, "commit", "-m", opts.Message); err != nil {
		return "", err
	}
	return r.HEAD(ctx)
}
