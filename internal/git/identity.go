package git

import (
	"context"

	"github.com/fenwood/moss/internal/output"
)

// Identity is the author/committer pair recorded on commits.
type Identity struct {
	Name  string
	Email string
}

// String renders the identity in git's "Name <email>" form.
func (i Identity) String() string {
	return i.Name + " <" + i.Email + ">"
}

// ResolveIdentity determines the commit identity. Explicit values win;
// missing pieces fall back to the repository's user.name/user.email
// config. Returns a user error when no complete pair is available, so
// no commit is ever attempted with a partial identity.
func (r Repo) ResolveIdentity(ctx context.Context, name, email string) (Identity, error) {
	if name == "" {
		if v, err := r.RunContext(ctx, "config", "user.name"); err == nil {
			name = v
		}
	}
	if email == "" {
		if v, err := r.RunContext(ctx, "config", "user.email"); err == nil {
			email = v
		}
	}

	if name == "" || email == "" {
		return Identity{}, output.NewUserError(
			"commit author not configured: set GIT_AUTHOR_NAME and GIT_AUTHOR_EMAIL, or configure user.name/user.email in the repository")
	}
	return Identity{Name: name, Email: email}, nil
}

// WriteIdentity persists the identity into the repository's local
// config. Callers treat a failure here as non-fatal: the identity still
// reaches commits through the environment.
func (r Repo) WriteIdentity(ctx context.Context, id Identity) error {
	if _, err := r.RunContext(ctx, "config", "user.name", id.Name); err != nil {
		return err
	}
	if _, err := r.RunContext(ctx, "config", "user.email", id.Email); err != nil {
		return err
	}
	return nil
}
