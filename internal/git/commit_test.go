package git

import (
	"context"
	"testing"
	"time"
)

func TestFormatDate(t *testing.T) {
	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{
			name: "positive offset",
			t:    time.Date(2024, 3, 10, 12, 0, 0, 0, time.FixedZone("CEST", 2*3600)),
			want: "2024-03-10 12:00:00 +0200",
		},
		{
			name: "negative offset",
			t:    time.Date(2024, 11, 30, 23, 59, 59, 0, time.FixedZone("EST", -5*3600)),
			want: "2024-11-30 23:59:59 -0500",
		},
		{
			name: "utc",
			t:    time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			want: "2025-01-01 00:00:00 +0000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatDate(tt.t); got != tt.want {
				t.Errorf("FormatDate() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStageAll(t *testing.T) {
	requireGit(t)
	ctx := context.Background()
	repo := newScratchRepo(t)

	writeFile(t, repo.Dir, "2024/03/10.md", "# 10.03.24\n\nnotes\n")
	if err := repo.StageAll(ctx); err != nil {
		t.Fatalf("StageAll() error = %v", err)
	}

	staged := mustGit(t, repo.Dir, "diff", "--cached", "--name-only")
	if staged != "2024/03/10.md" {
		t.Errorf("staged files = %q, want the new activity file", staged)
	}
}

func TestCommit(t *testing.T) {
	requireGit(t)
	ctx := context.Background()

	id := Identity{Name: "Swamp Bot", Email: "bot@fenwood.dev"}

	t.Run("records identity on author and committer", func(t *testing.T) {
		repo := newScratchRepo(t)
		writeFile(t, repo.Dir, "2024/03/10.md", "# 10.03.24\n\nnotes\n")
		if err := repo.StageAll(ctx); err != nil {
			t.Fatalf("StageAll() error = %v", err)
		}

		sha, err := repo.Commit(ctx, CommitOptions{
			Message:  "Update activities for 2024-03-10",
			Identity: id,
		})
		if err != nil {
			t.Fatalf("Commit() error = %v", err)
		}
		if len(sha) != 40 {
			t.Errorf("Commit() returned SHA of length %d, expected 40", len(sha))
		}

		if got := mustGit(t, repo.Dir, "log", "-1", "--format=%an"); got != id.Name {
			t.Errorf("author name = %q, want %q", got, id.Name)
		}
		if got := mustGit(t, repo.Dir, "log", "-1", "--format=%ae"); got != id.Email {
			t.Errorf("author email = %q, want %q", got, id.Email)
		}
		if got := mustGit(t, repo.Dir, "log", "-1", "--format=%cn"); got != id.Name {
			t.Errorf("committer name = %q, want %q", got, id.Name)
		}
		if got := mustGit(t, repo.Dir, "log", "-1", "--format=%ce"); got != id.Email {
			t.Errorf("committer email = %q, want %q", got, id.Email)
		}
		if got := mustGit(t, repo.Dir, "log", "-1", "--format=%s"); got != "Update activities for 2024-03-10" {
			t.Errorf("subject = %q, want the commit message", got)
		}
	})

	t.Run("backdates author and committer", func(t *testing.T) {
		repo := newScratchRepo(t)
		writeFile(t, repo.Dir, "2024/07/01.md", "# 01.07.24\n\nnotes\n")
		if err := repo.StageAll(ctx); err != nil {
			t.Fatalf("StageAll() error = %v", err)
		}

		when := time.Date(2024, 7, 1, 12, 0, 0, 0, time.FixedZone("CEST", 2*3600))
		if _, err := repo.Commit(ctx, CommitOptions{
			Message:  "Update activities for 2024-07-01",
			Identity: id,
			When:     when,
		}); err != nil {
			t.Fatalf("Commit() error = %v", err)
		}

		want := "2024-07-01 12:00:00 +0200"
		if got := mustGit(t, repo.Dir, "log", "-1", "--format=%ai"); got != want {
			t.Errorf("author date = %q, want %q", got, want)
		}
		if got := mustGit(t, repo.Dir, "log", "-1", "--format=%ci"); got != want {
			t.Errorf("committer date = %q, want %q", got, want)
		}
	})

	t.Run("zero When uses current time", func(t *testing.T) {
		repo := newScratchRepo(t)
		writeFile(t, repo.Dir, "note.md", "now\n")
		if err := repo.StageAll(ctx); err != nil {
			t.Fatalf("StageAll() error = %v", err)
		}

		before := time.Now()
		if _, err := repo.Commit(ctx, CommitOptions{Message: "note", Identity: id}); err != nil {
			t.Fatalf("Commit() error = %v", err)
		}

		stamp := mustGit(t, repo.Dir, "log", "-1", "--format=%ai")
		got, parseErr := time.Parse(gitDateFormat, stamp)
		if parseErr != nil {
			t.Fatalf("author date %q does not parse: %v", stamp, parseErr)
		}
		if diff := got.Sub(before); diff < -time.Hour || diff > time.Hour {
			t.Errorf("author date %v too far from now (%v)", got, before)
		}
	})

	t.Run("clean tree fails", func(t *testing.T) {
		repo := newScratchRepo(t)
		if _, err := repo.Commit(ctx, CommitOptions{Message: "nothing", Identity: id}); err == nil {
			t.Error("Commit() expected error with nothing staged")
		}
	})
}
