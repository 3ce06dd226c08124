// Package main provides the entry point for the moss CLI.
package main

import (
	"context"
	"time"

	"github.com/briandowns/spinner"

	"github.com/fenwood/moss/internal/activity"
	"github.com/fenwood/moss/internal/config"
	"github.com/fenwood/moss/internal/git"
	"github.com/fenwood/moss/internal/output"
)

// workspace is an opened, synchronized clone ready for commits.
type workspace struct {
	repo  git.Repo
	clone git.CloneState
	sync  git.SyncResult
}

// openWorkspace ensures the managed clone exists, corrects the origin
// URL if it drifted, and reconciles the branch with the remote. A hard
// reset that discarded local commits is warned about, never hidden.
func openWorkspace(ctx context.Context, s config.Settings, printer *output.Printer) (*workspace, error) {
	stop := startSpinner(printer, "Syncing repository...")

	repo, state, err := git.EnsureClone(ctx, s.RepoURL, s.RepoPath)
	if err != nil {
		stop()
		return nil, err
	}

	if _, err := repo.EnsureRemote(ctx, "origin", s.RepoURL); err != nil {
		stop()
		return nil, err
	}

	res, err := repo.Sync(ctx, s.Branch)
	stop()
	if err != nil {
		return nil, err
	}

	if state == git.CloneReplaced {
		printer.Warn("local clone at %s was broken and has been re-cloned", s.RepoPath)
	}
	if res.Discarded {
		printer.Warn("hard reset to origin/%s discarded local commits (was %s)", s.Branch, shortSHA(res.DiscardedFrom))
	}

	return &workspace{repo: repo, clone: state, sync: res}, nil
}

// publishRequest describes one record-commit-push cycle.
type publishRequest struct {
	content    string    // activity text written to the dated file
	message    string    // commit message
	fileTime   time.Time // resolves the file path and heading/update label
	commitTime time.Time // zero means the commit uses the wall clock
}

// publishResult reports what one cycle actually did.
type publishResult struct {
	Path            string `json:"path"`
	Message         string `json:"message"`
	Committed       bool   `json:"committed"`
	CommitSHA       string `json:"commit,omitempty"`
	SecondaryPushed bool   `json:"secondary_pushed,omitempty"`
}

// publish writes the activity record, commits when the tree is dirty,
// pushes to origin, and best-effort pushes to the secondary remote.
// Identity resolution failures abort before anything is staged. A
// secondary push failure is warned about and swallowed; the cycle still
// counts as a success.
func publish(ctx context.Context, ws *workspace, s config.Settings, printer *output.Printer, req publishRequest) (publishResult, error) {
	id, err := ws.repo.ResolveIdentity(ctx, s.AuthorName, s.AuthorEmail)
	if err != nil {
		return publishResult{}, err
	}
	if err := ws.repo.WriteIdentity(ctx, id); err != nil {
		printer.Stderr("note: could not record identity in repo config: %v\n", err)
	}

	store := activity.NewStore(ws.repo.Dir)
	if _, err := store.Write(req.content, req.fileTime); err != nil {
		return publishResult{}, err
	}

	res := publishResult{Path: activity.RelPath(req.fileTime), Message: req.message}

	if err := ws.repo.StageAll(ctx); err != nil {
		return res, err
	}

	if ws.repo.IsDirty(ctx) {
		sha, err := ws.repo.Commit(ctx, git.CommitOptions{
			Message:  req.message,
			Identity: id,
			When:     req.commitTime,
		})
		if err != nil {
			return res, err
		}
		res.Committed = true
		res.CommitSHA = sha
	} else {
		printer.Stderr("nothing to commit, pushing current state\n")
	}

	stop := startSpinner(printer, "Pushing to origin...")
	err = pushPrimary(ctx, ws.repo, s.Branch)
	stop()
	if err != nil {
		return res, err
	}

	if s.SecondaryEnabled() {
		if err := pushSecondary(ctx, ws.repo, s); err != nil {
			printer.Warn("secondary push to %s failed: %v", s.SecondaryRemoteName, err)
		} else {
			res.SecondaryPushed = true
		}
	}

	return res, nil
}

// pushPrimary pushes the branch to origin, setting the upstream on the
// first push of a new branch.
func pushPrimary(ctx context.Context, repo git.Repo, branch string) error {
	if !repo.HasUpstream(ctx) {
		return repo.PushSetUpstream(ctx, branch)
	}
	return repo.Push(ctx, "origin", branch, false)
}

// pushSecondary mirrors the branch to the secondary remote, creating or
// correcting the remote first.
func pushSecondary(ctx context.Context, repo git.Repo, s config.Settings) error {
	if _, err := repo.EnsureRemote(ctx, s.SecondaryRemoteName, s.SecondaryRemoteURL); err != nil {
		return err
	}
	return repo.Push(ctx, s.SecondaryRemoteName, s.Branch, s.ForcePushSecondary)
}

// reportPublish prints one publish result in human mode.
func reportPublish(printer *output.Printer, res publishResult) {
	if !res.Committed {
		printer.Println("Nothing to commit; pushed current state.")
		return
	}
	printer.Print("Pushed %s  %s  %s\n", shortSHA(res.CommitSHA), res.Path, res.Message)
}

// startSpinner shows a progress spinner while a long operation runs.
// Returns a stop function; a no-op when stdout is not a TTY or JSON
// mode is on.
func startSpinner(printer *output.Printer, suffix string) func() {
	if printer.IsJSON() || !printer.IsTTY() {
		return func() {}
	}
	sp := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	sp.Suffix = " " + suffix
	_ = sp.Color("cyan")
	sp.Start()
	return sp.Stop
}

// shortSHA returns a shortened SHA (first 7 characters).
func shortSHA(sha string) string {
	if len(sha) > 7 {
		return sha[:7]
	}
	return sha
}
