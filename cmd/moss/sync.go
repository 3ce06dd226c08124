// Package main provides the entry point for the moss CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/fenwood/moss/internal/config"
	"github.com/fenwood/moss/internal/output"
)

// newSyncCmd creates the sync command.
func newSyncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Clone or reconcile the managed repository",
		Long: `Clone the activity repository if needed and reconcile it with the remote.

A missing clone is created; a broken clone is deleted and re-created.
When the branch exists on the remote, the local branch is hard-reset to
its tip and any local divergence is discarded (a warning names the
discarded commit). Otherwise the local branch is checked out or created
fresh.

Examples:
  moss sync
  moss sync --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSync(cmd)
		},
	}
	return cmd
}

// runSync executes the sync command.
func runSync(cmd *cobra.Command) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd)).
		WithStderr(cmd.ErrOrStderr())

	s, err := config.Resolve(repoURL(cmd))
	if err != nil {
		printer.Error(err)
		return err
	}

	ws, err := openWorkspace(cmd.Context(), s, printer)
	if err != nil {
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		return printer.WriteJSON(map[string]any{
			"path":          s.RepoPath,
			"branch":        s.Branch,
			"head":          ws.sync.HEAD,
			"clone_state":   ws.clone.String(),
			"remote_branch": ws.sync.RemoteBranch,
			"discarded":     ws.sync.Discarded,
		})
	}

	printer.Section("Repository")
	printer.KeyValue("Path", s.RepoPath)
	printer.KeyValue("Branch", s.Branch)
	head := ws.sync.HEAD
	if head == "" {
		head = "(no commits)"
	} else {
		head = shortSHA(head)
	}
	printer.KeyValue("HEAD", head)
	printer.KeyValue("Clone", ws.clone.String())
	printer.KeyValue("Remote branch", formatBool(ws.sync.RemoteBranch))
	printer.Println()
	return printer.Success(map[string]any{"message": "Repository synchronized."})
}

// formatBool returns a human-readable boolean string.
func formatBool(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
