// Package main provides the entry point for the moss CLI.
package main

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fenwood/moss/internal/config"
	"github.com/fenwood/moss/internal/git"
	"github.com/fenwood/moss/internal/output"
)

// statusResult holds the data for status output.
type statusResult struct {
	RepoURL         string   `json:"repo_url"`
	RepoPath        string   `json:"repo_path"`
	Branch          string   `json:"branch"`
	Timezone        string   `json:"timezone"`
	Model           string   `json:"model"`
	SecondaryRemote string   `json:"secondary_remote,omitempty"`
	SecondaryURL    string   `json:"secondary_url,omitempty"`
	ForceSecondary  bool     `json:"force_secondary,omitempty"`
	CloneExists     bool     `json:"clone_exists"`
	CurrentBranch   string   `json:"current_branch,omitempty"`
	Head            string   `json:"head,omitempty"`
	Dirty           bool     `json:"dirty,omitempty"`
	Remotes         []string `json:"remotes,omitempty"`
}

// newStatusCmd creates the status command.
func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show resolved settings and clone state",
		Long: `Show the resolved settings and the state of the managed clone.

Settings come from the environment (plus --repo-url). The clone section
reports whether the local copy exists and, if so, its branch, HEAD,
dirtiness, and configured remotes. Nothing is cloned or fetched.

Examples:
  moss status
  moss status --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStatus(cmd)
		},
	}
	return cmd
}

// runStatus executes the status command.
func runStatus(cmd *cobra.Command) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd)).
		WithStderr(cmd.ErrOrStderr())

	s := config.ResolveOptionalURL(repoURL(cmd))
	result := gatherStatus(cmd.Context(), s)

	if printer.IsJSON() {
		return printer.WriteJSON(result)
	}

	printHumanStatus(printer, result)
	return nil
}

// gatherStatus collects resolved settings and repository state. Repo
// probes are best-effort; a missing clone leaves the clone fields zero.
func gatherStatus(ctx context.Context, s config.Settings) *statusResult {
	result := &statusResult{
		RepoURL:  s.RepoURL,
		RepoPath: s.RepoPath,
		Branch:   s.Branch,
		Timezone: s.Timezone,
		Model:    s.OpenAIModel,
	}
	if s.SecondaryEnabled() {
		result.SecondaryRemote = s.SecondaryRemoteName
		result.SecondaryURL = s.SecondaryRemoteURL
		result.ForceSecondary = s.ForcePushSecondary
	}

	repo := git.Repo{Dir: s.RepoPath}
	if !repo.IsRepo(ctx) {
		return result
	}
	result.CloneExists = true

	if branch, err := repo.CurrentBranch(ctx); err == nil {
		result.CurrentBranch = branch
	}
	if head, err := repo.HEAD(ctx); err == nil {
		result.Head = head
	}
	result.Dirty = repo.IsDirty(ctx)
	if remotes, err := repo.Remotes(ctx); err == nil {
		result.Remotes = remotes
	}
	return result
}

// printHumanStatus outputs status in human-readable format.
func printHumanStatus(printer *output.Printer, st *statusResult) {
	printer.Section("Settings")
	printer.KeyValue("Repo URL", orUnset(st.RepoURL))
	printer.KeyValue("Repo path", st.RepoPath)
	printer.KeyValue("Branch", st.Branch)
	printer.KeyValue("Timezone", st.Timezone)
	printer.KeyValue("Model", st.Model)
	if st.SecondaryRemote != "" {
		secondary := st.SecondaryRemote + " " + st.SecondaryURL
		if st.ForceSecondary {
			secondary += " (forced)"
		}
		printer.KeyValue("Secondary", secondary)
	}

	printer.Section("Clone")
	printer.KeyValue("Exists", formatBool(st.CloneExists))
	if !st.CloneExists {
		return
	}
	printer.KeyValue("Branch", orUnset(st.CurrentBranch))
	head := st.Head
	if head == "" {
		head = "(no commits)"
	} else {
		head = shortSHA(head)
	}
	printer.KeyValue("HEAD", head)
	printer.KeyValue("Dirty", formatBool(st.Dirty))
	printer.KeyValue("Remotes", strings.Join(st.Remotes, ", "))
}

// orUnset substitutes a placeholder for empty values.
func orUnset(v string) string {
	if v == "" {
		return "(not set)"
	}
	return v
}
