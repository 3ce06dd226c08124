// Package main provides the entry point for the moss CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/fenwood/moss/internal/config"
	"github.com/fenwood/moss/internal/envfile"
	"github.com/fenwood/moss/internal/output"
)

// Build info set via ldflags at build time by goreleaser.
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123 -X main.date=2024-01-01"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// isJSONMode reads the --json persistent flag from the command hierarchy.
// Commands stay independently testable without shared mutable state.
func isJSONMode(cmd *cobra.Command) bool {
	flag := cmd.Flags().Lookup("json")
	if flag == nil {
		flag = cmd.Root().PersistentFlags().Lookup("json")
	}
	return flag != nil && flag.Value.String() == "true"
}

// useColor resolves the effective color mode from the --color persistent
// flag and TTY detection.
func useColor(cmd *cobra.Command) bool {
	mode := "auto"
	if flag := cmd.Root().PersistentFlags().Lookup("color"); flag != nil {
		mode = flag.Value.String()
	}
	return output.ResolveColorMode(mode, output.IsTTY(cmd.OutOrStdout()))
}

// repoURL reads the --repo-url persistent flag from the command hierarchy.
func repoURL(cmd *cobra.Command) string {
	flag := cmd.Flags().Lookup("repo-url")
	if flag == nil {
		flag = cmd.Root().PersistentFlags().Lookup("repo-url")
	}
	if flag == nil {
		return ""
	}
	return flag.Value.String()
}

// buildVersion returns the full version string including commit and date.
func buildVersion() string {
	if commit == "none" && date == "unknown" {
		return version
	}
	shortCommit := commit
	if len(commit) > 7 {
		shortCommit = commit[:7]
	}
	return fmt.Sprintf("%s (%s, %s)", version, shortCommit, date)
}

func main() {
	code := run()
	os.Exit(code)
}

func run() int {
	cmd := newRootCmd()
	err := fang.Execute(context.Background(), cmd, fang.WithVersion(buildVersion()))
	return output.GetExitCode(err)
}

// newRootCmd creates the root command for the moss CLI.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "moss",
		Short: "Automated git activity journal",
		Long: `Moss - an automated git activity journal.

Moss maintains a managed clone of an activity repository, writes dated
markdown notes into it, commits them under a configured identity
(optionally backdated to local noon), and pushes to one or two remotes.
Commit messages can be authored by an OpenAI-compatible chat endpoint.

Configuration comes from the environment (REPO_URL, BRANCH, TIMEZONE,
OPENAI_API_KEY, ...), optionally loaded from .env.local/.env files.

All commands support --json for structured output.`,
		Version:       buildVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// If --json flag is set but no subcommand, output JSON error
			if isJSONMode(cmd) {
				printer := output.NewPrinter(cmd.OutOrStdout(), true, false)
				err := output.NewUserError("no command specified. Run 'moss --help' for usage")
				printer.Error(err)
				return err
			}
			return cmd.Help()
		},
	}

	// Load .env.local (then .env) for API keys that can't be exported to env.
	// Environment variables always take precedence over file values.
	cmd.PersistentPreRunE = func(_ *cobra.Command, _ []string) error {
		loadEnvFiles()
		return nil
	}

	cmd.PersistentFlags().String("repo-url", "", "Activity repository URL (overrides REPO_URL)")
	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	cmd.PersistentFlags().String("color", "auto", "Color output: auto, always, never")

	// Configure lipgloss for TTY detection
	lipgloss.SetHasDarkBackground(true)

	addCommandGroups(cmd)
	addCommands(cmd)

	return cmd
}

// loadEnvFiles loads env files in priority order. First match for each
// variable wins; environment variables already set always take precedence.
//
// Resolution order:
//  1. $CWD/.env.local   (per-machine override, gitignored)
//  2. $CWD/.env         (per-project)
//  3. ~/.config/moss/env (global fallback - set once, works everywhere)
func loadEnvFiles() {
	_ = envfile.Load(".env.local")
	_ = envfile.Load(".env")

	if dir := config.Dir(); dir != "" {
		_ = envfile.Load(filepath.Join(dir, "env"))
	}
}

// addCommandGroups defines the command groups for help output.
func addCommandGroups(cmd *cobra.Command) {
	cmd.AddGroup(&cobra.Group{ID: "workflow", Title: "Workflow Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "inspect", Title: "Inspect Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "maintenance", Title: "Maintenance Commands:"})
}

// addCommands adds all subcommands with their group assignments.
func addCommands(cmd *cobra.Command) {
	// Workflow commands: record activity and push it
	addGroupedCommand(cmd, newPushCmd(), "workflow")
	addGroupedCommand(cmd, newGptPushCmd(), "workflow")
	addGroupedCommand(cmd, newFillMissingCmd(), "workflow")

	// Inspect commands: read-only views
	addGroupedCommand(cmd, newGapsCmd(), "inspect")
	addGroupedCommand(cmd, newShowCmd(), "inspect")
	addGroupedCommand(cmd, newStatusCmd(), "inspect")

	// Maintenance commands: clone health
	addGroupedCommand(cmd, newSyncCmd(), "maintenance")
	addGroupedCommand(cmd, newDoctorCmd(), "maintenance")
}

// addGroupedCommand adds a subcommand with a group assignment.
func addGroupedCommand(parent *cobra.Command, child *cobra.Command, groupID string) {
	child.GroupID = groupID
	parent.AddCommand(child)
}
