// Package main provides the entry point for the moss CLI.
package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/fenwood/moss/internal/activity"
	"github.com/fenwood/moss/internal/config"
	"github.com/fenwood/moss/internal/output"
)

// newShowCmd creates the show command.
func newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [YYYY-MM-DD]",
		Short: "Print the activity file for a date",
		Long: `Print the activity file recorded for a date.

Reads <YYYY>/<MM>/<DD>.md from the local clone. Without an argument the
date defaults to today in the configured timezone. Exits with a user
error when nothing was recorded for the date.

Examples:
  moss show
  moss show 2025-10-01
  moss show 2025-10-01 --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, args)
		},
	}
	return cmd
}

// runShow executes the show command.
func runShow(cmd *cobra.Command, args []string) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd)).
		WithStderr(cmd.ErrOrStderr())

	s := config.ResolveOptionalURL(repoURL(cmd))
	loc, err := s.Location()
	if err != nil {
		printer.Error(err)
		return err
	}

	when := time.Now().In(loc)
	if len(args) == 1 {
		when, err = parseLocalDate(args[0], loc)
		if err != nil {
			printer.Error(err)
			return err
		}
	}

	store := activity.NewStore(s.RepoPath)
	content, err := store.Read(when)
	if err != nil {
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		return printer.WriteJSON(map[string]any{
			"date":    when.Format("2006-01-02"),
			"path":    activity.RelPath(when),
			"content": content,
		})
	}

	printer.Print("%s", content)
	return nil
}
