// Package main provides the entry point for the moss CLI.
package main

import (
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/fenwood/moss/internal/config"
	"github.com/fenwood/moss/internal/output"
)

// newPushCmd creates the push command.
func newPushCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "push <text>",
		Short: "Record an activity note now and push it",
		Long: `Record an activity note at the current time and push it.

Writes the text into today's activity file (<YYYY>/<MM>/<DD>.md) in the
managed clone, commits it with a generated message, and pushes to origin
(plus the secondary remote when one is configured). The commit keeps the
wall-clock timestamp.

Examples:
  moss push "Refactored the QR redirect handler"
  moss push "Reviewed analytics dashboards" --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPush(cmd, args[0])
		},
	}
	return cmd
}

// runPush executes the push command.
func runPush(cmd *cobra.Command, text string) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd)).
		WithStderr(cmd.ErrOrStderr())

	s, err := config.Resolve(repoURL(cmd))
	if err != nil {
		printer.Error(err)
		return err
	}
	loc, err := s.Location()
	if err != nil {
		printer.Error(err)
		return err
	}

	ctx := cmd.Context()
	ws, err := openWorkspace(ctx, s, printer)
	if err != nil {
		printer.Error(err)
		return err
	}

	now := time.Now().In(loc)
	res, err := publish(ctx, ws, s, printer, publishRequest{
		content:  text,
		message:  pushMessage(now),
		fileTime: now,
	})
	if err != nil {
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		return printer.WriteJSON(res)
	}
	reportPublish(printer, res)
	return nil
}

// pushMessage builds the commit message for a manual push. The random
// hex suffix keeps repeated same-day messages distinct.
func pushMessage(now time.Time) string {
	u := uuid.New()
	suffix := hex.EncodeToString(u[:])[:6]
	return fmt.Sprintf("Update activities for %s — %s", now.Format("2006-01-02"), suffix)
}
