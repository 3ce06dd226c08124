// Package main provides the entry point for the moss CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/fenwood/moss/internal/backdate"
	"github.com/fenwood/moss/internal/config"
	"github.com/fenwood/moss/internal/llm"
	"github.com/fenwood/moss/internal/message"
	"github.com/fenwood/moss/internal/output"
)

// newFillMissingCmd creates the fill-missing command.
func newFillMissingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fill-missing <YYYY-MM-DD,YYYY-MM-DD,...>",
		Short: "Backfill AI-authored commits for specific dates",
		Long: `Backfill AI-authored activity commits for specific calendar dates.

Dates are processed in the given order, without deduplication. Each date
gets an AI-generated note written to its activity file and a commit
whose author and committer timestamps are that date at local noon,
pushed immediately. A failure stops the run; dates already pushed stay
pushed.

Find candidate dates with 'moss gaps'.

Examples:
  moss fill-missing 2025-10-01
  moss fill-missing 2025-10-01,2025-10-02,2025-10-05 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFillMissing(cmd, args[0])
		},
	}
	return cmd
}

// runFillMissing executes the fill-missing command.
func runFillMissing(cmd *cobra.Command, datesArg string) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd)).
		WithStderr(cmd.ErrOrStderr())

	dates := splitDates(datesArg)
	if len(dates) == 0 {
		err := output.NewUserError("no dates provided: expected a comma-separated list like 2025-10-01,2025-10-02")
		printer.Error(err)
		return err
	}

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
	client, err := llm.New(s.OpenAIAPIKey, s.OpenAIBaseURL, s.OpenAIModel)
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

	gen := message.Generator{LLM: client, RepoDir: ws.repo.Dir}

	results := make([]publishResult, 0, len(dates))
	for i, d := range dates {
		// Parsed inside the loop: a bad date aborts the run, but
		// dates already pushed stay pushed.
		day, err := parseLocalDate(d, loc)
		if err != nil {
			printer.Error(err)
			return err
		}
		when := backdate.Noon(day)

		stop := startSpinner(printer, "Generating commit message for "+d+"...")
		text, err := gen.Generate(ctx, "день "+d+" для QR-IN")
		stop()
		if err != nil {
			printer.Error(err)
			return err
		}

		res, err := publish(ctx, ws, s, printer, publishRequest{
			content:    text,
			message:    "Update activities for " + d,
			fileTime:   when,
			commitTime: when,
		})
		if err != nil {
			printer.Error(err)
			return err
		}
		results = append(results, res)

		if !printer.IsJSON() {
			printer.Print("[%d/%d] ", i+1, len(dates))
			reportPublish(printer, res)
		}
	}

	if printer.IsJSON() {
		return printer.WriteJSON(map[string]any{
			"count":      len(results),
			"iterations": results,
		})
	}
	return nil
}
