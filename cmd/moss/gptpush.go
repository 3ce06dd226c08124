// Package main provides the entry point for the moss CLI.
package main

import (
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/fenwood/moss/internal/backdate"
	"github.com/fenwood/moss/internal/config"
	"github.com/fenwood/moss/internal/llm"
	"github.com/fenwood/moss/internal/message"
	"github.com/fenwood/moss/internal/output"
)

// gptPushFlags holds all flag values for the gpt-push command.
type gptPushFlags struct {
	count    int
	delaySec int
	context  string
	backdate string
}

// newGptPushCmd creates the gpt-push command.
func newGptPushCmd() *cobra.Command {
	var flags gptPushFlags

	cmd := &cobra.Command{
		Use:   "gpt-push",
		Short: "Generate AI-authored commits and push them",
		Long: `Generate one or more AI-authored activity commits and push them.

Each iteration asks the chat endpoint for a commit message, writes it
into the activity file for the computed date, commits with that date as
author and committer timestamp, and pushes. Without --backdate every
iteration lands on today at local noon; with a scheme, iteration i is
backdated i hours/days/weeks and normalized to local noon.

Requires OPENAI_API_KEY (endpoint and model come from OPENAI_BASE_URL
and OPENAI_MODEL).

Examples:
  moss gpt-push
  moss gpt-push --count 5 --delay-sec 30
  moss gpt-push --count 3 --backdate weekly
  moss gpt-push --context "финализировал спринт" --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGptPush(cmd, flags)
		},
	}

	cmd.Flags().IntVar(&flags.count, "count", 1, "Number of commits to create")
	cmd.Flags().IntVar(&flags.delaySec, "delay-sec", 0, "Seconds to sleep between commits")
	cmd.Flags().StringVar(&flags.context, "context", "", "Extra context appended to the AI prompt")
	cmd.Flags().StringVar(&flags.backdate, "backdate", "", "Backdate scheme: hourly, daily, or weekly")

	return cmd
}

// validateGptPushFlags rejects nonsensical loop parameters.
func validateGptPushFlags(flags gptPushFlags) error {
	if flags.count < 1 {
		return output.NewUserError("count must be at least 1, got " + strconv.Itoa(flags.count))
	}
	if flags.delaySec < 0 {
		return output.NewUserError("delay-sec must be non-negative, got " + strconv.Itoa(flags.delaySec))
	}
	return nil
}

// runGptPush executes the gpt-push command.
func runGptPush(cmd *cobra.Command, flags gptPushFlags) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd)).
		WithStderr(cmd.ErrOrStderr())

	if err := validateGptPushFlags(flags); err != nil {
		printer.Error(err)
		return err
	}
	scheme, err := backdate.ParseScheme(flags.backdate)
	if err != nil {
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

	// Without a scheme every iteration shares one noon timestamp,
	// computed before the loop.
	base := backdate.Noon(time.Now().In(loc))

	results := make([]publishResult, 0, flags.count)
	for i := 0; i < flags.count; i++ {
		when := base
		if scheme != backdate.SchemeNone {
			when = backdate.Compute(time.Now().In(loc), scheme, i)
		}

		stop := startSpinner(printer, "Generating commit message...")
		text, err := gen.Generate(ctx, flags.context)
		stop()
		if err != nil {
			printer.Error(err)
			return err
		}

		res, err := publish(ctx, ws, s, printer, publishRequest{
			content:    text,
			message:    "Update activities for " + when.Format("2006-01-02"),
			fileTime:   when,
			commitTime: when,
		})
		if err != nil {
			printer.Error(err)
			return err
		}
		results = append(results, res)

		if !printer.IsJSON() {
			printer.Print("[%d/%d] ", i+1, flags.count)
			reportPublish(printer, res)
		}

		if i < flags.count-1 && flags.delaySec > 0 {
			time.Sleep(time.Duration(flags.delaySec) * time.Second)
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
