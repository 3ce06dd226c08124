// Package main provides the entry point for the moss CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fenwood/moss/internal/config"
	"github.com/fenwood/moss/internal/output"
)

// checkStatus represents the result of a health check.
type checkStatus string

const (
	checkPass checkStatus = "pass"
	checkWarn checkStatus = "warn"
	checkFail checkStatus = "fail"
)

// checkResult holds the result of a single health check.
type checkResult struct {
	Name    string      `json:"name"`
	Status  checkStatus `json:"status"`
	Message string      `json:"message"`
	Hint    string      `json:"hint,omitempty"`
}

// doctorResult holds all check results organized by category.
type doctorResult struct {
	Version     string         `json:"version"`
	Environment []checkResult  `json:"environment"`
	Repository  []checkResult  `json:"repository"`
	Summary     *doctorSummary `json:"summary"`
}

// doctorSummary holds the counts of check results.
type doctorSummary struct {
	Passed   int `json:"passed"`
	Warnings int `json:"warnings"`
	Failed   int `json:"failed"`
}

// newDoctorCmd creates the doctor command.
func newDoctorCmd() *cobra.Command {
	var quietFlag bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check configuration and clone health",
		Long: `Check moss configuration and clone health.

Runs checks across two categories:
  ENVIRONMENT - git binary, repository URL, timezone, AI credential
  REPOSITORY  - local clone state, commit identity, prompt template

Each check reports pass, warn, or fail. The command exits non-zero when
any check fails.

Examples:
  moss doctor
  moss doctor --quiet
  moss doctor --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDoctor(cmd, quietFlag)
		},
	}

	cmd.Flags().BoolVar(&quietFlag, "quiet", false, "Only show failures and warnings")

	return cmd
}

// runDoctor executes the doctor command.
func runDoctor(cmd *cobra.Command, quiet bool) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd))

	s := config.ResolveOptionalURL(repoURL(cmd))
	result := gatherDoctorChecks(cmd.Context(), s)

	if printer.IsJSON() {
		if err := printer.WriteJSON(result); err != nil {
			return err
		}
	} else {
		outputDoctorHuman(printer, result, quiet)
	}

	if result.Summary.Failed > 0 {
		return output.NewUserError(fmt.Sprintf("%d check(s) failed", result.Summary.Failed))
	}
	return nil
}

// outputDoctorHuman outputs the doctor result in human-readable format.
func outputDoctorHuman(printer *output.Printer, result *doctorResult, quiet bool) {
	printer.Println()
	printer.Print("moss doctor %s\n", result.Version)

	printCheckSection(printer, "ENVIRONMENT", result.Environment, quiet)
	printCheckSection(printer, "REPOSITORY", result.Repository, quiet)

	printer.Println()
	printer.Print("%s %d passed  %s %d warnings  %s %d failed\n",
		statusIcon(checkPass), result.Summary.Passed,
		statusIcon(checkWarn), result.Summary.Warnings,
		statusIcon(checkFail), result.Summary.Failed,
	)
}

// printCheckSection prints a section of checks. Quiet mode hides
// passing checks and fully passing sections.
func printCheckSection(printer *output.Printer, title string, checks []checkResult, quiet bool) {
	if quiet {
		hasNonPass := false
		for _, check := range checks {
			if check.Status != checkPass {
				hasNonPass = true
				break
			}
		}
		if !hasNonPass {
			return
		}
	}

	printer.Println()
	printer.Println(title)

	for _, check := range checks {
		if quiet && check.Status == checkPass {
			continue
		}

		printer.Print("  %s  %s %s\n", statusIcon(check.Status), check.Name, check.Message)
		if check.Hint != "" {
			printer.Print("     -> %s\n", check.Hint)
		}
	}
}

// statusIcon returns the icon for a check status.
func statusIcon(status checkStatus) string {
	switch status {
	case checkPass:
		return "ok"
	case checkWarn:
		return "!!"
	case checkFail:
		return "XX"
	default:
		return "??"
	}
}
