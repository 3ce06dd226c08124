// Package main provides the entry point for the moss CLI.
package main

import (
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/fenwood/moss/internal/config"
	"github.com/fenwood/moss/internal/contrib"
	"github.com/fenwood/moss/internal/output"
)

// gapsFlags holds all flag values for the gaps command.
type gapsFlags struct {
	user string
	year int
}

// newGapsCmd creates the gaps command.
func newGapsCmd() *cobra.Command {
	var flags gapsFlags

	cmd := &cobra.Command{
		Use:   "gaps",
		Short: "List days with zero public contributions",
		Long: `List calendar days with zero public GitHub contributions.

Fetches the public contribution calendar for a user and prints the dates
whose contribution count is zero, one per line, in calendar order. Feed
the result to 'moss fill-missing'.

Examples:
  moss gaps --user octocat
  moss gaps --year 2024 --json    # username from CONTRIB_USER`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGaps(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.user, "user", "", "GitHub username (default: CONTRIB_USER)")
	cmd.Flags().IntVar(&flags.year, "year", 0, "Calendar year (default: current year in the configured timezone)")

	return cmd
}

// runGaps executes the gaps command.
func runGaps(cmd *cobra.Command, flags gapsFlags) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd)).
		WithStderr(cmd.ErrOrStderr())

	s := config.ResolveOptionalURL(repoURL(cmd))
	loc, err := s.Location()
	if err != nil {
		printer.Error(err)
		return err
	}

	user := flags.user
	if user == "" {
		user = s.ContribUser
	}
	year := flags.year
	if year == 0 {
		year = time.Now().In(loc).Year()
	}

	stop := startSpinner(printer, "Fetching contribution calendar...")
	days, err := contrib.New().Year(cmd.Context(), user, year)
	stop()
	if err != nil {
		printer.Error(err)
		return err
	}

	gaps := contrib.ZeroDays(days)

	if printer.IsJSON() {
		if gaps == nil {
			gaps = []string{}
		}
		return printer.WriteJSON(map[string]any{
			"user":  user,
			"year":  year,
			"count": len(gaps),
			"gaps":  gaps,
		})
	}

	if len(gaps) == 0 {
		printer.Println("No zero-contribution days for " + user + " in " + strconv.Itoa(year) + ".")
		return nil
	}
	for _, d := range gaps {
		printer.Println(d)
	}
	return nil
}
