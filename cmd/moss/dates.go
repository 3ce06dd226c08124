// Package main provides the entry point for the moss CLI.
package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/fenwood/moss/internal/output"
)

// parseLocalDate parses a YYYY-MM-DD value as midnight in the given
// timezone.
func parseLocalDate(value string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", value, loc)
	if err != nil {
		return time.Time{}, output.NewUserError(fmt.Sprintf("invalid date %q: expected YYYY-MM-DD", value))
	}
	return t, nil
}

// splitDates splits a comma-separated date list, trimming whitespace
// and dropping empty items. Order and duplicates are preserved.
func splitDates(value string) []string {
	var dates []string
	for _, part := range strings.Split(value, ",") {
		if d := strings.TrimSpace(part); d != "" {
			dates = append(dates, d)
		}
	}
	return dates
}
