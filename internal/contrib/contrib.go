// Package contrib fetches a public GitHub contribution calendar.
package contrib

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/fenwood/moss/internal/output"
)

const defaultBaseURL = "https://github-contributions-api.jogruber.de/v4"

// Day is one calendar day's contribution count.
type Day struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// HTTPDoer defines the HTTP operation required by Client.
// This allows injection of test doubles for testing.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client queries the contributions API.
type Client struct {
	baseURL    string
	httpClient HTTPDoer
}

// New creates a client for the public contributions API. The base URL
// may be overridden with CONTRIB_API_URL.
func New() *Client {
	base := os.Getenv("CONTRIB_API_URL")
	if base == "" {
		base = defaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(base, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Year fetches the contribution calendar for user in the given year.
func (c *Client) Year(ctx context.Context, user string, year int) ([]Day, error) {
	if user == "" {
		return nil, output.NewUserError("contributions user not configured: set CONTRIB_USER or pass --user")
	}

	endpoint := fmt.Sprintf("%s/%s?y=%d", c.baseURL, url.PathEscape(user), year)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, output.NewSystemErrorWithCause("failed to create contributions request", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, output.NewSystemErrorWithCause("contributions request failed", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, output.NewSystemErrorWithCause("failed to read contributions response", err)
	}

	if resp.StatusCode != http.StatusOK {
		errBody := string(body)
		if len(errBody) > 500 {
			errBody = errBody[:500]
		}
		return nil, output.NewSystemError(fmt.Sprintf("contributions API error (status %d): %s", resp.StatusCode, errBody))
	}

	var payload struct {
		Contributions []Day `json:"contributions"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, output.NewSystemErrorWithCause("failed to parse contributions response", err)
	}
	return payload.Contributions, nil
}

// ZeroDays returns the dates with no contributions, preserving the
// calendar order the API responds with.
func ZeroDays(days []Day) []string {
	var dates []string
	for _, d := range days {
		if d.Count == 0 {
			dates = append(dates, d.Date)
		}
	}
	return dates
}
