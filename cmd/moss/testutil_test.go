package main

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// requireGit skips the test when the git binary is unavailable.
func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not found in PATH")
	}
}

// mustGit runs git in dir and fails the test on error.
func mustGit(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("git %v: %v\n%s", args, err, out)
	}
	return strings.TrimSpace(string(out))
}

// newEmptyBare creates a bare repository to act as a remote.
func newEmptyBare(t *testing.T) string {
	t.Helper()
	parent := t.TempDir()
	dir := filepath.Join(parent, "origin.git")
	mustGit(t, parent, "init", "--bare", "--initial-branch=main", dir)
	return dir
}

// seedBare pushes an initial commit to the bare remote and returns its
// SHA.
func seedBare(t *testing.T, bare string) string {
	t.Helper()
	parent := t.TempDir()
	work := filepath.Join(parent, "seed")
	mustGit(t, parent, "clone", bare, work)
	mustGit(t, work, "config", "user.name", "Seed User")
	mustGit(t, work, "config", "user.email", "seed@example.com")
	if err := os.WriteFile(filepath.Join(work, "README.md"), []byte("# activity\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	mustGit(t, work, "add", "-A")
	mustGit(t, work, "commit", "-m", "seed")
	mustGit(t, work, "push", "origin", "main")
	return mustGit(t, work, "rev-parse", "HEAD")
}

// verifyClone clones the bare remote into a scratch directory for
// assertions against what was actually pushed.
func verifyClone(t *testing.T, bare string) string {
	t.Helper()
	parent := t.TempDir()
	dir := filepath.Join(parent, "verify")
	mustGit(t, parent, "clone", bare, dir)
	return dir
}

// setWorkflowEnv points moss at a local bare remote and a scratch clone
// path with a fixed identity, UTC timezone, and masked host git config.
// Every variable the settings resolver reads is pinned so nothing leaks
// in from the host environment.
func setWorkflowEnv(t *testing.T, remoteURL, clonePath string) {
	t.Helper()
	t.Setenv("REPO_URL", remoteURL)
	t.Setenv("REPO_PATH", clonePath)
	t.Setenv("BRANCH", "main")
	t.Setenv("SECONDARY_REMOTE_NAME", "")
	t.Setenv("SECONDARY_REMOTE_URL", "")
	t.Setenv("FORCE_PUSH_SECONDARY", "")
	t.Setenv("TIMEZONE", "UTC")
	t.Setenv("GIT_AUTHOR_NAME", "Moss Bot")
	t.Setenv("GIT_AUTHOR_EMAIL", "bot@example.com")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("OPENAI_BASE_URL", "")
	t.Setenv("OPENAI_MODEL", "")
	t.Setenv("CONTRIB_USER", "")
	t.Setenv("MOSS_CONFIG_HOME", t.TempDir())
	t.Setenv("GIT_CONFIG_GLOBAL", os.DevNull)
	t.Setenv("GIT_CONFIG_SYSTEM", os.DevNull)
}

// runRoot executes the CLI root with args, capturing stdout and stderr.
func runRoot(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

// fakeCompletionServer answers every chat-completion request with
// content and records the raw request bodies for prompt assertions.
func fakeCompletionServer(t *testing.T, content string) (*httptest.Server, *[]string) {
	t.Helper()
	var bodies []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		bodies = append(bodies, string(body))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w,
			`{"id":"cmpl-1","object":"chat.completion","created":1,"model":"deepseek-chat","choices":[{"index":0,"message":{"role":"assistant","content":%q},"finish_reason":"stop"}]}`,
			content)
	}))
	t.Cleanup(srv.Close)
	return srv, &bodies
}
