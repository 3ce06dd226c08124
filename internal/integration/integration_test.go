//go:build integration

// Package integration provides end-to-end tests for the moss CLI.
// These tests build the real binary and run full workflows against
// local bare remotes.
//
// Run with: go test -tags=integration ./internal/integration/...
package integration

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// testEnv holds a built moss binary, a bare remote, and the environment
// the binary runs under.
type testEnv struct {
	t      *testing.T
	binary string
	bare   string
	clone  string
	env    []string
}

// newTestEnv builds the moss binary and creates a seeded bare remote.
// The returned environment points REPO_URL at the bare repository and
// REPO_PATH at a scratch clone location.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not found in PATH")
	}

	dir := t.TempDir()

	// Build the moss binary
	binary := filepath.Join(dir, "moss")
	buildCmd := exec.Command("go", "build", "-o", binary, "./cmd/moss")
	buildCmd.Dir = findProjectRoot(t)
	buildCmd.Env = append(os.Environ(), "CGO_ENABLED=0")
	if output, err := buildCmd.CombinedOutput(); err != nil {
		t.Fatalf("failed to build moss: %v\n%s", err, output)
	}

	e := &testEnv{
		t:      t,
		binary: binary,
		bare:   filepath.Join(dir, "origin.git"),
		clone:  filepath.Join(dir, "clone"),
	}

	e.git(dir, "init", "--bare", "--initial-branch=main", e.bare)
	e.seedRemote()

	e.env = append(os.Environ(),
		"REPO_URL="+e.bare,
		"REPO_PATH="+e.clone,
		"BRANCH=main",
		"TIMEZONE=UTC",
		"GIT_AUTHOR_NAME=Moss Bot",
		"GIT_AUTHOR_EMAIL=bot@example.com",
		"SECONDARY_REMOTE_URL=",
		"OPENAI_API_KEY=",
		"OPENAI_BASE_URL=",
		"MOSS_CONFIG_HOME="+filepath.Join(dir, "confighome"),
		"GIT_CONFIG_GLOBAL="+os.DevNull,
		"GIT_CONFIG_SYSTEM="+os.DevNull,
	)

	return e
}

// findProjectRoot locates the project root by finding go.mod.
func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

// seedRemote pushes an initial commit so the remote branch exists.
func (e *testEnv) seedRemote() {
	e.t.Helper()

	work := filepath.Join(e.t.TempDir(), "seed")
	e.git(filepath.Dir(work), "clone", e.bare, work)
	e.git(work, "config", "user.name", "Seed User")
	e.git(work, "config", "user.email", "seed@example.com")
	e.createFile(filepath.Join(work, "README.md"), "# activity\n")
	e.git(work, "add", "-A")
	e.git(work, "commit", "-m", "seed")
	e.git(work, "push", "origin", "main")
}

// setEnv overrides one variable for subsequent moss runs.
func (e *testEnv) setEnv(key, value string) {
	prefix := key + "="
	for i, kv := range e.env {
		if strings.HasPrefix(kv, prefix) {
			e.env[i] = prefix + value
			return
		}
	}
	e.env = append(e.env, prefix+value)
}

// git runs a git command in dir.
func (e *testEnv) git(dir string, args ...string) string {
	e.t.Helper()

	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()
	if err != nil {
		e.t.Fatalf("git %v failed: %v\n%s", args, err, output)
	}
	return strings.TrimSpace(string(output))
}

// createFile creates a file with the given content.
func (e *testEnv) createFile(path, content string) {
	e.t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		e.t.Fatalf("failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		e.t.Fatalf("failed to write file %s: %v", path, err)
	}
}

// moss runs the moss binary with the given args.
// Returns stdout, stderr, and error.
func (e *testEnv) moss(args ...string) (string, string, error) {
	e.t.Helper()

	cmd := exec.Command(e.binary, args...)
	cmd.Dir = e.t.TempDir()
	cmd.Env = e.env

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// mossOK runs moss and expects success.
func (e *testEnv) mossOK(args ...string) string {
	e.t.Helper()

	stdout, stderr, err := e.moss(args...)
	if err != nil {
		e.t.Fatalf("moss %v failed: %v\nstdout: %s\nstderr: %s", args, err, stdout, stderr)
	}
	return stdout
}

// mossExit runs moss, expects failure, and returns the exit code.
func (e *testEnv) mossExit(args ...string) (int, string, string) {
	e.t.Helper()

	stdout, stderr, err := e.moss(args...)
	if err == nil {
		e.t.Fatalf("moss %v expected to fail but succeeded\nstdout: %s", args, stdout)
	}
	exitErr, ok := err.(*exec.ExitError)
	if !ok {
		e.t.Fatalf("moss %v failed without an exit code: %v", args, err)
	}
	return exitErr.ExitCode(), stdout, stderr
}

// remoteLog returns the remote branch log, newest first, one
// "<author date>|<subject>" line per commit.
func (e *testEnv) remoteLog() []string {
	e.t.Helper()

	out := e.git(e.bare, "log", "--format=%ai|%s", "main")
	return strings.Split(out, "\n")
}

// remoteFile reads a file from the remote branch tip.
func (e *testEnv) remoteFile(relPath string) (string, bool) {
	e.t.Helper()

	cmd := exec.Command("git", "show", "main:"+relPath)
	cmd.Dir = e.bare
	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", false
	}
	return string(output), true
}
