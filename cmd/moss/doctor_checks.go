// Package main provides the entry point for the moss CLI.
package main

import (
	"context"
	"os"
	"os/exec"

	"github.com/fenwood/moss/internal/config"
	"github.com/fenwood/moss/internal/git"
	"github.com/fenwood/moss/internal/prompt"
)

// gatherDoctorChecks runs all health checks and returns results.
func gatherDoctorChecks(ctx context.Context, s config.Settings) *doctorResult {
	result := &doctorResult{
		Version:     buildVersion(),
		Environment: runEnvironmentChecks(s),
		Repository:  runRepositoryChecks(ctx, s),
		Summary:     &doctorSummary{},
	}

	allChecks := append(append([]checkResult{}, result.Environment...), result.Repository...)
	for _, check := range allChecks {
		switch check.Status {
		case checkPass:
			result.Summary.Passed++
		case checkWarn:
			result.Summary.Warnings++
		case checkFail:
			result.Summary.Failed++
		}
	}

	return result
}

// runEnvironmentChecks validates settings that do not need a clone.
func runEnvironmentChecks(s config.Settings) []checkResult {
	checks := make([]checkResult, 0, 4)
	checks = append(checks, checkGitBinary())
	checks = append(checks, checkRepoURL(s))
	checks = append(checks, checkTimezone(s))
	checks = append(checks, checkAICredential(s))
	return checks
}

// checkGitBinary verifies the git CLI is reachable.
func checkGitBinary() checkResult {
	path, err := exec.LookPath("git")
	if err != nil {
		return checkResult{
			Name:    "Git Binary",
			Status:  checkFail,
			Message: "git not found in PATH",
			Hint:    "Install git and ensure it is in PATH",
		}
	}
	return checkResult{Name: "Git Binary", Status: checkPass, Message: path}
}

// checkRepoURL verifies a repository URL is configured.
func checkRepoURL(s config.Settings) checkResult {
	if s.RepoURL == "" {
		return checkResult{
			Name:    "Repository URL",
			Status:  checkFail,
			Message: "no repository URL configured",
			Hint:    "Set REPO_URL or pass --repo-url",
		}
	}
	return checkResult{Name: "Repository URL", Status: checkPass, Message: s.RepoURL}
}

// checkTimezone verifies the configured timezone loads.
func checkTimezone(s config.Settings) checkResult {
	if _, err := s.Location(); err != nil {
		return checkResult{
			Name:    "Timezone",
			Status:  checkFail,
			Message: "cannot load " + s.Timezone,
			Hint:    "Set TIMEZONE to an IANA zone name like Europe/Amsterdam",
		}
	}
	return checkResult{Name: "Timezone", Status: checkPass, Message: s.Timezone}
}

// checkAICredential warns rather than fails: only the AI-backed
// commands need the key.
func checkAICredential(s config.Settings) checkResult {
	if s.OpenAIAPIKey == "" {
		return checkResult{
			Name:    "AI Credential",
			Status:  checkWarn,
			Message: "OPENAI_API_KEY not set",
			Hint:    "Required for gpt-push and fill-missing",
		}
	}
	return checkResult{
		Name:    "AI Credential",
		Status:  checkPass,
		Message: s.OpenAIModel + " via " + s.OpenAIBaseURL,
	}
}

// runRepositoryChecks inspects the local clone.
func runRepositoryChecks(ctx context.Context, s config.Settings) []checkResult {
	checks := make([]checkResult, 0, 3)
	repo, cloneCheck := checkCloneState(ctx, s)
	checks = append(checks, cloneCheck)
	checks = append(checks, checkIdentity(ctx, repo, s))
	checks = append(checks, checkPromptTemplate(repo))
	return checks
}

// checkCloneState reports whether the managed path holds a valid clone.
// Returns the repo handle for downstream checks; nil when not usable.
func checkCloneState(ctx context.Context, s config.Settings) (*git.Repo, checkResult) {
	if _, err := os.Stat(s.RepoPath); err != nil {
		return nil, checkResult{
			Name:    "Local Clone",
			Status:  checkWarn,
			Message: "no clone at " + s.RepoPath,
			Hint:    "Run 'moss sync' to create it",
		}
	}

	repo := git.Repo{Dir: s.RepoPath}
	if !repo.IsRepo(ctx) {
		return nil, checkResult{
			Name:    "Local Clone",
			Status:  checkWarn,
			Message: s.RepoPath + " exists but is not a valid repository",
			Hint:    "The next workflow command will re-clone it",
		}
	}
	return &repo, checkResult{Name: "Local Clone", Status: checkPass, Message: s.RepoPath}
}

// checkIdentity verifies a commit identity is resolvable before any
// workflow command needs one.
func checkIdentity(ctx context.Context, repo *git.Repo, s config.Settings) checkResult {
	if s.AuthorName != "" && s.AuthorEmail != "" {
		id := git.Identity{Name: s.AuthorName, Email: s.AuthorEmail}
		return checkResult{Name: "Commit Identity", Status: checkPass, Message: id.String()}
	}

	if repo == nil {
		return checkResult{
			Name:    "Commit Identity",
			Status:  checkWarn,
			Message: "GIT_AUTHOR_NAME/GIT_AUTHOR_EMAIL not set and no clone to read user.name from",
			Hint:    "Set both variables, or run 'moss sync' and configure user.name/user.email",
		}
	}

	id, err := repo.ResolveIdentity(ctx, s.AuthorName, s.AuthorEmail)
	if err != nil {
		return checkResult{
			Name:    "Commit Identity",
			Status:  checkFail,
			Message: "no commit identity available",
			Hint:    "Set GIT_AUTHOR_NAME and GIT_AUTHOR_EMAIL, or configure user.name/user.email",
		}
	}
	return checkResult{Name: "Commit Identity", Status: checkPass, Message: id.String()}
}

// checkPromptTemplate reports which template the AI commands would use.
func checkPromptTemplate(repo *git.Repo) checkResult {
	repoDir := ""
	if repo != nil {
		repoDir = repo.Dir
	}

	tmpl, err := prompt.Load(repoDir, prompt.CommitPrompt)
	if err != nil {
		return checkResult{
			Name:    "Prompt Template",
			Status:  checkWarn,
			Message: "could not load: " + err.Error(),
		}
	}
	return checkResult{Name: "Prompt Template", Status: checkPass, Message: tmpl.Name + " (" + tmpl.Source + ")"}
}
