package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/fenwood/moss/internal/output"
)

// Defaults applied when the environment leaves a field unset.
const (
	DefaultBranch              = "main"
	DefaultSecondaryRemoteName = "gitlab"
	DefaultTimezone            = "Europe/Amsterdam"
	DefaultOpenAIBaseURL       = "https://api.proxyapi.ru/deepseek/"
	DefaultOpenAIModel         = "deepseek-chat"
)

// Settings is the configuration record for one invocation. It is built
// once, from the environment plus CLI overrides, and passed by value;
// nothing reads the environment after resolution.
type Settings struct {
	RepoURL  string
	RepoPath string
	Branch   string

	SecondaryRemoteName string
	SecondaryRemoteURL  string
	ForcePushSecondary  bool

	Timezone    string
	AuthorName  string
	AuthorEmail string

	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string

	ContribUser string
}

// Resolve builds Settings from the process environment. A non-empty
// repoURLFlag (the --repo-url flag) takes precedence over REPO_URL.
// The repository URL is the only field validated here; URL syntax,
// timezone names, and credentials are checked at point of use.
func Resolve(repoURLFlag string) (Settings, error) {
	s := ResolveOptionalURL(repoURLFlag)
	if s.RepoURL == "" {
		return Settings{}, output.NewUserError("repository URL not configured: set REPO_URL or pass --repo-url (SSH form: git@github.com:USER/REPO.git)")
	}
	return s, nil
}

// ResolveOptionalURL builds Settings without requiring a repository URL.
// Commands that never touch the remote (gaps, show, status, doctor) use
// this path; RepoURL may be empty.
func ResolveOptionalURL(repoURLFlag string) Settings {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("REPO_PATH", defaultRepoPath())
	v.SetDefault("BRANCH", DefaultBranch)
	v.SetDefault("SECONDARY_REMOTE_NAME", DefaultSecondaryRemoteName)
	v.SetDefault("FORCE_PUSH_SECONDARY", "1")
	v.SetDefault("TIMEZONE", DefaultTimezone)
	v.SetDefault("OPENAI_BASE_URL", DefaultOpenAIBaseURL)
	v.SetDefault("OPENAI_MODEL", DefaultOpenAIModel)

	s := Settings{
		RepoURL:             strings.TrimSpace(v.GetString("REPO_URL")),
		RepoPath:            v.GetString("REPO_PATH"),
		Branch:              v.GetString("BRANCH"),
		SecondaryRemoteName: v.GetString("SECONDARY_REMOTE_NAME"),
		SecondaryRemoteURL:  strings.TrimSpace(v.GetString("SECONDARY_REMOTE_URL")),
		ForcePushSecondary:  v.GetString("FORCE_PUSH_SECONDARY") == "1",
		Timezone:            v.GetString("TIMEZONE"),
		AuthorName:          strings.TrimSpace(v.GetString("GIT_AUTHOR_NAME")),
		AuthorEmail:         strings.TrimSpace(v.GetString("GIT_AUTHOR_EMAIL")),
		OpenAIAPIKey:        v.GetString("OPENAI_API_KEY"),
		OpenAIBaseURL:       v.GetString("OPENAI_BASE_URL"),
		OpenAIModel:         v.GetString("OPENAI_MODEL"),
		ContribUser:         strings.TrimSpace(v.GetString("CONTRIB_USER")),
	}

	if repoURLFlag != "" {
		s.RepoURL = strings.TrimSpace(repoURLFlag)
	}

	return s
}

// Location loads the configured timezone.
func (s Settings) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return nil, output.NewUserError("invalid TIMEZONE " + s.Timezone + ": " + err.Error())
	}
	return loc, nil
}

// SecondaryEnabled reports whether a secondary remote is configured.
func (s Settings) SecondaryEnabled() bool {
	return s.SecondaryRemoteURL != ""
}

// defaultRepoPath places the managed clone under the user cache
// directory; the clone is disposable and can be re-created from the
// remote at any time.
func defaultRepoPath() string {
	cache, err := os.UserCacheDir()
	if err != nil {
		cache = os.TempDir()
	}
	return filepath.Join(cache, "moss", "repo")
}
