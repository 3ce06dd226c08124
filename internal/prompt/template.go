// Package prompt loads the commit-message prompt template.
//
// Templates are markdown files with YAML frontmatter, resolved in order:
//  1. <repo>/.moss/<name>.md (override inside the managed repository)
//  2. <config dir>/templates/<name>.md (user global)
//  3. built-in (embedded in the binary)
package prompt

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/fenwood/moss/internal/config"
	"github.com/fenwood/moss/internal/output"
)

// CommitPrompt is the template the message generator loads.
const CommitPrompt = "commit-prompt"

// Template is a prompt template with its frontmatter metadata.
type Template struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`

	// Content is the prompt text after the frontmatter.
	Content string `yaml:"-"`

	// Source records where the template was resolved from:
	// "repository", "global", or "built-in".
	Source string `yaml:"-"`
}

// Load finds and loads a template by name. repoDir is the managed
// repository's working tree; pass "" to skip the repository override.
func Load(repoDir, name string) (*Template, error) {
	if repoDir != "" {
		if tmpl, err := loadFromPath(filepath.Join(repoDir, ".moss"), name); err == nil {
			tmpl.Source = "repository"
			return tmpl, nil
		}
	}

	if tmpl, err := loadFromPath(globalTemplatesDir(), name); err == nil {
		tmpl.Source = "global"
		return tmpl, nil
	}

	if tmpl, err := loadBuiltin(name); err == nil {
		tmpl.Source = "built-in"
		return tmpl, nil
	}

	return nil, output.NewSystemError("prompt template not found: " + name)
}

// globalTemplatesDir returns the user's template directory.
func globalTemplatesDir() string {
	dir := config.Dir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "templates")
}

// loadFromPath attempts to load a template from a directory.
func loadFromPath(dir, name string) (*Template, error) {
	if dir == "" {
		return nil, errors.New("no directory")
	}

	data, err := os.ReadFile(filepath.Join(dir, name+".md"))
	if err != nil {
		return nil, err
	}
	return parseTemplate(string(data))
}

// parseTemplate parses raw template text with optional YAML frontmatter.
func parseTemplate(raw string) (*Template, error) {
	frontmatter, content := splitFrontmatter(raw)

	var tmpl Template
	if frontmatter != "" {
		if err := yaml.Unmarshal([]byte(frontmatter), &tmpl); err != nil {
			return nil, output.NewUserError("invalid template frontmatter: " + err.Error())
		}
	}

	tmpl.Content = strings.TrimSpace(content)
	return &tmpl, nil
}

// splitFrontmatter separates YAML frontmatter from content. Frontmatter
// is delimited by --- lines at the start of the file.
func splitFrontmatter(raw string) (frontmatter, content string) {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "---") {
		return "", raw
	}

	rest := raw[3:]
	before, after, ok := strings.Cut(rest, "\n---")
	if !ok {
		return "", raw
	}
	return strings.TrimSpace(before), strings.TrimSpace(after)
}
