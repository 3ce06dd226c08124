// Package message turns prompt templates and model output into commit
// messages.
package message

import (
	"context"
	"strings"
	"unicode"

	"github.com/fenwood/moss/internal/llm"
	"github.com/fenwood/moss/internal/prompt"
)

// SystemPrompt is the fixed system instruction for commit generation.
const SystemPrompt = "Ты — лаконичный генератор commit messages."

// MaxLen is the rune cap applied to generated messages.
const MaxLen = 220

// temperature used for commit-message sampling.
const temperature = 0.9

// Completer is the chat-completion call the generator depends on.
type Completer interface {
	Complete(ctx context.Context, req llm.Request) (string, error)
}

// Generator produces commit messages from the resolved prompt template.
type Generator struct {
	LLM Completer

	// RepoDir is the managed repository, checked for a template
	// override; empty skips the repository lookup.
	RepoDir string
}

// Generate returns one processed commit message. contextText, when
// non-empty, is appended to the prompt as an extra context line.
func (g Generator) Generate(ctx context.Context, contextText string) (string, error) {
	tmpl, err := prompt.Load(g.RepoDir, prompt.CommitPrompt)
	if err != nil {
		return "", err
	}

	raw, err := g.LLM.Complete(ctx, llm.Request{
		System:      SystemPrompt,
		Prompt:      BuildUserPrompt(tmpl.Content, contextText),
		Temperature: temperature,
	})
	if err != nil {
		return "", err
	}
	return Finalize(raw), nil
}

// BuildUserPrompt appends the optional context line to the prompt body.
func BuildUserPrompt(body, context string) string {
	if context == "" {
		return body
	}
	return body + "\nКонтекст: " + context + "\n"
}

// Finalize trims model output and enforces the length cap. Truncation
// counts runes so multi-byte text never splits mid-character.
func Finalize(raw string) string {
	text := strings.TrimSpace(raw)
	runes := []rune(text)
	if len(runes) > MaxLen {
		runes = runes[:MaxLen]
	}
	return strings.TrimRightFunc(string(runes), unicode.IsSpace)
}
