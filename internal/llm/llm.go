// Package llm calls an OpenAI-compatible chat-completion endpoint.
package llm

import (
	"context"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/fenwood/moss/internal/output"
)

// Request is one chat completion: a system instruction, a user prompt,
// and the sampling temperature.
type Request struct {
	System      string
	Prompt      string
	Temperature float32
}

// Client talks to an OpenAI-compatible chat-completions endpoint.
type Client struct {
	api   *openai.Client
	model string
}

// New builds a client for the configured endpoint. baseURL may point at
// any OpenAI-compatible service; when it names openrouter.ai the client
// carries the attribution headers OpenRouter asks apps to send.
func New(apiKey, baseURL, model string) (*Client, error) {
	if apiKey == "" {
		return nil, output.NewUserError("OPENAI_API_KEY environment variable not set")
	}

	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}
	if strings.Contains(baseURL, "openrouter.ai") {
		cfg.HTTPClient = &http.Client{Transport: &attributionTransport{}}
	}

	return &Client{api: openai.NewClientWithConfig(cfg), model: model}, nil
}

// Complete sends the request and returns the first choice's content.
func (c *Client) Complete(ctx context.Context, req Request) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.System},
			{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
		},
		Temperature: req.Temperature,
	})
	if err != nil {
		return "", output.NewSystemErrorWithCause("chat completion failed", err)
	}
	if len(resp.Choices) == 0 {
		return "", output.NewSystemError("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// attributionTransport adds the OpenRouter app-attribution headers to
// every outgoing request.
type attributionTransport struct {
	base http.RoundTripper
}

func (t *attributionTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	clone.Header.Set("HTTP-Referer", "https://github.com/fenwood/moss")
	clone.Header.Set("X-Title", "moss automation")
	rt := t.base
	if rt == nil {
		rt = http.DefaultTransport
	}
	return rt.RoundTrip(clone)
}
