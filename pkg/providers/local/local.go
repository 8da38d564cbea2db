// Package local implements the modeladapter.Caller interface for locally
// hosted models (Ollama, llama.cpp server, LM Studio) through their
// OpenAI-compatible chat completions endpoint.
package local

import (
	"context"

	"github.com/germanamz/modai/pkg/modeladapter"
	"github.com/germanamz/modai/pkg/providers/openai"
)

// DefaultBaseURL is the address an Ollama server listens on out of the box.
const DefaultBaseURL = "http://127.0.0.1:11434"

// DefaultAPIKey is sent when no key is configured. Ollama ignores it but
// expects the header to be present.
const DefaultAPIKey = "ollama"

const (
	providerName    = "local"
	completionsPath = "/v1/chat/completions"
)

var _ modeladapter.Caller = (*Adapter)(nil)

// Adapter sends non-streaming chat completions to a local server.
type Adapter struct {
	modeladapter.ModelAdapter
}

// New creates an Adapter. Empty arguments fall back to DefaultBaseURL and
// DefaultAPIKey.
func New(baseURL, apiKey string) *Adapter {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if apiKey == "" {
		apiKey = DefaultAPIKey
	}

	return &Adapter{
		ModelAdapter: modeladapter.New(baseURL, modeladapter.Auth{Key: apiKey}, nil),
	}
}

// Call sends message as the sole user turn with streaming disabled.
func (a *Adapter) Call(ctx context.Context, message, model string, temperature float64) (string, error) {
	req := chatRequest{
		Model:       model,
		Messages:    []chatMessage{{Role: "user", Content: message}},
		Temperature: temperature,
		Stream:      false,
	}

	var resp openai.Response
	status, err := a.PostJSON(ctx, providerName, completionsPath, req, &resp)
	if err != nil {
		return "", err
	}

	return openai.ExtractText(providerName, resp, status)
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	Stream      bool          `json:"stream"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
