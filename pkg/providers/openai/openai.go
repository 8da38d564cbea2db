// Package openai provides a Caller implementation for the OpenAI Chat Completions API.
package openai

import (
	"context"

	"github.com/germanamz/modai/pkg/modeladapter"
)

// DefaultBaseURL is the base URL for the OpenAI API.
const DefaultBaseURL = "https://api.openai.com"

const (
	providerName    = "openai"
	completionsPath = "/v1/chat/completions"
)

var _ modeladapter.Caller = (*Adapter)(nil)

// Adapter implements modeladapter.Caller for the OpenAI Chat Completions API.
type Adapter struct {
	modeladapter.ModelAdapter
}

// New creates an Adapter configured for the OpenAI API.
// An empty baseURL falls back to DefaultBaseURL.
func New(baseURL, apiKey string) *Adapter {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Adapter{
		ModelAdapter: modeladapter.New(baseURL, modeladapter.Auth{Key: apiKey}, nil),
	}
}

// Call sends message as the sole user turn and returns the trimmed content of
// the first choice.
func (a *Adapter) Call(ctx context.Context, message, model string, temperature float64) (string, error) {
	req := apiRequest{
		Model:       model,
		Messages:    []apiMessage{{Role: "user", Content: message}},
		Temperature: temperature,
	}

	var resp Response
	status, err := a.PostJSON(ctx, providerName, completionsPath, req, &resp)
	if err != nil {
		return "", err
	}

	return ExtractText(providerName, resp, status)
}

// --- request types ---

type apiRequest struct {
	Model       string       `json:"model"`
	Messages    []apiMessage `json:"messages"`
	Temperature float64      `json:"temperature"`
}

type apiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
