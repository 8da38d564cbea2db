// Package gemini provides a Caller implementation for the Google Generative
// Language (Gemini) API.
package gemini

import (
	"context"
	"fmt"
	"net/url"

	"github.com/germanamz/modai/pkg/modeladapter"
)

// DefaultBaseURL is the base URL for the Generative Language API.
const DefaultBaseURL = "https://generativelanguage.googleapis.com"

const providerName = "gemini"

// blockingFinishReasons are candidate finish reasons that mean the model
// stopped for policy reasons rather than because it was done.
var blockingFinishReasons = map[string]bool{
	"SAFETY":             true,
	"RECITATION":         true,
	"BLOCKLIST":          true,
	"PROHIBITED_CONTENT": true,
	"SPII":               true,
}

var _ modeladapter.Caller = (*Adapter)(nil)

// Adapter implements modeladapter.Caller for the Gemini generateContent endpoint.
type Adapter struct {
	modeladapter.ModelAdapter
}

// New creates an Adapter configured for the Gemini API. The key travels as
// the "key" query parameter. An empty baseURL falls back to DefaultBaseURL.
func New(baseURL, apiKey string) *Adapter {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Adapter{
		ModelAdapter: modeladapter.New(baseURL, modeladapter.Auth{Key: apiKey, Query: "key"}, nil),
	}
}

// Call sends message as a single content part and returns the trimmed text of
// the first part of the first candidate.
func (a *Adapter) Call(ctx context.Context, message, model string, temperature float64) (string, error) {
	req := apiRequest{
		Contents: []apiContent{{Parts: []apiPart{{Text: message}}}},
		GenerationConfig: generationConfig{
			Temperature: temperature,
		},
	}
	path := fmt.Sprintf("/v1beta/models/%s:generateContent", url.PathEscape(model))

	var resp apiResponse
	status, err := a.PostJSON(ctx, providerName, path, req, &resp)
	if err != nil {
		return "", err
	}

	return extractText(resp, status)
}

// --- request types ---

type apiRequest struct {
	Contents         []apiContent     `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type apiContent struct {
	Role  string    `json:"role,omitempty"`
	Parts []apiPart `json:"parts"`
}

type apiPart struct {
	Text string `json:"text,omitempty"`
}

type generationConfig struct {
	Temperature float64 `json:"temperature"`
}

// --- response types ---

type apiResponse struct {
	Candidates     []apiCandidate  `json:"candidates"`
	PromptFeedback *promptFeedback `json:"promptFeedback,omitempty"`
}

type apiCandidate struct {
	Content      *apiContent `json:"content"`
	FinishReason string      `json:"finishReason"`
}

type promptFeedback struct {
	BlockReason string `json:"blockReason"`
}

// extractText reads candidates[0].content.parts[0].text. When there is no
// usable text it prefers the structured block reason over a generic
// malformed-response error.
func extractText(resp apiResponse, status int) (string, error) {
	var text string
	var finishReason string

	if len(resp.Candidates) > 0 {
		c := resp.Candidates[0]
		finishReason = c.FinishReason
		if c.Content != nil && len(c.Content.Parts) > 0 {
			text = c.Content.Parts[0].Text
		}
	}

	out, err := modeladapter.Extract(providerName, text, status)
	if err == nil {
		return out, nil
	}

	switch {
	case resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "":
		return "", modeladapter.Blocked(providerName, resp.PromptFeedback.BlockReason)
	case blockingFinishReasons[finishReason]:
		return "", modeladapter.Blocked(providerName, finishReason)
	case len(resp.Candidates) == 0:
		return "", modeladapter.Malformed(providerName, "empty response or unexpected format")
	}

	return "", err
}
