package openai

import (
	"github.com/germanamz/modai/pkg/modeladapter"
)

// Response is the chat completions envelope. It is shared with other
// OpenAI-compatible backends.
type Response struct {
	Choices []Choice  `json:"choices"`
	Error   *APIError `json:"error,omitempty"`
}

// Choice is one completion candidate.
type Choice struct {
	Message      ChoiceMessage `json:"message"`
	FinishReason string        `json:"finish_reason"`
}

// ChoiceMessage holds the assistant reply. Content is a pointer because the
// API sends null when the model produced no text.
type ChoiceMessage struct {
	Role    string  `json:"role"`
	Content *string `json:"content"`
	Refusal *string `json:"refusal,omitempty"`
}

// APIError is the error object some compatible servers return with a 2xx status.
type APIError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// ExtractText pulls choices[0].message.content out of resp. A missing choice,
// a null or blank content field, an inline error object, a refusal or a
// content_filter finish reason are all reported as *modeladapter.ProviderError.
func ExtractText(provider string, resp Response, status int) (string, error) {
	if resp.Error != nil && resp.Error.Message != "" {
		return "", modeladapter.Malformed(provider, "api error: %s", resp.Error.Message)
	}

	if len(resp.Choices) == 0 {
		return "", modeladapter.Malformed(provider, "empty choices in response (status %d)", status)
	}

	choice := resp.Choices[0]

	var content string
	if choice.Message.Content != nil {
		content = *choice.Message.Content
	}

	text, err := modeladapter.Extract(provider, content, status)
	if err == nil {
		return text, nil
	}

	switch {
	case choice.Message.Refusal != nil && *choice.Message.Refusal != "":
		return "", modeladapter.Blocked(provider, *choice.Message.Refusal)
	case choice.FinishReason == "content_filter":
		return "", modeladapter.Blocked(provider, choice.FinishReason)
	}

	return "", err
}
