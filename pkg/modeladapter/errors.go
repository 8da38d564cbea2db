package modeladapter

import (
	"errors"
	"fmt"
	"strings"
)

// Reason classifies why a provider call failed.
type Reason string

const (
	ReasonTransport Reason = "transport" // The request never produced a response.
	ReasonStatus    Reason = "status"    // The backend answered with a non-2xx status.
	ReasonMalformed Reason = "malformed" // The response did not have the expected shape.
	ReasonBlocked   Reason = "blocked"   // The backend refused to answer for policy reasons.
	ReasonEmpty     Reason = "empty"     // The response was well-formed but carried no text.
)

// ProviderError is the single failure type returned by every Caller. Callers
// inspect it with errors.As; Unwrap exposes the underlying cause.
type ProviderError struct {
	Provider string // Backend family name, e.g. "openai".
	Reason   Reason
	Status   int // HTTP status when a response was received.
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s response", e.Provider, e.Reason)
	}
	return fmt.Sprintf("%s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// Blocked reports whether the backend refused the request on policy grounds.
func (e *ProviderError) Blocked() bool { return e.Reason == ReasonBlocked }

// IsProviderError reports whether err is or wraps a *ProviderError.
func IsProviderError(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe)
}

// Blocked builds a ReasonBlocked error carrying the backend's block reason.
func Blocked(provider, blockReason string) *ProviderError {
	return &ProviderError{
		Provider: provider,
		Reason:   ReasonBlocked,
		Err:      fmt.Errorf("blocked by safety filters: %s", blockReason),
	}
}

// Malformed builds a ReasonMalformed error with the given description.
func Malformed(provider, format string, args ...any) *ProviderError {
	return &ProviderError{
		Provider: provider,
		Reason:   ReasonMalformed,
		Err:      fmt.Errorf(format, args...),
	}
}

// Extract trims candidate and returns it, or a ReasonEmpty error when nothing
// but whitespace is left. An empty extraction is never a success.
func Extract(provider, candidate string, status int) (string, error) {
	text := strings.TrimSpace(candidate)
	if text == "" {
		return "", &ProviderError{
			Provider: provider,
			Reason:   ReasonEmpty,
			Status:   status,
			Err:      fmt.Errorf("no response content (status %d)", status),
		}
	}
	return text, nil
}
