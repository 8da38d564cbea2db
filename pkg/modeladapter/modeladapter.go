package modeladapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Caller sends a single prompt to an LLM and returns the generated text.
// Implementations perform exactly one outbound request per call and never
// retry. The returned text is trimmed and never empty; an empty extraction is
// reported as a *ProviderError.
type Caller interface {
	Call(ctx context.Context, message, model string, temperature float64) (string, error)
}

// CallerFunc adapts a plain function to the Caller interface.
type CallerFunc func(ctx context.Context, message, model string, temperature float64) (string, error)

// Call calls the underlying function.
func (f CallerFunc) Call(ctx context.Context, message, model string, temperature float64) (string, error) {
	return f(ctx, message, model, temperature)
}

// Auth holds authentication settings for an LLM provider API.
type Auth struct {
	Key    string // API key value.
	Header string // Header name (default: "Authorization").
	Scheme string // Scheme prefix (default: "Bearer" when Header is "Authorization").
	Query  string // When set, the key is sent as this URL query parameter instead of a header.
}

// ModelAdapter holds shared state for LLM provider implementations. Embed it in
// concrete provider structs to get HTTP helpers, auth and custom headers.
// Concrete types define their own Call method to shadow the default stub.
type ModelAdapter struct {
	Auth    Auth              // Authentication settings.
	BaseURL string            // API base URL (no trailing slash).
	Client  *http.Client      // HTTP client; falls back to http.DefaultClient.
	Headers map[string]string // Extra headers applied to every request.
}

// New creates a ModelAdapter with the given settings.
// A nil client falls back to http.DefaultClient at call time.
func New(baseURL string, auth Auth, client *http.Client) ModelAdapter {
	return ModelAdapter{
		Auth:    auth,
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  client,
	}
}

// Call is a stub that returns an error. Concrete providers that embed
// ModelAdapter should define their own Call method to shadow this one.
func (a *ModelAdapter) Call(_ context.Context, _, _ string, _ float64) (string, error) {
	return "", errors.New("adapter: Call not implemented")
}

// httpClient returns the configured client or http.DefaultClient. No timeout
// is imposed here; a hung request ends when the transport or ctx ends it.
func (a *ModelAdapter) httpClient() *http.Client {
	if a.Client != nil {
		return a.Client
	}

	return http.DefaultClient
}

// NewRequest builds an *http.Request with the base URL, auth, and custom
// headers already applied.
func (a *ModelAdapter) NewRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	u, err := url.Parse(a.BaseURL + path)
	if err != nil {
		return nil, err
	}

	if a.Auth.Key != "" && a.Auth.Query != "" {
		q := u.Query()
		q.Set(a.Auth.Query, a.Auth.Key)
		u.RawQuery = q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, err
	}

	// Header auth.
	if a.Auth.Key != "" && a.Auth.Query == "" {
		header := a.Auth.Header
		if header == "" {
			header = "Authorization"
		}

		value := a.Auth.Key
		if header == "Authorization" {
			scheme := a.Auth.Scheme
			if scheme == "" {
				scheme = "Bearer"
			}

			value = scheme + " " + value
		} else if a.Auth.Scheme != "" {
			value = a.Auth.Scheme + " " + value
		}

		req.Header.Set(header, value)
	}

	for k, v := range a.Headers {
		req.Header.Set(k, v)
	}

	return req, nil
}

// Do sends the request using the configured HTTP client.
func (a *ModelAdapter) Do(req *http.Request) (*http.Response, error) {
	return a.httpClient().Do(req) //nolint:gosec // URL is built from trusted BaseURL config, not user input.
}

// PostJSON marshals payload as JSON, sends a POST to the given path, checks
// for a 2xx status, and unmarshals the response body into dest. It returns the
// HTTP status code of the response, or 0 when no response was received.
//
// Transport failures, non-2xx statuses and undecodable bodies are returned as
// *ProviderError values tagged with the given provider name.
func (a *ModelAdapter) PostJSON(ctx context.Context, provider, path string, payload any, dest any) (int, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return 0, &ProviderError{Provider: provider, Reason: ReasonMalformed, Err: fmt.Errorf("marshal payload: %w", err)}
	}

	req, err := a.NewRequest(ctx, http.MethodPost, path, bytes.NewReader(body))
	if err != nil {
		return 0, &ProviderError{Provider: provider, Reason: ReasonTransport, Err: fmt.Errorf("build request: %w", err)}
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := a.Do(req)
	if err != nil {
		return 0, &ProviderError{Provider: provider, Reason: ReasonTransport, Err: fmt.Errorf("do request: %w", err)}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return resp.StatusCode, &ProviderError{
			Provider: provider,
			Reason:   ReasonStatus,
			Status:   resp.StatusCode,
			Err:      fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody))),
		}
	}

	if dest == nil {
		return resp.StatusCode, nil
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return resp.StatusCode, &ProviderError{Provider: provider, Reason: ReasonMalformed, Status: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}

	return resp.StatusCode, nil
}
