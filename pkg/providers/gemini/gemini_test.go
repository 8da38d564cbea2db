package gemini_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/germanamz/modai/pkg/modeladapter"
	"github.com/germanamz/modai/pkg/providers/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *gemini.Adapter {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return gemini.New(srv.URL, "test-key")
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Errorf("failed to encode response: %v", err)
	}
}

func textCandidate(text string) map[string]any {
	return map[string]any{
		"content": map[string]any{
			"role":  "model",
			"parts": []map[string]any{{"text": text}},
		},
		"finishReason": "STOP",
	}
}

func TestCall_SimpleText(t *testing.T) {
	adapter := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1beta/models/gemini-2.0-flash:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		assert.Empty(t, r.Header.Get("Authorization"))
		assert.Empty(t, r.Header.Get("x-goog-api-key"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `{
			"contents": [{"parts": [{"text": "Rewrite this"}]}],
			"generationConfig": {"temperature": 0.4}
		}`, string(body))

		writeJSON(t, w, map[string]any{
			"candidates": []map[string]any{textCandidate("\n Rewritten. \n")},
			"usageMetadata": map[string]any{
				"promptTokenCount":     3,
				"candidatesTokenCount": 2,
				"totalTokenCount":      5,
			},
		})
	})

	out, err := adapter.Call(context.Background(), "Rewrite this", "gemini-2.0-flash", 0.4)
	require.NoError(t, err)
	assert.Equal(t, "Rewritten.", out)
}

func TestCall_BlockedPrompt(t *testing.T) {
	adapter := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, map[string]any{
			"promptFeedback": map[string]any{"blockReason": "SAFETY"},
		})
	})

	_, err := adapter.Call(context.Background(), "x", "gemini-pro", 0.5)

	var pe *modeladapter.ProviderError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, modeladapter.ReasonBlocked, pe.Reason)
	assert.Contains(t, err.Error(), "SAFETY")
	assert.NotContains(t, err.Error(), "unexpected format")
}

func TestCall_SafetyFinishReason(t *testing.T) {
	adapter := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, map[string]any{
			"candidates": []map[string]any{{"finishReason": "SAFETY"}},
		})
	})

	_, err := adapter.Call(context.Background(), "x", "gemini-pro", 0.5)

	var pe *modeladapter.ProviderError
	require.ErrorAs(t, err, &pe)
	assert.True(t, pe.Blocked())
	assert.Contains(t, err.Error(), "SAFETY")
}

func TestCall_NoCandidates(t *testing.T) {
	adapter := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, map[string]any{})
	})

	_, err := adapter.Call(context.Background(), "x", "gemini-pro", 0.5)

	var pe *modeladapter.ProviderError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, modeladapter.ReasonMalformed, pe.Reason)
	assert.Contains(t, err.Error(), "unexpected format")
}

func TestCall_EmptyPartText(t *testing.T) {
	adapter := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, map[string]any{
			"candidates": []map[string]any{textCandidate("   ")},
		})
	})

	_, err := adapter.Call(context.Background(), "x", "gemini-pro", 0.5)

	var pe *modeladapter.ProviderError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, modeladapter.ReasonEmpty, pe.Reason)
}

func TestCall_HTTPError(t *testing.T) {
	adapter := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"API key not valid"}}`))
	})

	_, err := adapter.Call(context.Background(), "x", "gemini-pro", 0.5)

	var pe *modeladapter.ProviderError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, modeladapter.ReasonStatus, pe.Reason)
	assert.Contains(t, err.Error(), "API key not valid")
}

func TestNew_DefaultBaseURL(t *testing.T) {
	a := gemini.New("", "k")
	assert.Equal(t, gemini.DefaultBaseURL, a.BaseURL)
	assert.Equal(t, "key", a.Auth.Query)
}
