package modeladapter_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/germanamz/modai/pkg/modeladapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Compile-time interface checks.
var (
	_ modeladapter.Caller = (*modeladapter.ModelAdapter)(nil)
	_ modeladapter.Caller = modeladapter.CallerFunc(nil)
)

func TestCallerFunc(t *testing.T) {
	var gotMsg, gotModel string
	var gotTemp float64

	f := modeladapter.CallerFunc(func(_ context.Context, message, model string, temperature float64) (string, error) {
		gotMsg, gotModel, gotTemp = message, model, temperature
		return "ok", nil
	})

	out, err := f.Call(context.Background(), "hello", "gpt-4o", 0.3)
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
	assert.Equal(t, "hello", gotMsg)
	assert.Equal(t, "gpt-4o", gotModel)
	assert.InDelta(t, 0.3, gotTemp, 1e-9)
}

func TestModelAdapter_StubCall(t *testing.T) {
	var a modeladapter.ModelAdapter

	_, err := a.Call(context.Background(), "m", "model", 0.5)
	assert.EqualError(t, err, "adapter: Call not implemented")
}

func TestNew_TrimsTrailingSlash(t *testing.T) {
	a := modeladapter.New("https://api.example.com/", modeladapter.Auth{}, nil)
	assert.Equal(t, "https://api.example.com", a.BaseURL)
	assert.Nil(t, a.Client)
}

func TestNewRequest_BearerAuth(t *testing.T) {
	a := modeladapter.New("https://api.example.com", modeladapter.Auth{Key: "sk-test"}, nil)

	req, err := a.NewRequest(context.Background(), http.MethodGet, "/v1/chat", nil)
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com/v1/chat", req.URL.String())
	assert.Equal(t, "Bearer sk-test", req.Header.Get("Authorization"))
}

func TestNewRequest_CustomHeaderWithScheme(t *testing.T) {
	auth := modeladapter.Auth{Key: "sk-test", Header: "x-api-key", Scheme: "Token"}
	a := modeladapter.New("https://api.example.com", auth, nil)

	req, err := a.NewRequest(context.Background(), http.MethodGet, "/v1/chat", nil)
	require.NoError(t, err)
	assert.Equal(t, "Token sk-test", req.Header.Get("x-api-key"))
	assert.Empty(t, req.Header.Get("Authorization"))
}

func TestNewRequest_QueryAuth(t *testing.T) {
	auth := modeladapter.Auth{Key: "g-key", Query: "key"}
	a := modeladapter.New("https://api.example.com", auth, nil)

	req, err := a.NewRequest(context.Background(), http.MethodPost, "/v1beta/models/gemini-pro:generateContent", nil)
	require.NoError(t, err)
	assert.Equal(t, "g-key", req.URL.Query().Get("key"))
	assert.Equal(t, "/v1beta/models/gemini-pro:generateContent", req.URL.Path)
	assert.Empty(t, req.Header.Get("Authorization"))
}

func TestNewRequest_NoAuth(t *testing.T) {
	a := modeladapter.New("https://api.example.com", modeladapter.Auth{}, nil)

	req, err := a.NewRequest(context.Background(), http.MethodGet, "/v1/chat", nil)
	require.NoError(t, err)
	assert.Empty(t, req.Header.Get("Authorization"))
	assert.Empty(t, req.URL.RawQuery)
}

func TestNewRequest_ExtraHeaders(t *testing.T) {
	a := modeladapter.New("https://api.example.com", modeladapter.Auth{}, nil)
	a.Headers = map[string]string{"x-custom": "value"}

	req, err := a.NewRequest(context.Background(), http.MethodGet, "/v1/chat", nil)
	require.NoError(t, err)
	assert.Equal(t, "value", req.Header.Get("x-custom"))
}

func TestDo_Passthrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	a := modeladapter.New(srv.URL, modeladapter.Auth{}, srv.Client())

	req, err := a.NewRequest(context.Background(), http.MethodGet, "/ping", nil)
	require.NoError(t, err)

	resp, err := a.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "ok", string(body))
}

func TestPostJSON_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"name":"modai"}`, string(body))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"greeting":"hi"}`))
	}))
	defer srv.Close()

	a := modeladapter.New(srv.URL, modeladapter.Auth{}, srv.Client())

	var dest struct {
		Greeting string `json:"greeting"`
	}
	status, err := a.PostJSON(context.Background(), "test", "/echo", map[string]string{"name": "modai"}, &dest)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "hi", dest.Greeting)
}

func TestPostJSON_Non2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"bad key"}`))
	}))
	defer srv.Close()

	a := modeladapter.New(srv.URL, modeladapter.Auth{}, srv.Client())

	status, err := a.PostJSON(context.Background(), "test", "/x", struct{}{}, nil)
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, status)

	var pe *modeladapter.ProviderError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, modeladapter.ReasonStatus, pe.Reason)
	assert.Equal(t, http.StatusUnauthorized, pe.Status)
	assert.Contains(t, err.Error(), "bad key")
}

func TestPostJSON_DecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	a := modeladapter.New(srv.URL, modeladapter.Auth{}, srv.Client())

	var dest map[string]any
	_, err := a.PostJSON(context.Background(), "test", "/x", struct{}{}, &dest)

	var pe *modeladapter.ProviderError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, modeladapter.ReasonMalformed, pe.Reason)
}

func TestPostJSON_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	a := modeladapter.New(url, modeladapter.Auth{}, nil)

	status, err := a.PostJSON(context.Background(), "test", "/x", struct{}{}, nil)
	assert.Equal(t, 0, status)

	var pe *modeladapter.ProviderError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, modeladapter.ReasonTransport, pe.Reason)
	assert.NotNil(t, errors.Unwrap(pe))
}
