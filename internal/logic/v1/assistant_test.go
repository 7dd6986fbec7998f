package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dvminh/minicms/config"
)

func newAssistant(apiKey, baseURL string) *ContentAssistant {
	cfg := config.Load()
	cfg.OpenAI.APIKey = apiKey
	cfg.OpenAI.BaseURL = baseURL
	return NewContentAssistant(cfg)
}

func TestGenerateSuccess(t *testing.T) {
	var gotAuth string
	var gotBody chatRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": "  A draft post.  "}},
			},
		})
	}))
	defer srv.Close()

	a := newAssistant("sk-test", srv.URL)
	content, err := a.Generate(context.Background(), "Go testing")
	require.NoError(t, err)

	assert.Equal(t, "A draft post.", content)
	assert.Equal(t, "Bearer sk-test", gotAuth)
	assert.Equal(t, "gpt-4o-mini", gotBody.Model)
	require.Len(t, gotBody.Messages, 1)
	assert.Equal(t, "Generate engaging 200-word blog post on Go testing", gotBody.Messages[0].Content)
}

func TestGenerateMissingAPIKey(t *testing.T) {
	a := newAssistant("", "http://unused.invalid")

	_, err := a.Generate(context.Background(), "anything")
	require.ErrorIs(t, err, ErrGenerationFailed)
	assert.Contains(t, err.Error(), "not configured")
}

func TestGenerateUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	a := newAssistant("sk-test", srv.URL)
	_, err := a.Generate(context.Background(), "anything")
	require.ErrorIs(t, err, ErrGenerationFailed)
	assert.Contains(t, err.Error(), "status 500")
}

func TestGenerateEmptyResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer srv.Close()

	a := newAssistant("sk-test", srv.URL)
	_, err := a.Generate(context.Background(), "anything")
	require.ErrorIs(t, err, ErrGenerationFailed)
	assert.Contains(t, err.Error(), "no content")
}

func TestGenerateTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	a := newAssistant("sk-test", srv.URL)
	_, err := a.Generate(context.Background(), "anything")
	require.ErrorIs(t, err, ErrGenerationFailed)
}
