package translate

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/medcatalog/internal/config"
	"github.com/heartmarshall/medcatalog/internal/domain"
)

const messageResponse = `{
  "id": "msg_01",
  "type": "message",
  "role": "assistant",
  "model": "claude-sonnet-4-5",
  "content": [{"type": "text", "text": " \"Pinces de nouage droites\" "}],
  "stop_reason": "end_turn",
  "stop_sequence": null,
  "usage": {"input_tokens": 12, "output_tokens": 6}
}`

func testTranslateConfig() config.TranslateConfig {
	return config.TranslateConfig{
		Backend:      config.TranslateBackendLLM,
		LLMAPIKey:    "test-key",
		LLMModel:     "claude-sonnet-4-5",
		LLMMaxTokens: 256,
	}
}

func TestLLMTranslator_ToFrench(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if !strings.HasSuffix(r.URL.Path, "/v1/messages") {
			http.NotFound(w, r)
			return
		}
		body, _ := io.ReadAll(r.Body)
		var req map[string]any
		if err := json.Unmarshal(body, &req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if req["model"] != "claude-sonnet-4-5" {
			http.Error(w, "unexpected model", http.StatusBadRequest)
			return
		}
		if !strings.Contains(string(body), "Straight tying forceps") {
			http.Error(w, "prompt missing source text", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, messageResponse)
	}))
	defer srv.Close()

	tr := NewLLMTranslator(testTranslateConfig(), option.WithBaseURL(srv.URL), option.WithMaxRetries(0))

	got, err := tr.ToFrench(context.Background(), "Straight tying forceps")
	require.NoError(t, err)
	assert.Equal(t, "Pinces de nouage droites", got)

	got, err = tr.ToFrench(context.Background(), "  ")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, int32(1), calls.Load())
}

func TestLLMTranslator_ServerError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"type":"error","error":{"type":"api_error","message":"boom"}}`)
	}))
	defer srv.Close()

	tr := NewLLMTranslator(testTranslateConfig(), option.WithBaseURL(srv.URL), option.WithMaxRetries(0))

	_, err := tr.ToFrench(context.Background(), "Curved scissors")
	assert.Error(t, err)
}

func TestNewTranslator(t *testing.T) {
	t.Parallel()

	tr, err := NewTranslator(config.TranslateConfig{Backend: config.TranslateBackendHeuristic})
	require.NoError(t, err)
	assert.IsType(t, &Rewriter{}, tr)

	tr, err = NewTranslator(testTranslateConfig())
	require.NoError(t, err)
	assert.IsType(t, &LLMTranslator{}, tr)

	_, err = NewTranslator(config.TranslateConfig{Backend: config.TranslateBackendLLM})
	assert.True(t, errors.Is(err, domain.ErrFatalConfig))

	_, err = NewTranslator(config.TranslateConfig{Backend: "deepl"})
	assert.ErrorIs(t, err, domain.ErrFatalConfig)
}
