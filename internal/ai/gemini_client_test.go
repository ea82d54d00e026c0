package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGemini(t *testing.T, handler http.HandlerFunc) *GeminiClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client := NewGeminiClient("AIzaSyD-123456789012345678901234", "")
	client.BaseURL = server.URL
	return client
}

func geminiTextResponse(text string) string {
	return `{"candidates":[{"content":{"parts":[{"text":` + mustJSON(text) + `}]},"finishReason":"STOP"}]}`
}

func mustJSON(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func TestGeminiComplete_Success(t *testing.T) {
	var captured geminiRequest
	client := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.URL.Path, "gemini-1.5-flash")
		assert.Contains(t, r.URL.RawQuery, "key=AIza")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Write([]byte(geminiTextResponse("hello world")))
	})

	out, err := client.Complete(context.Background(), CompletionRequest{Prompt: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "hello world", out.Text)
	assert.False(t, out.Blocked)

	// Defaults fill in when tuning fields are zero.
	assert.InDelta(t, 0.7, captured.GenerationConfig.Temperature, 0.001)
	assert.Equal(t, 40, captured.GenerationConfig.TopK)
	assert.InDelta(t, 0.95, captured.GenerationConfig.TopP, 0.001)
	assert.Equal(t, 8192, captured.GenerationConfig.MaxOutputTokens)
	assert.Len(t, captured.SafetySettings, 4)
}

func TestGeminiComplete_ExplicitTuning(t *testing.T) {
	var captured geminiRequest
	client := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Write([]byte(geminiTextResponse("ok")))
	})

	_, err := client.Complete(context.Background(), CompletionRequest{
		Prompt: "probe", MaxTokens: 50, Temperature: 0.1, TopP: 0.1, TopK: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, 50, captured.GenerationConfig.MaxOutputTokens)
	assert.Equal(t, 1, captured.GenerationConfig.TopK)
}

func TestGeminiComplete_PromptBlocked(t *testing.T) {
	client := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"promptFeedback":{"blockReason":"SAFETY"}}`))
	})

	out, err := client.Complete(context.Background(), CompletionRequest{Prompt: "x"})
	require.NoError(t, err)
	assert.True(t, out.Blocked)
	assert.Equal(t, "SAFETY", out.BlockReason)
}

func TestGeminiComplete_InvalidKey(t *testing.T) {
	client := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"code":400,"status":"INVALID_ARGUMENT","message":"API key not valid. API_KEY_INVALID"}}`))
	})

	_, err := client.Complete(context.Background(), CompletionRequest{Prompt: "x"})
	require.Error(t, err)
	assert.Equal(t, KindInvalidAPIKey, KindOf(err))
}

func TestGeminiComplete_PermissionDenied(t *testing.T) {
	client := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":{"code":403,"status":"PERMISSION_DENIED","message":"no access"}}`))
	})

	_, err := client.Complete(context.Background(), CompletionRequest{Prompt: "x"})
	require.Error(t, err)
	assert.Equal(t, KindPermissionDenied, KindOf(err))
}

func TestGeminiComplete_QuotaRetriesOnce(t *testing.T) {
	calls := 0
	client := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"code":429,"status":"RESOURCE_EXHAUSTED","message":"quota"}}`))
	})

	_, err := client.Complete(context.Background(), CompletionRequest{Prompt: "x"})
	require.Error(t, err)
	assert.Equal(t, KindQuotaExceeded, KindOf(err))
	assert.Equal(t, 2, calls)
}

func TestGeminiComplete_TransientThenSuccess(t *testing.T) {
	calls := 0
	client := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"error":{"code":503,"status":"UNAVAILABLE","message":"try later"}}`))
			return
		}
		w.Write([]byte(geminiTextResponse("recovered")))
	})

	out, err := client.Complete(context.Background(), CompletionRequest{Prompt: "x"})
	require.NoError(t, err)
	assert.Equal(t, "recovered", out.Text)
	assert.Equal(t, 2, calls)
}

func TestGeminiComplete_EmptyCandidates(t *testing.T) {
	client := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	})

	out, err := client.Complete(context.Background(), CompletionRequest{Prompt: "x"})
	require.NoError(t, err)
	assert.Empty(t, out.Text)
}
