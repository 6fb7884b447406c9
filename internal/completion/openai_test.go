package completion

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProvider(t *testing.T, handler http.HandlerFunc) *OpenAI {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewOpenAI(OpenAIConfig{
		Endpoint:      server.URL + "/v1",
		Model:         "test-model",
		APIKey:        "1",
		RetryAttempts: 3,
		RetryDelay:    time.Millisecond,
	})
}

func writeCompletion(w http.ResponseWriter, content string) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"id":     "cmpl-1",
		"object": "chat.completion",
		"model":  "test-model",
		"choices": []map[string]any{
			{"index": 0, "message": map[string]any{"role": "assistant", "content": content}, "finish_reason": "stop"},
		},
	})
}

func writeAPIError(w http.ResponseWriter, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = fmt.Fprintf(w, `{"error":{"message":"status %d","type":"server_error"}}`, status)
}

func TestComplete_ReturnsFirstChoice(t *testing.T) {
	var gotModel string
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		var body struct {
			Model    string `json:"model"`
			Messages []struct {
				Content string `json:"content"`
			} `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		gotModel = body.Model
		assert.Equal(t, "hello", body.Messages[0].Content)
		writeCompletion(w, `{"name":"ReadTransactions","parameters":{}}`)
	})

	content, err := provider.Complete(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, `{"name":"ReadTransactions","parameters":{}}`, content)
	assert.Equal(t, "test-model", gotModel)
}

func TestComplete_RetriesServerErrors(t *testing.T) {
	var hits atomic.Int32
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) < 3 {
			writeAPIError(w, http.StatusServiceUnavailable)
			return
		}
		writeCompletion(w, "ok")
	})

	content, err := provider.Complete(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "ok", content)
	assert.Equal(t, int32(3), hits.Load())
}

func TestComplete_DoesNotRetryClientErrors(t *testing.T) {
	var hits atomic.Int32
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		writeAPIError(w, http.StatusBadRequest)
	})

	_, err := provider.Complete(context.Background(), "hello")
	assert.Error(t, err)
	assert.Equal(t, int32(1), hits.Load())
}

func TestComplete_NoChoices(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":"cmpl-1","choices":[]}`)
	})

	_, err := provider.Complete(context.Background(), "hello")
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestCompleteStreaming_YieldsFragments(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		for _, fragment := range []string{`{"name":`, `"ReadTransactions",`, `"parameters":{}}`} {
			chunk, _ := json.Marshal(map[string]any{
				"id":      "cmpl-1",
				"object":  "chat.completion.chunk",
				"choices": []map[string]any{{"index": 0, "delta": map[string]any{"content": fragment}}},
			})
			_, _ = fmt.Fprintf(w, "data: %s\n\n", chunk)
		}
		_, _ = io.WriteString(w, "data: [DONE]\n\n")
	})

	stream, err := provider.CompleteStreaming(context.Background(), "hello")
	require.NoError(t, err)
	defer stream.Close()

	var collected string
	for {
		fragment, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		collected += fragment
	}
	assert.Equal(t, `{"name":"ReadTransactions","parameters":{}}`, collected)
}

func TestRetryable(t *testing.T) {
	assert.False(t, retryable(context.Canceled))
	assert.False(t, retryable(fmt.Errorf("wrapped: %w", context.DeadlineExceeded)))
	assert.True(t, retryable(errors.New("dial tcp: connection refused")))
}
