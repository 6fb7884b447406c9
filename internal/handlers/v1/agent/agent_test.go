package agent

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockRequestHandler struct {
	mock.Mock
}

func (m *mockRequestHandler) Handle(ctx context.Context, prompt, userID string) string {
	args := m.Called(ctx, prompt, userID)
	return args.String(0)
}

func (m *mockRequestHandler) HandleStreaming(ctx context.Context, prompt, userID string) <-chan string {
	args := m.Called(ctx, prompt, userID)
	return args.Get(0).(<-chan string)
}

func newTestAPI(t *testing.T, agent requestHandler) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewProcessHandler(agent).Register(api)
	NewStreamProcessHandler(agent).Register(api)
	return api
}

func replies(values ...string) <-chan string {
	ch := make(chan string, len(values))
	for _, v := range values {
		ch <- v
	}
	close(ch)
	return ch
}

func TestHTTP_Process(t *testing.T) {
	agent := &mockRequestHandler{}
	agent.On("Handle", mock.Anything, "coffee 3.50", "u1").Return("Transaction logged successfully.")
	api := newTestAPI(t, agent)

	resp := api.Post("/v1/agent/process", map[string]any{
		"prompt": "coffee 3.50",
		"userId": "u1",
	})

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"response":"Transaction logged successfully."`)
	agent.AssertExpectations(t)
}

func TestHTTP_Process_RejectsBlankFields(t *testing.T) {
	agent := &mockRequestHandler{}
	api := newTestAPI(t, agent)

	for _, body := range []map[string]any{
		{"prompt": "", "userId": "u1"},
		{"prompt": "hi", "userId": "  "},
		{"prompt": "hi"},
	} {
		resp := api.Post("/v1/agent/process", body)
		assert.Equal(t, http.StatusBadRequest, resp.Code, "body %v", body)
	}
	agent.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything, mock.Anything)
}

func TestHTTP_StreamProcess(t *testing.T) {
	agent := &mockRequestHandler{}
	agent.On("HandleStreaming", mock.Anything, "show my transactions", "u1").Return(replies("You have no transactions yet."))
	api := newTestAPI(t, agent)

	resp := api.Post("/v1/agent/stream-process", map[string]any{
		"prompt": "show my transactions",
		"userId": "u1",
	})

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "text/event-stream", resp.Header().Get("Content-Type"))
	body := resp.Body.String()
	assert.Equal(t, 1, strings.Count(body, "data: "))
	assert.Contains(t, body, `data: {"response":"You have no transactions yet."}`)
	agent.AssertExpectations(t)
}

func TestHTTP_StreamProcess_RejectsBlankPrompt(t *testing.T) {
	agent := &mockRequestHandler{}
	api := newTestAPI(t, agent)

	resp := api.Post("/v1/agent/stream-process", map[string]any{"prompt": " ", "userId": "u1"})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	agent.AssertNotCalled(t, "HandleStreaming", mock.Anything, mock.Anything, mock.Anything)
}
