package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/budget-agent/internal/agent"
	"github.com/carson-networks/budget-agent/internal/completion"
	"github.com/carson-networks/budget-agent/internal/logging"
	"github.com/carson-networks/budget-agent/internal/operator"
	"github.com/carson-networks/budget-agent/internal/service"
	"github.com/carson-networks/budget-agent/internal/storage"
)

func newTestServer(t *testing.T) (*httptest.Server, *completion.MockProvider) {
	t.Helper()
	store := storage.NewMemoryStorage()
	op := operator.NewOperatorDelegator(store, 1)
	op.Start()
	t.Cleanup(op.Stop)

	svc := service.NewService(store, op, nil)
	_, err := svc.Transaction.SeedCategories(context.Background())
	require.NoError(t, err)

	provider := completion.NewMockProvider(t)
	rest := &Rest{
		Logger:  logging.SetupLogging("error"),
		Storage: store,
		Service: svc,
		Agent:   agent.NewAgent(provider, agent.NewDispatcher(svc.Transaction, 10), time.Minute),
	}

	server := httptest.NewServer(rest.Handler())
	t.Cleanup(server.Close)
	return server, provider
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestRoutes_Status(t *testing.T) {
	server, _ := newTestServer(t)

	resp, err := http.Get(server.URL + "/status")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRoutes_AgentLogThenList(t *testing.T) {
	server, provider := newTestServer(t)
	provider.EXPECT().Complete(mock.Anything, mock.Anything).
		Return("```json\n{\"name\": \"LogTransaction\", \"parameters\": {\"amount\": 42, \"category\": \"Groceries\", \"description\": \"weekly shop\", \"date\": \"2025-03-01\"}}\n```", nil).Once()

	resp := postJSON(t, server.URL+"/v1/agent/process", map[string]string{
		"prompt": "spent 42 on groceries",
		"userId": "u1",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var reply struct {
		Response string `json:"response"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&reply))
	assert.Equal(t, agent.MessageLogSuccess, reply.Response)

	listResp, err := http.Get(server.URL + "/v1/transactions?userId=u1")
	require.NoError(t, err)
	defer listResp.Body.Close()
	require.Equal(t, http.StatusOK, listResp.StatusCode)

	var list struct {
		Transactions []struct {
			Amount   string `json:"amount"`
			Category string `json:"category"`
			Date     string `json:"date"`
		} `json:"transactions"`
	}
	require.NoError(t, json.NewDecoder(listResp.Body).Decode(&list))
	require.Len(t, list.Transactions, 1)
	assert.Equal(t, "42", list.Transactions[0].Amount)
	assert.Equal(t, "Groceries", list.Transactions[0].Category)
	assert.Equal(t, "2025-03-01", list.Transactions[0].Date)
}

func TestRoutes_Categories(t *testing.T) {
	server, _ := newTestServer(t)

	resp, err := http.Get(server.URL + "/v1/categories")
	require.NoError(t, err)
	defer resp.Body.Close()

	var body struct {
		Categories []struct {
			Name string `json:"name"`
		} `json:"categories"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Len(t, body.Categories, 12)
}
