package status

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/budget-agent/internal/logging"
	"github.com/carson-networks/budget-agent/internal/storage/table"
)

func createTestLogData() *logging.LogData {
	logger := logging.SetupLogging("info")
	return logging.NewLogData(logger)
}

func TestHandler_GoodMethod(t *testing.T) {
	categories := table.NewMockICategoryTable(t)
	categories.EXPECT().Count(mock.Anything).Return(12, nil)
	statusHandler := NewHandler(categories)
	req := httptest.NewRequest(http.MethodGet, "/status", nil)

	w := httptest.NewRecorder()

	err := statusHandler.Handler(w, req, createTestLogData())
	assert.NoError(t, err)

	res := w.Result()
	assert.Equal(t, 200, res.StatusCode)
}

func TestHandler_BadMethod(t *testing.T) {
	statusHandler := NewHandler(table.NewMockICategoryTable(t))
	req := httptest.NewRequest(http.MethodPost, "/status", nil)
	w := httptest.NewRecorder()

	err := statusHandler.Handler(w, req, createTestLogData())
	assert.Error(t, err)

	res := w.Result()
	assert.Equal(t, 400, res.StatusCode)
}

func TestHandler_StoreUnavailable(t *testing.T) {
	categories := table.NewMockICategoryTable(t)
	categories.EXPECT().Count(mock.Anything).Return(0, errors.New("connection refused"))
	statusHandler := NewHandler(categories)
	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	w := httptest.NewRecorder()

	err := statusHandler.Handler(w, req, createTestLogData())
	assert.Error(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, w.Result().StatusCode)
}
