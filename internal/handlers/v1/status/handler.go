package status

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/carson-networks/budget-agent/internal/logging"
	"github.com/carson-networks/budget-agent/internal/storage/table"
)

// Handler reports whether the server can reach its store.
type Handler struct {
	Categories table.ICategoryTable
}

func NewHandler(categories table.ICategoryTable) Handler {
	return Handler{Categories: categories}
}

func (h *Handler) Handler(w http.ResponseWriter, req *http.Request, logData *logging.LogData) error {
	if req.Method != http.MethodGet {
		w.WriteHeader(http.StatusBadRequest)
		return errors.New("status: method not GET")
	}

	endTimer := logData.AddTiming("storeMs")
	count, err := h.Categories.Count(req.Context())
	endTimer()
	if err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return fmt.Errorf("status: store unavailable: %w", err)
	}

	logData.AddData("categoryCount", count)
	w.WriteHeader(http.StatusOK)
	return nil
}
