package transaction

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/budget-agent/internal/service"
)

const dateLayout = "2006-01-02"

// Transaction is the API response model for a transaction.
// It is used only for responses, not for request bodies.
type Transaction struct {
	ID           string `json:"id" doc:"Transaction UUID"`
	UserID       string `json:"userId" doc:"Owner of the transaction"`
	CategoryID   string `json:"categoryId" doc:"Category UUID"`
	CategoryName string `json:"category" doc:"Category name"`
	Amount       string `json:"amount" doc:"Decimal amount"`
	Date         string `json:"date" doc:"Calendar date, YYYY-MM-DD"`
	Description  string `json:"description" doc:"Free-text description"`
	Kind         string `json:"kind" enum:"Income,Expense" doc:"Direction of money"`
	CreatedAt    string `json:"createdAt" doc:"RFC3339 creation time"`
}

func toTransaction(tx service.Transaction) Transaction {
	return Transaction{
		ID:           tx.ID.String(),
		UserID:       tx.UserID,
		CategoryID:   tx.CategoryID.String(),
		CategoryName: tx.CategoryName,
		Amount:       tx.Amount.String(),
		Date:         tx.Date.Format(dateLayout),
		Description:  tx.Description,
		Kind:         tx.Kind.String(),
		CreatedAt:    tx.CreatedAt.Format(time.RFC3339),
	}
}

func requireUserID(userID string) []error {
	if strings.TrimSpace(userID) == "" {
		return []error{huma.Error400BadRequest("userId must not be empty")}
	}
	return nil
}

func notFoundOr(err error, msg string) error {
	if errors.Is(err, service.ErrNotFound) {
		return huma.Error404NotFound("transaction not found")
	}
	return huma.NewError(http.StatusInternalServerError, msg, err)
}
