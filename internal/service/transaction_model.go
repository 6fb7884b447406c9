package service

import (
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-agent/internal/category"
	"github.com/carson-networks/budget-agent/internal/storage/table"
)

// Transaction represents a transaction in the service layer.
type Transaction struct {
	ID           uuid.UUID
	UserID       string
	Amount       decimal.Decimal
	Date         time.Time
	Description  string
	Kind         category.Kind
	CategoryID   uuid.UUID
	CategoryName string
	CreatedAt    time.Time
}

// NewTransaction is the input of AddTransaction.
type NewTransaction struct {
	UserID       string
	Amount       decimal.Decimal
	CategoryName string
	Description  string
	Date         time.Time
	Kind         category.Kind
}

// MonthlySummaryItem is the expense total of one category in a month.
type MonthlySummaryItem struct {
	Category string
	Total    decimal.Decimal
}

type Category struct {
	ID   uuid.UUID
	Name string
	Kind category.Kind
}

func tableTransactionToTransaction(row *table.Transaction) Transaction {
	return Transaction{
		ID:           row.ID,
		UserID:       row.UserID,
		Amount:       row.Amount,
		Date:         row.Date,
		Description:  row.Description,
		Kind:         row.Kind,
		CategoryID:   row.CategoryID,
		CategoryName: row.CategoryName,
		CreatedAt:    row.CreatedAt,
	}
}
