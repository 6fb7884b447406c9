package table

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-agent/internal/category"
)

// Transaction represents a transaction record joined with its category name.
type Transaction struct {
	ID           uuid.UUID
	UserID       string
	CategoryID   uuid.UUID
	CategoryName string
	Amount       decimal.Decimal
	Date         time.Time
	Description  string
	Kind         category.Kind
	CreatedAt    time.Time
}

// TransactionCreate is the input for creating a new transaction.
type TransactionCreate struct {
	UserID      string
	Category    *Category
	Amount      decimal.Decimal
	Date        time.Time
	Description string
	Kind        category.Kind
}

// TransactionFilter specifies filters for listing transactions.
// Results are ordered by date descending, newest insert first on ties.
type TransactionFilter struct {
	UserID string
	Kind   *category.Kind
	// From and To are inclusive calendar-date bounds.
	From  *time.Time
	To    *time.Time
	Limit int
}

// CategoryTotal is the summed amount of the filtered transactions of one category.
type CategoryTotal struct {
	CategoryName string
	Total        decimal.Decimal
}

// ITransactionTable defines the interface for transaction storage operations.
// This abstraction allows swapping the implementation (Bob, Mongo, memory) without changing callers.
//
//go:generate mockery --name ITransactionTable --output mock_ITransactionTable.go
type ITransactionTable interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Transaction, error)
	Insert(ctx context.Context, create *TransactionCreate) (*Transaction, error)
	List(ctx context.Context, filter *TransactionFilter) ([]*Transaction, error)
	SumByCategory(ctx context.Context, filter *TransactionFilter) ([]*CategoryTotal, error)
	Delete(ctx context.Context, id uuid.UUID, userID string) error
}

// DateOnly truncates t to midnight UTC of its calendar date.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
