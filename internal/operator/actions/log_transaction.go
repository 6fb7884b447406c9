package actions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-agent/internal/category"
	"github.com/carson-networks/budget-agent/internal/storage"
	"github.com/carson-networks/budget-agent/internal/storage/table"
)

// LogTransaction resolves CategoryName to a stored category, creating it as an
// Expense category when absent, and inserts the transaction.
type LogTransaction struct {
	UserID       string
	Amount       decimal.Decimal
	CategoryName string
	Description  string
	Date         time.Time
	Kind         category.Kind

	// Transaction is set to the persisted record after a successful Perform.
	Transaction *table.Transaction
}

func (l *LogTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	cat, err := findOrCreateCategory(ctx, writer, l.CategoryName)
	if err != nil {
		return err
	}

	tx, err := writer.Transactions.Insert(ctx, &table.TransactionCreate{
		UserID:      l.UserID,
		Category:    cat,
		Amount:      l.Amount,
		Date:        l.Date,
		Description: l.Description,
		Kind:        l.Kind,
	})
	if err != nil {
		return fmt.Errorf("inserting transaction: %w", err)
	}

	l.Transaction = tx
	return nil
}

func findOrCreateCategory(ctx context.Context, writer *storage.Writer, name string) (*table.Category, error) {
	cat, err := writer.Categories.FindByName(ctx, name)
	if err == nil {
		return cat, nil
	}
	if !errors.Is(err, table.ErrNotFound) {
		return nil, fmt.Errorf("finding category %q: %w", name, err)
	}

	cat, err = writer.Categories.Insert(ctx, &table.CategoryCreate{Name: name, Kind: category.KindExpense})
	if err != nil {
		return nil, fmt.Errorf("creating category %q: %w", name, err)
	}
	return cat, nil
}
