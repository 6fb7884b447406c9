package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-agent/internal/storage/table"
)

var _ table.ITransactionTable = (*TransactionsTable)(nil)

type TransactionsTable struct {
	mu   sync.RWMutex
	rows []*table.Transaction
	now  func() time.Time
}

func NewTransactionsTable() *TransactionsTable {
	return &TransactionsTable{now: time.Now}
}

// FindByID retrieves a transaction by primary key.
func (t *TransactionsTable) FindByID(_ context.Context, id uuid.UUID) (*table.Transaction, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, row := range t.rows {
		if row.ID == id {
			tx := *row
			return &tx, nil
		}
	}
	return nil, table.ErrNotFound
}

// Insert stores a new transaction and returns the persisted record.
func (t *TransactionsTable) Insert(_ context.Context, create *table.TransactionCreate) (*table.Transaction, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	row := &table.Transaction{
		ID:           uuid.Must(uuid.NewV4()),
		UserID:       create.UserID,
		CategoryID:   create.Category.ID,
		CategoryName: create.Category.Name,
		Amount:       create.Amount,
		Date:         table.DateOnly(create.Date),
		Description:  create.Description,
		Kind:         create.Kind,
		CreatedAt:    t.now().UTC(),
	}
	t.rows = append(t.rows, row)
	tx := *row
	return &tx, nil
}

// List returns transactions matching the filter ordered by date descending.
// Ties keep the most recently inserted first.
func (t *TransactionsTable) List(_ context.Context, filter *table.TransactionFilter) ([]*table.Transaction, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	result := make([]*table.Transaction, 0)
	for i := len(t.rows) - 1; i >= 0; i-- {
		row := t.rows[i]
		if !matches(row, filter) {
			continue
		}
		tx := *row
		result = append(result, &tx)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Date.After(result[j].Date)
	})
	if filter != nil && filter.Limit > 0 && len(result) > filter.Limit {
		result = result[:filter.Limit]
	}
	return result, nil
}

// SumByCategory totals the matching transactions per category name.
func (t *TransactionsTable) SumByCategory(_ context.Context, filter *table.TransactionFilter) ([]*table.CategoryTotal, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	totals := make(map[string]decimal.Decimal)
	order := make([]string, 0)
	for _, row := range t.rows {
		if !matches(row, filter) {
			continue
		}
		sum, ok := totals[row.CategoryName]
		if !ok {
			order = append(order, row.CategoryName)
		}
		totals[row.CategoryName] = sum.Add(row.Amount)
	}
	result := make([]*table.CategoryTotal, len(order))
	for i, name := range order {
		result[i] = &table.CategoryTotal{CategoryName: name, Total: totals[name]}
	}
	return result, nil
}

// Delete removes a transaction owned by userID.
func (t *TransactionsTable) Delete(_ context.Context, id uuid.UUID, userID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i, row := range t.rows {
		if row.ID == id && row.UserID == userID {
			t.rows = append(t.rows[:i], t.rows[i+1:]...)
			return nil
		}
	}
	return table.ErrNotFound
}

func matches(row *table.Transaction, filter *table.TransactionFilter) bool {
	if filter == nil {
		return true
	}
	if filter.UserID != "" && row.UserID != filter.UserID {
		return false
	}
	if filter.Kind != nil && row.Kind != *filter.Kind {
		return false
	}
	if filter.From != nil && row.Date.Before(table.DateOnly(*filter.From)) {
		return false
	}
	if filter.To != nil && row.Date.After(table.DateOnly(*filter.To)) {
		return false
	}
	return true
}
