package memory

import (
	"context"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/budget-agent/internal/category"
	"github.com/carson-networks/budget-agent/internal/storage/table"
)

func TestCategoriesTable_InsertAndFind(t *testing.T) {
	ctx := context.Background()
	categories := NewCategoriesTable()

	created, err := categories.Insert(ctx, &table.CategoryCreate{Name: category.Travel, Kind: category.KindExpense})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)

	found, err := categories.FindByName(ctx, category.Travel)
	require.NoError(t, err)
	assert.Equal(t, created, found)

	_, err = categories.FindByName(ctx, "travel")
	assert.ErrorIs(t, err, table.ErrNotFound)

	again, err := categories.Insert(ctx, &table.CategoryCreate{Name: category.Travel, Kind: category.KindIncome})
	require.NoError(t, err)
	assert.Equal(t, created, again)

	count, err := categories.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func insertTx(t *testing.T, txs *TransactionsTable, cat *table.Category, userID, amount string, date time.Time) *table.Transaction {
	t.Helper()
	tx, err := txs.Insert(context.Background(), &table.TransactionCreate{
		UserID:      userID,
		Category:    cat,
		Amount:      decimal.RequireFromString(amount),
		Date:        date,
		Description: "test",
		Kind:        category.KindExpense,
	})
	require.NoError(t, err)
	return tx
}

func TestTransactionsTable_ListOrderingAndLimit(t *testing.T) {
	ctx := context.Background()
	txs := NewTransactionsTable()
	cat := &table.Category{ID: uuid.Must(uuid.NewV4()), Name: category.Travel}

	day := time.Date(2025, 3, 10, 15, 30, 0, 0, time.UTC)
	older := insertTx(t, txs, cat, "u1", "1", day.AddDate(0, 0, -1))
	first := insertTx(t, txs, cat, "u1", "2", day)
	second := insertTx(t, txs, cat, "u1", "3", day)
	insertTx(t, txs, cat, "u2", "4", day)

	rows, err := txs.List(ctx, &table.TransactionFilter{UserID: "u1"})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, second.ID, rows[0].ID)
	assert.Equal(t, first.ID, rows[1].ID)
	assert.Equal(t, older.ID, rows[2].ID)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), rows[0].Date)

	rows, err = txs.List(ctx, &table.TransactionFilter{UserID: "u1", Limit: 1})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, second.ID, rows[0].ID)
}

func TestTransactionsTable_SumByCategoryWithDateRange(t *testing.T) {
	ctx := context.Background()
	txs := NewTransactionsTable()
	travel := &table.Category{ID: uuid.Must(uuid.NewV4()), Name: category.Travel}
	food := &table.Category{ID: uuid.Must(uuid.NewV4()), Name: category.FoodAndDrinks}

	insertTx(t, txs, travel, "u1", "10.50", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))
	insertTx(t, txs, travel, "u1", "4.50", time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC))
	insertTx(t, txs, food, "u1", "2", time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC))
	insertTx(t, txs, food, "u1", "99", time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC))

	from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
	totals, err := txs.SumByCategory(ctx, &table.TransactionFilter{UserID: "u1", From: &from, To: &to})
	require.NoError(t, err)
	require.Len(t, totals, 2)
	assert.Equal(t, category.Travel, totals[0].CategoryName)
	assert.True(t, decimal.RequireFromString("15").Equal(totals[0].Total))
	assert.Equal(t, category.FoodAndDrinks, totals[1].CategoryName)
	assert.True(t, decimal.RequireFromString("2").Equal(totals[1].Total))
}

func TestTransactionsTable_DeleteScopedToUser(t *testing.T) {
	ctx := context.Background()
	txs := NewTransactionsTable()
	cat := &table.Category{ID: uuid.Must(uuid.NewV4()), Name: category.Health}
	tx := insertTx(t, txs, cat, "u1", "5", time.Now())

	assert.ErrorIs(t, txs.Delete(ctx, tx.ID, "u2"), table.ErrNotFound)
	require.NoError(t, txs.Delete(ctx, tx.ID, "u1"))

	_, err := txs.FindByID(ctx, tx.ID)
	assert.ErrorIs(t, err, table.ErrNotFound)
}

func TestCategoriesTable_ConcurrentInsertSameName(t *testing.T) {
	ctx := context.Background()
	categories := NewCategoriesTable()

	const writers = 8
	ids := make(chan uuid.UUID, writers)
	done := make(chan struct{})
	for i := 0; i < writers; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			created, err := categories.Insert(ctx, &table.CategoryCreate{Name: category.Health, Kind: category.KindExpense})
			assert.NoError(t, err)
			if created != nil {
				ids <- created.ID
			}
		}()
	}
	for i := 0; i < writers; i++ {
		<-done
	}
	close(ids)

	var first uuid.UUID
	for id := range ids {
		if first == uuid.Nil {
			first = id
		}
		assert.Equal(t, first, id)
	}
	count, err := categories.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
