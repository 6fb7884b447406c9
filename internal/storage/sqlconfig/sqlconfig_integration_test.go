//go:build integration

package sqlconfig

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stephenafamo/bob"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"

	_ "github.com/lib/pq"

	"github.com/carson-networks/budget-agent/internal/category"
	"github.com/carson-networks/budget-agent/internal/storage/table"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()

	ctr, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("budget"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("testpassword"),
		tcpostgres.BasicWaitStrategies(),
	)
	t.Cleanup(func() {
		_ = testcontainers.TerminateContainer(ctr)
	})
	require.NoError(t, err)

	connStr, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := sql.Open("postgres", connStr)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	pre, post, err := RunMigrations(db)
	require.NoError(t, err)
	assert.Equal(t, uint(0), pre)
	assert.Equal(t, uint(2), post)
	return db
}

func TestTables_RoundTrip(t *testing.T) {
	ctx := context.Background()
	exec := bob.NewDB(newTestDB(t))
	categories := NewCategoriesTable(exec)
	transactions := NewTransactionsTable(exec)

	travel, err := categories.Insert(ctx, &table.CategoryCreate{Name: category.Travel, Kind: category.KindExpense})
	require.NoError(t, err)
	food, err := categories.Insert(ctx, &table.CategoryCreate{Name: category.FoodAndDrinks, Kind: category.KindExpense})
	require.NoError(t, err)

	found, err := categories.FindByName(ctx, category.Travel)
	require.NoError(t, err)
	assert.Equal(t, travel.ID, found.ID)

	again, err := categories.Insert(ctx, &table.CategoryCreate{Name: category.Travel, Kind: category.KindIncome})
	require.NoError(t, err)
	assert.Equal(t, travel.ID, again.ID)
	assert.Equal(t, category.KindExpense, again.Kind)

	_, err = categories.FindByName(ctx, "Nope")
	assert.ErrorIs(t, err, table.ErrNotFound)

	count, err := categories.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	flight, err := transactions.Insert(ctx, &table.TransactionCreate{
		UserID: "u1", Category: travel, Amount: decimal.RequireFromString("450.25"),
		Date: day, Description: "flight to Tokyo", Kind: category.KindExpense,
	})
	require.NoError(t, err)
	assert.Equal(t, category.Travel, flight.CategoryName)

	_, err = transactions.Insert(ctx, &table.TransactionCreate{
		UserID: "u1", Category: food, Amount: decimal.RequireFromString("4.75"),
		Date: day.AddDate(0, 0, 1), Description: "coffee", Kind: category.KindExpense,
	})
	require.NoError(t, err)

	rows, err := transactions.List(ctx, &table.TransactionFilter{UserID: "u1", Limit: 10})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "coffee", rows[0].Description)
	assert.Equal(t, category.FoodAndDrinks, rows[0].CategoryName)
	assert.True(t, decimal.RequireFromString("450.25").Equal(rows[1].Amount))

	from := day
	to := day.AddDate(0, 1, -1)
	totals, err := transactions.SumByCategory(ctx, &table.TransactionFilter{UserID: "u1", From: &from, To: &to})
	require.NoError(t, err)
	assert.Len(t, totals, 2)

	assert.ErrorIs(t, transactions.Delete(ctx, flight.ID, "u2"), table.ErrNotFound)
	require.NoError(t, transactions.Delete(ctx, flight.ID, "u1"))
	_, err = transactions.FindByID(ctx, flight.ID)
	assert.ErrorIs(t, err, table.ErrNotFound)
}
