package sqlconfig

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"

	"github.com/carson-networks/budget-agent/internal/category"
	"github.com/carson-networks/budget-agent/internal/storage/table"
)

type transactionRow struct {
	ID           uuid.UUID       `db:"id"`
	UserID       string          `db:"user_id"`
	CategoryID   uuid.UUID       `db:"category_id"`
	CategoryName string          `db:"category_name"`
	Amount       decimal.Decimal `db:"amount"`
	Date         time.Time       `db:"date"`
	Description  string          `db:"description"`
	Kind         int16           `db:"kind"`
	CreatedAt    time.Time       `db:"created_at"`
}

type categoryTotalRow struct {
	CategoryName string          `db:"category_name"`
	Total        decimal.Decimal `db:"total"`
}

var _ table.ITransactionTable = (*TransactionsTable)(nil)

type TransactionsTable struct {
	exec bob.Executor
}

func NewTransactionsTable(exec bob.Executor) *TransactionsTable {
	return &TransactionsTable{exec: exec}
}

// FindByID retrieves a transaction by primary key.
func (t *TransactionsTable) FindByID(ctx context.Context, id uuid.UUID) (*table.Transaction, error) {
	q := psql.Select(append(joinedSelect(),
		sm.Where(psql.Quote("t", "id").EQ(psql.Arg(id))),
	)...)
	row, err := bob.One(ctx, t.exec, q, scan.StructMapper[transactionRow]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, table.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return bobTransactionToTransaction(row), nil
}

// Insert creates a new transaction and returns the stored record.
func (t *TransactionsTable) Insert(ctx context.Context, create *table.TransactionCreate) (*table.Transaction, error) {
	q := psql.Insert(
		im.Into("transactions", "user_id", "category_id", "amount", "date", "description", "kind"),
		im.Values(
			psql.Arg(create.UserID),
			psql.Arg(create.Category.ID),
			psql.Arg(create.Amount),
			psql.Arg(table.DateOnly(create.Date)),
			psql.Arg(create.Description),
			psql.Arg(int16(create.Kind)),
		),
		im.Returning("id", "user_id", "category_id", "amount", "date", "description", "kind", "created_at"),
	)
	row, err := bob.One(ctx, t.exec, q, scan.StructMapper[transactionRow]())
	if err != nil {
		return nil, err
	}
	row.CategoryName = create.Category.Name
	return bobTransactionToTransaction(row), nil
}

// List returns transactions matching the filter, newest first. Nil filter returns all.
func (t *TransactionsTable) List(ctx context.Context, filter *table.TransactionFilter) ([]*table.Transaction, error) {
	queryMods := append(joinedSelect(), whereMods(filter)...)
	queryMods = append(queryMods,
		sm.OrderBy(psql.Quote("t", "date")).Desc(),
		sm.OrderBy(psql.Quote("t", "created_at")).Desc(),
	)
	if filter != nil && filter.Limit > 0 {
		queryMods = append(queryMods, sm.Limit(filter.Limit))
	}
	rows, err := bob.All(ctx, t.exec, psql.Select(queryMods...), scan.StructMapper[transactionRow]())
	if err != nil {
		return nil, err
	}
	result := make([]*table.Transaction, len(rows))
	for i, row := range rows {
		result[i] = bobTransactionToTransaction(row)
	}
	return result, nil
}

// SumByCategory totals the matching transactions per category name.
func (t *TransactionsTable) SumByCategory(ctx context.Context, filter *table.TransactionFilter) ([]*table.CategoryTotal, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns("c.name AS category_name", "SUM(t.amount) AS total"),
		sm.From("transactions").As("t"),
		sm.InnerJoin("categories").As("c").On(psql.Quote("c", "id").EQ(psql.Quote("t", "category_id"))),
	}
	queryMods = append(queryMods, whereMods(filter)...)
	queryMods = append(queryMods, sm.GroupBy(psql.Quote("c", "name")))

	rows, err := bob.All(ctx, t.exec, psql.Select(queryMods...), scan.StructMapper[categoryTotalRow]())
	if err != nil {
		return nil, err
	}
	result := make([]*table.CategoryTotal, len(rows))
	for i, row := range rows {
		result[i] = &table.CategoryTotal{CategoryName: row.CategoryName, Total: row.Total}
	}
	return result, nil
}

// Delete removes a transaction owned by userID.
func (t *TransactionsTable) Delete(ctx context.Context, id uuid.UUID, userID string) error {
	q := psql.Delete(
		dm.From("transactions"),
		dm.Where(psql.Quote("id").EQ(psql.Arg(id))),
		dm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
	)
	res, err := bob.Exec(ctx, t.exec, q)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return table.ErrNotFound
	}
	return nil
}

func joinedSelect() []bob.Mod[*dialect.SelectQuery] {
	return []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(
			"t.id", "t.user_id", "t.category_id", "c.name AS category_name",
			"t.amount", "t.date", "t.description", "t.kind", "t.created_at",
		),
		sm.From("transactions").As("t"),
		sm.InnerJoin("categories").As("c").On(psql.Quote("c", "id").EQ(psql.Quote("t", "category_id"))),
	}
}

func whereMods(filter *table.TransactionFilter) []bob.Mod[*dialect.SelectQuery] {
	var mods []bob.Mod[*dialect.SelectQuery]
	if filter == nil {
		return mods
	}
	if filter.UserID != "" {
		mods = append(mods, sm.Where(psql.Quote("t", "user_id").EQ(psql.Arg(filter.UserID))))
	}
	if filter.Kind != nil {
		mods = append(mods, sm.Where(psql.Quote("t", "kind").EQ(psql.Arg(int16(*filter.Kind)))))
	}
	if filter.From != nil {
		mods = append(mods, sm.Where(psql.Quote("t", "date").GTE(psql.Arg(table.DateOnly(*filter.From)))))
	}
	if filter.To != nil {
		mods = append(mods, sm.Where(psql.Quote("t", "date").LTE(psql.Arg(table.DateOnly(*filter.To)))))
	}
	return mods
}

func bobTransactionToTransaction(row transactionRow) *table.Transaction {
	return &table.Transaction{
		ID:           row.ID,
		UserID:       row.UserID,
		CategoryID:   row.CategoryID,
		CategoryName: row.CategoryName,
		Amount:       row.Amount,
		Date:         table.DateOnly(row.Date),
		Description:  row.Description,
		Kind:         category.Kind(row.Kind),
		CreatedAt:    row.CreatedAt,
	}
}
