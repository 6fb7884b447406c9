package sqlconfig

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"

	"github.com/carson-networks/budget-agent/internal/category"
	"github.com/carson-networks/budget-agent/internal/storage/table"
)

var categoryColumns = []any{"id", "name", "kind"}

type categoryRow struct {
	ID   uuid.UUID `db:"id"`
	Name string    `db:"name"`
	Kind int16     `db:"kind"`
}

func (r categoryRow) toCategory() *table.Category {
	return &table.Category{
		ID:   r.ID,
		Name: r.Name,
		Kind: category.Kind(r.Kind),
	}
}

// CategoriesTable provides access to the categories table.
type CategoriesTable struct {
	exec bob.Executor
}

// Ensure CategoriesTable implements ICategoryTable at compile time.
var _ table.ICategoryTable = (*CategoriesTable)(nil)

func NewCategoriesTable(exec bob.Executor) *CategoriesTable {
	return &CategoriesTable{exec: exec}
}

// FindByName retrieves a category by exact name.
func (t *CategoriesTable) FindByName(ctx context.Context, name string) (*table.Category, error) {
	q := psql.Select(
		sm.Columns(categoryColumns...),
		sm.From("categories"),
		sm.Where(psql.Quote("name").EQ(psql.Arg(name))),
	)
	row, err := bob.One(ctx, t.exec, q, scan.StructMapper[categoryRow]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, table.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return row.toCategory(), nil
}

// Insert creates a category and returns the stored record. A name conflict
// returns the existing row.
func (t *CategoriesTable) Insert(ctx context.Context, create *table.CategoryCreate) (*table.Category, error) {
	q := psql.Insert(
		im.Into("categories", "name", "kind"),
		im.Values(psql.Arg(create.Name), psql.Arg(int16(create.Kind))),
		im.OnConflict("name").DoUpdate(im.SetExcluded("name")),
		im.Returning(categoryColumns...),
	)
	row, err := bob.One(ctx, t.exec, q, scan.StructMapper[categoryRow]())
	if err != nil {
		return nil, err
	}
	return row.toCategory(), nil
}

// List returns every category ordered by name.
func (t *CategoriesTable) List(ctx context.Context) ([]*table.Category, error) {
	q := psql.Select(
		sm.Columns(categoryColumns...),
		sm.From("categories"),
		sm.OrderBy("name").Asc(),
	)
	rows, err := bob.All(ctx, t.exec, q, scan.StructMapper[categoryRow]())
	if err != nil {
		return nil, err
	}
	result := make([]*table.Category, len(rows))
	for i, row := range rows {
		result[i] = row.toCategory()
	}
	return result, nil
}

func (t *CategoriesTable) Count(ctx context.Context) (int64, error) {
	q := psql.Select(
		sm.Columns("count(*)"),
		sm.From("categories"),
	)
	return bob.One(ctx, t.exec, q, scan.SingleColumnMapper[int64])
}
