// Package memory implements the storage tables in process memory. It backs
// local runs and tests that need real persistence semantics without a database.
package memory

import (
	"context"
	"sync"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-agent/internal/storage/table"
)

var _ table.ICategoryTable = (*CategoriesTable)(nil)

type CategoriesTable struct {
	mu   sync.RWMutex
	rows []*table.Category
}

func NewCategoriesTable() *CategoriesTable {
	return &CategoriesTable{}
}

// FindByName retrieves a category by exact name.
func (t *CategoriesTable) FindByName(_ context.Context, name string) (*table.Category, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, row := range t.rows {
		if row.Name == name {
			c := *row
			return &c, nil
		}
	}
	return nil, table.ErrNotFound
}

// Insert adds a category, or returns the existing one with the same name.
func (t *CategoriesTable) Insert(_ context.Context, create *table.CategoryCreate) (*table.Category, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, row := range t.rows {
		if row.Name == create.Name {
			c := *row
			return &c, nil
		}
	}
	row := &table.Category{
		ID:   uuid.Must(uuid.NewV4()),
		Name: create.Name,
		Kind: create.Kind,
	}
	t.rows = append(t.rows, row)
	c := *row
	return &c, nil
}

// List returns every category in insertion order.
func (t *CategoriesTable) List(_ context.Context) ([]*table.Category, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	result := make([]*table.Category, len(t.rows))
	for i, row := range t.rows {
		c := *row
		result[i] = &c
	}
	return result, nil
}

func (t *CategoriesTable) Count(_ context.Context) (int64, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return int64(len(t.rows)), nil
}
