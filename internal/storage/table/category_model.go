package table

import (
	"context"
	"errors"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-agent/internal/category"
)

// ErrNotFound is returned when a lookup matches no record.
var ErrNotFound = errors.New("record not found")

// Category represents a category record.
type Category struct {
	ID   uuid.UUID
	Name string
	Kind category.Kind
}

// CategoryCreate is the input for creating a new category.
type CategoryCreate struct {
	Name string
	Kind category.Kind
}

// ICategoryTable defines the interface for category storage operations.
// Insert returns the persisted record so callers can reference it directly.
// When the name is already taken it returns the stored record instead of an
// error, so concurrent writers creating the same category both succeed.
//
//go:generate mockery --name ICategoryTable --output mock_ICategoryTable.go
type ICategoryTable interface {
	FindByName(ctx context.Context, name string) (*Category, error)
	Insert(ctx context.Context, create *CategoryCreate) (*Category, error)
	List(ctx context.Context) ([]*Category, error)
	Count(ctx context.Context) (int64, error)
}
