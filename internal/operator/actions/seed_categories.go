package actions

import (
	"context"

	"github.com/carson-networks/budget-agent/internal/category"
	"github.com/carson-networks/budget-agent/internal/storage"
	"github.com/carson-networks/budget-agent/internal/storage/table"
)

// SeedCategories inserts the seeded categories when the store has none.
type SeedCategories struct {
	Inserted int
}

func (s *SeedCategories) Perform(ctx context.Context, writer *storage.Writer) error {
	count, err := writer.Categories.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, seed := range category.Seed() {
		if _, err := writer.Categories.Insert(ctx, &table.CategoryCreate{Name: seed.Name, Kind: seed.Kind}); err != nil {
			return err
		}
		s.Inserted++
	}
	return nil
}
