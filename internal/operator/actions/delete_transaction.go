package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-agent/internal/storage"
)

type DeleteTransaction struct {
	ID     uuid.UUID
	UserID string
}

func (d *DeleteTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	return writer.Transactions.Delete(ctx, d.ID, d.UserID)
}
