package storage

import (
	"github.com/carson-networks/budget-agent/internal/storage/table"
)

// Writer exposes the tables inside a single unit of work. Backends without
// transactions leave commit and rollback unset.
type Writer struct {
	Categories   table.ICategoryTable
	Transactions table.ITransactionTable

	commit   func() error
	rollback func() error
}

func NewWriter(categories table.ICategoryTable, transactions table.ITransactionTable, commit, rollback func() error) *Writer {
	return &Writer{
		Categories:   categories,
		Transactions: transactions,
		commit:       commit,
		rollback:     rollback,
	}
}

func (w *Writer) Commit() error {
	if w.commit == nil {
		return nil
	}
	return w.commit()
}

func (w *Writer) Rollback() error {
	if w.rollback == nil {
		return nil
	}
	return w.rollback()
}
