package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/stephenafamo/bob"

	"github.com/carson-networks/budget-agent/internal/config"
	"github.com/carson-networks/budget-agent/internal/storage/document"
	"github.com/carson-networks/budget-agent/internal/storage/memory"
	"github.com/carson-networks/budget-agent/internal/storage/sqlconfig"
	"github.com/carson-networks/budget-agent/internal/storage/table"
)

// Storage exposes the tables for reads and opens writers for mutations.
type Storage struct {
	Categories   table.ICategoryTable
	Transactions table.ITransactionTable

	begin func(ctx context.Context) (*Writer, error)
	close func(ctx context.Context) error
}

// NewStorage connects the backend selected by env.StorageBackend.
func NewStorage(ctx context.Context, env *config.Config) (*Storage, error) {
	switch env.StorageBackend {
	case config.StoragePostgres:
		return newPostgresStorage(env)
	case config.StorageMongo:
		return newMongoStorage(ctx, env)
	case config.StorageMemory, "":
		return NewMemoryStorage(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", env.StorageBackend)
	}
}

// NewMemoryStorage returns a Storage backed by process memory.
func NewMemoryStorage() *Storage {
	return &Storage{
		Categories:   memory.NewCategoriesTable(),
		Transactions: memory.NewTransactionsTable(),
	}
}

func newPostgresStorage(env *config.Config) (*Storage, error) {
	db, err := sql.Open("postgres", env.PostgresConnectionString())
	if err != nil {
		return nil, err
	}
	exec := bob.NewDB(db)

	return &Storage{
		Categories:   sqlconfig.NewCategoriesTable(exec),
		Transactions: sqlconfig.NewTransactionsTable(exec),
		begin: func(ctx context.Context) (*Writer, error) {
			tx, err := exec.BeginTx(ctx, nil)
			if err != nil {
				return nil, err
			}
			return NewWriter(
				sqlconfig.NewCategoriesTable(tx),
				sqlconfig.NewTransactionsTable(tx),
				func() error { return tx.Commit(context.Background()) },
				func() error { return tx.Rollback(context.Background()) },
			), nil
		},
		close: func(context.Context) error {
			return db.Close()
		},
	}, nil
}

// Mongo writers run without a session, so Commit and Rollback are no-ops.
func newMongoStorage(ctx context.Context, env *config.Config) (*Storage, error) {
	client, err := document.Connect(ctx, env.MongoURI)
	if err != nil {
		return nil, err
	}
	db := client.Database(env.MongoDatabase)
	if err := document.EnsureIndexes(ctx, db); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	return &Storage{
		Categories:   document.NewCategoriesTable(db),
		Transactions: document.NewTransactionsTable(db),
		close:        client.Disconnect,
	}, nil
}

// Write opens a writer. Callers must Commit or Rollback it.
func (s *Storage) Write(ctx context.Context) (*Writer, error) {
	if s.begin == nil {
		return NewWriter(s.Categories, s.Transactions, nil, nil), nil
	}
	return s.begin(ctx)
}

func (s *Storage) Close(ctx context.Context) error {
	if s.close == nil {
		return nil
	}
	return s.close(ctx)
}
