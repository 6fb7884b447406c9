package sqlconfig

import (
	"database/sql"
	"embed"
	"errors"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrations embed.FS

// RunMigrations applies every pending migration and reports the schema
// version before and after.
func RunMigrations(db *sql.DB) (uint, uint, error) {
	source, err := iofs.New(migrations, "migrations")
	if err != nil {
		return 0, 0, err
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return 0, 0, err
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return 0, 0, err
	}

	pre, _, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return 0, 0, err
	}

	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return pre, 0, err
	}

	post, _, err := m.Version()
	if err != nil {
		return pre, 0, err
	}
	return pre, post, nil
}
