package database

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres" // register postgres driver
	_ "github.com/golang-migrate/migrate/v4/source/file"       // register file source driver
)

// RunMigrations applies all pending migrations from source (e.g. "file://migrations").
// Having nothing to apply is not an error.
func RunMigrations(databaseURL, source string) error {
	m, err := migrate.New(source, databaseURL)
	if err != nil {
		return fmt.Errorf("database: create migrator: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			slog.Info("Database schema is up to date")
			return nil
		}
		return fmt.Errorf("database: run migrations up: %w", err)
	}

	version, dirty, err := m.Version()
	if err == nil {
		slog.Info("Database migrations applied", "version", version, "dirty", dirty)
	}
	return nil
}
