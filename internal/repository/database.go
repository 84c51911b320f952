package repository

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	_ "github.com/golang-migrate/migrate/v4/source/file" // Required for file source
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	_ "modernc.org/sqlite" // SQLite driver
)

// NewSQLiteDB opens (creating if needed) the dataset audit database.
func NewSQLiteDB(path string, logger *zap.Logger) (*sqlx.DB, error) {
	// modernc's driver registers as "sqlite", which sqlx does not know
	// a bind type for out of the box.
	sqlx.BindDriver("sqlite", sqlx.QUESTION)

	db, err := sqlx.Connect("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset database: %w", err)
	}

	logger.Info("Dataset database opened", zap.String("path", path))
	return db, nil
}

// MigrateDB runs the schema migrations for the dataset store.
func MigrateDB(db *sqlx.DB, migrationsDir string, logger *zap.Logger) error {
	driver, err := sqlite.WithInstance(db.DB, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("failed to get database instance for migrations: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+migrationsDir, "dataset", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run database migration: %w", err)
	}

	logger.Info("Database migration was run successfully")
	return nil
}
