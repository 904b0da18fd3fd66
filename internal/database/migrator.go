package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"github.com/jackc/pgx/v5"
	tern "github.com/jackc/tern/v2/migrate"
	"github.com/rs/zerolog"

	"github.com/paulloo/relivator/internal/config"
)

// Migrations are embedded so the binary carries its own schema history and
// never depends on the filesystem at runtime.
//
//go:embed migrations/*.sql
var migrations embed.FS

// Migrate brings the database schema to the latest version using tern.
// It opens a dedicated single connection; migrations do not need a pool.
func Migrate(ctx context.Context, logger *zerolog.Logger, cfg *config.Config) error {
	conn, err := pgx.Connect(ctx, dsn(cfg))
	if err != nil {
		return fmt.Errorf("connecting for migration: %w", err)
	}
	defer conn.Close(ctx)

	m, err := tern.NewMigrator(ctx, conn, "schema_version")
	if err != nil {
		return fmt.Errorf("constructing database migrator: %w", err)
	}

	subtree, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("retrieving database migrations subtree: %w", err)
	}

	if err := m.LoadMigrations(subtree); err != nil {
		return fmt.Errorf("loading database migrations: %w", err)
	}

	from, err := m.GetCurrentVersion(ctx)
	if err != nil {
		return fmt.Errorf("retrieving current database migration version: %w", err)
	}

	if err := m.Migrate(ctx); err != nil {
		return fmt.Errorf("running database migrations: %w", err)
	}

	to, err := m.GetCurrentVersion(ctx)
	if err != nil {
		return fmt.Errorf("retrieving new database migration version: %w", err)
	}

	if from == to {
		logger.Info().Int32("version", to).Msg("database schema already up to date")
	} else {
		logger.Info().Int32("from", from).Int32("to", to).Msg("database schema migrated")
	}

	return nil
}
