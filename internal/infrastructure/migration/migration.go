package migration

import (
	"context"

	"github.com/jackc/pgx/v4/pgxpool"

	"portfolio-site/internal/platform/logger"
)

// RunMigrations prepares the PostgreSQL schema used by the document store.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool, log *logger.Logger) error {
	log.Info("starting database migrations")

	migrations := []Migration{
		{Name: "create_portfolio_documents", Up: createPortfolioDocuments},
		{Name: "add_schema_version_to_portfolio_documents", Up: addSchemaVersionColumn},
	}

	for _, m := range migrations {
		if err := m.Up(ctx, pool); err != nil {
			log.Error("migration failed", "name", m.Name, "error", err)
			return err
		}
		log.Info("migration completed", "name", m.Name)
	}

	log.Info("all database migrations completed")
	return nil
}

// Migration is one idempotent DDL step.
type Migration struct {
	Name string
	Up   func(ctx context.Context, pool *pgxpool.Pool) error
}

func createPortfolioDocuments(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS portfolio_documents (
			id         TEXT PRIMARY KEY,
			data       JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
	`)
	return err
}

// addSchemaVersionColumn mirrors the document's schemaVersion into a column
// so operators can find rows that still need a rewrite.
func addSchemaVersionColumn(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
		ALTER TABLE portfolio_documents
		ADD COLUMN IF NOT EXISTS schema_version INT NOT NULL DEFAULT 0;
	`)
	return err
}
