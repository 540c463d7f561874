package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"portfolio-site/internal/domain"
	"portfolio-site/internal/platform/logger"
)

// PostgresStore keeps the document as one JSONB row in portfolio_documents.
type PostgresStore struct {
	pool *pgxpool.Pool
	id   string
	log  *logger.Logger
}

func NewPostgresStore(pool *pgxpool.Pool, documentID string, log *logger.Logger) *PostgresStore {
	return &PostgresStore{pool: pool, id: documentID, log: log.With("store", "postgres", "document_id", documentID)}
}

func (s *PostgresStore) Load(ctx context.Context) (*domain.PortfolioData, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx, `SELECT data FROM portfolio_documents WHERE id = $1`, s.id).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return decode(nil, "postgres", s.log)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: select document: %v", domain.ErrStorage, err)
	}
	return decode(raw, "postgres", s.log)
}

func (s *PostgresStore) Save(ctx context.Context, doc *domain.PortfolioData) error {
	raw, err := encode(doc, "postgres")
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx, `INSERT INTO portfolio_documents (id, data, schema_version, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data, schema_version = EXCLUDED.schema_version, updated_at = EXCLUDED.updated_at`,
		s.id, raw, doc.SchemaVersion)
	if err != nil {
		return fmt.Errorf("%w: upsert document: %v", domain.ErrStorage, err)
	}
	return nil
}
