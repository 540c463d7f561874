package repository

import (
	"context"
	"fmt"

	"portfolio-site/internal/domain"
	"portfolio-site/internal/model"
	"portfolio-site/internal/platform/logger"
)

// Store loads and saves the whole portfolio document. Implementations must
// make Save atomic with respect to Load.
type Store interface {
	Load(ctx context.Context) (*domain.PortfolioData, error)
	Save(ctx context.Context, doc *domain.PortfolioData) error
}

// decode runs the shared load path. A nil raw means the backend holds no
// document yet, which yields an empty one.
func decode(raw []byte, backend string, log *logger.Logger) (*domain.PortfolioData, error) {
	if raw == nil {
		log.Info("no stored document, starting empty", "backend", backend)
		return model.Empty(), nil
	}
	doc, migrated, err := model.Decode(raw, log)
	if err != nil {
		return nil, fmt.Errorf("%w: %s document: %w", domain.ErrStorage, backend, err)
	}
	if migrated {
		log.Info("stored document migrated in memory, next save persists it", "backend", backend, "version", doc.SchemaVersion)
	}
	return doc, nil
}

func encode(doc *domain.PortfolioData, backend string) ([]byte, error) {
	raw, err := model.Encode(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: encode %s document: %v", domain.ErrStorage, backend, err)
	}
	return raw, nil
}
