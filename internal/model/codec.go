package model

import (
	"encoding/json"
	"fmt"

	"portfolio-site/internal/domain"
	"portfolio-site/internal/infrastructure/migration"
	"portfolio-site/internal/platform/logger"
)

// Decode turns a stored document into PortfolioData. Older documents are
// migrated first; migrated reports whether that happened so callers can
// persist the upgrade.
func Decode(raw []byte, log *logger.Logger) (doc *domain.PortfolioData, migrated bool, err error) {
	var m map[string]interface{}
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, false, fmt.Errorf("%w: malformed document: %v", domain.ErrValidation, err)
	}
	if m == nil {
		return nil, false, fmt.Errorf("%w: document is null", domain.ErrValidation)
	}

	migrated, err = migration.MigrateDocument(m, log)
	if err != nil {
		return nil, false, err
	}
	if err := ValidateMap(m); err != nil {
		return nil, false, err
	}

	if migrated {
		if raw, err = json.Marshal(m); err != nil {
			return nil, false, fmt.Errorf("re-encode migrated document: %w", err)
		}
	}
	doc = &domain.PortfolioData{}
	if err := json.Unmarshal(raw, doc); err != nil {
		return nil, false, fmt.Errorf("%w: decode document: %v", domain.ErrValidation, err)
	}
	doc.Normalize()
	return doc, migrated, nil
}

// Encode serialises doc as indented JSON stamped with the current schema
// version.
func Encode(doc *domain.PortfolioData) ([]byte, error) {
	doc.Normalize()
	doc.SchemaVersion = domain.CurrentSchemaVersion
	return json.MarshalIndent(doc, "", "  ")
}

// Empty is the document a fresh deployment starts from.
func Empty() *domain.PortfolioData {
	doc := &domain.PortfolioData{
		SchemaVersion: domain.CurrentSchemaVersion,
		CV:            domain.CV{Title: "Curriculum Vitae"},
	}
	doc.Normalize()
	return doc
}
