package migration

import (
	"fmt"

	"github.com/google/uuid"

	"portfolio-site/internal/domain"
	"portfolio-site/internal/platform/logger"
)

// DocumentMigration upgrades a raw document from version From to From+1.
type DocumentMigration struct {
	Name string
	From int
	Up   func(doc map[string]any) error
}

// DocumentMigrations is the ordered upgrade chain. Its length must equal
// domain.CurrentSchemaVersion.
var DocumentMigrations = []DocumentMigration{
	{Name: "cv_fixed_fields_to_sections", From: 0, Up: cvFixedFieldsToSections},
	{Name: "tag_cv_items", From: 1, Up: tagCVItems},
}

// SchemaVersion reads the document's schemaVersion; absent means 0.
func SchemaVersion(doc map[string]any) int {
	switch v := doc["schemaVersion"].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return 0
}

// MigrateDocument upgrades doc in place to domain.CurrentSchemaVersion and
// reports whether anything changed.
func MigrateDocument(doc map[string]any, log *logger.Logger) (bool, error) {
	version := SchemaVersion(doc)
	if version > domain.CurrentSchemaVersion {
		return false, fmt.Errorf("%w: document schema version %d is newer than supported %d",
			domain.ErrValidation, version, domain.CurrentSchemaVersion)
	}
	changed := false
	for _, m := range DocumentMigrations {
		if m.From < version {
			continue
		}
		if err := m.Up(doc); err != nil {
			return changed, fmt.Errorf("%w: migration %s: %v", domain.ErrValidation, m.Name, err)
		}
		version = m.From + 1
		doc["schemaVersion"] = version
		changed = true
		if log != nil {
			log.Info("document migrated", "name", m.Name, "version", version)
		}
	}
	return changed, nil
}

var legacyCVFields = []struct {
	Key  string
	Type domain.SectionType
}{
	{"education", domain.SectionEducation},
	{"workExperience", domain.SectionWorkExperience},
	{"skills", domain.SectionSkills},
	{"publications", domain.SectionPublications},
	{"awardsAndHonors", domain.SectionAwards},
}

// cvFixedFieldsToSections turns the early fixed-field CV into typed sections.
func cvFixedFieldsToSections(doc map[string]any) error {
	cv, ok := doc["cv"].(map[string]any)
	if !ok {
		return nil
	}
	if _, ok := cv["sections"].([]any); ok {
		return nil
	}

	sections := []any{}
	for _, f := range legacyCVFields {
		items, _ := cv[f.Key].([]any)
		delete(cv, f.Key)
		if len(items) == 0 {
			continue
		}
		sections = append(sections, map[string]any{
			"id":        uuid.NewString(),
			"title":     f.Type.DefaultTitle(),
			"type":      string(f.Type),
			"items":     items,
			"isVisible": true,
			"sortOrder": len(sections),
		})
	}

	if title, _ := cv["title"].(string); title == "" {
		cv["title"] = "Curriculum Vitae"
	}
	if _, ok := cv["summary"].(string); !ok {
		cv["summary"] = ""
	}
	if _, ok := cv["contactInformation"].(map[string]any); !ok {
		cv["contactInformation"] = map[string]any{"email": ""}
	}
	cv["sections"] = sections
	return nil
}

// tagCVItems stamps a kind on every untagged item. Typed sections decide the
// kind; custom sections and unknown types fall back to structural detection.
func tagCVItems(doc map[string]any) error {
	cv, ok := doc["cv"].(map[string]any)
	if !ok {
		return nil
	}
	sections, _ := cv["sections"].([]any)
	for _, raw := range sections {
		section, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		typ, _ := section["type"].(string)
		st := domain.SectionType(typ)
		items, _ := section["items"].([]any)
		for _, rawItem := range items {
			item, ok := rawItem.(map[string]any)
			if !ok {
				continue
			}
			if k, _ := item["kind"].(string); k != "" {
				continue
			}
			kind := domain.DetectKind(item)
			if st.IsValid() && st != domain.SectionCustom {
				kind = st.ItemKind()
			}
			if kind == domain.KindUnknown {
				continue
			}
			item["kind"] = string(kind)
		}
	}
	return nil
}
