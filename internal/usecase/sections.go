package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"portfolio-site/internal/domain"
)

// SectionInput describes a new CV section. IsVisible defaults to true.
type SectionInput struct {
	Title     string             `json:"title"`
	Type      domain.SectionType `json:"type"`
	IsVisible *bool              `json:"isVisible,omitempty"`
	Items     []map[string]any   `json:"items,omitempty"`
}

// SectionPatch lists the section fields an update may change. Nil fields are
// left alone.
type SectionPatch struct {
	Title     *string             `json:"title,omitempty"`
	Type      *domain.SectionType `json:"type,omitempty"`
	IsVisible *bool               `json:"isVisible,omitempty"`
	SortOrder *int                `json:"sortOrder,omitempty"`
	Items     *[]map[string]any   `json:"items,omitempty"`
}

// CVPatch is a shallow update of the CV header.
type CVPatch struct {
	Title              *string                    `json:"title,omitempty"`
	ContactInformation *domain.ContactInformation `json:"contactInformation,omitempty"`
	Summary            *string                    `json:"summary,omitempty"`
}

func (s *Service) CreateSection(ctx context.Context, in SectionInput) (string, error) {
	var id string
	err := s.mutate(ctx, "create_section", func(doc *domain.PortfolioData) error {
		if !in.Type.IsValid() {
			return fmt.Errorf("%w: unknown section type %q", domain.ErrValidation, in.Type)
		}
		if strings.TrimSpace(in.Title) == "" {
			return fmt.Errorf("%w: section title is required", domain.ErrValidation)
		}
		if in.Type.Unique() && doc.CV.HasSectionOfType(in.Type, "") {
			return fmt.Errorf("%w: a %s section already exists", domain.ErrConflict, in.Type)
		}

		section := domain.Section{
			ID:        uuid.NewString(),
			Title:     in.Title,
			Type:      in.Type,
			Items:     []domain.Item{},
			IsVisible: in.IsVisible == nil || *in.IsVisible,
			SortOrder: doc.CV.NextSortOrder(),
		}
		items, err := buildItems(doc, &section, in.Items)
		if err != nil {
			return err
		}
		section.Items = items

		doc.CV.Sections = append(doc.CV.Sections, section)
		id = section.ID
		return nil
	})
	return id, err
}

// CreateSectionFromTemplate adds an empty section of type t with its default
// title.
func (s *Service) CreateSectionFromTemplate(ctx context.Context, t domain.SectionType) (string, error) {
	if t == domain.SectionCustom {
		return "", fmt.Errorf("%w: custom sections need a title", domain.ErrValidation)
	}
	return s.CreateSection(ctx, SectionInput{Title: t.DefaultTitle(), Type: t})
}

func (s *Service) CreateCustomSection(ctx context.Context, title string) (string, error) {
	return s.CreateSection(ctx, SectionInput{Title: title, Type: domain.SectionCustom})
}

func (s *Service) UpdateSection(ctx context.Context, id string, patch SectionPatch) error {
	return s.mutate(ctx, "update_section", func(doc *domain.PortfolioData) error {
		section := doc.FindSection(id)
		if section == nil {
			return fmt.Errorf("%w: section %s", domain.ErrNotFound, id)
		}
		next := *section

		if patch.Type != nil && *patch.Type != section.Type {
			t := *patch.Type
			if !t.IsValid() {
				return fmt.Errorf("%w: unknown section type %q", domain.ErrValidation, t)
			}
			if t.Unique() && doc.CV.HasSectionOfType(t, id) {
				return fmt.Errorf("%w: a %s section already exists", domain.ErrConflict, t)
			}
			next.Type = t
			if patch.Items == nil {
				for _, it := range next.Items {
					if it.Kind() != domain.KindUnknown && it.Kind() != t.ItemKind() {
						return fmt.Errorf("%w: %s items cannot live in a %s section", domain.ErrValidation, it.Kind(), t)
					}
				}
			}
		}
		if patch.Title != nil {
			if strings.TrimSpace(*patch.Title) == "" {
				return fmt.Errorf("%w: section title is required", domain.ErrValidation)
			}
			next.Title = *patch.Title
		}
		if patch.IsVisible != nil {
			next.IsVisible = *patch.IsVisible
		}
		if patch.SortOrder != nil {
			next.SortOrder = *patch.SortOrder
		}
		if patch.Items != nil {
			next.Items = []domain.Item{}
			items, err := buildItems(doc, &next, *patch.Items)
			if err != nil {
				return err
			}
			next.Items = items
		}

		*section = next
		return nil
	})
}

func (s *Service) DeleteSection(ctx context.Context, id string) error {
	return s.mutate(ctx, "delete_section", func(doc *domain.PortfolioData) error {
		for i := range doc.CV.Sections {
			if doc.CV.Sections[i].ID == id {
				doc.CV.Sections = append(doc.CV.Sections[:i], doc.CV.Sections[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("%w: section %s", domain.ErrNotFound, id)
	})
}

// ReorderSections gives the listed sections sortOrder 0..n-1 in list order.
// Sections left out keep their relative order and follow the listed ones.
func (s *Service) ReorderSections(ctx context.Context, ids []string) error {
	return s.mutate(ctx, "reorder_sections", func(doc *domain.PortfolioData) error {
		position := make(map[string]int, len(ids))
		for _, id := range ids {
			if doc.FindSection(id) == nil {
				return fmt.Errorf("%w: section %s", domain.ErrNotFound, id)
			}
			if _, seen := position[id]; !seen {
				position[id] = len(position)
			}
		}

		domain.SortSections(doc.CV.Sections)
		next := len(position)
		for i := range doc.CV.Sections {
			sec := &doc.CV.Sections[i]
			if p, ok := position[sec.ID]; ok {
				sec.SortOrder = p
				continue
			}
			sec.SortOrder = next
			next++
		}
		domain.SortSections(doc.CV.Sections)
		return nil
	})
}

func (s *Service) ToggleSectionVisibility(ctx context.Context, id string) error {
	return s.mutate(ctx, "toggle_section_visibility", func(doc *domain.PortfolioData) error {
		section := doc.FindSection(id)
		if section == nil {
			return fmt.Errorf("%w: section %s", domain.ErrNotFound, id)
		}
		section.IsVisible = !section.IsVisible
		return nil
	})
}

func (s *Service) UpdateCV(ctx context.Context, patch CVPatch) error {
	return s.mutate(ctx, "update_cv", func(doc *domain.PortfolioData) error {
		if patch.Title != nil {
			doc.CV.Title = *patch.Title
		}
		if patch.ContactInformation != nil {
			doc.CV.ContactInformation = *patch.ContactInformation
		}
		if patch.Summary != nil {
			doc.CV.Summary = *patch.Summary
		}
		return nil
	})
}
