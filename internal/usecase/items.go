package usecase

import (
	"context"
	"fmt"

	"portfolio-site/internal/domain"
)

// buildItem decodes fields into an item for section. A missing kind is taken
// from the section type; a different one is rejected.
func buildItem(section *domain.Section, fields map[string]any) (domain.Item, error) {
	want := section.Type.ItemKind()
	kind := want
	if k, ok := fields["kind"].(string); ok && k != "" {
		kind = domain.ItemKind(k)
	}
	if kind != want {
		return domain.Item{}, fmt.Errorf("%w: a %s section does not accept %s items", domain.ErrValidation, section.Type, kind)
	}
	it, err := domain.NewItem(kind, fields)
	if err != nil {
		return domain.Item{}, err
	}
	if err := it.Body.Validate(); err != nil {
		return domain.Item{}, err
	}
	return it, nil
}

// buildItems decodes a full item list, keeping caller ids and filling in
// missing ones.
func buildItems(doc *domain.PortfolioData, section *domain.Section, list []map[string]any) ([]domain.Item, error) {
	items := make([]domain.Item, 0, len(list))
	for _, fields := range list {
		it, err := buildItem(section, fields)
		if err != nil {
			return nil, err
		}
		if id, ok := it.Fields()["id"]; ok && id == "" {
			it.AssignID()
		}
		candidate := domain.Section{Type: section.Type, Items: items}
		if err := checkItem(doc, &candidate, it, -1); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, nil
}

// checkItem enforces per-section key uniqueness and project references. The
// item at index skip is the one being replaced.
func checkItem(doc *domain.PortfolioData, section *domain.Section, it domain.Item, skip int) error {
	switch b := it.Body.(type) {
	case *domain.SkillCategory:
		for i, other := range section.Items {
			if o, ok := other.Body.(*domain.SkillCategory); ok && i != skip && domain.EqualFold(o.Category, b.Category) {
				return fmt.Errorf("%w: skill category %q already exists", domain.ErrConflict, b.Category)
			}
		}
	case *domain.ProjectReference:
		if doc.FindProject(b.Slug) < 0 {
			return fmt.Errorf("%w: project %s", domain.ErrNotFound, b.Slug)
		}
		for i, other := range section.Items {
			if o, ok := other.Body.(*domain.ProjectReference); ok && i != skip && o.Slug == b.Slug {
				return fmt.Errorf("%w: project %s is already listed", domain.ErrConflict, b.Slug)
			}
		}
	case domain.UnknownItem:
	default:
		key := it.Key()
		for i, other := range section.Items {
			if i != skip && other.Kind() != domain.KindUnknown && other.Key() == key {
				return fmt.Errorf("%w: item %s already exists", domain.ErrConflict, key)
			}
		}
	}
	return nil
}

func findSection(doc *domain.PortfolioData, id string) (*domain.Section, error) {
	section := doc.FindSection(id)
	if section == nil {
		return nil, fmt.Errorf("%w: section %s", domain.ErrNotFound, id)
	}
	return section, nil
}

func findItem(section *domain.Section, key string) (int, error) {
	idx := section.FindItem(key)
	if idx < 0 {
		return -1, fmt.Errorf("%w: item %s in section %s", domain.ErrNotFound, key, section.ID)
	}
	return idx, nil
}

// CreateItem appends an item and returns its key. Id-bearing kinds always
// get a fresh id.
func (s *Service) CreateItem(ctx context.Context, sectionID string, fields map[string]any) (string, error) {
	var key string
	err := s.mutate(ctx, "create_item", func(doc *domain.PortfolioData) error {
		section, err := findSection(doc, sectionID)
		if err != nil {
			return err
		}
		it, err := buildItem(section, fields)
		if err != nil {
			return err
		}
		key = it.AssignID()
		if err := checkItem(doc, section, it, -1); err != nil {
			return err
		}
		section.Items = append(section.Items, it)
		return nil
	})
	return key, err
}

// UpdateItem shallow-merges patch into the item resolved by itemID.
func (s *Service) UpdateItem(ctx context.Context, sectionID, itemID string, patch map[string]any) error {
	return s.mutate(ctx, "update_item", func(doc *domain.PortfolioData) error {
		section, err := findSection(doc, sectionID)
		if err != nil {
			return err
		}
		idx, err := findItem(section, itemID)
		if err != nil {
			return err
		}
		merged, err := section.Items[idx].Merge(patch)
		if err != nil {
			return err
		}
		if err := merged.Body.Validate(); err != nil {
			return err
		}
		if err := checkItem(doc, section, merged, idx); err != nil {
			return err
		}
		section.Items[idx] = merged
		return nil
	})
}

func (s *Service) DeleteItem(ctx context.Context, sectionID, itemID string) error {
	return s.mutate(ctx, "delete_item", func(doc *domain.PortfolioData) error {
		section, err := findSection(doc, sectionID)
		if err != nil {
			return err
		}
		idx, err := findItem(section, itemID)
		if err != nil {
			return err
		}
		section.Items = append(section.Items[:idx], section.Items[idx+1:]...)
		return nil
	})
}

// ReorderItems puts the listed items first, in list order. Items left out
// follow in their previous relative order; nothing is dropped.
func (s *Service) ReorderItems(ctx context.Context, sectionID string, ids []string) error {
	return s.mutate(ctx, "reorder_items", func(doc *domain.PortfolioData) error {
		section, err := findSection(doc, sectionID)
		if err != nil {
			return err
		}
		placed := make([]bool, len(section.Items))
		ordered := make([]domain.Item, 0, len(section.Items))
		for _, id := range ids {
			idx, err := findItem(section, id)
			if err != nil {
				return err
			}
			if placed[idx] {
				continue
			}
			placed[idx] = true
			ordered = append(ordered, section.Items[idx])
		}
		for i, it := range section.Items {
			if !placed[i] {
				ordered = append(ordered, it)
			}
		}
		section.Items = ordered
		return nil
	})
}
