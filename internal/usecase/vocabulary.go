package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"portfolio-site/internal/domain"
)

// vocabulary binds a settings list to the matching project tag list.
type vocabulary struct {
	name  string
	list  func(doc *domain.PortfolioData) *[]string
	tags  func(p *domain.Project) *[]string
	label string
}

var (
	technologies = vocabulary{
		name:  "technology",
		label: "Technology",
		list:  func(doc *domain.PortfolioData) *[]string { return &doc.Settings.AvailableTechnologies },
		tags:  func(p *domain.Project) *[]string { return &p.Technologies },
	}
	roles = vocabulary{
		name:  "role",
		label: "Role",
		list:  func(doc *domain.PortfolioData) *[]string { return &doc.Settings.AvailableRoles },
		tags:  func(p *domain.Project) *[]string { return &p.Roles },
	}
)

func indexFold(list []string, v string) int {
	for i, x := range list {
		if domain.EqualFold(x, v) {
			return i
		}
	}
	return -1
}

func (s *Service) addTerm(ctx context.Context, v vocabulary, term string) error {
	return s.mutate(ctx, "add_"+v.name, func(doc *domain.PortfolioData) error {
		term = strings.TrimSpace(term)
		if term == "" {
			return fmt.Errorf("%w: %s name is required", domain.ErrValidation, v.name)
		}
		list := v.list(doc)
		if indexFold(*list, term) >= 0 {
			return fmt.Errorf("%w: %s %q already exists", domain.ErrConflict, v.label, term)
		}
		*list = append(*list, term)
		sort.Strings(*list)
		return nil
	})
}

func (s *Service) renameTerm(ctx context.Context, v vocabulary, oldName, newName string) error {
	return s.mutate(ctx, "rename_"+v.name, func(doc *domain.PortfolioData) error {
		newName = strings.TrimSpace(newName)
		if newName == "" {
			return fmt.Errorf("%w: %s name is required", domain.ErrValidation, v.name)
		}
		list := v.list(doc)
		oldIdx := indexFold(*list, oldName)
		if oldIdx < 0 {
			return fmt.Errorf("%w: %s %q", domain.ErrNotFound, v.name, oldName)
		}
		if !domain.EqualFold(oldName, newName) && indexFold(*list, newName) >= 0 {
			return fmt.Errorf("%w: %s %q already exists", domain.ErrConflict, v.label, newName)
		}

		(*list)[oldIdx] = newName
		sort.Strings(*list)
		for i := range doc.Portfolio.Projects {
			tags := v.tags(&doc.Portfolio.Projects[i])
			if idx := indexFold(*tags, oldName); idx >= 0 {
				(*tags)[idx] = newName
			}
		}
		return nil
	})
}

// removeTerm is idempotent: removing an absent term succeeds.
func (s *Service) removeTerm(ctx context.Context, v vocabulary, term string) error {
	return s.mutate(ctx, "remove_"+v.name, func(doc *domain.PortfolioData) error {
		match := func(x string) bool { return domain.EqualFold(x, term) }
		list := v.list(doc)
		*list = without(*list, match)
		for i := range doc.Portfolio.Projects {
			tags := v.tags(&doc.Portfolio.Projects[i])
			*tags = without(*tags, match)
		}
		return nil
	})
}

func (s *Service) listTerms(ctx context.Context, v vocabulary) ([]string, error) {
	doc, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return *v.list(doc), nil
}

func (s *Service) AddTechnology(ctx context.Context, name string) error {
	return s.addTerm(ctx, technologies, name)
}

func (s *Service) RenameTechnology(ctx context.Context, oldName, newName string) error {
	return s.renameTerm(ctx, technologies, oldName, newName)
}

func (s *Service) RemoveTechnology(ctx context.Context, name string) error {
	return s.removeTerm(ctx, technologies, name)
}

func (s *Service) ListTechnologies(ctx context.Context) ([]string, error) {
	return s.listTerms(ctx, technologies)
}

func (s *Service) AddRole(ctx context.Context, name string) error {
	return s.addTerm(ctx, roles, name)
}

func (s *Service) RenameRole(ctx context.Context, oldName, newName string) error {
	return s.renameTerm(ctx, roles, oldName, newName)
}

func (s *Service) RemoveRole(ctx context.Context, name string) error {
	return s.removeTerm(ctx, roles, name)
}

func (s *Service) ListRoles(ctx context.Context) ([]string, error) {
	return s.listTerms(ctx, roles)
}
