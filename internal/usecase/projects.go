package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"portfolio-site/internal/domain"
)

// ProjectQuery filters and orders ListProjects. Empty fields do not filter;
// an empty Sort falls back to the display settings, then date_desc.
type ProjectQuery struct {
	Sort       domain.SortOrder
	Technology string
	Role       string
	Status     string
}

// CreateProject stores p under a slug derived from its title and returns
// the slug. Any slug on p is ignored.
func (s *Service) CreateProject(ctx context.Context, p domain.Project) (string, error) {
	var slug string
	err := s.mutate(ctx, "create_project", func(doc *domain.PortfolioData) error {
		if strings.TrimSpace(p.Title) == "" {
			return fmt.Errorf("%w: project title is required", domain.ErrValidation)
		}
		base := domain.Slugify(p.Title)
		if base == "" {
			return fmt.Errorf("%w: title %q yields an empty slug", domain.ErrValidation, p.Title)
		}
		slug = domain.UniqueSlug(base, func(c string) bool { return doc.FindProject(c) >= 0 })
		p.Slug = slug
		if p.Technologies == nil {
			p.Technologies = []string{}
		}
		if p.Roles == nil {
			p.Roles = []string{}
		}
		doc.Portfolio.Projects = append(doc.Portfolio.Projects, p)
		return nil
	})
	return slug, err
}

// UpdateProject shallow-merges patch (JSON field names) into the project.
// The slug never changes.
func (s *Service) UpdateProject(ctx context.Context, slug string, patch map[string]any) error {
	return s.mutate(ctx, "update_project", func(doc *domain.PortfolioData) error {
		idx := doc.FindProject(slug)
		if idx < 0 {
			return fmt.Errorf("%w: project %s", domain.ErrNotFound, slug)
		}
		merged, err := mergeProject(doc.Portfolio.Projects[idx], patch)
		if err != nil {
			return err
		}
		if strings.TrimSpace(merged.Title) == "" {
			return fmt.Errorf("%w: project title is required", domain.ErrValidation)
		}
		doc.Portfolio.Projects[idx] = merged
		return nil
	})
}

func mergeProject(p domain.Project, patch map[string]any) (domain.Project, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return p, err
	}
	fields := map[string]any{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return p, err
	}
	for k, v := range patch {
		if k == "slug" {
			continue
		}
		fields[k] = v
	}
	if raw, err = json.Marshal(fields); err != nil {
		return p, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	var out domain.Project
	if err := json.Unmarshal(raw, &out); err != nil {
		return p, fmt.Errorf("%w: project: %v", domain.ErrValidation, err)
	}
	return out, nil
}

// DeleteProject removes the project and every reference to it from the
// featured list and from projects sections.
func (s *Service) DeleteProject(ctx context.Context, slug string) error {
	return s.mutate(ctx, "delete_project", func(doc *domain.PortfolioData) error {
		idx := doc.FindProject(slug)
		if idx < 0 {
			return fmt.Errorf("%w: project %s", domain.ErrNotFound, slug)
		}
		doc.Portfolio.Projects = append(doc.Portfolio.Projects[:idx], doc.Portfolio.Projects[idx+1:]...)

		doc.LandingPage.FeaturedProjectIDs = without(doc.LandingPage.FeaturedProjectIDs, func(v string) bool { return v == slug })

		for i := range doc.CV.Sections {
			sec := &doc.CV.Sections[i]
			if sec.Type != domain.SectionProjects {
				continue
			}
			kept := sec.Items[:0]
			for _, it := range sec.Items {
				if ref, ok := it.Body.(*domain.ProjectReference); ok && ref.Slug == slug {
					continue
				}
				kept = append(kept, it)
			}
			sec.Items = kept
		}
		return nil
	})
}

func (s *Service) GetProject(ctx context.Context, slug string) (domain.Project, error) {
	doc, err := s.load(ctx)
	if err != nil {
		return domain.Project{}, err
	}
	idx := doc.FindProject(slug)
	if idx < 0 {
		return domain.Project{}, fmt.Errorf("%w: project %s", domain.ErrNotFound, slug)
	}
	return doc.Portfolio.Projects[idx], nil
}

func (s *Service) ListProjects(ctx context.Context, q ProjectQuery) ([]domain.Project, error) {
	doc, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return filterProjects(doc, q)
}

func filterProjects(doc *domain.PortfolioData, q ProjectQuery) ([]domain.Project, error) {
	order := q.Sort
	if order == "" && doc.Portfolio.DisplaySettings != nil {
		order = domain.SortOrder(doc.Portfolio.DisplaySettings.DefaultSortOrder)
	}
	if order == "" {
		order = domain.SortDateDesc
	}
	if !order.IsValid() {
		return nil, fmt.Errorf("%w: unknown sort order %q", domain.ErrValidation, order)
	}

	out := make([]domain.Project, 0, len(doc.Portfolio.Projects))
	for _, p := range doc.Portfolio.Projects {
		if q.Technology != "" && !containsFold(p.Technologies, q.Technology) {
			continue
		}
		if q.Role != "" && !containsFold(p.Roles, q.Role) {
			continue
		}
		if q.Status != "" && !domain.EqualFold(p.Status, q.Status) {
			continue
		}
		out = append(out, p)
	}
	SortProjects(out, order)
	return out, nil
}

// SortProjects orders projects in place. Unparseable dates sort as the zero
// time; ties keep their stored order.
func SortProjects(projects []domain.Project, order domain.SortOrder) {
	sort.SliceStable(projects, func(i, j int) bool {
		a, b := projects[i], projects[j]
		switch order {
		case domain.SortDateAsc:
			return projectTime(a.Date).Before(projectTime(b.Date))
		case domain.SortTitleAsc:
			return strings.ToLower(a.Title) < strings.ToLower(b.Title)
		case domain.SortTitleDesc:
			return strings.ToLower(a.Title) > strings.ToLower(b.Title)
		default:
			return projectTime(a.Date).After(projectTime(b.Date))
		}
	})
}

func projectTime(s string) time.Time {
	t, _ := parseDate(s)
	return t
}

// SetFeaturedProjects replaces the featured list. Every slug must exist.
func (s *Service) SetFeaturedProjects(ctx context.Context, slugs []string) error {
	return s.mutate(ctx, "set_featured_projects", func(doc *domain.PortfolioData) error {
		out := make([]string, 0, len(slugs))
		seen := map[string]bool{}
		for _, slug := range slugs {
			if doc.FindProject(slug) < 0 {
				return fmt.Errorf("%w: project %s", domain.ErrNotFound, slug)
			}
			if !seen[slug] {
				seen[slug] = true
				out = append(out, slug)
			}
		}
		doc.LandingPage.FeaturedProjectIDs = out
		return nil
	})
}

// FeaturedProjects resolves the featured slugs, skipping any that no longer
// exist.
func FeaturedProjects(doc *domain.PortfolioData) []domain.Project {
	out := make([]domain.Project, 0, len(doc.LandingPage.FeaturedProjectIDs))
	for _, slug := range doc.LandingPage.FeaturedProjectIDs {
		if idx := doc.FindProject(slug); idx >= 0 {
			out = append(out, doc.Portfolio.Projects[idx])
		}
	}
	return out
}

func containsFold(list []string, v string) bool {
	for _, x := range list {
		if domain.EqualFold(x, v) {
			return true
		}
	}
	return false
}

func without(list []string, drop func(string) bool) []string {
	out := make([]string, 0, len(list))
	for _, v := range list {
		if !drop(v) {
			out = append(out, v)
		}
	}
	return out
}
