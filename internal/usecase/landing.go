package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"portfolio-site/internal/domain"
)

func (s *Service) UpdateUserProfile(ctx context.Context, p domain.UserProfile) error {
	return s.mutate(ctx, "update_user_profile", func(doc *domain.PortfolioData) error {
		for i := range p.SocialLinks {
			if p.SocialLinks[i].ID == "" {
				p.SocialLinks[i].ID = uuid.NewString()
			}
		}
		doc.UserProfile = p
		return nil
	})
}

func (s *Service) UpdateSettings(ctx context.Context, settings domain.Settings) error {
	return s.mutate(ctx, "update_settings", func(doc *domain.PortfolioData) error {
		doc.Settings = settings
		return nil
	})
}

// UpdateLandingPage replaces the landing page. Featured slugs must exist.
func (s *Service) UpdateLandingPage(ctx context.Context, lp domain.LandingPage) error {
	return s.mutate(ctx, "update_landing_page", func(doc *domain.PortfolioData) error {
		for _, slug := range lp.FeaturedProjectIDs {
			if doc.FindProject(slug) < 0 {
				return fmt.Errorf("%w: project %s", domain.ErrNotFound, slug)
			}
		}
		doc.LandingPage = lp
		return nil
	})
}

func (s *Service) CreateCallToAction(ctx context.Context, cta domain.CallToAction) (string, error) {
	var id string
	err := s.mutate(ctx, "create_call_to_action", func(doc *domain.PortfolioData) error {
		if strings.TrimSpace(cta.Text) == "" || strings.TrimSpace(cta.URL) == "" {
			return fmt.Errorf("%w: call to action needs text and url", domain.ErrValidation)
		}
		cta.ID = uuid.NewString()
		doc.LandingPage.CallToActions = append(doc.LandingPage.CallToActions, cta)
		id = cta.ID
		return nil
	})
	return id, err
}

func (s *Service) DeleteCallToAction(ctx context.Context, id string) error {
	return s.mutate(ctx, "delete_call_to_action", func(doc *domain.PortfolioData) error {
		ctas := doc.LandingPage.CallToActions
		for i := range ctas {
			if ctas[i].ID == id {
				doc.LandingPage.CallToActions = append(ctas[:i], ctas[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("%w: call to action %s", domain.ErrNotFound, id)
	})
}
