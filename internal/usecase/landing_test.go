package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-site/internal/domain"
)

func TestUpdateUserProfileAssignsLinkIDs(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.UpdateUserProfile(ctx, domain.UserProfile{
		Name: "Ada Lovelace",
		SocialLinks: []domain.SocialLink{
			{ID: "gh", PlatformName: "GitHub", URL: "https://github.com/ada"},
			{PlatformName: "LinkedIn", URL: "https://linkedin.com/in/ada"},
		},
	}))

	p, err := svc.GetProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", p.Name)
	require.Len(t, p.SocialLinks, 2)
	assert.Equal(t, "gh", p.SocialLinks[0].ID)
	assert.NotEmpty(t, p.SocialLinks[1].ID)
}

func TestUpdateSettings(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	require.NoError(t, svc.UpdateSettings(ctx, domain.Settings{
		PublicResumeID: "r1", AvailableTechnologies: []string{"Go"},
	}))
	st, err := svc.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "r1", st.PublicResumeID)
	assert.Equal(t, []string{"Go"}, st.AvailableTechnologies)
	assert.Equal(t, []string{}, st.AvailableRoles)
}

func TestUpdateLandingPage(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	slug, err := svc.CreateProject(ctx, domain.Project{Title: "Site"})
	require.NoError(t, err)

	require.NoError(t, svc.UpdateLandingPage(ctx, domain.LandingPage{
		Greeting: "Hi", MainHeadline: "I build things", FeaturedProjectIDs: []string{slug},
	}))
	assert.ErrorIs(t, svc.UpdateLandingPage(ctx, domain.LandingPage{FeaturedProjectIDs: []string{"ghost"}}), domain.ErrNotFound)

	lp, err := svc.GetLandingPage(ctx)
	require.NoError(t, err)
	assert.Equal(t, "I build things", lp.MainHeadline)
	assert.Equal(t, []string{slug}, lp.FeaturedProjectIDs)
}

func TestCallToActions(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	id, err := svc.CreateCallToAction(ctx, domain.CallToAction{Text: "Contact", URL: "mailto:ada@example.com"})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	_, err = svc.CreateCallToAction(ctx, domain.CallToAction{Text: "Broken"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	require.NoError(t, svc.DeleteCallToAction(ctx, id))
	assert.ErrorIs(t, svc.DeleteCallToAction(ctx, id), domain.ErrNotFound)

	lp, err := svc.GetLandingPage(ctx)
	require.NoError(t, err)
	assert.Empty(t, lp.CallToActions)
}
