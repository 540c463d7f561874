package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-site/internal/domain"
)

func sampleDoc() *domain.PortfolioData {
	doc := Empty()
	doc.UserProfile = domain.UserProfile{Name: "Ada Lovelace", Email: "ada@example.com", SocialLinks: []domain.SocialLink{}}
	doc.Settings.AvailableTechnologies = []string{"Go", "React"}
	doc.Portfolio.Projects = []domain.Project{{
		Slug: "engine", Title: "Engine", Date: "2023-04", Status: domain.StatusCompleted,
		Technologies: []string{"Go"}, Roles: []string{},
		LongDescription: domain.RichText{"type": "doc", "content": []any{}},
	}}
	doc.CV.Sections = []domain.Section{
		{ID: "s1", Title: "Awards & Honors", Type: domain.SectionAwards, IsVisible: true, Items: []domain.Item{
			{Body: &domain.Award{ID: "a1", Name: "Best", Issuer: "ACM", Date: "2021"}},
		}},
		{ID: "s2", Title: "Projects", Type: domain.SectionProjects, SortOrder: 1, Items: []domain.Item{
			{Body: &domain.ProjectReference{Slug: "engine"}},
		}},
	}
	return doc
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	doc := sampleDoc()
	raw, err := Encode(doc)
	require.NoError(t, err)

	back, migrated, err := Decode(raw, nil)
	require.NoError(t, err)
	assert.False(t, migrated)
	assert.Equal(t, doc, back)
	assert.Equal(t, domain.KindAward, back.CV.Sections[0].Items[0].Kind(), "tag survives even though the shape looks like a certification")
}

func TestDecodeLegacyDocument(t *testing.T) {
	raw := []byte(`{
		"userProfile": {"name": "Ada"},
		"settings": {"availableTechnologies": null, "availableRoles": []},
		"landingPage": {},
		"portfolio": {"projects": []},
		"cv": {
			"contactInformation": {"email": "ada@example.com"},
			"summary": "Engineer",
			"skills": [{"category": "Languages", "items": ["Go"]}]
		}
	}`)

	doc, migrated, err := Decode(raw, nil)
	require.NoError(t, err)
	assert.True(t, migrated)
	assert.Equal(t, domain.CurrentSchemaVersion, doc.SchemaVersion)
	require.Len(t, doc.CV.Sections, 1)
	s := doc.CV.Sections[0]
	assert.Equal(t, domain.SectionSkills, s.Type)
	assert.True(t, s.IsVisible)
	require.Len(t, s.Items, 1)
	assert.Equal(t, domain.KindSkillCategory, s.Items[0].Kind())
	assert.NotNil(t, doc.Settings.AvailableTechnologies)
}

func TestDecodeKeepsMistypedItem(t *testing.T) {
	raw := []byte(`{
		"schemaVersion": 2,
		"userProfile": {"name": "Ada"},
		"settings": {"availableTechnologies": [], "availableRoles": []},
		"landingPage": {},
		"portfolio": {"projects": []},
		"cv": {"sections": [
			{"id": "s1", "title": "Education", "type": "education", "isVisible": true, "items": [
				{"kind": "education", "id": "e1", "degree": "BSc", "institution": "MIT", "location": "Boston", "current": "yes"},
				{"kind": "education", "id": "e2", "degree": "MSc", "institution": "ETH", "location": "Zurich"}
			]}
		]}
	}`)

	doc, _, err := Decode(raw, nil)
	require.NoError(t, err)
	items := doc.CV.Sections[0].Items
	require.Len(t, items, 2)
	assert.Equal(t, domain.KindUnknown, items[0].Kind())
	assert.Equal(t, "yes", items[0].Fields()["current"])
	assert.Equal(t, domain.KindEducation, items[1].Kind())
}

func TestEmptyListsSurviveRoundTrip(t *testing.T) {
	doc := sampleDoc()
	doc.Portfolio.Projects[0].KeyFeatures = []string{}
	doc.CV.Sections = append(doc.CV.Sections, domain.Section{
		ID: "s3", Title: "Education", Type: domain.SectionEducation, SortOrder: 2, Items: []domain.Item{
			{Body: &domain.Education{ID: "e1", Degree: "BSc", Institution: "MIT", Details: []string{}}},
			{Body: &domain.Education{ID: "e2", Degree: "MSc", Institution: "ETH"}},
		},
	})
	raw, err := Encode(doc)
	require.NoError(t, err)

	back, _, err := Decode(raw, nil)
	require.NoError(t, err)
	assert.Equal(t, doc, back)
	assert.NotNil(t, back.CV.Sections[2].Items[0].Body.(*domain.Education).Details)
	assert.Nil(t, back.CV.Sections[2].Items[1].Body.(*domain.Education).Details)
}

func TestDecodeRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"malformed":    `{`,
		"null":         `null`,
		"missing cv":   `{"schemaVersion":2,"userProfile":{},"settings":{},"landingPage":{},"portfolio":{}}`,
		"bad section":  `{"schemaVersion":2,"userProfile":{},"settings":{},"landingPage":{},"portfolio":{},"cv":{"sections":[{"id":"x","type":"hobbies"}]}}`,
		"project slug": `{"schemaVersion":2,"userProfile":{},"settings":{},"landingPage":{},"portfolio":{"projects":[{"title":"x"}]},"cv":{"sections":[]}}`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, err := Decode([]byte(raw), nil)
			assert.True(t, errors.Is(err, domain.ErrValidation), err)
		})
	}
}

func TestEmptyIsValid(t *testing.T) {
	raw, err := Encode(Empty())
	require.NoError(t, err)
	_, _, err = Decode(raw, nil)
	assert.NoError(t, err)
}
