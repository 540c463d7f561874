package domain

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectKind(t *testing.T) {
	rules := []struct {
		Name     string
		Fields   string
		Expected ItemKind
	}{
		{"Education", `{"degree":"BSc","institution":"MIT","location":"Boston"}`, KindEducation},
		{"WorkExperience", `{"jobTitle":"Dev","company":"Acme","responsibilities":[]}`, KindWorkExperience},
		{"WorkWithoutResponsibilities", `{"jobTitle":"Dev","company":"Acme"}`, KindUnknown},
		{"SkillCategory", `{"category":"Languages","items":["Go"]}`, KindSkillCategory},
		{"Publication", `{"title":"Paper","authors":"Me","date":"2020"}`, KindPublication},
		{"CertificationByCredential", `{"name":"CKA","issuer":"CNCF","credentialId":"x"}`, KindCertification},
		{"CertificationByDate", `{"name":"CKA","issuer":"CNCF","date":"2021"}`, KindCertification},
		{"AwardWithDescription", `{"name":"Best","issuer":"ACM","date":"2021","description":"d"}`, KindAward},
		{"AwardWithoutIssuer", `{"name":"Best","date":"2021"}`, KindAward},
		{"Language", `{"language":"French","proficiency":"Fluent"}`, KindLanguage},
		{"Volunteering", `{"organization":"Red Cross","role":"Helper","description":"d"}`, KindVolunteering},
		{"Project", `{"slug":"my-app"}`, KindProject},
		{"Custom", `{"title":"Talk","date":"2022"}`, KindCustom},
		{"Unknown", `{"foo":"bar"}`, KindUnknown},
	}

	for _, r := range rules {
		t.Run(r.Name, func(t *testing.T) {
			var fields map[string]any
			require.NoError(t, json.Unmarshal([]byte(r.Fields), &fields))
			assert.Equal(t, r.Expected, DetectKind(fields))
		})
	}
}

func TestItemJSONCarriesKind(t *testing.T) {
	it := Item{Body: &Award{ID: "a1", Name: "Best Paper", Issuer: "ACM", Date: "2021-05"}}

	raw, err := json.Marshal(it)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.Equal(t, "award", fields["kind"])

	// Without the tag the same shape would be read as a certification.
	delete(fields, "kind")
	assert.Equal(t, KindCertification, DetectKind(fields))

	var back Item
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, it, back)
}

func TestItemUnmarshalUntagged(t *testing.T) {
	var it Item
	require.NoError(t, json.Unmarshal([]byte(`{"id":"e1","degree":"MSc","institution":"ETH","location":"Zurich"}`), &it))
	require.Equal(t, KindEducation, it.Kind())
	edu := it.Body.(*Education)
	assert.Equal(t, "ETH", edu.Institution)
}

func TestUnknownItemPassesThrough(t *testing.T) {
	src := `{"kind":"podcast","episode":3}`
	var it Item
	require.NoError(t, json.Unmarshal([]byte(src), &it))
	assert.Equal(t, KindUnknown, it.Kind())

	raw, err := json.Marshal(it)
	require.NoError(t, err)
	assert.JSONEq(t, src, string(raw))
}

func TestMistypedItemKeptVerbatim(t *testing.T) {
	src := `{"kind":"education","id":"e1","degree":"BSc","institution":"MIT","location":"Boston","current":"yes"}`
	var it Item
	require.NoError(t, json.Unmarshal([]byte(src), &it))
	assert.Equal(t, KindUnknown, it.Kind())
	assert.Equal(t, "e1", it.Key())

	raw, err := json.Marshal(it)
	require.NoError(t, err)
	assert.JSONEq(t, src, string(raw))
}

func TestItemKeyResolution(t *testing.T) {
	assert.Equal(t, "e1", Item{Body: &Education{ID: "e1"}}.Key())
	assert.Equal(t, "my-app", Item{Body: &ProjectReference{Slug: "my-app"}}.Key())
	assert.Equal(t, "Languages", Item{Body: &SkillCategory{Category: "Languages"}}.Key())

	anon := Item{Body: UnknownItem{"foo": "bar"}}
	assert.NotEqual(t, anon.Key(), anon.Key(), "items without a key never resolve to the same value twice")
}

func TestItemMerge(t *testing.T) {
	it := Item{Body: &WorkExperience{ID: "w1", JobTitle: "Dev", Company: "Acme", StartDate: "2020-01", Responsibilities: []string{"code"}}}

	merged, err := it.Merge(map[string]any{"jobTitle": "Lead", "id": "other", "kind": "award"})
	require.NoError(t, err)
	require.Equal(t, KindWorkExperience, merged.Kind())
	w := merged.Body.(*WorkExperience)
	assert.Equal(t, "w1", w.ID)
	assert.Equal(t, "Lead", w.JobTitle)
	assert.Equal(t, "Acme", w.Company)
	assert.Equal(t, []string{"code"}, w.Responsibilities)

	_, err = it.Merge(map[string]any{"responsibilities": "not a list"})
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestNewItemValidation(t *testing.T) {
	_, err := NewItem(KindLanguage, map[string]any{"language": "German", "proficiency": "Expert"})
	require.NoError(t, err, "decoding does not validate")

	it, _ := NewItem(KindLanguage, map[string]any{"language": "German", "proficiency": "Expert"})
	assert.True(t, errors.Is(it.Body.Validate(), ErrValidation))

	_, err = NewItem("podcast", nil)
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestAssignID(t *testing.T) {
	it := Item{Body: &CustomCVItem{Title: "Talk"}}
	id := it.AssignID()
	assert.NotEmpty(t, id)
	assert.Equal(t, id, it.Key())

	skill := Item{Body: &SkillCategory{Category: "Tools"}}
	assert.Equal(t, "Tools", skill.AssignID())
}
