package domain

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ItemKind is the discriminant stored on every CV item under the "kind" key.
type ItemKind string

const (
	KindEducation      ItemKind = "education"
	KindWorkExperience ItemKind = "work_experience"
	KindSkillCategory  ItemKind = "skill_category"
	KindPublication    ItemKind = "publication"
	KindAward          ItemKind = "award"
	KindCertification  ItemKind = "certification"
	KindVolunteering   ItemKind = "volunteering"
	KindLanguage       ItemKind = "language"
	KindCustom         ItemKind = "custom"
	KindProject        ItemKind = "project"
	KindUnknown        ItemKind = "unknown"
)

const kindKey = "kind"

// ItemBody is one concrete item variant.
type ItemBody interface {
	Kind() ItemKind
	Validate() error
}

// Item is a tagged union over the item variants. Body is one of the variant
// pointers below, or UnknownItem for shapes that match none of them.
type Item struct {
	Body ItemBody
}

func (it Item) Kind() ItemKind {
	if it.Body == nil {
		return KindUnknown
	}
	return it.Body.Kind()
}

type Education struct {
	ID             string   `json:"id"`
	Degree         string   `json:"degree"`
	Institution    string   `json:"institution"`
	Location       string   `json:"location"`
	GraduationDate string   `json:"graduationDate,omitempty"`
	Current        bool     `json:"current,omitempty"`
	Details        []string `json:"details"`
}

type WorkExperience struct {
	ID               string   `json:"id"`
	JobTitle         string   `json:"jobTitle"`
	Company          string   `json:"company"`
	CompanyURL       string   `json:"companyUrl,omitempty"`
	Location         string   `json:"location"`
	StartDate        string   `json:"startDate"`
	EndDate          string   `json:"endDate,omitempty"`
	Current          bool     `json:"current,omitempty"`
	Responsibilities []string `json:"responsibilities"`
	TechnologiesUsed []string `json:"technologiesUsed"`
}

// SkillCategory has no id; its category doubles as the key.
type SkillCategory struct {
	Category string   `json:"category"`
	Items    []string `json:"items"`
}

type Publication struct {
	ID                  string `json:"id"`
	Title               string `json:"title"`
	Authors             string `json:"authors,omitempty"`
	ConferenceOrJournal string `json:"conferenceOrJournal,omitempty"`
	Date                string `json:"date"`
	URL                 string `json:"url,omitempty"`
}

type Award struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Issuer      string `json:"issuer,omitempty"`
	Date        string `json:"date"`
	Description string `json:"description,omitempty"`
}

type Certification struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Issuer         string `json:"issuer"`
	Date           string `json:"date"`
	ExpirationDate string `json:"expirationDate,omitempty"`
	CredentialID   string `json:"credentialId,omitempty"`
	CredentialURL  string `json:"credentialUrl,omitempty"`
}

type VolunteerExperience struct {
	ID           string `json:"id"`
	Organization string `json:"organization"`
	Role         string `json:"role"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
	Description  string `json:"description"`
	Location     string `json:"location,omitempty"`
}

// Language proficiency levels.
const (
	ProficiencyNative       = "Native"
	ProficiencyFluent       = "Fluent"
	ProficiencyIntermediate = "Intermediate"
	ProficiencyBasic        = "Basic"
)

type Language struct {
	ID          string `json:"id"`
	Language    string `json:"language"`
	ProofURL    string `json:"proofUrl,omitempty"`
	Proficiency string `json:"proficiency"`
}

type CustomCVItem struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Subtitle    string   `json:"subtitle,omitempty"`
	Date        string   `json:"date,omitempty"`
	Description string   `json:"description,omitempty"`
	Details     []string `json:"details"`
}

// ProjectReference points a projects section at a portfolio project.
type ProjectReference struct {
	Slug string `json:"slug"`
}

// UnknownItem keeps an unrecognised item verbatim.
type UnknownItem map[string]any

func (*Education) Kind() ItemKind           { return KindEducation }
func (*WorkExperience) Kind() ItemKind      { return KindWorkExperience }
func (*SkillCategory) Kind() ItemKind       { return KindSkillCategory }
func (*Publication) Kind() ItemKind         { return KindPublication }
func (*Award) Kind() ItemKind               { return KindAward }
func (*Certification) Kind() ItemKind       { return KindCertification }
func (*VolunteerExperience) Kind() ItemKind { return KindVolunteering }
func (*Language) Kind() ItemKind            { return KindLanguage }
func (*CustomCVItem) Kind() ItemKind        { return KindCustom }
func (*ProjectReference) Kind() ItemKind    { return KindProject }
func (UnknownItem) Kind() ItemKind          { return KindUnknown }

func required(kind ItemKind, pairs ...string) error {
	var missing []string
	for i := 0; i+1 < len(pairs); i += 2 {
		if strings.TrimSpace(pairs[i+1]) == "" {
			missing = append(missing, pairs[i])
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s item missing %s", ErrValidation, kind, strings.Join(missing, ", "))
	}
	return nil
}

func (e *Education) Validate() error {
	return required(KindEducation, "degree", e.Degree, "institution", e.Institution)
}

func (w *WorkExperience) Validate() error {
	return required(KindWorkExperience, "jobTitle", w.JobTitle, "company", w.Company, "startDate", w.StartDate)
}

func (s *SkillCategory) Validate() error {
	return required(KindSkillCategory, "category", s.Category)
}

func (p *Publication) Validate() error {
	return required(KindPublication, "title", p.Title)
}

func (a *Award) Validate() error {
	return required(KindAward, "name", a.Name)
}

func (c *Certification) Validate() error {
	return required(KindCertification, "name", c.Name, "issuer", c.Issuer)
}

func (v *VolunteerExperience) Validate() error {
	return required(KindVolunteering, "organization", v.Organization, "role", v.Role)
}

func (l *Language) Validate() error {
	if err := required(KindLanguage, "language", l.Language, "proficiency", l.Proficiency); err != nil {
		return err
	}
	switch l.Proficiency {
	case ProficiencyNative, ProficiencyFluent, ProficiencyIntermediate, ProficiencyBasic:
		return nil
	}
	return fmt.Errorf("%w: unknown proficiency %q", ErrValidation, l.Proficiency)
}

func (c *CustomCVItem) Validate() error {
	return required(KindCustom, "title", c.Title)
}

func (p *ProjectReference) Validate() error {
	return required(KindProject, "slug", p.Slug)
}

func (UnknownItem) Validate() error { return nil }

// newBody returns an empty variant for kind, or nil when kind is not a known
// variant.
func newBody(kind ItemKind) ItemBody {
	switch kind {
	case KindEducation:
		return &Education{}
	case KindWorkExperience:
		return &WorkExperience{}
	case KindSkillCategory:
		return &SkillCategory{}
	case KindPublication:
		return &Publication{}
	case KindAward:
		return &Award{}
	case KindCertification:
		return &Certification{}
	case KindVolunteering:
		return &VolunteerExperience{}
	case KindLanguage:
		return &Language{}
	case KindCustom:
		return &CustomCVItem{}
	case KindProject:
		return &ProjectReference{}
	}
	return nil
}

// IsKnownKind reports whether kind names a concrete variant.
func IsKnownKind(kind ItemKind) bool { return newBody(kind) != nil }

// NewItem decodes fields into the variant named by kind.
func NewItem(kind ItemKind, fields map[string]any) (Item, error) {
	body := newBody(kind)
	if body == nil {
		return Item{}, fmt.Errorf("%w: unknown item kind %q", ErrValidation, kind)
	}
	clean := make(map[string]any, len(fields))
	for k, v := range fields {
		if k != kindKey {
			clean[k] = v
		}
	}
	raw, err := json.Marshal(clean)
	if err != nil {
		return Item{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if err := json.Unmarshal(raw, body); err != nil {
		return Item{}, fmt.Errorf("%w: %s item: %v", ErrValidation, kind, err)
	}
	return Item{Body: body}, nil
}

// Fields returns the item as a flat key/value map without the kind tag.
func (it Item) Fields() map[string]any {
	if u, ok := it.Body.(UnknownItem); ok {
		out := make(map[string]any, len(u))
		for k, v := range u {
			out[k] = v
		}
		return out
	}
	out := map[string]any{}
	if it.Body == nil {
		return out
	}
	raw, err := json.Marshal(it.Body)
	if err != nil {
		return out
	}
	_ = json.Unmarshal(raw, &out)
	return out
}

// Key resolves the item's identifier: id, then slug, then category. Items with
// none of them get a fresh random value, so they can never be targeted.
func (it Item) Key() string {
	fields := it.Fields()
	for _, k := range []string{"id", "slug", "category"} {
		if s, ok := fields[k].(string); ok && s != "" {
			return s
		}
	}
	return uuid.NewString()
}

// immutable lists the keys a patch may not overwrite.
var immutable = map[ItemKind][]string{
	KindProject: {"slug"},
}

// Merge shallow-merges patch over the item. The kind and id never change.
func (it Item) Merge(patch map[string]any) (Item, error) {
	fields := it.Fields()
	skip := map[string]bool{kindKey: true, "id": true}
	for _, k := range immutable[it.Kind()] {
		skip[k] = true
	}
	for k, v := range patch {
		if skip[k] {
			continue
		}
		fields[k] = v
	}
	if it.Kind() == KindUnknown {
		return Item{Body: UnknownItem(fields)}, nil
	}
	return NewItem(it.Kind(), fields)
}

// AssignID gives id-bearing variants a fresh identifier and returns the item's
// key afterwards.
func (it Item) AssignID() string {
	id := uuid.NewString()
	switch b := it.Body.(type) {
	case *Education:
		b.ID = id
	case *WorkExperience:
		b.ID = id
	case *Publication:
		b.ID = id
	case *Award:
		b.ID = id
	case *Certification:
		b.ID = id
	case *VolunteerExperience:
		b.ID = id
	case *Language:
		b.ID = id
	case *CustomCVItem:
		b.ID = id
	default:
		return it.Key()
	}
	return id
}

func (it Item) MarshalJSON() ([]byte, error) {
	if u, ok := it.Body.(UnknownItem); ok {
		return json.Marshal(map[string]any(u))
	}
	fields := it.Fields()
	fields[kindKey] = it.Kind()
	return json.Marshal(fields)
}

func (it *Item) UnmarshalJSON(data []byte) error {
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	kind, _ := fields[kindKey].(string)
	if kind == "" {
		kind = string(DetectKind(fields))
	}
	body := newBody(ItemKind(kind))
	if body == nil {
		it.Body = UnknownItem(fields)
		return nil
	}
	// A tagged item whose fields do not fit its variant is kept verbatim.
	if err := json.Unmarshal(data, body); err != nil {
		it.Body = UnknownItem(fields)
		return nil
	}
	it.Body = body
	return nil
}
