package domain

import "sort"

// SectionType is the declared type of a CV section.
type SectionType string

const (
	SectionEducation      SectionType = "education"
	SectionWorkExperience SectionType = "work_experience"
	SectionSkills         SectionType = "skills"
	SectionProjects       SectionType = "projects"
	SectionPublications   SectionType = "publications"
	SectionAwards         SectionType = "awards"
	SectionCertifications SectionType = "certifications"
	SectionVolunteering   SectionType = "volunteering"
	SectionLanguages      SectionType = "languages"
	SectionCustom         SectionType = "custom"
)

// SectionTypes lists every section type in editor order.
var SectionTypes = []SectionType{
	SectionEducation,
	SectionWorkExperience,
	SectionSkills,
	SectionProjects,
	SectionPublications,
	SectionAwards,
	SectionCertifications,
	SectionVolunteering,
	SectionLanguages,
	SectionCustom,
}

var sectionKinds = map[SectionType]ItemKind{
	SectionEducation:      KindEducation,
	SectionWorkExperience: KindWorkExperience,
	SectionSkills:         KindSkillCategory,
	SectionProjects:       KindProject,
	SectionPublications:   KindPublication,
	SectionAwards:         KindAward,
	SectionCertifications: KindCertification,
	SectionVolunteering:   KindVolunteering,
	SectionLanguages:      KindLanguage,
	SectionCustom:         KindCustom,
}

var sectionTitles = map[SectionType]string{
	SectionEducation:      "Education",
	SectionWorkExperience: "Professional Experience",
	SectionSkills:         "Skills & Expertise",
	SectionProjects:       "Projects",
	SectionPublications:   "Publications",
	SectionAwards:         "Awards & Honors",
	SectionCertifications: "Certifications",
	SectionVolunteering:   "Volunteer Experience",
	SectionLanguages:      "Languages",
	SectionCustom:         "Custom Section",
}

func (t SectionType) IsValid() bool {
	_, ok := sectionKinds[t]
	return ok
}

// Unique reports whether a CV may hold at most one section of this type.
func (t SectionType) Unique() bool { return t != SectionCustom }

// ItemKind is the only item kind a section of this type accepts.
func (t SectionType) ItemKind() ItemKind {
	if k, ok := sectionKinds[t]; ok {
		return k
	}
	return KindUnknown
}

// DefaultTitle is the title used when a section is created from a template.
func (t SectionType) DefaultTitle() string { return sectionTitles[t] }

type ContactInformation struct {
	Email        string `json:"email"`
	Phone        string `json:"phone,omitempty"`
	LinkedinURL  string `json:"linkedinUrl,omitempty"`
	PortfolioURL string `json:"portfolioUrl,omitempty"`
}

type CV struct {
	Title              string             `json:"title,omitempty"`
	ContactInformation ContactInformation `json:"contactInformation"`
	Summary            string             `json:"summary"`
	Sections           []Section          `json:"sections"`
}

type Section struct {
	ID        string      `json:"id"`
	Title     string      `json:"title"`
	Type      SectionType `json:"type"`
	Items     []Item      `json:"items"`
	IsVisible bool        `json:"isVisible"`
	SortOrder int         `json:"sortOrder"`
}

// FindItem returns the index of the first item whose resolved key equals key,
// or -1.
func (s *Section) FindItem(key string) int {
	for i := range s.Items {
		if s.Items[i].Key() == key {
			return i
		}
	}
	return -1
}

// SortSections orders sections by SortOrder, keeping the stored order for ties.
func SortSections(sections []Section) {
	sort.SliceStable(sections, func(i, j int) bool {
		return sections[i].SortOrder < sections[j].SortOrder
	})
}

// VisibleSections returns a sorted copy of the visible sections.
func (c CV) VisibleSections() []Section {
	out := make([]Section, 0, len(c.Sections))
	for _, s := range c.Sections {
		if s.IsVisible {
			out = append(out, s)
		}
	}
	SortSections(out)
	return out
}

// NextSortOrder is one more than the largest sort order, or 0 for an empty CV.
func (c CV) NextSortOrder() int {
	max := -1
	for _, s := range c.Sections {
		if s.SortOrder > max {
			max = s.SortOrder
		}
	}
	return max + 1
}

// HasSectionOfType reports whether a section of type t exists, ignoring the
// section with id except.
func (c CV) HasSectionOfType(t SectionType, except string) bool {
	for _, s := range c.Sections {
		if s.Type == t && s.ID != except {
			return true
		}
	}
	return false
}
