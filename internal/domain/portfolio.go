package domain

import "strings"

// CurrentSchemaVersion is the version written by this build. Documents with a
// lower version are migrated on load.
const CurrentSchemaVersion = 2

// PortfolioData is the whole datastore: one document per deployment.
type PortfolioData struct {
	SchemaVersion int         `json:"schemaVersion"`
	UserProfile   UserProfile `json:"userProfile"`
	Settings      Settings    `json:"settings"`
	LandingPage   LandingPage `json:"landingPage"`
	Portfolio     Portfolio   `json:"portfolio"`
	CV            CV          `json:"cv"`
}

type SocialLink struct {
	ID           string `json:"id"`
	PlatformName string `json:"platformName"`
	URL          string `json:"url"`
	IconSlug     string `json:"iconSlug"`
}

type UserProfile struct {
	Name              string       `json:"name"`
	Tagline           string       `json:"tagline"`
	Email             string       `json:"email"`
	Phone             string       `json:"phone,omitempty"`
	Location          string       `json:"location,omitempty"`
	WebsiteURL        string       `json:"websiteUrl"`
	ProfilePictureURL string       `json:"profilePictureUrl"`
	SocialLinks       []SocialLink `json:"socialLinks"`
}

type Settings struct {
	PublicResumeID        string   `json:"publicResumeId,omitempty"`
	AvailableTechnologies []string `json:"availableTechnologies"`
	AvailableRoles        []string `json:"availableRoles"`
}

type CallToAction struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	URL   string `json:"url"`
	Style string `json:"style,omitempty"`
}

type LandingPage struct {
	Greeting               string         `json:"greeting"`
	MainHeadline           string         `json:"mainHeadline"`
	IntroductionParagraphs []string       `json:"introductionParagraphs"`
	CallToActions          []CallToAction `json:"callToActions"`
	// FeaturedProjectIDs holds project slugs.
	FeaturedProjectIDs []string `json:"featuredProjectIds"`
}

type PortfolioDisplaySettings struct {
	DefaultSortOrder string `json:"defaultSortOrder,omitempty"`
	ShowFilters      bool   `json:"showFilters,omitempty"`
}

type Portfolio struct {
	DisplaySettings *PortfolioDisplaySettings `json:"displaySettings,omitempty"`
	Projects        []Project                 `json:"projects"`
}

// RichText is an editor document (a tree of typed nodes) stored verbatim.
type RichText map[string]any

type Project struct {
	Slug              string   `json:"slug"`
	Title             string   `json:"title"`
	Subtitle          string   `json:"subtitle,omitempty"`
	Date              string   `json:"date"`
	Status            string   `json:"status"`
	ThumbnailImageURL string   `json:"thumbnailImageUrl"`
	HeaderImageURL    string   `json:"headerImageUrl"`
	ShortDescription  string   `json:"shortDescription"`
	LongDescription   RichText `json:"longDescription,omitempty"`
	Technologies      []string `json:"technologies"`
	Roles             []string `json:"roles"`
	LiveProjectURL    string   `json:"liveProjectUrl,omitempty"`
	SourceCodeURL     string   `json:"sourceCodeUrl,omitempty"`
	KeyFeatures       []string `json:"keyFeatures"`
	GalleryImageURLs  []string `json:"galleryImageUrls"`
}

// Project statuses offered by the editor.
const (
	StatusCompleted  = "Completed"
	StatusInProgress = "In Progress"
	StatusPlanned    = "Planned"
	StatusOnHold     = "On Hold"
)

// SortOrder names a portfolio ordering.
type SortOrder string

const (
	SortDateAsc   SortOrder = "date_asc"
	SortDateDesc  SortOrder = "date_desc"
	SortTitleAsc  SortOrder = "title_asc"
	SortTitleDesc SortOrder = "title_desc"
)

func (s SortOrder) IsValid() bool {
	switch s {
	case SortDateAsc, SortDateDesc, SortTitleAsc, SortTitleDesc:
		return true
	}
	return false
}

// FindProject returns the index of the project with the given slug, or -1.
func (d *PortfolioData) FindProject(slug string) int {
	for i := range d.Portfolio.Projects {
		if d.Portfolio.Projects[i].Slug == slug {
			return i
		}
	}
	return -1
}

// FindSection returns the section with the given id, or nil.
func (d *PortfolioData) FindSection(id string) *Section {
	for i := range d.CV.Sections {
		if d.CV.Sections[i].ID == id {
			return &d.CV.Sections[i]
		}
	}
	return nil
}

// Normalize replaces nil collections with empty ones so the stored document
// never carries null where a list is expected.
func (d *PortfolioData) Normalize() {
	if d.UserProfile.SocialLinks == nil {
		d.UserProfile.SocialLinks = []SocialLink{}
	}
	if d.Settings.AvailableTechnologies == nil {
		d.Settings.AvailableTechnologies = []string{}
	}
	if d.Settings.AvailableRoles == nil {
		d.Settings.AvailableRoles = []string{}
	}
	lp := &d.LandingPage
	if lp.IntroductionParagraphs == nil {
		lp.IntroductionParagraphs = []string{}
	}
	if lp.CallToActions == nil {
		lp.CallToActions = []CallToAction{}
	}
	if lp.FeaturedProjectIDs == nil {
		lp.FeaturedProjectIDs = []string{}
	}
	if d.Portfolio.Projects == nil {
		d.Portfolio.Projects = []Project{}
	}
	for i := range d.Portfolio.Projects {
		p := &d.Portfolio.Projects[i]
		if p.Technologies == nil {
			p.Technologies = []string{}
		}
		if p.Roles == nil {
			p.Roles = []string{}
		}
	}
	if d.CV.Sections == nil {
		d.CV.Sections = []Section{}
	}
	for i := range d.CV.Sections {
		if d.CV.Sections[i].Items == nil {
			d.CV.Sections[i].Items = []Item{}
		}
	}
}

// EqualFold reports whether a and b name the same vocabulary entry.
func EqualFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
