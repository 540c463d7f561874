package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"portfolio-site/internal/domain"
	"portfolio-site/web"
)

var views = template.Must(template.New("views").Funcs(templateFuncs).ParseFS(web.Templates, "templates/*.html"))

// ItemView is one renderable CV item. Body is the variant, or the resolved
// *ProjectView for project references.
type ItemView struct {
	Kind string
	Body any
}

type SectionView struct {
	ID    string
	Title string
	Type  string
	Items []ItemView
}

type ProjectView struct {
	domain.Project
	DateLabel   string
	LiveLabel   string
	Description []RichBlock
}

type CVView struct {
	Title    string
	Profile  domain.UserProfile
	Contact  domain.ContactInformation
	Summary  string
	Sections []SectionView
	// Projects is the trailing block of the print view, filled only when no
	// visible projects section exists.
	Projects []ProjectView
	Print    bool
}

type LandingView struct {
	Profile  domain.UserProfile
	Landing  domain.LandingPage
	Featured []ProjectView
}

type PortfolioView struct {
	Profile      domain.UserProfile
	Projects     []ProjectView
	Query        ProjectQuery
	Technologies []string
	Roles        []string
	ShowFilters  bool
}

type ProjectPageView struct {
	Profile domain.UserProfile
	Project ProjectView
}

func newProjectView(p domain.Project) ProjectView {
	return ProjectView{
		Project:     p,
		DateLabel:   monthYear(p.Date),
		LiveLabel:   linkLabel(p.LiveProjectURL),
		Description: flattenRichText(p.LongDescription),
	}
}

func projectViews(ps []domain.Project) []ProjectView {
	out := make([]ProjectView, 0, len(ps))
	for _, p := range ps {
		out = append(out, newProjectView(p))
	}
	return out
}

// BuildCVView selects visible sections in sortOrder and resolves project
// references. Sections without renderable items are left out. The print view
// skips unknown items and appends all projects when no visible projects
// section exists.
func BuildCVView(doc *domain.PortfolioData, forPrint bool) CVView {
	v := CVView{
		Title:   doc.CV.Title,
		Profile: doc.UserProfile,
		Contact: doc.CV.ContactInformation,
		Summary: doc.CV.Summary,
		Print:   forPrint,
	}

	hasProjects := false
	for _, sec := range doc.CV.VisibleSections() {
		sv := SectionView{ID: sec.ID, Title: sec.Title, Type: string(sec.Type)}
		for _, it := range sec.Items {
			switch b := it.Body.(type) {
			case *domain.ProjectReference:
				idx := doc.FindProject(b.Slug)
				if idx < 0 {
					continue
				}
				pv := newProjectView(doc.Portfolio.Projects[idx])
				sv.Items = append(sv.Items, ItemView{Kind: string(domain.KindProject), Body: &pv})
			case domain.UnknownItem, nil:
				if forPrint {
					continue
				}
				sv.Items = append(sv.Items, ItemView{Kind: string(domain.KindUnknown), Body: b})
			default:
				sv.Items = append(sv.Items, ItemView{Kind: string(it.Kind()), Body: b})
			}
		}
		if len(sv.Items) == 0 {
			continue
		}
		if sec.Type == domain.SectionProjects {
			hasProjects = true
		}
		v.Sections = append(v.Sections, sv)
	}

	if forPrint && !hasProjects {
		v.Projects = projectViews(doc.Portfolio.Projects)
	}
	return v
}

func (s *Service) execute(w io.Writer, name string, data any) error {
	if err := views.ExecuteTemplate(w, name, data); err != nil {
		s.log.Error("template failed", "template", name, "error", err)
		return fmt.Errorf("render %s: %w", name, err)
	}
	return nil
}

func (s *Service) RenderLanding(ctx context.Context, w io.Writer) error {
	doc, err := s.load(ctx)
	if err != nil {
		return err
	}
	return s.execute(w, "landing", LandingView{
		Profile:  doc.UserProfile,
		Landing:  doc.LandingPage,
		Featured: projectViews(FeaturedProjects(doc)),
	})
}

func (s *Service) RenderPortfolio(ctx context.Context, w io.Writer, q ProjectQuery) error {
	doc, err := s.load(ctx)
	if err != nil {
		return err
	}
	projects, err := filterProjects(doc, q)
	if err != nil {
		return err
	}
	show := doc.Portfolio.DisplaySettings == nil || doc.Portfolio.DisplaySettings.ShowFilters
	return s.execute(w, "portfolio", PortfolioView{
		Profile:      doc.UserProfile,
		Projects:     projectViews(projects),
		Query:        q,
		Technologies: doc.Settings.AvailableTechnologies,
		Roles:        doc.Settings.AvailableRoles,
		ShowFilters:  show,
	})
}

func (s *Service) RenderProject(ctx context.Context, w io.Writer, slug string) error {
	doc, err := s.load(ctx)
	if err != nil {
		return err
	}
	idx := doc.FindProject(slug)
	if idx < 0 {
		return fmt.Errorf("%w: project %s", domain.ErrNotFound, slug)
	}
	return s.execute(w, "project", ProjectPageView{
		Profile: doc.UserProfile,
		Project: newProjectView(doc.Portfolio.Projects[idx]),
	})
}

func (s *Service) RenderCV(ctx context.Context, w io.Writer) error {
	doc, err := s.load(ctx)
	if err != nil {
		return err
	}
	return s.execute(w, "cv", BuildCVView(doc, false))
}

func (s *Service) RenderCVPrint(ctx context.Context, w io.Writer) error {
	doc, err := s.load(ctx)
	if err != nil {
		return err
	}
	return s.execute(w, "cv_print", BuildCVView(doc, true))
}

// CVFileName is "<name> - CV - <Month YYYY>.pdf".
func CVFileName(name string, at time.Time) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "Curriculum Vitae"
	}
	return fmt.Sprintf("%s - CV - %s.pdf", name, at.Format("January 2006"))
}

const pdfAttempts = 3

// RenderCVPDF prints the CV through the renderer, retrying with exponential
// backoff until the output carries a PDF signature.
func (s *Service) RenderCVPDF(ctx context.Context) ([]byte, string, error) {
	if s.renderer == nil {
		return nil, "", errors.New("pdf renderer not configured")
	}
	doc, err := s.load(ctx)
	if err != nil {
		return nil, "", err
	}
	var buf bytes.Buffer
	if err := s.execute(&buf, "cv_print", BuildCVView(doc, true)); err != nil {
		return nil, "", err
	}
	html := buf.String()

	var pdf []byte
	var renderErr error
	for i := 0; i < pdfAttempts; i++ {
		pdf, renderErr = s.renderer.RenderHTMLToPDF(ctx, html)
		if renderErr == nil {
			if bytes.HasPrefix(pdf, []byte("%PDF")) {
				break
			}
			renderErr = fmt.Errorf("invalid PDF output (len=%d)", len(pdf))
		}
		s.log.Warn("pdf render attempt failed", "attempt", i+1, "error", renderErr)
		if i < pdfAttempts-1 {
			select {
			case <-time.After(s.retryDelay * time.Duration(1<<i)):
			case <-ctx.Done():
				return nil, "", ctx.Err()
			}
		}
	}
	if renderErr != nil {
		s.log.Error("pdf rendering failed", "attempts", pdfAttempts, "error", renderErr)
		return nil, "", fmt.Errorf("render pdf after %d attempts: %w", pdfAttempts, renderErr)
	}
	return pdf, CVFileName(doc.UserProfile.Name, s.now()), nil
}
