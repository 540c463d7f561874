package usecase

import (
	"context"
	"io"
	"sync"
	"time"

	"portfolio-site/internal/domain"
	"portfolio-site/internal/platform/logger"
)

// Store is the whole-document datastore.
type Store interface {
	Load(ctx context.Context) (*domain.PortfolioData, error)
	Save(ctx context.Context, doc *domain.PortfolioData) error
}

type Renderer interface {
	RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error)
}

// BlobStore receives validated uploads and returns their public path.
type BlobStore interface {
	Put(ctx context.Context, name string, r io.Reader, contentType string) (string, error)
}

// Service owns every read and mutation of the portfolio document. Mutations
// hold mu for their whole load, modify, save cycle so concurrent requests
// cannot overwrite each other.
type Service struct {
	store    Store
	renderer Renderer
	blobs    BlobStore
	log      *logger.Logger

	mu sync.Mutex

	now        func() time.Time
	retryDelay time.Duration
}

func NewService(store Store, renderer Renderer, blobs BlobStore, log *logger.Logger) *Service {
	return &Service{
		store:      store,
		renderer:   renderer,
		blobs:      blobs,
		log:        log.With("component", "service"),
		now:        time.Now,
		retryDelay: time.Second,
	}
}

// mutate loads a fresh copy, applies fn and saves. If fn fails nothing is
// written.
func (s *Service) mutate(ctx context.Context, op string, fn func(doc *domain.PortfolioData) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.store.Load(ctx)
	if err != nil {
		s.log.Error("load failed", "op", op, "error", err)
		return err
	}
	if err := fn(doc); err != nil {
		s.log.Info("mutation rejected", "op", op, "error", err)
		return err
	}
	if err := s.store.Save(ctx, doc); err != nil {
		s.log.Error("save failed", "op", op, "error", err)
		return err
	}
	s.log.Info("mutation applied", "op", op)
	return nil
}

func (s *Service) load(ctx context.Context) (*domain.PortfolioData, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		s.log.Warn("load failed", "error", err)
		return nil, err
	}
	return doc, nil
}

func (s *Service) GetData(ctx context.Context) (*domain.PortfolioData, error) {
	return s.load(ctx)
}

func (s *Service) GetProfile(ctx context.Context) (domain.UserProfile, error) {
	doc, err := s.load(ctx)
	if err != nil {
		return domain.UserProfile{}, err
	}
	return doc.UserProfile, nil
}

func (s *Service) GetSettings(ctx context.Context) (domain.Settings, error) {
	doc, err := s.load(ctx)
	if err != nil {
		return domain.Settings{}, err
	}
	return doc.Settings, nil
}

func (s *Service) GetLandingPage(ctx context.Context) (domain.LandingPage, error) {
	doc, err := s.load(ctx)
	if err != nil {
		return domain.LandingPage{}, err
	}
	return doc.LandingPage, nil
}

func (s *Service) GetPortfolio(ctx context.Context) (domain.Portfolio, error) {
	doc, err := s.load(ctx)
	if err != nil {
		return domain.Portfolio{}, err
	}
	return doc.Portfolio, nil
}

// GetCV returns the CV with sections ordered by sortOrder.
func (s *Service) GetCV(ctx context.Context) (domain.CV, error) {
	doc, err := s.load(ctx)
	if err != nil {
		return domain.CV{}, err
	}
	domain.SortSections(doc.CV.Sections)
	return doc.CV, nil
}
