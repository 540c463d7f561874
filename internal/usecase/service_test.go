package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-site/internal/adapter/repository"
	"portfolio-site/internal/domain"
	"portfolio-site/internal/platform/logger"
	"portfolio-site/internal/platform/logger/loggertest"
)

type fakeRenderer struct {
	mu      sync.Mutex
	outputs [][]byte
	errs    []error
	calls   int
	lastDoc string
}

func (r *fakeRenderer) RenderHTMLToPDF(_ context.Context, html string) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.calls
	r.calls++
	r.lastDoc = html
	var out []byte
	var err error
	if i < len(r.outputs) {
		out = r.outputs[i]
	}
	if i < len(r.errs) {
		err = r.errs[i]
	}
	return out, err
}

type fakeBlobs struct {
	puts map[string][]byte
}

func (b *fakeBlobs) Put(_ context.Context, name string, r io.Reader, _ string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	if b.puts == nil {
		b.puts = map[string][]byte{}
	}
	b.puts[name] = data
	return "/images/uploads/" + name, nil
}

type failingStore struct{ err error }

func (f failingStore) Load(context.Context) (*domain.PortfolioData, error) { return nil, f.err }
func (f failingStore) Save(context.Context, *domain.PortfolioData) error  { return f.err }

func newTestService(t *testing.T) (*Service, *repository.FileStore) {
	t.Helper()
	store := repository.NewFileStore(filepath.Join(t.TempDir(), "data.json"), logger.Nop())
	svc := NewService(store, &fakeRenderer{}, &fakeBlobs{}, logger.Nop())
	svc.retryDelay = 0
	svc.now = func() time.Time { return time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC) }
	return svc, store
}

func TestGetDataOnEmptyStore(t *testing.T) {
	svc, _ := newTestService(t)
	doc, err := svc.GetData(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Curriculum Vitae", doc.CV.Title)
	assert.Empty(t, doc.Portfolio.Projects)
}

func TestMutationFailureLeavesStoreUntouched(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	require.NoError(t, svc.AddTechnology(ctx, "Go"))

	err := svc.mutate(ctx, "boom", func(doc *domain.PortfolioData) error {
		doc.Settings.AvailableTechnologies = nil
		return fmt.Errorf("%w: nope", domain.ErrValidation)
	})
	require.ErrorIs(t, err, domain.ErrValidation)

	doc, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Go"}, doc.Settings.AvailableTechnologies)
}

func TestLoadFailureIsReturned(t *testing.T) {
	storeErr := fmt.Errorf("%w: disk gone", domain.ErrStorage)
	svc := NewService(failingStore{err: storeErr}, nil, nil, logger.Nop())

	_, err := svc.GetProfile(context.Background())
	assert.ErrorIs(t, err, domain.ErrStorage)

	err = svc.AddRole(context.Background(), "Backend")
	assert.True(t, errors.Is(err, domain.ErrStorage))
}

func TestGetCVSortsSections(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	doc, err := store.Load(ctx)
	require.NoError(t, err)
	doc.CV.Sections = []domain.Section{
		{ID: "b", Title: "B", Type: domain.SectionCustom, SortOrder: 2, Items: []domain.Item{}},
		{ID: "a", Title: "A", Type: domain.SectionCustom, SortOrder: 0, Items: []domain.Item{}},
	}
	require.NoError(t, store.Save(ctx, doc))

	cv, err := svc.GetCV(ctx)
	require.NoError(t, err)
	require.Len(t, cv.Sections, 2)
	assert.Equal(t, "a", cv.Sections[0].ID)
	assert.Equal(t, "b", cv.Sections[1].ID)
}

func TestMutationsAreLogged(t *testing.T) {
	log, logs := loggertest.NewObserved()
	store := repository.NewFileStore(filepath.Join(t.TempDir(), "data.json"), logger.Nop())
	svc := NewService(store, nil, nil, log)
	ctx := context.Background()

	require.NoError(t, svc.AddRole(ctx, "Backend"))
	require.Error(t, svc.AddRole(ctx, "backend"))

	applied := logs.FilterMessage("mutation applied").All()
	require.Len(t, applied, 1)
	assert.Equal(t, "add_role", applied[0].ContextMap()["op"])
	assert.Equal(t, "service", applied[0].ContextMap()["component"])
	assert.Equal(t, 1, logs.FilterMessage("mutation rejected").Len())
}
