package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-site/internal/adapter/repository"
	"portfolio-site/internal/domain"
	"portfolio-site/internal/platform/logger"
	"portfolio-site/internal/usecase"
	"portfolio-site/pkg/infrastructure"
)

type pdfStub struct{}

func (pdfStub) RenderHTMLToPDF(context.Context, string) ([]byte, error) {
	return []byte("%PDF-1.7 stub"), nil
}

type brokenStore struct{}

func (brokenStore) Load(context.Context) (*domain.PortfolioData, error) {
	return nil, fmt.Errorf("%w: file document: %w", domain.ErrStorage, domain.ErrValidation)
}
func (brokenStore) Save(context.Context, *domain.PortfolioData) error { return nil }

func newTestApp(t *testing.T, adminMode bool, token string) *fiber.App {
	t.Helper()
	dir := t.TempDir()
	log := logger.Nop()
	store := repository.NewFileStore(filepath.Join(dir, "data.json"), log)
	uploads := filepath.Join(dir, "uploads")
	svc := usecase.NewService(store, pdfStub{}, infrastructure.NewLocalBlobStore(uploads, "/images/uploads"), log)
	app := NewApp(8<<20, log)
	NewHandler(svc, log, NewAdminMiddleware(log, adminMode, token)).Register(app, uploads)
	return app
}

func do(t *testing.T, app *fiber.App, method, target string, body any, headers ...string) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, r)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, out
}

func errorCode(t *testing.T, body []byte) (string, string) {
	t.Helper()
	var env struct {
		Error errorBody `json:"error"`
	}
	require.NoError(t, json.Unmarshal(body, &env), string(body))
	return env.Error.Code, env.Error.Message
}

func TestHealthAndReads(t *testing.T) {
	app := newTestApp(t, false, "")

	resp, _ := do(t, app, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := do(t, app, http.MethodGet, "/api/data", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var doc domain.PortfolioData
	require.NoError(t, json.Unmarshal(body, &doc))
	assert.Equal(t, "Curriculum Vitae", doc.CV.Title)

	resp, body = do(t, app, http.MethodGet, "/api/projects/ghost", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	code, _ := errorCode(t, body)
	assert.Equal(t, "not_found", code)

	resp, body = do(t, app, http.MethodGet, "/api/projects?sort=sideways", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	code, _ = errorCode(t, body)
	assert.Equal(t, "validation", code)
}

func TestAdminGate(t *testing.T) {
	closed := newTestApp(t, false, "")
	resp, body := do(t, closed, http.MethodPost, "/api/admin/technologies", nameReq{Name: "Go"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	code, _ := errorCode(t, body)
	assert.Equal(t, "forbidden", code)

	guarded := newTestApp(t, true, "s3cret")
	resp, _ = do(t, guarded, http.MethodPost, "/api/admin/technologies", nameReq{Name: "Go"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp, _ = do(t, guarded, http.MethodPost, "/api/admin/technologies", nameReq{Name: "Go"}, "Authorization", "Bearer nope")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp, _ = do(t, guarded, http.MethodPost, "/api/admin/technologies", nameReq{Name: "Go"}, "Authorization", "Bearer s3cret")
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestSectionConflictEnvelope(t *testing.T) {
	app := newTestApp(t, true, "")
	in := usecase.SectionInput{Title: "Education", Type: domain.SectionEducation}

	resp, body := do(t, app, http.MethodPost, "/api/admin/cv/sections", in)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	resp, body = do(t, app, http.MethodPost, "/api/admin/cv/sections", in)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	code, _ := errorCode(t, body)
	assert.Equal(t, "conflict", code)

	resp, body = do(t, app, http.MethodPost, "/api/admin/cv/sections/template", templateReq{Type: domain.SectionCustom, Title: "Talks"})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var created struct{ ID string }
	require.NoError(t, json.Unmarshal(body, &created))

	resp, body = do(t, app, http.MethodPost, "/api/admin/cv/sections/"+created.ID+"/items", map[string]any{"title": "GopherCon"})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	resp, body = do(t, app, http.MethodGet, "/api/cv", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var cv domain.CV
	require.NoError(t, json.Unmarshal(body, &cv))
	require.Len(t, cv.Sections, 2)
	assert.Equal(t, "Talks", cv.Sections[1].Title)
	assert.Len(t, cv.Sections[1].Items, 1)
}

func TestProjectLifecycle(t *testing.T) {
	app := newTestApp(t, true, "")

	resp, body := do(t, app, http.MethodPost, "/api/admin/projects", domain.Project{Title: "My App", Date: "2024-01"})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	assert.JSONEq(t, `{"slug":"my-app"}`, string(body))

	resp, _ = do(t, app, http.MethodPut, "/api/admin/landing/featured", slugsReq{Slugs: []string{"my-app"}})
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = do(t, app, http.MethodPatch, "/api/admin/projects/my-app", map[string]any{"status": "Completed"})
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, body = do(t, app, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), "text/html")
	assert.Contains(t, string(body), "My App")

	resp, _ = do(t, app, http.MethodGet, "/portfolio/my-app", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = do(t, app, http.MethodDelete, "/api/admin/projects/my-app", nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, body = do(t, app, http.MethodGet, "/api/landing", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var lp domain.LandingPage
	require.NoError(t, json.Unmarshal(body, &lp))
	assert.Empty(t, lp.FeaturedProjectIDs)

	resp, _ = do(t, app, http.MethodGet, "/portfolio/my-app", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestVocabularyPathNames(t *testing.T) {
	app := newTestApp(t, true, "")

	resp, _ := do(t, app, http.MethodPost, "/api/admin/technologies", nameReq{Name: "Node JS"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp, _ = do(t, app, http.MethodPost, "/api/admin/technologies", nameReq{Name: "node js"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, _ = do(t, app, http.MethodPut, "/api/admin/technologies/Node%20JS", nameReq{Name: "Node.js"})
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, body := do(t, app, http.MethodGet, "/api/technologies", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `["Node.js"]`, string(body))
}

func TestStorageErrorsAreOpaque(t *testing.T) {
	log := logger.Nop()
	svc := usecase.NewService(brokenStore{}, nil, nil, log)
	app := NewApp(1<<20, log)
	NewHandler(svc, log, NewAdminMiddleware(log, false, "")).Register(app, "")

	resp, body := do(t, app, http.MethodGet, "/api/profile", nil)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	code, msg := errorCode(t, body)
	assert.Equal(t, "storage", code)
	assert.Equal(t, "Internal server error", msg)
}

func TestCVPDFDownload(t *testing.T) {
	app := newTestApp(t, true, "")

	resp, body := do(t, app, http.MethodGet, "/curriculum-vitae/pdf", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "%PDF-1.7 stub", string(body))
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "attachment")
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "Curriculum Vitae - CV - ")
	assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
}

func multipartImage(t *testing.T, name, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename="%s"`, name))
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func upload(t *testing.T, app *fiber.App, name, contentType string, data []byte) (*http.Response, []byte) {
	t.Helper()
	body, ct := multipartImage(t, name, contentType, data)
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set(fiber.HeaderContentType, ct)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, out
}

func TestUpload(t *testing.T) {
	app := newTestApp(t, true, "")
	png := append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 32)...)

	resp, body := upload(t, app, "logo.png", "image/png", png)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var res usecase.UploadResult
	require.NoError(t, json.Unmarshal(body, &res))
	assert.True(t, res.Success)
	assert.True(t, strings.HasSuffix(res.FileName, "-logo.png"))

	resp, served := do(t, app, http.MethodGet, res.Path, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, png, served)

	resp, body = upload(t, app, "big.png", "image/png", append(png, make([]byte, 6<<20)...))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	code, _ := errorCode(t, body)
	assert.Equal(t, "validation", code)

	resp, _ = upload(t, app, "notes.txt", "text/plain", []byte("hello"))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
