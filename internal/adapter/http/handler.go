package http

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2"

	"portfolio-site/internal/domain"
	"portfolio-site/internal/platform/logger"
	"portfolio-site/internal/usecase"
)

type Handler struct {
	svc   *usecase.Service
	log   *logger.Logger
	admin *AdminMiddleware
}

func NewHandler(svc *usecase.Service, log *logger.Logger, admin *AdminMiddleware) *Handler {
	return &Handler{svc: svc, log: log.With("component", "http"), admin: admin}
}

// NewApp builds the fiber app with the JSON error envelope installed.
func NewApp(bodyLimit int, log *logger.Logger) *fiber.App {
	errLog := log.With("component", "http")
	return fiber.New(fiber.Config{
		BodyLimit:             bodyLimit,
		UnescapePath:          true,
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return writeError(c, errLog, err)
		},
	})
}

// Register mounts every route. uploadDir is served under /images/uploads
// when uploads are kept on local disk.
func (h *Handler) Register(app *fiber.App, uploadDir string) {
	app.Use(RequestLogger(h.log))

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	if uploadDir != "" {
		app.Static("/images/uploads", uploadDir)
	}

	app.Get("/", h.Landing)
	app.Get("/portfolio", h.Portfolio)
	app.Get("/portfolio/:slug", h.Project)
	app.Get("/curriculum-vitae", h.CV)
	app.Get("/curriculum-vitae/print", h.CVPrint)
	app.Get("/curriculum-vitae/pdf", h.CVPDF)

	api := app.Group("/api")
	api.Get("/data", h.GetData)
	api.Get("/profile", h.GetProfile)
	api.Get("/settings", h.GetSettings)
	api.Get("/landing", h.GetLanding)
	api.Get("/portfolio", h.GetPortfolio)
	api.Get("/projects", h.ListProjects)
	api.Get("/projects/:slug", h.GetProject)
	api.Get("/cv", h.GetCV)
	api.Get("/technologies", h.ListTechnologies)
	api.Get("/roles", h.ListRoles)

	api.Post("/upload", h.admin.RequireAdmin(), h.Upload)

	admin := api.Group("/admin", h.admin.RequireAdmin())
	admin.Put("/profile", h.UpdateProfile)
	admin.Put("/settings", h.UpdateSettings)
	admin.Put("/landing", h.UpdateLanding)
	admin.Put("/landing/featured", h.SetFeatured)
	admin.Post("/landing/cta", h.CreateCallToAction)
	admin.Delete("/landing/cta/:id", h.DeleteCallToAction)

	admin.Post("/projects", h.CreateProject)
	admin.Patch("/projects/:slug", h.UpdateProject)
	admin.Delete("/projects/:slug", h.DeleteProject)

	admin.Post("/technologies", h.AddTechnology)
	admin.Put("/technologies/:name", h.RenameTechnology)
	admin.Delete("/technologies/:name", h.RemoveTechnology)
	admin.Post("/roles", h.AddRole)
	admin.Put("/roles/:name", h.RenameRole)
	admin.Delete("/roles/:name", h.RemoveRole)

	admin.Patch("/cv", h.UpdateCV)
	admin.Post("/cv/sections", h.CreateSection)
	admin.Post("/cv/sections/template", h.CreateSectionFromTemplate)
	admin.Put("/cv/sections/order", h.ReorderSections)
	admin.Patch("/cv/sections/:id", h.UpdateSection)
	admin.Delete("/cv/sections/:id", h.DeleteSection)
	admin.Post("/cv/sections/:id/toggle", h.ToggleSection)
	admin.Post("/cv/sections/:id/items", h.CreateItem)
	admin.Put("/cv/sections/:id/items/order", h.ReorderItems)
	admin.Patch("/cv/sections/:id/items/:itemId", h.UpdateItem)
	admin.Delete("/cv/sections/:id/items/:itemId", h.DeleteItem)
}

type errorBody struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

// statusFor maps an error to an HTTP status and machine code. Storage is
// checked first because decode failures wrap both storage and validation.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, "not_found"
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, "conflict"
	case errors.Is(err, domain.ErrStorage):
		return fiber.StatusInternalServerError, "storage"
	case errors.Is(err, domain.ErrValidation):
		return fiber.StatusBadRequest, "validation"
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		switch fe.Code {
		case fiber.StatusNotFound:
			return fe.Code, "not_found"
		case fiber.StatusUnauthorized:
			return fe.Code, "unauthorized"
		case fiber.StatusForbidden:
			return fe.Code, "forbidden"
		case fiber.StatusRequestEntityTooLarge:
			return fe.Code, "too_large"
		case fiber.StatusBadRequest, fiber.StatusMethodNotAllowed:
			return fe.Code, "bad_request"
		}
		return fe.Code, "internal"
	}
	return fiber.StatusInternalServerError, "internal"
}

func writeError(c *fiber.Ctx, log *logger.Logger, err error) error {
	status, code := statusFor(err)
	msg := err.Error()
	if status >= fiber.StatusInternalServerError {
		log.Error("request failed", "method", c.Method(), "path", c.Path(), "error", err)
		msg = "Internal server error"
	}
	return c.Status(status).JSON(fiber.Map{"error": errorBody{Message: msg, Code: code}})
}

func invalidPayload(err error) error {
	return fmt.Errorf("%w: invalid payload: %v", domain.ErrValidation, err)
}

// render buffers a page so a failing template never leaves half a response.
func render(c *fiber.Ctx, fn func(ctx context.Context, w io.Writer) error) error {
	var buf bytes.Buffer
	if err := fn(c.UserContext(), &buf); err != nil {
		return err
	}
	c.Type("html", "utf-8")
	return c.Send(buf.Bytes())
}
