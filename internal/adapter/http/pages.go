package http

import (
	"context"
	"io"

	"github.com/gofiber/fiber/v2"

	"portfolio-site/internal/domain"
	"portfolio-site/internal/usecase"
)

func projectQuery(c *fiber.Ctx) usecase.ProjectQuery {
	return usecase.ProjectQuery{
		Sort:       domain.SortOrder(c.Query("sort")),
		Technology: c.Query("technology"),
		Role:       c.Query("role"),
		Status:     c.Query("status"),
	}
}

func (h *Handler) Landing(c *fiber.Ctx) error {
	return render(c, h.svc.RenderLanding)
}

func (h *Handler) Portfolio(c *fiber.Ctx) error {
	q := projectQuery(c)
	return render(c, func(ctx context.Context, w io.Writer) error {
		return h.svc.RenderPortfolio(ctx, w, q)
	})
}

func (h *Handler) Project(c *fiber.Ctx) error {
	slug := c.Params("slug")
	return render(c, func(ctx context.Context, w io.Writer) error {
		return h.svc.RenderProject(ctx, w, slug)
	})
}

func (h *Handler) CV(c *fiber.Ctx) error {
	return render(c, h.svc.RenderCV)
}

func (h *Handler) CVPrint(c *fiber.Ctx) error {
	return render(c, h.svc.RenderCVPrint)
}

func (h *Handler) CVPDF(c *fiber.Ctx) error {
	pdf, name, err := h.svc.RenderCVPDF(c.UserContext())
	if err != nil {
		return err
	}
	c.Attachment(name)
	return c.Send(pdf)
}
