package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"portfolio-site/internal/domain"
	"portfolio-site/internal/usecase"
)

func (h *Handler) GetData(c *fiber.Ctx) error {
	doc, err := h.svc.GetData(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(doc)
}

func (h *Handler) GetProfile(c *fiber.Ctx) error {
	p, err := h.svc.GetProfile(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(p)
}

func (h *Handler) GetSettings(c *fiber.Ctx) error {
	st, err := h.svc.GetSettings(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(st)
}

func (h *Handler) GetLanding(c *fiber.Ctx) error {
	lp, err := h.svc.GetLandingPage(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(lp)
}

func (h *Handler) GetPortfolio(c *fiber.Ctx) error {
	p, err := h.svc.GetPortfolio(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(p)
}

func (h *Handler) ListProjects(c *fiber.Ctx) error {
	ps, err := h.svc.ListProjects(c.UserContext(), projectQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(ps)
}

func (h *Handler) GetProject(c *fiber.Ctx) error {
	p, err := h.svc.GetProject(c.UserContext(), c.Params("slug"))
	if err != nil {
		return err
	}
	return c.JSON(p)
}

func (h *Handler) GetCV(c *fiber.Ctx) error {
	cv, err := h.svc.GetCV(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(cv)
}

func (h *Handler) ListTechnologies(c *fiber.Ctx) error {
	list, err := h.svc.ListTechnologies(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(list)
}

func (h *Handler) ListRoles(c *fiber.Ctx) error {
	list, err := h.svc.ListRoles(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(list)
}

// Upload accepts a multipart form with the image under "image".
func (h *Handler) Upload(c *fiber.Ctx) error {
	fh, err := c.FormFile("image")
	if err != nil {
		return fmt.Errorf("%w: no file provided", domain.ErrValidation)
	}
	f, err := fh.Open()
	if err != nil {
		return err
	}
	defer f.Close()

	res, err := h.svc.UploadImage(c.UserContext(), usecase.UploadInput{
		FileName:    fh.Filename,
		ContentType: fh.Header.Get(fiber.HeaderContentType),
		Size:        fh.Size,
		Body:        f,
	})
	if err != nil {
		return err
	}
	return c.JSON(res)
}
