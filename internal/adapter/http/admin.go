package http

import (
	"github.com/gofiber/fiber/v2"

	"portfolio-site/internal/domain"
	"portfolio-site/internal/usecase"
)

type nameReq struct {
	Name string `json:"name"`
}

type idsReq struct {
	IDs []string `json:"ids"`
}

type slugsReq struct {
	Slugs []string `json:"slugs"`
}

type templateReq struct {
	Type  domain.SectionType `json:"type"`
	Title string             `json:"title"`
}

func (h *Handler) UpdateProfile(c *fiber.Ctx) error {
	var p domain.UserProfile
	if err := c.BodyParser(&p); err != nil {
		return invalidPayload(err)
	}
	if err := h.svc.UpdateUserProfile(c.UserContext(), p); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) UpdateSettings(c *fiber.Ctx) error {
	var st domain.Settings
	if err := c.BodyParser(&st); err != nil {
		return invalidPayload(err)
	}
	if err := h.svc.UpdateSettings(c.UserContext(), st); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) UpdateLanding(c *fiber.Ctx) error {
	var lp domain.LandingPage
	if err := c.BodyParser(&lp); err != nil {
		return invalidPayload(err)
	}
	if err := h.svc.UpdateLandingPage(c.UserContext(), lp); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) SetFeatured(c *fiber.Ctx) error {
	var req slugsReq
	if err := c.BodyParser(&req); err != nil {
		return invalidPayload(err)
	}
	if err := h.svc.SetFeaturedProjects(c.UserContext(), req.Slugs); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) CreateCallToAction(c *fiber.Ctx) error {
	var cta domain.CallToAction
	if err := c.BodyParser(&cta); err != nil {
		return invalidPayload(err)
	}
	id, err := h.svc.CreateCallToAction(c.UserContext(), cta)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

func (h *Handler) DeleteCallToAction(c *fiber.Ctx) error {
	if err := h.svc.DeleteCallToAction(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) CreateProject(c *fiber.Ctx) error {
	var p domain.Project
	if err := c.BodyParser(&p); err != nil {
		return invalidPayload(err)
	}
	slug, err := h.svc.CreateProject(c.UserContext(), p)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"slug": slug})
}

func (h *Handler) UpdateProject(c *fiber.Ctx) error {
	patch := map[string]any{}
	if err := c.BodyParser(&patch); err != nil {
		return invalidPayload(err)
	}
	if err := h.svc.UpdateProject(c.UserContext(), c.Params("slug"), patch); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) DeleteProject(c *fiber.Ctx) error {
	if err := h.svc.DeleteProject(c.UserContext(), c.Params("slug")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) AddTechnology(c *fiber.Ctx) error {
	var req nameReq
	if err := c.BodyParser(&req); err != nil {
		return invalidPayload(err)
	}
	if err := h.svc.AddTechnology(c.UserContext(), req.Name); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusCreated)
}

func (h *Handler) RenameTechnology(c *fiber.Ctx) error {
	var req nameReq
	if err := c.BodyParser(&req); err != nil {
		return invalidPayload(err)
	}
	if err := h.svc.RenameTechnology(c.UserContext(), c.Params("name"), req.Name); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) RemoveTechnology(c *fiber.Ctx) error {
	if err := h.svc.RemoveTechnology(c.UserContext(), c.Params("name")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) AddRole(c *fiber.Ctx) error {
	var req nameReq
	if err := c.BodyParser(&req); err != nil {
		return invalidPayload(err)
	}
	if err := h.svc.AddRole(c.UserContext(), req.Name); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusCreated)
}

func (h *Handler) RenameRole(c *fiber.Ctx) error {
	var req nameReq
	if err := c.BodyParser(&req); err != nil {
		return invalidPayload(err)
	}
	if err := h.svc.RenameRole(c.UserContext(), c.Params("name"), req.Name); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) RemoveRole(c *fiber.Ctx) error {
	if err := h.svc.RemoveRole(c.UserContext(), c.Params("name")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) UpdateCV(c *fiber.Ctx) error {
	var patch usecase.CVPatch
	if err := c.BodyParser(&patch); err != nil {
		return invalidPayload(err)
	}
	if err := h.svc.UpdateCV(c.UserContext(), patch); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) CreateSection(c *fiber.Ctx) error {
	var in usecase.SectionInput
	if err := c.BodyParser(&in); err != nil {
		return invalidPayload(err)
	}
	id, err := h.svc.CreateSection(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

// CreateSectionFromTemplate creates an empty section with the default title
// for its type, or a custom section when a name is given.
func (h *Handler) CreateSectionFromTemplate(c *fiber.Ctx) error {
	var req templateReq
	if err := c.BodyParser(&req); err != nil {
		return invalidPayload(err)
	}
	var (
		id  string
		err error
	)
	if req.Type == domain.SectionCustom {
		id, err = h.svc.CreateCustomSection(c.UserContext(), req.Title)
	} else {
		id, err = h.svc.CreateSectionFromTemplate(c.UserContext(), req.Type)
	}
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

func (h *Handler) UpdateSection(c *fiber.Ctx) error {
	var patch usecase.SectionPatch
	if err := c.BodyParser(&patch); err != nil {
		return invalidPayload(err)
	}
	if err := h.svc.UpdateSection(c.UserContext(), c.Params("id"), patch); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) DeleteSection(c *fiber.Ctx) error {
	if err := h.svc.DeleteSection(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) ToggleSection(c *fiber.Ctx) error {
	if err := h.svc.ToggleSectionVisibility(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) ReorderSections(c *fiber.Ctx) error {
	var req idsReq
	if err := c.BodyParser(&req); err != nil {
		return invalidPayload(err)
	}
	if err := h.svc.ReorderSections(c.UserContext(), req.IDs); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) CreateItem(c *fiber.Ctx) error {
	fields := map[string]any{}
	if err := c.BodyParser(&fields); err != nil {
		return invalidPayload(err)
	}
	key, err := h.svc.CreateItem(c.UserContext(), c.Params("id"), fields)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": key})
}

func (h *Handler) UpdateItem(c *fiber.Ctx) error {
	patch := map[string]any{}
	if err := c.BodyParser(&patch); err != nil {
		return invalidPayload(err)
	}
	if err := h.svc.UpdateItem(c.UserContext(), c.Params("id"), c.Params("itemId"), patch); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) DeleteItem(c *fiber.Ctx) error {
	if err := h.svc.DeleteItem(c.UserContext(), c.Params("id"), c.Params("itemId")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) ReorderItems(c *fiber.Ctx) error {
	var req idsReq
	if err := c.BodyParser(&req); err != nil {
		return invalidPayload(err)
	}
	if err := h.svc.ReorderItems(c.UserContext(), c.Params("id"), req.IDs); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
