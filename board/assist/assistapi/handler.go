package assistapi

import (
	"github.com/Abraxas-365/jobboard/board/assist"
	"github.com/Abraxas-365/jobboard/board/assist/assistsrv"
	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	service *assistsrv.AssistService
}

func NewHandlers(service *assistsrv.AssistService) *Handlers {
	return &Handlers{service: service}
}

// Draft generates text for the kind named in the path
// POST /api/assist/:kind (job-description, short-description, company-overview, why-join-us)
func (h *Handlers) Draft(c *fiber.Ctx) error {
	var req assist.DraftRequest
	if err := c.BodyParser(&req); err != nil {
		return assist.ErrMissingPosition().WithDetail("parse_error", err.Error())
	}

	resp, err := h.service.Draft(c.Context(), assist.Kind(c.Params("kind")), req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// SuggestTags
// POST /api/assist/job-tags
func (h *Handlers) SuggestTags(c *fiber.Ctx) error {
	var req assist.TagsRequest
	if err := c.BodyParser(&req); err != nil {
		return assist.ErrMissingPosition().WithDetail("parse_error", err.Error())
	}

	resp, err := h.service.SuggestTags(c.Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// RegisterRoutes registers drafting routes; all of them require a signed-in user
func RegisterRoutes(app *fiber.App, handlers *Handlers, requireAuth fiber.Handler) {
	api := app.Group("/api/assist", requireAuth)

	api.Post("/job-tags", handlers.SuggestTags)
	api.Post("/:kind", handlers.Draft)
}
