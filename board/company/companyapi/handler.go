package companyapi

import (
	"github.com/Abraxas-365/jobboard/board/company"
	"github.com/Abraxas-365/jobboard/board/company/companysrv"
	"github.com/Abraxas-365/jobboard/pkg/auth"
	"github.com/Abraxas-365/jobboard/pkg/kernel"
	"github.com/gofiber/fiber/v2"
)

// Handlers provides HTTP handlers for company operations
type Handlers struct {
	service *companysrv.CompanyService
}

func NewHandlers(service *companysrv.CompanyService) *Handlers {
	return &Handlers{service: service}
}

// CreateCompany creates a company owned by the caller
// POST /api/companies
func (h *Handlers) CreateCompany(c *fiber.Ctx) error {
	var req company.CreateCompanyRequest
	if err := c.BodyParser(&req); err != nil {
		return company.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	created, err := h.service.CreateCompany(c.Context(), auth.UserID(c), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// GetCompany
// GET /api/companies/:id
func (h *Handlers) GetCompany(c *fiber.Ctx) error {
	id := kernel.CompanyID(c.Params("id"))
	if id.IsEmpty() {
		return company.ErrCompanyNotFound().WithDetail("id", "missing or empty")
	}

	found, err := h.service.GetCompany(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(found)
}

// ListMyCompanies lists companies created by the caller
// GET /api/companies/mine
func (h *Handlers) ListMyCompanies(c *fiber.Ctx) error {
	companies, err := h.service.ListUserCompanies(c.Context(), auth.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(companies)
}

// UpdateCompany applies a partial update
// PATCH /api/companies/:id
func (h *Handlers) UpdateCompany(c *fiber.Ctx) error {
	id := kernel.CompanyID(c.Params("id"))
	if id.IsEmpty() {
		return company.ErrCompanyNotFound().WithDetail("id", "missing or empty")
	}

	var req company.UpdateCompanyRequest
	if err := c.BodyParser(&req); err != nil {
		return company.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	updated, err := h.service.UpdateCompany(c.Context(), auth.UserID(c), id, req)
	if err != nil {
		return err
	}
	return c.JSON(updated)
}

// DeleteCompany
// DELETE /api/companies/:id
func (h *Handlers) DeleteCompany(c *fiber.Ctx) error {
	id := kernel.CompanyID(c.Params("id"))
	if err := h.service.DeleteCompany(c.Context(), auth.UserID(c), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RegisterRoutes registers company routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, requireAuth fiber.Handler) {
	api := app.Group("/api/companies")

	api.Post("/", requireAuth, handlers.CreateCompany)
	api.Get("/mine", requireAuth, handlers.ListMyCompanies)
	api.Get("/:id", handlers.GetCompany)
	api.Patch("/:id", requireAuth, handlers.UpdateCompany)
	api.Delete("/:id", requireAuth, handlers.DeleteCompany)
}
