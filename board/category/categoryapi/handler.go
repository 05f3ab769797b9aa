package categoryapi

import (
	"github.com/Abraxas-365/jobboard/board/category"
	"github.com/Abraxas-365/jobboard/board/category/categorysrv"
	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	service *categorysrv.CategoryService
}

func NewHandlers(service *categorysrv.CategoryService) *Handlers {
	return &Handlers{service: service}
}

// ListCategories
// GET /api/categories
func (h *Handlers) ListCategories(c *fiber.Ctx) error {
	categories, err := h.service.ListCategories(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(categories)
}

type createCategoryRequest struct {
	Name string `json:"name"`
}

// CreateCategory
// POST /api/categories
func (h *Handlers) CreateCategory(c *fiber.Ctx) error {
	var req createCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return category.ErrInvalidName().WithDetail("parse_error", err.Error())
	}

	created, err := h.service.CreateCategory(c.Context(), req.Name)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func RegisterRoutes(app *fiber.App, handlers *Handlers, requireAuth fiber.Handler) {
	api := app.Group("/api/categories")

	api.Get("/", handlers.ListCategories)
	api.Post("/", requireAuth, handlers.CreateCategory)
}
