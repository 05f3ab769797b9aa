package jobapi

import (
	"github.com/Abraxas-365/jobboard/board/job"
	"github.com/Abraxas-365/jobboard/board/job/jobsrv"
	"github.com/Abraxas-365/jobboard/pkg/auth"
	"github.com/Abraxas-365/jobboard/pkg/kernel"
	"github.com/gofiber/fiber/v2"
)

// Handlers provides HTTP handlers for job operations
type Handlers struct {
	service *jobsrv.JobService
}

// NewHandlers creates a new job handlers instance
func NewHandlers(service *jobsrv.JobService) *Handlers {
	return &Handlers{
		service: service,
	}
}

func jobIDParam(c *fiber.Ctx) (kernel.JobID, error) {
	id := kernel.JobID(c.Params("id"))
	if id.IsEmpty() {
		return "", job.ErrJobNotFound().WithDetail("id", "missing or empty")
	}
	return id, nil
}

// SearchJobs lists published jobs matching the query string filters.
// It never fails because of storage errors; those yield an empty list.
// GET /api/jobs/search?title=&categoryId=&shiftTiming=&workMode=&yearsOfExperience=&createdAtFilter=
func (h *Handlers) SearchJobs(c *fiber.Ctx) error {
	var filter job.SearchFilter
	if err := c.QueryParser(&filter); err != nil {
		return job.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	return c.JSON(h.service.SearchJobs(c.Context(), filter))
}

// GetJob retrieves a job with its company and category
// GET /api/jobs/:id
func (h *Handlers) GetJob(c *fiber.Ctx) error {
	id, err := jobIDParam(c)
	if err != nil {
		return err
	}

	details, err := h.service.GetJob(c.Context(), auth.UserID(c), id)
	if err != nil {
		return err
	}
	return c.JSON(details)
}

// SimilarJobs lists published jobs close to this one
// GET /api/jobs/:id/similar?limit=5
func (h *Handlers) SimilarJobs(c *fiber.Ctx) error {
	id, err := jobIDParam(c)
	if err != nil {
		return err
	}

	jobs, err := h.service.SimilarJobs(c.Context(), id, c.QueryInt("limit", 5))
	if err != nil {
		return err
	}
	return c.JSON(jobs)
}

// CreateJob creates an unpublished job owned by the caller
// POST /api/jobs
func (h *Handlers) CreateJob(c *fiber.Ctx) error {
	var req job.CreateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return job.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	created, err := h.service.CreateJob(c.Context(), auth.UserID(c), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// UpdateJob applies a partial update to one of the caller's jobs
// PATCH /api/jobs/:id
func (h *Handlers) UpdateJob(c *fiber.Ctx) error {
	id, err := jobIDParam(c)
	if err != nil {
		return err
	}

	var req job.UpdateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return job.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	updated, err := h.service.UpdateJob(c.Context(), auth.UserID(c), id, req)
	if err != nil {
		return err
	}
	return c.JSON(updated)
}

// DeleteJob
// DELETE /api/jobs/:id
func (h *Handlers) DeleteJob(c *fiber.Ctx) error {
	id, err := jobIDParam(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteJob(c.Context(), auth.UserID(c), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// PublishJob
// PATCH /api/jobs/:id/publish
func (h *Handlers) PublishJob(c *fiber.Ctx) error {
	id, err := jobIDParam(c)
	if err != nil {
		return err
	}

	updated, err := h.service.PublishJob(c.Context(), auth.UserID(c), id)
	if err != nil {
		return err
	}
	return c.JSON(updated)
}

// UnpublishJob
// PATCH /api/jobs/:id/unpublish
func (h *Handlers) UnpublishJob(c *fiber.Ctx) error {
	id, err := jobIDParam(c)
	if err != nil {
		return err
	}

	updated, err := h.service.UnpublishJob(c.Context(), auth.UserID(c), id)
	if err != nil {
		return err
	}
	return c.JSON(updated)
}

// ListMyJobs lists the caller's jobs
// GET /api/jobs/mine
func (h *Handlers) ListMyJobs(c *fiber.Ctx) error {
	jobs, err := h.service.ListUserJobs(c.Context(), auth.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(jobs)
}

// ListSavedJobs lists the caller's saved jobs
// GET /api/jobs/saved
func (h *Handlers) ListSavedJobs(c *fiber.Ctx) error {
	jobs, err := h.service.ListSavedJobs(c.Context(), auth.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(jobs)
}

// ToggleSave adds or removes the job from the caller's saved collection
// PATCH /api/jobs/:id/save
func (h *Handlers) ToggleSave(c *fiber.Ctx) error {
	id, err := jobIDParam(c)
	if err != nil {
		return err
	}

	resp, err := h.service.ToggleSave(c.Context(), auth.UserID(c), id)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// SaveJob
// PATCH /api/jobs/:id/saved
func (h *Handlers) SaveJob(c *fiber.Ctx) error {
	id, err := jobIDParam(c)
	if err != nil {
		return err
	}

	updated, err := h.service.SaveJob(c.Context(), auth.UserID(c), id)
	if err != nil {
		return err
	}
	return c.JSON(updated)
}

// UnsaveJob
// PATCH /api/jobs/:id/unsaved
func (h *Handlers) UnsaveJob(c *fiber.Ctx) error {
	id, err := jobIDParam(c)
	if err != nil {
		return err
	}

	updated, err := h.service.UnsaveJob(c.Context(), auth.UserID(c), id)
	if err != nil {
		return err
	}
	return c.JSON(updated)
}

// RegisterRoutes registers job routes.
// Save routes resolve identity optionally so the service reports anonymous callers itself.
func RegisterRoutes(app *fiber.App, handlers *Handlers, requireAuth, optionalAuth fiber.Handler) {
	api := app.Group("/api/jobs")

	api.Get("/search", handlers.SearchJobs)
	api.Get("/mine", requireAuth, handlers.ListMyJobs)
	api.Get("/saved", requireAuth, handlers.ListSavedJobs)
	api.Post("/", requireAuth, handlers.CreateJob)

	api.Get("/:id", optionalAuth, handlers.GetJob)
	api.Get("/:id/similar", handlers.SimilarJobs)
	api.Patch("/:id", requireAuth, handlers.UpdateJob)
	api.Delete("/:id", requireAuth, handlers.DeleteJob)
	api.Patch("/:id/publish", requireAuth, handlers.PublishJob)
	api.Patch("/:id/unpublish", requireAuth, handlers.UnpublishJob)

	api.Patch("/:id/save", optionalAuth, handlers.ToggleSave)
	api.Patch("/:id/saved", optionalAuth, handlers.SaveJob)
	api.Patch("/:id/unsaved", optionalAuth, handlers.UnsaveJob)
}
