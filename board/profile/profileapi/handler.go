package profileapi

import (
	"io"
	"mime"
	"path"

	"github.com/Abraxas-365/jobboard/board/job"
	"github.com/Abraxas-365/jobboard/board/profile"
	"github.com/Abraxas-365/jobboard/board/profile/profilesrv"
	"github.com/Abraxas-365/jobboard/pkg/auth"
	"github.com/Abraxas-365/jobboard/pkg/kernel"
	"github.com/gofiber/fiber/v2"
)

// MaxResumeSize bounds uploaded resume files
const MaxResumeSize = 10 << 20

// Handlers provides HTTP handlers for profile operations
type Handlers struct {
	service *profilesrv.ProfileService
}

// NewHandlers creates a new profile handlers instance
func NewHandlers(service *profilesrv.ProfileService) *Handlers {
	return &Handlers{
		service: service,
	}
}

func userIDParam(c *fiber.Ctx) kernel.UserID {
	return kernel.UserID(c.Params("userId"))
}

// GetProfile returns the caller's profile with resumes and applied jobs
// GET /api/users/:userId
func (h *Handlers) GetProfile(c *fiber.Ctx) error {
	view, err := h.service.GetProfileView(c.Context(), auth.UserID(c), userIDParam(c))
	if err != nil {
		return err
	}
	return c.JSON(view)
}

// UpsertProfile
// PATCH /api/users/:userId
func (h *Handlers) UpsertProfile(c *fiber.Ctx) error {
	var req profile.UpsertProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return profile.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	view, err := h.service.UpsertProfile(c.Context(), auth.UserID(c), userIDParam(c), req)
	if err != nil {
		return err
	}
	return c.JSON(view)
}

// ApplyToJob records an application and returns the updated profile
// PATCH /api/users/:userId/applied-jobs
func (h *Handlers) ApplyToJob(c *fiber.Ctx) error {
	var req profile.ApplyRequest
	if err := c.BodyParser(&req); err != nil {
		return profile.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	view, err := h.service.ApplyToJob(c.Context(), auth.UserID(c), userIDParam(c), req)
	if err != nil {
		return err
	}
	return c.JSON(view)
}

// UploadResume accepts a multipart "file" with an optional "name"
// POST /api/users/:userId/resumes
func (h *Handlers) UploadResume(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return profile.ErrMissingField("file")
	}
	if fh.Size > MaxResumeSize {
		return profile.ErrUnsupportedFile().WithDetail("max_bytes", MaxResumeSize)
	}

	f, err := fh.Open()
	if err != nil {
		return profile.ErrInvalidRequest().WithDetail("upload_error", err.Error())
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, MaxResumeSize+1))
	if err != nil {
		return profile.ErrInvalidRequest().WithDetail("upload_error", err.Error())
	}

	created, err := h.service.UploadResume(c.Context(), auth.UserID(c), userIDParam(c), profile.UploadResumeRequest{
		Name:        c.FormValue("name"),
		FileName:    fh.Filename,
		ContentType: fh.Header.Get(fiber.HeaderContentType),
		Data:        data,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// DownloadResume streams a stored resume file
// GET /api/users/:userId/resumes/:resumeId/file
func (h *Handlers) DownloadResume(c *fiber.Ctx) error {
	stream, r, err := h.service.OpenResume(c.Context(), auth.UserID(c), userIDParam(c), kernel.ResumeID(c.Params("resumeId")))
	if err != nil {
		return err
	}

	if ct := mime.TypeByExtension(path.Ext(r.StoragePath)); ct != "" {
		c.Set(fiber.HeaderContentType, ct)
	}
	c.Attachment(r.Name + path.Ext(r.StoragePath))
	// fasthttp closes the stream once the body is written
	return c.SendStream(stream)
}

// DeleteResume
// DELETE /api/users/:userId/resumes/:resumeId
func (h *Handlers) DeleteResume(c *fiber.Ctx) error {
	id := kernel.ResumeID(c.Params("resumeId"))
	if err := h.service.DeleteResume(c.Context(), auth.UserID(c), userIDParam(c), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListApplicants lists who applied to one of the caller's jobs
// GET /api/jobs/:id/applicants
func (h *Handlers) ListApplicants(c *fiber.Ctx) error {
	id := kernel.JobID(c.Params("id"))
	if id.IsEmpty() {
		return job.ErrJobNotFound().WithDetail("id", "missing or empty")
	}

	applicants, err := h.service.ListApplicants(c.Context(), auth.UserID(c), id)
	if err != nil {
		return err
	}
	return c.JSON(applicants)
}

// RegisterRoutes registers profile routes.
// Identity is resolved optionally; the service rejects anonymous or mismatched callers.
func RegisterRoutes(app *fiber.App, handlers *Handlers, requireAuth, optionalAuth fiber.Handler) {
	users := app.Group("/api/users/:userId", optionalAuth)

	users.Get("/", handlers.GetProfile)
	users.Patch("/", handlers.UpsertProfile)
	users.Patch("/applied-jobs", handlers.ApplyToJob)
	users.Post("/resumes", handlers.UploadResume)
	users.Get("/resumes/:resumeId/file", handlers.DownloadResume)
	users.Delete("/resumes/:resumeId", handlers.DeleteResume)

	app.Get("/api/jobs/:id/applicants", requireAuth, handlers.ListApplicants)
}
