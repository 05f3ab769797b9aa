package jobsrv

import (
	"context"
	"strings"
	"time"

	"github.com/Abraxas-365/jobboard/board/company"
	"github.com/Abraxas-365/jobboard/board/job"
	"github.com/Abraxas-365/jobboard/pkg/errx"
	"github.com/Abraxas-365/jobboard/pkg/kernel"
	"github.com/Abraxas-365/jobboard/pkg/logx"
	"github.com/google/uuid"
)

const defaultSimilarLimit = 5

// JobService provides business operations for jobs
type JobService struct {
	jobRepo     job.Repository
	companyRepo company.Repository
	embedder    job.Embedder
	now         func() time.Time
}

// NewJobService creates a new instance of the job service.
// embedder may be nil, in which case similarity vectors are never computed.
func NewJobService(
	jobRepo job.Repository,
	companyRepo company.Repository,
	embedder job.Embedder,
) *JobService {
	return &JobService{
		jobRepo:     jobRepo,
		companyRepo: companyRepo,
		embedder:    embedder,
		now:         time.Now,
	}
}

// ============================================================================
// Search
// ============================================================================

// SearchJobs returns the published jobs matching the filter, newest first.
// Storage failures are logged and produce an empty list instead of an error.
func (s *JobService) SearchJobs(ctx context.Context, filter job.SearchFilter) []job.JobDetails {
	q := job.BuildQuery(filter, s.now())

	jobs, err := s.jobRepo.Search(ctx, q)
	if err != nil {
		logx.Errorf("job search failed (filter=%+v): %v", filter, err)
		return []job.JobDetails{}
	}
	if jobs == nil {
		return []job.JobDetails{}
	}
	return jobs
}

// GetJob returns a job with its company and category.
// Unpublished jobs are only visible to their owner.
func (s *JobService) GetJob(ctx context.Context, viewer kernel.UserID, id kernel.JobID) (*job.JobDetails, error) {
	details, err := s.jobRepo.GetDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if !details.IsPublished && !details.IsOwnedBy(viewer) {
		return nil, job.ErrJobNotFound().WithDetail("job_id", id.String())
	}
	return details, nil
}

// SimilarJobs lists published jobs closest to the given one
func (s *JobService) SimilarJobs(ctx context.Context, id kernel.JobID, limit int) ([]job.JobDetails, error) {
	if limit <= 0 || limit > 50 {
		limit = defaultSimilarLimit
	}
	if _, err := s.jobRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}

	jobs, err := s.jobRepo.ListSimilar(ctx, id, limit)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list similar jobs", errx.TypeInternal)
	}
	return jobs, nil
}

// ============================================================================
// Owner Operations
// ============================================================================

// CreateJob creates an unpublished job owned by userID
func (s *JobService) CreateJob(ctx context.Context, userID kernel.UserID, req job.CreateJobRequest) (*job.Job, error) {
	if userID.IsEmpty() {
		return nil, job.ErrUnauthorized()
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, job.ErrInvalidTitle()
	}

	now := s.now()
	newJob := &job.Job{
		ID:         kernel.NewJobID(uuid.NewString()),
		UserID:     userID,
		Title:      kernel.JobTitle(title),
		Tags:       []string{},
		SavedUsers: []kernel.UserID{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.jobRepo.Create(ctx, newJob); err != nil {
		return nil, errx.Wrap(err, "failed to create job", errx.TypeInternal)
	}

	return newJob, nil
}

// UpdateJob applies a partial update to a job owned by userID
func (s *JobService) UpdateJob(ctx context.Context, userID kernel.UserID, id kernel.JobID, req job.UpdateJobRequest) (*job.Job, error) {
	if userID.IsEmpty() {
		return nil, job.ErrUnauthorized()
	}
	if err := validateUpdate(req); err != nil {
		return nil, err
	}

	existing, err := s.ownedJob(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.CompanyID != nil && *req.CompanyID != "" {
		c, err := s.companyRepo.GetByID(ctx, kernel.CompanyID(*req.CompanyID))
		if err != nil || !c.IsOwnedBy(userID) {
			return nil, job.ErrCompanyNotOwned().WithDetail("company_id", *req.CompanyID)
		}
	}

	existing.Apply(req)
	if err := s.jobRepo.Update(ctx, existing); err != nil {
		return nil, err
	}

	if existing.IsPublished {
		s.refreshEmbedding(existing)
	}
	return existing, nil
}

// DeleteJob deletes a job owned by userID
func (s *JobService) DeleteJob(ctx context.Context, userID kernel.UserID, id kernel.JobID) error {
	if userID.IsEmpty() {
		return job.ErrUnauthorized()
	}
	return s.jobRepo.Delete(ctx, id, userID)
}

// PublishJob makes a job visible to search
func (s *JobService) PublishJob(ctx context.Context, userID kernel.UserID, id kernel.JobID) (*job.Job, error) {
	return s.setPublished(ctx, userID, id, true)
}

// UnpublishJob hides a job from search
func (s *JobService) UnpublishJob(ctx context.Context, userID kernel.UserID, id kernel.JobID) (*job.Job, error) {
	return s.setPublished(ctx, userID, id, false)
}

func (s *JobService) setPublished(ctx context.Context, userID kernel.UserID, id kernel.JobID, published bool) (*job.Job, error) {
	if userID.IsEmpty() {
		return nil, job.ErrUnauthorized()
	}

	existing, err := s.ownedJob(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if err := s.jobRepo.SetPublished(ctx, id, userID, published); err != nil {
		return nil, err
	}

	if published {
		existing.Publish()
		s.refreshEmbedding(existing)
	} else {
		existing.Unpublish()
	}
	return existing, nil
}

// ListUserJobs lists every job posted by the user, newest first
func (s *JobService) ListUserJobs(ctx context.Context, userID kernel.UserID) ([]job.JobDetails, error) {
	if userID.IsEmpty() {
		return nil, job.ErrUnauthorized()
	}
	return s.jobRepo.ListByUserID(ctx, userID)
}

// ownedJob loads a job and hides it when it belongs to someone else
func (s *JobService) ownedJob(ctx context.Context, userID kernel.UserID, id kernel.JobID) (*job.Job, error) {
	existing, err := s.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !existing.IsOwnedBy(userID) {
		return nil, job.ErrJobNotFound().WithDetail("job_id", id.String())
	}
	return existing, nil
}

func validateUpdate(req job.UpdateJobRequest) error {
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		return job.ErrInvalidTitle()
	}
	if req.WorkMode != nil && *req.WorkMode != "" && !kernel.WorkMode(*req.WorkMode).IsValid() {
		return job.ErrInvalidWorkMode().WithDetail("work_mode", *req.WorkMode)
	}
	if req.YearsOfExperience != nil && *req.YearsOfExperience != "" && !kernel.ExperienceBracket(*req.YearsOfExperience).IsValid() {
		return job.ErrInvalidExperience().WithDetail("years_of_experience", *req.YearsOfExperience)
	}
	return nil
}

// refreshEmbedding recomputes the similarity vector in the background,
// detached from the request context that fiber recycles after the handler.
// Failures only affect similar-job suggestions, so they are logged.
func (s *JobService) refreshEmbedding(j *job.Job) {
	if s.embedder == nil {
		return
	}

	id, text := j.ID, j.EmbeddingText()
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		vector, err := s.embedder.GenerateEmbedding(ctx, text)
		if err != nil {
			logx.Warnf("embedding for job %s failed: %v", id, err)
			return
		}
		if err := s.jobRepo.UpdateEmbedding(ctx, id, vector); err != nil {
			logx.Warnf("storing embedding for job %s failed: %v", id, err)
		}
	}()
}
