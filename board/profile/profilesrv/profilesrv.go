package profilesrv

import (
	"context"
	"strings"
	"time"

	"github.com/Abraxas-365/jobboard/board/job"
	"github.com/Abraxas-365/jobboard/board/profile"
	"github.com/Abraxas-365/jobboard/pkg/errx"
	"github.com/Abraxas-365/jobboard/pkg/fsx"
	"github.com/Abraxas-365/jobboard/pkg/kernel"
	"github.com/Abraxas-365/jobboard/pkg/logx"
	"github.com/google/uuid"
)

const notifyTimeout = 30 * time.Second

// ProfileService provides business operations for job seeker profiles
type ProfileService struct {
	profileRepo profile.Repository
	resumeRepo  profile.ResumeRepository
	jobRepo     job.Repository
	fs          fsx.FileSystem
	notifier    profile.Notifier
	now         func() time.Time
}

// NewProfileService creates a new instance of the profile service.
// notifier may be nil, in which case apply sends nothing.
func NewProfileService(
	profileRepo profile.Repository,
	resumeRepo profile.ResumeRepository,
	jobRepo job.Repository,
	fs fsx.FileSystem,
	notifier profile.Notifier,
) *ProfileService {
	return &ProfileService{
		profileRepo: profileRepo,
		resumeRepo:  resumeRepo,
		jobRepo:     jobRepo,
		fs:          fs,
		notifier:    notifier,
		now:         time.Now,
	}
}

// authorize checks that the acting identity is the target user
func authorize(actor, userID kernel.UserID) error {
	if actor.IsEmpty() {
		return profile.ErrUnauthorized()
	}
	if actor != userID {
		return profile.ErrUserMismatch().
			WithDetail("actor", actor.String()).
			WithDetail("user_id", userID.String())
	}
	return nil
}

// ============================================================================
// Profile
// ============================================================================

// GetProfileView returns the user's profile with resumes and applications.
// A user without a stored profile gets an empty view.
func (s *ProfileService) GetProfileView(ctx context.Context, actor, userID kernel.UserID) (*profile.ProfileView, error) {
	if err := authorize(actor, userID); err != nil {
		return nil, err
	}
	return s.view(ctx, userID)
}

// UpsertProfile creates or updates the caller's profile
func (s *ProfileService) UpsertProfile(ctx context.Context, actor, userID kernel.UserID, req profile.UpsertProfileRequest) (*profile.ProfileView, error) {
	if err := authorize(actor, userID); err != nil {
		return nil, err
	}

	p, err := s.loadOrNew(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		p.FullName = strings.TrimSpace(*req.FullName)
	}
	if req.Email != nil {
		email := kernel.Email(strings.TrimSpace(*req.Email))
		if !email.IsEmpty() && !email.IsValid() {
			return nil, profile.ErrInvalidEmail().WithDetail("email", email.String())
		}
		p.Email = email
	}
	if req.Contact != nil {
		p.Contact = strings.TrimSpace(*req.Contact)
	}
	if req.ActiveResumeID != nil {
		if *req.ActiveResumeID == "" {
			p.ActiveResumeID = nil
		} else {
			id := kernel.ResumeID(*req.ActiveResumeID)
			if _, err := s.ownedResume(ctx, p, id); err != nil {
				return nil, err
			}
			p.ActiveResumeID = &id
		}
	}
	p.UpdatedAt = s.now()

	if err := s.profileRepo.Upsert(ctx, p); err != nil {
		return nil, errx.Wrap(err, "failed to save profile", errx.TypeInternal)
	}
	return s.view(ctx, userID)
}

// ============================================================================
// Apply
// ============================================================================

// ApplyToJob records an application of userID to a published job.
// Applying twice to the same job succeeds without creating a second record;
// the contact email is written onto the profile either way.
func (s *ProfileService) ApplyToJob(ctx context.Context, actor, userID kernel.UserID, req profile.ApplyRequest) (*profile.ProfileView, error) {
	if err := authorize(actor, userID); err != nil {
		return nil, err
	}

	jobID := kernel.JobID(strings.TrimSpace(req.JobID))
	resumeID := kernel.ResumeID(strings.TrimSpace(req.ResumeID))
	email := kernel.Email(strings.TrimSpace(req.ContactEmail))

	switch {
	case jobID.IsEmpty():
		return nil, profile.ErrMissingField("jobId")
	case resumeID.IsEmpty():
		return nil, profile.ErrMissingField("resumeId")
	case email.IsEmpty():
		return nil, profile.ErrMissingField("contactEmail")
	case !email.IsValid():
		return nil, profile.ErrInvalidEmail().WithDetail("contact_email", email.String())
	}

	target, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		if errx.IsType(err, errx.TypeNotFound) {
			return nil, profile.ErrJobNotApplicable().WithDetail("job_id", jobID.String())
		}
		return nil, profile.ErrStorageFailure().WithCause(err)
	}
	if !target.IsPublished {
		return nil, profile.ErrJobNotApplicable().WithDetail("job_id", jobID.String())
	}

	p, err := s.loadOrNew(ctx, userID)
	if err != nil {
		return nil, err
	}
	if _, err := s.ownedResume(ctx, p, resumeID); err != nil {
		return nil, err
	}

	applied := &profile.AppliedJob{
		ID:           kernel.NewAppliedJobID(uuid.NewString()),
		UserID:       userID,
		JobID:        jobID,
		ResumeID:     resumeID,
		ContactEmail: email,
		AppliedAt:    s.now(),
	}
	created, err := s.profileRepo.RecordApplication(ctx, applied)
	if err != nil {
		if errx.IsType(err, errx.TypeNotFound) {
			return nil, err
		}
		return nil, profile.ErrStorageFailure().WithCause(err)
	}
	if created {
		logx.Infof("user %s applied to job %s", userID, jobID)
	} else {
		logx.Debugf("user %s already applied to job %s", userID, jobID)
	}

	s.notifyApplicant(email, p.FullName)

	return s.view(ctx, userID)
}

// notifyApplicant sends the welcome message without blocking the request.
// The request context is not carried into the goroutine: fiber recycles it
// once the handler returns.
func (s *ProfileService) notifyApplicant(to kernel.Email, fullName string) {
	if s.notifier == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		if err := s.notifier.SendWelcome(ctx, to, fullName); err != nil {
			logx.Warnf("welcome notification to %s failed: %v", to, err)
		}
	}()
}

// ListApplicants returns the applicants of a job owned by actor
func (s *ProfileService) ListApplicants(ctx context.Context, actor kernel.UserID, jobID kernel.JobID) ([]profile.Applicant, error) {
	if actor.IsEmpty() {
		return nil, profile.ErrUnauthorized()
	}

	target, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if !target.IsOwnedBy(actor) {
		return nil, job.ErrJobNotFound().WithDetail("job_id", jobID.String())
	}

	applicants, err := s.profileRepo.ListApplicants(ctx, jobID)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list applicants", errx.TypeInternal)
	}
	if applicants == nil {
		applicants = []profile.Applicant{}
	}
	return applicants, nil
}

// ============================================================================
// Helpers
// ============================================================================

func (s *ProfileService) loadOrNew(ctx context.Context, userID kernel.UserID) (*profile.UserProfile, error) {
	p, err := s.profileRepo.GetByUserID(ctx, userID)
	if err == nil {
		return p, nil
	}
	if !errx.IsCode(err, profile.CodeProfileNotFound) {
		return nil, err
	}

	return s.newProfile(userID), nil
}

func (s *ProfileService) newProfile(userID kernel.UserID) *profile.UserProfile {
	now := s.now()
	return &profile.UserProfile{
		ID:        kernel.NewProfileID(uuid.NewString()),
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (s *ProfileService) ownedResume(ctx context.Context, p *profile.UserProfile, id kernel.ResumeID) (*profile.Resume, error) {
	r, err := s.resumeRepo.GetByID(ctx, id)
	if err != nil {
		if errx.IsType(err, errx.TypeNotFound) {
			return nil, profile.ErrResumeNotOwned().WithDetail("resume_id", id.String())
		}
		return nil, err
	}
	if !r.IsOwnedBy(p) {
		return nil, profile.ErrResumeNotOwned().WithDetail("resume_id", id.String())
	}
	return r, nil
}

func (s *ProfileService) view(ctx context.Context, userID kernel.UserID) (*profile.ProfileView, error) {
	v := &profile.ProfileView{
		UserProfile: profile.UserProfile{UserID: userID},
		Resumes:     []profile.Resume{},
		AppliedJobs: []profile.AppliedJob{},
	}

	p, err := s.profileRepo.GetByUserID(ctx, userID)
	switch {
	case err == nil:
		v.UserProfile = *p
	case errx.IsCode(err, profile.CodeProfileNotFound):
		return v, nil
	default:
		return nil, err
	}

	resumes, err := s.resumeRepo.ListByProfile(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	if resumes != nil {
		v.Resumes = resumes
	}

	applied, err := s.profileRepo.ListAppliedJobs(ctx, userID)
	if err != nil {
		return nil, err
	}
	if applied != nil {
		v.AppliedJobs = applied
	}
	return v, nil
}
