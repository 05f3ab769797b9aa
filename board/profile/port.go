package profile

import (
	"context"

	"github.com/Abraxas-365/jobboard/pkg/kernel"
)

type Repository interface {
	// GetByUserID retrieves a profile by its external user ID
	GetByUserID(ctx context.Context, userID kernel.UserID) (*UserProfile, error)

	// Upsert inserts the profile or updates the one with the same user ID
	Upsert(ctx context.Context, p *UserProfile) error

	// RecordApplication upserts the contact email onto the profile and inserts the
	// application unless one exists for the same (user, job). Both happen atomically.
	// It reports whether a new application was created.
	RecordApplication(ctx context.Context, applied *AppliedJob) (bool, error)

	// ListAppliedJobs returns the user's applications, newest first
	ListAppliedJobs(ctx context.Context, userID kernel.UserID) ([]AppliedJob, error)

	// ListApplicants returns the applicants of a job, newest first
	ListApplicants(ctx context.Context, jobID kernel.JobID) ([]Applicant, error)
}

type ResumeRepository interface {
	// Create stores a resume record
	Create(ctx context.Context, r *Resume) error

	// GetByID retrieves a resume by ID
	GetByID(ctx context.Context, id kernel.ResumeID) (*Resume, error)

	// ListByProfile returns a profile's resumes, newest first
	ListByProfile(ctx context.Context, profileID kernel.ProfileID) ([]Resume, error)

	// Delete removes a resume record
	Delete(ctx context.Context, id kernel.ResumeID) error
}

// Notifier delivers best-effort messages to applicants
type Notifier interface {
	SendWelcome(ctx context.Context, to kernel.Email, fullName string) error
}
