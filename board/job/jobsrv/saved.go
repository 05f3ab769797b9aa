package jobsrv

import (
	"context"

	"github.com/Abraxas-365/jobboard/board/job"
	"github.com/Abraxas-365/jobboard/pkg/kernel"
)

// ToggleSave adds the job to the user's saved collection, or removes it when already there
func (s *JobService) ToggleSave(ctx context.Context, userID kernel.UserID, id kernel.JobID) (*job.SaveToggleResponse, error) {
	if userID.IsEmpty() {
		return nil, job.ErrUnauthorized()
	}

	saved, err := s.jobRepo.ToggleSaved(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	updated, err := s.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &job.SaveToggleResponse{Job: updated, Saved: saved}, nil
}

// SaveJob adds the job to the user's saved collection; saving twice is a no-op
func (s *JobService) SaveJob(ctx context.Context, userID kernel.UserID, id kernel.JobID) (*job.Job, error) {
	if userID.IsEmpty() {
		return nil, job.ErrUnauthorized()
	}
	if err := s.jobRepo.AddSavedUser(ctx, id, userID); err != nil {
		return nil, err
	}
	return s.jobRepo.GetByID(ctx, id)
}

// UnsaveJob removes the job from the user's saved collection
func (s *JobService) UnsaveJob(ctx context.Context, userID kernel.UserID, id kernel.JobID) (*job.Job, error) {
	if userID.IsEmpty() {
		return nil, job.ErrUnauthorized()
	}
	if err := s.jobRepo.RemoveSavedUser(ctx, id, userID); err != nil {
		return nil, err
	}
	return s.jobRepo.GetByID(ctx, id)
}

// ListSavedJobs lists the jobs in the user's saved collection
func (s *JobService) ListSavedJobs(ctx context.Context, userID kernel.UserID) ([]job.JobDetails, error) {
	if userID.IsEmpty() {
		return nil, job.ErrUnauthorized()
	}
	return s.jobRepo.ListSavedBy(ctx, userID)
}
