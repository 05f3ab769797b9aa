package jobsrv

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/Abraxas-365/jobboard/board/company"
	"github.com/Abraxas-365/jobboard/board/job"
	"github.com/Abraxas-365/jobboard/pkg/kernel"
)

// memoryJobRepo is an in-memory job.Repository for service tests
type memoryJobRepo struct {
	mu         sync.Mutex
	jobs       map[kernel.JobID]*job.Job
	embeddings map[kernel.JobID][]float32
	failSearch bool
}

func newMemoryJobRepo(jobs ...*job.Job) *memoryJobRepo {
	r := &memoryJobRepo{
		jobs:       map[kernel.JobID]*job.Job{},
		embeddings: map[kernel.JobID][]float32{},
	}
	for _, j := range jobs {
		r.jobs[j.ID] = j
	}
	return r
}

func clone(j *job.Job) *job.Job {
	c := *j
	c.SavedUsers = append([]kernel.UserID(nil), j.SavedUsers...)
	c.Tags = append([]string(nil), j.Tags...)
	return &c
}

func (r *memoryJobRepo) Create(_ context.Context, j *job.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jobs[j.ID] = clone(j)
	return nil
}

func (r *memoryJobRepo) Update(_ context.Context, j *job.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.jobs[j.ID]
	if !ok || existing.UserID != j.UserID {
		return job.ErrJobNotFound()
	}
	updated := clone(j)
	updated.SavedUsers = existing.SavedUsers
	r.jobs[j.ID] = updated
	return nil
}

func (r *memoryJobRepo) GetByID(_ context.Context, id kernel.JobID) (*job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[id]
	if !ok {
		return nil, job.ErrJobNotFound()
	}
	return clone(j), nil
}

func (r *memoryJobRepo) GetDetails(ctx context.Context, id kernel.JobID) (*job.JobDetails, error) {
	j, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &job.JobDetails{Job: *j}, nil
}

func (r *memoryJobRepo) Delete(_ context.Context, id kernel.JobID, userID kernel.UserID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[id]
	if !ok || j.UserID != userID {
		return job.ErrJobNotFound()
	}
	delete(r.jobs, id)
	return nil
}

func (r *memoryJobRepo) list(match func(*job.Job) bool) []job.JobDetails {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []job.JobDetails{}
	for _, j := range r.jobs {
		if match(j) {
			out = append(out, job.JobDetails{Job: *clone(j)})
		}
	}
	sort.Slice(out, func(i, k int) bool { return out[i].CreatedAt.After(out[k].CreatedAt) })
	return out
}

func (r *memoryJobRepo) Search(_ context.Context, q job.Query) ([]job.JobDetails, error) {
	if r.failSearch {
		return nil, errors.New("connection refused")
	}
	return r.list(q.Matches), nil
}

func (r *memoryJobRepo) ListByUserID(_ context.Context, userID kernel.UserID) ([]job.JobDetails, error) {
	return r.list(func(j *job.Job) bool { return j.UserID == userID }), nil
}

func (r *memoryJobRepo) ListSavedBy(_ context.Context, userID kernel.UserID) ([]job.JobDetails, error) {
	return r.list(func(j *job.Job) bool { return j.IsSavedBy(userID) }), nil
}

func (r *memoryJobRepo) ToggleSaved(_ context.Context, id kernel.JobID, userID kernel.UserID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[id]
	if !ok {
		return false, job.ErrJobNotFound()
	}
	return j.ToggleSave(userID), nil
}

func (r *memoryJobRepo) AddSavedUser(_ context.Context, id kernel.JobID, userID kernel.UserID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[id]
	if !ok {
		return job.ErrJobNotFound()
	}
	j.Save(userID)
	return nil
}

func (r *memoryJobRepo) RemoveSavedUser(_ context.Context, id kernel.JobID, userID kernel.UserID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[id]
	if !ok {
		return job.ErrJobNotFound()
	}
	if !j.Unsave(userID) {
		return job.ErrNotSaved()
	}
	return nil
}

func (r *memoryJobRepo) SetPublished(_ context.Context, id kernel.JobID, userID kernel.UserID, published bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[id]
	if !ok || j.UserID != userID {
		return job.ErrJobNotFound()
	}
	j.IsPublished = published
	return nil
}

func (r *memoryJobRepo) UpdateEmbedding(_ context.Context, id kernel.JobID, embedding []float32) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.embeddings[id] = embedding
	return nil
}

func (r *memoryJobRepo) ListSimilar(_ context.Context, id kernel.JobID, limit int) ([]job.JobDetails, error) {
	out := r.list(func(j *job.Job) bool { return j.IsPublished && j.ID != id })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// memoryCompanyRepo only supports lookups
type memoryCompanyRepo struct {
	companies map[kernel.CompanyID]company.Company
}

func (r *memoryCompanyRepo) Create(context.Context, *company.Company) error { return nil }
func (r *memoryCompanyRepo) Update(context.Context, *company.Company) error { return nil }
func (r *memoryCompanyRepo) Delete(context.Context, kernel.CompanyID, kernel.UserID) error {
	return nil
}
func (r *memoryCompanyRepo) ListByUserID(context.Context, kernel.UserID) ([]company.Company, error) {
	return nil, nil
}
func (r *memoryCompanyRepo) GetByID(_ context.Context, id kernel.CompanyID) (*company.Company, error) {
	c, ok := r.companies[id]
	if !ok {
		return nil, company.ErrCompanyNotFound()
	}
	return &c, nil
}
