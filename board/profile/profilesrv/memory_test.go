package profilesrv

import (
	"bytes"
	"context"
	"io"
	"sort"
	"sync"

	"github.com/Abraxas-365/jobboard/board/job"
	"github.com/Abraxas-365/jobboard/board/profile"
	"github.com/Abraxas-365/jobboard/pkg/fsx"
	"github.com/Abraxas-365/jobboard/pkg/kernel"
)

// memoryProfileRepo keeps profiles and applications in maps
type memoryProfileRepo struct {
	mu       sync.Mutex
	profiles map[kernel.UserID]profile.UserProfile
	applied  []profile.AppliedJob
	writes   int
}

func newMemoryProfileRepo() *memoryProfileRepo {
	return &memoryProfileRepo{profiles: map[kernel.UserID]profile.UserProfile{}}
}

func (r *memoryProfileRepo) GetByUserID(_ context.Context, userID kernel.UserID) (*profile.UserProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[userID]
	if !ok {
		return nil, profile.ErrProfileNotFound()
	}
	return &p, nil
}

func (r *memoryProfileRepo) Upsert(_ context.Context, p *profile.UserProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writes++
	if existing, ok := r.profiles[p.UserID]; ok {
		p.ID = existing.ID
		p.CreatedAt = existing.CreatedAt
	}
	r.profiles[p.UserID] = *p
	return nil
}

func (r *memoryProfileRepo) RecordApplication(_ context.Context, a *profile.AppliedJob) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writes++

	p, ok := r.profiles[a.UserID]
	if !ok {
		p = profile.UserProfile{ID: kernel.ProfileID("p-" + a.UserID.String()), UserID: a.UserID}
	}
	p.Email = a.ContactEmail
	r.profiles[a.UserID] = p

	for _, existing := range r.applied {
		if existing.UserID == a.UserID && existing.JobID == a.JobID {
			return false, nil
		}
	}
	r.applied = append(r.applied, *a)
	return true, nil
}

func (r *memoryProfileRepo) ListAppliedJobs(_ context.Context, userID kernel.UserID) ([]profile.AppliedJob, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []profile.AppliedJob
	for _, a := range r.applied {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *memoryProfileRepo) ListApplicants(_ context.Context, jobID kernel.JobID) ([]profile.Applicant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []profile.Applicant
	for _, a := range r.applied {
		if a.JobID != jobID {
			continue
		}
		p := r.profiles[a.UserID]
		out = append(out, profile.Applicant{
			UserID:       a.UserID,
			FullName:     p.FullName,
			Email:        p.Email,
			ContactEmail: a.ContactEmail,
			AppliedAt:    a.AppliedAt,
		})
	}
	return out, nil
}

type memoryResumeRepo struct {
	mu      sync.Mutex
	resumes map[kernel.ResumeID]profile.Resume
}

func newMemoryResumeRepo(resumes ...profile.Resume) *memoryResumeRepo {
	r := &memoryResumeRepo{resumes: map[kernel.ResumeID]profile.Resume{}}
	for _, res := range resumes {
		r.resumes[res.ID] = res
	}
	return r
}

func (r *memoryResumeRepo) Create(_ context.Context, res *profile.Resume) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resumes[res.ID] = *res
	return nil
}

func (r *memoryResumeRepo) GetByID(_ context.Context, id kernel.ResumeID) (*profile.Resume, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res, ok := r.resumes[id]
	if !ok {
		return nil, profile.ErrResumeNotFound()
	}
	return &res, nil
}

func (r *memoryResumeRepo) ListByProfile(_ context.Context, profileID kernel.ProfileID) ([]profile.Resume, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []profile.Resume
	for _, res := range r.resumes {
		if res.ProfileID == profileID {
			out = append(out, res)
		}
	}
	sort.Slice(out, func(i, k int) bool { return out[i].CreatedAt.After(out[k].CreatedAt) })
	return out, nil
}

func (r *memoryResumeRepo) Delete(_ context.Context, id kernel.ResumeID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.resumes, id)
	return nil
}

// stubJobRepo answers GetByID from a fixed set
type stubJobRepo struct {
	job.Repository
	jobs map[kernel.JobID]job.Job
}

func (r *stubJobRepo) GetByID(_ context.Context, id kernel.JobID) (*job.Job, error) {
	j, ok := r.jobs[id]
	if !ok {
		return nil, job.ErrJobNotFound()
	}
	return &j, nil
}

// memoryFS is a flat in-memory fsx.FileSystem
type memoryFS struct {
	mu    sync.Mutex
	files map[string][]byte
}

func newMemoryFS() *memoryFS { return &memoryFS{files: map[string][]byte{}} }

func (m *memoryFS) ReadFile(_ context.Context, name string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.files[name]
	if !ok {
		return nil, fsx.ErrNotExist
	}
	return data, nil
}

func (m *memoryFS) WriteFile(_ context.Context, name string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[name] = data
	return nil
}

func (m *memoryFS) DeleteFile(_ context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.files, name)
	return nil
}

func (m *memoryFS) Join(elem ...string) string { return fsx.Join(elem...) }
func (m *memoryFS) URL(name string) string     { return "mem://" + name }

// recordingNotifier captures welcome messages
type recordingNotifier struct {
	sent chan kernel.Email
	err  error
}

func (n *recordingNotifier) SendWelcome(_ context.Context, to kernel.Email, _ string) error {
	n.sent <- to
	return n.err
}

func (m *memoryFS) ReadFileStream(ctx context.Context, name string) (io.ReadCloser, error) {
	data, err := m.ReadFile(ctx, name)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}
