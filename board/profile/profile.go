package profile

import (
	"time"

	"github.com/Abraxas-365/jobboard/pkg/kernel"
)

// UserProfile is a job seeker's profile, keyed by the external user ID
type UserProfile struct {
	ID             kernel.ProfileID `json:"id"`
	UserID         kernel.UserID    `json:"userId"`
	FullName       string           `json:"fullName,omitempty"`
	Email          kernel.Email     `json:"email,omitempty"`
	Contact        string           `json:"contact,omitempty"`
	ActiveResumeID *kernel.ResumeID `json:"activeResumeId,omitempty"`
	CreatedAt      time.Time        `json:"createdAt"`
	UpdatedAt      time.Time        `json:"updatedAt"`
}

// Resume is an uploaded CV owned by a profile
type Resume struct {
	ID          kernel.ResumeID  `json:"id"`
	ProfileID   kernel.ProfileID `json:"userProfileId"`
	Name        string           `json:"name"`
	URL         string           `json:"url"`
	PreviewURL  string           `json:"previewUrl,omitempty"`
	StoragePath string           `json:"-"`
	PreviewPath string           `json:"-"`
	CreatedAt   time.Time        `json:"createdAt"`
}

// AppliedJob records that a user applied to a job. At most one exists per (user, job).
type AppliedJob struct {
	ID           kernel.AppliedJobID `json:"id"`
	UserID       kernel.UserID       `json:"userId"`
	JobID        kernel.JobID        `json:"jobId"`
	ResumeID     kernel.ResumeID     `json:"resumeId"`
	ContactEmail kernel.Email        `json:"contactEmail"`
	AppliedAt    time.Time           `json:"appliedAt"`
}

// ProfileView is a profile with its resumes (newest first) and applications
type ProfileView struct {
	UserProfile
	Resumes     []Resume     `json:"resumes"`
	AppliedJobs []AppliedJob `json:"appliedJobs"`
}

// HasApplied reports whether the view contains an application to the job
func (v *ProfileView) HasApplied(jobID kernel.JobID) bool {
	for _, a := range v.AppliedJobs {
		if a.JobID == jobID {
			return true
		}
	}
	return false
}

// Applicant is one row of a job's applicant list
type Applicant struct {
	UserID       kernel.UserID `json:"userId"`
	FullName     string        `json:"fullName"`
	Email        kernel.Email  `json:"email"`
	ContactEmail kernel.Email  `json:"contactEmail"`
	Contact      string        `json:"contact"`
	Resume       *Resume       `json:"resume,omitempty"`
	AppliedAt    time.Time     `json:"appliedAt"`
}

// IsOwnedBy checks the resume belongs to the profile
func (r *Resume) IsOwnedBy(p *UserProfile) bool {
	return p != nil && r.ProfileID == p.ID
}
