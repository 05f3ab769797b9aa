package profile

// ApplyRequest - DTO for applying to a job
type ApplyRequest struct {
	JobID        string `json:"jobId"`
	ResumeID     string `json:"resumeId"`
	ContactEmail string `json:"contactEmail"`
}

// UpsertProfileRequest - DTO for creating or updating the caller's profile
type UpsertProfileRequest struct {
	FullName       *string `json:"fullName,omitempty"`
	Email          *string `json:"email,omitempty"`
	Contact        *string `json:"contact,omitempty"`
	ActiveResumeID *string `json:"activeResumeId,omitempty"`
}

// UploadResumeRequest - DTO for a resume upload
type UploadResumeRequest struct {
	Name        string
	FileName    string
	ContentType string
	Data        []byte
}
