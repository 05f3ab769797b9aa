package job

// CreateJobRequest - DTO for creating a job; everything else is filled in through updates
type CreateJobRequest struct {
	Title string `json:"title"`
}

// UpdateJobRequest - DTO for a partial job update
type UpdateJobRequest struct {
	Title             *string   `json:"title,omitempty"`
	Description       *string   `json:"description,omitempty"`
	ShortDescription  *string   `json:"short_description,omitempty"`
	ImageURL          *string   `json:"imageUrl,omitempty"`
	CategoryID        *string   `json:"categoryId,omitempty"`
	CompanyID         *string   `json:"companyId,omitempty"`
	HourlyRate        *string   `json:"hourlyRate,omitempty"`
	ShiftTiming       *string   `json:"shiftTiming,omitempty"`
	WorkMode          *string   `json:"workMode,omitempty"`
	YearsOfExperience *string   `json:"yearsOfExperience,omitempty"`
	Tags              *[]string `json:"tags,omitempty"`
}

// SaveToggleResponse - result of toggling a job in the saved collection
type SaveToggleResponse struct {
	Job   *Job `json:"job"`
	Saved bool `json:"saved"`
}
