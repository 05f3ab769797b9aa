package job

import (
	"strings"
	"time"

	"github.com/Abraxas-365/jobboard/board/category"
	"github.com/Abraxas-365/jobboard/board/company"
	"github.com/Abraxas-365/jobboard/internal/textx"
	"github.com/Abraxas-365/jobboard/pkg/kernel"
)

type Job struct {
	ID                kernel.JobID             `json:"id"`
	UserID            kernel.UserID            `json:"userId"`
	Title             kernel.JobTitle          `json:"title"`
	Description       kernel.JobDescription    `json:"description,omitempty"`
	ShortDescription  string                   `json:"short_description,omitempty"`
	ImageURL          string                   `json:"imageUrl,omitempty"`
	CategoryID        *kernel.CategoryID       `json:"categoryId,omitempty"`
	CompanyID         *kernel.CompanyID        `json:"companyId,omitempty"`
	HourlyRate        string                   `json:"hourlyRate,omitempty"`
	ShiftTiming       kernel.ShiftTiming       `json:"shiftTiming,omitempty"`
	WorkMode          kernel.WorkMode          `json:"workMode,omitempty"`
	YearsOfExperience kernel.ExperienceBracket `json:"yearsOfExperience,omitempty"`
	Tags              []string                 `json:"tags"`
	IsPublished       bool                     `json:"isPublished"`
	SavedUsers        []kernel.UserID          `json:"savedUsers"`
	CreatedAt         time.Time                `json:"createdAt"`
	UpdatedAt         time.Time                `json:"updatedAt"`
}

// JobDetails is a job together with its company and category
type JobDetails struct {
	Job
	Company  *company.Company   `json:"company,omitempty"`
	Category *category.Category `json:"category,omitempty"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// IsOwnedBy checks whether the user posted the job
func (j *Job) IsOwnedBy(userID kernel.UserID) bool {
	return !userID.IsEmpty() && j.UserID == userID
}

// IsSavedBy reports whether the user has the job in their saved collection
func (j *Job) IsSavedBy(userID kernel.UserID) bool {
	for _, id := range j.SavedUsers {
		if id == userID {
			return true
		}
	}
	return false
}

// Save adds the user to the saved-by set. It returns false if already present.
func (j *Job) Save(userID kernel.UserID) bool {
	if j.IsSavedBy(userID) {
		return false
	}
	j.SavedUsers = append(j.SavedUsers, userID)
	return true
}

// Unsave removes every occurrence of the user. It returns false if absent.
func (j *Job) Unsave(userID kernel.UserID) bool {
	kept := j.SavedUsers[:0]
	removed := false
	for _, id := range j.SavedUsers {
		if id == userID {
			removed = true
			continue
		}
		kept = append(kept, id)
	}
	j.SavedUsers = kept
	return removed
}

// ToggleSave flips the user's saved state and returns the new state
func (j *Job) ToggleSave(userID kernel.UserID) bool {
	if j.Unsave(userID) {
		return false
	}
	j.Save(userID)
	return true
}

// Publish makes the job visible to search
func (j *Job) Publish() {
	j.IsPublished = true
	j.UpdatedAt = time.Now()
}

// Unpublish hides the job from search
func (j *Job) Unpublish() {
	j.IsPublished = false
	j.UpdatedAt = time.Now()
}

// MergeTags appends tags not already present, comparing case-insensitively
func (j *Job) MergeTags(tags []string) {
	j.Tags = MergeTags(j.Tags, tags)
}

// MergeTags returns existing followed by the new, non-blank tags it lacks
func MergeTags(existing, incoming []string) []string {
	seen := make(map[string]struct{}, len(existing)+len(incoming))
	out := make([]string, 0, len(existing)+len(incoming))
	for _, list := range [][]string{existing, incoming} {
		for _, tag := range list {
			tag = strings.TrimSpace(tag)
			key := strings.ToLower(tag)
			if tag == "" {
				continue
			}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, tag)
		}
	}
	return out
}

// Apply copies the non-nil fields of the request onto the job
func (j *Job) Apply(req UpdateJobRequest) {
	if req.Title != nil {
		j.Title = kernel.JobTitle(strings.TrimSpace(*req.Title))
	}
	if req.Description != nil {
		j.Description = kernel.JobDescription(*req.Description)
	}
	if req.ShortDescription != nil {
		j.ShortDescription = *req.ShortDescription
	}
	if req.ImageURL != nil {
		j.ImageURL = *req.ImageURL
	}
	if req.CategoryID != nil {
		j.CategoryID = optionalID(kernel.CategoryID(CleanCategoryID(*req.CategoryID)))
	}
	if req.CompanyID != nil {
		j.CompanyID = optionalID(kernel.CompanyID(*req.CompanyID))
	}
	if req.HourlyRate != nil {
		j.HourlyRate = *req.HourlyRate
	}
	if req.ShiftTiming != nil {
		j.ShiftTiming = kernel.ShiftTiming(*req.ShiftTiming)
	}
	if req.WorkMode != nil {
		j.WorkMode = kernel.WorkMode(*req.WorkMode)
	}
	if req.YearsOfExperience != nil {
		j.YearsOfExperience = kernel.ExperienceBracket(*req.YearsOfExperience)
	}
	if req.Tags != nil {
		j.Tags = MergeTags(nil, *req.Tags)
	}
	if j.ShortDescription == "" && j.Description != "" {
		j.ShortDescription = textx.Excerpt(string(j.Description), shortDescriptionLen)
	}
	j.UpdatedAt = time.Now()
}

const shortDescriptionLen = 200

// EmbeddingText is the plain-text document used for similarity search
func (j *Job) EmbeddingText() string {
	parts := []string{string(j.Title)}
	if desc := textx.PlainText(string(j.Description)); desc != "" {
		parts = append(parts, desc)
	}
	if len(j.Tags) > 0 {
		parts = append(parts, strings.Join(j.Tags, ", "))
	}
	return strings.Join(parts, "\n")
}

func optionalID[T ~string](id T) *T {
	if id == "" {
		return nil
	}
	return &id
}
