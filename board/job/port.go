package job

import (
	"context"

	"github.com/Abraxas-365/jobboard/pkg/kernel"
)

type Repository interface {
	// Create creates a new job
	Create(ctx context.Context, job *Job) error

	// Update updates a job, scoped to its owner
	Update(ctx context.Context, job *Job) error

	// GetByID retrieves a job by ID
	GetByID(ctx context.Context, id kernel.JobID) (*Job, error)

	// GetDetails retrieves a job with its company and category
	GetDetails(ctx context.Context, id kernel.JobID) (*JobDetails, error)

	// Delete deletes a job owned by userID
	Delete(ctx context.Context, id kernel.JobID, userID kernel.UserID) error

	// Search returns the jobs matching the query with company and category, newest first
	Search(ctx context.Context, q Query) ([]JobDetails, error)

	// ListByUserID retrieves jobs posted by a user, newest first
	ListByUserID(ctx context.Context, userID kernel.UserID) ([]JobDetails, error)

	// ListSavedBy retrieves the jobs whose saved-by set contains the user
	ListSavedBy(ctx context.Context, userID kernel.UserID) ([]JobDetails, error)

	// ToggleSaved atomically adds or removes the user from the saved-by set and reports the new state
	ToggleSaved(ctx context.Context, id kernel.JobID, userID kernel.UserID) (bool, error)

	// AddSavedUser adds the user to the saved-by set; adding twice is a no-op
	AddSavedUser(ctx context.Context, id kernel.JobID, userID kernel.UserID) error

	// RemoveSavedUser removes the user from the saved-by set, failing with ErrNotSaved when absent
	RemoveSavedUser(ctx context.Context, id kernel.JobID, userID kernel.UserID) error

	// SetPublished flips the published flag of a job owned by userID
	SetPublished(ctx context.Context, id kernel.JobID, userID kernel.UserID, published bool) error

	// UpdateEmbedding stores the similarity vector of a job
	UpdateEmbedding(ctx context.Context, id kernel.JobID, embedding []float32) error

	// ListSimilar returns published jobs nearest to the given job's embedding
	ListSimilar(ctx context.Context, id kernel.JobID, limit int) ([]JobDetails, error)
}

// Embedder turns text into a similarity vector
type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}
