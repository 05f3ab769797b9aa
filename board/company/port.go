package company

import (
	"context"

	"github.com/Abraxas-365/jobboard/pkg/kernel"
)

type Repository interface {
	// Create creates a new company
	Create(ctx context.Context, c *Company) error

	// Update updates a company, scoped to its owner
	Update(ctx context.Context, c *Company) error

	// GetByID retrieves a company by ID
	GetByID(ctx context.Context, id kernel.CompanyID) (*Company, error)

	// Delete removes a company owned by userID
	Delete(ctx context.Context, id kernel.CompanyID, userID kernel.UserID) error

	// ListByUserID returns the companies created by a user, newest first
	ListByUserID(ctx context.Context, userID kernel.UserID) ([]Company, error)
}
