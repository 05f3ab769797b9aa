package category

import (
	"context"

	"github.com/Abraxas-365/jobboard/pkg/kernel"
)

type Repository interface {
	// Create inserts a category, failing with a conflict on duplicate names
	Create(ctx context.Context, c *Category) error

	// GetByID retrieves a category by ID
	GetByID(ctx context.Context, id kernel.CategoryID) (*Category, error)

	// List returns every category ordered by name
	List(ctx context.Context) ([]Category, error)

	// EnsureNames inserts the names that do not exist yet and returns how many were added
	EnsureNames(ctx context.Context, names []string) (int, error)
}
