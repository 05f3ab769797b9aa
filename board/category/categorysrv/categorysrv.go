package categorysrv

import (
	"context"
	"strings"
	"time"

	"github.com/Abraxas-365/jobboard/board/category"
	"github.com/Abraxas-365/jobboard/pkg/kernel"
	"github.com/google/uuid"
)

type CategoryService struct {
	repo category.Repository
}

func NewCategoryService(repo category.Repository) *CategoryService {
	return &CategoryService{repo: repo}
}

// ListCategories returns all categories ordered by name
func (s *CategoryService) ListCategories(ctx context.Context) ([]category.Category, error) {
	return s.repo.List(ctx)
}

// CreateCategory adds a new category
func (s *CategoryService) CreateCategory(ctx context.Context, name string) (*category.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, category.ErrInvalidName()
	}

	now := time.Now()
	c := &category.Category{
		ID:        kernel.NewCategoryID(uuid.NewString()),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// SeedDefaults inserts the default categories that are missing
func (s *CategoryService) SeedDefaults(ctx context.Context) (int, error) {
	return s.repo.EnsureNames(ctx, category.DefaultNames)
}
