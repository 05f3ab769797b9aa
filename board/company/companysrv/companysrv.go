package companysrv

import (
	"context"
	"strings"
	"time"

	"github.com/Abraxas-365/jobboard/board/company"
	"github.com/Abraxas-365/jobboard/pkg/kernel"
	"github.com/google/uuid"
)

// CompanyService provides business operations for companies
type CompanyService struct {
	repo company.Repository
}

func NewCompanyService(repo company.Repository) *CompanyService {
	return &CompanyService{repo: repo}
}

// CreateCompany creates a company owned by userID
func (s *CompanyService) CreateCompany(ctx context.Context, userID kernel.UserID, req company.CreateCompanyRequest) (*company.Company, error) {
	if userID.IsEmpty() {
		return nil, company.ErrUnauthorized()
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, company.ErrInvalidName()
	}

	now := time.Now()
	c := &company.Company{
		ID:        kernel.NewCompanyID(uuid.NewString()),
		UserID:    userID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// UpdateCompany applies a partial update. Companies owned by someone else are reported as not found.
func (s *CompanyService) UpdateCompany(ctx context.Context, userID kernel.UserID, id kernel.CompanyID, req company.UpdateCompanyRequest) (*company.Company, error) {
	if userID.IsEmpty() {
		return nil, company.ErrUnauthorized()
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return nil, company.ErrInvalidName()
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !existing.IsOwnedBy(userID) {
		return nil, company.ErrCompanyNotFound().WithDetail("company_id", id.String())
	}

	existing.Apply(req)
	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// GetCompany retrieves a company by ID
func (s *CompanyService) GetCompany(ctx context.Context, id kernel.CompanyID) (*company.Company, error) {
	return s.repo.GetByID(ctx, id)
}

// ListUserCompanies lists the companies created by the user
func (s *CompanyService) ListUserCompanies(ctx context.Context, userID kernel.UserID) ([]company.Company, error) {
	if userID.IsEmpty() {
		return nil, company.ErrUnauthorized()
	}
	return s.repo.ListByUserID(ctx, userID)
}

// DeleteCompany deletes a company owned by the user
func (s *CompanyService) DeleteCompany(ctx context.Context, userID kernel.UserID, id kernel.CompanyID) error {
	if userID.IsEmpty() {
		return company.ErrUnauthorized()
	}
	return s.repo.Delete(ctx, id, userID)
}
