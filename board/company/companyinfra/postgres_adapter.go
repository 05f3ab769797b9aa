package companyinfra

import (
	"context"
	"database/sql"
	"time"

	"github.com/Abraxas-365/jobboard/board/company"
	"github.com/Abraxas-365/jobboard/pkg/errx"
	"github.com/Abraxas-365/jobboard/pkg/kernel"
	"github.com/jmoiron/sqlx"
)

// PostgresCompanyRepository implements company.Repository using PostgreSQL
type PostgresCompanyRepository struct {
	db *sqlx.DB
}

func NewPostgresCompanyRepository(db *sqlx.DB) *PostgresCompanyRepository {
	return &PostgresCompanyRepository{db: db}
}

// ============================================================================
// Database Model
// ============================================================================

type companyModel struct {
	ID           string         `db:"id"`
	UserID       string         `db:"user_id"`
	Name         string         `db:"name"`
	Description  sql.NullString `db:"description"`
	LogoURL      sql.NullString `db:"logo"`
	CoverImage   sql.NullString `db:"cover_image"`
	Mail         sql.NullString `db:"mail"`
	Website      sql.NullString `db:"website"`
	LinkedIn     sql.NullString `db:"linked_in"`
	AddressLine1 sql.NullString `db:"address_line_1"`
	AddressLine2 sql.NullString `db:"address_line_2"`
	City         sql.NullString `db:"city"`
	State        sql.NullString `db:"state"`
	Zipcode      sql.NullString `db:"zipcode"`
	Overview     sql.NullString `db:"overview"`
	WhyJoinUs    sql.NullString `db:"why_join_us"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

const selectColumns = `
	id, user_id, name, description, logo, cover_image, mail, website, linked_in,
	address_line_1, address_line_2, city, state, zipcode, overview, why_join_us,
	created_at, updated_at
`

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func (m *companyModel) toEntity() *company.Company {
	return &company.Company{
		ID:           kernel.CompanyID(m.ID),
		UserID:       kernel.UserID(m.UserID),
		Name:         m.Name,
		Description:  m.Description.String,
		LogoURL:      m.LogoURL.String,
		CoverImage:   m.CoverImage.String,
		Mail:         m.Mail.String,
		Website:      m.Website.String,
		LinkedIn:     m.LinkedIn.String,
		AddressLine1: m.AddressLine1.String,
		AddressLine2: m.AddressLine2.String,
		City:         m.City.String,
		State:        m.State.String,
		Zipcode:      m.Zipcode.String,
		Overview:     m.Overview.String,
		WhyJoinUs:    m.WhyJoinUs.String,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func fromEntity(c *company.Company) *companyModel {
	return &companyModel{
		ID:           c.ID.String(),
		UserID:       c.UserID.String(),
		Name:         c.Name,
		Description:  nullable(c.Description),
		LogoURL:      nullable(c.LogoURL),
		CoverImage:   nullable(c.CoverImage),
		Mail:         nullable(c.Mail),
		Website:      nullable(c.Website),
		LinkedIn:     nullable(c.LinkedIn),
		AddressLine1: nullable(c.AddressLine1),
		AddressLine2: nullable(c.AddressLine2),
		City:         nullable(c.City),
		State:        nullable(c.State),
		Zipcode:      nullable(c.Zipcode),
		Overview:     nullable(c.Overview),
		WhyJoinUs:    nullable(c.WhyJoinUs),
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

// ============================================================================
// Repository Implementation
// ============================================================================

func (r *PostgresCompanyRepository) Create(ctx context.Context, c *company.Company) error {
	query := `
		INSERT INTO companies (
			id, user_id, name, description, logo, cover_image, mail, website, linked_in,
			address_line_1, address_line_2, city, state, zipcode, overview, why_join_us,
			created_at, updated_at
		) VALUES (
			:id, :user_id, :name, :description, :logo, :cover_image, :mail, :website, :linked_in,
			:address_line_1, :address_line_2, :city, :state, :zipcode, :overview, :why_join_us,
			:created_at, :updated_at
		)
	`

	if _, err := r.db.NamedExecContext(ctx, query, fromEntity(c)); err != nil {
		return errx.Wrap(err, "failed to create company", errx.TypeInternal)
	}
	return nil
}

func (r *PostgresCompanyRepository) Update(ctx context.Context, c *company.Company) error {
	query := `
		UPDATE companies SET
			name = :name, description = :description, logo = :logo, cover_image = :cover_image,
			mail = :mail, website = :website, linked_in = :linked_in,
			address_line_1 = :address_line_1, address_line_2 = :address_line_2,
			city = :city, state = :state, zipcode = :zipcode,
			overview = :overview, why_join_us = :why_join_us, updated_at = :updated_at
		WHERE id = :id AND user_id = :user_id
	`

	result, err := r.db.NamedExecContext(ctx, query, fromEntity(c))
	if err != nil {
		return errx.Wrap(err, "failed to update company", errx.TypeInternal)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errx.Wrap(err, "failed to get rows affected", errx.TypeInternal)
	}
	if rows == 0 {
		return company.ErrCompanyNotFound().WithDetail("company_id", c.ID.String())
	}
	return nil
}

func (r *PostgresCompanyRepository) GetByID(ctx context.Context, id kernel.CompanyID) (*company.Company, error) {
	var model companyModel
	err := r.db.GetContext(ctx, &model, `SELECT `+selectColumns+` FROM companies WHERE id = $1`, id.String())
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, company.ErrCompanyNotFound().WithDetail("company_id", id.String())
		}
		return nil, errx.Wrap(err, "failed to get company", errx.TypeInternal)
	}
	return model.toEntity(), nil
}

func (r *PostgresCompanyRepository) Delete(ctx context.Context, id kernel.CompanyID, userID kernel.UserID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM companies WHERE id = $1 AND user_id = $2`, id.String(), userID.String())
	if err != nil {
		return errx.Wrap(err, "failed to delete company", errx.TypeInternal)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errx.Wrap(err, "failed to get rows affected", errx.TypeInternal)
	}
	if rows == 0 {
		return company.ErrCompanyNotFound().WithDetail("company_id", id.String())
	}
	return nil
}

func (r *PostgresCompanyRepository) ListByUserID(ctx context.Context, userID kernel.UserID) ([]company.Company, error) {
	var models []companyModel
	query := `SELECT ` + selectColumns + ` FROM companies WHERE user_id = $1 ORDER BY created_at DESC`
	if err := r.db.SelectContext(ctx, &models, query, userID.String()); err != nil {
		return nil, errx.Wrap(err, "failed to list companies", errx.TypeInternal)
	}

	companies := make([]company.Company, 0, len(models))
	for i := range models {
		companies = append(companies, *models[i].toEntity())
	}
	return companies, nil
}
