package profileinfra

import (
	"context"
	"database/sql"
	"time"

	"github.com/Abraxas-365/jobboard/board/profile"
	"github.com/Abraxas-365/jobboard/pkg/errx"
	"github.com/Abraxas-365/jobboard/pkg/kernel"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// PostgresResumeRepository implements profile.ResumeRepository using PostgreSQL
type PostgresResumeRepository struct {
	db *sqlx.DB
}

// NewPostgresResumeRepository creates a new PostgreSQL resume repository
func NewPostgresResumeRepository(db *sqlx.DB) *PostgresResumeRepository {
	return &PostgresResumeRepository{
		db: db,
	}
}

type resumeModel struct {
	ID          string         `db:"id"`
	ProfileID   string         `db:"profile_id"`
	Name        string         `db:"name"`
	URL         string         `db:"url"`
	PreviewURL  sql.NullString `db:"preview_url"`
	StoragePath string         `db:"storage_path"`
	PreviewPath sql.NullString `db:"preview_path"`
	CreatedAt   time.Time      `db:"created_at"`
}

const resumeColumns = `id, profile_id, name, url, preview_url, storage_path, preview_path, created_at`

func (m *resumeModel) toEntity() *profile.Resume {
	return &profile.Resume{
		ID:          kernel.ResumeID(m.ID),
		ProfileID:   kernel.ProfileID(m.ProfileID),
		Name:        m.Name,
		URL:         m.URL,
		PreviewURL:  m.PreviewURL.String,
		StoragePath: m.StoragePath,
		PreviewPath: m.PreviewPath.String,
		CreatedAt:   m.CreatedAt,
	}
}

func fromResume(r *profile.Resume) *resumeModel {
	return &resumeModel{
		ID:          r.ID.String(),
		ProfileID:   r.ProfileID.String(),
		Name:        r.Name,
		URL:         r.URL,
		PreviewURL:  nullable(r.PreviewURL),
		StoragePath: r.StoragePath,
		PreviewPath: nullable(r.PreviewPath),
		CreatedAt:   r.CreatedAt,
	}
}

// Create stores a resume record
func (r *PostgresResumeRepository) Create(ctx context.Context, res *profile.Resume) error {
	query := `
		INSERT INTO resumes (` + resumeColumns + `)
		VALUES (:id, :profile_id, :name, :url, :preview_url, :storage_path, :preview_path, :created_at)
	`

	if _, err := r.db.NamedExecContext(ctx, query, fromResume(res)); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return profile.ErrProfileNotFound().WithDetail("profile_id", res.ProfileID.String())
		}
		return errx.Wrap(err, "failed to create resume", errx.TypeInternal)
	}
	return nil
}

// GetByID retrieves a resume by ID
func (r *PostgresResumeRepository) GetByID(ctx context.Context, id kernel.ResumeID) (*profile.Resume, error) {
	var model resumeModel
	query := `SELECT ` + resumeColumns + ` FROM resumes WHERE id = $1`

	if err := r.db.GetContext(ctx, &model, query, id.String()); err != nil {
		if err == sql.ErrNoRows {
			return nil, profile.ErrResumeNotFound().WithDetail("resume_id", id.String())
		}
		return nil, errx.Wrap(err, "failed to get resume", errx.TypeInternal)
	}
	return model.toEntity(), nil
}

// ListByProfile returns a profile's resumes, newest first
func (r *PostgresResumeRepository) ListByProfile(ctx context.Context, profileID kernel.ProfileID) ([]profile.Resume, error) {
	var models []resumeModel
	query := `SELECT ` + resumeColumns + ` FROM resumes WHERE profile_id = $1 ORDER BY created_at DESC`

	if err := r.db.SelectContext(ctx, &models, query, profileID.String()); err != nil {
		return nil, errx.Wrap(err, "failed to list resumes", errx.TypeInternal)
	}

	out := make([]profile.Resume, 0, len(models))
	for i := range models {
		out = append(out, *models[i].toEntity())
	}
	return out, nil
}

// Delete removes a resume record
func (r *PostgresResumeRepository) Delete(ctx context.Context, id kernel.ResumeID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM resumes WHERE id = $1`, id.String())
	if err != nil {
		return errx.Wrap(err, "failed to delete resume", errx.TypeInternal)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errx.Wrap(err, "failed to get rows affected", errx.TypeInternal)
	}
	if rows == 0 {
		return profile.ErrResumeNotFound().WithDetail("resume_id", id.String())
	}
	return nil
}
