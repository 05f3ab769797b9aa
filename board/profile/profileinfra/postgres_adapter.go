package profileinfra

import (
	"context"
	"database/sql"
	"time"

	"github.com/Abraxas-365/jobboard/board/profile"
	"github.com/Abraxas-365/jobboard/pkg/errx"
	"github.com/Abraxas-365/jobboard/pkg/kernel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// PostgresProfileRepository implements profile.Repository using PostgreSQL
type PostgresProfileRepository struct {
	db *sqlx.DB
}

// NewPostgresProfileRepository creates a new PostgreSQL profile repository
func NewPostgresProfileRepository(db *sqlx.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{
		db: db,
	}
}

// ============================================================================
// Database Models
// ============================================================================

type profileModel struct {
	ID             string         `db:"id"`
	UserID         string         `db:"user_id"`
	FullName       sql.NullString `db:"full_name"`
	Email          sql.NullString `db:"email"`
	Contact        sql.NullString `db:"contact"`
	ActiveResumeID sql.NullString `db:"active_resume_id"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
}

type appliedJobModel struct {
	ID           string         `db:"id"`
	UserID       string         `db:"user_id"`
	JobID        string         `db:"job_id"`
	ResumeID     sql.NullString `db:"resume_id"`
	ContactEmail string         `db:"contact_email"`
	AppliedAt    time.Time      `db:"applied_at"`
}

type applicantRow struct {
	UserID       string         `db:"user_id"`
	FullName     sql.NullString `db:"full_name"`
	Email        sql.NullString `db:"email"`
	Contact      sql.NullString `db:"contact"`
	ContactEmail string         `db:"contact_email"`
	AppliedAt    time.Time      `db:"applied_at"`
	Resume       resumeRef      `db:"resume"`
}

type resumeRef struct {
	ID         sql.NullString `db:"id"`
	ProfileID  sql.NullString `db:"profile_id"`
	Name       sql.NullString `db:"name"`
	URL        sql.NullString `db:"url"`
	PreviewURL sql.NullString `db:"preview_url"`
	CreatedAt  sql.NullTime   `db:"created_at"`
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func (m *profileModel) toEntity() *profile.UserProfile {
	p := &profile.UserProfile{
		ID:        kernel.ProfileID(m.ID),
		UserID:    kernel.UserID(m.UserID),
		FullName:  m.FullName.String,
		Email:     kernel.Email(m.Email.String),
		Contact:   m.Contact.String,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if m.ActiveResumeID.Valid && m.ActiveResumeID.String != "" {
		id := kernel.ResumeID(m.ActiveResumeID.String)
		p.ActiveResumeID = &id
	}
	return p
}

func fromProfile(p *profile.UserProfile) *profileModel {
	m := &profileModel{
		ID:        p.ID.String(),
		UserID:    p.UserID.String(),
		FullName:  nullable(p.FullName),
		Email:     nullable(p.Email.String()),
		Contact:   nullable(p.Contact),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	if p.ActiveResumeID != nil {
		m.ActiveResumeID = nullable(p.ActiveResumeID.String())
	}
	return m
}

func (m *appliedJobModel) toEntity() profile.AppliedJob {
	return profile.AppliedJob{
		ID:           kernel.AppliedJobID(m.ID),
		UserID:       kernel.UserID(m.UserID),
		JobID:        kernel.JobID(m.JobID),
		ResumeID:     kernel.ResumeID(m.ResumeID.String),
		ContactEmail: kernel.Email(m.ContactEmail),
		AppliedAt:    m.AppliedAt,
	}
}

func (r *applicantRow) toEntity() profile.Applicant {
	a := profile.Applicant{
		UserID:       kernel.UserID(r.UserID),
		FullName:     r.FullName.String,
		Email:        kernel.Email(r.Email.String),
		ContactEmail: kernel.Email(r.ContactEmail),
		Contact:      r.Contact.String,
		AppliedAt:    r.AppliedAt,
	}
	if r.Resume.ID.Valid {
		a.Resume = &profile.Resume{
			ID:         kernel.ResumeID(r.Resume.ID.String),
			ProfileID:  kernel.ProfileID(r.Resume.ProfileID.String),
			Name:       r.Resume.Name.String,
			URL:        r.Resume.URL.String,
			PreviewURL: r.Resume.PreviewURL.String,
			CreatedAt:  r.Resume.CreatedAt.Time,
		}
	}
	return a
}

// ============================================================================
// Repository Implementation
// ============================================================================

// GetByUserID retrieves a profile by its external user ID
func (r *PostgresProfileRepository) GetByUserID(ctx context.Context, userID kernel.UserID) (*profile.UserProfile, error) {
	var model profileModel
	query := `
		SELECT id, user_id, full_name, email, contact, active_resume_id, created_at, updated_at
		FROM user_profiles
		WHERE user_id = $1
	`

	if err := r.db.GetContext(ctx, &model, query, userID.String()); err != nil {
		if err == sql.ErrNoRows {
			return nil, profile.ErrProfileNotFound().WithDetail("user_id", userID.String())
		}
		return nil, errx.Wrap(err, "failed to get profile", errx.TypeInternal)
	}

	return model.toEntity(), nil
}

// Upsert inserts the profile or updates the one with the same user ID
func (r *PostgresProfileRepository) Upsert(ctx context.Context, p *profile.UserProfile) error {
	query := `
		INSERT INTO user_profiles (
			id, user_id, full_name, email, contact, active_resume_id, created_at, updated_at
		) VALUES (
			:id, :user_id, :full_name, :email, :contact, :active_resume_id, :created_at, :updated_at
		)
		ON CONFLICT (user_id) DO UPDATE SET
			full_name = EXCLUDED.full_name,
			email = EXCLUDED.email,
			contact = EXCLUDED.contact,
			active_resume_id = EXCLUDED.active_resume_id,
			updated_at = EXCLUDED.updated_at
	`

	if _, err := r.db.NamedExecContext(ctx, query, fromProfile(p)); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return profile.ErrResumeNotFound().WithDetail("profile_id", p.ID.String())
		}
		return errx.Wrap(err, "failed to upsert profile", errx.TypeInternal)
	}
	return nil
}

// RecordApplication writes the contact email onto the profile and inserts the
// application unless (user_id, job_id) already exists, in one transaction
func (r *PostgresProfileRepository) RecordApplication(ctx context.Context, applied *profile.AppliedJob) (bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, profile.ErrRegistry.NewWithCause(profile.CodeStorageFailure, err).
			WithDetail("operation", "begin_transaction")
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO user_profiles (id, user_id, email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)
		ON CONFLICT (user_id) DO UPDATE SET
			email = EXCLUDED.email,
			updated_at = EXCLUDED.updated_at
	`, uuid.NewString(), applied.UserID.String(), applied.ContactEmail.String(), applied.AppliedAt)
	if err != nil {
		return false, profile.ErrRegistry.NewWithCause(profile.CodeStorageFailure, err).
			WithDetail("user_id", applied.UserID.String()).
			WithDetail("operation", "upsert_contact_email")
	}

	result, err := tx.ExecContext(ctx, `
		INSERT INTO applied_jobs (id, user_id, job_id, resume_id, contact_email, applied_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, job_id) DO NOTHING
	`, applied.ID.String(), applied.UserID.String(), applied.JobID.String(),
		nullable(applied.ResumeID.String()), applied.ContactEmail.String(), applied.AppliedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return false, profile.ErrJobNotApplicable().WithDetail("job_id", applied.JobID.String())
		}
		return false, profile.ErrRegistry.NewWithCause(profile.CodeStorageFailure, err).
			WithDetail("job_id", applied.JobID.String()).
			WithDetail("operation", "insert_application")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, profile.ErrRegistry.NewWithCause(profile.CodeStorageFailure, err)
	}

	if err := tx.Commit(); err != nil {
		return false, profile.ErrRegistry.NewWithCause(profile.CodeStorageFailure, err).
			WithDetail("operation", "commit")
	}
	return rows > 0, nil
}

// ListAppliedJobs returns the user's applications, newest first
func (r *PostgresProfileRepository) ListAppliedJobs(ctx context.Context, userID kernel.UserID) ([]profile.AppliedJob, error) {
	var models []appliedJobModel
	query := `
		SELECT id, user_id, job_id, resume_id, contact_email, applied_at
		FROM applied_jobs
		WHERE user_id = $1
		ORDER BY applied_at DESC
	`

	if err := r.db.SelectContext(ctx, &models, query, userID.String()); err != nil {
		return nil, errx.Wrap(err, "failed to list applied jobs", errx.TypeInternal)
	}

	out := make([]profile.AppliedJob, 0, len(models))
	for i := range models {
		out = append(out, models[i].toEntity())
	}
	return out, nil
}

// ListApplicants returns the applicants of a job with the resume they applied with
func (r *PostgresProfileRepository) ListApplicants(ctx context.Context, jobID kernel.JobID) ([]profile.Applicant, error) {
	var rows []applicantRow
	query := `
		SELECT
			a.user_id, p.full_name, p.email, p.contact, a.contact_email, a.applied_at,
			res.id AS "resume.id", res.profile_id AS "resume.profile_id", res.name AS "resume.name",
			res.url AS "resume.url", res.preview_url AS "resume.preview_url",
			res.created_at AS "resume.created_at"
		FROM applied_jobs a
		LEFT JOIN user_profiles p ON p.user_id = a.user_id
		LEFT JOIN resumes res ON res.id = a.resume_id
		WHERE a.job_id = $1
		ORDER BY a.applied_at DESC
	`

	if err := r.db.SelectContext(ctx, &rows, query, jobID.String()); err != nil {
		return nil, errx.Wrap(err, "failed to list applicants", errx.TypeInternal)
	}

	out := make([]profile.Applicant, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toEntity())
	}
	return out, nil
}
