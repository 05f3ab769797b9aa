package jobinfra

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Abraxas-365/jobboard/board/category"
	"github.com/Abraxas-365/jobboard/board/company"
	"github.com/Abraxas-365/jobboard/board/job"
	"github.com/Abraxas-365/jobboard/pkg/errx"
	"github.com/Abraxas-365/jobboard/pkg/kernel"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
)

// PostgresJobRepository implements job.Repository using PostgreSQL
type PostgresJobRepository struct {
	db *sqlx.DB
}

// NewPostgresJobRepository creates a new PostgreSQL job repository
func NewPostgresJobRepository(db *sqlx.DB) *PostgresJobRepository {
	return &PostgresJobRepository{
		db: db,
	}
}

// ============================================================================
// Database Model
// ============================================================================

type jobModel struct {
	ID                string         `db:"id"`
	UserID            string         `db:"user_id"`
	Title             string         `db:"title"`
	Description       sql.NullString `db:"description"`
	ShortDescription  sql.NullString `db:"short_description"`
	ImageURL          sql.NullString `db:"image_url"`
	CategoryID        sql.NullString `db:"category_id"`
	CompanyID         sql.NullString `db:"company_id"`
	HourlyRate        sql.NullString `db:"hourly_rate"`
	ShiftTiming       sql.NullString `db:"shift_timing"`
	WorkMode          sql.NullString `db:"work_mode"`
	YearsOfExperience sql.NullString `db:"years_of_experience"`
	Tags              pq.StringArray `db:"tags"`
	IsPublished       bool           `db:"is_published"`
	SavedUsers        pq.StringArray `db:"saved_users"`
	CreatedAt         time.Time      `db:"created_at"`
	UpdatedAt         time.Time      `db:"updated_at"`
}

type companyRef struct {
	ID          sql.NullString `db:"id"`
	UserID      sql.NullString `db:"user_id"`
	Name        sql.NullString `db:"name"`
	Description sql.NullString `db:"description"`
	LogoURL     sql.NullString `db:"logo"`
	CoverImage  sql.NullString `db:"cover_image"`
	Website     sql.NullString `db:"website"`
	City        sql.NullString `db:"city"`
	State       sql.NullString `db:"state"`
	Overview    sql.NullString `db:"overview"`
	WhyJoinUs   sql.NullString `db:"why_join_us"`
}

type categoryRef struct {
	ID   sql.NullString `db:"id"`
	Name sql.NullString `db:"name"`
}

type jobDetailsRow struct {
	jobModel
	Company  companyRef  `db:"company"`
	Category categoryRef `db:"category"`
}

const jobColumns = `
	j.id, j.user_id, j.title, j.description, j.short_description, j.image_url,
	j.category_id, j.company_id, j.hourly_rate, j.shift_timing, j.work_mode,
	j.years_of_experience, j.tags, j.is_published, j.saved_users, j.created_at, j.updated_at
`

const detailsSelect = `
	SELECT ` + jobColumns + `,
		c.id AS "company.id", c.user_id AS "company.user_id", c.name AS "company.name",
		c.description AS "company.description", c.logo AS "company.logo",
		c.cover_image AS "company.cover_image", c.website AS "company.website",
		c.city AS "company.city", c.state AS "company.state",
		c.overview AS "company.overview", c.why_join_us AS "company.why_join_us",
		cat.id AS "category.id", cat.name AS "category.name"
	FROM jobs j
	LEFT JOIN companies c ON c.id = j.company_id
	LEFT JOIN categories cat ON cat.id = j.category_id
`

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullableID[T ~string](id *T) sql.NullString {
	if id == nil {
		return sql.NullString{}
	}
	return nullable(string(*id))
}

func idPtr[T ~string](s sql.NullString) *T {
	if !s.Valid || s.String == "" {
		return nil
	}
	id := T(s.String)
	return &id
}

// toEntity converts database model to domain entity
func (m *jobModel) toEntity() *job.Job {
	saved := make([]kernel.UserID, 0, len(m.SavedUsers))
	for _, u := range m.SavedUsers {
		saved = append(saved, kernel.UserID(u))
	}

	tags := []string(m.Tags)
	if tags == nil {
		tags = []string{}
	}

	return &job.Job{
		ID:                kernel.JobID(m.ID),
		UserID:            kernel.UserID(m.UserID),
		Title:             kernel.JobTitle(m.Title),
		Description:       kernel.JobDescription(m.Description.String),
		ShortDescription:  m.ShortDescription.String,
		ImageURL:          m.ImageURL.String,
		CategoryID:        idPtr[kernel.CategoryID](m.CategoryID),
		CompanyID:         idPtr[kernel.CompanyID](m.CompanyID),
		HourlyRate:        m.HourlyRate.String,
		ShiftTiming:       kernel.ShiftTiming(m.ShiftTiming.String),
		WorkMode:          kernel.WorkMode(m.WorkMode.String),
		YearsOfExperience: kernel.ExperienceBracket(m.YearsOfExperience.String),
		Tags:              tags,
		IsPublished:       m.IsPublished,
		SavedUsers:        saved,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

// fromEntity converts domain entity to database model
func fromEntity(j *job.Job) *jobModel {
	saved := make(pq.StringArray, 0, len(j.SavedUsers))
	for _, u := range j.SavedUsers {
		saved = append(saved, u.String())
	}

	tags := pq.StringArray(j.Tags)
	if tags == nil {
		tags = pq.StringArray{}
	}

	return &jobModel{
		ID:                j.ID.String(),
		UserID:            j.UserID.String(),
		Title:             string(j.Title),
		Description:       nullable(string(j.Description)),
		ShortDescription:  nullable(j.ShortDescription),
		ImageURL:          nullable(j.ImageURL),
		CategoryID:        nullableID(j.CategoryID),
		CompanyID:         nullableID(j.CompanyID),
		HourlyRate:        nullable(j.HourlyRate),
		ShiftTiming:       nullable(string(j.ShiftTiming)),
		WorkMode:          nullable(string(j.WorkMode)),
		YearsOfExperience: nullable(string(j.YearsOfExperience)),
		Tags:              tags,
		IsPublished:       j.IsPublished,
		SavedUsers:        saved,
		CreatedAt:         j.CreatedAt,
		UpdatedAt:         j.UpdatedAt,
	}
}

func (r *jobDetailsRow) toDetails() job.JobDetails {
	details := job.JobDetails{Job: *r.jobModel.toEntity()}

	if r.Company.ID.Valid {
		details.Company = &company.Company{
			ID:          kernel.CompanyID(r.Company.ID.String),
			UserID:      kernel.UserID(r.Company.UserID.String),
			Name:        r.Company.Name.String,
			Description: r.Company.Description.String,
			LogoURL:     r.Company.LogoURL.String,
			CoverImage:  r.Company.CoverImage.String,
			Website:     r.Company.Website.String,
			City:        r.Company.City.String,
			State:       r.Company.State.String,
			Overview:    r.Company.Overview.String,
			WhyJoinUs:   r.Company.WhyJoinUs.String,
		}
	}

	if r.Category.ID.Valid {
		details.Category = &category.Category{
			ID:   kernel.CategoryID(r.Category.ID.String),
			Name: r.Category.Name.String,
		}
	}

	return details
}

func toDetailsList(rows []jobDetailsRow) []job.JobDetails {
	out := make([]job.JobDetails, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toDetails())
	}
	return out
}

// ============================================================================
// Repository Implementation
// ============================================================================

// Create creates a new job
func (r *PostgresJobRepository) Create(ctx context.Context, jobEntity *job.Job) error {
	query := `
		INSERT INTO jobs (
			id, user_id, title, description, short_description, image_url,
			category_id, company_id, hourly_rate, shift_timing, work_mode,
			years_of_experience, tags, is_published, saved_users, created_at, updated_at
		) VALUES (
			:id, :user_id, :title, :description, :short_description, :image_url,
			:category_id, :company_id, :hourly_rate, :shift_timing, :work_mode,
			:years_of_experience, :tags, :is_published, :saved_users, :created_at, :updated_at
		)
	`

	if _, err := r.db.NamedExecContext(ctx, query, fromEntity(jobEntity)); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return job.ErrInvalidRequest().WithDetail("reason", "unknown company or category")
		}
		return errx.Wrap(err, "failed to create job", errx.TypeInternal)
	}

	return nil
}

// Update updates the editable fields of a job owned by jobEntity.UserID.
// The saved-by set is only changed through the dedicated methods.
func (r *PostgresJobRepository) Update(ctx context.Context, jobEntity *job.Job) error {
	query := `
		UPDATE jobs SET
			title = :title,
			description = :description,
			short_description = :short_description,
			image_url = :image_url,
			category_id = :category_id,
			company_id = :company_id,
			hourly_rate = :hourly_rate,
			shift_timing = :shift_timing,
			work_mode = :work_mode,
			years_of_experience = :years_of_experience,
			tags = :tags,
			is_published = :is_published,
			updated_at = :updated_at
		WHERE id = :id AND user_id = :user_id
	`

	result, err := r.db.NamedExecContext(ctx, query, fromEntity(jobEntity))
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return job.ErrInvalidRequest().WithDetail("reason", "unknown company or category")
		}
		return errx.Wrap(err, "failed to update job", errx.TypeInternal)
	}

	return expectOneRow(result, jobEntity.ID)
}

// GetByID retrieves a job by ID
func (r *PostgresJobRepository) GetByID(ctx context.Context, id kernel.JobID) (*job.Job, error) {
	var model jobModel
	query := `SELECT ` + jobColumns + ` FROM jobs j WHERE j.id = $1`

	if err := r.db.GetContext(ctx, &model, query, id.String()); err != nil {
		if err == sql.ErrNoRows {
			return nil, job.ErrJobNotFound().WithDetail("job_id", id.String())
		}
		return nil, errx.Wrap(err, "failed to get job", errx.TypeInternal)
	}

	return model.toEntity(), nil
}

// GetDetails retrieves a job with its company and category
func (r *PostgresJobRepository) GetDetails(ctx context.Context, id kernel.JobID) (*job.JobDetails, error) {
	var row jobDetailsRow
	if err := r.db.GetContext(ctx, &row, detailsSelect+` WHERE j.id = $1`, id.String()); err != nil {
		if err == sql.ErrNoRows {
			return nil, job.ErrJobNotFound().WithDetail("job_id", id.String())
		}
		return nil, errx.Wrap(err, "failed to get job", errx.TypeInternal)
	}

	details := row.toDetails()
	return &details, nil
}

// Delete deletes a job owned by userID
func (r *PostgresJobRepository) Delete(ctx context.Context, id kernel.JobID, userID kernel.UserID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM jobs WHERE id = $1 AND user_id = $2`, id.String(), userID.String())
	if err != nil {
		return errx.Wrap(err, "failed to delete job", errx.TypeInternal)
	}
	return expectOneRow(result, id)
}

// Search runs the filter query
func (r *PostgresJobRepository) Search(ctx context.Context, q job.Query) ([]job.JobDetails, error) {
	where, args := buildSearchWhere(q)
	query := detailsSelect + where + ` ORDER BY j.created_at DESC`

	var rows []jobDetailsRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errx.Wrap(err, "failed to search jobs", errx.TypeInternal)
	}
	return toDetailsList(rows), nil
}

// ListByUserID retrieves jobs posted by a user
func (r *PostgresJobRepository) ListByUserID(ctx context.Context, userID kernel.UserID) ([]job.JobDetails, error) {
	var rows []jobDetailsRow
	query := detailsSelect + ` WHERE j.user_id = $1 ORDER BY j.created_at DESC`

	if err := r.db.SelectContext(ctx, &rows, query, userID.String()); err != nil {
		return nil, errx.Wrap(err, "failed to list jobs by user", errx.TypeInternal)
	}
	return toDetailsList(rows), nil
}

// ListSavedBy retrieves jobs saved by a user
func (r *PostgresJobRepository) ListSavedBy(ctx context.Context, userID kernel.UserID) ([]job.JobDetails, error) {
	var rows []jobDetailsRow
	query := detailsSelect + ` WHERE $1 = ANY(j.saved_users) ORDER BY j.created_at DESC`

	if err := r.db.SelectContext(ctx, &rows, query, userID.String()); err != nil {
		return nil, errx.Wrap(err, "failed to list saved jobs", errx.TypeInternal)
	}
	return toDetailsList(rows), nil
}

// ToggleSaved flips membership in one statement so concurrent toggles never duplicate entries
func (r *PostgresJobRepository) ToggleSaved(ctx context.Context, id kernel.JobID, userID kernel.UserID) (bool, error) {
	query := `
		UPDATE jobs SET
			saved_users = CASE
				WHEN $2::text = ANY(saved_users) THEN array_remove(saved_users, $2::text)
				ELSE array_append(saved_users, $2::text)
			END,
			updated_at = NOW()
		WHERE id = $1
		RETURNING $2::text = ANY(saved_users)
	`

	var saved bool
	if err := r.db.GetContext(ctx, &saved, query, id.String(), userID.String()); err != nil {
		if err == sql.ErrNoRows {
			return false, job.ErrJobNotFound().WithDetail("job_id", id.String())
		}
		return false, errx.Wrap(err, "failed to toggle saved job", errx.TypeInternal)
	}
	return saved, nil
}

// AddSavedUser adds the user to the saved-by set
func (r *PostgresJobRepository) AddSavedUser(ctx context.Context, id kernel.JobID, userID kernel.UserID) error {
	query := `
		UPDATE jobs SET
			saved_users = CASE
				WHEN $2::text = ANY(saved_users) THEN saved_users
				ELSE array_append(saved_users, $2::text)
			END,
			updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id.String(), userID.String())
	if err != nil {
		return errx.Wrap(err, "failed to save job", errx.TypeInternal)
	}
	return expectOneRow(result, id)
}

// RemoveSavedUser removes the user from the saved-by set
func (r *PostgresJobRepository) RemoveSavedUser(ctx context.Context, id kernel.JobID, userID kernel.UserID) error {
	query := `
		UPDATE jobs SET
			saved_users = array_remove(saved_users, $2::text),
			updated_at = NOW()
		WHERE id = $1 AND $2::text = ANY(saved_users)
	`

	result, err := r.db.ExecContext(ctx, query, id.String(), userID.String())
	if err != nil {
		return errx.Wrap(err, "failed to remove saved job", errx.TypeInternal)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errx.Wrap(err, "failed to get rows affected", errx.TypeInternal)
	}
	if rows > 0 {
		return nil
	}

	// Nothing removed: either the job is missing or the user never saved it
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return job.ErrNotSaved().WithDetail("job_id", id.String())
}

// SetPublished flips the published flag of a job owned by userID
func (r *PostgresJobRepository) SetPublished(ctx context.Context, id kernel.JobID, userID kernel.UserID, published bool) error {
	query := `UPDATE jobs SET is_published = $3, updated_at = NOW() WHERE id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, id.String(), userID.String(), published)
	if err != nil {
		return errx.Wrap(err, "failed to change job visibility", errx.TypeInternal)
	}
	return expectOneRow(result, id)
}

// UpdateEmbedding stores the similarity vector of a job
func (r *PostgresJobRepository) UpdateEmbedding(ctx context.Context, id kernel.JobID, embedding []float32) error {
	query := `UPDATE jobs SET embedding = $2 WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id.String(), pgvector.NewVector(embedding))
	if err != nil {
		return errx.Wrap(err, "failed to update job embedding", errx.TypeInternal)
	}
	return expectOneRow(result, id)
}

// ListSimilar returns published jobs ordered by cosine distance to the job's embedding
func (r *PostgresJobRepository) ListSimilar(ctx context.Context, id kernel.JobID, limit int) ([]job.JobDetails, error) {
	query := detailsSelect + `
		CROSS JOIN (SELECT embedding FROM jobs WHERE id = $1) src
		WHERE j.is_published = TRUE
			AND j.id <> $1
			AND j.embedding IS NOT NULL
			AND src.embedding IS NOT NULL
		ORDER BY j.embedding <=> src.embedding
		LIMIT $2
	`

	var rows []jobDetailsRow
	if err := r.db.SelectContext(ctx, &rows, query, id.String(), limit); err != nil {
		return nil, errx.Wrap(err, "failed to list similar jobs", errx.TypeInternal)
	}
	return toDetailsList(rows), nil
}

func expectOneRow(result sql.Result, id kernel.JobID) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return errx.Wrap(err, "failed to get rows affected", errx.TypeInternal)
	}
	if rows == 0 {
		return job.ErrJobNotFound().WithDetail("job_id", id.String())
	}
	return nil
}

// ============================================================================
// Query Rendering
// ============================================================================

// buildSearchWhere renders a job.Query as a parameterized WHERE clause over alias j
func buildSearchWhere(q job.Query) (string, []any) {
	whereConditions := []string{}
	args := []any{}
	argCount := 1

	add := func(format string, value any) {
		whereConditions = append(whereConditions, fmt.Sprintf(format, argCount))
		args = append(args, value)
		argCount++
	}

	if q.Published {
		whereConditions = append(whereConditions, "j.is_published = TRUE")
	}
	if q.TitleContains != "" {
		add("j.title ILIKE $%d", "%"+escapeLike(q.TitleContains)+"%")
	}
	if q.CategoryID != "" {
		add("j.category_id = $%d", q.CategoryID.String())
	}
	if q.ShiftTiming != "" {
		add("j.shift_timing = $%d", string(q.ShiftTiming))
	}
	if q.WorkMode != "" {
		add("j.work_mode = $%d", string(q.WorkMode))
	}
	if q.YearsOfExperience != "" {
		add("j.years_of_experience = $%d", string(q.YearsOfExperience))
	}
	if q.CreatedBetween != nil {
		add("j.created_at >= $%d", q.CreatedBetween.From)
		add("j.created_at <= $%d", q.CreatedBetween.To)
	}

	whereClause := ""
	if len(whereConditions) > 0 {
		whereClause = " WHERE " + whereConditions[0]
		for i := 1; i < len(whereConditions); i++ {
			whereClause += " AND " + whereConditions[i]
		}
	}

	return whereClause, args
}

// escapeLike escapes LIKE wildcards so titles are matched literally
func escapeLike(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r == '%' || r == '_' || r == '\\' {
			out = append(out, '\\')
		}
		out = append(out, r)
	}
	return string(out)
}
