package categoryinfra

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Abraxas-365/jobboard/board/category"
	"github.com/Abraxas-365/jobboard/pkg/errx"
	"github.com/Abraxas-365/jobboard/pkg/kernel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// PostgresCategoryRepository implements category.Repository using PostgreSQL
type PostgresCategoryRepository struct {
	db *sqlx.DB
}

func NewPostgresCategoryRepository(db *sqlx.DB) *PostgresCategoryRepository {
	return &PostgresCategoryRepository{db: db}
}

func (r *PostgresCategoryRepository) Create(ctx context.Context, c *category.Category) error {
	query := `
		INSERT INTO categories (id, name, created_at, updated_at)
		VALUES (:id, :name, :created_at, :updated_at)
	`

	if _, err := r.db.NamedExecContext(ctx, query, c); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return category.ErrCategoryAlreadyExists().WithDetail("name", c.Name)
		}
		return errx.Wrap(err, "failed to create category", errx.TypeInternal)
	}
	return nil
}

func (r *PostgresCategoryRepository) GetByID(ctx context.Context, id kernel.CategoryID) (*category.Category, error) {
	var c category.Category
	err := r.db.GetContext(ctx, &c, `SELECT id, name, created_at, updated_at FROM categories WHERE id = $1`, id.String())
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, category.ErrCategoryNotFound().WithDetail("category_id", id.String())
		}
		return nil, errx.Wrap(err, "failed to get category", errx.TypeInternal)
	}
	return &c, nil
}

func (r *PostgresCategoryRepository) List(ctx context.Context) ([]category.Category, error) {
	categories := []category.Category{}
	err := r.db.SelectContext(ctx, &categories, `SELECT id, name, created_at, updated_at FROM categories ORDER BY name ASC`)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list categories", errx.TypeInternal)
	}
	return categories, nil
}

func (r *PostgresCategoryRepository) EnsureNames(ctx context.Context, names []string) (int, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, errx.Wrap(err, "failed to begin transaction", errx.TypeInternal)
	}
	defer tx.Rollback()

	now := time.Now()
	added := 0
	for _, name := range names {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO categories (id, name, created_at, updated_at)
			VALUES ($1, $2, $3, $3)
			ON CONFLICT (name) DO NOTHING
		`, uuid.NewString(), name, now)
		if err != nil {
			return 0, errx.Wrap(err, fmt.Sprintf("failed to insert category %q", name), errx.TypeInternal)
		}
		n, _ := res.RowsAffected()
		added += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, errx.Wrap(err, "failed to commit categories", errx.TypeInternal)
	}
	return added, nil
}
