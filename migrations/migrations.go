// Package migrations holds the SQL schema as goose migrations.
package migrations

import (
	"context"
	"embed"
	"fmt"

	"github.com/Abraxas-365/jobboard/pkg/logx"
	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
)

//go:embed *.sql
var files embed.FS

// gooseLogger routes goose output through logx
type gooseLogger struct{}

func (gooseLogger) Printf(format string, v ...any) { logx.Infof(format, v...) }
func (gooseLogger) Fatalf(format string, v ...any) { logx.Fatalf(format, v...) }

func setup() error {
	goose.SetBaseFS(files)
	goose.SetLogger(gooseLogger{})
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	return nil
}

// Apply runs every pending migration
func Apply(ctx context.Context, db *sqlx.DB) error {
	if err := setup(); err != nil {
		return err
	}
	if err := goose.UpContext(ctx, db.DB, "."); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// Rollback reverts the most recent migration
func Rollback(ctx context.Context, db *sqlx.DB) error {
	if err := setup(); err != nil {
		return err
	}
	if err := goose.DownContext(ctx, db.DB, "."); err != nil {
		return fmt.Errorf("roll back migration: %w", err)
	}
	return nil
}

// Version reports the schema version recorded in the database
func Version(ctx context.Context, db *sqlx.DB) (int64, error) {
	if err := setup(); err != nil {
		return 0, err
	}
	return goose.GetDBVersionContext(ctx, db.DB)
}
