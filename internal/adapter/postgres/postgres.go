// Package postgres opens the exam database and applies its schema
package postgres

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"gitlab.com/examproctor-2025.net/internal/config"
)

//go:embed schema.sql
var schemaSQL string

const uniqueViolation = "23505"

// Open connects and pings the database
func Open(ctx context.Context, cfg *config.PostgresConfig) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", cfg.Url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	return db, nil
}

// Migrate creates the schema and tables when missing. It is safe to run on every start.
func Migrate(ctx context.Context, db *sqlx.DB, schema string) error {
	if _, err := db.ExecContext(ctx, MigrationSQL(schema)); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

func MigrationSQL(schema string) string {
	return strings.ReplaceAll(schemaSQL, "{{schema}}", schema)
}

// IsUniqueViolation reports whether err is a duplicate key error
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
