// internal/repository/postgres/migrations.go
package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Migrate creates the schema if it does not exist yet. Statements are
// idempotent so running at every startup is safe.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id            TEXT PRIMARY KEY,
			username      TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			created_at    TIMESTAMPTZ NOT NULL,
			updated_at    TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS accounts (
			user_id    TEXT PRIMARY KEY REFERENCES users(id),
			funds      NUMERIC(20, 4) NOT NULL DEFAULT 0 CHECK (funds >= 0),
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS holdings (
			user_id    TEXT NOT NULL REFERENCES users(id),
			stock_code TEXT NOT NULL,
			name       TEXT NOT NULL DEFAULT '',
			quantity   NUMERIC(20, 4) NOT NULL DEFAULT 0 CHECK (quantity >= 0),
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL,
			PRIMARY KEY (user_id, stock_code)
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to run migration: %w", err)
		}
	}
	return nil
}
