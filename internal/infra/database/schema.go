package database

import (
	"context"
	"database/sql"
	"fmt"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS teachers (
		id               BIGSERIAL PRIMARY KEY,
		telegram_id      BIGINT NOT NULL UNIQUE,
		full_name        TEXT NOT NULL,
		is_active        BOOLEAN NOT NULL DEFAULT TRUE,
		last_reminded_at TIMESTAMPTZ,
		created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS submission_attempts (
		id              UUID PRIMARY KEY,
		chat_id         BIGINT NOT NULL,
		respondent_name TEXT NOT NULL,
		subject         TEXT NOT NULL,
		period_keys     TEXT[] NOT NULL DEFAULT '{}',
		files_uploaded  INTEGER NOT NULL DEFAULT 0,
		messages_sent   INTEGER NOT NULL DEFAULT 0,
		status          TEXT NOT NULL,
		error_message   TEXT,
		started_at      TIMESTAMPTZ NOT NULL,
		finished_at     TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS submission_attempts_started_at_idx ON submission_attempts (started_at DESC)`,
}

// EnsureSchema creates the tables the bot needs if they are missing.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
