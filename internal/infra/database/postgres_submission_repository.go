package database

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	"lesson_planning_bot/internal/domain/submission"

	"github.com/lib/pq"
)

// PostgresSubmissionRepository keeps an audit trail of submission attempts.
type PostgresSubmissionRepository struct {
	db *sql.DB
}

func NewPostgresSubmissionRepository(db *sql.DB) *PostgresSubmissionRepository {
	return &PostgresSubmissionRepository{db: db}
}

// periodKeysArg binds keys as a Postgres array. A nil slice would bind as
// NULL, which period_keys rejects.
func periodKeysArg(keys []string) driver.Valuer {
	if keys == nil {
		keys = []string{}
	}
	return pq.StringArray(keys)
}

func (r *PostgresSubmissionRepository) Record(ctx context.Context, a *submission.Attempt) error {
	query := `INSERT INTO submission_attempts
               (id, chat_id, respondent_name, subject, period_keys, files_uploaded, messages_sent, status, error_message, started_at, finished_at)
               VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.ExecContext(ctx, query,
		a.ID, a.ChatID, a.RespondentName, a.Subject, periodKeysArg(a.PeriodKeys),
		a.FilesUploaded, a.MessagesSent, string(a.Status), a.Error, a.StartedAt, a.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("error recording submission attempt: %w", err)
	}
	return nil
}

func (r *PostgresSubmissionRepository) ListRecent(ctx context.Context, limit int) ([]*submission.Attempt, error) {
	query := `SELECT id, chat_id, respondent_name, subject, period_keys, files_uploaded, messages_sent, status, error_message, started_at, finished_at
               FROM submission_attempts ORDER BY started_at DESC LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing submission attempts: %w", err)
	}
	defer rows.Close()

	attempts := make([]*submission.Attempt, 0, limit)
	for rows.Next() {
		a := &submission.Attempt{}
		var status string
		if err := rows.Scan(&a.ID, &a.ChatID, &a.RespondentName, &a.Subject, pq.Array(&a.PeriodKeys),
			&a.FilesUploaded, &a.MessagesSent, &status, &a.Error, &a.StartedAt, &a.FinishedAt); err != nil {
			return nil, fmt.Errorf("error scanning submission attempt: %w", err)
		}
		a.Status = submission.Status(status)
		attempts = append(attempts, a)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating submission attempts: %w", err)
	}
	return attempts, nil
}
