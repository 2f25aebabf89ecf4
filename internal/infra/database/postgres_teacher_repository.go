package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"lesson_planning_bot/internal/domain/teacher"

	"github.com/lib/pq"
)

// Custom errors
var ErrTeacherNotFound = fmt.Errorf("teacher not found")
var ErrDuplicateTelegramID = fmt.Errorf("teacher with this Telegram ID already exists")

const uniqueViolation = "23505"

const teacherColumns = `id, telegram_id, full_name, is_active, last_reminded_at, created_at, updated_at`

type PostgresTeacherRepository struct {
	db *sql.DB
}

func NewPostgresTeacherRepository(db *sql.DB) *PostgresTeacherRepository {
	return &PostgresTeacherRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTeacher(row rowScanner) (*teacher.Teacher, error) {
	t := &teacher.Teacher{}
	err := row.Scan(&t.ID, &t.TelegramID, &t.FullName, &t.IsActive, &t.LastRemindedAt, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *PostgresTeacherRepository) Create(ctx context.Context, t *teacher.Teacher) error {
	query := `INSERT INTO teachers (telegram_id, full_name, is_active)
               VALUES ($1, $2, $3)
               RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query, t.TelegramID, t.FullName, t.IsActive).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return ErrDuplicateTelegramID
		}
		return fmt.Errorf("error creating teacher: %w", err)
	}
	return nil
}

func (r *PostgresTeacherRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*teacher.Teacher, error) {
	query := `SELECT ` + teacherColumns + ` FROM teachers WHERE telegram_id = $1`
	t, err := scanTeacher(r.db.QueryRowContext(ctx, query, telegramID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeacherNotFound
		}
		return nil, fmt.Errorf("error getting teacher by Telegram ID: %w", err)
	}
	return t, nil
}

func (r *PostgresTeacherRepository) Update(ctx context.Context, t *teacher.Teacher) error {
	query := `UPDATE teachers
               SET full_name = $1, is_active = $2, updated_at = NOW()
               WHERE id = $3
               RETURNING updated_at`

	err := r.db.QueryRowContext(ctx, query, t.FullName, t.IsActive, t.ID).Scan(&t.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrTeacherNotFound
		}
		return fmt.Errorf("error updating teacher: %w", err)
	}
	return nil
}

func (r *PostgresTeacherRepository) MarkReminded(ctx context.Context, id int64, at time.Time) error {
	res, err := r.db.ExecContext(ctx, `UPDATE teachers SET last_reminded_at = $1 WHERE id = $2`, at, id)
	if err != nil {
		return fmt.Errorf("error marking teacher reminded: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrTeacherNotFound
	}
	return nil
}

func (r *PostgresTeacherRepository) ListActive(ctx context.Context) ([]*teacher.Teacher, error) {
	return r.list(ctx, `SELECT `+teacherColumns+` FROM teachers WHERE is_active = TRUE ORDER BY full_name`)
}

func (r *PostgresTeacherRepository) ListAll(ctx context.Context) ([]*teacher.Teacher, error) {
	return r.list(ctx, `SELECT `+teacherColumns+` FROM teachers ORDER BY id`)
}

func (r *PostgresTeacherRepository) list(ctx context.Context, query string) ([]*teacher.Teacher, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing teachers: %w", err)
	}
	defer rows.Close()

	teachers := make([]*teacher.Teacher, 0)
	for rows.Next() {
		t, err := scanTeacher(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning teacher: %w", err)
		}
		teachers = append(teachers, t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating teachers: %w", err)
	}
	return teachers, nil
}
