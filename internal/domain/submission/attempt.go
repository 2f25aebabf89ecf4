package submission

import (
	"database/sql"
	"time"
)

// Attempt records one run of the submission procedure.
// Corresponds to the 'submission_attempts' table.
type Attempt struct {
	ID             string // uuid
	ChatID         int64
	RespondentName string
	Subject        string
	PeriodKeys     []string
	FilesUploaded  int
	MessagesSent   int
	Status         Status
	Error          sql.NullString
	StartedAt      time.Time
	FinishedAt     time.Time
}

// Duration is how long the attempt ran.
func (a *Attempt) Duration() time.Duration {
	if a.FinishedAt.IsZero() {
		return 0
	}
	return a.FinishedAt.Sub(a.StartedAt)
}
