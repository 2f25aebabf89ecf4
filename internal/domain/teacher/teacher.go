package teacher

import (
	"database/sql"
	"strings"
	"time"
)

// Teacher is someone who receives the monthly planning reminder.
type Teacher struct {
	ID             int64
	TelegramID     int64
	FullName       string
	IsActive       bool
	LastRemindedAt sql.NullTime
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// FirstName is used to greet the teacher in reminders.
func (t *Teacher) FirstName() string {
	if f := strings.Fields(t.FullName); len(f) > 0 {
		return f[0]
	}
	return "professor(a)"
}
