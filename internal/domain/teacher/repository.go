package teacher

import (
	"context"
	"time"
)

// Repository defines the operations for persisting and retrieving Teacher entities.
type Repository interface {
	Create(ctx context.Context, teacher *Teacher) error
	GetByTelegramID(ctx context.Context, telegramID int64) (*Teacher, error)
	Update(ctx context.Context, teacher *Teacher) error // FullName and IsActive
	ListActive(ctx context.Context) ([]*Teacher, error)
	ListAll(ctx context.Context) ([]*Teacher, error)
	MarkReminded(ctx context.Context, id int64, at time.Time) error
}
