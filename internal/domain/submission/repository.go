package submission

import (
	"context"
	"errors"
)

// Recorder receives every finished attempt.
type Recorder interface {
	Record(ctx context.Context, a *Attempt) error
}

// Repository persists attempts for the admin overview.
type Repository interface {
	Recorder
	ListRecent(ctx context.Context, limit int) ([]*Attempt, error)
}

type multiRecorder []Recorder

// Recorders fans an attempt out to every non-nil recorder and joins their errors.
func Recorders(rs ...Recorder) Recorder {
	var out multiRecorder
	for _, r := range rs {
		if r != nil {
			out = append(out, r)
		}
	}
	return out
}

func (m multiRecorder) Record(ctx context.Context, a *Attempt) error {
	var errs []error
	for _, r := range m {
		if err := r.Record(ctx, a); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
