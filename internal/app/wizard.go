// internal/app/wizard.go
package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"lesson_planning_bot/internal/domain/planning"
	"lesson_planning_bot/internal/domain/submission"
	"lesson_planning_bot/internal/domain/wizard"

	"github.com/sirupsen/logrus"
)

// Custom application-level errors for the wizard
var ErrSubmissionInProgress = fmt.Errorf("submission already in progress")
var ErrNotAtFinalStep = fmt.Errorf("submission is only available on the final step")
var ErrNothingToRetry = fmt.Errorf("there is no failed submission to retry")
var ErrTooManyPeriods = fmt.Errorf("maximum number of periods reached")

// Wizard owns the state of one planning session. All mutations go through its
// methods and are serialized by mu; network calls run without holding it.
type Wizard struct {
	mu        sync.Mutex
	chatID    int64
	variant   wizard.Variant
	seq       *wizard.Sequencer
	form      *planning.Form
	status    submission.Status
	lastErr   string
	progress  planning.UploadProgress
	submitter *SubmissionService
	logger    *logrus.Entry
	now       func() time.Time
}

func NewWizard(chatID int64, variant wizard.Variant, submitter *SubmissionService, logger *logrus.Entry) *Wizard {
	w := &Wizard{
		chatID:    chatID,
		variant:   variant,
		submitter: submitter,
		logger:    logger.WithFields(logrus.Fields{"chat_id": chatID, "variant": variant.Name}),
		now:       time.Now,
	}
	w.resetLocked()
	return w
}

func (w *Wizard) resetLocked() {
	w.seq = wizard.NewSequencer(w.variant.Steps)
	w.form = planning.NewForm()
	w.status = submission.StatusIdle
	w.lastErr = ""
	w.progress = planning.UploadProgress{}
	if w.variant.ImplicitPeriod {
		today := w.now()
		// Cannot fail: month comes from the clock and the form is empty.
		_ = w.form.Periods.Add(int(today.Month()), today.Year())
	}
}

// Variant returns the configuration the session runs with.
func (w *Wizard) Variant() wizard.Variant {
	return w.variant
}

// Reset clears every answer and returns to the first step.
func (w *Wizard) Reset() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.status.InProgress() {
		return ErrSubmissionInProgress
	}
	w.resetLocked()
	w.logger.Info("Wizard reset")
	return nil
}

// Step is the current step.
func (w *Wizard) Step() wizard.Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.seq.Current()
}

// Position returns the 1-based step number and the step count.
func (w *Wizard) Position() (int, int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.seq.Index() + 1, w.seq.Len()
}

// Progress is the completed fraction of the wizard, 1.0 on the last step.
func (w *Wizard) Progress() float64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.seq.Progress()
}

// CanAdvance evaluates the validation gate of the current step.
func (w *Wizard) CanAdvance() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.variant.CanAdvance(w.seq.Current(), w.form)
}

// Next advances one step when the current step's gate allows it.
func (w *Wizard) Next() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.status.InProgress() || !w.variant.CanAdvance(w.seq.Current(), w.form) {
		return false
	}
	return w.seq.Advance()
}

// Back retreats one step.
func (w *Wizard) Back() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.status.InProgress() {
		return false
	}
	return w.seq.Retreat()
}

func (w *Wizard) mutate(fn func(f *planning.Form) error) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.status.InProgress() {
		return ErrSubmissionInProgress
	}
	return fn(w.form)
}

// Patch merges top-level answers.
func (w *Wizard) Patch(p planning.FormPatch) error {
	return w.mutate(func(f *planning.Form) error {
		f.Patch(p)
		return nil
	})
}

// PatchWeek merges answers for one week of one period.
func (w *Wizard) PatchWeek(key planning.PeriodKey, week planning.WeekKey, p planning.WeekPatch) error {
	return w.mutate(func(f *planning.Form) error {
		return f.PatchWeek(key, week, p)
	})
}

// SetNotes replaces the general notes of one period.
func (w *Wizard) SetNotes(key planning.PeriodKey, notes string) error {
	return w.mutate(func(f *planning.Form) error {
		return f.SetNotes(key, notes)
	})
}

// AddPeriod selects a period. Single-period variants replace the current one.
func (w *Wizard) AddPeriod(month, year int) error {
	return w.mutate(func(f *planning.Form) error {
		n := f.Periods.Len()
		switch {
		case w.variant.MaxPeriods == 1 && n == 1:
			return f.Periods.Edit(0, month, year)
		case w.variant.MaxPeriods > 0 && n >= w.variant.MaxPeriods:
			return fmt.Errorf("%w: %d", ErrTooManyPeriods, w.variant.MaxPeriods)
		}
		return f.Periods.Add(month, year)
	})
}

// RemovePeriod drops the period at index and its plan.
func (w *Wizard) RemovePeriod(index int) error {
	return w.mutate(func(f *planning.Form) error {
		return f.Periods.Remove(index)
	})
}

// EditPeriod changes the month/year at index, keeping its plan.
func (w *Wizard) EditPeriod(index, month, year int) error {
	return w.mutate(func(f *planning.Form) error {
		return f.Periods.Edit(index, month, year)
	})
}

// Periods returns the current selection.
func (w *Wizard) Periods() []planning.Period {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.form.Periods.Selected()
}

// Snapshot returns a deep copy of the form for rendering.
func (w *Wizard) Snapshot() *planning.Form {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.form.Clone()
}

// Status returns the submission state and the last error message.
func (w *Wizard) Status() (submission.Status, string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.status, w.lastErr
}

// UploadProgress returns a copy of the per-file upload states.
func (w *Wizard) UploadProgress() planning.UploadProgress {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.progress.Clone()
}

// Submit runs the submission from the final step. A second call while one is
// running returns ErrSubmissionInProgress without touching the network. The
// outcome is reported through Status.
func (w *Wizard) Submit(ctx context.Context) error {
	w.mu.Lock()
	if w.status.InProgress() {
		w.mu.Unlock()
		return ErrSubmissionInProgress
	}
	if !w.seq.IsLast() {
		w.mu.Unlock()
		return ErrNotAtFinalStep
	}
	w.status = submission.StatusUploading
	w.lastErr = ""
	w.progress = planning.UploadProgress{}
	snapshot := w.form.Clone()
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		if w.status.InProgress() {
			w.status = submission.StatusError
			w.lastErr = msgUnexpected
		}
		w.mu.Unlock()
	}()

	attempt := w.submitter.Run(ctx, w.chatID, snapshot, SubmissionHooks{
		OnStatus: func(s submission.Status) {
			w.mu.Lock()
			w.status = s
			w.mu.Unlock()
		},
		OnProgress: func(k planning.ProgressKey, s planning.UploadStatus) {
			w.mu.Lock()
			w.progress[k] = s
			w.mu.Unlock()
		},
		OnUploaded: func(p planning.PeriodKey, week planning.WeekKey, url string) {
			w.mu.Lock()
			if err := w.form.SetUploadedURL(p, week, url); err != nil {
				w.logger.WithError(err).Warn("Uploaded file no longer maps to a week entry")
			}
			w.mu.Unlock()
		},
	})

	w.mu.Lock()
	w.status = attempt.Status
	w.lastErr = attempt.Error.String
	w.mu.Unlock()
	return nil
}

// Retry re-runs the whole submission after a failure. Files are uploaded again.
func (w *Wizard) Retry(ctx context.Context) error {
	w.mu.Lock()
	failed := w.status == submission.StatusError
	w.mu.Unlock()
	if !failed {
		return ErrNothingToRetry
	}
	return w.Submit(ctx)
}
