// internal/app/submission_service.go
package app

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"lesson_planning_bot/internal/domain/planning"
	"lesson_planning_bot/internal/domain/submission"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Messages shown to the user when a submission cannot start or breaks unexpectedly.
const (
	msgSubjectMissing = "Disciplina não selecionada"
	msgNoPeriod       = "Nenhum mês selecionado"
	msgUnexpected     = "Erro ao enviar formulário"
)

// Uploader stores attachments and tells where they can be downloaded.
type Uploader interface {
	ObjectName(respondent string, period planning.PeriodKey, week planning.WeekKey, at time.Time, original string) string
	Upload(ctx context.Context, objectName string, file planning.FileRef) (string, error)
}

// Notifier delivers one formatted message to the team chat.
type Notifier interface {
	Send(ctx context.Context, message string) error
}

// SubmissionHooks lets the caller observe an attempt while it runs. Hooks may
// be called from several goroutines at once during uploads.
type SubmissionHooks struct {
	OnStatus   func(submission.Status)
	OnProgress func(planning.ProgressKey, planning.UploadStatus)
	OnUploaded func(period planning.PeriodKey, week planning.WeekKey, url string)
}

func (h SubmissionHooks) status(s submission.Status) {
	if h.OnStatus != nil {
		h.OnStatus(s)
	}
}

func (h SubmissionHooks) progress(k planning.ProgressKey, s planning.UploadStatus) {
	if h.OnProgress != nil {
		h.OnProgress(k, s)
	}
}

func (h SubmissionHooks) uploaded(p planning.PeriodKey, w planning.WeekKey, url string) {
	if h.OnUploaded != nil {
		h.OnUploaded(p, w, url)
	}
}

// SubmissionService runs the upload-then-notify procedure.
type SubmissionService struct {
	uploader Uploader
	notifier Notifier
	recorder submission.Recorder
	logger   *logrus.Entry
	now      func() time.Time
}

func NewSubmissionService(u Uploader, n Notifier, r submission.Recorder, logger *logrus.Entry) *SubmissionService {
	return &SubmissionService{
		uploader: u,
		notifier: n,
		recorder: r,
		logger:   logger,
		now:      time.Now,
	}
}

// Run submits form, which must be a private snapshot: uploaded URLs are
// written into it before each message is composed. Periods are processed in
// selection order and the first failure ends the attempt.
func (s *SubmissionService) Run(ctx context.Context, chatID int64, form *planning.Form, hooks SubmissionHooks) *submission.Attempt {
	attempt := &submission.Attempt{
		ID:             uuid.NewString(),
		ChatID:         chatID,
		RespondentName: form.RespondentName,
		Subject:        string(form.Subject),
		Status:         submission.StatusUploading,
		PeriodKeys:     []string{},
		StartedAt:      s.now(),
	}
	for _, p := range form.Periods.Selected() {
		attempt.PeriodKeys = append(attempt.PeriodKeys, string(p.Key()))
	}
	logCtx := s.logger.WithFields(logrus.Fields{
		"attempt_id": attempt.ID,
		"chat_id":    chatID,
		"periods":    len(attempt.PeriodKeys),
	})

	defer func() {
		if r := recover(); r != nil {
			logCtx.WithField("panic", r).Error("Submission panicked")
			s.fail(attempt, msgUnexpected)
		}
		attempt.FinishedAt = s.now()
		if s.recorder != nil {
			if err := s.recorder.Record(context.WithoutCancel(ctx), attempt); err != nil {
				logCtx.WithError(err).Warn("Failed to record submission attempt")
			}
		}
	}()

	if form.Subject == "" {
		s.fail(attempt, msgSubjectMissing)
		logCtx.Warn("Submission rejected: subject missing")
		return attempt
	}
	if form.Periods.Len() == 0 {
		s.fail(attempt, msgNoPeriod)
		logCtx.Warn("Submission rejected: no period selected")
		return attempt
	}

	logCtx.Info("Submission started")
	for _, p := range form.Periods.Selected() {
		pp, ok := form.Periods.Plan(p.Key())
		if !ok {
			s.fail(attempt, fmt.Sprintf("%s: %s", p.Tag(), msgUnexpected))
			return attempt
		}
		periodLog := logCtx.WithField("period", p.Key())

		hooks.status(submission.StatusUploading)
		attempt.Status = submission.StatusUploading
		uploaded, err := s.uploadPeriod(ctx, form.RespondentName, pp, hooks)
		attempt.FilesUploaded += uploaded
		if err != nil {
			periodLog.WithError(err).Error("Attachment upload failed, aborting submission")
			s.fail(attempt, fmt.Sprintf("%s: %s", p.Tag(), err.Error()))
			return attempt
		}

		hooks.status(submission.StatusSending)
		attempt.Status = submission.StatusSending
		if err := s.notifier.Send(ctx, ComposeMessage(form, pp)); err != nil {
			periodLog.WithError(err).Error("Notification failed, aborting submission")
			s.fail(attempt, fmt.Sprintf("%s: %s", p.Tag(), err.Error()))
			return attempt
		}
		attempt.MessagesSent++
		periodLog.Info("Period notification sent")
	}

	attempt.Status = submission.StatusSuccess
	logCtx.WithField("files", attempt.FilesUploaded).Info("Submission completed")
	return attempt
}

func (s *SubmissionService) fail(a *submission.Attempt, msg string) {
	a.Status = submission.StatusError
	a.Error = sql.NullString{String: msg, Valid: true}
}

// uploadPeriod uploads every attachment of pp concurrently and waits for all
// of them. Any failure cancels the rest.
func (s *SubmissionService) uploadPeriod(ctx context.Context, respondent string, pp *planning.PeriodPlan, hooks SubmissionHooks) (int, error) {
	weeks := pp.Attachments()
	if len(weeks) == 0 {
		return 0, nil
	}
	key := pp.Period().Key()

	g, gctx := errgroup.WithContext(ctx)
	for _, week := range weeks {
		entry := pp.Week(week)
		file := *entry.AttachedFile
		pk := planning.ProgressKey{Period: key, Week: week}
		g.Go(func() error {
			hooks.progress(pk, planning.UploadPending)
			name := s.uploader.ObjectName(respondent, key, week, s.now(), file.Name)
			url, err := s.uploader.Upload(gctx, name, file)
			if err != nil {
				hooks.progress(pk, planning.UploadFailed)
				return err
			}
			entry.UploadedURL = url
			hooks.uploaded(key, week, url)
			hooks.progress(pk, planning.UploadComplete)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	return len(weeks), nil
}
