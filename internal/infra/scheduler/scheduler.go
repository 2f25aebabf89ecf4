package scheduler

import (
	"context"
	"fmt"
	"time"

	"lesson_planning_bot/internal/infra/metrics"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

const reminderJobTimeout = 5 * time.Minute

// Reminder sends the monthly planning reminder to every active teacher.
type Reminder interface {
	SendPlanningReminders(ctx context.Context) (int, error)
}

type PlanningReminderScheduler struct {
	cronEngine *cron.Cron
	reminder   Reminder
	logger     *logrus.Entry
	cronSpec   string
}

func NewPlanningReminderScheduler(reminder Reminder, logger *logrus.Entry, cronSpec string) *PlanningReminderScheduler {
	return &PlanningReminderScheduler{
		cronEngine: cron.New(cron.WithLocation(time.Local)), // Use server's local time for cron
		reminder:   reminder,
		logger:     logger,
		cronSpec:   cronSpec, // e.g., "0 9 25 * *" (9:00 AM on 25th)
	}
}

func (s *PlanningReminderScheduler) Start() error {
	s.logger.Info("Starting planning reminder scheduler...")

	if _, err := s.cronEngine.AddFunc(s.cronSpec, s.runReminders); err != nil {
		return fmt.Errorf("could not add planning reminder cron job %q: %w", s.cronSpec, err)
	}

	s.cronEngine.Start()
	s.logger.WithField("cron_spec", s.cronSpec).Info("Planning reminder scheduler started")
	return nil
}

func (s *PlanningReminderScheduler) runReminders() {
	s.logger.Info("Cron job triggered for planning reminders")
	ctx, cancel := context.WithTimeout(context.Background(), reminderJobTimeout)
	defer cancel()

	sent, err := s.reminder.SendPlanningReminders(ctx)
	metrics.RemindersSentTotal.Add(float64(sent))
	if err != nil {
		s.logger.WithError(err).Error("Planning reminder job failed")
		return
	}
	s.logger.WithField("sent", sent).Info("Planning reminder job finished")
}

func (s *PlanningReminderScheduler) Stop() {
	s.logger.Info("Stopping planning reminder scheduler...")
	ctx := s.cronEngine.Stop() // waits for running jobs
	<-ctx.Done()
	s.logger.Info("Planning reminder scheduler gracefully stopped")
}
