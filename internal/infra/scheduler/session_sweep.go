package scheduler

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// SessionSweeper drops wizard sessions left idle for longer than maxIdle.
type SessionSweeper interface {
	EvictIdle(maxIdle time.Duration) int
}

type SessionSweepScheduler struct {
	cronEngine *cron.Cron
	sweeper    SessionSweeper
	maxIdle    time.Duration
	logger     *logrus.Entry
	cronSpec   string
}

func NewSessionSweepScheduler(sweeper SessionSweeper, maxIdle time.Duration, logger *logrus.Entry, cronSpec string) *SessionSweepScheduler {
	return &SessionSweepScheduler{
		cronEngine: cron.New(cron.WithLocation(time.Local)),
		sweeper:    sweeper,
		maxIdle:    maxIdle,
		logger:     logger,
		cronSpec:   cronSpec,
	}
}

func (s *SessionSweepScheduler) Start() error {
	if _, err := s.cronEngine.AddFunc(s.cronSpec, s.sweep); err != nil {
		return fmt.Errorf("could not add session sweep cron job %q: %w", s.cronSpec, err)
	}

	s.cronEngine.Start()
	s.logger.WithFields(logrus.Fields{"cron_spec": s.cronSpec, "max_idle": s.maxIdle}).Info("Session sweep scheduler started")
	return nil
}

func (s *SessionSweepScheduler) sweep() {
	evicted := s.sweeper.EvictIdle(s.maxIdle)
	s.logger.WithField("evicted", evicted).Debug("Session sweep finished")
}

func (s *SessionSweepScheduler) Stop() {
	ctx := s.cronEngine.Stop()
	<-ctx.Done()
	s.logger.Info("Session sweep scheduler stopped")
}
