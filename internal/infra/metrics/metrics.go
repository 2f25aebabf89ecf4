package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"lesson_planning_bot/internal/domain/submission"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

var (
	SubmissionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "planning_submissions_total",
			Help: "Finished submission attempts by outcome",
		},
		[]string{"status"},
	)

	FilesUploadedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "planning_files_uploaded_total",
		Help: "Attachments uploaded to storage",
	})

	MessagesSentTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "planning_messages_sent_total",
		Help: "Period messages delivered to the team chat",
	})

	SubmissionDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "planning_submission_duration_seconds",
		Help:    "Duration of submission attempts",
		Buckets: []float64{0.5, 1, 2, 5, 10, 30, 60, 120},
	})

	RemindersSentTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "planning_reminders_sent_total",
		Help: "Planning reminders delivered to teachers",
	})
)

// Init registers the collectors. activeSessions reports the number of open
// wizard sessions at scrape time.
func Init(activeSessions func() int) {
	prometheus.MustRegister(SubmissionsTotal)
	prometheus.MustRegister(FilesUploadedTotal)
	prometheus.MustRegister(MessagesSentTotal)
	prometheus.MustRegister(SubmissionDuration)
	prometheus.MustRegister(RemindersSentTotal)
	prometheus.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "planning_active_sessions",
			Help: "Open wizard sessions",
		},
		func() float64 { return float64(activeSessions()) },
	))
}

// Recorder counts finished submission attempts.
type Recorder struct{}

func (Recorder) Record(_ context.Context, a *submission.Attempt) error {
	SubmissionsTotal.WithLabelValues(string(a.Status)).Inc()
	FilesUploadedTotal.Add(float64(a.FilesUploaded))
	MessagesSentTotal.Add(float64(a.MessagesSent))
	if d := a.Duration(); d > 0 {
		SubmissionDuration.Observe(d.Seconds())
	}
	return nil
}

// Serve exposes /metrics on addr until ctx is cancelled.
func Serve(ctx context.Context, addr string, logger *logrus.Entry) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.WithError(err).Warn("Metrics server shutdown failed")
		}
	}()

	logger.WithField("addr", addr).Info("Metrics endpoint listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
