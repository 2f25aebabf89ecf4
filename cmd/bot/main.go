package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"lesson_planning_bot/internal/app"
	"lesson_planning_bot/internal/domain/submission"
	"lesson_planning_bot/internal/domain/teacher"
	"lesson_planning_bot/internal/domain/wizard"
	"lesson_planning_bot/internal/infra/config"
	idb "lesson_planning_bot/internal/infra/database"
	"lesson_planning_bot/internal/infra/logger"
	"lesson_planning_bot/internal/infra/metrics"
	"lesson_planning_bot/internal/infra/scheduler"
	"lesson_planning_bot/internal/infra/storage"
	"lesson_planning_bot/internal/infra/telegram"
	"lesson_planning_bot/internal/infra/webhook"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gopkg.in/telebot.v3"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatalf("Could not load application configuration: %v", err)
	}
	logger.Init(cfg)
	mainLogger := logger.Component("main")

	mainLogger.WithFields(logrus.Fields{
		"environment": cfg.Environment,
		"admin_id":    cfg.AdminTelegramID,
		"variant":     cfg.WizardVariant,
	}).Info("Configuration loaded")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	variant, err := wizard.VariantByName(cfg.WizardVariant)
	if err != nil {
		mainLogger.WithError(err).Fatal("Invalid WIZARD_VARIANT")
	}

	// Outbound clients
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	uploader := storage.NewClient(storage.Config{
		UploadEndpoint: cfg.UploadEndpoint,
		Host:           cfg.StorageHost,
		Bucket:         cfg.StorageBucket,
		Namespace:      cfg.UploadNamespace,
	}, httpClient, logger.Component("storage"))
	notifier := webhook.NewClient(cfg.NotificationEndpoint, httpClient, logger.Component("webhook"))

	// Optional database
	recorders := []submission.Recorder{metrics.Recorder{}}
	var teacherRepo teacher.Repository
	var submissionRepo submission.Repository
	if cfg.DatabaseURL != "" {
		db, err := idb.NewPostgresConnection(ctx, cfg.DatabaseURL)
		if err != nil {
			mainLogger.WithError(err).Fatal("Could not connect to database")
		}
		defer db.Close()
		if err := idb.EnsureSchema(ctx, db); err != nil {
			mainLogger.WithError(err).Fatal("Could not prepare database schema")
		}
		mainLogger.Info("Database connection established")

		teacherRepo = idb.NewPostgresTeacherRepository(db)
		submissions := idb.NewPostgresSubmissionRepository(db)
		submissionRepo = submissions
		recorders = append(recorders, submissions)
	} else {
		mainLogger.Warn("DATABASE_URL not set: teacher registry, reminders and submission history are disabled")
	}

	submitter := app.NewSubmissionService(uploader, notifier, submission.Recorders(recorders...), logger.Component("submission"))
	sessions := app.NewSessions(variant, submitter, logger.Component("wizard"))
	metrics.Init(sessions.Count)

	// Telegram bot
	telegramLogger := logger.Component("telegram")
	pref := telebot.Settings{
		Token:  cfg.TelegramToken,
		Poller: &telebot.LongPoller{Timeout: 10 * time.Second},
		OnError: func(err error, c telebot.Context) { // Global error handler
			entry := telegramLogger.WithError(err)
			if c != nil && c.Sender() != nil && c.Chat() != nil {
				entry = entry.WithFields(logrus.Fields{"sender_id": c.Sender().ID, "chat_id": c.Chat().ID})
			}
			entry.Error("Telegram handler failed")
		},
	}
	bot, err := telebot.NewBot(pref)
	if err != nil {
		mainLogger.WithError(err).Fatal("Could not create Telegram bot")
	}

	wizardHandlers := telegram.RegisterWizardHandlers(ctx, bot, sessions, telegramLogger)
	telegram.RegisterBotCommands(ctx, bot, cfg, teacherRepo, wizardHandlers, telegramLogger)

	var reminderScheduler *scheduler.PlanningReminderScheduler
	if teacherRepo != nil {
		adminService := app.NewAdminService(teacherRepo, submissionRepo, cfg.AdminTelegramID, logger.Component("admin"))
		telegram.RegisterAdminHandlers(ctx, bot, adminService, telegramLogger)

		reminders := app.NewReminderService(teacherRepo, telegram.NewTelebotAdapter(bot), logger.Component("reminders"))
		reminderScheduler = scheduler.NewPlanningReminderScheduler(reminders, logger.Component("scheduler"), cfg.CronSpecPlanningReminder)
		if err := reminderScheduler.Start(); err != nil {
			mainLogger.WithError(err).Fatal("Could not start reminder scheduler")
		}
	}
	sessionSweeper := scheduler.NewSessionSweepScheduler(sessions, cfg.SessionIdleTimeout, logger.Component("scheduler"), cfg.CronSpecSessionSweep)
	if err := sessionSweeper.Start(); err != nil {
		mainLogger.WithError(err).Fatal("Could not start session sweep scheduler")
	}
	mainLogger.Info("Handlers registered")

	g, gctx := errgroup.WithContext(ctx)
	if cfg.MetricsAddr != "" {
		g.Go(func() error {
			return metrics.Serve(gctx, cfg.MetricsAddr, logger.Component("metrics"))
		})
	}

	go bot.Start()
	mainLogger.Info("Bot started")

	<-gctx.Done()
	mainLogger.Info("Shutting down application...")
	bot.Stop()
	sessionSweeper.Stop()
	if reminderScheduler != nil {
		reminderScheduler.Stop()
	}
	if err := g.Wait(); err != nil {
		mainLogger.WithError(err).Error("Background service failed")
	}
	mainLogger.Info("Application shut down gracefully")
}
