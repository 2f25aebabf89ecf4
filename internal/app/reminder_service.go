// internal/app/reminder_service.go
package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"lesson_planning_bot/internal/domain/planning"
	"lesson_planning_bot/internal/domain/teacher"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

// StartPlanningUnique is the callback id of the button that opens the wizard.
const StartPlanningUnique = "start_planning"

// ChatSender delivers a bot message to a Telegram chat.
type ChatSender interface {
	SendMessage(recipientChatID int64, text string, options *telebot.SendOptions) error
}

// ReminderService nudges registered teachers to plan the coming month.
type ReminderService struct {
	teacherRepo teacher.Repository
	sender      ChatSender
	logger      *logrus.Entry
	now         func() time.Time
}

func NewReminderService(tr teacher.Repository, sender ChatSender, logger *logrus.Entry) *ReminderService {
	return &ReminderService{
		teacherRepo: tr,
		sender:      sender,
		logger:      logger,
		now:         time.Now,
	}
}

// StartPlanningMarkup is the inline keyboard attached to reminders and /start.
func StartPlanningMarkup() *telebot.ReplyMarkup {
	markup := &telebot.ReplyMarkup{}
	btn := markup.Data("📝 Começar Planejamento", StartPlanningUnique)
	markup.Inline(markup.Row(btn))
	return markup
}

// nextPeriod is the month that follows now.
func nextPeriod(now time.Time) planning.Period {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, 1, 0)
	return planning.Period{Month: int(first.Month()), Year: first.Year()}
}

// markdownEscaper escapes the entities of Telegram's legacy Markdown mode.
var markdownEscaper = strings.NewReplacer(
	"_", "\\_",
	"*", "\\*",
	"`", "\\`",
	"[", "\\[",
)

func reminderText(t *teacher.Teacher, p planning.Period) string {
	return fmt.Sprintf(
		"Olá, %s! 👋\n\nEstá na hora de preparar o planejamento de conteúdo de *%s*.\nToque no botão abaixo para começar.",
		markdownEscaper.Replace(t.FirstName()), p.Tag(),
	)
}

// SendPlanningReminders messages every active teacher once per month and
// returns how many reminders were delivered. Failures for one teacher do not
// stop the others.
func (s *ReminderService) SendPlanningReminders(ctx context.Context) (int, error) {
	now := s.now()
	target := nextPeriod(now)
	logCtx := s.logger.WithField("target_period", target.Key())

	teachers, err := s.teacherRepo.ListActive(ctx)
	if err != nil {
		logCtx.WithError(err).Error("Failed to list active teachers")
		return 0, fmt.Errorf("failed to list active teachers: %w", err)
	}
	if len(teachers) == 0 {
		logCtx.Info("No active teachers found, no reminders sent")
		return 0, nil
	}

	sent := 0
	for _, t := range teachers {
		tLog := logCtx.WithFields(logrus.Fields{"teacher_id": t.ID, "telegram_id": t.TelegramID})
		if t.LastRemindedAt.Valid && sameMonth(t.LastRemindedAt.Time, now) {
			tLog.Debug("Teacher already reminded this month, skipping")
			continue
		}

		opts := &telebot.SendOptions{ParseMode: telebot.ModeMarkdown, ReplyMarkup: StartPlanningMarkup()}
		if err := s.sender.SendMessage(t.TelegramID, reminderText(t, target), opts); err != nil {
			tLog.WithError(err).Error("Failed to send planning reminder")
			continue
		}
		if err := s.teacherRepo.MarkReminded(ctx, t.ID, now); err != nil {
			tLog.WithError(err).Warn("Reminder sent but could not be recorded")
		}
		sent++
	}
	logCtx.WithField("sent", sent).Info("Planning reminders processed")
	return sent, nil
}

func sameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}
