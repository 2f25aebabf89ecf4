// internal/infra/telegram/bot_commands_handler.go
package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"lesson_planning_bot/internal/domain/teacher"
	"lesson_planning_bot/internal/infra/config"
	idb "lesson_planning_bot/internal/infra/database" // For ErrTeacherNotFound

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

const userHelp = "Eu ajudo você a preencher o planejamento de conteúdo do mês.\n\n" +
	"/planejar - começar um novo planejamento\n" +
	"/cancelar - descartar o planejamento atual\n" +
	"/help - mostrar esta mensagem\n\n" +
	"Durante o planejamento, responda em texto ou use os botões. " +
	"Arquivos .jpg, .jpeg, .png e .pdf podem ser anexados às semanas."

// RegisterBotCommands wires /start, /help, /planejar and /cancelar.
// teacherRepo may be nil when no database is configured.
func RegisterBotCommands(
	ctx context.Context,
	b *telebot.Bot,
	cfg *config.AppConfig, // For AdminTelegramID
	teacherRepo teacher.Repository,
	wizardHandlers *WizardHandlers,
	baseLogger *logrus.Entry,
) {
	commandLogger := baseLogger.WithField("handler_group", "commands")

	b.Handle("/start", func(c telebot.Context) error {
		senderID := c.Sender().ID
		logCtx := commandLogger.WithField("command", "/start").WithField("sender_id", senderID)
		logCtx.Info("Processing /start command")

		var greeting string
		switch {
		case senderID == cfg.AdminTelegramID:
			logCtx.Info("User identified as Admin")
			greeting = fmt.Sprintf("Olá, Administrador(a) %s! Use /help para ver os comandos.", c.Sender().FirstName)
		case teacherRepo != nil:
			t, err := teacherRepo.GetByTelegramID(ctx, senderID)
			switch {
			case err == nil && t.IsActive:
				logCtx.WithField("teacher_id", t.ID).Info("User identified as Active Teacher")
				greeting = fmt.Sprintf("Olá, %s! Vamos preparar o planejamento?", t.FirstName())
			case err != nil && !errors.Is(err, idb.ErrTeacherNotFound):
				logCtx.WithError(err).Error("Error checking teacher status for /start command")
			}
		}
		if greeting == "" {
			greeting = fmt.Sprintf("Olá, %s! Vamos preparar o planejamento?", c.Sender().FirstName)
		}

		if err := c.Send(greeting); err != nil {
			return err
		}
		return wizardHandlers.Open(c, false)
	})

	b.Handle("/help", func(c telebot.Context) error {
		senderID := c.Sender().ID
		logCtx := commandLogger.WithField("command", "/help").WithField("sender_id", senderID)
		logCtx.Info("Processing /help command")

		if senderID != cfg.AdminTelegramID {
			return c.Send(userHelp)
		}

		var helpText strings.Builder
		helpText.WriteString(userHelp)
		helpText.WriteString("\n\nComandos de administração:\n\n")
		helpText.WriteString("`/add_teacher <TelegramID> <Nome> [Sobrenome]`\n - Cadastrar professor(a) para receber lembretes.\n\n")
		helpText.WriteString("`/remove_teacher <TelegramID>`\n - Desativar professor(a).\n\n")
		helpText.WriteString("`/list_teachers [active|all]`\n - Listar professores ativos, ou todos com all.\n\n")
		helpText.WriteString("`/submissions [N]`\n - Últimos N envios registrados.")
		return c.Send(helpText.String(), &telebot.SendOptions{ParseMode: telebot.ModeMarkdown})
	})

	b.Handle("/planejar", func(c telebot.Context) error {
		commandLogger.WithField("command", "/planejar").WithField("sender_id", c.Sender().ID).Info("Restarting wizard")
		return wizardHandlers.Open(c, true)
	})

	b.Handle("/cancelar", func(c telebot.Context) error {
		commandLogger.WithField("command", "/cancelar").WithField("sender_id", c.Sender().ID).Info("Closing wizard")
		return wizardHandlers.Close(c)
	})
}
