package telegram

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"lesson_planning_bot/internal/app"
	"lesson_planning_bot/internal/domain/submission"
	idb "lesson_planning_bot/internal/infra/database"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

const msgNotAdmin = "Erro: você não tem permissão para usar este comando."

func formatAttempt(a *submission.Attempt) string {
	line := fmt.Sprintf("%s · %s · %s · %s · %d arquivo(s), %d mensagem(ns)",
		a.StartedAt.Format("02/01 15:04"), orDash(a.RespondentName), orDash(a.Subject),
		strings.Join(a.PeriodKeys, ","), a.FilesUploaded, a.MessagesSent)
	if a.Status == submission.StatusSuccess {
		return "✅ " + line
	}
	if a.Error.Valid {
		return fmt.Sprintf("❌ %s\n   %s", line, a.Error.String)
	}
	return "❌ " + line
}

// RegisterAdminHandlers registers handlers for admin commands.
func RegisterAdminHandlers(ctx context.Context, b *telebot.Bot, adminService *app.AdminService, baseLogger *logrus.Entry) {
	adminOnly := func(name string, fn func(c telebot.Context, logCtx *logrus.Entry) error) telebot.HandlerFunc {
		return func(c telebot.Context) error {
			handlerLogger := baseLogger.WithFields(logrus.Fields{
				"handler":   name,
				"sender_id": c.Sender().ID,
			})
			handlerLogger.Info("Command received")
			if !adminService.IsAdmin(c.Sender().ID) {
				handlerLogger.Warn("Unauthorized access attempt")
				return c.Send(msgNotAdmin)
			}
			return fn(c, handlerLogger)
		}
	}

	b.Handle("/add_teacher", adminOnly("/add_teacher", func(c telebot.Context, logCtx *logrus.Entry) error {
		// Expected format: /add_teacher <TelegramID> <Nome completo>
		args := c.Args()
		if len(args) < 2 {
			logCtx.WithField("args_count", len(args)).Warn("Invalid command format")
			return c.Send("Formato inválido. Use: /add_teacher <TelegramID> <Nome completo>")
		}
		telegramID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return c.Send("Erro: o Telegram ID deve ser numérico.")
		}
		fullName := strings.TrimSpace(strings.Join(args[1:], " "))
		logCtx = logCtx.WithField("teacher_telegram_id", telegramID)

		t, err := adminService.AddTeacher(ctx, c.Sender().ID, telegramID, fullName)
		if err != nil {
			switch {
			case errors.Is(err, app.ErrTeacherAlreadyExists):
				logCtx.WithError(err).Warn("Teacher already exists")
				return c.Send(fmt.Sprintf("Professor(a) com Telegram ID %d já está cadastrado(a).", telegramID))
			default:
				logCtx.WithError(err).Error("Failed to add teacher")
				return c.Send(fmt.Sprintf("Erro ao cadastrar professor(a): %s", err.Error()))
			}
		}
		logCtx.WithField("teacher_id", t.ID).Info("Teacher added successfully")
		return c.Send(fmt.Sprintf("Professor(a) %s (ID: %d) cadastrado(a) com sucesso.", t.FullName, t.TelegramID))
	}))

	b.Handle("/remove_teacher", adminOnly("/remove_teacher", func(c telebot.Context, logCtx *logrus.Entry) error {
		args := c.Args()
		if len(args) != 1 {
			return c.Send("Formato inválido. Use: /remove_teacher <TelegramID>")
		}
		telegramID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return c.Send("Erro: o Telegram ID deve ser numérico.")
		}
		logCtx = logCtx.WithField("teacher_telegram_id", telegramID)

		t, err := adminService.RemoveTeacher(ctx, c.Sender().ID, telegramID)
		if err != nil {
			switch {
			case errors.Is(err, idb.ErrTeacherNotFound):
				logCtx.WithError(err).Warn("Teacher to remove not found")
				return c.Send(fmt.Sprintf("Nenhum(a) professor(a) com Telegram ID %d.", telegramID))
			case errors.Is(err, app.ErrTeacherAlreadyInactive):
				logCtx.WithError(err).Warn("Teacher already inactive")
				return c.Send(fmt.Sprintf("Professor(a) %s já estava desativado(a).", t.FullName))
			default:
				logCtx.WithError(err).Error("Failed to remove teacher")
				return c.Send(fmt.Sprintf("Erro ao desativar professor(a): %s", err.Error()))
			}
		}
		logCtx.WithField("teacher_id", t.ID).Info("Teacher deactivated successfully")
		return c.Send(fmt.Sprintf("Professor(a) %s (ID: %d) desativado(a).", t.FullName, t.TelegramID))
	}))

	b.Handle("/list_teachers", adminOnly("/list_teachers", func(c telebot.Context, logCtx *logrus.Entry) error {
		// Optional argument: 'active' (default) or 'all'
		listType := "active"
		if args := c.Args(); len(args) > 0 {
			listType = strings.ToLower(args[0])
		}
		if listType != "active" && listType != "all" {
			return c.Send("Argumento inválido. Use /list_teachers [active|all].")
		}
		logCtx = logCtx.WithField("list_type", listType)

		teachers, err := adminService.ListTeachers(ctx, c.Sender().ID, listType == "active")
		if err != nil {
			logCtx.WithError(err).Error("Failed to get list of teachers")
			return c.Send(fmt.Sprintf("Erro ao listar professores: %s", err.Error()))
		}
		if len(teachers) == 0 {
			if listType == "active" {
				return c.Send("Nenhum(a) professor(a) ativo(a).")
			}
			return c.Send("Nenhum(a) professor(a) cadastrado(a).")
		}

		var response strings.Builder
		response.WriteString("--- Professores ---\n")
		for _, t := range teachers {
			status := "Inativo"
			if t.IsActive {
				status = "Ativo"
			}
			reminded := "nunca"
			if t.LastRemindedAt.Valid {
				reminded = t.LastRemindedAt.Time.Format("02/01/2006")
			}
			fmt.Fprintf(&response, "%s (Telegram ID: %d) · %s · último lembrete: %s\n", t.FullName, t.TelegramID, status, reminded)
		}
		logCtx.WithField("teachers_count", len(teachers)).Info("Successfully retrieved teacher list")
		return c.Send(response.String())
	}))

	b.Handle("/submissions", adminOnly("/submissions", func(c telebot.Context, logCtx *logrus.Entry) error {
		limit := 10
		if args := c.Args(); len(args) > 0 {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return c.Send("Formato inválido. Use: /submissions [N]")
			}
			limit = n
		}
		attempts, err := adminService.RecentSubmissions(ctx, c.Sender().ID, limit)
		if err != nil {
			if errors.Is(err, app.ErrAuditDisabled) {
				return c.Send("Histórico indisponível: banco de dados não configurado.")
			}
			logCtx.WithError(err).Error("Failed to list submissions")
			return c.Send(fmt.Sprintf("Erro ao listar envios: %s", err.Error()))
		}
		if len(attempts) == 0 {
			return c.Send("Nenhum envio registrado.")
		}
		lines := make([]string, 0, len(attempts))
		for _, a := range attempts {
			lines = append(lines, formatAttempt(a))
		}
		return c.Send(strings.Join(lines, "\n"))
	}))
}
