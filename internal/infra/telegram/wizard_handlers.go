package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"lesson_planning_bot/internal/app"
	"lesson_planning_bot/internal/domain/planning"
	"lesson_planning_bot/internal/domain/wizard"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

const (
	msgBusy        = "⏳ Envio em andamento. Aguarde."
	msgNoSession   = "Nenhum planejamento aberto. Use /planejar para começar."
	msgFillFirst   = "Preencha os campos obrigatórios antes de continuar."
	msgUseButtons  = "Use os botões da mensagem para continuar."
	msgFileNoWeek  = "Envie arquivos nas etapas de planejamento das semanas."
	msgFileBadType = "Formato não aceito. Envie .jpg, .jpeg, .png ou .pdf."
)

// WizardHandlers drives one app.Wizard per chat from Telegram updates.
type WizardHandlers struct {
	ctx      context.Context
	bot      *telebot.Bot
	sessions *app.Sessions
	focus    *focusStore
	logger   *logrus.Entry
}

// RegisterWizardHandlers wires the wizard buttons, free text and attachments.
func RegisterWizardHandlers(ctx context.Context, b *telebot.Bot, sessions *app.Sessions, baseLogger *logrus.Entry) *WizardHandlers {
	h := &WizardHandlers{
		ctx:      ctx,
		bot:      b,
		sessions: sessions,
		focus:    newFocusStore(),
		logger:   baseLogger.WithField("handler_group", "wizard"),
	}
	sessions.OnEvict(h.focus.clear)

	b.Handle(&telebot.Btn{Unique: app.StartPlanningUnique}, func(c telebot.Context) error {
		_ = c.Respond()
		return h.Open(c, false)
	})
	b.Handle(&telebot.Btn{Unique: uniqueNext}, h.onNext)
	b.Handle(&telebot.Btn{Unique: uniqueBack}, h.onBack)
	b.Handle(&telebot.Btn{Unique: uniqueSubject}, h.onSubject)
	b.Handle(&telebot.Btn{Unique: uniqueYear}, h.onYear)
	b.Handle(&telebot.Btn{Unique: uniqueGrade}, h.onGrade)
	b.Handle(&telebot.Btn{Unique: uniqueFocusPrev}, h.onFocus(false))
	b.Handle(&telebot.Btn{Unique: uniqueFocusNext}, h.onFocus(true))
	b.Handle(&telebot.Btn{Unique: uniqueSubmit}, h.onSubmit)
	b.Handle(&telebot.Btn{Unique: uniqueRetry}, h.onRetry)
	b.Handle(&telebot.Btn{Unique: uniqueRestart}, h.onRestart)
	b.Handle(telebot.OnText, h.onText)
	b.Handle(telebot.OnDocument, h.onDocument)
	b.Handle(telebot.OnPhoto, h.onPhoto)

	return h
}

// Open shows the chat's wizard, creating it if needed. With restart the
// answers are discarded first.
func (h *WizardHandlers) Open(c telebot.Context, restart bool) error {
	chatID := c.Chat().ID
	w := h.sessions.Open(chatID)
	if restart {
		if err := w.Reset(); err != nil {
			return c.Send(userMessage(err))
		}
		h.focus.clear(chatID)
	}
	return h.show(c, w, false)
}

// Close discards the chat's wizard.
func (h *WizardHandlers) Close(c telebot.Context) error {
	chatID := c.Chat().ID
	if err := h.sessions.Close(chatID); err != nil {
		return c.Send(userMessage(err))
	}
	h.focus.clear(chatID)
	return c.Send("Planejamento cancelado. Use /planejar para começar de novo.")
}

func userMessage(err error) string {
	switch {
	case errors.Is(err, app.ErrSubmissionInProgress):
		return msgBusy
	case errors.Is(err, planning.ErrInvalidPeriod):
		return "Mês inválido. Use o formato MM/AAAA, com ano a partir de 2000."
	case errors.Is(err, planning.ErrDuplicatePeriod):
		return "Este mês já foi selecionado."
	case errors.Is(err, planning.ErrPeriodIndexOutOfRange):
		return "Não existe mês com esse número."
	case errors.Is(err, app.ErrTooManyPeriods):
		return "Limite de meses atingido."
	case errors.Is(err, errUnknownCommand):
		return "Não entendi. Use MM/AAAA, remover N ou editar N MM/AAAA."
	case errors.Is(err, app.ErrNotAtFinalStep):
		return "O envio só pode ser feito na última etapa."
	case errors.Is(err, app.ErrNothingToRetry):
		return "Não há envio com erro para repetir."
	}
	return fmt.Sprintf("Não foi possível processar: %s", err.Error())
}

func (h *WizardHandlers) handlerLogger(c telebot.Context, name string) *logrus.Entry {
	fields := logrus.Fields{"handler": name}
	if c.Sender() != nil {
		fields["sender_id"] = c.Sender().ID
	}
	if c.Chat() != nil {
		fields["chat_id"] = c.Chat().ID
	}
	return h.logger.WithFields(fields)
}

// session returns the chat's wizard. For callbacks it also answers the
// button when there is nothing to act on.
func (h *WizardHandlers) session(c telebot.Context) (*app.Wizard, bool) {
	if c.Chat() == nil {
		return nil, false
	}
	w, ok := h.sessions.Get(c.Chat().ID)
	if !ok {
		if c.Callback() != nil {
			_ = c.Respond(&telebot.CallbackResponse{Text: msgNoSession, ShowAlert: true})
		} else {
			_ = c.Send(msgNoSession)
		}
		return nil, false
	}
	return w, true
}

func (h *WizardHandlers) show(c telebot.Context, w *app.Wizard, edit bool) error {
	s := screenOf(w, h.focus.get(c.Chat().ID))
	if edit && c.Callback() != nil {
		err := c.Edit(s.text(), s.markup())
		if err == nil || strings.Contains(err.Error(), "message is not modified") {
			return nil
		}
		h.logger.WithError(err).Debug("Could not edit wizard message, sending a new one")
	}
	return c.Send(s.text(), s.markup())
}

// callback runs fn for a button tap and redraws the screen. fn returns the
// text of the toast shown to the user, if any.
func (h *WizardHandlers) callback(c telebot.Context, name string, fn func(w *app.Wizard) (string, error)) error {
	w, ok := h.session(c)
	if !ok {
		return nil
	}
	logCtx := h.handlerLogger(c, name)
	if st, _ := w.Status(); st.InProgress() {
		logCtx.Info("Tap ignored while submission is running")
		return c.Respond(&telebot.CallbackResponse{Text: msgBusy})
	}

	toast, err := fn(w)
	if err != nil {
		logCtx.WithError(err).Warn("Wizard action rejected")
		return c.Respond(&telebot.CallbackResponse{Text: userMessage(err), ShowAlert: true})
	}
	if err := c.Respond(&telebot.CallbackResponse{Text: toast}); err != nil {
		logCtx.WithError(err).Debug("Failed to answer callback")
	}
	return h.show(c, w, true)
}

func (h *WizardHandlers) onNext(c telebot.Context) error {
	return h.callback(c, "next", func(w *app.Wizard) (string, error) {
		if !w.Next() {
			return msgFillFirst, nil
		}
		if step := w.Step(); step == wizard.StepPlanning || step == wizard.StepNotes {
			h.focus.set(c.Chat().ID, focus{})
		}
		return "", nil
	})
}

func (h *WizardHandlers) onBack(c telebot.Context) error {
	return h.callback(c, "back", func(w *app.Wizard) (string, error) {
		w.Back()
		return "", nil
	})
}

func (h *WizardHandlers) onSubject(c telebot.Context) error {
	return h.callback(c, "subject", func(w *app.Wizard) (string, error) {
		subject := planning.Subject(c.Data())
		if !subject.Valid() {
			return "Disciplina desconhecida.", nil
		}
		return subject.Label(), w.Patch(planning.FormPatch{Subject: &subject})
	})
}

func (h *WizardHandlers) onYear(c telebot.Context) error {
	return h.callback(c, "year", func(w *app.Wizard) (string, error) {
		return "", w.Patch(planning.FormPatch{AcademicYear: planning.Text(c.Data())})
	})
}

func (h *WizardHandlers) onGrade(c telebot.Context) error {
	return h.callback(c, "grade", func(w *app.Wizard) (string, error) {
		return "", w.Patch(planning.FormPatch{GradeLevel: planning.Text(c.Data())})
	})
}

func (h *WizardHandlers) onFocus(forward bool) telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.callback(c, "focus", func(w *app.Wizard) (string, error) {
			n := len(w.Periods())
			f := h.focus.get(c.Chat().ID).clamp(n)
			if forward {
				f = f.next(n)
			} else {
				f = f.prev()
			}
			h.focus.set(c.Chat().ID, f)
			return "", nil
		})
	}
}

func (h *WizardHandlers) onRestart(c telebot.Context) error {
	return h.callback(c, "restart", func(w *app.Wizard) (string, error) {
		if err := w.Reset(); err != nil {
			return "", err
		}
		h.focus.clear(c.Chat().ID)
		return "Novo planejamento iniciado.", nil
	})
}

func (h *WizardHandlers) onSubmit(c telebot.Context) error {
	return h.runSubmission(c, "submit", (*app.Wizard).Submit)
}

func (h *WizardHandlers) onRetry(c telebot.Context) error {
	return h.runSubmission(c, "retry", (*app.Wizard).Retry)
}

func (h *WizardHandlers) runSubmission(c telebot.Context, name string, run func(*app.Wizard, context.Context) error) error {
	w, ok := h.session(c)
	if !ok {
		return nil
	}
	logCtx := h.handlerLogger(c, name)
	if st, _ := w.Status(); st.InProgress() {
		return c.Respond(&telebot.CallbackResponse{Text: msgBusy})
	}

	_ = c.Respond(&telebot.CallbackResponse{Text: "Enviando..."})
	if err := c.Edit("⏳ Enviando planejamento, aguarde..."); err != nil {
		logCtx.WithError(err).Debug("Could not mark message as sending")
	}

	logCtx.Info("Submission requested")
	if err := run(w, h.ctx); err != nil {
		logCtx.WithError(err).Warn("Submission not started")
		if sendErr := c.Send(userMessage(err)); sendErr != nil {
			return sendErr
		}
		return h.show(c, w, false)
	}

	status, lastErr := w.Status()
	logCtx.WithFields(logrus.Fields{"status": status, "error": lastErr}).Info("Submission finished")
	return h.show(c, w, true)
}

func (h *WizardHandlers) onText(c telebot.Context) error {
	text := strings.TrimSpace(c.Text())
	if text == "" || strings.HasPrefix(text, "/") {
		return nil
	}
	w, ok := h.session(c)
	if !ok {
		return nil
	}
	if st, _ := w.Status(); st.InProgress() {
		return c.Send(msgBusy)
	}

	chatID := c.Chat().ID
	logCtx := h.handlerLogger(c, "text")

	var err error
	switch step := w.Step(); step {
	case wizard.StepName:
		err = w.Patch(planning.FormPatch{RespondentName: planning.Text(text)})
	case wizard.StepMonth:
		var p planning.Period
		if p, err = planning.ParsePeriod(text); err == nil {
			err = w.AddPeriod(p.Month, p.Year)
		}
	case wizard.StepPeriods:
		err = applyPeriodCommand(w, text)
	case wizard.StepPlanning:
		err = h.applyPlanningText(chatID, w, text)
	case wizard.StepWeek1, wizard.StepWeek2, wizard.StepWeek3, wizard.StepWeek4:
		week, _ := weekOfStep(step)
		periods := w.Periods()
		if len(periods) == 0 {
			err = planning.ErrPeriodIndexOutOfRange
			break
		}
		_, err = applyWeekText(w, periods[0].Key(), week, text)
	case wizard.StepNotes:
		err = h.applyNotesText(chatID, w, text)
	default:
		return c.Send(msgUseButtons)
	}

	if err != nil {
		logCtx.WithError(err).Info("Text input rejected")
		return c.Send(userMessage(err))
	}
	return h.show(c, w, false)
}

func applyPeriodCommand(w *app.Wizard, text string) error {
	cmd, err := parsePeriodCommand(text)
	if err != nil {
		return err
	}
	switch cmd.Kind {
	case periodRemove:
		return w.RemovePeriod(cmd.Index)
	case periodEdit:
		return w.EditPeriod(cmd.Index, cmd.Period.Month, cmd.Period.Year)
	}
	return w.AddPeriod(cmd.Period.Month, cmd.Period.Year)
}

// applyWeekText routes one message to a week entry. It reports whether the
// week's content was set.
func applyWeekText(w *app.Wizard, key planning.PeriodKey, week planning.WeekKey, text string) (bool, error) {
	if isClearAttachment(text) {
		return false, w.PatchWeek(key, week, planning.WeekPatch{ClearAttachment: true})
	}
	if obs, ok := parseObservation(text); ok {
		return false, w.PatchWeek(key, week, planning.WeekPatch{Observation: planning.Text(obs)})
	}
	return true, w.PatchWeek(key, week, planning.WeekPatch{ContentText: planning.Text(text)})
}

func (h *WizardHandlers) applyPlanningText(chatID int64, w *app.Wizard, text string) error {
	periods := w.Periods()
	if len(periods) == 0 {
		return planning.ErrPeriodIndexOutOfRange
	}
	f := h.focus.get(chatID).clamp(len(periods))

	if p, week, ok := parseGoto(text); ok {
		if p >= len(periods) {
			return planning.ErrPeriodIndexOutOfRange
		}
		f.Period = p
		if week >= 0 {
			f.Week = week
		}
		h.focus.set(chatID, f)
		return nil
	}

	contentSet, err := applyWeekText(w, periods[f.Period].Key(), planning.Weeks[f.Week], text)
	if err != nil {
		return err
	}
	if contentSet {
		f = f.next(len(periods))
	}
	h.focus.set(chatID, f)
	return nil
}

func (h *WizardHandlers) applyNotesText(chatID int64, w *app.Wizard, text string) error {
	periods := w.Periods()
	if len(periods) == 0 {
		return planning.ErrPeriodIndexOutOfRange
	}
	f := h.focus.get(chatID).clamp(len(periods))

	if p, _, ok := parseGoto(text); ok {
		if p >= len(periods) {
			return planning.ErrPeriodIndexOutOfRange
		}
		f.Period = p
		h.focus.set(chatID, f)
		return nil
	}

	if err := w.SetNotes(periods[f.Period].Key(), text); err != nil {
		return err
	}
	if f.Period < len(periods)-1 {
		f.Period++
	}
	h.focus.set(chatID, f)
	return nil
}

// attachTarget resolves the week a file sent now belongs to.
func (h *WizardHandlers) attachTarget(chatID int64, w *app.Wizard) (planning.PeriodKey, planning.WeekKey, bool) {
	periods := w.Periods()
	if len(periods) == 0 {
		return "", "", false
	}
	step := w.Step()
	if week, ok := weekOfStep(step); ok {
		return periods[0].Key(), week, true
	}
	if step == wizard.StepPlanning {
		f := h.focus.get(chatID).clamp(len(periods))
		return periods[f.Period].Key(), planning.Weeks[f.Week], true
	}
	return "", "", false
}

func (h *WizardHandlers) attach(c telebot.Context, ref *planning.FileRef) error {
	w, ok := h.session(c)
	if !ok {
		return nil
	}
	if st, _ := w.Status(); st.InProgress() {
		return c.Send(msgBusy)
	}
	key, week, ok := h.attachTarget(c.Chat().ID, w)
	if !ok {
		return c.Send(msgFileNoWeek)
	}

	logCtx := h.handlerLogger(c, "attachment").WithFields(logrus.Fields{
		"period": key,
		"week":   week,
		"file":   ref.Name,
		"size":   ref.Size,
	})
	if err := w.PatchWeek(key, week, planning.WeekPatch{AttachedFile: ref}); err != nil {
		logCtx.WithError(err).Warn("Attachment rejected")
		return c.Send(userMessage(err))
	}
	logCtx.Info("Attachment stored for upload")
	return h.show(c, w, false)
}

func (h *WizardHandlers) onDocument(c telebot.Context) error {
	doc := c.Message().Document
	if doc == nil {
		return nil
	}
	mime, ok := attachmentMime(doc.FileName)
	if !ok {
		return c.Send(msgFileBadType)
	}
	return h.attach(c, fileRef(h.bot, doc.File, doc.FileName, mime))
}

func (h *WizardHandlers) onPhoto(c telebot.Context) error {
	photo := c.Message().Photo
	if photo == nil {
		return nil
	}
	name := fmt.Sprintf("foto_%s.jpg", photo.UniqueID)
	return h.attach(c, fileRef(h.bot, photo.File, name, "image/jpeg"))
}
