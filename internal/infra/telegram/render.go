package telegram

import (
	"fmt"
	"strings"
	"time"

	"lesson_planning_bot/internal/app"
	"lesson_planning_bot/internal/domain/planning"
	"lesson_planning_bot/internal/domain/submission"
	"lesson_planning_bot/internal/domain/wizard"

	"gopkg.in/telebot.v3"
)

// Callback ids of the wizard buttons.
const (
	uniqueNext      = "wiz_next"
	uniqueBack      = "wiz_back"
	uniqueSubject   = "wiz_subject"
	uniqueYear      = "wiz_year"
	uniqueGrade     = "wiz_grade"
	uniqueFocusPrev = "wiz_focus_prev"
	uniqueFocusNext = "wiz_focus_next"
	uniqueSubmit    = "wiz_submit"
	uniqueRetry     = "wiz_retry"
	uniqueRestart   = "wiz_restart"
)

var gradeLevels = []string{
	"6º ano", "7º ano", "8º ano", "9º ano",
	"1ª série EM", "2ª série EM", "3ª série EM",
}

var stepTitles = map[wizard.Step]string{
	wizard.StepStart:    "Início",
	wizard.StepName:     "Identificação",
	wizard.StepSubject:  "Disciplina",
	wizard.StepMonth:    "Mês",
	wizard.StepPeriods:  "Meses",
	wizard.StepPlanning: "Planejamento",
	wizard.StepWeek1:    "Semana 1",
	wizard.StepWeek2:    "Semana 2",
	wizard.StepWeek3:    "Semana 3",
	wizard.StepWeek4:    "Semana 4",
	wizard.StepNotes:    "Observações Gerais",
	wizard.StepFinal:    "Revisão e Envio",
}

// screen is everything needed to draw the current step.
type screen struct {
	variant  wizard.Variant
	step     wizard.Step
	index    int
	total    int
	progress float64
	form     *planning.Form
	status   submission.Status
	lastErr  string
	uploads  planning.UploadProgress
	focus    focus
	now      time.Time
}

func screenOf(w *app.Wizard, f focus) screen {
	index, total := w.Position()
	status, lastErr := w.Status()
	form := w.Snapshot()
	return screen{
		variant:  w.Variant(),
		step:     w.Step(),
		index:    index,
		total:    total,
		progress: w.Progress(),
		form:     form,
		status:   status,
		lastErr:  lastErr,
		uploads:  w.UploadProgress(),
		focus:    f.clamp(form.Periods.Len()),
		now:      time.Now(),
	}
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "—"
	}
	return s
}

func check(ok bool) string {
	if ok {
		return "✅"
	}
	return "⬜"
}

func (s screen) text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %d/%d\n", progressBar(s.progress, 10), s.index, s.total)
	fmt.Fprintf(&b, "📌 %s\n\n", stepTitles[s.step])

	switch s.step {
	case wizard.StepStart:
		b.WriteString("📚 Bem-vindo ao Planejamento de Conteúdo!\n\n")
		b.WriteString("Você vai informar seus dados, a disciplina e os conteúdos de cada semana. ")
		b.WriteString("No final, o planejamento é enviado para a coordenação.")
	case wizard.StepName:
		fmt.Fprintf(&b, "👤 Nome: %s\n", orDash(s.form.RespondentName))
		fmt.Fprintf(&b, "🏫 Ano letivo: %s\n", orDash(s.form.AcademicYear))
		fmt.Fprintf(&b, "🎓 Série: %s\n\n", orDash(s.form.GradeLevel))
		b.WriteString("Envie seu nome completo e escolha o ano letivo e a série nos botões.")
	case wizard.StepSubject:
		if s.form.Subject.Valid() {
			fmt.Fprintf(&b, "Selecionada: %s\n\n", s.form.Subject.Label())
		}
		b.WriteString("Escolha a disciplina do planejamento.")
	case wizard.StepMonth:
		s.writePeriods(&b)
		b.WriteString("\nEnvie o mês no formato MM/AAAA, por exemplo 09/2025.")
	case wizard.StepPeriods:
		s.writePeriods(&b)
		b.WriteString("\nComandos:\n")
		b.WriteString("• MM/AAAA para adicionar um mês\n")
		b.WriteString("• remover N para tirar o mês N\n")
		b.WriteString("• editar N MM/AAAA para trocar o mês N")
	case wizard.StepPlanning:
		s.writeGrid(&b)
		s.writeFocusedWeek(&b, s.focus)
		b.WriteString("\nEnvie o conteúdo da semana em texto, obs: ... para uma observação, ")
		b.WriteString("ou um arquivo (.jpg, .jpeg, .png, .pdf). Use ir P S para ir ao mês P, semana S.")
	case wizard.StepWeek1, wizard.StepWeek2, wizard.StepWeek3, wizard.StepWeek4:
		week, _ := weekOfStep(s.step)
		s.writeFocusedWeek(&b, focus{Period: 0, Week: week.Index()})
		b.WriteString("\nEnvie o conteúdo da semana em texto, obs: ... para uma observação, ")
		b.WriteString("ou um arquivo (.jpg, .jpeg, .png, .pdf).")
	case wizard.StepNotes:
		for i, p := range s.form.Periods.Selected() {
			pp, _ := s.form.Periods.Plan(p.Key())
			marker := "  "
			if i == s.focus.Period {
				marker = "👉"
			}
			notes := ""
			if pp != nil {
				notes = pp.GeneralNotes
			}
			fmt.Fprintf(&b, "%s %d. %s: %s\n", marker, i+1, p.Tag(), orDash(notes))
		}
		b.WriteString("\nEnvie as observações gerais do mês indicado (opcional).")
		if s.form.Periods.Len() > 1 {
			b.WriteString(" Use ir P para escolher outro mês.")
		}
	case wizard.StepFinal:
		s.writeSummary(&b)
	}
	return b.String()
}

func (s screen) writePeriods(b *strings.Builder) {
	periods := s.form.Periods.Selected()
	if len(periods) == 0 {
		b.WriteString("Nenhum mês selecionado.\n")
		return
	}
	b.WriteString("Meses selecionados:\n")
	for i, p := range periods {
		fmt.Fprintf(b, "%d. %s\n", i+1, p.Tag())
	}
}

func (s screen) writeGrid(b *strings.Builder) {
	for i, p := range s.form.Periods.Selected() {
		pp, _ := s.form.Periods.Plan(p.Key())
		fmt.Fprintf(b, "%d. %s:", i+1, p.Tag())
		for w := range planning.Weeks {
			done := pp != nil && strings.TrimSpace(pp.Weeks[w].ContentText) != ""
			fmt.Fprintf(b, " S%d %s", w+1, check(done))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

func (s screen) writeFocusedWeek(b *strings.Builder, f focus) {
	pp, err := s.form.Periods.PlanAt(f.Period)
	if err != nil || pp == nil {
		b.WriteString("Nenhum mês selecionado.\n")
		return
	}
	e := pp.Weeks[f.Week]
	fmt.Fprintf(b, "✏️ %s, Semana %d\n", pp.Period().Tag(), f.Week+1)
	fmt.Fprintf(b, "Conteúdos: %s\n", orDash(e.ContentText))
	fmt.Fprintf(b, "Observações: %s\n", orDash(e.Observation))
	file := "—"
	if e.AttachedFile != nil {
		file = e.AttachedFile.Name
	}
	fmt.Fprintf(b, "Arquivo: %s\n", file)
}

func (s screen) writeSummary(b *strings.Builder) {
	fmt.Fprintf(b, "👤 %s\n", orDash(s.form.RespondentName))
	if s.form.Subject.Valid() {
		fmt.Fprintf(b, "📚 %s\n", s.form.Subject.Label())
	}
	for _, p := range s.form.Periods.Selected() {
		pp, _ := s.form.Periods.Plan(p.Key())
		files := 0
		if pp != nil {
			files = len(pp.Attachments())
		}
		fmt.Fprintf(b, "🗓️ %s: %d arquivo(s)\n", p.Tag(), files)
	}
	b.WriteString("\n")

	switch s.status {
	case submission.StatusIdle:
		b.WriteString("Tudo pronto. Toque em Enviar para mandar o planejamento.")
	case submission.StatusUploading:
		b.WriteString("⏳ Enviando arquivos...")
		s.writeUploads(b)
	case submission.StatusSending:
		b.WriteString("⏳ Enviando planejamento...")
	case submission.StatusSuccess:
		b.WriteString("✅ Planejamento enviado com sucesso!")
	case submission.StatusError:
		fmt.Fprintf(b, "❌ Erro no envio: %s", s.lastErr)
		s.writeUploads(b)
	}
}

func (s screen) writeUploads(b *strings.Builder) {
	failed := 0
	done := 0
	for _, st := range s.uploads {
		switch st {
		case planning.UploadComplete:
			done++
		case planning.UploadFailed:
			failed++
		}
	}
	if len(s.uploads) == 0 {
		return
	}
	fmt.Fprintf(b, "\nArquivos: %d de %d enviados", done, len(s.uploads))
	if failed > 0 {
		fmt.Fprintf(b, ", %d com falha", failed)
	}
}

func (s screen) markup() *telebot.ReplyMarkup {
	m := &telebot.ReplyMarkup{}
	var rows []telebot.Row

	switch s.step {
	case wizard.StepName:
		year := s.now.Year()
		var years []telebot.Btn
		for _, y := range []int{year, year + 1} {
			label := fmt.Sprint(y)
			if s.form.AcademicYear == label {
				label = "✅ " + label
			}
			years = append(years, m.Data(label, uniqueYear, fmt.Sprint(y)))
		}
		rows = append(rows, m.Row(years...))
		var grades []telebot.Btn
		for _, g := range gradeLevels {
			label := g
			if s.form.GradeLevel == g {
				label = "✅ " + g
			}
			grades = append(grades, m.Data(label, uniqueGrade, g))
		}
		rows = append(rows, m.Split(4, grades)...)
	case wizard.StepSubject:
		for _, subj := range planning.Subjects {
			label := subj.ButtonLabel()
			if s.form.Subject == subj {
				label = "✅ " + label
			}
			rows = append(rows, m.Row(m.Data(label, uniqueSubject, string(subj))))
		}
	case wizard.StepPlanning:
		rows = append(rows, m.Row(
			m.Data("◀️ Semana anterior", uniqueFocusPrev),
			m.Data("Próxima semana ▶️", uniqueFocusNext),
		))
	case wizard.StepFinal:
		switch s.status {
		case submission.StatusIdle:
			rows = append(rows, m.Row(m.Data("🚀 Enviar", uniqueSubmit)))
		case submission.StatusError:
			rows = append(rows, m.Row(m.Data("🔁 Tentar Novamente", uniqueRetry)))
		case submission.StatusSuccess:
			rows = append(rows, m.Row(m.Data("🆕 Começar de novo", uniqueRestart)))
		}
	}

	if !s.status.InProgress() && s.status != submission.StatusSuccess {
		var nav []telebot.Btn
		if s.index > 1 {
			nav = append(nav, m.Data("⬅️ Voltar", uniqueBack))
		}
		if s.index < s.total {
			label := "Continuar ➡️"
			if s.step == wizard.StepStart {
				label = "Começar ➡️"
			}
			nav = append(nav, m.Data(label, uniqueNext))
		}
		if len(nav) > 0 {
			rows = append(rows, m.Row(nav...))
		}
	}

	m.Inline(rows...)
	return m
}
