package telegram

import (
	"io"
	"testing"
	"time"

	"lesson_planning_bot/internal/app"
	"lesson_planning_bot/internal/domain/planning"
	"lesson_planning_bot/internal/domain/wizard"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/telebot.v3"
)

func newTestWizard(v wizard.Variant) *app.Wizard {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return app.NewWizard(1, v, nil, logrus.NewEntry(l))
}

func buttonTexts(m *telebot.ReplyMarkup) []string {
	var out []string
	for _, row := range m.InlineKeyboard {
		for _, b := range row {
			out = append(out, b.Text)
		}
	}
	return out
}

func TestScreen_StartStep(t *testing.T) {
	w := newTestWizard(wizard.MultiMonth())
	s := screenOf(w, focus{})

	assert.Contains(t, s.text(), "1/7")
	assert.Contains(t, s.text(), "Bem-vindo")
	assert.Equal(t, []string{"Começar ➡️"}, buttonTexts(s.markup()))
}

func TestScreen_NameStepShowsChoices(t *testing.T) {
	w := newTestWizard(wizard.MultiMonth())
	require.True(t, w.Next())
	require.NoError(t, w.Patch(planning.FormPatch{
		RespondentName: planning.Text("Ana"),
		GradeLevel:     planning.Text("7º ano"),
	}))

	s := screenOf(w, focus{})
	s.now = time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	assert.Contains(t, s.text(), "Nome: Ana")
	assert.Contains(t, s.text(), "Ano letivo: —")
	buttons := buttonTexts(s.markup())
	assert.Contains(t, buttons, "2025")
	assert.Contains(t, buttons, "2026")
	assert.Contains(t, buttons, "✅ 7º ano")
	assert.Contains(t, buttons, "⬅️ Voltar")
	assert.Contains(t, buttons, "Continuar ➡️")
}

func TestScreen_PlanningGridAndFocus(t *testing.T) {
	w := newTestWizard(wizard.MultiMonth())
	require.NoError(t, w.AddPeriod(9, 2025))
	require.NoError(t, w.AddPeriod(10, 2025))
	require.NoError(t, w.PatchWeek("2025-10", planning.Week2, planning.WeekPatch{
		ContentText:  planning.Text("Frações"),
		AttachedFile: &planning.FileRef{Name: "lista.pdf"},
	}))

	s := screenOf(w, focus{Period: 1, Week: 1})
	s.step = wizard.StepPlanning

	text := s.text()
	assert.Contains(t, text, "1. Setembro/2025: S1 ⬜ S2 ⬜ S3 ⬜ S4 ⬜")
	assert.Contains(t, text, "2. Outubro/2025: S1 ⬜ S2 ✅ S3 ⬜ S4 ⬜")
	assert.Contains(t, text, "✏️ Outubro/2025, Semana 2")
	assert.Contains(t, text, "Conteúdos: Frações")
	assert.Contains(t, text, "Arquivo: lista.pdf")
}

func TestScreen_PeriodsStepListsSelection(t *testing.T) {
	w := newTestWizard(wizard.MultiMonth())
	require.NoError(t, w.AddPeriod(9, 2025))

	s := screenOf(w, focus{})
	s.step = wizard.StepPeriods
	assert.Contains(t, s.text(), "1. Setembro/2025")
	assert.Contains(t, s.text(), "remover N")
}
