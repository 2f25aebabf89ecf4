package telegram

import (
	"testing"

	"lesson_planning_bot/internal/domain/planning"
	"lesson_planning_bot/internal/domain/wizard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePeriodCommand(t *testing.T) {
	tests := []struct {
		in   string
		want periodCommand
	}{
		{"09/2025", periodCommand{Kind: periodAdd, Period: planning.Period{Month: 9, Year: 2025}}},
		{" 3-2026 ", periodCommand{Kind: periodAdd, Period: planning.Period{Month: 3, Year: 2026}}},
		{"remover 2", periodCommand{Kind: periodRemove, Index: 1}},
		{"Editar 1 10/2025", periodCommand{Kind: periodEdit, Index: 0, Period: planning.Period{Month: 10, Year: 2025}}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parsePeriodCommand(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParsePeriodCommand_Invalid(t *testing.T) {
	_, err := parsePeriodCommand("13/2025")
	assert.ErrorIs(t, err, planning.ErrInvalidPeriod)

	_, err = parsePeriodCommand("editar 1 00/2025")
	assert.ErrorIs(t, err, planning.ErrInvalidPeriod)

	for _, in := range []string{"", "remover", "remover x", "editar 1", "oi tudo bem"} {
		_, err := parsePeriodCommand(in)
		assert.ErrorIs(t, err, errUnknownCommand, in)
	}
}

func TestParseGoto(t *testing.T) {
	p, w, ok := parseGoto("ir 2 3")
	require.True(t, ok)
	assert.Equal(t, 1, p)
	assert.Equal(t, 2, w)

	p, w, ok = parseGoto("IR 1")
	require.True(t, ok)
	assert.Equal(t, 0, p)
	assert.Equal(t, -1, w)

	for _, in := range []string{"ir", "ir 0", "ir 1 5", "vai 1 1", "ir a b"} {
		_, _, ok := parseGoto(in)
		assert.False(t, ok, in)
	}
}

func TestParseObservation(t *testing.T) {
	obs, ok := parseObservation("OBS: trazer régua")
	assert.True(t, ok)
	assert.Equal(t, "trazer régua", obs)

	_, ok = parseObservation("Frações e decimais")
	assert.False(t, ok)
}

func TestAttachmentMime(t *testing.T) {
	mime, ok := attachmentMime("Plano.PDF")
	assert.True(t, ok)
	assert.Equal(t, "application/pdf", mime)

	_, ok = attachmentMime("plano.docx")
	assert.False(t, ok)
}

func TestWeekOfStep(t *testing.T) {
	w, ok := weekOfStep(wizard.StepWeek3)
	assert.True(t, ok)
	assert.Equal(t, planning.Week3, w)

	_, ok = weekOfStep(wizard.StepNotes)
	assert.False(t, ok)
}

func TestProgressBar(t *testing.T) {
	assert.Equal(t, "░░░░░░░░░░", progressBar(0, 10))
	assert.Equal(t, "▓▓▓▓▓░░░░░", progressBar(0.5, 10))
	assert.Equal(t, "▓▓▓▓▓▓▓▓▓▓", progressBar(1.2, 10))
}
