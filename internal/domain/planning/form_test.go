package planning

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForm_PatchKeepsSiblings(t *testing.T) {
	f := NewForm()
	f.Patch(FormPatch{RespondentName: Text("Ana"), AcademicYear: Text("2025")})

	subject := SubjectHistory
	f.Patch(FormPatch{Subject: &subject})

	assert.Equal(t, "Ana", f.RespondentName)
	assert.Equal(t, "2025", f.AcademicYear)
	assert.Equal(t, SubjectHistory, f.Subject)
	assert.Empty(t, f.GradeLevel)
}

func TestForm_PatchWeekMergesNestedFields(t *testing.T) {
	f := NewForm()
	require.NoError(t, f.Periods.Add(9, 2025))
	key := Period{Month: 9, Year: 2025}.Key()

	require.NoError(t, f.PatchWeek(key, Week2, WeekPatch{ContentText: Text("Verbos")}))
	require.NoError(t, f.PatchWeek(key, Week2, WeekPatch{Observation: Text("revisão")}))

	pp, _ := f.Periods.Plan(key)
	assert.Equal(t, "Verbos", pp.Weeks[1].ContentText)
	assert.Equal(t, "revisão", pp.Weeks[1].Observation)
	assert.Equal(t, WeekEntry{}, pp.Weeks[0])
}

func TestForm_NewAttachmentClearsUploadedURL(t *testing.T) {
	f := NewForm()
	require.NoError(t, f.Periods.Add(9, 2025))
	key := Period{Month: 9, Year: 2025}.Key()

	require.NoError(t, f.PatchWeek(key, Week1, WeekPatch{AttachedFile: &FileRef{Name: "a.pdf"}}))
	require.NoError(t, f.SetUploadedURL(key, Week1, "https://x/a.pdf"))
	require.NoError(t, f.PatchWeek(key, Week1, WeekPatch{AttachedFile: &FileRef{Name: "b.pdf"}}))

	pp, _ := f.Periods.Plan(key)
	assert.Equal(t, "b.pdf", pp.Weeks[0].AttachedFile.Name)
	assert.Empty(t, pp.Weeks[0].UploadedURL)

	require.NoError(t, f.PatchWeek(key, Week1, WeekPatch{ClearAttachment: true}))
	assert.Nil(t, pp.Weeks[0].AttachedFile)
}

func TestForm_UnknownTargets(t *testing.T) {
	f := NewForm()
	assert.ErrorIs(t, f.PatchWeek("2025-09", Week1, WeekPatch{}), ErrPeriodNotFound)
	assert.ErrorIs(t, f.SetNotes("2025-09", "x"), ErrPeriodNotFound)

	require.NoError(t, f.Periods.Add(9, 2025))
	assert.ErrorIs(t, f.PatchWeek("2025-09", "semana5", WeekPatch{}), ErrUnknownWeek)
}

func TestSubject_Valid(t *testing.T) {
	for _, s := range Subjects {
		assert.True(t, s.Valid(), s)
	}
	assert.False(t, Subject("").Valid())
	assert.False(t, Subject("artes").Valid())
	assert.Equal(t, "Matemática", SubjectMath.Label())
}
