package app

import (
	"context"
	"testing"

	"lesson_planning_bot/internal/domain/planning"
	"lesson_planning_bot/internal/domain/submission"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmissionService_Preconditions(t *testing.T) {
	tests := []struct {
		name    string
		build   func() *planning.Form
		wantMsg string
	}{
		{
			name: "no subject",
			build: func() *planning.Form {
				f := planning.NewForm()
				_ = f.Periods.Add(9, 2025)
				return f
			},
			wantMsg: msgSubjectMissing,
		},
		{
			name: "no period",
			build: func() *planning.Form {
				f := planning.NewForm()
				s := planning.SubjectHistory
				f.Patch(planning.FormPatch{Subject: &s})
				return f
			},
			wantMsg: msgNoPeriod,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, n, rec := &fakeUploader{}, &fakeNotifier{}, &memoryRecorder{}
			svc := NewSubmissionService(u, n, rec, testLogger())

			a := svc.Run(context.Background(), 1, tt.build(), SubmissionHooks{})

			assert.Equal(t, submission.StatusError, a.Status)
			assert.Equal(t, tt.wantMsg, a.Error.String)
			assert.NotNil(t, a.PeriodKeys)
			assert.Empty(t, u.Calls())
			assert.Empty(t, n.Messages())
			require.Len(t, rec.attempts, 1)
		})
	}
}

func TestSubmissionService_RecordsAttempt(t *testing.T) {
	rec := &memoryRecorder{}
	svc := NewSubmissionService(&fakeUploader{}, &fakeNotifier{}, rec, testLogger())

	f := planning.NewForm()
	s := planning.SubjectScience
	f.Patch(planning.FormPatch{RespondentName: planning.Text("Ana"), Subject: &s})
	require.NoError(t, f.Periods.Add(9, 2025))
	require.NoError(t, f.Periods.Add(10, 2025))
	require.NoError(t, f.PatchWeek("2025-10", planning.Week4, planning.WeekPatch{AttachedFile: &planning.FileRef{Name: "x.jpg", Source: stubSource("x")}}))

	var statuses []submission.Status
	a := svc.Run(context.Background(), 7, f, SubmissionHooks{
		OnStatus: func(s submission.Status) { statuses = append(statuses, s) },
	})

	assert.Equal(t, submission.StatusSuccess, a.Status)
	assert.False(t, a.Error.Valid)
	assert.Equal(t, []string{"2025-09", "2025-10"}, a.PeriodKeys)
	assert.Equal(t, 1, a.FilesUploaded)
	assert.Equal(t, 2, a.MessagesSent)
	assert.NotEmpty(t, a.ID)
	assert.False(t, a.FinishedAt.IsZero())
	assert.Equal(t, []submission.Status{
		submission.StatusUploading, submission.StatusSending,
		submission.StatusUploading, submission.StatusSending,
	}, statuses)
	require.Len(t, rec.attempts, 1)
	assert.Same(t, a, rec.attempts[0])
}
