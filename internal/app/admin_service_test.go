package app

import (
	"context"
	"testing"

	"lesson_planning_bot/internal/domain/teacher"
	idb "lesson_planning_bot/internal/infra/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const adminID int64 = 1

func TestAdminService_AddAndRemoveTeacher(t *testing.T) {
	repo := newMemoryTeacherRepo()
	svc := NewAdminService(repo, nil, adminID, testLogger())
	ctx := context.Background()

	_, err := svc.AddTeacher(ctx, 999, 10, "Ana")
	assert.ErrorIs(t, err, ErrAdminNotAuthorized)

	added, err := svc.AddTeacher(ctx, adminID, 10, "Ana Souza")
	require.NoError(t, err)
	assert.True(t, added.IsActive)
	assert.NotZero(t, added.ID)

	_, err = svc.AddTeacher(ctx, adminID, 10, "Ana Souza")
	assert.ErrorIs(t, err, ErrTeacherAlreadyExists)

	removed, err := svc.RemoveTeacher(ctx, adminID, 10)
	require.NoError(t, err)
	assert.False(t, removed.IsActive)

	_, err = svc.RemoveTeacher(ctx, adminID, 10)
	assert.ErrorIs(t, err, ErrTeacherAlreadyInactive)

	_, err = svc.RemoveTeacher(ctx, adminID, 77)
	assert.ErrorIs(t, err, idb.ErrTeacherNotFound)

	back, err := svc.AddTeacher(ctx, adminID, 10, "Ana S.")
	require.NoError(t, err)
	assert.True(t, back.IsActive)
	assert.Equal(t, added.ID, back.ID)
	assert.Equal(t, "Ana S.", back.FullName)
}

func TestAdminService_ListTeachers(t *testing.T) {
	repo := newMemoryTeacherRepo(
		&teacher.Teacher{TelegramID: 10, FullName: "Ana", IsActive: true},
		&teacher.Teacher{TelegramID: 20, FullName: "Bruno"},
	)
	svc := NewAdminService(repo, nil, adminID, testLogger())

	ts, err := svc.ListTeachers(context.Background(), adminID, false)
	require.NoError(t, err)
	assert.Len(t, ts, 2)

	ts, err = svc.ListTeachers(context.Background(), adminID, true)
	require.NoError(t, err)
	require.Len(t, ts, 1)
	assert.Equal(t, "Ana", ts[0].FullName)

	_, err = svc.ListTeachers(context.Background(), 999, true)
	assert.ErrorIs(t, err, ErrAdminNotAuthorized)
}

func TestAdminService_RecentSubmissionsWithoutDatabase(t *testing.T) {
	svc := NewAdminService(newMemoryTeacherRepo(), nil, adminID, testLogger())
	_, err := svc.RecentSubmissions(context.Background(), adminID, 5)
	assert.ErrorIs(t, err, ErrAuditDisabled)
}
