package app

import (
	"context"
	"errors"
	"fmt"

	"lesson_planning_bot/internal/domain/submission"
	"lesson_planning_bot/internal/domain/teacher"
	idb "lesson_planning_bot/internal/infra/database"

	"github.com/sirupsen/logrus"
)

// Custom application-level errors for admin service
var ErrAdminNotAuthorized = fmt.Errorf("performing user is not authorized as an admin")
var ErrTeacherAlreadyExists = fmt.Errorf("teacher with this Telegram ID already exists")
var ErrTeacherAlreadyInactive = fmt.Errorf("teacher is already inactive")
var ErrAuditDisabled = fmt.Errorf("submission history is not available without a database")

const maxRecentSubmissions = 50

type AdminService struct {
	teacherRepo     teacher.Repository
	submissionRepo  submission.Repository
	adminTelegramID int64
	logger          *logrus.Entry
}

// NewAdminService builds the service; submissionRepo may be nil when no
// database is configured.
func NewAdminService(tr teacher.Repository, sr submission.Repository, adminID int64, logger *logrus.Entry) *AdminService {
	return &AdminService{
		teacherRepo:     tr,
		submissionRepo:  sr,
		adminTelegramID: adminID,
		logger:          logger,
	}
}

// IsAdmin reports whether telegramID is the configured administrator.
func (s *AdminService) IsAdmin(telegramID int64) bool {
	return telegramID == s.adminTelegramID
}

// AddTeacher registers a teacher for planning reminders. A previously removed
// teacher is reactivated.
func (s *AdminService) AddTeacher(ctx context.Context, performingAdminID int64, telegramID int64, fullName string) (*teacher.Teacher, error) {
	if !s.IsAdmin(performingAdminID) {
		return nil, ErrAdminNotAuthorized
	}

	existing, err := s.teacherRepo.GetByTelegramID(ctx, telegramID)
	switch {
	case err == nil && existing.IsActive:
		return nil, ErrTeacherAlreadyExists
	case err == nil:
		existing.IsActive = true
		existing.FullName = fullName
		if err := s.teacherRepo.Update(ctx, existing); err != nil {
			return nil, fmt.Errorf("failed to reactivate teacher: %w", err)
		}
		s.logger.WithField("telegram_id", telegramID).Info("Teacher reactivated")
		return existing, nil
	case !errors.Is(err, idb.ErrTeacherNotFound):
		return nil, fmt.Errorf("failed to check existing teacher: %w", err)
	}

	t := &teacher.Teacher{
		TelegramID: telegramID,
		FullName:   fullName,
		IsActive:   true,
	}
	if err := s.teacherRepo.Create(ctx, t); err != nil {
		if errors.Is(err, idb.ErrDuplicateTelegramID) {
			return nil, ErrTeacherAlreadyExists
		}
		return nil, fmt.Errorf("failed to create teacher in repository: %w", err)
	}
	s.logger.WithFields(logrus.Fields{"telegram_id": telegramID, "teacher_id": t.ID}).Info("Teacher registered")
	return t, nil
}

// RemoveTeacher deactivates a teacher so they stop receiving reminders.
func (s *AdminService) RemoveTeacher(ctx context.Context, performingAdminID int64, telegramID int64) (*teacher.Teacher, error) {
	if !s.IsAdmin(performingAdminID) {
		return nil, ErrAdminNotAuthorized
	}

	t, err := s.teacherRepo.GetByTelegramID(ctx, telegramID)
	if err != nil {
		if errors.Is(err, idb.ErrTeacherNotFound) {
			return nil, idb.ErrTeacherNotFound
		}
		return nil, fmt.Errorf("failed to get teacher by Telegram ID for removal: %w", err)
	}
	if !t.IsActive {
		return t, ErrTeacherAlreadyInactive
	}

	t.IsActive = false
	if err := s.teacherRepo.Update(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to update teacher to inactive in repository: %w", err)
	}
	s.logger.WithField("telegram_id", telegramID).Info("Teacher deactivated")
	return t, nil
}

// ListTeachers returns the registered teachers, only the active ones when
// activeOnly is set.
func (s *AdminService) ListTeachers(ctx context.Context, performingAdminID int64, activeOnly bool) ([]*teacher.Teacher, error) {
	if !s.IsAdmin(performingAdminID) {
		return nil, ErrAdminNotAuthorized
	}
	list := s.teacherRepo.ListAll
	if activeOnly {
		list = s.teacherRepo.ListActive
	}
	ts, err := list(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list teachers: %w", err)
	}
	return ts, nil
}

// RecentSubmissions returns the latest recorded attempts, newest first.
func (s *AdminService) RecentSubmissions(ctx context.Context, performingAdminID int64, limit int) ([]*submission.Attempt, error) {
	if !s.IsAdmin(performingAdminID) {
		return nil, ErrAdminNotAuthorized
	}
	if s.submissionRepo == nil {
		return nil, ErrAuditDisabled
	}
	switch {
	case limit <= 0:
		limit = 10
	case limit > maxRecentSubmissions:
		limit = maxRecentSubmissions
	}
	attempts, err := s.submissionRepo.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	return attempts, nil
}
