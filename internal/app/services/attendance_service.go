package services

import (
	"context"
	"time"

	"github.com/bruce184/OCMS/internal/app/models"
	"github.com/bruce184/OCMS/internal/app/models/dto"
	"github.com/bruce184/OCMS/internal/app/repositories"
	"github.com/bruce184/OCMS/internal/pkg/apperrors"
	"github.com/bruce184/OCMS/internal/pkg/logger"
)

// AttendanceService handles per-session attendance records.
type AttendanceService struct {
	attendance  repositories.AttendanceRepository
	schedules   repositories.ScheduleRepository
	enrollments repositories.EnrollmentRepository
	classes     repositories.ClassRepository
}

// NewAttendanceService creates a new attendance service
func NewAttendanceService(attendance repositories.AttendanceRepository, schedules repositories.ScheduleRepository, enrollments repositories.EnrollmentRepository, classes repositories.ClassRepository) *AttendanceService {
	return &AttendanceService{attendance: attendance, schedules: schedules, enrollments: enrollments, classes: classes}
}

// Record marks one student's attendance for one session. Lecturers may only
// record sessions of classes they teach, and the student must be actively
// enrolled.
func (s *AttendanceService) Record(ctx context.Context, req *dto.RecordAttendanceRequest, requester *models.User) (*models.AttendanceRecord, error) {
	schedule, err := s.schedules.Get(ctx, req.ScheduleID)
	if err != nil {
		return nil, err
	}
	if schedule == nil {
		return nil, apperrors.NotFoundError("schedule not found")
	}

	if requester.Role == models.RoleLecturer {
		teaches, err := teachesClass(ctx, s.classes, schedule.ClassID, requester.UserID)
		if err != nil {
			return nil, err
		}
		if !teaches {
			return nil, apperrors.ErrPermissionDenied
		}
	}

	enrollment, err := s.enrollments.Get(ctx, schedule.ClassID, req.StudentID)
	if err != nil {
		return nil, err
	}
	if enrollment == nil || !enrollment.Active() {
		return nil, apperrors.ErrNotEnrolled
	}

	date, err := time.Parse("2006-01-02", req.AttendanceDate)
	if err != nil {
		return nil, apperrors.ValidationError("attendanceDate must be in YYYY-MM-DD form")
	}

	record := &models.AttendanceRecord{
		ScheduleID:     req.ScheduleID,
		StudentID:      req.StudentID,
		AttendanceDate: date,
		Status:         models.AttendanceStatus(req.Status),
		RecordedBy:     requester.UserID,
	}
	if err := s.attendance.Record(ctx, record); err != nil {
		return nil, err
	}
	logger.Info().
		Str("scheduleId", record.ScheduleID).
		Str("studentId", record.StudentID).
		Str("status", string(record.Status)).
		Msg("Attendance recorded")
	return record, nil
}

// ListBySchedule returns a session's attendance sheet, optionally for a
// single calendar day. Lecturers may only view sessions of classes they
// teach.
func (s *AttendanceService) ListBySchedule(ctx context.Context, scheduleID string, date *time.Time, requester *models.User) ([]*models.AttendanceRecord, error) {
	schedule, err := s.schedules.Get(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	if schedule == nil {
		return nil, apperrors.NotFoundError("schedule not found")
	}
	if requester.Role == models.RoleLecturer {
		teaches, err := teachesClass(ctx, s.classes, schedule.ClassID, requester.UserID)
		if err != nil {
			return nil, err
		}
		if !teaches {
			return nil, apperrors.ErrPermissionDenied
		}
	}
	return s.attendance.ListBySchedule(ctx, scheduleID, date)
}
