package services

import (
	"context"

	"github.com/bruce184/OCMS/internal/app/models"
	"github.com/bruce184/OCMS/internal/app/repositories"
	"github.com/bruce184/OCMS/internal/pkg/apperrors"
)

// StudentService serves the student directory and per-student sub-resources.
type StudentService struct {
	users       repositories.UserRepository
	enrollments repositories.EnrollmentRepository
	schedules   repositories.ScheduleRepository
	assignments repositories.AssignmentRepository
	attendance  repositories.AttendanceRepository
	tuition     repositories.TuitionRepository
}

// NewStudentService creates a new student service
func NewStudentService(
	users repositories.UserRepository,
	enrollments repositories.EnrollmentRepository,
	schedules repositories.ScheduleRepository,
	assignments repositories.AssignmentRepository,
	attendance repositories.AttendanceRepository,
	tuition repositories.TuitionRepository,
) *StudentService {
	return &StudentService{
		users:       users,
		enrollments: enrollments,
		schedules:   schedules,
		assignments: assignments,
		attendance:  attendance,
		tuition:     tuition,
	}
}

// List returns all students.
func (s *StudentService) List(ctx context.Context) ([]*models.User, error) {
	return s.users.List(ctx, models.RoleStudent)
}

// Get returns one student's profile.
func (s *StudentService) Get(ctx context.Context, studentID string) (*models.User, error) {
	user, err := s.users.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Role != models.RoleStudent {
		return nil, apperrors.ErrResourceNotFound
	}
	return user, nil
}

// Enrollments returns the student's enrollment history.
func (s *StudentService) Enrollments(ctx context.Context, studentID string) ([]*models.Enrollment, error) {
	if _, err := s.Get(ctx, studentID); err != nil {
		return nil, err
	}
	return s.enrollments.ListByStudent(ctx, studentID)
}

// Schedule returns the sessions of the student's active classes.
func (s *StudentService) Schedule(ctx context.Context, studentID string) ([]*models.Schedule, error) {
	if _, err := s.Get(ctx, studentID); err != nil {
		return nil, err
	}
	return s.schedules.ListByStudent(ctx, studentID)
}

// Assignments returns the coursework of the student's active classes,
// joined with the student's own submissions.
func (s *StudentService) Assignments(ctx context.Context, studentID string) ([]*models.Assignment, error) {
	if _, err := s.Get(ctx, studentID); err != nil {
		return nil, err
	}
	return s.assignments.ListForStudent(ctx, studentID)
}

// Attendance returns the student's attendance history.
func (s *StudentService) Attendance(ctx context.Context, studentID string) ([]*models.AttendanceRecord, error) {
	if _, err := s.Get(ctx, studentID); err != nil {
		return nil, err
	}
	return s.attendance.ListByStudent(ctx, studentID)
}

// Tuition returns the student's payment history.
func (s *StudentService) Tuition(ctx context.Context, studentID string) ([]*models.TuitionPayment, error) {
	if _, err := s.Get(ctx, studentID); err != nil {
		return nil, err
	}
	return s.tuition.ListByStudent(ctx, studentID)
}
