package services

import (
	"context"

	"github.com/bruce184/OCMS/internal/app/models"
	"github.com/bruce184/OCMS/internal/app/models/dto"
	"github.com/bruce184/OCMS/internal/app/repositories"
	"github.com/bruce184/OCMS/internal/pkg/apperrors"
	"github.com/bruce184/OCMS/internal/pkg/logger"
)

// ClassService handles class offerings, instructor assignments and the
// enrollment lifecycle.
type ClassService struct {
	classes     repositories.ClassRepository
	enrollments repositories.EnrollmentRepository
	users       repositories.UserRepository
}

// NewClassService creates a new class service
func NewClassService(classes repositories.ClassRepository, enrollments repositories.EnrollmentRepository, users repositories.UserRepository) *ClassService {
	return &ClassService{classes: classes, enrollments: enrollments, users: users}
}

// teachesClass reports whether the user is assigned as an instructor of the
// class. Admins are expected to bypass this check at the call site.
func teachesClass(ctx context.Context, classes repositories.ClassRepository, classID, userID string) (bool, error) {
	taught, err := classes.ListByInstructor(ctx, userID)
	if err != nil {
		return false, err
	}
	for _, class := range taught {
		if class.ClassID == classID {
			return true, nil
		}
	}
	return false, nil
}

// List returns all class offerings.
func (s *ClassService) List(ctx context.Context) ([]*models.Class, error) {
	return s.classes.List(ctx)
}

// Get returns one class offering.
func (s *ClassService) Get(ctx context.Context, classID string) (*models.Class, error) {
	class, err := s.classes.Get(ctx, classID)
	if err != nil {
		return nil, err
	}
	if class == nil {
		return nil, apperrors.ErrResourceNotFound
	}
	return class, nil
}

// Create schedules a class offering with an empty roster.
func (s *ClassService) Create(ctx context.Context, req *dto.CreateClassRequest) (*models.Class, error) {
	class := &models.Class{
		ClassID:      req.ClassID,
		CourseCode:   req.CourseCode,
		SemesterCode: req.SemesterCode,
		Year:         req.Year,
		Capacity:     req.Capacity,
	}
	if err := s.classes.Create(ctx, class); err != nil {
		return nil, err
	}
	logger.Info().Str("classId", class.ClassID).Msg("Class created")
	return class, nil
}

// Update changes a class's capacity. Capacity may not drop below the
// current roster size.
func (s *ClassService) Update(ctx context.Context, classID string, req *dto.UpdateClassRequest) (*models.Class, error) {
	class, err := s.Get(ctx, classID)
	if err != nil {
		return nil, err
	}
	if req.Capacity != nil {
		if *req.Capacity < class.CurrentEnrollment {
			return nil, apperrors.ValidationError("capacity cannot be below current enrollment")
		}
		class.Capacity = *req.Capacity
	}
	if err := s.classes.Update(ctx, class); err != nil {
		return nil, err
	}
	return class, nil
}

// Delete removes a class without enrollments or schedules.
func (s *ClassService) Delete(ctx context.Context, classID string) error {
	return s.classes.Delete(ctx, classID)
}

// AssignInstructor attaches a lecturer to a class.
func (s *ClassService) AssignInstructor(ctx context.Context, classID string, req *dto.AssignInstructorRequest) (*models.ClassInstructor, error) {
	class, err := s.Get(ctx, classID)
	if err != nil {
		return nil, err
	}
	instructor, err := s.users.GetByID(ctx, req.InstructorID)
	if err != nil {
		return nil, err
	}
	if instructor == nil {
		return nil, apperrors.NotFoundError("instructor not found")
	}
	if instructor.Role != models.RoleLecturer {
		return nil, apperrors.ValidationError("instructor must be a lecturer")
	}

	ci := &models.ClassInstructor{
		ClassID:      classID,
		InstructorID: req.InstructorID,
		Role:         models.InstructorRole(req.Role),
		SemesterCode: class.SemesterCode,
		Year:         class.Year,
	}
	if err := s.classes.AssignInstructor(ctx, ci); err != nil {
		return nil, err
	}
	logger.Info().Str("classId", classID).Str("instructorId", req.InstructorID).Msg("Instructor assigned")
	return ci, nil
}

// Enroll occupies a seat for the student.
func (s *ClassService) Enroll(ctx context.Context, classID, studentID string) (*models.Enrollment, error) {
	if err := s.enrollments.Enroll(ctx, classID, studentID); err != nil {
		return nil, err
	}
	logger.Info().Str("classId", classID).Str("studentId", studentID).Msg("Student enrolled")
	return s.enrollments.Get(ctx, classID, studentID)
}

// Unenroll releases the student's seat.
func (s *ClassService) Unenroll(ctx context.Context, classID, studentID string) error {
	if err := s.enrollments.Unenroll(ctx, classID, studentID); err != nil {
		return err
	}
	logger.Info().Str("classId", classID).Str("studentId", studentID).Msg("Student unenrolled")
	return nil
}

// Roster returns a class's enrollments. Lecturers may only view rosters of
// classes they teach.
func (s *ClassService) Roster(ctx context.Context, classID string, requester *models.User) ([]*models.Enrollment, error) {
	if _, err := s.Get(ctx, classID); err != nil {
		return nil, err
	}
	if requester.Role == models.RoleLecturer {
		teaches, err := teachesClass(ctx, s.classes, classID, requester.UserID)
		if err != nil {
			return nil, err
		}
		if !teaches {
			return nil, apperrors.ErrPermissionDenied
		}
	}
	return s.enrollments.ListByClass(ctx, classID)
}

// SetGrade records a final grade for one student in a class. Lecturers may
// only grade classes they teach.
func (s *ClassService) SetGrade(ctx context.Context, classID string, req *dto.SetGradeRequest, requester *models.User) (*models.Enrollment, error) {
	if requester.Role == models.RoleLecturer {
		teaches, err := teachesClass(ctx, s.classes, classID, requester.UserID)
		if err != nil {
			return nil, err
		}
		if !teaches {
			return nil, apperrors.ErrPermissionDenied
		}
	}

	status := models.EnrollmentStatus(req.Status)
	if !status.Valid() {
		return nil, apperrors.ValidationError("unknown enrollment status")
	}
	if err := s.enrollments.SetGrade(ctx, classID, req.StudentID, req.Grade, status); err != nil {
		return nil, err
	}
	return s.enrollments.Get(ctx, classID, req.StudentID)
}
