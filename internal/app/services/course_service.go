package services

import (
	"context"

	"github.com/bruce184/OCMS/internal/app/models"
	"github.com/bruce184/OCMS/internal/app/models/dto"
	"github.com/bruce184/OCMS/internal/app/repositories"
	"github.com/bruce184/OCMS/internal/pkg/apperrors"
	"github.com/bruce184/OCMS/internal/pkg/logger"
)

// CourseService handles the course catalog and teaching terms.
type CourseService struct {
	courses   repositories.CourseRepository
	semesters repositories.SemesterRepository
	classes   repositories.ClassRepository
}

// NewCourseService creates a new course service
func NewCourseService(courses repositories.CourseRepository, semesters repositories.SemesterRepository, classes repositories.ClassRepository) *CourseService {
	return &CourseService{courses: courses, semesters: semesters, classes: classes}
}

// ListCourses returns the full catalog.
func (s *CourseService) ListCourses(ctx context.Context) ([]*models.Course, error) {
	return s.courses.List(ctx)
}

// GetCourse returns one catalog course.
func (s *CourseService) GetCourse(ctx context.Context, courseCode string) (*models.Course, error) {
	course, err := s.courses.Get(ctx, courseCode)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, apperrors.ErrResourceNotFound
	}
	return course, nil
}

// CreateCourse adds a catalog course.
func (s *CourseService) CreateCourse(ctx context.Context, req *dto.CreateCourseRequest) (*models.Course, error) {
	course := &models.Course{
		CourseCode: req.CourseCode,
		CourseName: req.CourseName,
		Credit:     req.Credit,
		CourseType: models.CourseType(req.CourseType),
	}
	if err := s.courses.Create(ctx, course); err != nil {
		return nil, err
	}
	logger.Info().Str("courseCode", course.CourseCode).Msg("Course created")
	return course, nil
}

// UpdateCourse merges the given fields into an existing course.
func (s *CourseService) UpdateCourse(ctx context.Context, courseCode string, req *dto.UpdateCourseRequest) (*models.Course, error) {
	course, err := s.GetCourse(ctx, courseCode)
	if err != nil {
		return nil, err
	}
	if req.CourseName != nil {
		course.CourseName = *req.CourseName
	}
	if req.Credit != nil {
		course.Credit = *req.Credit
	}
	if req.CourseType != nil {
		course.CourseType = models.CourseType(*req.CourseType)
	}
	if err := s.courses.Update(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

// DeleteCourse removes a catalog course without scheduled classes.
func (s *CourseService) DeleteCourse(ctx context.Context, courseCode string) error {
	if err := s.courses.Delete(ctx, courseCode); err != nil {
		return err
	}
	logger.Info().Str("courseCode", courseCode).Msg("Course deleted")
	return nil
}

// ListCourseClasses returns the scheduled offerings of one course.
func (s *CourseService) ListCourseClasses(ctx context.Context, courseCode string) ([]*models.Class, error) {
	course, err := s.courses.Get(ctx, courseCode)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, apperrors.ErrResourceNotFound
	}
	return s.classes.ListByCourse(ctx, courseCode)
}

// ListSemesters returns all teaching terms.
func (s *CourseService) ListSemesters(ctx context.Context) ([]*models.Semester, error) {
	return s.semesters.List(ctx)
}

// CreateSemester adds a teaching term.
func (s *CourseService) CreateSemester(ctx context.Context, req *dto.CreateSemesterRequest) (*models.Semester, error) {
	semester := &models.Semester{SemesterCode: req.SemesterCode, Year: req.Year}
	if err := s.semesters.Create(ctx, semester); err != nil {
		return nil, err
	}
	return semester, nil
}

// DeleteSemester removes a teaching term without scheduled classes.
func (s *CourseService) DeleteSemester(ctx context.Context, semesterCode string, year int) error {
	return s.semesters.Delete(ctx, semesterCode, year)
}
