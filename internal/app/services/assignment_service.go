package services

import (
	"context"

	"github.com/bruce184/OCMS/internal/app/models"
	"github.com/bruce184/OCMS/internal/app/models/dto"
	"github.com/bruce184/OCMS/internal/app/repositories"
	"github.com/bruce184/OCMS/internal/pkg/apperrors"
	"github.com/bruce184/OCMS/internal/pkg/logger"
)

// AssignmentService handles coursework, submissions and grading.
type AssignmentService struct {
	assignments repositories.AssignmentRepository
	enrollments repositories.EnrollmentRepository
	classes     repositories.ClassRepository
}

// NewAssignmentService creates a new assignment service
func NewAssignmentService(assignments repositories.AssignmentRepository, enrollments repositories.EnrollmentRepository, classes repositories.ClassRepository) *AssignmentService {
	return &AssignmentService{assignments: assignments, enrollments: enrollments, classes: classes}
}

// requireInstructor fails unless the requester is an admin or teaches the
// class.
func (s *AssignmentService) requireInstructor(ctx context.Context, classID string, requester *models.User) error {
	if requester.Role == models.RoleAdmin {
		return nil
	}
	teaches, err := teachesClass(ctx, s.classes, classID, requester.UserID)
	if err != nil {
		return err
	}
	if !teaches {
		return apperrors.ErrPermissionDenied
	}
	return nil
}

// ListByClass returns the assignments of one class.
func (s *AssignmentService) ListByClass(ctx context.Context, classID string) ([]*models.Assignment, error) {
	return s.assignments.ListByClass(ctx, classID)
}

// Get returns one assignment.
func (s *AssignmentService) Get(ctx context.Context, assignmentID int64) (*models.Assignment, error) {
	assignment, err := s.assignments.Get(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	if assignment == nil {
		return nil, apperrors.ErrResourceNotFound
	}
	return assignment, nil
}

// Create adds coursework to a class the requester teaches.
func (s *AssignmentService) Create(ctx context.Context, req *dto.CreateAssignmentRequest, requester *models.User) (*models.Assignment, error) {
	if err := s.requireInstructor(ctx, req.ClassID, requester); err != nil {
		return nil, err
	}
	assignment := &models.Assignment{
		ClassID:     req.ClassID,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		MaxScore:    req.MaxScore,
	}
	if err := s.assignments.Create(ctx, assignment); err != nil {
		return nil, err
	}
	logger.Info().Int64("assignmentId", assignment.AssignmentID).Str("classId", assignment.ClassID).Msg("Assignment created")
	return assignment, nil
}

// Update merges the given fields into an assignment the requester teaches.
func (s *AssignmentService) Update(ctx context.Context, assignmentID int64, req *dto.UpdateAssignmentRequest, requester *models.User) (*models.Assignment, error) {
	assignment, err := s.Get(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	if err := s.requireInstructor(ctx, assignment.ClassID, requester); err != nil {
		return nil, err
	}
	if req.Title != nil {
		assignment.Title = *req.Title
	}
	if req.Description != nil {
		assignment.Description = req.Description
	}
	if req.DueDate != nil {
		assignment.DueDate = req.DueDate
	}
	if req.MaxScore != nil {
		assignment.MaxScore = *req.MaxScore
	}
	if err := s.assignments.Update(ctx, assignment); err != nil {
		return nil, err
	}
	return assignment, nil
}

// Delete removes an assignment the requester teaches, and its submissions.
func (s *AssignmentService) Delete(ctx context.Context, assignmentID int64, requester *models.User) error {
	assignment, err := s.Get(ctx, assignmentID)
	if err != nil {
		return err
	}
	if err := s.requireInstructor(ctx, assignment.ClassID, requester); err != nil {
		return err
	}
	return s.assignments.Delete(ctx, assignmentID)
}

// Submit records a student's submission. The student must be actively
// enrolled in the assignment's class; resubmitting overwrites the previous
// content and clears any score.
func (s *AssignmentService) Submit(ctx context.Context, assignmentID int64, studentID string, req *dto.SubmitAssignmentRequest) (*models.Submission, error) {
	assignment, err := s.Get(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	enrollment, err := s.enrollments.Get(ctx, assignment.ClassID, studentID)
	if err != nil {
		return nil, err
	}
	if enrollment == nil || !enrollment.Active() {
		return nil, apperrors.ErrNotEnrolled
	}

	submission := &models.Submission{
		AssignmentID: assignmentID,
		StudentID:    studentID,
		Content:      req.Content,
		FilePath:     req.FilePath,
	}
	if err := s.assignments.Submit(ctx, submission); err != nil {
		return nil, err
	}
	logger.Info().Int64("assignmentId", assignmentID).Str("studentId", studentID).Msg("Assignment submitted")
	return submission, nil
}

// ListSubmissions returns every submission for an assignment the requester
// teaches.
func (s *AssignmentService) ListSubmissions(ctx context.Context, assignmentID int64, requester *models.User) ([]*models.Submission, error) {
	assignment, err := s.Get(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	if err := s.requireInstructor(ctx, assignment.ClassID, requester); err != nil {
		return nil, err
	}
	return s.assignments.ListSubmissions(ctx, assignmentID)
}

// Grade scores one student's submission. The score is capped by the
// assignment's maximum.
func (s *AssignmentService) Grade(ctx context.Context, assignmentID int64, req *dto.GradeSubmissionRequest, requester *models.User) (*models.Submission, error) {
	assignment, err := s.Get(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	if err := s.requireInstructor(ctx, assignment.ClassID, requester); err != nil {
		return nil, err
	}
	if req.Score > assignment.MaxScore {
		return nil, apperrors.ValidationError("score exceeds the assignment's maximum")
	}
	if err := s.assignments.ScoreSubmission(ctx, assignmentID, req.StudentID, req.Score); err != nil {
		return nil, err
	}
	return s.assignments.GetSubmission(ctx, assignmentID, req.StudentID)
}
