package services

import (
	"context"
	"errors"
	"testing"

	"github.com/bruce184/OCMS/internal/app/models"
	"github.com/bruce184/OCMS/internal/app/models/dto"
	"github.com/bruce184/OCMS/internal/pkg/apperrors"
)

func newAssignmentFixture(t *testing.T) (*fixture, *AssignmentService, *models.Assignment) {
	t.Helper()
	f := newFixture(t)
	svc := NewAssignmentService(f.repos.Assignments, f.repos.Enrollments, f.repos.Classes)

	assignment, err := svc.Create(context.Background(), &dto.CreateAssignmentRequest{
		ClassID:  "CS101-F24-01",
		Title:    "Problem Set 1",
		MaxScore: 100,
	}, f.lecturer)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	return f, svc, assignment
}

func TestAssignmentCreateRequiresInstructor(t *testing.T) {
	f := newFixture(t)
	svc := NewAssignmentService(f.repos.Assignments, f.repos.Enrollments, f.repos.Classes)

	ctx := context.Background()
	req := &dto.CreateAssignmentRequest{ClassID: "CS101-F24-01", Title: "PS1", MaxScore: 100}

	// A lecturer not assigned to the class is rejected; admins pass.
	stranger := &models.User{UserID: "LEC099", Role: models.RoleLecturer}
	if _, err := svc.Create(ctx, req, stranger); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Errorf("Create() by unassigned lecturer error = %v, want ErrPermissionDenied", err)
	}
	if _, err := svc.Create(ctx, req, f.admin); err != nil {
		t.Errorf("Create() by admin error = %v", err)
	}
}

func TestSubmitRequiresActiveEnrollment(t *testing.T) {
	f, svc, assignment := newAssignmentFixture(t)
	ctx := context.Background()
	req := &dto.SubmitAssignmentRequest{Content: ptr("my answer")}

	if _, err := svc.Submit(ctx, assignment.AssignmentID, f.outsider.UserID, req); !errors.Is(err, apperrors.ErrNotEnrolled) {
		t.Errorf("Submit() by non-enrolled student error = %v, want ErrNotEnrolled", err)
	}

	sub, err := svc.Submit(ctx, assignment.AssignmentID, f.student.UserID, req)
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if sub.Content == nil || *sub.Content != "my answer" {
		t.Errorf("Submit() content = %v, want \"my answer\"", sub.Content)
	}

	// Dropping the class revokes the right to submit.
	if err := f.repos.Enrollments.Unenroll(ctx, "CS101-F24-01", f.student.UserID); err != nil {
		t.Fatalf("Unenroll() error = %v", err)
	}
	if _, err := svc.Submit(ctx, assignment.AssignmentID, f.student.UserID, req); !errors.Is(err, apperrors.ErrNotEnrolled) {
		t.Errorf("Submit() after dropping error = %v, want ErrNotEnrolled", err)
	}
}

func TestResubmissionClearsScore(t *testing.T) {
	f, svc, assignment := newAssignmentFixture(t)
	ctx := context.Background()

	if _, err := svc.Submit(ctx, assignment.AssignmentID, f.student.UserID, &dto.SubmitAssignmentRequest{Content: ptr("v1")}); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	graded, err := svc.Grade(ctx, assignment.AssignmentID, &dto.GradeSubmissionRequest{StudentID: f.student.UserID, Score: 80}, f.lecturer)
	if err != nil {
		t.Fatalf("Grade() error = %v", err)
	}
	if graded.Score == nil || *graded.Score != 80 {
		t.Fatalf("Grade() score = %v, want 80", graded.Score)
	}

	if _, err := svc.Submit(ctx, assignment.AssignmentID, f.student.UserID, &dto.SubmitAssignmentRequest{Content: ptr("v2")}); err != nil {
		t.Fatalf("re-Submit() error = %v", err)
	}
	sub, err := f.repos.Assignments.GetSubmission(ctx, assignment.AssignmentID, f.student.UserID)
	if err != nil {
		t.Fatalf("GetSubmission() error = %v", err)
	}
	if sub.Content == nil || *sub.Content != "v2" {
		t.Errorf("resubmission content = %v, want \"v2\"", sub.Content)
	}
	if sub.Score != nil {
		t.Errorf("resubmission score = %v, want nil", *sub.Score)
	}
}

func TestGradeValidation(t *testing.T) {
	f, svc, assignment := newAssignmentFixture(t)
	ctx := context.Background()

	if _, err := svc.Submit(ctx, assignment.AssignmentID, f.student.UserID, &dto.SubmitAssignmentRequest{Content: ptr("v1")}); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	over := &dto.GradeSubmissionRequest{StudentID: f.student.UserID, Score: 101}
	if _, err := svc.Grade(ctx, assignment.AssignmentID, over, f.lecturer); !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Errorf("Grade() above max error = %v, want ErrValidationFailed", err)
	}

	missing := &dto.GradeSubmissionRequest{StudentID: f.outsider.UserID, Score: 50}
	if _, err := svc.Grade(ctx, assignment.AssignmentID, missing, f.lecturer); !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Errorf("Grade() without submission error = %v, want ErrResourceNotFound", err)
	}
}

func TestListForStudentJoinsOwnSubmission(t *testing.T) {
	f, svc, assignment := newAssignmentFixture(t)
	ctx := context.Background()

	if _, err := svc.Submit(ctx, assignment.AssignmentID, f.student.UserID, &dto.SubmitAssignmentRequest{Content: ptr("v1")}); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	assignments, err := f.repos.Assignments.ListForStudent(ctx, f.student.UserID)
	if err != nil {
		t.Fatalf("ListForStudent() error = %v", err)
	}
	if len(assignments) != 1 {
		t.Fatalf("ListForStudent() returned %d rows, want 1", len(assignments))
	}
	if assignments[0].SubmittedAt == nil {
		t.Error("ListForStudent() did not join the student's submission")
	}
	if assignments[0].CourseName != "Introduction to Computer Science" {
		t.Errorf("CourseName = %q, want joined course name", assignments[0].CourseName)
	}

	// Students outside the class see nothing.
	none, err := f.repos.Assignments.ListForStudent(ctx, f.outsider.UserID)
	if err != nil {
		t.Fatalf("ListForStudent() error = %v", err)
	}
	if len(none) != 0 {
		t.Errorf("ListForStudent() for outsider returned %d rows, want 0", len(none))
	}
}
