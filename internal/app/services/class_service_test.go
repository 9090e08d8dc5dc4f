package services

import (
	"context"
	"errors"
	"testing"

	"github.com/bruce184/OCMS/internal/app/models"
	"github.com/bruce184/OCMS/internal/app/models/dto"
	"github.com/bruce184/OCMS/internal/pkg/apperrors"
)

func newClassService(f *fixture) *ClassService {
	return NewClassService(f.repos.Classes, f.repos.Enrollments, f.repos.Users)
}

func TestClassUpdateCapacityFloor(t *testing.T) {
	f := newFixture(t)
	svc := newClassService(f)
	ctx := context.Background()

	// One student is enrolled; capacity cannot drop below the roster.
	if _, err := svc.Update(ctx, "CS101-F24-01", &dto.UpdateClassRequest{Capacity: ptr(0)}); !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Errorf("Update() below roster error = %v, want ErrValidationFailed", err)
	}
	class, err := svc.Update(ctx, "CS101-F24-01", &dto.UpdateClassRequest{Capacity: ptr(40)})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if class.Capacity != 40 {
		t.Errorf("Capacity = %d, want 40", class.Capacity)
	}
}

func TestRosterOwnership(t *testing.T) {
	f := newFixture(t)
	svc := newClassService(f)
	ctx := context.Background()

	stranger := &models.User{UserID: "LEC099", Role: models.RoleLecturer}
	if _, err := svc.Roster(ctx, "CS101-F24-01", stranger); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Errorf("Roster() by unassigned lecturer error = %v, want ErrPermissionDenied", err)
	}

	roster, err := svc.Roster(ctx, "CS101-F24-01", f.lecturer)
	if err != nil {
		t.Fatalf("Roster() error = %v", err)
	}
	if len(roster) != 1 || roster[0].StudentID != "STU001" {
		t.Errorf("Roster() = %+v, want the single enrolled student", roster)
	}

	if _, err := svc.Roster(ctx, "GHOST-01", f.admin); !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Errorf("Roster() for unknown class error = %v, want ErrResourceNotFound", err)
	}
}

func TestSetGrade(t *testing.T) {
	f := newFixture(t)
	svc := newClassService(f)
	ctx := context.Background()

	bad := &dto.SetGradeRequest{StudentID: "STU001", Grade: 8.5, Status: "promoted"}
	if _, err := svc.SetGrade(ctx, "CS101-F24-01", bad, f.lecturer); !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Errorf("SetGrade() with unknown status error = %v, want ErrValidationFailed", err)
	}

	req := &dto.SetGradeRequest{StudentID: "STU001", Grade: 8.5, Status: string(models.EnrollmentCompleted)}
	enrollment, err := svc.SetGrade(ctx, "CS101-F24-01", req, f.lecturer)
	if err != nil {
		t.Fatalf("SetGrade() error = %v", err)
	}
	if enrollment.Grade == nil || *enrollment.Grade != 8.5 {
		t.Errorf("Grade = %v, want 8.5", enrollment.Grade)
	}
	if enrollment.Status != models.EnrollmentCompleted {
		t.Errorf("Status = %q, want %q", enrollment.Status, models.EnrollmentCompleted)
	}
}

func TestAssignInstructorRequiresLecturer(t *testing.T) {
	f := newFixture(t)
	svc := newClassService(f)
	ctx := context.Background()

	req := &dto.AssignInstructorRequest{InstructorID: "STU001", Role: "primary"}
	if _, err := svc.AssignInstructor(ctx, "CS101-F24-01", req); !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Errorf("AssignInstructor() with a student error = %v, want ErrValidationFailed", err)
	}

	req = &dto.AssignInstructorRequest{InstructorID: "GHOST", Role: "primary"}
	if _, err := svc.AssignInstructor(ctx, "CS101-F24-01", req); !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Errorf("AssignInstructor() with unknown user error = %v, want ErrResourceNotFound", err)
	}
}
