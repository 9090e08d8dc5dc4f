package memstore

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/bruce184/OCMS/internal/app/models"
	"github.com/bruce184/OCMS/internal/pkg/apperrors"
)

func TestEnrollFillsSeatsUpToCapacity(t *testing.T) {
	ctx := context.Background()
	repos := newSeededRepos(t, 2, "STU001", "STU002", "STU003")

	if err := repos.Enrollments.Enroll(ctx, "CS101-F24-01", "STU001"); err != nil {
		t.Fatalf("Enroll(STU001) error = %v", err)
	}
	if err := repos.Enrollments.Enroll(ctx, "CS101-F24-01", "STU002"); err != nil {
		t.Fatalf("Enroll(STU002) error = %v", err)
	}
	if err := repos.Enrollments.Enroll(ctx, "CS101-F24-01", "STU003"); !errors.Is(err, apperrors.ErrClassFull) {
		t.Fatalf("Enroll(STU003) error = %v, want ErrClassFull", err)
	}

	class, err := repos.Classes.Get(ctx, "CS101-F24-01")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if class.CurrentEnrollment != 2 {
		t.Errorf("CurrentEnrollment = %d, want 2", class.CurrentEnrollment)
	}
}

func TestEnrollRejectsDuplicateAndUnknown(t *testing.T) {
	ctx := context.Background()
	repos := newSeededRepos(t, 5, "STU001")

	if err := repos.Enrollments.Enroll(ctx, "CS101-F24-01", "STU001"); err != nil {
		t.Fatalf("Enroll() error = %v", err)
	}

	tests := []struct {
		name      string
		classID   string
		studentID string
		wantErr   error
	}{
		{name: "already enrolled", classID: "CS101-F24-01", studentID: "STU001", wantErr: apperrors.ErrAlreadyEnrolled},
		{name: "unknown class", classID: "NOPE-01", studentID: "STU001", wantErr: apperrors.ErrResourceNotFound},
		{name: "unknown student", classID: "CS101-F24-01", studentID: "GHOST", wantErr: apperrors.ErrResourceNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := repos.Enrollments.Enroll(ctx, tt.classID, tt.studentID); !errors.Is(err, tt.wantErr) {
				t.Errorf("Enroll() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestUnenrollFreesSeat(t *testing.T) {
	ctx := context.Background()
	repos := newSeededRepos(t, 1, "STU001", "STU002")

	if err := repos.Enrollments.Unenroll(ctx, "CS101-F24-01", "STU001"); !errors.Is(err, apperrors.ErrNotEnrolled) {
		t.Fatalf("Unenroll() before enrolling error = %v, want ErrNotEnrolled", err)
	}

	if err := repos.Enrollments.Enroll(ctx, "CS101-F24-01", "STU001"); err != nil {
		t.Fatalf("Enroll(STU001) error = %v", err)
	}
	if err := repos.Enrollments.Enroll(ctx, "CS101-F24-01", "STU002"); !errors.Is(err, apperrors.ErrClassFull) {
		t.Fatalf("Enroll(STU002) error = %v, want ErrClassFull", err)
	}

	if err := repos.Enrollments.Unenroll(ctx, "CS101-F24-01", "STU001"); err != nil {
		t.Fatalf("Unenroll() error = %v", err)
	}
	dropped, err := repos.Enrollments.Get(ctx, "CS101-F24-01", "STU001")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if dropped.Status != models.EnrollmentDropped {
		t.Errorf("Status after unenroll = %q, want %q", dropped.Status, models.EnrollmentDropped)
	}

	// The freed seat is usable again.
	if err := repos.Enrollments.Enroll(ctx, "CS101-F24-01", "STU002"); err != nil {
		t.Errorf("Enroll(STU002) after drop error = %v", err)
	}
}

func TestReenrollResetsGrade(t *testing.T) {
	ctx := context.Background()
	repos := newSeededRepos(t, 5, "STU001")

	if err := repos.Enrollments.Enroll(ctx, "CS101-F24-01", "STU001"); err != nil {
		t.Fatalf("Enroll() error = %v", err)
	}
	if err := repos.Enrollments.SetGrade(ctx, "CS101-F24-01", "STU001", 4.5, models.EnrollmentFailed); err != nil {
		t.Fatalf("SetGrade() error = %v", err)
	}

	// A failed enrollment no longer holds a seat; re-enrolling starts over.
	if err := repos.Enrollments.Enroll(ctx, "CS101-F24-01", "STU001"); err != nil {
		t.Fatalf("re-Enroll() error = %v", err)
	}
	enrollment, err := repos.Enrollments.Get(ctx, "CS101-F24-01", "STU001")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if enrollment.Status != models.EnrollmentEnrolled {
		t.Errorf("Status = %q, want %q", enrollment.Status, models.EnrollmentEnrolled)
	}
	if enrollment.Grade != nil {
		t.Errorf("Grade = %v, want nil after re-enrollment", *enrollment.Grade)
	}
}

func TestEnrollmentListsCarryCourseContext(t *testing.T) {
	ctx := context.Background()
	repos := newSeededRepos(t, 5, "STU001")

	if err := repos.Enrollments.Enroll(ctx, "CS101-F24-01", "STU001"); err != nil {
		t.Fatalf("Enroll() error = %v", err)
	}
	enrollments, err := repos.Enrollments.ListByStudent(ctx, "STU001")
	if err != nil {
		t.Fatalf("ListByStudent() error = %v", err)
	}
	if len(enrollments) != 1 {
		t.Fatalf("ListByStudent() returned %d rows, want 1", len(enrollments))
	}
	e := enrollments[0]
	if e.CourseCode != "CS101" || e.CourseName != "Introduction to Computer Science" || e.Credit != 3 {
		t.Errorf("joined fields = (%q, %q, %d), want (CS101, Introduction to Computer Science, 3)",
			e.CourseCode, e.CourseName, e.Credit)
	}
}

func TestConcurrentEnrollGrantsLastSeatOnce(t *testing.T) {
	ctx := context.Background()
	const contenders = 16

	students := make([]string, contenders)
	for i := range students {
		students[i] = fmt.Sprintf("STU%03d", i+1)
	}
	repos := newSeededRepos(t, 1, students...)

	var wg sync.WaitGroup
	errs := make([]error, contenders)
	for i, id := range students {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			errs[i] = repos.Enrollments.Enroll(ctx, "CS101-F24-01", id)
		}(i, id)
	}
	wg.Wait()

	var won, full int
	for _, err := range errs {
		switch {
		case err == nil:
			won++
		case errors.Is(err, apperrors.ErrClassFull):
			full++
		default:
			t.Errorf("Enroll() unexpected error = %v", err)
		}
	}
	if won != 1 {
		t.Errorf("%d enrollments succeeded, want exactly 1", won)
	}
	if full != contenders-1 {
		t.Errorf("%d enrollments hit ErrClassFull, want %d", full, contenders-1)
	}

	class, err := repos.Classes.Get(ctx, "CS101-F24-01")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if class.CurrentEnrollment != 1 {
		t.Errorf("CurrentEnrollment = %d, want 1", class.CurrentEnrollment)
	}
}
