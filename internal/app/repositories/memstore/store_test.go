package memstore

import (
	"context"
	"errors"
	"testing"

	"github.com/bruce184/OCMS/internal/app/models"
	"github.com/bruce184/OCMS/internal/app/repositories"
	"github.com/bruce184/OCMS/internal/pkg/apperrors"
)

// newSeededRepos builds a store holding one course, one semester, one class
// with the given capacity and a handful of student accounts.
func newSeededRepos(t *testing.T, capacity int, studentIDs ...string) *repositories.Repositories {
	t.Helper()
	ctx := context.Background()
	repos := NewRepositories(NewStore())

	if err := repos.Courses.Create(ctx, &models.Course{
		CourseCode: "CS101",
		CourseName: "Introduction to Computer Science",
		Credit:     3,
		CourseType: models.CourseTypeLecture,
	}); err != nil {
		t.Fatalf("create course: %v", err)
	}
	if err := repos.Semesters.Create(ctx, &models.Semester{SemesterCode: "Fall", Year: 2024}); err != nil {
		t.Fatalf("create semester: %v", err)
	}
	if err := repos.Classes.Create(ctx, &models.Class{
		ClassID:      "CS101-F24-01",
		CourseCode:   "CS101",
		SemesterCode: "Fall",
		Year:         2024,
		Capacity:     capacity,
	}); err != nil {
		t.Fatalf("create class: %v", err)
	}

	for _, id := range studentIDs {
		if err := repos.Users.Create(ctx, &models.User{
			UserID:   id,
			Username: id,
			FullName: "Student " + id,
			Role:     models.RoleStudent,
		}); err != nil {
			t.Fatalf("create user %s: %v", id, err)
		}
	}
	return repos
}

func TestUserStoreRejectsDuplicates(t *testing.T) {
	ctx := context.Background()
	repos := newSeededRepos(t, 10, "STU001")

	tests := []struct {
		name string
		user models.User
	}{
		{name: "duplicate id", user: models.User{UserID: "STU001", Username: "someone", Role: models.RoleStudent}},
		{name: "duplicate username", user: models.User{UserID: "STU099", Username: "STU001", Role: models.RoleStudent}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.user.FullName = "Dup"
			if err := repos.Users.Create(ctx, &tt.user); !errors.Is(err, apperrors.ErrDuplicateIdentity) {
				t.Errorf("Create() error = %v, want ErrDuplicateIdentity", err)
			}
		})
	}
}

func TestUserStoreDeleteBlockedByEnrollment(t *testing.T) {
	ctx := context.Background()
	repos := newSeededRepos(t, 10, "STU001")

	if err := repos.Enrollments.Enroll(ctx, "CS101-F24-01", "STU001"); err != nil {
		t.Fatalf("Enroll() error = %v", err)
	}
	if err := repos.Users.Delete(ctx, "STU001"); !errors.Is(err, apperrors.ErrReferentialConflict) {
		t.Errorf("Delete() error = %v, want ErrReferentialConflict", err)
	}
}

func TestCourseStoreDeleteBlockedByClasses(t *testing.T) {
	ctx := context.Background()
	repos := newSeededRepos(t, 10)

	if err := repos.Courses.Delete(ctx, "CS101"); !errors.Is(err, apperrors.ErrReferentialConflict) {
		t.Errorf("Delete() error = %v, want ErrReferentialConflict", err)
	}
	if err := repos.Classes.Delete(ctx, "CS101-F24-01"); err != nil {
		t.Fatalf("delete class: %v", err)
	}
	if err := repos.Courses.Delete(ctx, "CS101"); err != nil {
		t.Errorf("Delete() after removing classes error = %v", err)
	}
}

func TestGetMissingReturnsNilNil(t *testing.T) {
	ctx := context.Background()
	repos := newSeededRepos(t, 10)

	user, err := repos.Users.GetByID(ctx, "NOBODY")
	if err != nil || user != nil {
		t.Errorf("Users.GetByID() = (%v, %v), want (nil, nil)", user, err)
	}
	class, err := repos.Classes.Get(ctx, "NOPE")
	if err != nil || class != nil {
		t.Errorf("Classes.Get() = (%v, %v), want (nil, nil)", class, err)
	}
	course, err := repos.Courses.Get(ctx, "XX999")
	if err != nil || course != nil {
		t.Errorf("Courses.Get() = (%v, %v), want (nil, nil)", course, err)
	}
}
