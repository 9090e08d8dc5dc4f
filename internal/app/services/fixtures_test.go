package services

import (
	"context"
	"testing"

	"github.com/bruce184/OCMS/internal/app/models"
	"github.com/bruce184/OCMS/internal/app/repositories"
	"github.com/bruce184/OCMS/internal/app/repositories/memstore"
)

type fixture struct {
	repos    *repositories.Repositories
	admin    *models.User
	lecturer *models.User
	student  *models.User
	outsider *models.User // student without any enrollment
}

// newFixture builds a store with one class taught by the lecturer and one
// enrolled student.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	repos := memstore.NewRepositories(memstore.NewStore())

	users := []*models.User{
		{UserID: "ADM001", Username: "admin1", FullName: "Admin One", Role: models.RoleAdmin},
		{UserID: "LEC001", Username: "lecturer1", FullName: "Lecturer One", Role: models.RoleLecturer},
		{UserID: "STU001", Username: "student1", FullName: "Student One", Role: models.RoleStudent},
		{UserID: "STU002", Username: "student2", FullName: "Student Two", Role: models.RoleStudent},
	}
	for _, u := range users {
		u.PasswordHash = "x"
		if err := repos.Users.Create(ctx, u); err != nil {
			t.Fatalf("create user %s: %v", u.UserID, err)
		}
	}

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
		Capacity:     30,
	}); err != nil {
		t.Fatalf("create class: %v", err)
	}
	if err := repos.Classes.AssignInstructor(ctx, &models.ClassInstructor{
		ClassID:      "CS101-F24-01",
		InstructorID: "LEC001",
		Role:         models.InstructorPrimary,
		SemesterCode: "Fall",
		Year:         2024,
	}); err != nil {
		t.Fatalf("assign instructor: %v", err)
	}
	if err := repos.Enrollments.Enroll(ctx, "CS101-F24-01", "STU001"); err != nil {
		t.Fatalf("enroll student: %v", err)
	}

	return &fixture{
		repos:    repos,
		admin:    users[0],
		lecturer: users[1],
		student:  users[2],
		outsider: users[3],
	}
}
