// Package seed loads the demo dataset. It works through the repository
// interfaces, so the same data backs a fresh PostgreSQL database and the
// in-memory demo store.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/bruce184/OCMS/internal/app/models"
	"github.com/bruce184/OCMS/internal/app/repositories"
	"github.com/bruce184/OCMS/internal/pkg/auth"
	"github.com/bruce184/OCMS/internal/pkg/logger"
)

// DemoPassword is the password of every seeded account.
const DemoPassword = "password123"

func ptr[T any](v T) *T { return &v }

// Apply loads the demo dataset if it is not already present. Presence of
// the admin account is the idempotency marker.
func Apply(ctx context.Context, repos *repositories.Repositories) error {
	existing, err := repos.Users.GetByID(ctx, "ADMIN001")
	if err != nil {
		return fmt.Errorf("failed to check for seeded data: %w", err)
	}
	if existing != nil {
		logger.Debug().Msg("Demo data already present, skipping seed")
		return nil
	}

	logger.Info().Msg("Seeding demo data")

	hash, err := auth.HashPassword(DemoPassword)
	if err != nil {
		return fmt.Errorf("failed to hash demo password: %w", err)
	}

	for _, s := range []models.Semester{
		{SemesterCode: "Fall", Year: 2024},
		{SemesterCode: "Spring", Year: 2024},
	} {
		sem := s
		if err := repos.Semesters.Create(ctx, &sem); err != nil {
			return fmt.Errorf("failed to seed semester %s %d: %w", s.SemesterCode, s.Year, err)
		}
	}

	for _, c := range []models.Course{
		{CourseCode: "CS101", CourseName: "Introduction to Computer Science", Credit: 3, CourseType: models.CourseTypeLecture},
		{CourseCode: "CS102", CourseName: "Programming Fundamentals", Credit: 4, CourseType: models.CourseTypePractical},
		{CourseCode: "MATH101", CourseName: "Calculus I", Credit: 4, CourseType: models.CourseTypeLecture},
		{CourseCode: "ENG101", CourseName: "English Composition", Credit: 3, CourseType: models.CourseTypeLecture},
		{CourseCode: "PHYS101", CourseName: "Physics I", Credit: 4, CourseType: models.CourseTypeLecture},
	} {
		course := c
		if err := repos.Courses.Create(ctx, &course); err != nil {
			return fmt.Errorf("failed to seed course %s: %w", c.CourseCode, err)
		}
	}

	for _, u := range []models.User{
		{UserID: "ADMIN001", Username: "admin", FullName: "System Administrator", Role: models.RoleAdmin, Email: ptr("admin@ocms.edu")},
		{UserID: "LEC001", Username: "dr.smith", FullName: "Dr. John Smith", Role: models.RoleLecturer, Email: ptr("smith@ocms.edu")},
		{UserID: "LEC002", Username: "dr.jones", FullName: "Dr. Sarah Jones", Role: models.RoleLecturer, Email: ptr("jones@ocms.edu")},
		{UserID: "LEC003", Username: "prof.brown", FullName: "Prof. Michael Brown", Role: models.RoleLecturer, Email: ptr("brown@ocms.edu")},
		{UserID: "STU001", Username: "student1", FullName: "Alice Johnson", Role: models.RoleStudent, Email: ptr("alice@student.ocms.edu")},
		{UserID: "STU002", Username: "student2", FullName: "Bob Wilson", Role: models.RoleStudent, Email: ptr("bob@student.ocms.edu")},
		{UserID: "STU003", Username: "student3", FullName: "Carol Davis", Role: models.RoleStudent, Email: ptr("carol@student.ocms.edu")},
		{UserID: "STU004", Username: "student4", FullName: "David Miller", Role: models.RoleStudent, Email: ptr("david@student.ocms.edu")},
		{UserID: "STU005", Username: "student5", FullName: "Eva Garcia", Role: models.RoleStudent, Email: ptr("eva@student.ocms.edu")},
	} {
		user := u
		user.PasswordHash = hash
		if err := repos.Users.Create(ctx, &user); err != nil {
			return fmt.Errorf("failed to seed user %s: %w", u.UserID, err)
		}
	}

	for _, c := range []models.Class{
		{ClassID: "CS101-F24-01", CourseCode: "CS101", SemesterCode: "Fall", Year: 2024, Capacity: 30},
		{ClassID: "CS102-F24-01", CourseCode: "CS102", SemesterCode: "Fall", Year: 2024, Capacity: 25},
		{ClassID: "MATH101-F24-01", CourseCode: "MATH101", SemesterCode: "Fall", Year: 2024, Capacity: 35},
		{ClassID: "ENG101-F24-01", CourseCode: "ENG101", SemesterCode: "Fall", Year: 2024, Capacity: 30},
		{ClassID: "PHYS101-F24-01", CourseCode: "PHYS101", SemesterCode: "Fall", Year: 2024, Capacity: 30},
	} {
		class := c
		if err := repos.Classes.Create(ctx, &class); err != nil {
			return fmt.Errorf("failed to seed class %s: %w", c.ClassID, err)
		}
	}

	for _, s := range []models.Schedule{
		{ScheduleID: "SCH001", ClassID: "CS101-F24-01", Room: "Room 101", TimeSlot: "Monday 9:00 AM - 10:30 AM"},
		{ScheduleID: "SCH002", ClassID: "CS102-F24-01", Room: "Lab 201", TimeSlot: "Tuesday 2:00 PM - 4:00 PM"},
		{ScheduleID: "SCH003", ClassID: "MATH101-F24-01", Room: "Room 102", TimeSlot: "Wednesday 10:00 AM - 11:30 AM"},
		{ScheduleID: "SCH004", ClassID: "ENG101-F24-01", Room: "Room 103", TimeSlot: "Thursday 1:00 PM - 2:30 PM"},
		{ScheduleID: "SCH005", ClassID: "PHYS101-F24-01", Room: "Lab 301", TimeSlot: "Friday 9:00 AM - 11:00 AM"},
	} {
		schedule := s
		if err := repos.Schedules.Create(ctx, &schedule); err != nil {
			return fmt.Errorf("failed to seed schedule %s: %w", s.ScheduleID, err)
		}
	}

	for _, ci := range []models.ClassInstructor{
		{ClassID: "CS101-F24-01", InstructorID: "LEC001", Role: models.InstructorPrimary, SemesterCode: "Fall", Year: 2024},
		{ClassID: "CS102-F24-01", InstructorID: "LEC002", Role: models.InstructorPrimary, SemesterCode: "Fall", Year: 2024},
		{ClassID: "MATH101-F24-01", InstructorID: "LEC003", Role: models.InstructorPrimary, SemesterCode: "Fall", Year: 2024},
		{ClassID: "ENG101-F24-01", InstructorID: "LEC001", Role: models.InstructorPrimary, SemesterCode: "Fall", Year: 2024},
		{ClassID: "PHYS101-F24-01", InstructorID: "LEC002", Role: models.InstructorPrimary, SemesterCode: "Fall", Year: 2024},
	} {
		assignment := ci
		if err := repos.Classes.AssignInstructor(ctx, &assignment); err != nil {
			return fmt.Errorf("failed to seed instructor for %s: %w", ci.ClassID, err)
		}
	}

	for _, e := range []struct{ classID, studentID string }{
		{"CS101-F24-01", "STU001"},
		{"CS101-F24-01", "STU002"},
		{"CS101-F24-01", "STU003"},
		{"CS102-F24-01", "STU001"},
		{"CS102-F24-01", "STU004"},
		{"MATH101-F24-01", "STU002"},
		{"MATH101-F24-01", "STU005"},
		{"ENG101-F24-01", "STU003"},
		{"ENG101-F24-01", "STU004"},
		{"PHYS101-F24-01", "STU001"},
		{"PHYS101-F24-01", "STU005"},
	} {
		if err := repos.Enrollments.Enroll(ctx, e.classID, e.studentID); err != nil {
			return fmt.Errorf("failed to seed enrollment %s/%s: %w", e.classID, e.studentID, err)
		}
	}

	dueDate := time.Now().AddDate(0, 0, 7)
	for _, a := range []models.Assignment{
		{ClassID: "CS101-F24-01", Title: "Introduction to Programming", Description: ptr("Basic programming concepts"), MaxScore: 10},
		{ClassID: "CS102-F24-01", Title: "Variables and Data Types", Description: ptr("Understanding variables and data types"), MaxScore: 10},
		{ClassID: "MATH101-F24-01", Title: "Calculus Quiz 1", Description: ptr("Limits and continuity"), MaxScore: 10},
		{ClassID: "ENG101-F24-01", Title: "Essay Writing", Description: ptr("Write a 500-word essay"), MaxScore: 10},
		{ClassID: "PHYS101-F24-01", Title: "Physics Lab Report", Description: ptr("Lab report on motion"), MaxScore: 10},
	} {
		assignment := a
		assignment.DueDate = ptr(dueDate)
		if err := repos.Assignments.Create(ctx, &assignment); err != nil {
			return fmt.Errorf("failed to seed assignment %q: %w", a.Title, err)
		}
	}

	for _, a := range []models.Announcement{
		{AnnouncementID: "ANN001", ClassID: ptr("CS101-F24-01"), Title: "Welcome to CS101", Content: "Welcome to Introduction to Computer Science!"},
		{AnnouncementID: "ANN002", ClassID: ptr("CS102-F24-01"), Title: "Lab Schedule", Content: "Labs will be held every Tuesday from 2-4 PM."},
		{AnnouncementID: "ANN003", ClassID: ptr("MATH101-F24-01"), Title: "Quiz Reminder", Content: "Quiz 1 will be held next week."},
		{AnnouncementID: "ANN004", ClassID: ptr("ENG101-F24-01"), Title: "Essay Due Date", Content: "Essays are due by the end of this week."},
		{AnnouncementID: "ANN005", ClassID: ptr("PHYS101-F24-01"), Title: "Lab Safety", Content: "Please review lab safety guidelines before next class."},
	} {
		announcement := a
		announcement.PostedBy = "ADMIN001"
		announcement.IsPublished = true
		announcement.Priority = models.PriorityMedium
		if err := repos.Announcements.Create(ctx, &announcement); err != nil {
			return fmt.Errorf("failed to seed announcement %s: %w", a.AnnouncementID, err)
		}
	}

	for _, p := range []models.TuitionPayment{
		{StudentID: "STU001", SemesterCode: "Fall", Year: 2024, Amount: 1500, Status: models.PaymentPaid},
		{StudentID: "STU002", SemesterCode: "Fall", Year: 2024, Amount: 1500, Status: models.PaymentPaid},
		{StudentID: "STU003", SemesterCode: "Fall", Year: 2024, Amount: 1500, Status: models.PaymentPending},
		{StudentID: "STU004", SemesterCode: "Fall", Year: 2024, Amount: 1500, Status: models.PaymentPaid},
		{StudentID: "STU005", SemesterCode: "Fall", Year: 2024, Amount: 1500, Status: models.PaymentPending},
	} {
		payment := p
		payment.PaymentMethod = "Credit Card"
		if err := repos.Tuition.Create(ctx, &payment); err != nil {
			return fmt.Errorf("failed to seed tuition payment for %s: %w", p.StudentID, err)
		}
	}

	logger.Info().Msg("Demo data seeded")
	return nil
}
