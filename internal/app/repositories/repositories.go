package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bruce184/OCMS/internal/app/models"
)

// Each entity family exposes list/get/create/update/delete behind an
// interface so the API can run against either PostgreSQL or the in-memory
// demo store. Get on a missing key returns (nil, nil); the API layer turns
// that into a 404.

// UserRepository handles users and their 1:1 role-subtype rows.
type UserRepository interface {
	// Create inserts the user row and its role-subtype row atomically.
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, userID string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	// List returns users, optionally filtered to one role ("" means all).
	List(ctx context.Context, role models.Role) ([]*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, userID string) error
	Exists(ctx context.Context, userID, username string) (bool, error)
}

// CourseRepository handles catalog entries.
type CourseRepository interface {
	List(ctx context.Context) ([]*models.Course, error)
	Get(ctx context.Context, courseCode string) (*models.Course, error)
	Create(ctx context.Context, course *models.Course) error
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, courseCode string) error
}

// SemesterRepository handles teaching terms.
type SemesterRepository interface {
	List(ctx context.Context) ([]*models.Semester, error)
	Get(ctx context.Context, semesterCode string, year int) (*models.Semester, error)
	Create(ctx context.Context, semester *models.Semester) error
	Delete(ctx context.Context, semesterCode string, year int) error
}

// ClassRepository handles scheduled offerings and instructor assignments.
type ClassRepository interface {
	List(ctx context.Context) ([]*models.Class, error)
	ListByCourse(ctx context.Context, courseCode string) ([]*models.Class, error)
	ListByInstructor(ctx context.Context, instructorID string) ([]*models.Class, error)
	Get(ctx context.Context, classID string) (*models.Class, error)
	Create(ctx context.Context, class *models.Class) error
	// Update changes capacity; the enrollment counter is owned by
	// EnrollmentRepository.
	Update(ctx context.Context, class *models.Class) error
	Delete(ctx context.Context, classID string) error
	AssignInstructor(ctx context.Context, ci *models.ClassInstructor) error
}

// EnrollmentRepository owns the seat counter. Enroll and Unenroll are the
// only writers of current_enrollment, and both pair the counter update
// with the enrollment row change in one atomic step.
type EnrollmentRepository interface {
	// Enroll occupies a seat: fails with apperrors.ErrClassFull when no
	// seat is free, ErrAlreadyEnrolled on an active row, and
	// ErrResourceNotFound on an unknown class.
	Enroll(ctx context.Context, classID, studentID string) error
	// Unenroll releases a seat: marks the row dropped and decrements the
	// counter, floored at zero. Fails with apperrors.ErrNotEnrolled when
	// no active row exists.
	Unenroll(ctx context.Context, classID, studentID string) error
	Get(ctx context.Context, classID, studentID string) (*models.Enrollment, error)
	ListByClass(ctx context.Context, classID string) ([]*models.Enrollment, error)
	ListByStudent(ctx context.Context, studentID string) ([]*models.Enrollment, error)
	SetGrade(ctx context.Context, classID, studentID string, grade float64, status models.EnrollmentStatus) error
}

// ScheduleRepository handles room/time-slot placements.
type ScheduleRepository interface {
	List(ctx context.Context) ([]*models.Schedule, error)
	ListByClass(ctx context.Context, classID string) ([]*models.Schedule, error)
	// ListByStudent returns the schedules of all classes the student is
	// actively enrolled in.
	ListByStudent(ctx context.Context, studentID string) ([]*models.Schedule, error)
	Get(ctx context.Context, scheduleID string) (*models.Schedule, error)
	Create(ctx context.Context, schedule *models.Schedule) error
	Update(ctx context.Context, schedule *models.Schedule) error
	Delete(ctx context.Context, scheduleID string) error
}

// AssignmentRepository handles coursework and submissions.
type AssignmentRepository interface {
	ListByClass(ctx context.Context, classID string) ([]*models.Assignment, error)
	// ListForStudent joins each assignment of the student's active classes
	// with the student's own submission, if any.
	ListForStudent(ctx context.Context, studentID string) ([]*models.Assignment, error)
	Get(ctx context.Context, assignmentID int64) (*models.Assignment, error)
	Create(ctx context.Context, assignment *models.Assignment) error
	Update(ctx context.Context, assignment *models.Assignment) error
	Delete(ctx context.Context, assignmentID int64) error

	// Submit upserts the (assignment, student) submission row; a
	// resubmission overwrites content and clears the score.
	Submit(ctx context.Context, submission *models.Submission) error
	GetSubmission(ctx context.Context, assignmentID int64, studentID string) (*models.Submission, error)
	ListSubmissions(ctx context.Context, assignmentID int64) ([]*models.Submission, error)
	ScoreSubmission(ctx context.Context, assignmentID int64, studentID string, score float64) error
}

// AnnouncementRepository handles class and system-wide announcements.
type AnnouncementRepository interface {
	List(ctx context.Context) ([]*models.Announcement, error)
	ListByClass(ctx context.Context, classID string) ([]*models.Announcement, error)
	Get(ctx context.Context, announcementID string) (*models.Announcement, error)
	Create(ctx context.Context, announcement *models.Announcement) error
	Update(ctx context.Context, announcement *models.Announcement) error
	Delete(ctx context.Context, announcementID string) error
}

// AttendanceRepository handles per-session attendance records.
type AttendanceRepository interface {
	// Record upserts the (schedule, student, date) row; re-recording a
	// session overwrites the previous status.
	Record(ctx context.Context, record *models.AttendanceRecord) error
	ListBySchedule(ctx context.Context, scheduleID string, date *time.Time) ([]*models.AttendanceRecord, error)
	ListByStudent(ctx context.Context, studentID string) ([]*models.AttendanceRecord, error)
}

// TuitionRepository handles tuition payments.
type TuitionRepository interface {
	List(ctx context.Context) ([]*models.TuitionPayment, error)
	ListByStudent(ctx context.Context, studentID string) ([]*models.TuitionPayment, error)
	Get(ctx context.Context, paymentID int64) (*models.TuitionPayment, error)
	Create(ctx context.Context, payment *models.TuitionPayment) error
	UpdateStatus(ctx context.Context, paymentID int64, status models.PaymentStatus, receiptNumber *string) error
}

// Repositories bundles one implementation of every repository. Services
// receive this container; tests and demo mode hand it a memstore-backed
// one instead.
type Repositories struct {
	Users         UserRepository
	Courses       CourseRepository
	Semesters     SemesterRepository
	Classes       ClassRepository
	Enrollments   EnrollmentRepository
	Schedules     ScheduleRepository
	Assignments   AssignmentRepository
	Announcements AnnouncementRepository
	Attendance    AttendanceRepository
	Tuition       TuitionRepository
}

// NewPostgresRepositories wires every repository to the shared pool.
func NewPostgresRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		Users:         NewUserRepository(db),
		Courses:       NewCourseRepository(db),
		Semesters:     NewSemesterRepository(db),
		Classes:       NewClassRepository(db),
		Enrollments:   NewEnrollmentRepository(db),
		Schedules:     NewScheduleRepository(db),
		Assignments:   NewAssignmentRepository(db),
		Announcements: NewAnnouncementRepository(db),
		Attendance:    NewAttendanceRepository(db),
		Tuition:       NewTuitionRepository(db),
	}
}
