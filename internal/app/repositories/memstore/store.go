// Package memstore provides in-memory implementations of every repository
// interface. It backs demo mode and the service tests; all stores share one
// Store so cross-entity reads (rosters, joined listings) stay consistent.
package memstore

import (
	"fmt"
	"sync"
	"time"

	"github.com/bruce184/OCMS/internal/app/models"
	"github.com/bruce184/OCMS/internal/app/repositories"
)

// Store is the shared backing state. One mutex guards all maps; the write
// paths that span entities (enrollment plus seat counter) hold it for the
// whole step, which gives the same atomicity a database transaction does.
type Store struct {
	mu sync.RWMutex

	users            map[string]*models.User
	courses          map[string]*models.Course
	semesters        map[string]*models.Semester
	classes          map[string]*models.Class
	classInstructors map[string]*models.ClassInstructor
	enrollments      map[string]*models.Enrollment
	schedules        map[string]*models.Schedule
	assignments      map[int64]*models.Assignment
	submissions      map[string]*models.Submission
	announcements    map[string]*models.Announcement
	attendance       map[string]*models.AttendanceRecord
	tuition          map[int64]*models.TuitionPayment

	nextAssignmentID int64
	nextPaymentID    int64
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		users:            make(map[string]*models.User),
		courses:          make(map[string]*models.Course),
		semesters:        make(map[string]*models.Semester),
		classes:          make(map[string]*models.Class),
		classInstructors: make(map[string]*models.ClassInstructor),
		enrollments:      make(map[string]*models.Enrollment),
		schedules:        make(map[string]*models.Schedule),
		assignments:      make(map[int64]*models.Assignment),
		submissions:      make(map[string]*models.Submission),
		announcements:    make(map[string]*models.Announcement),
		attendance:       make(map[string]*models.AttendanceRecord),
		tuition:          make(map[int64]*models.TuitionPayment),
		nextAssignmentID: 1,
		nextPaymentID:    1,
	}
}

// NewRepositories wires every repository to one shared store.
func NewRepositories(store *Store) *repositories.Repositories {
	return &repositories.Repositories{
		Users:         &UserStore{store},
		Courses:       &CourseStore{store},
		Semesters:     &SemesterStore{store},
		Classes:       &ClassStore{store},
		Enrollments:   &EnrollmentStore{store},
		Schedules:     &ScheduleStore{store},
		Assignments:   &AssignmentStore{store},
		Announcements: &AnnouncementStore{store},
		Attendance:    &AttendanceStore{store},
		Tuition:       &TuitionStore{store},
	}
}

func semesterKey(code string, year int) string {
	return fmt.Sprintf("%s:%d", code, year)
}

func pairKey(a, b string) string {
	return a + ":" + b
}

func submissionKey(assignmentID int64, studentID string) string {
	return fmt.Sprintf("%d:%s", assignmentID, studentID)
}

func attendanceKey(scheduleID, studentID string, date time.Time) string {
	return fmt.Sprintf("%s:%s:%s", scheduleID, studentID, date.Format("2006-01-02"))
}

// decorateEnrollment fills the joined course fields. Callers hold the lock.
func (s *Store) decorateEnrollment(e *models.Enrollment) {
	if class, ok := s.classes[e.ClassID]; ok {
		e.CourseCode = class.CourseCode
		e.SemesterCode = class.SemesterCode
		e.Year = class.Year
		if course, ok := s.courses[class.CourseCode]; ok {
			e.CourseName = course.CourseName
			e.Credit = course.Credit
		}
	}
}

// courseNameForClass resolves the joined course name. Callers hold the lock.
func (s *Store) courseNameForClass(classID string) string {
	class, ok := s.classes[classID]
	if !ok {
		return ""
	}
	course, ok := s.courses[class.CourseCode]
	if !ok {
		return ""
	}
	return course.CourseName
}
