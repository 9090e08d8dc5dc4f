package models

import "time"

// Enrollment binds one student to one class. The (ClassID, StudentID) pair
// is the key; one row per pairing, reused when a student re-enrolls after
// dropping.
type Enrollment struct {
	ClassID    string           `json:"classId" db:"class_id"`
	StudentID  string           `json:"studentId" db:"student_id"`
	Status     EnrollmentStatus `json:"status" db:"status"`
	Grade      *float64         `json:"grade,omitempty" db:"grade"`
	EnrolledAt time.Time        `json:"enrolledAt" db:"enrolled_at"`

	// Joined fields for student-facing listings.
	CourseCode   string `json:"courseCode,omitempty" db:"course_code"`
	CourseName   string `json:"courseName,omitempty" db:"course_name"`
	Credit       int    `json:"credit,omitempty" db:"credit"`
	SemesterCode string `json:"semesterCode,omitempty" db:"semester_code"`
	Year         int    `json:"year,omitempty" db:"year"`
}

// Active reports whether the enrollment currently occupies a seat.
func (e *Enrollment) Active() bool {
	return e.Status == EnrollmentEnrolled
}
