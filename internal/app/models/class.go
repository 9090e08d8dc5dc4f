package models

// Class is a scheduled offering of a Course within a Semester, with bounded
// capacity. Invariant: 0 <= CurrentEnrollment <= Capacity, enforced by the
// enrollment repository with a conditional counter update.
type Class struct {
	ClassID           string `json:"classId" db:"class_id" example:"CS101-F24-01"`
	CourseCode        string `json:"courseCode" db:"course_code"`
	SemesterCode      string `json:"semesterCode" db:"semester_code"`
	Year              int    `json:"year" db:"year"`
	Capacity          int    `json:"capacity" db:"capacity"`
	CurrentEnrollment int    `json:"currentEnrollment" db:"current_enrollment"`

	// Joined course name for list views, empty unless the query joins courses.
	CourseName string `json:"courseName,omitempty" db:"course_name"`
}

// IsAvailable reports whether the class still has a free seat.
func (c *Class) IsAvailable() bool {
	return c.CurrentEnrollment < c.Capacity
}

// Schedule places a class in a room at a time slot. The time slot is
// free-text, matching the observed data ("Monday 9:00 AM - 10:30 AM").
type Schedule struct {
	ScheduleID string `json:"scheduleId" db:"schedule_id" example:"SCH001"`
	ClassID    string `json:"classId" db:"class_id"`
	Room       string `json:"room" db:"room" example:"Room 101"`
	TimeSlot   string `json:"timeSlot" db:"time_slot" example:"Monday 9:00 AM - 10:30 AM"`
}

// ClassInstructor binds an instructor to a class. Semester and year are
// denormalized for query convenience.
type ClassInstructor struct {
	ClassID      string         `json:"classId" db:"class_id"`
	InstructorID string         `json:"instructorId" db:"instructor_id"`
	Role         InstructorRole `json:"role" db:"role" example:"primary"`
	SemesterCode string         `json:"semesterCode" db:"semester_code"`
	Year         int            `json:"year" db:"year"`
}
