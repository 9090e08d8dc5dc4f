package models

// Role defines the closed set of user roles. Role checks switch exhaustively
// on these values; adding a role means touching every switch.
type Role string

const (
	RoleStudent  Role = "student"
	RoleLecturer Role = "lecturer"
	RoleAdmin    Role = "admin"
)

// Valid reports whether the role is one of the three known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleLecturer, RoleAdmin:
		return true
	}
	return false
}

// CourseType classifies a course template.
type CourseType string

const (
	CourseTypeLecture   CourseType = "L"
	CourseTypePractical CourseType = "P"
	CourseTypeTheory    CourseType = "T"
)

// Valid reports whether the course type is a known code.
func (t CourseType) Valid() bool {
	switch t {
	case CourseTypeLecture, CourseTypePractical, CourseTypeTheory:
		return true
	}
	return false
}

// EnrollmentStatus is the lifecycle state of a student-class pairing.
type EnrollmentStatus string

const (
	EnrollmentEnrolled  EnrollmentStatus = "enrolled"
	EnrollmentCompleted EnrollmentStatus = "completed"
	EnrollmentDropped   EnrollmentStatus = "dropped"
	EnrollmentFailed    EnrollmentStatus = "failed"
)

// Valid reports whether the enrollment status is known.
func (s EnrollmentStatus) Valid() bool {
	switch s {
	case EnrollmentEnrolled, EnrollmentCompleted, EnrollmentDropped, EnrollmentFailed:
		return true
	}
	return false
}

// AttendanceStatus records how a student attended one scheduled session.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceLate    AttendanceStatus = "late"
	AttendanceExcused AttendanceStatus = "excused"
)

// Valid reports whether the attendance status is known.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendancePresent, AttendanceAbsent, AttendanceLate, AttendanceExcused:
		return true
	}
	return false
}

// PaymentStatus is the state of a tuition payment.
type PaymentStatus string

const (
	PaymentPaid     PaymentStatus = "paid"
	PaymentPending  PaymentStatus = "pending"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

// Valid reports whether the payment status is known.
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPaid, PaymentPending, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}

// InstructorRole distinguishes the primary instructor from assistants on a class.
type InstructorRole string

const (
	InstructorPrimary   InstructorRole = "primary"
	InstructorAssistant InstructorRole = "assistant"
)

// AnnouncementPriority orders announcements in the UI.
type AnnouncementPriority string

const (
	PriorityLow    AnnouncementPriority = "low"
	PriorityMedium AnnouncementPriority = "medium"
	PriorityHigh   AnnouncementPriority = "high"
)

// Audience targets a system-wide announcement at a slice of the user base.
type Audience string

const (
	AudienceAll       Audience = "all"
	AudienceStudents  Audience = "students"
	AudienceLecturers Audience = "lecturers"
	AudienceAdmins    Audience = "admins"
)
