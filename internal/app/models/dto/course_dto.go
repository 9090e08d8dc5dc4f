package dto

// CreateCourseRequest creates a catalog entry.
type CreateCourseRequest struct {
	CourseCode string `json:"courseCode" binding:"required,max=10"`
	CourseName string `json:"courseName" binding:"required,max=100"`
	Credit     int    `json:"credit" binding:"required,min=1,max=10"`
	CourseType string `json:"courseType" binding:"required,oneof=L P T"`
}

// UpdateCourseRequest is a partial-field merge; nil fields are left alone.
type UpdateCourseRequest struct {
	CourseName *string `json:"courseName,omitempty" binding:"omitempty,max=100"`
	Credit     *int    `json:"credit,omitempty" binding:"omitempty,min=1,max=10"`
	CourseType *string `json:"courseType,omitempty" binding:"omitempty,oneof=L P T"`
}

// CreateSemesterRequest creates a teaching term.
type CreateSemesterRequest struct {
	SemesterCode string `json:"semesterCode" binding:"required,max=20"`
	Year         int    `json:"year" binding:"required,min=2000,max=2100"`
}
