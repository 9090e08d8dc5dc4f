package models

// Course is a catalog template, independent of when it is taught.
type Course struct {
	CourseCode string     `json:"courseCode" db:"course_code" example:"CS101"`
	CourseName string     `json:"courseName" db:"course_name" example:"Introduction to Computer Science"`
	Credit     int        `json:"credit" db:"credit" example:"3"`
	CourseType CourseType `json:"courseType" db:"course_type" example:"L"`
}

// Semester is a teaching term identified by code and year.
type Semester struct {
	SemesterCode string `json:"semesterCode" db:"semester_code" example:"Fall"`
	Year         int    `json:"year" db:"year" example:"2024"`
}
