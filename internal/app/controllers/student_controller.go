package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bruce184/OCMS/internal/app/models/dto"
	"github.com/bruce184/OCMS/internal/app/services"
	"github.com/bruce184/OCMS/internal/middleware"
)

// StudentController serves the student directory and per-student
// sub-resources. Ownership gating happens in the route table; by the time a
// handler runs, the requester is the student or an admin.
type StudentController struct {
	studentService *services.StudentService
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService *services.StudentService) *StudentController {
	return &StudentController{studentService: studentService}
}

// List returns all students. Admin only.
func (c *StudentController) List(ctx *gin.Context) {
	students, err := c.studentService.List(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	responses := make([]dto.UserResponse, 0, len(students))
	for _, student := range students {
		responses = append(responses, dto.NewUserResponse(student))
	}
	ctx.JSON(http.StatusOK, dto.NewListResponse(responses, len(responses)))
}

// Get returns one student's profile.
func (c *StudentController) Get(ctx *gin.Context) {
	student, err := c.studentService.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewDataResponse(dto.NewUserResponse(student)))
}

// Enrollments returns the student's enrollment history.
func (c *StudentController) Enrollments(ctx *gin.Context) {
	enrollments, err := c.studentService.Enrollments(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewListResponse(enrollments, len(enrollments)))
}

// Schedule returns the sessions of the student's active classes.
func (c *StudentController) Schedule(ctx *gin.Context) {
	schedules, err := c.studentService.Schedule(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewListResponse(schedules, len(schedules)))
}

// Assignments returns the student's coursework with their submissions.
func (c *StudentController) Assignments(ctx *gin.Context) {
	assignments, err := c.studentService.Assignments(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewListResponse(assignments, len(assignments)))
}

// Attendance returns the student's attendance history.
func (c *StudentController) Attendance(ctx *gin.Context) {
	records, err := c.studentService.Attendance(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewListResponse(records, len(records)))
}

// Tuition returns the student's payment history.
func (c *StudentController) Tuition(ctx *gin.Context) {
	payments, err := c.studentService.Tuition(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewListResponse(payments, len(payments)))
}
