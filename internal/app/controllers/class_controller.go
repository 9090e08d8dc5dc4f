package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bruce184/OCMS/internal/app/models/dto"
	"github.com/bruce184/OCMS/internal/app/services"
	"github.com/bruce184/OCMS/internal/middleware"
)

// ClassController handles class offerings, enrollment and grading.
type ClassController struct {
	classService *services.ClassService
}

// NewClassController creates a new ClassController
func NewClassController(classService *services.ClassService) *ClassController {
	return &ClassController{classService: classService}
}

// List returns all class offerings.
func (c *ClassController) List(ctx *gin.Context) {
	classes, err := c.classService.List(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewListResponse(classes, len(classes)))
}

// Get returns one class offering.
func (c *ClassController) Get(ctx *gin.Context) {
	class, err := c.classService.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewDataResponse(class))
}

// Create schedules a class offering. Admin only.
func (c *ClassController) Create(ctx *gin.Context) {
	var req dto.CreateClassRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	class, err := c.classService.Create(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewDataResponse(class))
}

// Update changes a class's capacity. Admin only.
func (c *ClassController) Update(ctx *gin.Context) {
	var req dto.UpdateClassRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	class, err := c.classService.Update(ctx.Request.Context(), ctx.Param("id"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewDataResponse(class))
}

// Delete removes a class without enrollments or schedules. Admin only.
func (c *ClassController) Delete(ctx *gin.Context) {
	if err := c.classService.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Class deleted"))
}

// AssignInstructor attaches a lecturer to a class. Admin only.
func (c *ClassController) AssignInstructor(ctx *gin.Context) {
	var req dto.AssignInstructorRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	assignment, err := c.classService.AssignInstructor(ctx.Request.Context(), ctx.Param("id"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewDataResponse(assignment))
}

// Enroll occupies a seat for the authenticated student.
func (c *ClassController) Enroll(ctx *gin.Context) {
	user := middleware.CurrentUser(ctx)
	enrollment, err := c.classService.Enroll(ctx.Request.Context(), ctx.Param("id"), user.UserID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewDataResponse(enrollment))
}

// Unenroll releases the authenticated student's seat.
func (c *ClassController) Unenroll(ctx *gin.Context) {
	user := middleware.CurrentUser(ctx)
	if err := c.classService.Unenroll(ctx.Request.Context(), ctx.Param("id"), user.UserID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Enrollment dropped"))
}

// Roster returns a class's enrollments. Lecturer (own classes) or admin.
func (c *ClassController) Roster(ctx *gin.Context) {
	user := middleware.CurrentUser(ctx)
	roster, err := c.classService.Roster(ctx.Request.Context(), ctx.Param("id"), user)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewListResponse(roster, len(roster)))
}

// SetGrade records a final grade for one student. Lecturer (own classes) or
// admin.
func (c *ClassController) SetGrade(ctx *gin.Context) {
	var req dto.SetGradeRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	user := middleware.CurrentUser(ctx)
	enrollment, err := c.classService.SetGrade(ctx.Request.Context(), ctx.Param("id"), &req, user)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewDataResponse(enrollment))
}
