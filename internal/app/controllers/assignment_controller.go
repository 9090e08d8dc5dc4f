package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bruce184/OCMS/internal/app/models/dto"
	"github.com/bruce184/OCMS/internal/app/services"
	"github.com/bruce184/OCMS/internal/middleware"
)

// AssignmentController handles coursework, submissions and grading.
type AssignmentController struct {
	assignmentService *services.AssignmentService
}

// NewAssignmentController creates a new AssignmentController
func NewAssignmentController(assignmentService *services.AssignmentService) *AssignmentController {
	return &AssignmentController{assignmentService: assignmentService}
}

func assignmentID(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("assignment id must be a number"))
		return 0, false
	}
	return id, true
}

// List returns the assignments of the class named by ?classId=.
func (c *AssignmentController) List(ctx *gin.Context) {
	classID := ctx.Query("classId")
	if classID == "" {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("classId query parameter is required"))
		return
	}
	assignments, err := c.assignmentService.ListByClass(ctx.Request.Context(), classID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewListResponse(assignments, len(assignments)))
}

// Get returns one assignment.
func (c *AssignmentController) Get(ctx *gin.Context) {
	id, ok := assignmentID(ctx)
	if !ok {
		return
	}
	assignment, err := c.assignmentService.Get(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewDataResponse(assignment))
}

// Create adds coursework to a class. Lecturer (own classes) or admin.
func (c *AssignmentController) Create(ctx *gin.Context) {
	var req dto.CreateAssignmentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	user := middleware.CurrentUser(ctx)
	assignment, err := c.assignmentService.Create(ctx.Request.Context(), &req, user)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewDataResponse(assignment))
}

// Update merges the given fields into an assignment. Lecturer (own classes)
// or admin.
func (c *AssignmentController) Update(ctx *gin.Context) {
	id, ok := assignmentID(ctx)
	if !ok {
		return
	}
	var req dto.UpdateAssignmentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	user := middleware.CurrentUser(ctx)
	assignment, err := c.assignmentService.Update(ctx.Request.Context(), id, &req, user)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewDataResponse(assignment))
}

// Delete removes an assignment and its submissions. Lecturer (own classes)
// or admin.
func (c *AssignmentController) Delete(ctx *gin.Context) {
	id, ok := assignmentID(ctx)
	if !ok {
		return
	}
	user := middleware.CurrentUser(ctx)
	if err := c.assignmentService.Delete(ctx.Request.Context(), id, user); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Assignment deleted"))
}

// Submit records the authenticated student's submission.
func (c *AssignmentController) Submit(ctx *gin.Context) {
	id, ok := assignmentID(ctx)
	if !ok {
		return
	}
	var req dto.SubmitAssignmentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	user := middleware.CurrentUser(ctx)
	submission, err := c.assignmentService.Submit(ctx.Request.Context(), id, user.UserID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewDataResponse(submission))
}

// ListSubmissions returns every submission for an assignment. Lecturer (own
// classes) or admin.
func (c *AssignmentController) ListSubmissions(ctx *gin.Context) {
	id, ok := assignmentID(ctx)
	if !ok {
		return
	}
	user := middleware.CurrentUser(ctx)
	submissions, err := c.assignmentService.ListSubmissions(ctx.Request.Context(), id, user)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewListResponse(submissions, len(submissions)))
}

// Grade scores one student's submission. Lecturer (own classes) or admin.
func (c *AssignmentController) Grade(ctx *gin.Context) {
	id, ok := assignmentID(ctx)
	if !ok {
		return
	}
	var req dto.GradeSubmissionRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	user := middleware.CurrentUser(ctx)
	submission, err := c.assignmentService.Grade(ctx.Request.Context(), id, &req, user)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewDataResponse(submission))
}
