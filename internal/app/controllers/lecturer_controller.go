package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bruce184/OCMS/internal/app/models/dto"
	"github.com/bruce184/OCMS/internal/app/services"
	"github.com/bruce184/OCMS/internal/middleware"
)

// LecturerController serves the lecturer directory and teaching rosters.
type LecturerController struct {
	lecturerService *services.LecturerService
}

// NewLecturerController creates a new LecturerController
func NewLecturerController(lecturerService *services.LecturerService) *LecturerController {
	return &LecturerController{lecturerService: lecturerService}
}

// List returns all lecturers. Admin only.
func (c *LecturerController) List(ctx *gin.Context) {
	lecturers, err := c.lecturerService.List(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	responses := make([]dto.UserResponse, 0, len(lecturers))
	for _, lecturer := range lecturers {
		responses = append(responses, dto.NewUserResponse(lecturer))
	}
	ctx.JSON(http.StatusOK, dto.NewListResponse(responses, len(responses)))
}

// Get returns one lecturer's profile.
func (c *LecturerController) Get(ctx *gin.Context) {
	lecturer, err := c.lecturerService.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewDataResponse(dto.NewUserResponse(lecturer)))
}

// Classes returns the classes the lecturer teaches.
func (c *LecturerController) Classes(ctx *gin.Context) {
	classes, err := c.lecturerService.Classes(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewListResponse(classes, len(classes)))
}
