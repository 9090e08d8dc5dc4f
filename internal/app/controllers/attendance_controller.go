package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bruce184/OCMS/internal/app/models/dto"
	"github.com/bruce184/OCMS/internal/app/services"
	"github.com/bruce184/OCMS/internal/middleware"
)

// AttendanceController handles per-session attendance records.
type AttendanceController struct {
	attendanceService *services.AttendanceService
}

// NewAttendanceController creates a new AttendanceController
func NewAttendanceController(attendanceService *services.AttendanceService) *AttendanceController {
	return &AttendanceController{attendanceService: attendanceService}
}

// Record marks one student's attendance for one session. Lecturer (own
// classes) or admin.
func (c *AttendanceController) Record(ctx *gin.Context) {
	var req dto.RecordAttendanceRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	user := middleware.CurrentUser(ctx)
	record, err := c.attendanceService.Record(ctx.Request.Context(), &req, user)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewDataResponse(record))
}

// ListBySchedule returns a session's attendance sheet, optionally filtered
// by ?date=YYYY-MM-DD. Lecturer (own classes) or admin.
func (c *AttendanceController) ListBySchedule(ctx *gin.Context) {
	var date *time.Time
	if raw := ctx.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("date must be in YYYY-MM-DD form"))
			return
		}
		date = &parsed
	}
	user := middleware.CurrentUser(ctx)
	records, err := c.attendanceService.ListBySchedule(ctx.Request.Context(), ctx.Param("id"), date, user)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewListResponse(records, len(records)))
}
