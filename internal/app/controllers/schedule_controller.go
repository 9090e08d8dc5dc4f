package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bruce184/OCMS/internal/app/models/dto"
	"github.com/bruce184/OCMS/internal/app/services"
	"github.com/bruce184/OCMS/internal/middleware"
)

// ScheduleController handles room and time-slot placements.
type ScheduleController struct {
	scheduleService *services.ScheduleService
}

// NewScheduleController creates a new ScheduleController
func NewScheduleController(scheduleService *services.ScheduleService) *ScheduleController {
	return &ScheduleController{scheduleService: scheduleService}
}

// List returns all schedules, optionally filtered by ?classId=.
func (c *ScheduleController) List(ctx *gin.Context) {
	schedules, err := c.scheduleService.List(ctx.Request.Context(), ctx.Query("classId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewListResponse(schedules, len(schedules)))
}

// Get returns one schedule.
func (c *ScheduleController) Get(ctx *gin.Context) {
	schedule, err := c.scheduleService.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewDataResponse(schedule))
}

// Create places a class in a room at a time slot. Admin only.
func (c *ScheduleController) Create(ctx *gin.Context) {
	var req dto.CreateScheduleRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	schedule, err := c.scheduleService.Create(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewDataResponse(schedule))
}

// Update changes a schedule's room and time slot. Admin only.
func (c *ScheduleController) Update(ctx *gin.Context) {
	var req dto.UpdateScheduleRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	schedule, err := c.scheduleService.Update(ctx.Request.Context(), ctx.Param("id"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewDataResponse(schedule))
}

// Delete removes a schedule without attendance records. Admin only.
func (c *ScheduleController) Delete(ctx *gin.Context) {
	if err := c.scheduleService.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Schedule deleted"))
}
