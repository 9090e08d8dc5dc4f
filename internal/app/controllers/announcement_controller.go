package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bruce184/OCMS/internal/app/models/dto"
	"github.com/bruce184/OCMS/internal/app/services"
	"github.com/bruce184/OCMS/internal/middleware"
)

// AnnouncementController handles class and system-wide announcements.
type AnnouncementController struct {
	announcementService *services.AnnouncementService
}

// NewAnnouncementController creates a new AnnouncementController
func NewAnnouncementController(announcementService *services.AnnouncementService) *AnnouncementController {
	return &AnnouncementController{announcementService: announcementService}
}

// List returns the announcements visible to the authenticated user, or one
// class's announcements when ?classId= is given.
func (c *AnnouncementController) List(ctx *gin.Context) {
	if classID := ctx.Query("classId"); classID != "" {
		announcements, err := c.announcementService.ListByClass(ctx.Request.Context(), classID)
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, dto.NewListResponse(announcements, len(announcements)))
		return
	}

	user := middleware.CurrentUser(ctx)
	announcements, err := c.announcementService.ListForUser(ctx.Request.Context(), user)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewListResponse(announcements, len(announcements)))
}

// Get returns one announcement.
func (c *AnnouncementController) Get(ctx *gin.Context) {
	announcement, err := c.announcementService.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewDataResponse(announcement))
}

// Create posts an announcement. Lecturer (own classes) or admin.
func (c *AnnouncementController) Create(ctx *gin.Context) {
	var req dto.CreateAnnouncementRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	user := middleware.CurrentUser(ctx)
	announcement, err := c.announcementService.Create(ctx.Request.Context(), &req, user)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewDataResponse(announcement))
}

// Update merges the given fields into an announcement. Poster or admin.
func (c *AnnouncementController) Update(ctx *gin.Context) {
	var req dto.UpdateAnnouncementRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	user := middleware.CurrentUser(ctx)
	announcement, err := c.announcementService.Update(ctx.Request.Context(), ctx.Param("id"), &req, user)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewDataResponse(announcement))
}

// Delete removes an announcement. Poster or admin.
func (c *AnnouncementController) Delete(ctx *gin.Context) {
	user := middleware.CurrentUser(ctx)
	if err := c.announcementService.Delete(ctx.Request.Context(), ctx.Param("id"), user); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Announcement deleted"))
}
