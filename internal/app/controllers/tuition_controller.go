package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bruce184/OCMS/internal/app/models/dto"
	"github.com/bruce184/OCMS/internal/app/services"
	"github.com/bruce184/OCMS/internal/middleware"
)

// TuitionController handles tuition payments. Admin only; students read
// their own history through the student sub-resource.
type TuitionController struct {
	tuitionService *services.TuitionService
}

// NewTuitionController creates a new TuitionController
func NewTuitionController(tuitionService *services.TuitionService) *TuitionController {
	return &TuitionController{tuitionService: tuitionService}
}

// List returns all payments.
func (c *TuitionController) List(ctx *gin.Context) {
	payments, err := c.tuitionService.List(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewListResponse(payments, len(payments)))
}

// Get returns one payment.
func (c *TuitionController) Get(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("payment id must be a number"))
		return
	}
	payment, err := c.tuitionService.Get(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewDataResponse(payment))
}

// Create records a payment for a student.
func (c *TuitionController) Create(ctx *gin.Context) {
	var req dto.CreateTuitionRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	payment, err := c.tuitionService.Create(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewDataResponse(payment))
}

// Update changes a payment's status and optionally attaches a receipt
// number.
func (c *TuitionController) Update(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("payment id must be a number"))
		return
	}
	var req dto.UpdateTuitionRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	payment, err := c.tuitionService.UpdateStatus(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewDataResponse(payment))
}
