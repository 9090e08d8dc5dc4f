package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bruce184/OCMS/internal/app/models/dto"
	"github.com/bruce184/OCMS/internal/app/services"
	"github.com/bruce184/OCMS/internal/middleware"
)

// AuthController handles login, registration and the profile endpoint.
type AuthController struct {
	authService *services.AuthService
}

// NewAuthController creates a new AuthController
func NewAuthController(authService *services.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// Login verifies credentials and returns a bearer token.
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	user, token, expiresIn, err := c.authService.Authenticate(ctx.Request.Context(), req.Username, req.Password)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewDataResponse(dto.LoginResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: expiresIn,
		User:      dto.NewUserResponse(user),
	}))
}

// Register creates a new account. Admin only.
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	user, err := c.authService.Register(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewDataResponse(dto.NewUserResponse(user)))
}

// Me returns the authenticated user's live profile.
func (c *AuthController) Me(ctx *gin.Context) {
	user := middleware.CurrentUser(ctx)
	if user == nil {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse("Authentication required"))
		return
	}
	ctx.JSON(http.StatusOK, dto.NewDataResponse(dto.NewUserResponse(user)))
}
