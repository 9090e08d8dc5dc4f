package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bruce184/OCMS/internal/app/models"
	"github.com/bruce184/OCMS/internal/app/models/dto"
	"github.com/bruce184/OCMS/internal/app/repositories"
	"github.com/bruce184/OCMS/internal/pkg/auth"
)

// Context keys set by JWTAuth for downstream handlers.
const (
	ContextUserKey   = "currentUser"
	ContextUserIDKey = "userId"
)

// AuthMiddleware handles authentication and role/ownership authorization.
type AuthMiddleware struct {
	jwtService *auth.JWTService
	users      repositories.UserRepository
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService, users repositories.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{jwtService: jwtService, users: users}
}

// JWTAuth validates the bearer token and loads the live user row into the
// request context. A token whose subject no longer exists is rejected, so
// deleted accounts lose access immediately.
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse("Authentication required"))
			return
		}

		tokenString, err := auth.ExtractBearerToken(authHeader)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse("Invalid authorization header"))
			return
		}

		claims, err := m.jwtService.ValidateToken(tokenString)
		if err != nil {
			message := "Invalid token"
			if err == auth.ErrExpiredToken {
				message = "Token expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(message))
			return
		}

		user, err := m.users.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError,
				dto.NewErrorResponse("Failed to load user"))
			return
		}
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse("Account no longer exists"))
			return
		}

		c.Set(ContextUserKey, user)
		c.Set(ContextUserIDKey, user.UserID)
		c.Next()
	}
}

// RoleRequired rejects the request unless the authenticated user holds one
// of the given roles. It runs after JWTAuth and before the handler, so a
// wrong-role request never reaches handler logic.
func (m *AuthMiddleware) RoleRequired(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse("Authentication required"))
			return
		}
		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden,
			dto.NewErrorResponse("Insufficient permissions"))
	}
}

// OwnershipRequired rejects the request unless the :id path parameter names
// the authenticated user. Admins bypass the check.
func (m *AuthMiddleware) OwnershipRequired(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse("Authentication required"))
			return
		}
		if user.Role != models.RoleAdmin && c.Param(param) != user.UserID {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponse("Insufficient permissions"))
			return
		}
		c.Next()
	}
}

// CurrentUser returns the user loaded by JWTAuth, or nil.
func CurrentUser(c *gin.Context) *models.User {
	value, ok := c.Get(ContextUserKey)
	if !ok {
		return nil
	}
	user, ok := value.(*models.User)
	if !ok {
		return nil
	}
	return user
}
