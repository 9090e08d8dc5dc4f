package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bruce184/OCMS/internal/app/models/dto"
	"github.com/bruce184/OCMS/internal/pkg/apperrors"
	"github.com/bruce184/OCMS/internal/pkg/logger"
)

// statusFor maps domain sentinel errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrValidationFailed),
		errors.Is(err, apperrors.ErrMissingField),
		errors.Is(err, apperrors.ErrInvalidRole):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrInvalidCredentials),
		errors.Is(err, apperrors.ErrTokenExpired),
		errors.Is(err, apperrors.ErrTokenInvalid):
		return http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrPermissionDenied):
		return http.StatusForbidden
	case errors.Is(err, apperrors.ErrResourceNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrDuplicateKey),
		errors.Is(err, apperrors.ErrDuplicateIdentity),
		errors.Is(err, apperrors.ErrReferentialConflict),
		errors.Is(err, apperrors.ErrClassFull),
		errors.Is(err, apperrors.ErrAlreadyEnrolled),
		errors.Is(err, apperrors.ErrNotEnrolled):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// HandleAPIError writes the response envelope for a service error. Internal
// errors are logged with their cause but reported to the client as a
// generic message, so database details never leak.
func HandleAPIError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.Error().Err(err).
			Str("path", c.Request.URL.Path).
			Str("method", c.Request.Method).
			Msg("Unhandled error")
		c.JSON(status, dto.NewErrorResponse("Internal server error"))
		return
	}
	c.JSON(status, dto.NewErrorResponse(err.Error()))
}

// ErrorHandler recovers panics into a sanitized 500 response.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error().Interface("panic", r).
					Str("path", c.Request.URL.Path).
					Msg("Panic recovered")
				c.AbortWithStatusJSON(http.StatusInternalServerError,
					dto.NewErrorResponse("Internal server error"))
			}
		}()
		c.Next()
	}
}
