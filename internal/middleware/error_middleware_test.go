package middleware

import (
	"errors"
	"net/http"
	"testing"

	"github.com/bruce184/OCMS/internal/pkg/apperrors"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "validation", err: apperrors.ErrValidationFailed, want: http.StatusBadRequest},
		{name: "wrapped validation", err: apperrors.ValidationError("bad input"), want: http.StatusBadRequest},
		{name: "invalid role", err: apperrors.ErrInvalidRole, want: http.StatusBadRequest},
		{name: "invalid credentials", err: apperrors.ErrInvalidCredentials, want: http.StatusUnauthorized},
		{name: "expired token", err: apperrors.ErrTokenExpired, want: http.StatusUnauthorized},
		{name: "permission denied", err: apperrors.ErrPermissionDenied, want: http.StatusForbidden},
		{name: "wrapped forbidden", err: apperrors.ForbiddenError("not yours"), want: http.StatusForbidden},
		{name: "not found", err: apperrors.ErrResourceNotFound, want: http.StatusNotFound},
		{name: "wrapped not found", err: apperrors.NotFoundError("course not found"), want: http.StatusNotFound},
		{name: "duplicate key", err: apperrors.ErrDuplicateKey, want: http.StatusConflict},
		{name: "duplicate identity", err: apperrors.ErrDuplicateIdentity, want: http.StatusConflict},
		{name: "referential conflict", err: apperrors.ErrReferentialConflict, want: http.StatusConflict},
		{name: "class full", err: apperrors.ErrClassFull, want: http.StatusConflict},
		{name: "already enrolled", err: apperrors.ErrAlreadyEnrolled, want: http.StatusConflict},
		{name: "not enrolled", err: apperrors.ErrNotEnrolled, want: http.StatusConflict},
		{name: "unknown error", err: errors.New("pool exhausted"), want: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := statusFor(tt.err); got != tt.want {
				t.Errorf("statusFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
