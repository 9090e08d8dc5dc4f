package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound    = errors.New("resource not found")
	ErrDuplicateKey        = errors.New("resource already exists")
	ErrReferentialConflict = errors.New("resource is referenced by other data and cannot be deleted")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrMissingField     = errors.New("required field missing")
)

// Registration errors
var (
	ErrDuplicateIdentity = errors.New("user id or username already exists")
	ErrInvalidRole       = errors.New("invalid role")
)

// Enrollment errors
var (
	ErrClassFull       = errors.New("class is full")
	ErrAlreadyEnrolled = errors.New("student is already enrolled in this class")
	ErrNotEnrolled     = errors.New("student is not enrolled in this class")
)

// NotFoundError wraps ErrResourceNotFound with the name of the missing thing.
func NotFoundError(message string) error {
	return &CustomError{Err: ErrResourceNotFound, Message: message}
}

// ConflictError wraps ErrReferentialConflict with a message naming the
// blocking reference.
func ConflictError(message string) error {
	return &CustomError{Err: ErrReferentialConflict, Message: message}
}

// ValidationError wraps ErrValidationFailed with a message.
func ValidationError(message string) error {
	return &CustomError{Err: ErrValidationFailed, Message: message}
}

// ForbiddenError wraps ErrPermissionDenied with a message.
func ForbiddenError(message string) error {
	return &CustomError{Err: ErrPermissionDenied, Message: message}
}

// CustomError carries a sentinel plus a human-readable message; errors.Is
// against the sentinel still works through Unwrap.
type CustomError struct {
	Err     error
	Message string
}

// Error implements the error interface.
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap.
func (e *CustomError) Unwrap() error {
	return e.Err
}
