package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error codes
const (
	// Authentication / authorization
	ErrCodeUnauthenticated  = "UNAUTHENTICATED"
	ErrCodePermissionDenied = "PERMISSION_DENIED"

	// Validation
	ErrCodeInvalidArgument = "INVALID_ARGUMENT"

	// Resources
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeAlreadyExists = "ALREADY_EXISTS"

	// Lifecycle
	ErrCodeInvalidTransition  = "INVALID_TRANSITION"
	ErrCodeStaleState         = "STALE_STATE"
	ErrCodeFailedPrecondition = "FAILED_PRECONDITION"

	// Service
	ErrCodeInternal           = "INTERNAL"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)

// APIError is the standard error response body.
type APIError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// NewAPIError creates a new APIError
func NewAPIError(code, message string) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
	}
}

// NewAPIErrorWithDetails creates a new APIError with details
func NewAPIErrorWithDetails(code, message string, details interface{}) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// RespondWithError sends an error response
func RespondWithError(c *gin.Context, statusCode int, err *APIError) {
	c.JSON(statusCode, err)
}

// Helper functions for common error responses

// Unauthenticated sends a 401 response
func Unauthenticated(c *gin.Context, message string) {
	if message == "" {
		message = "Authentication required"
	}
	RespondWithError(c, http.StatusUnauthorized, NewAPIError(ErrCodeUnauthenticated, message))
}

// PermissionDenied sends a 403 response
func PermissionDenied(c *gin.Context, message string) {
	if message == "" {
		message = "Permission denied"
	}
	RespondWithError(c, http.StatusForbidden, NewAPIError(ErrCodePermissionDenied, message))
}

// NotFound sends a 404 response
func NotFound(c *gin.Context, message string) {
	if message == "" {
		message = "Resource not found"
	}
	RespondWithError(c, http.StatusNotFound, NewAPIError(ErrCodeNotFound, message))
}

// InvalidArgument sends a 400 response
func InvalidArgument(c *gin.Context, message string) {
	if message == "" {
		message = "Invalid request"
	}
	RespondWithError(c, http.StatusBadRequest, NewAPIError(ErrCodeInvalidArgument, message))
}

// InvalidArgumentWithDetails sends a 400 response carrying the full list
// of offending fields so the caller can fix them all at once.
func InvalidArgumentWithDetails(c *gin.Context, message string, details interface{}) {
	RespondWithError(c, http.StatusBadRequest, NewAPIErrorWithDetails(ErrCodeInvalidArgument, message, details))
}

// InvalidTransition sends a 409 response for an illegal state change
func InvalidTransition(c *gin.Context, message string) {
	if message == "" {
		message = "Invalid status transition"
	}
	RespondWithError(c, http.StatusConflict, NewAPIError(ErrCodeInvalidTransition, message))
}

// StaleState sends a 409 response when a conditional write lost a race
func StaleState(c *gin.Context, message string) {
	if message == "" {
		message = "Task was modified concurrently, please re-read and retry"
	}
	RespondWithError(c, http.StatusConflict, NewAPIError(ErrCodeStaleState, message))
}

// Conflict sends a 409 response
func Conflict(c *gin.Context, message string) {
	if message == "" {
		message = "Resource conflict"
	}
	RespondWithError(c, http.StatusConflict, NewAPIError(ErrCodeAlreadyExists, message))
}

// FailedPrecondition sends a 409 response for operations attempted in the
// wrong lifecycle state (e.g. rating a task that is not completed).
func FailedPrecondition(c *gin.Context, message string) {
	if message == "" {
		message = "Operation not allowed in the current state"
	}
	RespondWithError(c, http.StatusConflict, NewAPIError(ErrCodeFailedPrecondition, message))
}

// InternalError sends a 500 response. Storage-layer details never reach
// the caller; log them before calling this.
func InternalError(c *gin.Context, message string) {
	if message == "" {
		message = "Internal server error"
	}
	RespondWithError(c, http.StatusInternalServerError, NewAPIError(ErrCodeInternal, message))
}

// ServiceUnavailable sends a 503 response
func ServiceUnavailable(c *gin.Context, message string) {
	if message == "" {
		message = "Service temporarily unavailable"
	}
	RespondWithError(c, http.StatusServiceUnavailable, NewAPIError(ErrCodeServiceUnavailable, message))
}
