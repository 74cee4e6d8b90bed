// internal/pkg/response/response.go
package response

import (
	"errors"
	"net/http"

	xerrors "realty-service/internal/pkg/errors"

	"github.com/gin-gonic/gin"
)

// Response defines the standard API response format.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Success sends a successful response with a message and optional data.
func Success(c *gin.Context, status int, message string, data interface{}) {
	if status == 0 {
		status = http.StatusOK
	}

	c.JSON(status, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Error sends a standardized error response.
func Error(c *gin.Context, code int, message string, err error, data ...interface{}) {
	// Abort before writing so later handlers never run
	c.Abort()

	resp := Response{
		Success: false,
		Message: message,
	}

	if err != nil {
		resp.Error = err.Error()
	}

	if len(data) > 0 {
		resp.Data = data[0]
	}

	c.JSON(code, resp)
}

// FromError maps a service error onto its HTTP status and a message that
// never leaks infrastructure detail or account existence.
func FromError(c *gin.Context, err error) {
	status, message := StatusFor(err)
	switch status {
	case http.StatusInternalServerError, http.StatusServiceUnavailable:
		Error(c, status, message, nil)
	default:
		Error(c, status, message, errors.New(message))
	}
}

// StatusFor classifies err.
func StatusFor(err error) (int, string) {
	if locked, ok := xerrors.AsLocked(err); ok {
		return http.StatusLocked, locked.Error()
	}

	switch {
	case errors.Is(err, xerrors.ErrStoreUnavailable):
		return http.StatusServiceUnavailable, "service unavailable"
	case errors.Is(err, xerrors.ErrInvalidInput), errors.Is(err, xerrors.ErrBadRequest):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, xerrors.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, xerrors.ErrSessionInvalid):
		return http.StatusUnauthorized, "session invalid"
	case errors.Is(err, xerrors.ErrUnauthorized):
		return http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, xerrors.ErrNotVerified):
		return http.StatusForbidden, "must verify"
	case errors.Is(err, xerrors.ErrInvalidCode):
		return http.StatusBadRequest, "invalid code"
	case errors.Is(err, xerrors.ErrAlreadyExists), errors.Is(err, xerrors.ErrConflict):
		return http.StatusConflict, "admin already exists"
	case errors.Is(err, xerrors.ErrLimitReached):
		return http.StatusForbidden, "admin limit reached"
	case errors.Is(err, xerrors.ErrLastAdmin):
		return http.StatusBadRequest, "cannot delete the last admin"
	case errors.Is(err, xerrors.ErrNotFound):
		return http.StatusNotFound, "not found"
	case errors.Is(err, xerrors.ErrForbidden):
		return http.StatusForbidden, "forbidden"
	case errors.Is(err, xerrors.ErrRateLimited):
		return http.StatusTooManyRequests, "too many requests"
	}
	return http.StatusInternalServerError, "internal server error"
}

// ValidationError sends a 400 Bad Request response for invalid input.
func ValidationError(c *gin.Context, message string, err error) {
	Error(c, http.StatusBadRequest, message, err)
}

// Unauthorized sends a 401 Unauthorized response.
func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, message, nil)
}

// Forbidden sends a 403 Forbidden response.
func Forbidden(c *gin.Context, message string) {
	Error(c, http.StatusForbidden, message, nil)
}
