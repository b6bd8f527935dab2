package response

import (
	"errors"
	"net/http"

	"creatorhub/internal/apperrors"
	"creatorhub/pkg/logging"

	"github.com/gin-gonic/gin"
)

// Response represents a standard API response
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// Success returns a success response
func Success(data interface{}) Response {
	return Response{
		Success: true,
		Data:    data,
	}
}

// Error returns an error response
func Error(message string) Response {
	return Response{
		Success: false,
		Message: message,
	}
}

// SuccessJSON sends a success JSON response
func SuccessJSON(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Success(data))
}

// CreatedJSON sends a 201 success JSON response
func CreatedJSON(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Success(data))
}

// MessageJSON sends a success JSON response carrying only a message
func MessageJSON(c *gin.Context, message string) {
	c.JSON(http.StatusOK, Response{Success: true, Message: message})
}

// ErrorJSON sends an error JSON response with an explicit status
func ErrorJSON(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Error(message))
}

// ErrorFromErr maps a service error to its HTTP status. Errors without
// a kind are logged and reported generically so internals never leak.
func ErrorFromErr(c *gin.Context, err error) {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		c.JSON(appErr.HTTPStatus(), Error(appErr.Message))
		return
	}
	logging.Errorf("unexpected error on %s %s: %v", c.Request.Method, c.FullPath(), err)
	c.JSON(http.StatusInternalServerError, Error("internal server error"))
}
