package response

import (
	"github.com/gin-gonic/gin"
)

// Error is the body of every JSON error response
type Error struct {
	Code    string      `json:"code,omitempty"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// Message is a bare {"message": "..."} body
type Message struct {
	Message string `json:"message"`
}

// JSON writes data as is. Resources are returned without an envelope.
func JSON(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// WithMessage writes {"message": message}
func WithMessage(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Message{Message: message})
}

// Error responses
func ErrorResponse(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, Error{
		Code:    code,
		Message: message,
	})
}

func ErrorWithDetails(c *gin.Context, statusCode int, code, message string, details interface{}) {
	c.JSON(statusCode, Error{
		Code:    code,
		Message: message,
		Details: details,
	})
}

// ServiceUnavailable is used by the health check
func ServiceUnavailable(c *gin.Context, message string, details interface{}) {
	ErrorWithDetails(c, 503, "SERVICE_UNAVAILABLE", message, details)
}
