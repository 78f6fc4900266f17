package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// AbortWithError writes a JSON error body with the given status
func AbortWithError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Error: message})
}

// ErrorHandler recovers from panics and returns a JSON 500 response
func ErrorHandler() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, err interface{}) {
		log.Printf("[ErrorHandler] panic recovered on %s %s (request %s): %v",
			c.Request.Method, c.Request.URL.Path, RequestID(c), err)
		AbortWithError(c, http.StatusInternalServerError, "Internal Server Error")
	})
}

// NotFound returns a JSON 404 for unmatched routes
func NotFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		AbortWithError(c, http.StatusNotFound, "Not found")
	}
}
