package middleware

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDKey is the gin context key holding the request id.
const RequestIDKey = "request_id"

const maxRequestIDLen = 64

var quietPaths = map[string]bool{"/healthz": true, "/readyz": true}

// RequestID tags every request with an id, reusing a caller's X-Request-ID
// when it is short enough to log.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" || len(id) > maxRequestIDLen {
			id = uuid.NewString()
		}
		c.Set(RequestIDKey, id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

// Logger logs one line per request. Health checks are not logged.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		if quietPaths[c.Request.URL.Path] {
			return
		}
		line := fmt.Sprintf("[%s] %s %s %d %dB %s",
			c.GetString(RequestIDKey),
			c.Request.Method,
			c.Request.URL.RequestURI(),
			c.Writer.Status(),
			max(c.Writer.Size(), 0),
			time.Since(start),
		)
		if len(c.Errors) > 0 {
			line += " errors=" + c.Errors.String()
		}
		log.Print(line)
	}
}

// Recovery turns a panic into a 500 in the API's error envelope.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Printf("[%s] PANIC: %s %s: %v", c.GetString(RequestIDKey), c.Request.Method, c.Request.URL.Path, recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   gin.H{"code": "INTERNAL_ERROR", "message": "an internal error occurred"},
		})
	})
}
