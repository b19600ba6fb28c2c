package middleware

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/binaryash/redbud/services"
)

// DBMiddleware puts the database handle into the request context.
func DBMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("db", db)
		c.Next()
	}
}

// SummarizerMiddleware puts the summarizer handle into the request context.
// The client is constructed once at process start, never per request.
func SummarizerMiddleware(s services.Summarizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("summarizer", s)
		c.Next()
	}
}
