package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// BodySizeLimiter rejects requests whose body exceeds maxBytes. The abort on
// the fast path matters: without it the handler chain keeps running and a
// rejected request could still commit writes.
func BodySizeLimiter(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Fast reject for requests that announce their size honestly
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{
				"message": "La requête est trop volumineuse.",
			})
			return
		}

		// Bodies that lied about their length get cut off mid-read instead
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()

		if last := c.Errors.Last(); last != nil && strings.Contains(last.Error(), "http: request body too large") {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{
				"message": "La requête est trop volumineuse.",
			})
		}
	}
}
