package middleware

import "github.com/gin-gonic/gin"

// NoStore marks responses as uncacheable. Record data changes on every write,
// so API responses must never be served from an intermediary cache.
func NoStore() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")
		c.Next()
	}
}
