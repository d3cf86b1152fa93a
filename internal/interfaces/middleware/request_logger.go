package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// RequestLogger logs each API request with its latency and status.
// Health checks are skipped to keep the log readable under probes.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/health" {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		status := c.Writer.Status()
		if status >= 500 {
			log.Printf("❌ %s %s -> %d (%v)", c.Request.Method, c.Request.URL.Path, status, latency)
		} else if status >= 400 {
			log.Printf("⚠️  %s %s -> %d (%v)", c.Request.Method, c.Request.URL.Path, status, latency)
		} else {
			log.Printf("%s %s -> %d (%v)", c.Request.Method, c.Request.URL.Path, status, latency)
		}
	}
}
