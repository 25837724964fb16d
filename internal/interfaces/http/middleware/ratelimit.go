package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// RateLimit applies a fixed-window per-client limit keyed by IP.  It protects
// the expensive AI-backed endpoints; generous enough that the frontend never
// trips it in normal use.
func RateLimit(maxPerWindow int, window time.Duration) gin.HandlerFunc {
	type bucket struct {
		count   int
		resetAt time.Time
	}
	var (
		mu      sync.Mutex
		buckets = map[string]*bucket{}
	)

	return func(c *gin.Context) {
		now := time.Now()
		ip := c.ClientIP()

		mu.Lock()
		b, ok := buckets[ip]
		if !ok || now.After(b.resetAt) {
			b = &bucket{resetAt: now.Add(window)}
			buckets[ip] = b
		}
		b.count++
		over := b.count > maxPerWindow
		mu.Unlock()

		if over {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"code":    "COMMON_009",
				"message": "too many requests",
			})
			return
		}
		c.Next()
	}
}
