package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

type clientInfo struct {
	last  time.Time
	count int
}

var rlMu sync.Mutex
var clients = make(map[string]*clientInfo)

// SimpleRateLimit blocks clients that send more than maxRequests per window.
// In-memory fixed window, used when Redis is not configured.
func SimpleRateLimit(maxRequests int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()

		rlMu.Lock()
		ci, ok := clients[ip]
		if !ok {
			ci = &clientInfo{last: time.Now(), count: 1}
			clients[ip] = ci
			rlMu.Unlock()
			RLRequests.WithLabelValues(c.FullPath()).Inc()
			c.Next()
			return
		}

		now := time.Now()
		if now.Sub(ci.last) > window {
			ci.last = now
			ci.count = 1
			rlMu.Unlock()
			RLRequests.WithLabelValues(c.FullPath()).Inc()
			c.Next()
			return
		}

		ci.count++
		rlMu.Unlock()

		if ci.count > maxRequests {
			RLBlocked.WithLabelValues(c.FullPath()).Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}

		RLRequests.WithLabelValues(c.FullPath()).Inc()
		c.Next()
	}
}

// RateLimit prefers the Redis-backed limiter when one was initialized and
// falls back to the in-memory window otherwise.
func RateLimit(maxRequests int, window time.Duration) gin.HandlerFunc {
	redisLimiter := RedisRateLimit(maxRequests, window)
	memLimiter := SimpleRateLimit(maxRequests, window)
	return func(c *gin.Context) {
		if redisClient != nil {
			redisLimiter(c)
			return
		}
		memLimiter(c)
	}
}
