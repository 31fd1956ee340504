package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/spimexpulse/internal/domain/dto"
)

// client represents a rate-limited client with request count and window start.
type client struct {
	windowStart time.Time
	count       int
}

// In-memory fixed-window store keyed by client IP. Single instance only.
var (
	clients         = make(map[string]*client)
	window          = time.Minute
	limit           = 60
	lastSweep       time.Time
	rateLimiterLock sync.Mutex
)

// RateLimiter limits each client IP to `limit` requests per `window`
// (default: 60 per minute).
//
// Over the limit it aborts with 429, a Retry-After header and a dto.ErrorResponse body.
// Entries idle for more than a window are swept on the next request after a window elapses.
func RateLimiter() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		now := time.Now()

		rateLimiterLock.Lock()
		if now.Sub(lastSweep) > window {
			for k, cl := range clients {
				if now.Sub(cl.windowStart) > window {
					delete(clients, k)
				}
			}
			lastSweep = now
		}
		cl, ok := clients[ip]
		if !ok || now.Sub(cl.windowStart) > window {
			cl = &client{windowStart: now}
			clients[ip] = cl
		}
		cl.count++
		exceeded := cl.count > limit
		retry := window - now.Sub(cl.windowStart)
		rateLimiterLock.Unlock()

		if exceeded {
			secs := int(retry.Seconds())
			if secs < 1 {
				secs = 1
			}
			c.Header("Retry-After", strconv.Itoa(secs))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.NewErrorResponse("rate limit exceeded", nil))
			return
		}

		c.Next()
	}
}

// resetRateLimiter clears all counters; used by tests.
func resetRateLimiter() {
	rateLimiterLock.Lock()
	defer rateLimiterLock.Unlock()
	clients = make(map[string]*client)
	lastSweep = time.Time{}
}
