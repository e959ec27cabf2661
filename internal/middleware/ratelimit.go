package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/finny/internal/domain/dto"
)

// client represents a rate-limited client with request count and window start.
type client struct {
	windowStart time.Time
	count       int
}

// fixedWindowLimiter counts requests per client IP in fixed windows.
// State is per process; multi-instance deployments need a shared store.
type fixedWindowLimiter struct {
	limit  int
	window time.Duration
	now    func() time.Time

	mu        sync.Mutex
	clients   map[string]*client
	lastSweep time.Time
}

func newFixedWindowLimiter(limit int, window time.Duration) *fixedWindowLimiter {
	return &fixedWindowLimiter{
		limit:   limit,
		window:  window,
		now:     time.Now,
		clients: make(map[string]*client),
	}
}

// allow records one request for key and reports whether it is within the limit.
func (l *fixedWindowLimiter) allow(key string) bool {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	cl, ok := l.clients[key]
	if !ok || now.Sub(cl.windowStart) >= l.window {
		cl = &client{windowStart: now}
		l.clients[key] = cl
		if now.Sub(l.lastSweep) >= l.window {
			l.sweep(now)
		}
	}
	cl.count++
	return cl.count <= l.limit
}

// sweep drops clients whose window has expired. It runs at most once per window.
// Callers hold l.mu.
func (l *fixedWindowLimiter) sweep(now time.Time) {
	l.lastSweep = now
	for k, cl := range l.clients {
		if now.Sub(cl.windowStart) >= l.window {
			delete(l.clients, k)
		}
	}
}

// RateLimiter limits the number of requests per client IP.
//
// Behavior:
//   - Allows up to `limit` requests per `window`.
//   - limit <= 0 disables limiting (the middleware just calls c.Next()).
//   - If the limit is exceeded, returns HTTP 429 {"error": "rate limit exceeded"}.
//
// Usage:
//
//	router.Use(middleware.RateLimiter(60, time.Minute))
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	if limit <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	lim := newFixedWindowLimiter(limit, window)

	return func(c *gin.Context) {
		if !lim.allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.NewErrorResponse("rate limit exceeded"))
			return
		}
		c.Next()
	}
}
