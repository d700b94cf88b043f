package http

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// DefaultIdleTimeout is how long a client's limiter is kept after its last
// request.
const DefaultIdleTimeout = 10 * time.Minute

// ClientLimiter provides per-client rate limiting using token buckets.
// Each client address gets its own limiter. Limiters of clients idle for
// longer than IdleTimeout are dropped.
type ClientLimiter struct {
	// IdleTimeout is how long an unused limiter is kept.
	IdleTimeout time.Duration

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time

	mu        sync.Mutex
	clients   map[string]*client
	lastSweep time.Time
	rps       float64
	burst     int
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewClientLimiter creates a new ClientLimiter allowing rps requests per
// second per client with the given burst.
func NewClientLimiter(rps float64, burst int) *ClientLimiter {
	if burst < 1 {
		burst = 1
	}
	return &ClientLimiter{
		IdleTimeout: DefaultIdleTimeout,
		Now:         time.Now,
		clients:     make(map[string]*client),
		rps:         rps,
		burst:       burst,
	}
}

// Allow reports whether the client may make a request now.
func (l *ClientLimiter) Allow(name string) bool {
	l.mu.Lock()
	now := l.Now()
	l.sweep(now)
	c, ok := l.clients[name]
	if !ok {
		c = &client{limiter: rate.NewLimiter(rate.Limit(l.rps), l.burst)}
		l.clients[name] = c
	}
	c.lastSeen = now
	l.mu.Unlock()

	return c.limiter.AllowN(now, 1)
}

// sweep drops idle clients at most once per IdleTimeout. Must hold mu.
func (l *ClientLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < l.IdleTimeout {
		return
	}
	for name, c := range l.clients {
		if now.Sub(c.lastSeen) >= l.IdleTimeout {
			delete(l.clients, name)
		}
	}
	l.lastSweep = now
}

// Len returns the number of tracked clients.
func (l *ClientLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

// Middleware rejects requests over the client's limit with 429.
func (l *ClientLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, ErrorResponse{Error: "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
