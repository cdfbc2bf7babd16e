// Package ratelimit throttles inbound forward requests per client IP so a
// single noisy producer cannot starve the gateway.
package ratelimit

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"notigw/pkg/errors"
	"notigw/pkg/metrics"
)

type Config struct {
	RPS             float64
	Burst           int
	CleanupInterval time.Duration
	MaxAge          time.Duration
}

func DefaultConfig() Config {
	return Config{
		RPS:             10.0,
		Burst:           20,
		CleanupInterval: 5 * time.Minute,
		MaxAge:          10 * time.Minute,
	}
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// store tracks one token bucket per client IP. Entries for clients that
// stayed silent longer than MaxAge are swept periodically so the map stays
// bounded.
type store struct {
	mu      sync.Mutex
	clients map[string]*client
	rps     float64
	burst   int
}

func newStore(cfg Config) *store {
	return &store{
		clients: make(map[string]*client),
		rps:     cfg.RPS,
		burst:   cfg.Burst,
	}
}

// visit returns the limiter for ip, creating it on first contact, and
// refreshes the last-seen stamp.
func (s *store) visit(ip string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.clients[ip]
	if !ok {
		c = &client{limiter: rate.NewLimiter(rate.Limit(s.rps), s.burst)}
		s.clients[ip] = c
	}
	c.lastSeen = time.Now()
	return c.limiter
}

// sweep drops clients not seen since the cutoff and reports how many were
// removed.
func (s *store) sweep(cutoff time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for ip, c := range s.clients {
		if c.lastSeen.Before(cutoff) {
			delete(s.clients, ip)
			removed++
		}
	}
	return removed
}

func (s *store) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

// Middleware rejects requests above the per-IP budget with the gateway's
// standard error envelope and a Retry-After hint.
func Middleware(cfg Config) gin.HandlerFunc {
	limiters := newStore(cfg)

	go func() {
		ticker := time.NewTicker(cfg.CleanupInterval)
		defer ticker.Stop()
		for range ticker.C {
			limiters.sweep(time.Now().Add(-cfg.MaxAge))
		}
	}()

	return func(c *gin.Context) {
		ip := c.ClientIP()
		if ip == "" {
			ip = c.RemoteIP()
		}

		limiter := limiters.visit(ip)
		c.Header("X-RateLimit-Limit", strconv.Itoa(int(cfg.RPS)))

		if !limiter.Allow() {
			metrics.RateLimitRequestsTotal.WithLabelValues("limited").Inc()
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(errors.ToHTTPStatus(errors.ErrRateLimited), errors.ToErrorResponse(errors.ErrRateLimited))
			return
		}

		metrics.RateLimitRequestsTotal.WithLabelValues("allowed").Inc()
		remaining := limiter.Burst() - int(limiter.Tokens())
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		c.Next()
	}
}
