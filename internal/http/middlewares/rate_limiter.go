package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
)

const maxTrackedClients = 4096

// RateLimiter limits each client IP to limit requests per fixed window.
func RateLimiter(limit int, window time.Duration) echo.MiddlewareFunc {
	type bucket struct {
		count int
		start time.Time
	}

	var (
		mu      sync.Mutex
		buckets = make(map[string]*bucket)
	)

	prune := func(now time.Time) {
		if len(buckets) < maxTrackedClients {
			return
		}
		for key, b := range buckets {
			if now.Sub(b.start) > window {
				delete(buckets, key)
			}
		}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			now := time.Now()
			key := c.RealIP()

			mu.Lock()
			prune(now)

			b, ok := buckets[key]
			if !ok || now.Sub(b.start) > window {
				b = &bucket{start: now}
				buckets[key] = b
			}

			if b.count >= limit {
				mu.Unlock()
				return c.JSON(http.StatusTooManyRequests, echo.Map{
					"error": "Rate limit exceeded",
				})
			}

			b.count++
			mu.Unlock()

			return next(c)
		}
	}
}
