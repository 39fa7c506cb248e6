package middlewares

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type RateLimiter struct {
	rate     int
	interval time.Duration
	ips      map[string][]time.Time
	mu       sync.Mutex
}

func NewRateLimiter(rate int, interval int) *RateLimiter {
	return &RateLimiter{
		rate:     rate,
		interval: time.Duration(interval) * time.Second,
		ips:      make(map[string][]time.Time),
	}
}

// NewStrictRateLimiter guards the auth endpoints (login, register, OTP).
func NewStrictRateLimiter() gin.HandlerFunc {
	limiter := rate.NewLimiter(rate.Every(1*time.Minute), 5)

	return func(c *gin.Context) {
		if !limiter.Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "too many attempts, please wait a moment",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

func (rl *RateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()

		rl.mu.Lock()

		now := time.Now()
		allowed := true
		if _, exists := rl.ips[ip]; !exists {
			rl.ips[ip] = []time.Time{now}
		} else {
			requests := rl.ips[ip]
			cutoff := now.Add(-rl.interval)
			valid := make([]time.Time, 0)

			for _, t := range requests {
				if t.After(cutoff) {
					valid = append(valid, t)
				}
			}

			if len(valid) >= rl.rate {
				allowed = false
			} else {
				rl.ips[ip] = append(valid, now)
			}
		}

		// Release before c.Next(): holding the lock across the handler
		// chain would serialize all requests and deadlock with
		// long-lived handlers such as the websocket feed.
		rl.mu.Unlock()

		if !allowed {
			c.AbortWithStatus(http.StatusTooManyRequests)
			return
		}
		c.Next()
	}
}
