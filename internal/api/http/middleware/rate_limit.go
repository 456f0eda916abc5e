package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const (
	limiterSweepEvery = 5 * time.Minute
	limiterIdleAfter  = 10 * time.Minute
)

type clientEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimitByClient returns middleware keeping a token bucket per client IP.
// It guards the collaborator email search, where unbounded probing would let
// a caller enumerate registered addresses.
//
// Idle buckets are evicted inline on the next request after the sweep
// interval passes, so the map cannot grow without bound and no background
// goroutine is needed.
func RateLimitByClient(perSec float64, burst int) gin.HandlerFunc {
	var (
		mu        sync.Mutex
		clients   = make(map[string]*clientEntry)
		lastSweep = time.Now()
	)

	return func(c *gin.Context) {
		ip := c.ClientIP()
		now := time.Now()

		mu.Lock()
		if now.Sub(lastSweep) >= limiterSweepEvery {
			evictIdle(clients, now.Add(-limiterIdleAfter))
			lastSweep = now
		}
		e, ok := clients[ip]
		if !ok {
			e = &clientEntry{limiter: rate.NewLimiter(rate.Limit(perSec), burst)}
			clients[ip] = e
		}
		e.lastSeen = now
		mu.Unlock()

		if !e.limiter.Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{"ok": false, "error": "too many requests"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// evictIdle drops entries last seen before cutoff. Caller holds the lock.
func evictIdle(clients map[string]*clientEntry, cutoff time.Time) {
	for ip, e := range clients {
		if e.lastSeen.Before(cutoff) {
			delete(clients, ip)
		}
	}
}
