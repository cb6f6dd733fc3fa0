// middleware/rate_limit.go
package middleware

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// LoginRateLimit allows a short burst of login attempts per client IP, then
// one attempt every two seconds. Stale visitors are pruned in the background.
func LoginRateLimit() fiber.Handler {
	var (
		mu       sync.Mutex
		visitors = make(map[string]*visitor)
	)

	go func() {
		for range time.Tick(time.Minute) {
			mu.Lock()
			for ip, v := range visitors {
				if time.Since(v.lastSeen) > 3*time.Minute {
					delete(visitors, ip)
				}
			}
			mu.Unlock()
		}
	}()

	return func(c *fiber.Ctx) error {
		mu.Lock()
		v, ok := visitors[c.IP()]
		if !ok {
			v = &visitor{limiter: rate.NewLimiter(rate.Every(2*time.Second), 5)}
			visitors[c.IP()] = v
		}
		v.lastSeen = time.Now()
		mu.Unlock()

		if !v.limiter.Allow() {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "too many login attempts, slow down",
			})
		}
		return c.Next()
	}
}
