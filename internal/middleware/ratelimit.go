package middleware

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/IRX358/RouteSaathi-2.0/internal/config"
)

// LoginRateLimit throttles credential attempts per client IP using a
// fixed window counter in Redis (INCR + EXPIRE).  When Redis is down
// or the limiter is disabled, requests pass through; availability of
// login matters more than the throttle.
func LoginRateLimit(cfg config.RateLimitConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			key := "rl:login:" + c.RealIP()

			count, err := rdb.Incr(ctx, key).Result()
			if err != nil {
				return next(c)
			}
			if count == 1 {
				_ = rdb.Expire(ctx, key, cfg.Window).Err()
			}
			if count > int64(cfg.Limit) {
				ttl, _ := rdb.TTL(ctx, key).Result()
				c.Response().Header().Set("Retry-After", fmt.Sprintf("%d", int(ttl.Seconds())))
				return c.JSON(http.StatusTooManyRequests, echo.Map{"error": "too many login attempts"})
			}
			return next(c)
		}
	}
}
