package middleware

import (
	"bytes"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/IRX358/RouteSaathi-2.0/internal/config"
)

// cachedResponse is the stored envelope.  The API emits uniform JSON,
// so status and body are enough to replay a response.
type cachedResponse struct {
	Status int             `json:"status"`
	Body   json.RawMessage `json:"body"`
}

// bodyCapture tees the response body while forwarding it to the client.
type bodyCapture struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
}

func (w *bodyCapture) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *bodyCapture) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

// ResponseCache caches successful GET responses in Redis for the
// configured TTL.  Intended for the hot read endpoints (bus list,
// routes, AI recommendations) whose data tolerates a few seconds of
// staleness.  Disabled config or a nil Redis client yields a
// pass-through middleware.
func ResponseCache(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Method != http.MethodGet {
				return next(c)
			}
			key := cacheKey(cfg.Prefix, c)
			ctx := c.Request().Context()

			if data, err := rdb.Get(ctx, key).Bytes(); err == nil {
				var cached cachedResponse
				if json.Unmarshal(data, &cached) == nil {
					return c.JSONBlob(cached.Status, cached.Body)
				}
			}

			capture := &bodyCapture{ResponseWriter: c.Response().Writer, status: http.StatusOK}
			c.Response().Writer = capture
			if err := next(c); err != nil {
				return err
			}
			if capture.status == http.StatusOK {
				data, err := json.Marshal(cachedResponse{Status: capture.status, Body: capture.buf.Bytes()})
				if err == nil {
					_ = rdb.Set(ctx, key, data, cfg.TTL).Err()
				}
			}
			return nil
		}
	}
}

// cacheKey hashes path+query under the configured prefix.
func cacheKey(prefix string, c echo.Context) string {
	r := c.Request()
	sum := sha1.Sum([]byte(r.URL.Path + "?" + r.URL.RawQuery))
	return fmt.Sprintf("%s:%x", prefix, sum[:])
}
