package config

// Redis backs the response cache on hot read endpoints (bus list,
// routes, AI recommendations) and the login rate limiter.  If the
// server cannot be reached at startup the constructor returns nil and
// both features degrade to pass-through.

import (
	"context"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient instantiates a Redis client from environment variables:
//
//	REDIS_ADDR     – host:port (default "localhost:6379")
//	REDIS_PASSWORD – optional password
//	REDIS_DB       – database number (default 0)
//
// The returned client is nil when the server does not answer a ping.
func NewRedisClient() *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	dbNum := 0
	if s := os.Getenv("REDIS_DB"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			dbNum = n
		}
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       dbNum,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil
	}
	return client
}

// CacheConfig defines settings for the response cache middleware.
type CacheConfig struct {
	Enabled bool
	TTL     time.Duration
	Prefix  string
}

// LoadCacheConfig reads cache settings with sensible defaults.  Live
// fleet data goes stale quickly, so the default TTL is short.
func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled: getenv("CACHE_ENABLED", "true") == "true",
		TTL:     parseDur(getenv("CACHE_TTL", "15s")),
		Prefix:  getenv("CACHE_PREFIX", "rscache"),
	}
}

// RateLimitConfig defines the login rate limiter window.
type RateLimitConfig struct {
	Enabled bool
	Limit   int           // attempts allowed per window
	Window  time.Duration // window length
}

// LoadRateLimitConfig reads rate-limit settings with defaults.
func LoadRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		Enabled: getenv("RATELIMIT_ENABLED", "true") == "true",
		Limit:   getenvInt("RATELIMIT_LOGIN_ATTEMPTS", 10),
		Window:  parseDur(getenv("RATELIMIT_LOGIN_WINDOW", "1m")),
	}
}

func parseDur(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return time.Second
	}
	return d
}
