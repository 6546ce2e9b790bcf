package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetenvIntUnsetUsesDefault(t *testing.T) {
	assert.Equal(t, 7, getenvInt("RS_TEST_NEVER_SET", 7))
}

func TestGetenvIntParsesOverride(t *testing.T) {
	t.Setenv("FARE_BASE", "12")
	assert.Equal(t, 12, getenvInt("FARE_BASE", 10))
}

func TestGetenvIntBadOverrideKeepsDefault(t *testing.T) {
	t.Setenv("FARE_BASE", "ten")
	assert.Equal(t, 10, getenvInt("FARE_BASE", 10))

	t.Setenv("FARE_PER_STOP", "5.5")
	assert.Equal(t, 5, getenvInt("FARE_PER_STOP", 5))
}

func TestRateLimitBadAttemptsKeepsDefault(t *testing.T) {
	t.Setenv("RATELIMIT_LOGIN_ATTEMPTS", "many")
	cfg := LoadRateLimitConfig()
	assert.Equal(t, 10, cfg.Limit)
}
