package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDSNWithPassword(t *testing.T) {
	got := dsn("fleet", "s3cret", "db.internal", "3306", "routesaathi")
	assert.Equal(t, "fleet:s3cret@tcp(db.internal:3306)/routesaathi?charset=utf8mb4&parseTime=true&loc=UTC", got)
}

func TestDSNWithoutPassword(t *testing.T) {
	got := dsn("fleet", "", "localhost", "3306", "routesaathi")
	assert.Equal(t, "fleet@tcp(localhost:3306)/routesaathi?charset=utf8mb4&parseTime=true&loc=UTC", got)
}
