// Package database opens the shared MySQL pool used by the fleet
// repositories.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// dsn assembles the driver connection string.  parseTime maps DATETIME
// columns onto time.Time and loc=UTC keeps ticket and alert timestamps
// comparable across handlers regardless of server timezone.
func dsn(user, pass, host, port, name string) string {
	auth := user
	if pass != "" {
		auth = user + ":" + pass
	}
	return fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, host, port, name)
}

// Open connects to MySQL and verifies the connection before returning
// the pool.  Dashboard traffic is bursts of short reads from the live
// views plus occasional writes from ticket issuance and incident
// reports, so maxConns bounds open and idle connections alike to keep
// the pool warm between bursts.  connTTL retires connections so
// load-balancer and failover changes are picked up.
func Open(user, pass, host, port, name string, maxConns int, connTTL time.Duration) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn(user, pass, host, port, name))
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(maxConns)
	db.SetMaxIdleConns(maxConns)
	db.SetConnMaxLifetime(connTTL)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
