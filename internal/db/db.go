// Package db opens database/sql handles with conservative pool defaults.
// Drivers are registered by the callers that need them.
package db

import (
	"context"
	"database/sql"
	"time"
)

type Config struct {
	Driver string
	DSN    string
}

func Open(cfg Config) (*sql.DB, error) {
	handle, err := sql.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, err
	}

	handle.SetMaxOpenConns(20)
	handle.SetMaxIdleConns(20)
	handle.SetConnMaxLifetime(5 * time.Minute)

	return handle, nil
}

func Ping(ctx context.Context, handle *sql.DB) error {
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return handle.PingContext(c)
}
