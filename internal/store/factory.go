package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "modernc.org/sqlite"

	"github.com/ndmlabs/dealfeed/internal/db"
)

type FactoryConfig struct {
	Backend     string
	MySQLDSN    string
	PostgresURL string
	SQLitePath  string
}

type FactoryResult struct {
	Store Store

	// DB is set for the database/sql backends so callers can run
	// migrations against it.
	DB *sql.DB

	Close func()
}

// NewStore builds the configured backend and verifies connectivity.
func NewStore(ctx context.Context, cfg FactoryConfig) (FactoryResult, error) {
	backend := strings.ToLower(strings.TrimSpace(cfg.Backend))
	if backend == "" {
		backend = "memory"
	}

	switch backend {
	case "memory":
		return FactoryResult{Store: NewMemoryStore(), Close: func() {}}, nil

	case "mysql":
		if strings.TrimSpace(cfg.MySQLDSN) == "" {
			return FactoryResult{}, errors.New("MYSQL_DSN is required when STORE_BACKEND=mysql")
		}
		return openSQL(ctx, "mysql", cfg.MySQLDSN)

	case "sqlite":
		if strings.TrimSpace(cfg.SQLitePath) == "" {
			return FactoryResult{}, errors.New("SQLITE_PATH is required when STORE_BACKEND=sqlite")
		}
		return openSQL(ctx, "sqlite", cfg.SQLitePath)

	case "postgres":
		if strings.TrimSpace(cfg.PostgresURL) == "" {
			return FactoryResult{}, errors.New("DATABASE_URL is required when STORE_BACKEND=postgres")
		}

		pool, err := pgxpool.New(ctx, cfg.PostgresURL)
		if err != nil {
			return FactoryResult{}, err
		}

		c, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := pool.Ping(c); err != nil {
			pool.Close()
			return FactoryResult{}, err
		}

		return FactoryResult{
			Store: NewPostgresStore(pool),
			Close: pool.Close,
		}, nil

	default:
		return FactoryResult{}, errors.New("unknown STORE_BACKEND (use memory, mysql, sqlite or postgres)")
	}
}

func openSQL(ctx context.Context, driver, dsn string) (FactoryResult, error) {
	handle, err := db.Open(db.Config{Driver: driver, DSN: dsn})
	if err != nil {
		return FactoryResult{}, err
	}

	if err := db.Ping(ctx, handle); err != nil {
		_ = handle.Close()
		return FactoryResult{}, err
	}

	return FactoryResult{
		Store: NewSQLStore(handle),
		DB:    handle,
		Close: func() { _ = handle.Close() },
	}, nil
}
