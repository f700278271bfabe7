package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Env  string
	Port string

	// StoreBackend selects memory | mysql | sqlite | postgres.
	StoreBackend string
	MySQLDSN     string
	PostgresURL  string
	SQLitePath   string

	// AffiliateTag is the site's affiliate identifier, applied to every
	// outgoing deal URL. Fixed at deploy time, never read from input.
	AffiliateTag string

	// AdminJWTSecret guards the import endpoints. Empty disables auth
	// (dev convenience).
	AdminJWTSecret string

	// RedisURL enables the Redis idempotency backend when set.
	RedisURL string

	// Optional: run migrations at startup (dev convenience)
	RunMigrations bool
	MigrationsDir string
}

func Load() Config {
	_ = godotenv.Load()
	return Config{
		Env:            getenv("ENV", "dev"),
		Port:           getenv("PORT", "8080"),
		StoreBackend:   getenv("STORE_BACKEND", "memory"),
		MySQLDSN:       getenv("MYSQL_DSN", ""),
		PostgresURL:    getenv("DATABASE_URL", ""),
		SQLitePath:     getenv("SQLITE_PATH", ""),
		AffiliateTag:   getenv("AFFILIATE_TAG", "ndmlabs-20"),
		AdminJWTSecret: getenv("ADMIN_JWT_SECRET", ""),
		RedisURL:       getenv("REDIS_URL", ""),
		RunMigrations:  getenv("RUN_MIGRATIONS", "false") == "true",
		MigrationsDir:  getenv("MIGRATIONS_DIR", "migrations"),
	}
}

func getenv(key string, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}
