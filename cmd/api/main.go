package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ndmlabs/dealfeed/internal/api/handlers"
	"github.com/ndmlabs/dealfeed/internal/api/middleware"
	"github.com/ndmlabs/dealfeed/internal/config"
	"github.com/ndmlabs/dealfeed/internal/ingest"
	"github.com/ndmlabs/dealfeed/internal/logging"
	"github.com/ndmlabs/dealfeed/internal/migrate"
	"github.com/ndmlabs/dealfeed/internal/observability"
	"github.com/ndmlabs/dealfeed/internal/posts"
	"github.com/ndmlabs/dealfeed/internal/redirect"
	"github.com/ndmlabs/dealfeed/internal/store"
)

func main() {
	cfg := config.Load()
	logger := logging.NewStdLogger("api-service ")

	ctx := context.Background()

	result, err := store.NewStore(ctx, store.FactoryConfig{
		Backend:     cfg.StoreBackend,
		MySQLDSN:    cfg.MySQLDSN,
		PostgresURL: cfg.PostgresURL,
		SQLitePath:  cfg.SQLitePath,
	})
	if err != nil {
		logger.Printf("store init failed: %v", err)
		os.Exit(1)
	}
	defer result.Close()

	if cfg.RunMigrations && result.DB != nil {
		if err := migrate.ApplyDir(ctx, result.DB, cfg.MigrationsDir); err != nil {
			logger.Printf("migrations failed: %v", err)
			os.Exit(1)
		}
		logger.Printf("migrations applied from %s", cfg.MigrationsDir)
	}

	observability.Register()

	var idemStore middleware.IdempotencyStore = middleware.NewMemoryIdempotencyStore()
	if cfg.RedisURL != "" {
		redisStore, err := middleware.NewRedisIdempotencyStore(cfg.RedisURL, 24*time.Hour)
		if err != nil {
			logger.Printf("redis idempotency init failed: %v", err)
			os.Exit(1)
		}
		idemStore = redisStore
		logger.Printf("idempotency backend: redis")
	}

	postSvc := posts.Service{Store: result.Store, Logger: logger}

	adminOnly := func(next http.Handler) http.Handler {
		return middleware.AuthMiddleware{
			Secret: []byte(cfg.AdminJWTSecret),
			Next: middleware.IdempotencyMiddleware{
				Store:  idemStore,
				Logger: logger,
				Next:   next,
			},
		}
	}

	mux := http.NewServeMux()

	mux.Handle("/healthz", handlers.HealthHandler{})
	mux.Handle("/metrics", observability.Handler())

	mux.Handle("/v1/catalog/import", adminOnly(handlers.ImportHandler{
		Processor: ingest.Processor{
			Catalog: result.Store,
			Tag:     cfg.AffiliateTag,
			Logger:  logger,
		},
		Logger: logger,
	}))
	mux.Handle("/v1/catalog/products", handlers.ProductsHandler{Store: result.Store})

	mux.Handle("/v1/redirect/plan", handlers.RedirectPlanHandler{
		Resolver: redirect.Resolver{Tag: cfg.AffiliateTag},
	})

	mux.Handle("/v1/posts/import", adminOnly(handlers.PostImportHandler{Service: postSvc}))
	mux.Handle("/v1/posts", handlers.PostsHandler{Service: postSvc})
	mux.Handle("/v1/posts/", handlers.PostsHandler{Service: postSvc})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Printf("starting (env=%s store=%s) on %s", cfg.Env, cfg.StoreBackend, server.Addr)

		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			logger.Printf("server error: %v", err)
			os.Exit(1)
		}
	}()

	waitForShutdown(logger, server)
}

func waitForShutdown(logger interface{ Printf(string, ...any) }, server *http.Server) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	<-sigCh
	logger.Printf("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = server.Shutdown(ctx)
	logger.Printf("shutdown complete")
}
