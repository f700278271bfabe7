package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/ndmlabs/dealfeed/internal/config"
	"github.com/ndmlabs/dealfeed/internal/ingest"
	"github.com/ndmlabs/dealfeed/internal/logging"
	"github.com/ndmlabs/dealfeed/internal/migrate"
	"github.com/ndmlabs/dealfeed/internal/store"
)

// Command import runs one CSV file through the ingest pipeline against the
// configured store and prints the per-row report as JSON.
func main() {
	var (
		file       = flag.String("file", "", "path to the product CSV file (required)")
		tag        = flag.String("tag", "", "affiliate tag override")
		runMigrate = flag.Bool("migrate", false, "apply migrations before importing")
	)
	flag.Parse()

	if *file == "" {
		fmt.Fprintln(os.Stderr, "usage: import -file products.csv [-tag TAG] [-migrate]")
		os.Exit(2)
	}

	cfg := config.Load()
	logger := logging.NewStdLogger("import ")

	if *tag != "" {
		cfg.AffiliateTag = *tag
	}

	raw, err := os.ReadFile(*file)
	if err != nil {
		logger.Printf("read %s: %v", *file, err)
		os.Exit(1)
	}

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

	if *runMigrate && result.DB != nil {
		if err := migrate.ApplyDir(ctx, result.DB, cfg.MigrationsDir); err != nil {
			logger.Printf("migrations failed: %v", err)
			os.Exit(1)
		}
	}

	proc := ingest.Processor{
		Catalog: result.Store,
		Tag:     cfg.AffiliateTag,
		Logger:  logger,
	}

	report, runErr := proc.Run(ctx, string(raw))

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(report)

	if runErr != nil {
		logger.Printf("import aborted: %v", runErr)
		os.Exit(1)
	}
	logger.Printf("%s", report.Message)
}
