package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	migrate "github.com/rubenv/sql-migrate"
	"go.uber.org/zap"

	"github.com/johnquangdev/idea-hub/internal/infrastructure/database"
	"github.com/johnquangdev/idea-hub/pkg/config"
)

func main() {
	dir := flag.String("dir", "", "migrations directory (default DB_MIGRATIONS_DIR)")
	max := flag.Int("max", 0, "maximum number of migrations to apply, 0 for all (down defaults to 1)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: migrate [flags] up|down|status\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *dir == "" {
		*dir = cfg.Database.MigrationsDir
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	db, err := database.NewPostgresDB(context.Background(), cfg, logger)
	if err != nil {
		logger.Fatal("❌ Failed to connect to database", zap.Error(err))
	}
	defer func() { _ = database.CloseDB(db) }()

	switch flag.Arg(0) {
	case "up":
		n, err := database.Migrate(db, *dir, migrate.Up, *max)
		if err != nil {
			logger.Fatal("❌ Migration failed", zap.Int("applied", n), zap.Error(err))
		}
		logger.Info("✅ Migrations applied", zap.Int("count", n))
	case "down":
		limit := *max
		if limit == 0 {
			limit = 1
		}
		n, err := database.Migrate(db, *dir, migrate.Down, limit)
		if err != nil {
			logger.Fatal("❌ Rollback failed", zap.Int("rolled_back", n), zap.Error(err))
		}
		logger.Info("✅ Migrations rolled back", zap.Int("count", n))
	case "status":
		records, err := database.MigrationStatus(db)
		if err != nil {
			logger.Fatal("❌ Failed to read migration status", zap.Error(err))
		}
		for _, r := range records {
			fmt.Printf("%s\t%s\n", r.AppliedAt.Format("2006-01-02 15:04:05"), r.Id)
		}
	default:
		flag.Usage()
		os.Exit(2)
	}
}
