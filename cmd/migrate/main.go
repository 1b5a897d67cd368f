package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/pageza/recipe-catalog/backend/config"
	"github.com/pageza/recipe-catalog/backend/internal/database"
	"github.com/pageza/recipe-catalog/backend/internal/logger"
)

func main() {
	// Parse command line flags
	dir := flag.String("dir", "migrations", "directory holding the ordered .sql migrations")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	zl, err := logger.New(cfg.Log.Level, cfg.Env)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	// DATABASE_URL wins over the db.* settings
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = cfg.DB.URL()
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		zl.Fatal("failed to open database", zap.Error(err))
	}
	defer db.Close()

	applied, err := database.ApplySQLMigrations(context.Background(), db, os.DirFS(*dir), zl)
	if err != nil {
		zl.Fatal("migration failed", zap.Error(err))
	}

	if len(applied) == 0 {
		fmt.Println("Database is up to date.")
		return
	}
	for _, name := range applied {
		fmt.Printf("Applied migration: %s\n", name)
	}
	fmt.Println("All migrations applied successfully.")
}
