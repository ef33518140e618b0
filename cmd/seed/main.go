package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"skillpath/internal/catalog"
	"skillpath/internal/config"
	"skillpath/internal/db"
	"skillpath/internal/logger"
	"skillpath/internal/repository"
)

func main() {
	source := flag.String("catalog", "", "catalog YAML to seed from: a file path or http(s) URL (default: built-in catalog)")
	flag.Parse()

	// Load configuration
	cfg := config.Load()

	logg, err := logger.New(cfg.Env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init: %v\n", err)
		os.Exit(1)
	}
	defer logg.Sync()

	if cfg.StorageDriver == "" || cfg.StorageDriver == "memory" {
		logg.Fatal("seeding needs a SQL storage driver", "driver", cfg.StorageDriver)
	}

	cat, err := loadCatalog(*source)
	if err != nil {
		logg.Fatal("failed to load catalog", "source", *source, "error", err)
	}
	logg.Info("catalog loaded", "skills", len(cat.Skills), "roadmaps", len(cat.Roadmaps))

	// Connect to database
	logg.Debug("seed source", "catalog", *source, "reset", cfg.ResetDB)
	gormDB, err := db.Open(cfg.StorageDriver, cfg.DatabaseDSN, logg.With("component", "gorm"))
	if err != nil {
		logg.Fatal("failed to connect to database", "error", err)
	}
	logg.Info("connected to database", "driver", cfg.StorageDriver)

	// Run migrations to ensure schema is up to date
	if err := db.Migrate(gormDB, cfg.ResetDB, repository.Models()...); err != nil {
		logg.Fatal("failed to run migrations", "error", err)
	}
	logg.Info("database migrations completed", "reset", cfg.ResetDB)

	store := repository.NewGormStorage(gormDB)
	if err := store.Seed(context.Background(), cat.Skills, cat.Roadmaps); err != nil {
		logg.Fatal("failed to seed catalog", "error", err)
	}
	logg.Info("seed completed successfully", "skills", len(cat.Skills), "roadmaps", len(cat.Roadmaps))
}

// loadCatalog reads a catalog from source, falling back to the built-in one.
func loadCatalog(source string) (*catalog.Catalog, error) {
	if source == "" {
		return catalog.Load()
	}

	var (
		data []byte
		err  error
	)
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		data, err = fetchCatalog(source)
	} else {
		data, err = os.ReadFile(source)
	}
	if err != nil {
		return nil, err
	}
	return catalog.Parse(data)
}

// fetchCatalog downloads a catalog document.
func fetchCatalog(url string) ([]byte, error) {
	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog source returned status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, nil
}
