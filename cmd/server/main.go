package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	_ "skillpath/docs" // swagger docs

	"github.com/labstack/echo/v4"

	"skillpath/internal/auth"
	"skillpath/internal/cache"
	"skillpath/internal/catalog"
	"skillpath/internal/config"
	"skillpath/internal/db"
	"skillpath/internal/handler"
	"skillpath/internal/logger"
	"skillpath/internal/repository"
	"skillpath/internal/router"
	"skillpath/internal/service"
)

// @title Skill Path API
// @version 1.0
// @description Skills catalog, learning roadmaps and per-user progress tracking.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token.
func main() {
	cfg := config.Load()

	logg, err := logger.New(cfg.Env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init: %v\n", err)
		os.Exit(1)
	}
	defer logg.Sync()

	if err := cfg.Validate(); err != nil {
		logg.Fatal("invalid configuration", "error", err)
	}
	if cfg.UsesDefaultSecret() {
		logg.Warn("JWT_SECRET is not set, signing sessions with the development default")
	}
	logg.Debug("configuration loaded",
		"env", cfg.Env,
		"storage", cfg.StorageDriver,
		"sessions", cfg.SessionBackend,
		"session_ttl", cfg.SessionTTL,
	)

	ctx := context.Background()

	store, closeStore, err := openStore(ctx, cfg, logg)
	if err != nil {
		logg.Fatal("store init", "driver", cfg.StorageDriver, "error", err)
	}
	defer closeStore()

	sessions, stopSessions, err := openSessions(ctx, cfg, logg)
	if err != nil {
		logg.Fatal("session store init", "backend", cfg.SessionBackend, "error", err)
	}
	defer stopSessions()

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.SessionTTL)

	// Initialize services
	authService := service.NewAuthService(store, jwtService, sessions)
	catalogService := service.NewCatalogService(store)
	progressService := service.NewProgressService(store)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, handler.CookieConfig{
		Name:   cfg.SessionCookie,
		Secure: cfg.CookieSecure,
		TTL:    cfg.SessionTTL,
	})
	userHandler := handler.NewUserHandler()
	skillHandler := handler.NewSkillHandler(catalogService)
	progressHandler := handler.NewProgressHandler(progressService)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.StdLogger = logg.StdLog()

	// Register routes
	router.Register(
		e,
		cfg,
		logg,
		jwtService,
		authService,
		authHandler,
		userHandler,
		skillHandler,
		progressHandler,
	)

	logg.Info("swagger documentation available", "url", swaggerURL(cfg))

	addr := ":" + cfg.ServerPort
	go func() {
		logg.Info("server listening", "addr", addr, "storage", cfg.StorageDriver, "sessions", cfg.SessionBackend)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Fatal("server start", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logg.Info("shutting down", "timeout", cfg.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logg.Error("server shutdown", "error", err)
	}
}

// openStore builds the configured store and loads the catalog into it.
func openStore(ctx context.Context, cfg *config.Config, logg *logger.Logger) (repository.Store, func(), error) {
	cat, err := catalog.Load()
	if err != nil {
		return nil, nil, err
	}

	var (
		store   repository.Store
		closeFn = func() {}
	)

	switch cfg.StorageDriver {
	case "", "memory":
		store = repository.NewMemStorage()
	case db.DriverMySQL, db.DriverPostgres, db.DriverSQLite:
		if cfg.DatabaseDSN == "" {
			return nil, nil, fmt.Errorf("DATABASE_DSN is required for driver %q", cfg.StorageDriver)
		}
		gormDB, err := db.Open(cfg.StorageDriver, cfg.DatabaseDSN, logg.With("component", "gorm"))
		if err != nil {
			return nil, nil, err
		}
		if cfg.ResetDB {
			logg.Warn("RESET_DB is set, dropping tables")
		}
		if err := db.Migrate(gormDB, cfg.ResetDB, repository.Models()...); err != nil {
			return nil, nil, err
		}
		if sqlDB, err := gormDB.DB(); err == nil {
			closeFn = func() { _ = sqlDB.Close() }
		}
		store = repository.NewGormStorage(gormDB)
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}

	if err := store.Seed(ctx, cat.Skills, cat.Roadmaps); err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("seed catalog: %w", err)
	}
	logg.Info("catalog loaded", "skills", len(cat.Skills), "roadmaps", len(cat.Roadmaps))
	return store, closeFn, nil
}

// openSessions builds the configured session store. The memory backend gets a
// background pruner; Redis expires keys on its own.
func openSessions(ctx context.Context, cfg *config.Config, logg *logger.Logger) (auth.SessionStore, func(), error) {
	switch cfg.SessionBackend {
	case "", "memory":
		sessions := auth.NewMemorySessionStore()
		pruner, err := auth.NewPruner(sessions, cfg.SessionPruneSchedule, logg.With("component", "session-pruner"))
		if err != nil {
			return nil, nil, err
		}
		pruner.Start()
		return sessions, pruner.Stop, nil
	case "redis":
		cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		if err := cacheClient.Ping(ctx); err != nil {
			logg.Warn("redis unreachable, logins will fail until it answers", "addr", cfg.RedisAddr, "error", err)
		}
		return auth.NewRedisSessionStore(cacheClient), func() { _ = cacheClient.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown session backend %q", cfg.SessionBackend)
	}
}

func swaggerURL(cfg *config.Config) string {
	host := cfg.SwaggerHost
	if host == "" {
		host = "localhost:" + cfg.ServerPort
	}
	if !strings.HasPrefix(host, "http://") && !strings.HasPrefix(host, "https://") {
		host = "http://" + host
	}
	return host + "/swagger/index.html"
}
