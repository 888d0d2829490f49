// Package main is the entry point for the tzplanner API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata" // conversions must not depend on the host's zoneinfo

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/pkordes/tzplanner/internal/config"
	"github.com/pkordes/tzplanner/internal/handler"
	"github.com/pkordes/tzplanner/internal/middleware"
	"github.com/pkordes/tzplanner/internal/reference"
	"github.com/pkordes/tzplanner/internal/repo"
	"github.com/pkordes/tzplanner/internal/service"
	"github.com/pkordes/tzplanner/migrations"
)

func main() {
	// --- Config -----------------------------------------------------------
	if err := config.LoadDotEnv(".env"); err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}
	cfg, err := config.Load()
	if err != nil {
		// Use the default logger before the configured one exists.
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Reference data ---------------------------------------------------
	refs, err := reference.LoadFile(cfg.ReferenceFile)
	if err != nil {
		slog.Error("failed to load reference data", "error", err, "file", cfg.ReferenceFile)
		os.Exit(1)
	}
	if cfg.DefaultTimezone != "" {
		if !refs.IsBaseTimezone(cfg.DefaultTimezone) {
			slog.Error("DEFAULT_TIMEZONE is not a selectable base timezone",
				"timezone", cfg.DefaultTimezone, "base_timezones", refs.BaseTimezones)
			os.Exit(1)
		}
		refs.DefaultTimezone = cfg.DefaultTimezone
	}
	slog.Info("reference data loaded",
		"countries", len(refs.Countries),
		"base_timezones", len(refs.BaseTimezones),
		"default_timezone", refs.DefaultTimezone,
	)

	// --- Storage ----------------------------------------------------------
	ctx := context.Background()
	sessionRepo, closeRepo, err := openSessionRepo(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to open session storage", "error", err)
		os.Exit(1)
	}
	defer closeRepo()

	// --- Services ---------------------------------------------------------
	sessionSvc := service.NewSessionService(sessionRepo, refs.BaseTimezones)
	draftSvc := service.NewDraftService(sessionSvc, refs.DefaultTimezone)
	exportSvc := service.NewExportService(sessionRepo, refs.Countries)

	server := handler.NewServer(sessionSvc, draftSvc, exportSvc, refs, handler.Options{
		ExportFilename:  cfg.ExportFilename,
		ExportRateLimit: cfg.ExportRateLimit,
		Logger:          logger,
	})

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer
	// → CORS → body limit. RealIP runs before the /export rate limiter so
	// clients behind a proxy are counted by their own address.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))
	r.Mount("/", server.Routes())

	// --- HTTP Server ------------------------------------------------------
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// openSessionRepo returns the Postgres repo when databaseURL is set, with the
// schema migrated, and the in-memory repo otherwise. The returned func
// releases the backend.
func openSessionRepo(ctx context.Context, databaseURL string) (repo.SessionRepo, func(), error) {
	if databaseURL == "" {
		slog.Info("DATABASE_URL not set; sessions are kept in memory")
		return repo.NewMemorySessionRepo(), func() {}, nil
	}

	// New() does not open connections immediately; Ping does.
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("create database pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("connect to database: %w", err)
	}
	slog.Info("database connection established")

	// goose works on database/sql; borrow the pool through the pgx stdlib adapter.
	sqlDB := stdlib.OpenDBFromPool(pool)
	closeAll := func() {
		sqlDB.Close()
		pool.Close()
	}
	applied, err := migrations.Up(ctx, sqlDB)
	if err != nil {
		closeAll()
		return nil, nil, err
	}
	slog.Info("database migrations applied", "count", applied)

	return repo.NewSessionRepo(pool), closeAll, nil
}
