// Copyright (c) 2025-2026 Standart Construction
// SPDX-License-Identifier: GPL-3.0-or-later

// Command website runs the Standart Construction site: public landing
// pages plus the back office.
package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/stconstruction/website/internal/auth"
	"github.com/stconstruction/website/internal/config"
	"github.com/stconstruction/website/internal/handler"
	"github.com/stconstruction/website/internal/middleware"
	"github.com/stconstruction/website/internal/service"
	"github.com/stconstruction/website/internal/session"
	"github.com/stconstruction/website/internal/store"
	"github.com/stconstruction/website/internal/upload"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "Standart Construction website server\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  STC_SESSION_SECRET    Session encryption key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  STC_DB_PATH           SQLite database path (default: ./data/website.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  STC_SERVER_PORT       Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  STC_ENV               Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  STC_UPLOADS_DIR       Upload storage directory (default: ./static/uploads)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  STC_ADMIN_EMAIL       Bootstrap superuser email\n")
		_, _ = fmt.Fprintf(os.Stderr, "  STC_ADMIN_PASSWORD    Bootstrap superuser password\n")
	}

	flag.Parse()

	if *showVersion {
		_, _ = fmt.Printf("website %s (commit: %s)\n", appVersion, appGitCommit)
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("closing database", "error", err)
		}
	}(db)

	ctx := context.Background()
	if err := store.Migrate(ctx, db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	seed := store.SeedParams{
		AdminEmail:    cfg.AdminEmail,
		AdminUsername: cfg.AdminUsername,
	}
	if cfg.AdminPassword != "" {
		seed.AdminPasswordHash, err = auth.HashPassword(cfg.AdminPassword)
		if err != nil {
			return fmt.Errorf("hashing bootstrap admin password: %w", err)
		}
	}
	if err := store.Seed(ctx, db, seed); err != nil {
		return fmt.Errorf("seeding database: %w", err)
	}

	queries := store.New(db)
	sessions := session.NewManager(db, cfg.IsDevelopment())

	callbacks := service.NewCallbacks(queries)
	if job := callbacks.StartRetentionJob(cfg.CallbackRetentionDays); job != nil {
		defer job.Stop()
	}

	h := handler.New(handler.Deps{
		Sessions:  sessions,
		Users:     service.NewUsers(queries),
		Cities:    service.NewCities(queries),
		Projects:  service.NewProjects(queries),
		News:      service.NewNews(queries),
		Settings:  service.NewSettings(queries),
		Callbacks: callbacks,
		Saver:     upload.NewSaver(cfg.UploadsDir),
	})

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.SecurityHeaders)
	r.Use(sessions.LoadAndSave)
	r.Use(middleware.CSRF(cfg.SessionSecret, cfg.IsDevelopment(), cfg.ServerAddr()))
	r.Use(middleware.NewResolver(sessions, queries).Resolve)

	h.Routes(r)

	// serve validated uploads
	uploadsFS := http.StripPrefix("/static/uploads/",
		http.FileServer(http.Dir(cfg.UploadsDir)))
	r.Get("/static/uploads/*", uploadsFS.ServeHTTP)

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second, // room for large uploads
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
