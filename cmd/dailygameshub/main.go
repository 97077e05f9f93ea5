// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package main is the entry point for the Daily Games Hub API server.
// It loads configuration, connects to services, wires the moderation
// workflow, and serves the JSON API with graceful shutdown support.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"dailygameshub/internal/cache"
	"dailygameshub/internal/config"
	"dailygameshub/internal/database"
	"dailygameshub/internal/deploy"
	"dailygameshub/internal/email"
	"dailygameshub/internal/github"
	"dailygameshub/internal/handlers"
	"dailygameshub/internal/middleware"
	"dailygameshub/internal/models"
	"dailygameshub/internal/moderation"
	"dailygameshub/internal/router"
	"dailygameshub/internal/store"
	"dailygameshub/internal/suggest"
)

// Suggestion and report intake: five issues per client per minute.
const (
	intakeLimit  = 5
	intakeWindow = time.Minute
)

var (
	envFile string

	rootCmd = &cobra.Command{
		Use:           "dailygameshub",
		Short:         "Daily Games Hub API server and utilities",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Run the API server",
		RunE:  runServe,
	}
	migrateCmd = &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE:  runMigrate,
	}
	seedCmd = &cobra.Command{
		Use:   "seed",
		Short: "Populate an empty catalog with the launch games",
		RunE:  runSeed,
	}
	recountCmd = &cobra.Command{
		Use:   "recount",
		Short: "Rebuild the category counts from the catalog",
		RunE:  runRecount,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Optional KEY=value file loaded before reading the environment")
	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd, recountCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

// loadConfig reads configuration and installs the default logger.
func loadConfig() (*config.Config, error) {
	if err := config.LoadDotEnv(envFile); err != nil {
		return nil, err
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(logger)
	return cfg, nil
}

// openDatabase connects to PostgreSQL and applies migrations.
func openDatabase(cfg *config.Config) (*sql.DB, error) {
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	slog.Info("migrations applied")
	return nil
}

func runSeed(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	n, err := database.Seed(cmd.Context(), db)
	if err != nil {
		return err
	}
	slog.Info("seed complete", "inserted", n)
	return nil
}

func runRecount(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	counts, err := store.NewCategoryCountStore(db).Recalculate(cmd.Context())
	if err != nil {
		return err
	}
	slog.Info("category counts rebuilt", "total", counts[models.CategoryTotalKey])
	return nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if cfg.IsDev() {
		if _, err := database.Seed(ctx, db); err != nil {
			slog.Error("failed to seed database", "error", err)
		}
	}

	// Valkey is optional: without it catalog responses are served uncached.
	var catalogCache *cache.CatalogCache
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Warn("valkey unavailable, catalog cache disabled", "error", err)
	} else {
		defer valkeyClient.Close()
		catalogCache = cache.NewCatalogCache(valkeyClient, cfg.CatalogCacheTTL)
	}

	gameStore := store.NewGameStore(db)
	pendingStore := store.NewPendingStore(db)
	contactStore := store.NewContactStore(db)
	statsStore := store.NewStatsStore(db)
	countStore := store.NewCategoryCountStore(db)

	ghClient, err := github.NewClient(cfg.GitHubOwner, cfg.GitHubRepo, github.WithToken(cfg.GitHubToken))
	if err != nil {
		return fmt.Errorf("github client: %w", err)
	}
	slog.Info("issue tracker", "repo", ghClient.Repo(), "configured", cfg.GitHubConfigured())

	notifier := email.New(email.Config{
		APIKey:  cfg.ResendAPIKey,
		From:    cfg.EmailFrom,
		SiteURL: cfg.SiteURL,
	})
	if !notifier.IsConfigured() {
		slog.Warn("RESEND_API_KEY not set, notification emails disabled")
	}

	processor := moderation.NewProcessor(moderation.Deps{
		Catalog:  gameStore,
		Counts:   countStore,
		Cache:    catalogCache,
		Pending:  pendingStore,
		Contacts: contactStore,
		Tracker:  ghClient,
		Notifier: notifier,
		Deploy:   deploy.NewHook(cfg.DeployHookURL),
	})

	adminAuth, err := middleware.NewAPIKeyAuth(cfg.AdminAPIKey)
	if err != nil {
		return fmt.Errorf("admin auth: %w", err)
	}

	intakeLimiter := middleware.NewRateLimiter(intakeLimit, intakeWindow,
		middleware.WithTrustedProxies(cfg.TrustedProxies))
	defer intakeLimiter.Stop()

	r := router.New(router.Handlers{
		Catalog:       handlers.NewCatalog(gameStore, countStore, catalogCache),
		Interactions:  handlers.NewInteractions(statsStore, catalogCache),
		Suggestions:   handlers.NewSuggestions(suggest.NewService(ghClient, gameStore, pendingStore, contactStore)),
		Webhook:       handlers.NewWebhook(cfg.GitHubWebhookSecret, processor),
		Admin:         handlers.NewAdmin(pendingStore, gameStore, countStore, catalogCache, notifier),
		AdminAuth:     adminAuth,
		IntakeLimiter: intakeLimiter,
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", cfg.Addr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		slog.Info("shutting down server", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	slog.Info("server stopped")
	return nil
}
