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

	portsrepo "github.com/SscSPs/access_governance_app/internal/core/ports/repositories"
	"github.com/SscSPs/access_governance_app/internal/core/services"
	"github.com/SscSPs/access_governance_app/internal/handlers"
	"github.com/SscSPs/access_governance_app/internal/middleware"
	"github.com/SscSPs/access_governance_app/internal/platform/config"
	"github.com/SscSPs/access_governance_app/internal/platform/metrics"
	"github.com/SscSPs/access_governance_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/access_governance_app/internal/repositories/memory"
	"github.com/SscSPs/access_governance_app/internal/seed"
	"github.com/SscSPs/access_governance_app/pkg/database"
	"github.com/SscSPs/access_governance_app/pkg/migrations"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

// @title Access Governance API
// @version 1.0
// @description Backend of the access governance dashboard: directory, access requests, audit log and license spend.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	fs := config.NewFlagSet(os.Args[0])
	if err := fs.Parse(os.Args[1:]); err != nil {
		logger.Error("Failed to parse flags", slog.String("error", err.Error()))
		os.Exit(2)
	}
	cfg, err := config.LoadConfig(fs)
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("Server stopped with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	metrics.Init(version)

	fixtures, err := seed.LoadFile(cfg.SeedFile)
	if err != nil {
		return fmt.Errorf("failed to load seed data: %w", err)
	}

	repos, closeRepos, err := buildRepositories(ctx, cfg, fixtures, logger)
	if err != nil {
		return err
	}
	defer closeRepos()

	container := services.NewServiceContainer(cfg, repos)
	if err := container.Session.Restore(ctx); err != nil {
		return fmt.Errorf("failed to restore sessions: %w", err)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.FrontendBaseURL}
	corsConfig.AddAllowHeaders("Authorization")
	corsConfig.AddExposeHeaders("X-Request-ID", "Content-Disposition")

	// Global middleware (cors, logging, metrics, recovery)
	r.Use(cors.New(corsConfig), middleware.StructuredLoggingMiddleware(logger), middleware.MetricsMiddleware(), gin.Recovery())

	if err := r.SetTrustedProxies(nil); err != nil {
		return fmt.Errorf("failed to set trusted proxies: %w", err)
	}

	if err := handlers.RegisterRoutes(r, cfg, container); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("storage", cfg.StorageDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server", slog.Duration("timeout", cfg.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

// buildRepositories wires the configured storage driver. Credentials always
// come from the fixtures and sessions always live in the snapshot file.
func buildRepositories(ctx context.Context, cfg *config.Config, fixtures *seed.Fixtures, logger *slog.Logger) (portsrepo.RepositoryProvider, func(), error) {
	sessions := memory.NewSessionRepository(cfg.SessionSnapshotPath)
	store := memory.NewStore(fixtures, memory.WithLatency(cfg.StoreLatency))
	memRepos := memory.NewRepositoryProvider(store, sessions)

	if cfg.StorageDriver != config.StoragePostgres {
		logger.Info("Using in-memory storage", slog.Duration("latency", cfg.StoreLatency))
		return memRepos, func() {}, nil
	}

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		return portsrepo.RepositoryProvider{}, nil, fmt.Errorf("failed to initialize database pool: %w", err)
	}
	logger.Info("Database connection pool established.")

	logger.Info("Running database migrations...")
	if err := migrations.Up(cfg.DatabaseURL, logger); err != nil {
		database.ClosePgxPool(dbPool)
		return portsrepo.RepositoryProvider{}, nil, err
	}
	if err := pgsql.SeedIfEmpty(ctx, dbPool, fixtures, logger); err != nil {
		database.ClosePgxPool(dbPool)
		return portsrepo.RepositoryProvider{}, nil, fmt.Errorf("failed to seed database: %w", err)
	}

	repos := pgsql.NewRepositoryProvider(dbPool, memRepos.CredentialRepo, sessions)
	return repos, func() { database.ClosePgxPool(dbPool) }, nil
}
