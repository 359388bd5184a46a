// Package app wires the application together and runs the selected
// subcommand.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"

	"github.com/Divyansh670/FeedbackHub/internal/auth"
	"github.com/Divyansh670/FeedbackHub/internal/config"
	"github.com/Divyansh670/FeedbackHub/internal/database"
	"github.com/Divyansh670/FeedbackHub/internal/feedback"
	"github.com/Divyansh670/FeedbackHub/internal/handler"
	"github.com/Divyansh670/FeedbackHub/internal/logger"
	"github.com/Divyansh670/FeedbackHub/internal/metrics"
	"github.com/Divyansh670/FeedbackHub/internal/middleware"
	"github.com/Divyansh670/FeedbackHub/internal/repository"
	"github.com/Divyansh670/FeedbackHub/internal/security"
	"github.com/Divyansh670/FeedbackHub/internal/stats"
	"github.com/Divyansh670/FeedbackHub/internal/user"
)

// Init initializes logging and loads the server configuration.
// Logs go to w as JSON.
func Init(w io.Writer) (*config.Config, error) {
	logger.SetupDefault(w)

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return cfg, nil
}

// Run is the application entry point. args is os.Args[1:].
func Run(w io.Writer, args []string) error {
	cmd := ParseCommand(args)

	// Lightweight subcommands skip the full server init: healthcheck has no
	// config dependencies, and the dashboard client needs neither DB nor
	// JWT secret.
	switch cmd {
	case CommandHealthcheck:
		port := os.Getenv("SERVER_PORT")
		if port == "" {
			port = "8080"
		}
		return runHealthcheck(port)
	case CommandDashboard:
		logger.SetupDefault(os.Stderr)
		return runDashboard(config.LoadClient(), os.Stdin, w)
	}

	cfg, err := Init(w)
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	slog.Info("starting application",
		slog.String("command", string(cmd)),
		slog.String("port", cfg.ServerPort),
	)

	switch cmd {
	case CommandServe:
		return runServe(cfg)
	case CommandMigrate:
		return runMigrate(cfg)
	case CommandSeed:
		return runSeed(cfg)
	default:
		return runServe(cfg)
	}
}

// runServe starts the API server. It opens the database, wires all
// dependencies and serves until SIGINT or SIGTERM, then shuts down
// gracefully.
func runServe(cfg *config.Config) error {
	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	slog.Info("database connection established")

	// Repositories.
	userRepo := repository.NewPostgresUserRepo(db)
	sessionRepo := repository.NewPostgresSessionRepo(db)
	feedbackRepo := repository.NewPostgresFeedbackRepo(db)

	// Metrics.
	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	// Domain services.
	sanitizer := security.NewFeedbackSanitizer()
	authService := auth.NewService(userRepo, sessionRepo, auth.ServiceConfig{
		JWTSecret:     cfg.JWTSecret,
		SessionMaxAge: cfg.SessionMaxAge,
	})
	feedbackService := feedback.NewService(feedbackRepo, userRepo, sanitizer, collector)
	userService := user.NewService(userRepo)
	statsService := stats.NewService(feedbackRepo)

	// Rate limiter. Config values are requests per minute.
	rateLimiterCfg := middleware.DefaultRateLimiterConfig()
	rateLimiterCfg.GeneralRate = rate.Limit(float64(cfg.RateLimitGeneral) / 60)
	rateLimiterCfg.LoginRate = rate.Limit(float64(cfg.RateLimitLogin) / 60)
	rateLimiter := middleware.NewRateLimiter(rateLimiterCfg)
	defer rateLimiter.Stop()

	router := handler.NewRouter(&handler.RouterDeps{
		Authenticator:     authService,
		CORSAllowedOrigin: cfg.CORSAllowedOrigin,
		RateLimiter:       rateLimiter,
		Logger:            slog.Default(),
		HTTPMetrics:       collector,

		AuthService:     authService,
		AuthMetrics:     collector,
		FeedbackService: feedbackService,
		UserService:     userService,
		StatsService:    statsService,
		UserLoader:      authService,
	})

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	metricsServer := &http.Server{
		Addr:    ":" + cfg.MetricsPort,
		Handler: metrics.SetupMetricsRoute(registry),
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Expired sessions are swept hourly so revoked-by-expiry rows do not
	// pile up.
	go sessionCleanupLoop(ctx, sessionRepo)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("metrics server starting", slog.String("addr", metricsServer.Addr))
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("metrics server listen error", slog.String("error", err.Error()))
		}
	}()

	go func() {
		slog.Info("API server starting", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server listen error", slog.String("error", err.Error()))
		}
	}()

	<-stop
	slog.Info("shutting down API server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		slog.Warn("metrics server shutdown failed", slog.String("error", err.Error()))
	}
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	slog.Info("API server stopped gracefully")
	return nil
}

// sessionCleanupLoop deletes expired sessions once at startup and then
// hourly until the context is canceled.
func sessionCleanupLoop(ctx context.Context, sessionRepo repository.SessionRepository) {
	sweep := func() {
		deleted, err := sessionRepo.DeleteExpired(ctx)
		if err != nil {
			slog.Error("session cleanup failed", slog.String("error", err.Error()))
			return
		}
		if deleted > 0 {
			slog.Info("expired sessions deleted", slog.Int64("count", deleted))
		}
	}

	sweep()

	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sweep()
		}
	}
}

// runMigrate applies all pending database migrations.
func runMigrate(cfg *config.Config) error {
	slog.Info("running database migrations",
		slog.String("database_url", maskDatabaseURL(cfg.DatabaseURL)),
	)

	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	slog.Info("database migrations completed successfully")
	return nil
}

// runHealthcheck probes the local server's health endpoint.
// Subcommand for Docker healthchecks in distroless images.
func runHealthcheck(port string) error {
	url := fmt.Sprintf("http://localhost:%s/healthz", port)
	client := &http.Client{Timeout: 5 * time.Second}

	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned status %d", resp.StatusCode)
	}

	return nil
}

// maskDatabaseURL hides the credentials in a database URL for logging.
func maskDatabaseURL(url string) string {
	if len(url) > 20 {
		return url[:12] + "***@..."
	}
	return "***"
}
