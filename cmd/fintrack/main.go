package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Aditya290605/Expense-Tracker/internal/config"
	"github.com/Aditya290605/Expense-Tracker/internal/domain"
	"github.com/Aditya290605/Expense-Tracker/internal/handler"
	"github.com/Aditya290605/Expense-Tracker/internal/infra/cache"
	"github.com/Aditya290605/Expense-Tracker/internal/infra/client"
	"github.com/Aditya290605/Expense-Tracker/internal/infra/observability"
	"github.com/Aditya290605/Expense-Tracker/internal/infra/resilience"
	"github.com/Aditya290605/Expense-Tracker/internal/infra/supabase"
	"github.com/Aditya290605/Expense-Tracker/internal/service"

	"go.uber.org/zap"
)

func main() {
	// --- Load .env file (for local development) ---
	_ = config.LoadDotEnv(".env")

	// --- Config ---
	cfg := config.Load()

	// --- Logger ---
	logger := observability.NewLogger(cfg.LogLevel)
	defer logger.Sync()

	logger.Info("configuration loaded",
		zap.Int("port", cfg.Port),
		zap.String("log_level", cfg.LogLevel),
		zap.Duration("http_timeout", cfg.HTTPTimeout),
		zap.Duration("cache_ttl", cfg.CacheTTL),
		zap.Int("max_retries", cfg.MaxRetries),
		zap.Duration("initial_backoff", cfg.InitialBackoff),
		zap.Duration("jwt_ttl", cfg.JWTTTL),
		zap.String("textgen_model", cfg.TextGenModel),
	)

	if cfg.SupabaseURL == "" {
		logger.Fatal("SUPABASE_URL is required")
	}
	if cfg.TextGenAPIKey == "" {
		logger.Warn("TEXTGEN_API_KEY not set, report generation will fail")
	}

	// --- Tracing ---
	shutdown, err := observability.InitTracer(cfg.OTLPEndpoint, "fintrack-api")
	if err != nil {
		logger.Fatal("failed to init tracer", zap.Error(err))
	}
	defer shutdown(context.Background())

	// --- Metrics ---
	metrics := observability.NewMetrics()

	// --- Cache ---
	profileCache := cache.New[*domain.UserInfo](cfg.CacheTTL)

	// --- Resilience ---
	resilienceCfg := resilience.Config{
		MaxRetries:     cfg.MaxRetries,
		InitialBackoff: cfg.InitialBackoff,
		MaxConcurrency: cfg.MaxConcurrency,
	}
	storeCB := resilience.NewCircuitBreaker("supabase")
	textgenCB := resilience.NewCircuitBreaker("textgen")
	textgenBulkhead := resilience.NewBulkhead(cfg.MaxConcurrency)

	// --- Clients ---
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}

	store := supabase.NewClient(
		httpClient,
		cfg.SupabaseURL,
		cfg.SupabaseAnonKey,
		cfg.SupabaseServiceKey,
		storeCB,
		resilienceCfg,
		logger,
	)

	textgen := client.NewTextGenClient(
		httpClient,
		cfg.TextGenURL,
		cfg.TextGenModel,
		cfg.TextGenAPIKey,
		textgenCB,
		resilienceCfg,
		textgenBulkhead,
	)

	// --- Services ---
	authSvc := service.NewAuthService(store, cfg.JWTSecret, cfg.JWTTTL, profileCache, metrics, logger)
	recordSvc := service.NewRecordService(store, metrics, logger)
	dashboardSvc := service.NewDashboardService(store, metrics, logger)
	reportSvc := service.NewReportService(textgen, dashboardSvc, metrics, logger)

	// --- Router ---
	router := handler.NewRouter(handler.Services{
		Auth:      authSvc,
		Records:   recordSvc,
		Dashboard: dashboardSvc,
		Report:    reportSvc,
	}, store, metrics, cfg.AllowedOrigins, logger)

	// --- Server ---
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// --- Graceful shutdown ---
	go func() {
		logger.Info("server starting", zap.Int("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}
