// Package handler wires the REST API consumed by the expense tracker
// frontend: bearer-token auth, income/expense records, dashboard
// aggregation and the AI financial report.
package handler

import (
	"context"
	"net/http"

	"github.com/Aditya290605/Expense-Tracker/internal/infra/observability"
	"github.com/Aditya290605/Expense-Tracker/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("handler")

// Pinger checks connectivity to the backing store, used by /healthz.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Services bundles everything the router needs.
type Services struct {
	Auth      *service.AuthService
	Records   *service.RecordService
	Dashboard *service.DashboardService
	Report    *service.ReportService
}

// NewRouter creates the HTTP router with all routes and middleware.
// Routes follow the API contract of the expense tracker web frontend.
func NewRouter(svcs Services, store Pinger, metrics *observability.Metrics, allowedOrigins []string, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// --- Middleware ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(observability.ZapLoggerMiddleware(logger))
	r.Use(observability.TracingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/ping"))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// --- Operational endpoints ---
	r.Get("/healthz", healthzHandler(store, logger))
	r.Get("/readyz", readyzHandler())
	r.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	// --- Public auth routes ---
	r.Post("/auth/signup", authSignupHandler(svcs.Auth, logger))
	r.Post("/auth/login", authLoginHandler(svcs.Auth, logger))

	// --- Protected routes ---
	r.Group(func(r chi.Router) {
		r.Use(JWTAuthMiddleware(svcs.Auth, logger))

		r.Get("/auth/me", authMeHandler(svcs.Auth, logger))

		r.Post("/income", addIncomeHandler(svcs.Records, logger))
		r.Get("/income", listIncomeHandler(svcs.Records, logger))
		r.Post("/expense", addExpenseHandler(svcs.Records, logger))
		r.Get("/expense", listExpenseHandler(svcs.Records, logger))

		r.Get("/dashboard", dashboardHandler(svcs.Dashboard, logger))
		r.Get("/transactions", listTransactionsHandler(svcs.Dashboard, logger))

		r.Post("/report", generateReportHandler(svcs.Report, logger))
	})

	return r
}

// ============================================================
// Health & readiness
// ============================================================

func healthzHandler(store Pinger, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := "healthy"
		storeStatus := "healthy"

		if store != nil {
			if err := store.Ping(r.Context()); err != nil {
				logger.Warn("healthz: store unreachable", zap.Error(err))
				status = "degraded"
				storeStatus = "degraded"
			}
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"status": status,
			"services": map[string]string{
				"api":      "healthy",
				"supabase": storeStatus,
			},
		})
	}
}

func readyzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}
