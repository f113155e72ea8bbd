package api

import (
	"credit-ledger/internal/api/handler"
	mw "credit-ledger/internal/api/middleware"
	"credit-ledger/internal/config"
	"credit-ledger/internal/domain/ledger"
	"credit-ledger/internal/domain/report"
	"log/slog"
	"net/http"

	_ "credit-ledger/docs"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/traceid"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

// Services groups what the HTTP layer calls into. RateLimiter is optional;
// main passes its own so the idle-visitor cleanup can be scheduled.
type Services struct {
	Ledger      ledger.LedgerService
	Reports     handler.ReportBuilder
	Summary     handler.SummaryBuilder
	RateLimiter *mw.RateLimiterMiddleware
}

func SetupRouter(svc Services, cfg *config.Config, logger *slog.Logger) *chi.Mux {
	router := chi.NewRouter()

	limiter := svc.RateLimiter
	if limiter == nil {
		limiter = mw.NewRateLimiterMiddleware(cfg.Server.RateLimit, logger)
	}

	setupMiddleware(router, cfg, limiter, logger)
	setupMetricsEndpoint(router, cfg, logger)
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})
	setupSwaggerEndpoint(router, logger)
	setupAuthRoutes(router, cfg, logger)

	router.Group(func(r chi.Router) {
		r.Use(mw.AuthMiddleware(cfg.Server.Auth, logger))
		setupCustomerRoutes(r, svc, cfg, logger)
		setupTransactionRoutes(r, svc.Ledger, logger)
	})

	return router
}

func setupMiddleware(router *chi.Mux, cfg *config.Config, limiter *mw.RateLimiterMiddleware, logger *slog.Logger) {
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(traceid.Middleware)
	router.Use(mw.StructuredLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	if cfg.Server.RequestTimeout > 0 {
		router.Use(middleware.Timeout(cfg.Server.RequestTimeout))
	}
	router.Use(limiter.Middleware)
	router.Use(mw.MetricsMiddleware())
}

func setupMetricsEndpoint(router *chi.Mux, cfg *config.Config, logger *slog.Logger) {
	metricsPath := cfg.Metrics.Path
	if metricsPath == "" {
		metricsPath = "/metrics"
	}
	logger.Info("Setting up Prometheus metrics endpoint", "path", metricsPath)
	router.Handle(metricsPath, promhttp.Handler())
}

func setupSwaggerEndpoint(router *chi.Mux, logger *slog.Logger) {
	logger.Info("Setting up Swagger UI endpoint", "path", "/swagger/")
	router.Get("/swagger/*", httpSwagger.WrapHandler)
	router.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/index.html", http.StatusMovedPermanently)
	})
}

func setupAuthRoutes(router *chi.Mux, cfg *config.Config, logger *slog.Logger) {
	authHandler := handler.NewAuthHandler(cfg.Server.Auth, logger)
	router.Route("/auth", func(r chi.Router) {
		r.Post("/token", authHandler.GenerateBearerToken)
	})
}

func setupCustomerRoutes(r chi.Router, svc Services, cfg *config.Config, logger *slog.Logger) {
	customers := handler.NewCustomerHandler(svc.Ledger, logger)
	reports := handler.NewReportHandler(svc.Reports, svc.Summary, shopInfo(cfg.Shop), logger)

	r.Route("/customers", func(r chi.Router) {
		r.Post("/", customers.RegisterCustomer)
		r.Get("/", customers.ListCustomers)
		r.Route("/{customerID}", func(r chi.Router) {
			r.Get("/", customers.GetCustomer)
			r.Delete("/", customers.DeleteCustomer)
			r.Get("/balance", customers.GetBalance)
			r.Get("/report", reports.GetReport)
			r.Get("/statement", reports.GetStatement)
		})
	})
	r.Get("/dashboard", reports.GetDashboard)
}

func setupTransactionRoutes(r chi.Router, svc ledger.LedgerService, logger *slog.Logger) {
	h := handler.NewTransactionHandler(svc, logger)

	r.Route("/loans", func(r chi.Router) {
		r.Post("/", h.RecordLoan)
		r.Put("/{transactionID}", h.EditLoan)
	})
	r.Route("/payments", func(r chi.Router) {
		r.Post("/", h.RecordPayment)
		r.Put("/{transactionID}", h.EditPayment)
	})
}

func shopInfo(cfg config.ShopConfig) report.ShopInfo {
	return report.ShopInfo{
		Name:     cfg.Name,
		Phone:    cfg.Phone,
		Address:  cfg.Address,
		Currency: cfg.Currency,
	}
}
