package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Suvo-Ghosh/EMS/internal/auth"
	domainauth "github.com/Suvo-Ghosh/EMS/internal/domain/auth"
	"github.com/Suvo-Ghosh/EMS/internal/domain/employee"
	"github.com/Suvo-Ghosh/EMS/internal/domain/payroll"
	"github.com/Suvo-Ghosh/EMS/internal/platform/config"
	"github.com/Suvo-Ghosh/EMS/internal/platform/db"
	"github.com/Suvo-Ghosh/EMS/internal/platform/email"
	"github.com/Suvo-Ghosh/EMS/internal/platform/metrics"
	"github.com/Suvo-Ghosh/EMS/internal/transport/http/api"
	authhandler "github.com/Suvo-Ghosh/EMS/internal/transport/http/handlers/auth"
	employeehandler "github.com/Suvo-Ghosh/EMS/internal/transport/http/handlers/employee"
	payrollhandler "github.com/Suvo-Ghosh/EMS/internal/transport/http/handlers/payroll"
	"github.com/Suvo-Ghosh/EMS/internal/transport/http/middleware"
)

type App struct {
	Config  config.Config
	DB      *pgxpool.Pool
	Router  http.Handler
	Metrics *metrics.Collector
}

// New builds a fully wired application without starting the listener,
// which lets tests drive the router directly.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			pool.Close()
			return nil, err
		}
	}

	collector := metrics.New()
	mailer := email.New(cfg)

	authService := domainauth.NewService(domainauth.NewStore(pool), mailer, cfg)
	employeeStore := employee.NewStore(pool)
	payrollService := payroll.NewService(payroll.NewStore(pool))

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(chimw.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	if cfg.MetricsEnabled {
		router.Use(middleware.Metrics(collector))
	}
	router.Use(middleware.Auth(cfg.JWTSecret))
	router.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	if cfg.MetricsEnabled {
		router.With(middleware.RequireRole(auth.RoleSuperAdmin)).Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
			api.Success(w, collector.Snapshot(), middleware.GetRequestID(r.Context()))
		})
	}

	router.Route("/api/v1", func(r chi.Router) {
		authhandler.NewHandler(authService).RegisterRoutes(r)
		employeehandler.NewHandler(employeeStore).RegisterRoutes(r)
		payrollhandler.NewHandler(payrollService, cfg.OrgName, collector).RegisterRoutes(r)
	})

	return &App{Config: cfg, DB: pool, Router: router, Metrics: collector}, nil
}

func (a *App) Close() {
	a.DB.Close()
}

func Run() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	app, err := New(context.Background(), cfg)
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}
	defer app.Close()

	log.Printf("EMS server listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, app.Router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
