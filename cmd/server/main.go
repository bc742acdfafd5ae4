package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"

	"github.com/micro-mikko/lonasystem/internal/auth"
	"github.com/micro-mikko/lonasystem/internal/config"
	"github.com/micro-mikko/lonasystem/internal/db"
	"github.com/micro-mikko/lonasystem/internal/domain/employee"
	"github.com/micro-mikko/lonasystem/internal/domain/reports"
	"github.com/micro-mikko/lonasystem/internal/domain/salary"
	"github.com/micro-mikko/lonasystem/internal/domain/vacation"
	authhandler "github.com/micro-mikko/lonasystem/internal/transport/http/handlers/auth"
	employeeshandler "github.com/micro-mikko/lonasystem/internal/transport/http/handlers/employees"
	paysliphandler "github.com/micro-mikko/lonasystem/internal/transport/http/handlers/payslip"
	reportshandler "github.com/micro-mikko/lonasystem/internal/transport/http/handlers/reports"
	salaryhandler "github.com/micro-mikko/lonasystem/internal/transport/http/handlers/salary"
	taxhandler "github.com/micro-mikko/lonasystem/internal/transport/http/handlers/tax"
	vacationhandler "github.com/micro-mikko/lonasystem/internal/transport/http/handlers/vacation"
	"github.com/micro-mikko/lonasystem/internal/transport/http/middleware"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, cfg.MigrationsDir); err != nil {
			log.Fatalf("migrations failed: %v", err)
		}
	}

	authService, err := auth.NewService(cfg.JWTSecret, cfg.AdminEmail, cfg.AdminPassword, cfg.TokenTTL)
	if err != nil {
		log.Fatalf("auth setup failed: %v", err)
	}

	employeeStore := employee.NewStore(pool)
	salaryLedger := salary.NewLedger(pool)
	vacationLedger := vacation.NewLedger(pool)
	reportStore := reports.NewStore(pool)

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(
		slog.String("app", "lonasystem"),
		slog.String("env", cfg.Environment),
	)

	router := chi.NewRouter()
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:           300,
	}))
	router.Use(middleware.RequestID)
	router.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level: slog.LevelInfo,
	}))
	router.Use(chimiddleware.Recoverer)

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

	router.Route("/api/v1", func(r chi.Router) {
		authhandler.NewHandler(authService).RegisterRoutes(r)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(cfg.JWTSecret))

			employeeshandler.NewHandler(employeeStore).RegisterRoutes(r)
			salaryhandler.NewHandler(salaryLedger).RegisterRoutes(r)
			vacationhandler.NewHandler(vacationLedger).RegisterRoutes(r)
			reportshandler.NewHandler(reportStore).RegisterRoutes(r)
			paysliphandler.NewHandler(employeeStore).RegisterRoutes(r)
			taxhandler.NewHandler(employeeStore).RegisterRoutes(r)
		})
	})

	log.Printf("lonasystem server listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
