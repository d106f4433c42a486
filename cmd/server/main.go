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

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/tripplanner/internal/auth"
	"github.com/mmynk/tripplanner/internal/backend"
	"github.com/mmynk/tripplanner/internal/calculator"
	"github.com/mmynk/tripplanner/internal/config"
	"github.com/mmynk/tripplanner/internal/events"
	"github.com/mmynk/tripplanner/internal/middleware"
	"github.com/mmynk/tripplanner/internal/service"
	"github.com/mmynk/tripplanner/internal/storage"
	"github.com/mmynk/tripplanner/pkg/api"
	"github.com/mmynk/tripplanner/pkg/logging"
)

const shutdownTimeout = 10 * time.Second

func main() {
	config.LoadEnvFiles()
	cfg := config.Load()

	logging.SetupWithLevel(cfg.Level())

	if err := cfg.Validate(); err != nil {
		slog.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	store, err := backend.Open(cfg)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	notifier := events.NewNotifier(nil)
	if cfg.AMQPURL != "" {
		publisher, err := events.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			// notifications are optional; keep serving without them
			slog.Warn("Change notifications disabled", "error", err)
		} else {
			notifier = events.NewNotifier(publisher)
			slog.Info("Change notifications enabled", "exchange", cfg.AMQPExchange)
		}
	}
	defer notifier.Close()

	// Auth
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.SessionTTL)
	revoked := auth.NewRevocationList()
	authenticator := auth.NewPasswordAuthenticator(store, cfg.AdminEmails)

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := middleware.NewMetrics(registry)

	// Auth runs first so logging and metrics see the session.
	public := connect.WithInterceptors(
		middleware.OptionalAuth(jwtManager, revoked),
		middleware.LoggingInterceptor(),
		metrics.Interceptor(),
	)
	protected := connect.WithInterceptors(
		middleware.RequireAuth(jwtManager, revoked),
		middleware.LoggingInterceptor(),
		metrics.Interceptor(),
	)

	mux := http.NewServeMux()

	// Register Connect services
	authSvc := service.NewAuthService(authenticator, store, jwtManager, revoked, auth.LogMailer{}, slog.Default())
	mux.Handle(api.NewAuthServiceHandler(authSvc, public))

	mux.Handle(api.NewItineraryServiceHandler(service.NewItineraryService(store, notifier), protected))
	mux.Handle(api.NewPlaceServiceHandler(service.NewPlaceService(store, notifier), protected))
	mux.Handle(api.NewPackingServiceHandler(service.NewPackingService(store, cfg.Tracking(), notifier), protected))

	budgetSvc := service.NewBudgetService(store, service.BudgetConfig{
		Ceiling: cfg.BudgetCeiling,
		Lodging: calculator.LodgingEstimate{
			Amount: cfg.LodgingEstimate,
			Date:   cfg.LodgingEstimateDate,
		},
	}, notifier)
	mux.Handle(api.NewBudgetServiceHandler(budgetSvc, protected))

	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	mux.HandleFunc("/healthz", healthHandler(store))

	// Add logging and CORS middleware
	loggedHandler := loggingMiddleware(corsMiddleware(mux))

	// Wrap with h2c for HTTP/2 without TLS (required for Connect)
	h2cHandler := h2c.NewHandler(loggedHandler, &http2.Server{})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           h2cHandler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("Connect server starting",
			"address", server.Addr,
			"url", fmt.Sprintf("http://localhost:%s", cfg.Port),
			"store", cfg.StoreKind(),
			"packing_tracking", cfg.Tracking(),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}
}

// healthHandler reports whether the store answers.
func healthHandler(store storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := store.Ping(ctx); err != nil {
			slog.Warn("Health check failed", "error", err)
			http.Error(w, "store unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}
}

// loggingMiddleware logs all incoming requests
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		slog.Debug("Request received",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"user_agent", r.UserAgent(),
		)

		next.ServeHTTP(w, r)

		slog.Debug("Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// corsMiddleware adds CORS headers for browser access
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, Connect-Protocol-Version, Connect-Timeout-Ms")
		w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
