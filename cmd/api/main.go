package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wolfman30/mediconnect/internal/api/router"
	"github.com/wolfman30/mediconnect/internal/appointments"
	appconfig "github.com/wolfman30/mediconnect/internal/config"
	"github.com/wolfman30/mediconnect/internal/doctors"
	"github.com/wolfman30/mediconnect/internal/forms"
	httpmiddleware "github.com/wolfman30/mediconnect/internal/http/middleware"
	"github.com/wolfman30/mediconnect/internal/notify"
	"github.com/wolfman30/mediconnect/internal/observability/metrics"
	"github.com/wolfman30/mediconnect/internal/patients"
	"github.com/wolfman30/mediconnect/internal/web"
	"github.com/wolfman30/mediconnect/pkg/logging"
)

func main() {
	// Load configuration
	cfg := appconfig.Load()

	// Initialize logger
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting mediconnect server",
		"env", cfg.Env,
		"port", cfg.Port,
		"live_search", cfg.LiveSearchEnabled,
	)

	srv, limiter, err := newServer(cfg, logger)
	if err != nil {
		logger.Error("failed to build server", "error", err)
		os.Exit(1)
	}

	done := make(chan struct{})
	go limiter.Run(done)

	// Start server in a goroutine
	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")
	close(done)

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
	fmt.Println("Server exited gracefully")
}

// newServer wires every component onto one http.Server. The returned limiter
// still needs Run to evict idle clients.
func newServer(cfg *appconfig.Config, logger *logging.Logger) (*http.Server, *httpmiddleware.RateLimiter, error) {
	reg, metricsHandler := setupMetrics(cfg.MetricsEnabled)

	notifier := notify.NewLogNotifier(logger)
	processor := forms.NewProcessor(notifier, metrics.NewFormMetrics(reg), logger)

	doctorsHandler := doctors.NewHandler(doctors.NewDirectory(), notifier, metrics.NewDirectoryMetrics(reg), logger)
	appointmentsHandler := appointments.NewHandler(processor, logger)
	patientsHandler := patients.NewHandler(processor, logger)

	renderer, err := web.NewRenderer()
	if err != nil {
		return nil, nil, err
	}
	pages, err := web.NewHandler(web.Options{
		Renderer:     renderer,
		Doctors:      doctorsHandler,
		Appointments: appointmentsHandler,
		Patients:     patientsHandler,
		LiveSearch:   cfg.LiveSearchEnabled,
		Logger:       logger,
	})
	if err != nil {
		return nil, nil, err
	}

	limiter := httpmiddleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)

	// Setup router
	routerCfg := &router.Config{
		Logger:              logger,
		Web:                 pages,
		DoctorsHandler:      doctorsHandler,
		AppointmentsHandler: appointmentsHandler,
		PatientsHandler:     patientsHandler,
		MetricsHandler:      metricsHandler,
		Gatherer:            reg,
		CORSAllowedOrigins:  cfg.CORSAllowedOrigins,
		RateLimiter:         limiter,
		SecureCookies:       cfg.SecureCookies,
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router.New(routerCfg),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return srv, limiter, nil
}

// setupMetrics builds a private registry. The handler is nil when metrics
// are disabled; /api/stats still reads the registry either way.
func setupMetrics(enabled bool) (*prometheus.Registry, http.Handler) {
	reg := prometheus.NewRegistry()
	if !enabled {
		return reg, nil
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg, promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
