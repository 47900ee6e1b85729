package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	appconfig "github.com/wolfman30/mediconnect/internal/config"
	"github.com/wolfman30/mediconnect/pkg/logging"
)

func testConfig() *appconfig.Config {
	return &appconfig.Config{
		Port:              "0",
		Env:               "test",
		LogLevel:          "error",
		RateLimitRPS:      100,
		RateLimitBurst:    100,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      5 * time.Second,
		IdleTimeout:       5 * time.Second,
		ShutdownTimeout:   time.Second,
		MetricsEnabled:    true,
		LiveSearchEnabled: true,
	}
}

func TestSetupMetricsExposesRuntimeCollectors(t *testing.T) {
	reg, handler := setupMetrics(true)
	if reg == nil || handler == nil {
		t.Fatalf("expected non-nil registry and handler")
	}

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "go_goroutines") {
		t.Fatalf("expected go collector to be exported")
	}
}

func TestSetupMetricsDisabled(t *testing.T) {
	reg, handler := setupMetrics(false)
	if reg == nil {
		t.Fatalf("expected registry even when disabled")
	}
	if handler != nil {
		t.Fatalf("expected no handler when metrics are disabled")
	}
}

func TestNewServerServesScreensAndAPI(t *testing.T) {
	cfg := testConfig()
	srv, limiter, err := newServer(cfg, logging.Discard())
	if err != nil {
		t.Fatalf("newServer: %v", err)
	}
	if limiter == nil {
		t.Fatalf("expected rate limiter")
	}
	if srv.Addr != ":0" || srv.ReadTimeout != cfg.ReadTimeout {
		t.Fatalf("unexpected server settings: addr=%s read=%s", srv.Addr, srv.ReadTimeout)
	}

	for path, want := range map[string]string{
		"/":                "Your Health, Our Priority",
		"/doctors":         "Showing 6 doctors",
		"/appointment":     "Book an Appointment",
		"/patient-details": "Privacy Notice",
		"/api/doctors":     `"count":6`,
		"/metrics":         "go_goroutines",
	} {
		rr := httptest.NewRecorder()
		srv.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		if rr.Code != http.StatusOK {
			t.Errorf("%s: expected 200, got %d", path, rr.Code)
			continue
		}
		if !strings.Contains(rr.Body.String(), want) {
			t.Errorf("%s: expected body to contain %q", path, want)
		}
	}
}

func TestNewServerWithoutMetricsEndpoint(t *testing.T) {
	cfg := testConfig()
	cfg.MetricsEnabled = false
	srv, _, err := newServer(cfg, logging.Discard())
	if err != nil {
		t.Fatalf("newServer: %v", err)
	}

	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for disabled metrics, got %d", rr.Code)
	}
}
