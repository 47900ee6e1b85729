package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/wolfman30/mediconnect/internal/appointments"
	"github.com/wolfman30/mediconnect/internal/doctors"
	httpmiddleware "github.com/wolfman30/mediconnect/internal/http/middleware"
	"github.com/wolfman30/mediconnect/internal/observability/metrics"
	"github.com/wolfman30/mediconnect/internal/patients"
	"github.com/wolfman30/mediconnect/internal/web"
	"github.com/wolfman30/mediconnect/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger              *logging.Logger
	Web                 *web.Handler
	DoctorsHandler      *doctors.Handler
	AppointmentsHandler *appointments.Handler
	PatientsHandler     *patients.Handler
	MetricsHandler      http.Handler
	Gatherer            prometheus.Gatherer
	CORSAllowedOrigins  []string
	RateLimiter         *httpmiddleware.RateLimiter
	SecureCookies       bool
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}
	if cfg.RateLimiter != nil {
		r.Use(httpmiddleware.RateLimit(cfg.RateLimiter))
	}

	// Public endpoints (health checks, metrics)
	r.Group(func(public chi.Router) {
		public.Get("/health", healthCheck)
		if cfg.MetricsHandler != nil {
			public.Handle("/metrics", cfg.MetricsHandler)
		}
		public.Handle("/static/*", web.Static())
	})

	// JSON API. Clients are not browsers holding a session, so no CSRF.
	r.Route("/api", func(api chi.Router) {
		if h := cfg.DoctorsHandler; h != nil {
			api.Get("/doctors", h.List)
			api.Get("/doctors/{id}", h.Get)
			api.Post("/doctors/{id}/talk", h.Talk)
			api.Get("/specializations", h.Specializations)
		}
		if h := cfg.AppointmentsHandler; h != nil {
			api.Get("/time-slots", h.ListTimeSlots)
			api.Post("/appointments", h.CreateAppointment)
		}
		if h := cfg.PatientsHandler; h != nil {
			api.Get("/genders", h.ListGenders)
			api.Post("/patients", h.SavePatientDetails)
		}
		api.Get("/stats", statsHandler(cfg.Gatherer))
	})

	// Screens
	if cfg.Web != nil {
		r.Group(func(screens chi.Router) {
			screens.Use(httpmiddleware.CSRF(cfg.SecureCookies))
			cfg.Web.Routes(screens)
		})
	}

	return r
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// statsHandler reports accepted and rejected submissions per form.
func statsHandler(gatherer prometheus.Gatherer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"forms": metrics.FormSnapshot(gatherer)})
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
