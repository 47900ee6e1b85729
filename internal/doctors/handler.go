package doctors

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/wolfman30/mediconnect/internal/notify"
	"github.com/wolfman30/mediconnect/internal/observability/metrics"
	"github.com/wolfman30/mediconnect/pkg/logging"
)

var tracer = otel.Tracer("mediconnect.internal.doctors")

// Handler serves the directory as JSON.
type Handler struct {
	directory *Directory
	notifier  notify.Notifier
	metrics   *metrics.DirectoryMetrics
	logger    *logging.Logger
}

// NewHandler creates a new directory handler
func NewHandler(directory *Directory, notifier notify.Notifier, m *metrics.DirectoryMetrics, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		directory: directory,
		notifier:  notifier,
		metrics:   m,
		logger:    logger,
	}
}

// Directory exposes the underlying directory.
func (h *Handler) Directory() *Directory { return h.directory }

// Search runs a query against the directory and records it under source.
func (h *Handler) Search(ctx context.Context, q Query, source string) Result {
	_, span := tracer.Start(ctx, "doctors.filter")
	defer span.End()

	res := h.directory.Filter(q)
	span.SetAttributes(
		attribute.String("mediconnect.source", source),
		attribute.Int("mediconnect.results", res.Count()),
	)
	h.metrics.ObserveSearch(source, res.Count())
	return res
}

// ListResponse is the response for listing doctors
type ListResponse struct {
	Query   Query    `json:"query"`
	Doctors []Doctor `json:"doctors"`
	Count   int      `json:"count"`
	Empty   bool     `json:"empty"`
	Summary string   `json:"summary"`
}

// List handles GET /api/doctors?search=&specialization=
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := Query{
		Search:         r.URL.Query().Get("search"),
		Specialization: r.URL.Query().Get("specialization"),
	}
	res := h.Search(r.Context(), q, "api")

	writeJSON(w, http.StatusOK, ListResponse{
		Query:   res.Query,
		Doctors: res.Doctors,
		Count:   res.Count(),
		Empty:   res.Empty(),
		Summary: res.Summary(),
	})
}

// Get handles GET /api/doctors/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	doc, ok := h.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// Talk handles POST /api/doctors/{id}/talk. Live consultations are not
// available yet, so it only raises an informational notification.
func (h *Handler) Talk(w http.ResponseWriter, r *http.Request) {
	doc, ok := h.lookup(w, r)
	if !ok {
		return
	}
	note := h.Announce(r.Context(), doc, nil)
	writeJSON(w, http.StatusOK, map[string]any{"notification": note})
}

// Announce raises the talk-to-doctor notification on the handler's notifier
// and on n, when n is non-nil.
func (h *Handler) Announce(ctx context.Context, doc Doctor, n notify.Notifier) notify.Notification {
	note := TalkNotification(doc)
	notify.Fanout{n, h.notifier}.Notify(ctx, note)
	return note
}

// Specializations handles GET /api/specializations
func (h *Handler) Specializations(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"directory": FilterOptions(),
		"booking":   BookingSpecializations(),
	})
}

// TalkNotification builds the talk-to-doctor placeholder notification.
func TalkNotification(d Doctor) notify.Notification {
	return notify.New(d.Name, TalkMessage(d), notify.SeverityInfo)
}

func (h *Handler) lookup(w http.ResponseWriter, r *http.Request) (Doctor, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid doctor id"})
		return Doctor{}, false
	}
	doc, err := h.directory.Get(id)
	if errors.Is(err, ErrDoctorNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": ErrDoctorNotFound.Error()})
		return Doctor{}, false
	}
	if err != nil {
		h.logger.Error("failed to look up doctor", "error", err, "id", id)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return Doctor{}, false
	}
	return doc, true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
