package appointments

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/wolfman30/mediconnect/internal/forms"
	"github.com/wolfman30/mediconnect/internal/notify"
	"github.com/wolfman30/mediconnect/pkg/logging"
)

// Handler handles HTTP requests for appointment booking
type Handler struct {
	processor *forms.Processor
	logger    *logging.Logger
}

// NewHandler creates a new appointments handler
func NewHandler(processor *forms.Processor, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		processor: processor,
		logger:    logger,
	}
}

// Book validates the submitted form and returns the next form state. Nothing
// is stored: a booking only produces its confirmation. n, when non-nil,
// receives this submission's notification.
func (h *Handler) Book(ctx context.Context, form Form, n notify.Notifier) (forms.Outcome, Form) {
	out := h.processor.Submit(ctx, form, n)
	if out.Accepted() {
		h.logger.Info("appointment accepted", "date", form.Date, "time", form.Time, "specialization", form.Specialization)
		return out, Form{}
	}
	return out, form
}

// CreateAppointment handles POST /api/appointments requests
func (h *Handler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	var form Form
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		h.logger.Error("failed to decode request", "error", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	out, next := h.Book(r.Context(), form, nil)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(out.StatusCode())
	_ = json.NewEncoder(w).Encode(forms.NewResponse(out, next))
}

// ListTimeSlots handles GET /api/time-slots requests
func (h *Handler) ListTimeSlots(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"time_slots":      TimeSlots(),
		"specializations": Specializations(),
	})
}
