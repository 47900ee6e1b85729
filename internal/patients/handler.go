package patients

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/wolfman30/mediconnect/internal/forms"
	"github.com/wolfman30/mediconnect/internal/notify"
	"github.com/wolfman30/mediconnect/pkg/logging"
)

// Handler handles HTTP requests for patient details
type Handler struct {
	processor *forms.Processor
	logger    *logging.Logger
}

// NewHandler creates a new patient-details handler
func NewHandler(processor *forms.Processor, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		processor: processor,
		logger:    logger,
	}
}

// Save validates the details and returns the next form state. The values are
// never logged or kept.
func (h *Handler) Save(ctx context.Context, form Form, n notify.Notifier) (forms.Outcome, Form) {
	out := h.processor.Submit(ctx, form, n)
	if out.Accepted() {
		h.logger.Info("patient details accepted")
		return out, Form{}
	}
	return out, form
}

// SavePatientDetails handles POST /api/patients requests
func (h *Handler) SavePatientDetails(w http.ResponseWriter, r *http.Request) {
	var form Form
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		h.logger.Error("failed to decode request", "error", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	out, next := h.Save(r.Context(), form, nil)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(out.StatusCode())
	_ = json.NewEncoder(w).Encode(forms.NewResponse(out, next))
}

// ListGenders handles GET /api/genders requests
func (h *Handler) ListGenders(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"genders": Genders()})
}
