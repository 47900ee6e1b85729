package patients

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wolfman30/mediconnect/internal/forms"
	"github.com/wolfman30/mediconnect/internal/notify"
	"github.com/wolfman30/mediconnect/internal/observability/metrics"
	"github.com/wolfman30/mediconnect/pkg/logging"
)

type submitResponse struct {
	State        forms.State            `json:"state"`
	Notification notify.Notification    `json:"notification"`
	Error        *forms.ValidationError `json:"error"`
	Form         Form                   `json:"form"`
}

func newTestHandler() *Handler {
	logger := logging.Discard()
	p := forms.NewProcessor(nil, metrics.NewFormMetrics(prometheus.NewRegistry()), logger)
	return NewHandler(p, logger)
}

func save(t *testing.T, h *Handler, form Form) (int, submitResponse) {
	t.Helper()
	body, _ := json.Marshal(form)
	w := httptest.NewRecorder()
	h.SavePatientDetails(w, httptest.NewRequest(http.MethodPost, "/api/patients", bytes.NewReader(body)))

	var resp submitResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return w.Code, resp
}

func TestSavePatientDetails_AgeOutOfRange(t *testing.T) {
	h := newTestHandler()
	form := validForm()
	form.Age = "200"

	code, resp := save(t, h, form)

	assert.Equal(t, http.StatusUnprocessableEntity, code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "age", resp.Error.Field)
	assert.Equal(t, form, resp.Form)
}

func TestSavePatientDetails_Success(t *testing.T) {
	h := newTestHandler()

	code, resp := save(t, h, validForm())

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, forms.StateAccepted, resp.State)
	assert.Equal(t, Form{}, resp.Form)
	assert.Equal(t, "Patient Details Saved Successfully!", resp.Notification.Title)
}

func TestSavePatientDetails_InvalidJSON(t *testing.T) {
	h := newTestHandler()
	w := httptest.NewRecorder()

	h.SavePatientDetails(w, httptest.NewRequest(http.MethodPost, "/api/patients", strings.NewReader("nope")))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListGenders(t *testing.T) {
	h := newTestHandler()
	w := httptest.NewRecorder()

	h.ListGenders(w, httptest.NewRequest(http.MethodGet, "/api/genders", nil))

	var resp struct {
		Genders []Gender `json:"genders"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, Genders(), resp.Genders)
}
