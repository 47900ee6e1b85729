package forms

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/wolfman30/mediconnect/internal/notify"
	"github.com/wolfman30/mediconnect/internal/observability/metrics"
	"github.com/wolfman30/mediconnect/pkg/logging"
)

var tracer = otel.Tracer("mediconnect.internal.forms")

// ErrorTitle is the title of every validation notification.
const ErrorTitle = "Error"

// State names a step of the submission lifecycle.
type State string

const (
	StateIdle       State = "idle"
	StateValidating State = "validating"
	StateRejected   State = "rejected"
	StateAccepted   State = "accepted"
)

// ValidationError reports the first field that failed validation.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Invalid builds a ValidationError.
func Invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// Form is a submittable set of field values.
type Form interface {
	// Name identifies the form in logs and metrics.
	Name() string
	// Validate returns a *ValidationError for the first failing field, or nil.
	Validate() error
	// Confirmation is the notification raised once the form is accepted.
	Confirmation() notify.Notification
}

// Outcome is the result of one submission attempt.
type Outcome struct {
	State        State
	Err          *ValidationError
	Notification notify.Notification
}

// Accepted reports whether the submission passed validation.
func (o Outcome) Accepted() bool { return o.State == StateAccepted }

// StatusCode maps the outcome onto an HTTP status.
func (o Outcome) StatusCode() int {
	if o.Accepted() {
		return http.StatusOK
	}
	return http.StatusUnprocessableEntity
}

// Response is the JSON body returned for a submission. Form holds the values
// the screen should show next: the submitted ones after a rejection, an empty
// form after acceptance.
type Response struct {
	State        State               `json:"state"`
	Notification notify.Notification `json:"notification"`
	Error        *ValidationError    `json:"error,omitempty"`
	Form         any                 `json:"form"`
}

// NewResponse builds the response body for an outcome.
func NewResponse(o Outcome, next any) Response {
	return Response{
		State:        o.State,
		Notification: o.Notification,
		Error:        o.Err,
		Form:         next,
	}
}

// Processor runs the submit cycle shared by every form: validate, raise exactly
// one notification, report the outcome. It stores nothing.
type Processor struct {
	notifier notify.Notifier
	metrics  *metrics.FormMetrics
	logger   *logging.Logger
}

// NewProcessor creates a processor. notifier receives every notification in
// addition to the per-call notifier passed to Submit.
func NewProcessor(notifier notify.Notifier, m *metrics.FormMetrics, logger *logging.Logger) *Processor {
	if logger == nil {
		logger = logging.Default()
	}
	return &Processor{notifier: notifier, metrics: m, logger: logger}
}

// Submit validates f and notifies n (plus the processor's own notifier).
func (p *Processor) Submit(ctx context.Context, f Form, n notify.Notifier) Outcome {
	ctx, span := tracer.Start(ctx, "forms.submit", trace.WithAttributes(
		attribute.String("mediconnect.form", f.Name()),
	))
	defer span.End()

	target := notify.Fanout{n, p.notifier}

	err := f.Validate()
	if err == nil {
		note := f.Confirmation()
		target.Notify(ctx, note)
		p.metrics.ObserveAccepted(f.Name())
		span.SetAttributes(attribute.String("mediconnect.outcome", string(StateAccepted)))
		p.logger.Debug("form accepted", "form", f.Name())
		return Outcome{State: StateAccepted, Notification: note}
	}

	var verr *ValidationError
	if !errors.As(err, &verr) {
		verr = &ValidationError{Field: "form", Message: err.Error()}
	}
	note := notify.New(ErrorTitle, verr.Message, notify.SeverityError)
	target.Notify(ctx, note)
	p.metrics.ObserveRejected(f.Name(), verr.Field)
	span.SetAttributes(
		attribute.String("mediconnect.outcome", string(StateRejected)),
		attribute.String("mediconnect.field", verr.Field),
	)
	p.logger.Debug("form rejected", "form", f.Name(), "field", verr.Field)
	return Outcome{State: StateRejected, Err: verr, Notification: note}
}
