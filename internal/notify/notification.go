package notify

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/wolfman30/mediconnect/pkg/logging"
)

// Severity controls how a notification is presented.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// Notification is a transient, non-blocking message shown to the user.
type Notification struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// New builds a notification with a fresh ID.
func New(title, message string, severity Severity) Notification {
	return Notification{
		ID:       uuid.NewString(),
		Title:    title,
		Message:  message,
		Severity: severity,
	}
}

// Notifier presents notifications. Implementations must not block.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// Recorder collects the notifications raised while handling one request.
type Recorder struct {
	mu    sync.Mutex
	items []Notification
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Notify(_ context.Context, n Notification) {
	r.mu.Lock()
	r.items = append(r.items, n)
	r.mu.Unlock()
}

// Notifications returns a copy of everything recorded so far.
func (r *Recorder) Notifications() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notification, len(r.items))
	copy(out, r.items)
	return out
}

// LogNotifier writes each notification as a structured log line.
type LogNotifier struct {
	logger *logging.Logger
}

// NewLogNotifier creates a notifier backed by the logger.
func NewLogNotifier(logger *logging.Logger) *LogNotifier {
	if logger == nil {
		logger = logging.Default()
	}
	return &LogNotifier{logger: logger}
}

func (l *LogNotifier) Notify(ctx context.Context, n Notification) {
	attrs := []any{"id", n.ID, "title", n.Title, "severity", string(n.Severity)}
	if n.Severity == SeverityError {
		l.logger.WarnContext(ctx, "notification", attrs...)
		return
	}
	l.logger.InfoContext(ctx, "notification", attrs...)
}

// Fanout delivers to every non-nil notifier in order.
type Fanout []Notifier

func (f Fanout) Notify(ctx context.Context, n Notification) {
	for _, target := range f {
		if target == nil {
			continue
		}
		target.Notify(ctx, n)
	}
}
