package notify

import (
	"context"
	"sync"

	"github.com/brewforge/shift-engine/pkg/logger"
)

// Severity classifies a notification for the display layer.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
	SeveritySuccess Severity = "success"
)

// Notification is a fire-and-forget message for the operator display.
type Notification struct {
	Title    string   `json:"title"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// Notifier delivers notifications to a sink. Delivery is best effort; a
// dropped notification never affects the triggering operation.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// --- Log Notifier (writes notifications to the structured log) ---

type logNotifier struct {
	log *logger.Logger
}

// NewLogNotifier creates a notifier that records notifications in the log.
func NewLogNotifier(log *logger.Logger) Notifier {
	return &logNotifier{log: log.WithComponent("notifier")}
}

func (n *logNotifier) Notify(ctx context.Context, note Notification) {
	switch note.Severity {
	case SeverityError:
		n.log.Error(note.Title, "message", note.Message)
	case SeverityWarning:
		n.log.Warn(note.Title, "message", note.Message)
	default:
		n.log.Info(note.Title, "message", note.Message)
	}
}

// --- Buffer Notifier (keeps recent notifications for the UI to poll) ---

// BufferNotifier keeps the most recent notifications in memory so the display
// layer can poll them, and forwards each one to an optional next sink.
type BufferNotifier struct {
	mu    sync.Mutex
	ring  []Notification
	limit int
	next  Notifier
}

// NewBufferNotifier creates a buffering sink holding up to limit entries.
func NewBufferNotifier(limit int, next Notifier) *BufferNotifier {
	if limit <= 0 {
		limit = 100
	}
	return &BufferNotifier{limit: limit, next: next}
}

func (b *BufferNotifier) Notify(ctx context.Context, n Notification) {
	b.mu.Lock()
	b.ring = append(b.ring, n)
	if len(b.ring) > b.limit {
		b.ring = b.ring[len(b.ring)-b.limit:]
	}
	b.mu.Unlock()

	if b.next != nil {
		b.next.Notify(ctx, n)
	}
}

// Recent returns a copy of the buffered notifications, newest last.
func (b *BufferNotifier) Recent() []Notification {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Notification, len(b.ring))
	copy(out, b.ring)
	return out
}
