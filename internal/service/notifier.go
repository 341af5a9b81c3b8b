package service

import (
	"time"

	"go.uber.org/zap"
)

// EventType names the externally visible mutation categories.
type EventType string

const (
	EventCreated       EventType = "CREATED"
	EventDeleted       EventType = "DELETED"
	EventTimeAdded     EventType = "TIME_ADDED"
	EventTimeRemoved   EventType = "TIME_REMOVED"
	EventStatusChanged EventType = "STATUS_CHANGED"
)

// Event describes one mutation for subscribers such as a UI layer.
type Event struct {
	Type   EventType `json:"type"`
	Entity string    `json:"entity"`
	ID     string    `json:"id"`
	At     time.Time `json:"at"`
}

// Notifier receives mutation events synchronously after they are
// applied. Scheduling correctness never depends on a notifier existing.
type Notifier interface {
	Notify(Event)
}

// LogNotifier is the default subscriber: it records mutations on the
// service log.
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier wraps a logger as a notifier.
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogNotifier{logger: logger}
}

// Notify implements Notifier.
func (n *LogNotifier) Notify(e Event) {
	n.logger.Info("mutation",
		zap.String("type", string(e.Type)),
		zap.String("entity", e.Entity),
		zap.String("id", e.ID),
	)
}
