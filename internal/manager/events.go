package manager

import (
	"time"

	"classifyd/pkg/types"
)

// Event names published by the manager.
const (
	EventPredictOK    = "predict_ok"
	EventPredictError = "predict_error"
)

// Event describes one finished prediction. Fields carries the outcome
// (class, confidence, tokens, truncated, dur_ms) or the error text.
type Event struct {
	Name   string
	Model  types.ModelID
	At     time.Time
	Fields map[string]any
}

// Failed reports whether the event records a failed prediction.
func (e Event) Failed() bool { return e.Name == EventPredictError }

// EventPublisher receives prediction events. Publish is called on the request
// goroutine, so implementations must return quickly.
type EventPublisher interface {
	Publish(Event)
}

type noopPublisher struct{}

func (noopPublisher) Publish(Event) {}
