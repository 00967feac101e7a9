package manager

import "github.com/rs/zerolog"

// LogPublisher writes events to a zerolog logger. Successful predictions are
// logged at debug level, failures at warn.
type LogPublisher struct {
	log zerolog.Logger
}

func NewLogPublisher(l zerolog.Logger) *LogPublisher { return &LogPublisher{log: l} }

func (p *LogPublisher) Publish(e Event) {
	ev := p.log.Debug()
	if e.Failed() {
		ev = p.log.Warn()
	}
	if !e.At.IsZero() {
		ev = ev.Time("at", e.At)
	}
	ev.Str("event", e.Name).Str("model", string(e.Model)).Fields(e.Fields).Msg("prediction")
}
