package manager

import "sync"

// MemoryPublisher records events for inspection in tests.
type MemoryPublisher struct {
	mu     sync.Mutex
	events []Event
}

func NewMemoryPublisher() *MemoryPublisher { return &MemoryPublisher{} }

func (p *MemoryPublisher) Publish(e Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

// Events returns a snapshot of the recorded events.
func (p *MemoryPublisher) Events() []Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Event(nil), p.events...)
}

// Named filters the recorded events by name.
func (p *MemoryPublisher) Named(name string) []Event {
	var out []Event
	for _, e := range p.Events() {
		if e.Name == name {
			out = append(out, e)
		}
	}
	return out
}

// ForModel filters the recorded events by model.
func (p *MemoryPublisher) ForModel(id string) []Event {
	var out []Event
	for _, e := range p.Events() {
		if string(e.Model) == id {
			out = append(out, e)
		}
	}
	return out
}
