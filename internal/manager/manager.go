package manager

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"classifyd/internal/registry"
	"classifyd/pkg/types"
)

// HealthStatus values reported by Health.
const (
	StatusHealthy     = "healthy"
	StatusUnavailable = "unavailable"
)

type Manager struct {
	reg *registry.Registry
	pub EventPublisher
	log zerolog.Logger

	// stats has one entry per loaded model and is never resized after construction.
	stats     map[types.ModelID]*modelStats
	startTime time.Time

	mu      sync.RWMutex
	lastErr string
}

// New constructs a Manager over a loaded registry.
func New(reg *registry.Registry) *Manager {
	return NewWithConfig(ManagerConfig{Registry: reg})
}

// SetEventPublisher replaces the event publisher. Passing nil restores the no-op publisher.
func (m *Manager) SetEventPublisher(p EventPublisher) {
	if p == nil {
		p = noopPublisher{}
	}
	m.mu.Lock()
	m.pub = p
	m.mu.Unlock()
}

func (m *Manager) publisher() EventPublisher {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pub
}

// Ready reports whether every known model is loaded.
func (m *Manager) Ready() bool {
	if m.reg == nil {
		return false
	}
	return len(m.reg.IDs()) == len(types.KnownModels)
}

// Health reports service status and the loaded identifiers in route order.
func (m *Manager) Health() types.HealthResponse {
	if !m.Ready() {
		return types.HealthResponse{Status: StatusUnavailable, ModelsLoaded: []types.ModelID{}}
	}
	return types.HealthResponse{Status: StatusHealthy, ModelsLoaded: m.reg.IDs()}
}

// ListModels describes every loaded model in route order.
func (m *Manager) ListModels() []types.ModelInfo {
	if m.reg == nil {
		return []types.ModelInfo{}
	}
	entries := m.reg.Entries()
	out := make([]types.ModelInfo, 0, len(entries))
	for _, c := range entries {
		out = append(out, c.Info())
	}
	return out
}
