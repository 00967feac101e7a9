package manager

import (
	"time"

	"github.com/rs/zerolog"

	"classifyd/internal/registry"
	"classifyd/pkg/types"
)

// ManagerConfig encapsulates all tunables for Manager construction.
type ManagerConfig struct {
	// Registry holds the loaded classifiers. A nil registry yields a manager
	// that reports not-ready and fails every prediction with 503.
	Registry *registry.Registry
	// Publisher receives predict events. Defaults to a no-op publisher.
	Publisher EventPublisher
	// Logger defaults to a disabled logger.
	Logger *zerolog.Logger
}

// NewWithConfig constructs a Manager from ManagerConfig.
func NewWithConfig(cfg ManagerConfig) *Manager {
	m := &Manager{
		reg:       cfg.Registry,
		pub:       cfg.Publisher,
		log:       zerolog.Nop(),
		stats:     make(map[types.ModelID]*modelStats),
		startTime: time.Now(),
	}
	if m.pub == nil {
		m.pub = noopPublisher{}
	}
	if cfg.Logger != nil {
		m.log = *cfg.Logger
	}
	if m.reg != nil {
		for _, id := range m.reg.IDs() {
			m.stats[id] = &modelStats{}
		}
	}
	return m
}
