package manager

import (
	"sync/atomic"
	"time"

	"classifyd/pkg/types"
)

// modelStats holds lock-free serving counters for one model.
type modelStats struct {
	predictions atomic.Uint64
	errors      atomic.Uint64
	truncated   atomic.Uint64
	lastUsed    atomic.Int64
}

func (s *modelStats) touch() { s.lastUsed.Store(time.Now().Unix()) }

func (m *Manager) setLastErr(err error) {
	m.mu.Lock()
	m.lastErr = err.Error()
	m.mu.Unlock()
}

// Status builds a detailed status response for /status.
func (m *Manager) Status() types.StatusResponse {
	now := time.Now()
	m.mu.RLock()
	lastErr := m.lastErr
	m.mu.RUnlock()
	resp := types.StatusResponse{
		Models:         []types.ModelStatus{},
		UptimeSeconds:  int64(now.Sub(m.startTime).Seconds()),
		ServerTimeUnix: now.Unix(),
		LastError:      lastErr,
	}
	if m.reg == nil {
		return resp
	}
	resp.Backend = m.reg.Backend()
	resp.Device = string(m.reg.Device())
	for _, id := range m.reg.IDs() {
		st := m.stats[id]
		resp.Models = append(resp.Models, types.ModelStatus{
			ModelID:     id,
			Predictions: st.predictions.Load(),
			Errors:      st.errors.Load(),
			Truncated:   st.truncated.Load(),
			LastUsed:    st.lastUsed.Load(),
		})
	}
	return resp
}
