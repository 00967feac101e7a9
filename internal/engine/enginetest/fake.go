// Package enginetest provides a deterministic in-memory engine.Backend for tests.
//
// The tokenizer splits on whitespace and hashes each word into a small
// vocabulary, framed by [CLS]=101 and [SEP]=102. The model scores each class
// from the token ids, so identical inputs always produce identical logits.
package enginetest

import (
	"context"
	"fmt"
	"hash/fnv"
	"os"
	"strings"
	"sync"

	"classifyd/internal/engine"
)

const (
	ClsID     = 101
	SepID     = 102
	vocabSize = 30000
)

// Backend is a fake engine.Backend. The zero value serves two-label models.
// Directories must exist on disk, which lets tests exercise path handling.
type Backend struct {
	// Labels is the classification head width (default 2).
	Labels int
	// FailTokenizer and FailModel fail loads for the given directories.
	FailTokenizer map[string]error
	FailModel     map[string]error
	// LogitsErr, when set, fails every forward pass.
	LogitsErr error

	mu         sync.Mutex
	loaded     int
	closed     int
	lastTokens int
	shutdown   bool
}

func (b *Backend) Name() string { return "fake" }

func (b *Backend) Close() error {
	b.mu.Lock()
	b.shutdown = true
	b.mu.Unlock()
	return nil
}

func (b *Backend) LoadTokenizer(dir string) (engine.Tokenizer, error) {
	if err := b.FailTokenizer[dir]; err != nil {
		return nil, err
	}
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("tokenizer load: %w", err)
	}
	b.track(1)
	return &tokenizer{b: b}, nil
}

func (b *Backend) LoadModel(dir string, dev engine.Device) (engine.Model, error) {
	if err := b.FailModel[dir]; err != nil {
		return nil, err
	}
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("model load: %w", err)
	}
	if dev == engine.DeviceAuto {
		dev = engine.DeviceCPU
	}
	labels := b.Labels
	if labels <= 0 {
		labels = 2
	}
	b.track(1)
	return &model{b: b, labels: labels, device: dev}, nil
}

// Open reports how many tokenizers and models are loaded and not yet closed.
func (b *Backend) Open() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.loaded - b.closed
}

// ShutDown reports whether Close was called on the backend.
func (b *Backend) ShutDown() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.shutdown
}

// LastTokens is the sequence length seen by the most recent forward pass.
func (b *Backend) LastTokens() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastTokens
}

func (b *Backend) track(n int) {
	b.mu.Lock()
	b.loaded += n
	b.mu.Unlock()
}

func (b *Backend) release() {
	b.mu.Lock()
	b.closed++
	b.mu.Unlock()
}

type tokenizer struct{ b *Backend }

func (t *tokenizer) Encode(text string) (engine.Encoding, error) {
	words := strings.Fields(text)
	n := len(words) + 2
	enc := engine.Encoding{
		IDs:           make([]int64, 0, n),
		AttentionMask: make([]int64, 0, n),
		TypeIDs:       make([]int64, n),
		Special:       make([]bool, 0, n),
	}
	push := func(id int64, special bool) {
		enc.IDs = append(enc.IDs, id)
		enc.AttentionMask = append(enc.AttentionMask, 1)
		enc.Special = append(enc.Special, special)
	}
	push(ClsID, true)
	for _, w := range words {
		h := fnv.New32a()
		_, _ = h.Write([]byte(strings.ToLower(w)))
		push(int64(h.Sum32()%vocabSize)+1000, false)
	}
	push(SepID, true)
	return enc, nil
}

func (t *tokenizer) Close() error {
	t.b.release()
	return nil
}

type model struct {
	b      *Backend
	labels int
	device engine.Device
}

func (m *model) Logits(ctx context.Context, enc engine.Encoding) ([]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.b.LogitsErr != nil {
		return nil, m.b.LogitsErr
	}
	m.b.mu.Lock()
	m.b.lastTokens = enc.Len()
	m.b.mu.Unlock()
	var sum int64
	for i, id := range enc.IDs {
		if enc.AttentionMask[i] == 0 {
			continue
		}
		sum += id * int64(i+1)
	}
	out := make([]float32, m.labels)
	for k := range out {
		out[k] = float32((sum*int64(k+7))%1000) / 100
	}
	return out, nil
}

func (m *model) NumLabels() int { return m.labels }

func (m *model) Device() engine.Device { return m.device }

func (m *model) Close() error {
	m.b.release()
	return nil
}
