// Package registry loads the served classifiers once at startup and exposes
// them read-only. A Registry is never mutated after Load returns, so it can
// be shared by request goroutines without locking.
package registry

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"classifyd/internal/classifier"
	"classifyd/internal/engine"
	"classifyd/pkg/types"
)

// Options tune Load.
type Options struct {
	// BaseDir anchors relative tokenizer/checkpoint paths.
	BaseDir   string
	Device    engine.Device
	MaxTokens int
	Logger    *zerolog.Logger
}

// Registry maps model identifiers to loaded classifiers.
type Registry struct {
	entries map[types.ModelID]*classifier.Classifier
	order   []types.ModelID
	backend string
	device  engine.Device

	closeOnce sync.Once
	closeErr  error
}

// Load resolves and loads every spec. It requires exactly one spec per
// identifier in types.KnownModels. On any failure the classifiers loaded so
// far are closed and the error is returned; there is no partial registry.
func Load(ctx context.Context, be engine.Backend, specs []Spec, opts Options) (*Registry, error) {
	if be == nil {
		return nil, fmt.Errorf("%w: no backend", engine.ErrUnavailable)
	}
	if err := checkSpecs(specs); err != nil {
		return nil, err
	}
	log := zerolog.Nop()
	if opts.Logger != nil {
		log = *opts.Logger
	}
	r := &Registry{
		entries: make(map[types.ModelID]*classifier.Classifier, len(specs)),
		backend: be.Name(),
	}
	for _, id := range types.KnownModels {
		if err := ctx.Err(); err != nil {
			r.Close()
			return nil, err
		}
		spec := specFor(specs, id)
		c, err := loadOne(be, spec, opts, log)
		if err != nil {
			log.Error().Err(err).Str("model", string(id)).Msg("model load failed")
			r.Close()
			return nil, fmt.Errorf("load %s: %w", id, err)
		}
		if r.device == "" {
			r.device = c.Device()
		}
		r.entries[id] = c
		r.order = append(r.order, id)
	}
	return r, nil
}

func loadOne(be engine.Backend, spec Spec, opts Options, log zerolog.Logger) (*classifier.Classifier, error) {
	start := time.Now()
	tokDir, err := resolvePath(opts.BaseDir, spec.TokenizerDir)
	if err != nil {
		return nil, fmt.Errorf("tokenizer path: %w", err)
	}
	ckptDir, err := resolvePath(opts.BaseDir, spec.CheckpointDir)
	if err != nil {
		return nil, fmt.Errorf("checkpoint path: %w", err)
	}
	if ckptDir, err = ResolveCheckpoint(ckptDir); err != nil {
		return nil, err
	}
	log.Info().
		Str("model", string(spec.ID)).
		Str("tokenizer", tokDir).
		Str("checkpoint", ckptDir).
		Msg("loading model")

	labels, err := readLabels(ckptDir)
	if err != nil {
		return nil, err
	}
	tok, err := be.LoadTokenizer(tokDir)
	if err != nil {
		return nil, err
	}
	mdl, err := be.LoadModel(ckptDir, opts.Device)
	if err != nil {
		_ = tok.Close()
		return nil, err
	}
	c, err := classifier.New(classifier.Config{
		ID:             spec.ID,
		Labels:         labels,
		TokenizerPath:  tokDir,
		CheckpointPath: ckptDir,
		MaxTokens:      opts.MaxTokens,
	}, tok, mdl)
	if err != nil {
		_ = mdl.Close()
		_ = tok.Close()
		return nil, err
	}
	log.Info().
		Str("model", string(spec.ID)).
		Str("device", string(mdl.Device())).
		Int("labels", mdl.NumLabels()).
		Dur("dur", time.Since(start)).
		Msg("model loaded")
	return c, nil
}

func checkSpecs(specs []Spec) error {
	seen := make(map[types.ModelID]bool, len(specs))
	for _, s := range specs {
		if _, ok := types.ParseModelID(string(s.ID)); !ok {
			return fmt.Errorf("unknown model id %q", s.ID)
		}
		if seen[s.ID] {
			return fmt.Errorf("duplicate model id %q", s.ID)
		}
		if s.TokenizerDir == "" || s.CheckpointDir == "" {
			return fmt.Errorf("model %q: tokenizer and checkpoint paths are required", s.ID)
		}
		seen[s.ID] = true
	}
	for _, id := range types.KnownModels {
		if !seen[id] {
			return fmt.Errorf("missing model id %q", id)
		}
	}
	return nil
}

func specFor(specs []Spec, id types.ModelID) Spec {
	for _, s := range specs {
		if s.ID == id {
			return s
		}
	}
	return Spec{}
}

// Get returns the classifier for id.
func (r *Registry) Get(id types.ModelID) (*classifier.Classifier, bool) {
	c, ok := r.entries[id]
	return c, ok
}

// IDs returns the loaded identifiers in route order.
func (r *Registry) IDs() []types.ModelID {
	return append([]types.ModelID(nil), r.order...)
}

// Entries returns the loaded classifiers in route order.
func (r *Registry) Entries() []*classifier.Classifier {
	out := make([]*classifier.Classifier, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.entries[id])
	}
	return out
}

// Backend names the runtime that loaded the models.
func (r *Registry) Backend() string { return r.backend }

// Device is the compute device of the loaded models.
func (r *Registry) Device() engine.Device { return r.device }

// Close releases every loaded classifier. Calls after the first are no-ops.
func (r *Registry) Close() error {
	r.closeOnce.Do(func() {
		var errs []error
		for _, id := range r.order {
			if err := r.entries[id].Close(); err != nil {
				errs = append(errs, fmt.Errorf("close %s: %w", id, err))
			}
		}
		r.closeErr = errors.Join(errs...)
	})
	return r.closeErr
}
