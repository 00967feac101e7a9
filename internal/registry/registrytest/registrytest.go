// Package registrytest builds registries over the fake engine for tests.
package registrytest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"classifyd/internal/engine/enginetest"
	"classifyd/internal/registry"
)

// Layout creates the default tokenizer and checkpoint directories under a
// fresh temp dir and returns it.
func Layout(t testing.TB) string {
	t.Helper()
	base := t.TempDir()
	for _, s := range registry.DefaultSpecs() {
		for _, d := range []string{s.TokenizerDir, s.CheckpointDir} {
			if err := os.MkdirAll(filepath.Join(base, d), 0o755); err != nil {
				t.Fatalf("mkdir %s: %v", d, err)
			}
		}
	}
	return base
}

// Load returns a registry holding every known model, backed by be. The
// registry is closed when the test ends.
func Load(t testing.TB, be *enginetest.Backend, maxTokens int) *registry.Registry {
	t.Helper()
	reg, err := registry.Load(context.Background(), be, registry.DefaultSpecs(), registry.Options{
		BaseDir:   Layout(t),
		MaxTokens: maxTokens,
	})
	if err != nil {
		t.Fatalf("load registry: %v", err)
	}
	t.Cleanup(func() { _ = reg.Close() })
	return reg
}
