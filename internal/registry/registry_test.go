package registry

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"classifyd/internal/engine"
	"classifyd/internal/engine/enginetest"
	"classifyd/pkg/types"
)

// layoutDefaults creates the default tokenizer and checkpoint directories under a temp base.
func layoutDefaults(t *testing.T) string {
	t.Helper()
	base := t.TempDir()
	for _, s := range DefaultSpecs() {
		mkdirs(t, base, s.TokenizerDir, s.CheckpointDir)
	}
	return base
}

func TestLoad_AllKnownModels(t *testing.T) {
	base := layoutDefaults(t)
	be := &enginetest.Backend{}
	reg, err := Load(context.Background(), be, DefaultSpecs(), Options{BaseDir: base, MaxTokens: 64})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	defer reg.Close()

	ids := reg.IDs()
	if len(ids) != 3 || ids[0] != types.ModelUmpire || ids[1] != types.ModelEmail || ids[2] != types.ModelURL {
		t.Fatalf("unexpected ids: %v", ids)
	}
	for _, id := range types.KnownModels {
		c, ok := reg.Get(id)
		if !ok {
			t.Fatalf("missing %s", id)
		}
		info := c.Info()
		if info.MaxTokens != 64 || !filepath.IsAbs(info.CheckpointPath) {
			t.Fatalf("unexpected info: %+v", info)
		}
	}
	entries := reg.Entries()
	if len(entries) != len(ids) {
		t.Fatalf("entries=%d ids=%d", len(entries), len(ids))
	}
	for i, c := range entries {
		if c.ID() != ids[i] {
			t.Fatalf("entry %d: got %s want %s", i, c.ID(), ids[i])
		}
	}
	if reg.Backend() != "fake" || reg.Device() != engine.DeviceCPU {
		t.Fatalf("backend=%s device=%s", reg.Backend(), reg.Device())
	}
	if _, ok := reg.Get("spam"); ok {
		t.Fatalf("unexpected entry for unknown id")
	}
	if be.Open() != 6 {
		t.Fatalf("expected 6 open handles, got %d", be.Open())
	}
	if err := reg.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if be.Open() != 0 {
		t.Fatalf("expected all handles closed, got %d", be.Open())
	}
}

func TestLoad_UsesLabelsFromCheckpointConfig(t *testing.T) {
	base := layoutDefaults(t)
	ckpt := filepath.Join(base, "results_Email_Phishing_Model", "checkpoint-800")
	if err := os.WriteFile(filepath.Join(ckpt, engine.ConfigFile), []byte(`{"id2label":{"0":"safe","1":"phishing"}}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	reg, err := Load(context.Background(), &enginetest.Backend{}, DefaultSpecs(), Options{BaseDir: base})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	defer reg.Close()
	c, _ := reg.Get(types.ModelEmail)
	if got := c.Info().Labels; len(got) != 2 || got[1] != "phishing" {
		t.Fatalf("labels=%v", got)
	}
}

func TestLoad_ResolvesLatestCheckpoint(t *testing.T) {
	base := layoutDefaults(t)
	specs := DefaultSpecs()
	mkdirs(t, base, "results_URL_Phishing_Model/checkpoint-1500")
	specs[2].CheckpointDir = "results_URL_Phishing_Model"
	reg, err := Load(context.Background(), &enginetest.Backend{}, specs, Options{BaseDir: base})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	defer reg.Close()
	c, _ := reg.Get(types.ModelURL)
	if !strings.HasSuffix(c.Info().CheckpointPath, "checkpoint-1500") {
		t.Fatalf("checkpoint=%s", c.Info().CheckpointPath)
	}
}

func TestLoad_FailFastClosesLoaded(t *testing.T) {
	base := layoutDefaults(t)
	urlCkpt := filepath.Join(base, "results_URL_Phishing_Model", "checkpoint-1200")
	be := &enginetest.Backend{FailModel: map[string]error{urlCkpt: errors.New("corrupt weights")}}
	reg, err := Load(context.Background(), be, DefaultSpecs(), Options{BaseDir: base})
	if err == nil || reg != nil {
		t.Fatalf("expected failure, got reg=%v err=%v", reg, err)
	}
	if !strings.Contains(err.Error(), "load url") || !strings.Contains(err.Error(), "corrupt weights") {
		t.Fatalf("unexpected error: %v", err)
	}
	if be.Open() != 0 {
		t.Fatalf("expected no leaked handles, got %d", be.Open())
	}
}

func TestLoad_MissingDirectory(t *testing.T) {
	base := t.TempDir()
	mkdirs(t, base, "umpire_model", "results_Umpire_Model/checkpoint-100")
	be := &enginetest.Backend{}
	if _, err := Load(context.Background(), be, DefaultSpecs(), Options{BaseDir: base}); err == nil {
		t.Fatalf("expected error when email model is absent")
	}
	if be.Open() != 0 {
		t.Fatalf("leaked %d handles", be.Open())
	}
}

func TestLoad_SpecValidation(t *testing.T) {
	base := layoutDefaults(t)
	be := &enginetest.Backend{}
	cases := map[string][]Spec{
		"missing":   DefaultSpecs()[:2],
		"unknown":   append(DefaultSpecs(), Spec{ID: "spam", TokenizerDir: "x", CheckpointDir: "y"}),
		"duplicate": append(DefaultSpecs(), DefaultSpecs()[0]),
		"empty":     {{ID: types.ModelUmpire}, DefaultSpecs()[1], DefaultSpecs()[2]},
	}
	for name, specs := range cases {
		if _, err := Load(context.Background(), be, specs, Options{BaseDir: base}); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
	if _, err := Load(context.Background(), nil, DefaultSpecs(), Options{BaseDir: base}); !errors.Is(err, engine.ErrUnavailable) {
		t.Fatalf("nil backend: got %v", err)
	}
}

func TestLoad_CanceledContext(t *testing.T) {
	base := layoutDefaults(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Load(ctx, &enginetest.Backend{}, DefaultSpecs(), Options{BaseDir: base}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestClose_Idempotent(t *testing.T) {
	base := layoutDefaults(t)
	be := &enginetest.Backend{}
	reg, err := Load(context.Background(), be, DefaultSpecs(), Options{BaseDir: base})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	for i := 0; i < 2; i++ {
		if err := reg.Close(); err != nil {
			t.Fatalf("close %d: %v", i, err)
		}
	}
	if be.Open() != 0 {
		t.Fatalf("expected 0 open handles, got %d", be.Open())
	}
}
