package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"classifyd/internal/common/fsutil"
	"classifyd/internal/engine"
	"classifyd/pkg/types"
)

// Spec locates one classifier on disk. Relative paths resolve against the
// registry base directory.
type Spec struct {
	ID            types.ModelID
	TokenizerDir  string
	CheckpointDir string
}

// DefaultSpecs is the trainer output layout the models ship with.
func DefaultSpecs() []Spec {
	return []Spec{
		{ID: types.ModelUmpire, TokenizerDir: "umpire_model", CheckpointDir: "results_Umpire_Model/checkpoint-100"},
		{ID: types.ModelEmail, TokenizerDir: "email_phishing_model", CheckpointDir: "results_Email_Phishing_Model/checkpoint-800"},
		{ID: types.ModelURL, TokenizerDir: "url_phishing_model", CheckpointDir: "results_URL_Phishing_Model/checkpoint-1200"},
	}
}

// resolvePath expands '~' and joins relative paths onto base.
func resolvePath(base, p string) (string, error) {
	return fsutil.ResolveUnder(base, p)
}

// ResolveCheckpoint returns dir when it holds a model file. Otherwise, if dir
// contains checkpoint-N subdirectories, the one with the highest N is used.
// Any other directory is returned unchanged and left for the backend to reject.
func ResolveCheckpoint(dir string) (string, error) {
	if fsutil.IsFile(filepath.Join(dir, engine.ModelFile)) {
		return dir, nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("read checkpoint dir: %w", err)
	}
	type ckpt struct {
		step int
		name string
	}
	var found []ckpt
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasPrefix(name, "checkpoint-") {
			continue
		}
		step, err := strconv.Atoi(strings.TrimPrefix(name, "checkpoint-"))
		if err != nil {
			continue
		}
		found = append(found, ckpt{step: step, name: name})
	}
	if len(found) == 0 {
		return dir, nil
	}
	sort.Slice(found, func(i, j int) bool { return found[i].step > found[j].step })
	return filepath.Join(dir, found[0].name), nil
}
