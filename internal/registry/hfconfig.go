package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"classifyd/internal/engine"
)

// hfConfig is the subset of a HuggingFace config.json the server uses.
type hfConfig struct {
	ID2Label map[string]string `json:"id2label"`
}

// readLabels returns class names ordered by index from dir/config.json.
// A missing file yields nil labels and no error.
func readLabels(dir string) ([]string, error) {
	b, err := os.ReadFile(filepath.Join(dir, engine.ConfigFile))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var cfg hfConfig
	if err := json.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", engine.ConfigFile, err)
	}
	if len(cfg.ID2Label) == 0 {
		return nil, nil
	}
	labels := make([]string, len(cfg.ID2Label))
	filled := make([]bool, len(labels))
	for k, v := range cfg.ID2Label {
		i, err := strconv.Atoi(k)
		if err != nil || i < 0 || i >= len(labels) {
			return nil, fmt.Errorf("id2label: bad index %q", k)
		}
		if filled[i] {
			return nil, fmt.Errorf("id2label: index %d given twice", i)
		}
		labels[i], filled[i] = v, true
	}
	return labels, nil
}
