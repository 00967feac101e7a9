// Package classifier runs the shared inference path for a loaded
// tokenizer/model pair: tokenize, truncate, forward pass, softmax, argmax.
package classifier

import (
	"context"
	"errors"
	"fmt"

	"classifyd/internal/engine"
	"classifyd/pkg/types"
)

// DefaultMaxTokens is the truncation limit used when none is configured.
const DefaultMaxTokens = 512

// Classifier is one loaded model entry. It is immutable after New and safe
// for concurrent use when its tokenizer and model are.
type Classifier struct {
	id             types.ModelID
	labels         []string
	tokenizerPath  string
	checkpointPath string
	maxTokens      int

	tok   engine.Tokenizer
	model engine.Model
}

// Config describes a classifier being assembled by the registry.
type Config struct {
	ID             types.ModelID
	Labels         []string
	TokenizerPath  string
	CheckpointPath string
	MaxTokens      int
}

// Result is the outcome of a single prediction.
type Result struct {
	Class         int
	Label         string
	Confidence    float64
	Probabilities []float64
	Tokens        int
	Truncated     bool
}

// New pairs tok and model. Missing label names default to LABEL_<i>.
func New(cfg Config, tok engine.Tokenizer, model engine.Model) (*Classifier, error) {
	if tok == nil || model == nil {
		return nil, errors.New("classifier needs a tokenizer and a model")
	}
	n := model.NumLabels()
	if n <= 0 {
		return nil, fmt.Errorf("model reports %d labels", n)
	}
	labels := cfg.Labels
	if len(labels) == 0 {
		labels = make([]string, n)
		for i := range labels {
			labels[i] = fmt.Sprintf("LABEL_%d", i)
		}
	}
	if len(labels) != n {
		return nil, fmt.Errorf("checkpoint declares %d labels but model outputs %d", len(labels), n)
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	return &Classifier{
		id:             cfg.ID,
		labels:         append([]string(nil), labels...),
		tokenizerPath:  cfg.TokenizerPath,
		checkpointPath: cfg.CheckpointPath,
		maxTokens:      maxTokens,
		tok:            tok,
		model:          model,
	}, nil
}

// Predict classifies text. Inputs longer than the token limit are truncated.
func (c *Classifier) Predict(ctx context.Context, text string) (Result, error) {
	enc, err := c.tok.Encode(text)
	if err != nil {
		return Result{}, fmt.Errorf("tokenize: %w", err)
	}
	enc, truncated := Truncate(enc, c.maxTokens)
	logits, err := c.model.Logits(ctx, enc)
	if err != nil {
		return Result{}, fmt.Errorf("forward pass: %w", err)
	}
	if len(logits) != len(c.labels) {
		return Result{}, fmt.Errorf("model returned %d logits, want %d", len(logits), len(c.labels))
	}
	if !finite(logits) {
		return Result{}, errors.New("model returned non-finite logits")
	}
	probs := Softmax(logits)
	class := Argmax(probs)
	return Result{
		Class:         class,
		Label:         c.labels[class],
		Confidence:    probs[class],
		Probabilities: probs,
		Tokens:        enc.Len(),
		Truncated:     truncated,
	}, nil
}

func (c *Classifier) ID() types.ModelID { return c.id }

func (c *Classifier) Device() engine.Device { return c.model.Device() }

// Info describes the classifier for listing endpoints.
func (c *Classifier) Info() types.ModelInfo {
	return types.ModelInfo{
		ID:             c.id,
		Labels:         append([]string(nil), c.labels...),
		TokenizerPath:  c.tokenizerPath,
		CheckpointPath: c.checkpointPath,
		MaxTokens:      c.maxTokens,
	}
}

// Close releases the model and tokenizer.
func (c *Classifier) Close() error {
	return errors.Join(c.model.Close(), c.tok.Close())
}
