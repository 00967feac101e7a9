// Package engine abstracts the model runtime that executes the classifiers.
//
// The production backend (onnx.go, built with `-tags=onnx`) pairs ONNX Runtime
// sessions with HuggingFace tokenizers. Builds without the tag get a stub whose
// NewBackend fails with ErrUnavailable, which keeps default builds CGO-free.
package engine

import (
	"context"
	"errors"
)

// File names expected inside tokenizer and checkpoint directories.
const (
	TokenizerFile = "tokenizer.json"
	ModelFile     = "model.onnx"
	ConfigFile    = "config.json"
)

// ErrUnavailable reports that the model runtime is missing from this build or host.
var ErrUnavailable = errors.New("model runtime unavailable")

// Encoding is a tokenized single sequence. All slices have the same length.
type Encoding struct {
	IDs           []int64
	AttentionMask []int64
	TypeIDs       []int64
	// Special marks tokens inserted by the tokenizer (e.g. [CLS], [SEP]).
	Special []bool
}

// Len returns the number of tokens.
func (e Encoding) Len() int { return len(e.IDs) }

// Tokenizer converts raw text into model inputs. Implementations must be
// safe for concurrent use.
type Tokenizer interface {
	Encode(text string) (Encoding, error)
	Close() error
}

// Model runs a sequence classifier in inference mode. Implementations must be
// safe for concurrent use.
type Model interface {
	// Logits runs one forward pass and returns one raw score per class.
	Logits(ctx context.Context, enc Encoding) ([]float32, error)
	// NumLabels is the width of the classification head.
	NumLabels() int
	// Device is the compute device the model was placed on.
	Device() Device
	Close() error
}

// Backend loads tokenizers and models from disk.
type Backend interface {
	Name() string
	LoadTokenizer(dir string) (Tokenizer, error)
	LoadModel(dir string, dev Device) (Model, error)
	// Close releases process-wide runtime state. Call after all models are closed.
	Close() error
}

// Options configure NewBackend.
type Options struct {
	// LibraryPath points at the ONNX Runtime shared library. Empty uses the
	// runtime's platform default.
	LibraryPath string
	// IntraOpThreads bounds per-session parallelism. 0 keeps the runtime default.
	IntraOpThreads int
}
