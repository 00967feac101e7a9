//go:build !onnx

package engine

import "fmt"

// NewBackend is unavailable without the 'onnx' build tag. The real backend
// lives in onnx.go and needs CGO plus the tokenizers static library.
func NewBackend(opts Options) (Backend, error) {
	return nil, fmt.Errorf("%w: built without the 'onnx' tag", ErrUnavailable)
}
