package manager

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorPredicates(t *testing.T) {
	nf := ErrModelNotFound("spam")
	if !IsModelNotFound(nf) || !IsModelNotFound(fmt.Errorf("wrapped: %w", nf)) {
		t.Fatalf("IsModelNotFound should see through wrapping")
	}
	du := ErrDependencyUnavailable("onnxruntime missing")
	if !IsDependencyUnavailable(du) || du.Error() != "onnxruntime missing" {
		t.Fatalf("unexpected dependency error: %v", du)
	}
	cause := errors.New("boom")
	ie := inferenceError{id: "email", err: cause}
	if !IsInferenceError(ie) || !errors.Is(ie, cause) {
		t.Fatalf("inference error should unwrap to its cause")
	}
	if IsModelNotFound(ie) || IsInferenceError(nf) {
		t.Fatalf("predicates must not overlap")
	}
}
