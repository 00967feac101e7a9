package manager

import (
	"errors"
	"fmt"
)

// modelNotFoundError is returned for identifiers without a registry entry.
type modelNotFoundError struct{ id string }

func (e modelNotFoundError) Error() string { return "model not found: " + e.id }

// ErrModelNotFound returns an error for a model id that is not registered.
func ErrModelNotFound(id string) error { return modelNotFoundError{id: id} }

// IsModelNotFound reports whether the error indicates a missing model id.
func IsModelNotFound(err error) bool {
	var e modelNotFoundError
	return errors.As(err, &e)
}

// dependencyUnavailableError signals a missing model runtime so the HTTP
// layer can return 503 Service Unavailable instead of 500.
type dependencyUnavailableError struct{ msg string }

func (e dependencyUnavailableError) Error() string { return e.msg }

// ErrDependencyUnavailable constructs a dependencyUnavailableError.
func ErrDependencyUnavailable(msg string) error { return dependencyUnavailableError{msg: msg} }

// IsDependencyUnavailable reports whether err indicates a missing/failed runtime dependency.
func IsDependencyUnavailable(err error) bool {
	var e dependencyUnavailableError
	return errors.As(err, &e)
}

// inferenceError wraps tokenizer and runtime failures for one model.
type inferenceError struct {
	id  string
	err error
}

func (e inferenceError) Error() string { return fmt.Sprintf("%s inference failed: %v", e.id, e.err) }

func (e inferenceError) Unwrap() error { return e.err }

// IsInferenceError reports whether err came from tokenizing or running a model.
func IsInferenceError(err error) bool {
	var e inferenceError
	return errors.As(err, &e)
}
