// Package manager coordinates inference across the loaded classifiers. It is
// structured into small files by concern:
//
//   - manager.go: core Manager type, constructor, Ready/Health/ListModels.
//   - config.go: ManagerConfig; NewWithConfig applies defaults.
//   - predict.go: the Predict entry point shared by every route.
//   - status.go: Status reporting and per-model counters.
//   - errors.go: error types and predicates (IsModelNotFound, IsDependencyUnavailable, IsInferenceError).
//   - events.go, eventpub_*.go: lifecycle events and publishers.
//   - metrics.go: Prometheus collectors for inference.
//
// External packages should treat this package as the orchestration layer and
// use public methods only.
package manager
