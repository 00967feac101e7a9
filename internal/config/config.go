// Package config holds runtime parameters for classifyd.
//
// Values are layered: Default, then a config file (Load), then CLASSIFYD_*
// environment variables (ApplyEnv), then command-line flags applied by main.
package config

import (
	"fmt"
	"sort"
	"strings"

	"classifyd/internal/engine"
	"classifyd/internal/registry"
	"classifyd/pkg/types"
)

// Defaults.
const (
	DefaultAddr            = ":8000"
	DefaultMaxTokens       = 512
	DefaultMaxBodyBytes    = 1 << 20
	DefaultShutdownSeconds = 5
)

// ModelPaths locates one model relative to ModelsDir.
type ModelPaths struct {
	Tokenizer  string `json:"tokenizer" yaml:"tokenizer" toml:"tokenizer"`
	Checkpoint string `json:"checkpoint" yaml:"checkpoint" toml:"checkpoint"`
}

// CORSConfig controls the CORS middleware. Defaults allow everything.
type CORSConfig struct {
	Enabled          bool     `json:"enabled" yaml:"enabled" toml:"enabled" env:"ENABLED"`
	AllowedOrigins   []string `json:"allowed_origins" yaml:"allowed_origins" toml:"allowed_origins" env:"ALLOWED_ORIGINS" envSeparator:","`
	AllowedMethods   []string `json:"allowed_methods" yaml:"allowed_methods" toml:"allowed_methods" env:"ALLOWED_METHODS" envSeparator:","`
	AllowedHeaders   []string `json:"allowed_headers" yaml:"allowed_headers" toml:"allowed_headers" env:"ALLOWED_HEADERS" envSeparator:","`
	AllowCredentials bool     `json:"allow_credentials" yaml:"allow_credentials" toml:"allow_credentials" env:"ALLOW_CREDENTIALS"`
}

// Config holds runtime parameters for the service.
type Config struct {
	Addr string `json:"addr" yaml:"addr" toml:"addr" env:"ADDR"`
	// ModelsDir anchors relative model paths. Empty means the executable's directory.
	ModelsDir string `json:"models_dir" yaml:"models_dir" toml:"models_dir" env:"MODELS_DIR"`
	MaxTokens int    `json:"max_tokens" yaml:"max_tokens" toml:"max_tokens" env:"MAX_TOKENS"`
	// Device is auto, cpu or cuda.
	Device         string `json:"device" yaml:"device" toml:"device" env:"DEVICE"`
	OnnxRuntimeLib string `json:"onnxruntime_lib" yaml:"onnxruntime_lib" toml:"onnxruntime_lib" env:"ONNXRUNTIME_LIB"`
	IntraOpThreads int    `json:"intra_op_threads" yaml:"intra_op_threads" toml:"intra_op_threads" env:"INTRA_OP_THREADS"`

	LogLevel  string `json:"log_level" yaml:"log_level" toml:"log_level" env:"LOG_LEVEL"`
	LogFormat string `json:"log_format" yaml:"log_format" toml:"log_format" env:"LOG_FORMAT"`
	// RequestLog is the per-request log level: off, error, info or debug.
	// Requests may override it with ?log= or X-Log-Level.
	RequestLog string `json:"request_log" yaml:"request_log" toml:"request_log" env:"REQUEST_LOG"`

	MaxBodyBytes          int64 `json:"max_body_bytes" yaml:"max_body_bytes" toml:"max_body_bytes" env:"MAX_BODY_BYTES"`
	PredictTimeoutSeconds int64 `json:"predict_timeout_seconds" yaml:"predict_timeout_seconds" toml:"predict_timeout_seconds" env:"PREDICT_TIMEOUT_SECONDS"`
	ShutdownSeconds       int   `json:"shutdown_seconds" yaml:"shutdown_seconds" toml:"shutdown_seconds" env:"SHUTDOWN_SECONDS"`

	CORS   CORSConfig            `json:"cors" yaml:"cors" toml:"cors" envPrefix:"CORS_"`
	Models map[string]ModelPaths `json:"models" yaml:"models" toml:"models"`
}

// Default returns the built-in configuration.
func Default() Config {
	cfg := Config{
		Addr:            DefaultAddr,
		MaxTokens:       DefaultMaxTokens,
		Device:          string(engine.DeviceAuto),
		LogLevel:        "info",
		LogFormat:       "json",
		RequestLog:      "info",
		MaxBodyBytes:    DefaultMaxBodyBytes,
		ShutdownSeconds: DefaultShutdownSeconds,
		CORS: CORSConfig{
			Enabled:          true,
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD"},
			AllowedHeaders:   []string{"*"},
			AllowCredentials: true,
		},
		Models: make(map[string]ModelPaths, len(types.KnownModels)),
	}
	for _, s := range registry.DefaultSpecs() {
		cfg.Models[string(s.ID)] = ModelPaths{Tokenizer: s.TokenizerDir, Checkpoint: s.CheckpointDir}
	}
	return cfg
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("addr is required")
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("max_tokens must be positive, got %d", c.MaxTokens)
	}
	if _, err := engine.ParseDevice(c.Device); err != nil {
		return err
	}
	if c.IntraOpThreads < 0 {
		return fmt.Errorf("intra_op_threads must not be negative")
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("unsupported log_format %q (want json or console)", c.LogFormat)
	}
	switch c.RequestLog {
	case "off", "error", "info", "debug":
	default:
		return fmt.Errorf("unsupported request_log %q (want off, error, info or debug)", c.RequestLog)
	}
	if c.PredictTimeoutSeconds < 0 {
		return fmt.Errorf("predict_timeout_seconds must not be negative")
	}
	keys := make([]string, 0, len(c.Models))
	for k := range c.Models {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if _, ok := types.ParseModelID(k); !ok {
			return fmt.Errorf("unknown model %q in models (want one of %v)", k, types.KnownModels)
		}
	}
	return nil
}

// ModelSpecs returns one registry spec per served model. Entries missing from
// Models, or with empty paths, fall back to the default layout.
func (c Config) ModelSpecs() []registry.Spec {
	specs := registry.DefaultSpecs()
	for i, s := range specs {
		p, ok := c.Models[string(s.ID)]
		if !ok {
			continue
		}
		if p.Tokenizer != "" {
			specs[i].TokenizerDir = p.Tokenizer
		}
		if p.Checkpoint != "" {
			specs[i].CheckpointDir = p.Checkpoint
		}
	}
	return specs
}
