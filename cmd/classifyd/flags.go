package main

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"classifyd/internal/config"
)

// registerFlags declares the flags that override config values. Defaults shown
// in --help are the built-in ones; a flag only wins when set explicitly.
func registerFlags(fs *pflag.FlagSet) {
	d := config.Default()
	fs.String("addr", d.Addr, "HTTP listen address")
	fs.String("models-dir", d.ModelsDir, "Base directory for relative model paths (default: executable directory)")
	fs.Int("max-tokens", d.MaxTokens, "Token limit; longer inputs are truncated")
	fs.String("device", d.Device, "Compute device: auto|cpu|cuda")
	fs.String("onnxruntime-lib", d.OnnxRuntimeLib, "Path to the onnxruntime shared library")
	fs.Int("intra-op-threads", d.IntraOpThreads, "onnxruntime intra-op threads (0 = runtime default)")
	fs.String("log-level", d.LogLevel, "Log level: debug|info|warn|error")
	fs.String("log-format", d.LogFormat, "Log format: json|console")
	fs.String("request-log", d.RequestLog, "Per-request log level: off|error|info|debug")
	fs.Int64("max-body-bytes", d.MaxBodyBytes, "Maximum request body size in bytes")
	fs.Int64("predict-timeout", d.PredictTimeoutSeconds, "Per-request prediction timeout in seconds (0 disables)")
	fs.Int("shutdown-timeout", d.ShutdownSeconds, "Graceful shutdown timeout in seconds")
	fs.Bool("cors", d.CORS.Enabled, "Enable CORS")
	fs.String("cors-origins", strings.Join(d.CORS.AllowedOrigins, ","), "Comma-separated allowed CORS origins")
}

// loadConfig layers defaults, the optional config file, the environment and
// explicitly set flags, then validates the result.
func loadConfig(fs *pflag.FlagSet, path string) (config.Config, error) {
	cfg := config.Default()
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return cfg, fmt.Errorf("load config %s: %w", path, err)
		}
	}
	if err := config.ApplyEnv(&cfg); err != nil {
		return cfg, err
	}
	if err := applyFlags(fs, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func applyFlags(fs *pflag.FlagSet, cfg *config.Config) error {
	var err error
	fs.Visit(func(f *pflag.Flag) {
		if err != nil {
			return
		}
		switch f.Name {
		case "addr":
			cfg.Addr, err = fs.GetString(f.Name)
		case "models-dir":
			cfg.ModelsDir, err = fs.GetString(f.Name)
		case "max-tokens":
			cfg.MaxTokens, err = fs.GetInt(f.Name)
		case "device":
			cfg.Device, err = fs.GetString(f.Name)
		case "onnxruntime-lib":
			cfg.OnnxRuntimeLib, err = fs.GetString(f.Name)
		case "intra-op-threads":
			cfg.IntraOpThreads, err = fs.GetInt(f.Name)
		case "log-level":
			cfg.LogLevel, err = fs.GetString(f.Name)
		case "log-format":
			cfg.LogFormat, err = fs.GetString(f.Name)
		case "request-log":
			cfg.RequestLog, err = fs.GetString(f.Name)
		case "max-body-bytes":
			cfg.MaxBodyBytes, err = fs.GetInt64(f.Name)
		case "predict-timeout":
			cfg.PredictTimeoutSeconds, err = fs.GetInt64(f.Name)
		case "shutdown-timeout":
			cfg.ShutdownSeconds, err = fs.GetInt(f.Name)
		case "cors":
			cfg.CORS.Enabled, err = fs.GetBool(f.Name)
		case "cors-origins":
			var v string
			v, err = fs.GetString(f.Name)
			cfg.CORS.AllowedOrigins = splitCSV(v)
		}
	})
	return err
}

// splitCSV splits a comma-separated list, trimming blanks and dropping empties.
func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
