package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parsedFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("classifyd", pflag.ContinueOnError)
	registerFlags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestLoadConfig_Precedence(t *testing.T) {
	p := filepath.Join(t.TempDir(), "classifyd.yaml")
	require.NoError(t, os.WriteFile(p, []byte("addr: \":7000\"\nmax_tokens: 100\ndevice: cuda\n"), 0o644))
	t.Setenv("CLASSIFYD_MAX_TOKENS", "200")

	cfg, err := loadConfig(parsedFlags(t, "--device=cpu"), p)
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.Addr, "file beats default")
	assert.Equal(t, 200, cfg.MaxTokens, "env beats file")
	assert.Equal(t, "cpu", cfg.Device, "flag beats file")

	cfg, err = loadConfig(parsedFlags(t, "--max-tokens=300"), p)
	require.NoError(t, err)
	assert.Equal(t, 300, cfg.MaxTokens, "flag beats env")
	assert.Equal(t, "cuda", cfg.Device, "unset flag keeps file value")
}

func TestLoadConfig_CORSFlags(t *testing.T) {
	cfg, err := loadConfig(parsedFlags(t, "--cors-origins= https://a.example , https://b.example", "--cors=false"), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
	assert.False(t, cfg.CORS.Enabled)
}

func TestLoadConfig_RequestLog(t *testing.T) {
	cfg, err := loadConfig(parsedFlags(t, "--log-level=warn"), "")
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.RequestLog, "log-level does not leak into request log")

	t.Setenv("CLASSIFYD_REQUEST_LOG", "off")
	cfg, err = loadConfig(parsedFlags(t), "")
	require.NoError(t, err)
	assert.Equal(t, "off", cfg.RequestLog)

	cfg, err = loadConfig(parsedFlags(t, "--request-log=debug"), "")
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.RequestLog, "flag beats env")

	_, err = loadConfig(parsedFlags(t, "--request-log=warn"), "")
	assert.Error(t, err)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := loadConfig(parsedFlags(t), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = loadConfig(parsedFlags(t, "--device=tpu"), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	l, err := newLogger("warn", "json", &buf)
	require.NoError(t, err)
	l.Info().Msg("hidden")
	l.Warn().Msg("shown")
	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"service":"classifyd"`)

	buf.Reset()
	l, err = newLogger("info", "console", &buf)
	require.NoError(t, err)
	l.Info().Msg("console line")
	assert.False(t, strings.HasPrefix(buf.String(), "{"), "console output should not be JSON")

	_, err = newLogger("loud", "json", &buf)
	assert.Error(t, err)
}

func TestRootCmd_StartupErrorLoggedAtFatal(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)
	cmd := newRootCmd(&log)
	cmd.SetArgs([]string{"--device=tpu"})
	err := cmd.Execute()
	require.Error(t, err)

	logStartupError(log, err)
	out := buf.String()
	assert.Contains(t, out, `"level":"fatal"`)
	assert.Contains(t, out, "invalid config")
	assert.Contains(t, out, "classifyd failed")
}
