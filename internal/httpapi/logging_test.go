package httpapi

import (
	"bytes"
	"errors"
	"log"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]LogLevel{
		"":      LevelOff,
		"off":   LevelOff,
		"error": LevelError,
		"info":  LevelInfo,
		"debug": LevelDebug,
		"weird": LevelInfo, // default
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Fatalf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestRequestLogLevel_Overrides(t *testing.T) {
	defer SetRequestLogLevel("")
	SetRequestLogLevel("error")
	r := httptest.NewRequest("GET", "/x", nil)
	if got := requestLogLevel(r); got != LevelError {
		t.Fatalf("default level not applied: %v", got)
	}
	// query param ?log=debug
	r = httptest.NewRequest("GET", "/x?log=debug", nil)
	if got := requestLogLevel(r); got != LevelDebug {
		t.Fatalf("query override failed: %v", got)
	}
	// shorthand ?log=1
	r = httptest.NewRequest("GET", "/x?log=1", nil)
	if got := requestLogLevel(r); got != LevelDebug {
		t.Fatalf("shorthand query override failed: %v", got)
	}
	// header X-Log-Level
	r = httptest.NewRequest("GET", "/x", nil)
	r.Header.Set("X-Log-Level", "info")
	if got := requestLogLevel(r); got != LevelInfo {
		t.Fatalf("header override failed: %v", got)
	}
}

func TestLogPredict_StdlibFallback(t *testing.T) {
	zlog = nil
	var buf bytes.Buffer
	orig := log.Writer()
	defer log.SetOutput(orig)
	log.SetOutput(&buf)

	r := httptest.NewRequest("POST", "/url", nil)
	logPredict(r, LevelInfo, "url", 200, time.Now(), nil)
	logPredict(r, LevelError, "url", 200, time.Now(), nil)
	logPredict(r, LevelError, "url", 500, time.Now(), errors.New("boom"))
	logPredict(r, LevelOff, "url", 500, time.Now(), errors.New("hidden"))

	out := buf.String()
	if strings.Count(out, "predict end") != 2 {
		t.Fatalf("expected 2 lines, got %q", out)
	}
	if !strings.Contains(out, "status=500") || !strings.Contains(out, "err=boom") || strings.Contains(out, "hidden") {
		t.Fatalf("unexpected output: %q", out)
	}
}
