package ctl

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"classifyd/internal/engine/enginetest"
	"classifyd/internal/httpapi"
	"classifyd/internal/manager"
	"classifyd/internal/registry/registrytest"
	"classifyd/pkg/types"
)

func startServer(t *testing.T) string {
	t.Helper()
	mgr := manager.New(registrytest.Load(t, &enginetest.Backend{}, 0))
	srv := httptest.NewServer(httpapi.NewMux(mgr))
	t.Cleanup(srv.Close)
	return srv.URL
}

func runCLI(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code := run(context.Background(), args, strings.NewReader(stdin), &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestRun_NoArgsShowsUsageAndExit2(t *testing.T) {
	code, out, _ := runCLI(t, "")
	if code != 2 || !strings.Contains(out, "classifyctl") {
		t.Fatalf("code=%d out=%q", code, out)
	}
}

func TestRun_UnknownCommandExit1(t *testing.T) {
	if code, _, _ := runCLI(t, "", "wat"); code != 1 {
		t.Fatalf("expected exit code 1 for unknown command, got %d", code)
	}
}

func TestPredict_TextArgs(t *testing.T) {
	url := startServer(t)
	code, out, errOut := runCLI(t, "", "--server", url, "predict", "email", "verify", "your", "account")
	if code != 0 {
		t.Fatalf("code=%d stderr=%q", code, errOut)
	}
	if !strings.HasPrefix(out, "email\tprediction=") || !strings.Contains(out, "confidence=") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestPredict_StdinAndJSON(t *testing.T) {
	url := startServer(t)
	code, out, errOut := runCLI(t, "http://phish.example/login\n", "-s", url, "-o", "json", "predict", "url")
	if code != 0 {
		t.Fatalf("code=%d stderr=%q", code, errOut)
	}
	var p types.Prediction
	if err := json.Unmarshal([]byte(out), &p); err != nil {
		t.Fatalf("json: %v (%q)", err, out)
	}
	if p.ModelType != types.ModelURL {
		t.Fatalf("unexpected prediction %+v", p)
	}
}

func TestPredict_UnknownModel(t *testing.T) {
	code, _, errOut := runCLI(t, "", "predict", "spam", "hello")
	if code != 1 || !strings.Contains(errOut, "unknown model") {
		t.Fatalf("code=%d stderr=%q", code, errOut)
	}
}

func TestHealthModelsStatus(t *testing.T) {
	url := startServer(t)
	code, out, _ := runCLI(t, "", "-s", url, "health")
	if code != 0 || out != "healthy\tmodels=umpire,email,url\n" {
		t.Fatalf("health code=%d out=%q", code, out)
	}
	code, out, _ = runCLI(t, "", "-s", url, "models")
	if code != 0 || strings.Count(out, "\n") != 3 || !strings.Contains(out, "max_tokens=512") {
		t.Fatalf("models code=%d out=%q", code, out)
	}
	code, out, _ = runCLI(t, "", "-s", url, "status")
	if code != 0 || !strings.HasPrefix(out, "backend=fake device=cpu") {
		t.Fatalf("status code=%d out=%q", code, out)
	}
}

func TestBadOutputFormat(t *testing.T) {
	if code, _, errOut := runCLI(t, "", "-o", "yaml", "health"); code != 1 || !strings.Contains(errOut, "output format") {
		t.Fatalf("code=%d stderr=%q", code, errOut)
	}
}

type flakyClient struct {
	apiClient
	calls int
}

func (f *flakyClient) Health(ctx context.Context) (types.HealthResponse, error) {
	f.calls++
	if f.calls < 3 {
		return types.HealthResponse{}, errors.New("connection refused")
	}
	return types.HealthResponse{Status: "healthy"}, nil
}

func withClient(t *testing.T, c apiClient) {
	t.Helper()
	old := fnNewClient
	fnNewClient = func(*Config) apiClient { return c }
	t.Cleanup(func() { fnNewClient = old })
}

func TestWait_RetriesUntilHealthy(t *testing.T) {
	fc := &flakyClient{}
	withClient(t, fc)
	code, out, errOut := runCLI(t, "", "wait", "--for", "5s", "--interval", "10ms")
	if code != 0 || out != "healthy\n" || fc.calls != 3 {
		t.Fatalf("code=%d out=%q calls=%d stderr=%q", code, out, fc.calls, errOut)
	}
}

func TestWait_TimesOut(t *testing.T) {
	withClient(t, &flakyClient{calls: -1000})
	cfg := DefaultConfig()
	err := runWait(context.Background(), &cfg, &bytes.Buffer{}, 50*time.Millisecond, 10*time.Millisecond)
	if err == nil || !strings.Contains(err.Error(), "timed out") {
		t.Fatalf("expected timeout, got %v", err)
	}
}

func TestDefaultConfigFromEnv(t *testing.T) {
	t.Setenv("CLASSIFYD_URL", "http://models.internal:9000")
	t.Setenv("CLASSIFYCTL_TIMEOUT", "2s")
	cfg := DefaultConfig()
	if cfg.Server != "http://models.internal:9000" || cfg.Timeout != 2*time.Second {
		t.Fatalf("unexpected cfg %+v", cfg)
	}
	t.Setenv("CLASSIFYCTL_TIMEOUT", "soon")
	if got := DefaultConfig().Timeout; got != 30*time.Second {
		t.Fatalf("bad duration should fall back, got %v", got)
	}
}
