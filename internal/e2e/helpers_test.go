package e2e

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"classifyd/internal/engine/enginetest"
	"classifyd/internal/httpapi"
	"classifyd/internal/manager"
	"classifyd/internal/registry/registrytest"
)

// newServer wires the fake engine through the registry, manager and router,
// the same way the daemon does with onnxruntime.
func newServer(t *testing.T, be *enginetest.Backend, maxTokens int) (*httptest.Server, *manager.Manager, *manager.MemoryPublisher) {
	t.Helper()
	pub := manager.NewMemoryPublisher()
	mgr := manager.NewWithConfig(manager.ManagerConfig{
		Registry:  registrytest.Load(t, be, maxTokens),
		Publisher: pub,
	})
	srv := httptest.NewServer(httpapi.NewMux(mgr))
	t.Cleanup(srv.Close)
	return srv, mgr, pub
}

func httpGet(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	return resp, b
}

func postText(t *testing.T, url, text string) (*http.Response, []byte) {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"text": text})
	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	return resp, b
}
