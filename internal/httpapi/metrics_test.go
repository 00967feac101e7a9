package httpapi

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

// TestMetricsEndpoint_ExposesRequestCounters verifies that requests served by
// the mux show up on its own /metrics endpoint.
func TestMetricsEndpoint_ExposesRequestCounters(t *testing.T) {
	h := NewMux(&mockService{ready: true})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	mrr := httptest.NewRecorder()
	h.ServeHTTP(mrr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if mrr.Code != http.StatusOK {
		t.Fatalf("/metrics status=%d", mrr.Code)
	}
	body := mrr.Body.Bytes()
	if !bytes.Contains(body, []byte("classifyd_http_requests_total")) {
		// clip body preview to avoid large logs
		previewLen := len(body)
		if previewLen > 200 {
			previewLen = 200
		}
		t.Fatalf("expected to find classifyd_http_requests_total in metrics; got: %q", string(body[:previewLen]))
	}
}

// TestMetricsMiddleware_UsesRoutePattern ensures requests are labeled by the
// chi route pattern, never by the raw URL path.
func TestMetricsMiddleware_UsesRoutePattern(t *testing.T) {
	h := NewMux(&mockService{})
	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("/predict/{model}", "POST", "404"))
	rec := postJSON(h, "/predict/nope", `{"text":"x"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if got := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("/predict/{model}", "POST", "404")); got != before+1 {
		t.Fatalf("route-pattern counter=%v want %v", got, before+1)
	}

	before = testutil.ToFloat64(httpRequestsTotal.WithLabelValues("/email", "POST", "200"))
	postJSON(h, "/email", `{"text":"x"}`)
	if got := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("/email", "POST", "200")); got != before+1 {
		t.Fatalf("/email counter=%v want %v", got, before+1)
	}
}

func TestMetricsMiddleware_UnmatchedRoutes(t *testing.T) {
	h := NewMux(&mockService{})
	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("unmatched", "GET", "404"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/no/such/path/123", nil))
	if got := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("unmatched", "GET", "404")); got != before+1 {
		t.Fatalf("unmatched counter=%v want %v", got, before+1)
	}
}
