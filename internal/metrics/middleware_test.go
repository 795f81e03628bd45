package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMiddleware_UsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Post("/indexes/{index}/search", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	for _, path := range []string{"/indexes/articles/search", "/indexes/users/search"} {
		req := httptest.NewRequest("POST", path, http.NoBody)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		if rr.Code != http.StatusOK {
			t.Fatalf("%s: status = %d, want 200", path, rr.Code)
		}
	}

	got := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("POST", "/indexes/{index}/search", "200"))
	if got < 2 {
		t.Errorf("requests_total for pattern = %f, want >= 2", got)
	}
	if testutil.CollectAndCount(httpRequestDuration) == 0 {
		t.Error("expected http_request_duration_seconds observations")
	}
}

func TestMiddleware_StatusCodes(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Post("/indexes/{index}/count", func(w http.ResponseWriter, r *http.Request) {
		switch chi.URLParam(r, "index") {
		case "missing":
			w.WriteHeader(http.StatusNotFound)
		case "broken":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			_, _ = w.Write([]byte(`{"count":1}`))
		}
	})

	tests := []struct {
		index  string
		status string
	}{
		{"articles", "200"},
		{"missing", "404"},
		{"broken", "500"},
	}
	for _, tc := range tests {
		t.Run(tc.index, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/indexes/"+tc.index+"/count", http.NoBody)
			r.ServeHTTP(httptest.NewRecorder(), req)

			val := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("POST", "/indexes/{index}/count", tc.status))
			if val < 1 {
				t.Errorf("requests_total with status %s = %f, want >= 1", tc.status, val)
			}
		})
	}
}

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", "unknown"},
		{"/indexes/{index}/search", "/indexes/{index}/search"},
		{"/health", "/health"},
	}
	for _, tc := range tests {
		if got := normalizePath(tc.input); got != tc.expected {
			t.Errorf("normalizePath(%q) = %q, want %q", tc.input, got, tc.expected)
		}
	}
}

func TestObserveEngine(t *testing.T) {
	before := testutil.ToFloat64(EngineRequestsTotal.WithLabelValues("FT.TEST", "error"))
	ObserveEngine("FT.TEST", 0.01, errors.New("boom"))
	ObserveEngine("FT.TEST", 0.02, nil)

	if got := testutil.ToFloat64(EngineRequestsTotal.WithLabelValues("FT.TEST", "error")); got != before+1 {
		t.Errorf("error count = %f, want %f", got, before+1)
	}
	if got := testutil.ToFloat64(EngineRequestsTotal.WithLabelValues("FT.TEST", "ok")); got < 1 {
		t.Errorf("ok count = %f, want >= 1", got)
	}
}
