package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"tripflow/internal/observability"
)

func TestRequestIDMiddleware(t *testing.T) {
	var seen string
	h := ApplyMiddlewares(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = observability.RequestIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}), RequestIDMiddleware())

	t.Run("generates an id", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		if seen == "" {
			t.Fatal("no request id in context")
		}
		if got := rec.Header().Get(requestIDHeader); got != seen {
			t.Fatalf("header %q != context %q", got, seen)
		}
	})

	t.Run("preserves a clean incoming id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		req.Header.Set(requestIDHeader, "abc-123")
		h.ServeHTTP(httptest.NewRecorder(), req)
		if seen != "abc-123" {
			t.Fatalf("request id = %q, want abc-123", seen)
		}
	})

	t.Run("replaces a malformed id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		req.Header.Set(requestIDHeader, "bad id\nwith newline")
		h.ServeHTTP(httptest.NewRecorder(), req)
		if seen == "bad id\nwith newline" {
			t.Fatal("malformed id was not replaced")
		}
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	h := ApplyMiddlewares(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}), RateLimitMiddleware(RateLimitConfig{RequestsPerSecond: 1, Burst: 2}, observability.Discard()))

	statuses := make([]int, 0, 4)
	for i := 0; i < 4; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/session/turn", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		h.ServeHTTP(rec, req)
		statuses = append(statuses, rec.Code)
	}
	if statuses[0] != http.StatusOK || statuses[1] != http.StatusOK {
		t.Fatalf("burst requests rejected: %v", statuses)
	}
	limited := 0
	for _, s := range statuses {
		if s == http.StatusTooManyRequests {
			limited++
		}
	}
	if limited == 0 {
		t.Fatalf("no request was rate limited: %v", statuses)
	}

	// A different client gets its own bucket.
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/session/turn", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("second client limited: %d", rec.Code)
	}
}

func TestLoggingMiddlewareRecoversPanic(t *testing.T) {
	metrics := observability.NewMetrics("")
	h := ApplyMiddlewares(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}), LoggingMiddleware(observability.Discard(), metrics))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/session/turn", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}
