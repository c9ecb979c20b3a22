package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func fakeUpstream(t *testing.T, calls *atomic.Int64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if r.URL.Path != "/current.json" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if q := r.URL.Query().Get("q"); q == "" {
			t.Error("missing q parameter")
		}
		if key := r.URL.Query().Get("key"); key != "test-key" {
			t.Errorf("missing api key, got %q", key)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"current": {
				"temp_c": 21.5,
				"condition": {"text": "Partly cloudy", "icon": "//cdn/weather/116.png"},
				"humidity": 60,
				"wind_kph": 15.1,
				"wind_dir": "NW",
				"feelslike_c": 20.9,
				"uv": 4.0,
				"last_updated": "2025-06-01 14:30"
			}
		}`))
	}))
}

func TestServiceCurrentCaches(t *testing.T) {
	var calls atomic.Int64
	ts := fakeUpstream(t, &calls)
	defer ts.Close()

	svc := NewService(NewClient(ts.URL, "test-key"), NewMemoryCache(time.Minute), nil, nil)

	for i := 0; i < 3; i++ {
		cur, err := svc.Current(context.Background(), "Lisbon")
		if err != nil {
			t.Fatalf("Current: %v", err)
		}
		if cur.TempC != 21.5 || cur.Condition.Text != "Partly cloudy" {
			t.Errorf("unexpected conditions: %+v", cur)
		}
	}
	// Case differences share a cache entry.
	if _, err := svc.Current(context.Background(), "  LISBON "); err != nil {
		t.Fatalf("Current: %v", err)
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("upstream called %d times, want 1", got)
	}
}

func TestServiceCurrentEmptyLocation(t *testing.T) {
	svc := NewService(NewClient("http://unused", "k"), nil, nil, nil)
	if _, err := svc.Current(context.Background(), "   "); err == nil {
		t.Fatal("expected error for empty location")
	}
}

func TestClientUpstreamError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"No matching location found."}}`))
	}))
	defer ts.Close()

	_, err := NewClient(ts.URL, "k").Current(context.Background(), "Nowhereville")
	if err == nil {
		t.Fatal("expected upstream error")
	}
}

func TestActivityNote(t *testing.T) {
	tests := []struct {
		name string
		cur  Current
		want string
	}{
		{"rain", Current{TempC: 18, Condition: Condition{Text: "Light rain"}}, "Rain expected; favor indoor activities."},
		{"snow", Current{TempC: -2, Condition: Condition{Text: "Snow"}}, "Snowy conditions; dress warmly and plan around closures."},
		{"hot", Current{TempC: 33, Condition: Condition{Text: "Sunny"}}, "Hot day; plan water or shaded activities and stay hydrated."},
		{"cold", Current{TempC: 4, Condition: Condition{Text: "Clear"}}, "Cold day; favor indoor activities and warm layers."},
		{"mild", Current{TempC: 20, Condition: Condition{Text: "Partly cloudy"}}, "Good conditions for outdoor activities."},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ActivityNote(&tc.cur); got != tc.want {
				t.Errorf("ActivityNote = %q, want %q", got, tc.want)
			}
		})
	}
}
