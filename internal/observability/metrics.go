package observability

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// Metrics collects in-process counters for the service. Thread-safe.
type Metrics struct {
	namespace string

	mu sync.RWMutex
	// HTTP request counters keyed by "method:path:status".
	httpRequests map[string]*atomic.Int64

	turnsTotal       atomic.Int64
	turnFailures     atomic.Int64
	llmPromptTokens  atomic.Int64
	llmOutputTokens  atomic.Int64
	weatherCacheHits atomic.Int64
	weatherCacheMiss atomic.Int64
}

// NewMetrics creates a Metrics collector. Namespace defaults to "tripflow".
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "tripflow"
	}
	return &Metrics{
		namespace:    namespace,
		httpRequests: make(map[string]*atomic.Int64),
	}
}

// RecordHTTPRequest counts one completed HTTP request.
func (m *Metrics) RecordHTTPRequest(method, path string, status int, _ time.Duration) {
	if m == nil {
		return
	}
	key := fmt.Sprintf("%s:%s:%d", method, path, status)

	m.mu.RLock()
	c, ok := m.httpRequests[key]
	m.mu.RUnlock()
	if !ok {
		m.mu.Lock()
		c, ok = m.httpRequests[key]
		if !ok {
			c = &atomic.Int64{}
			m.httpRequests[key] = c
		}
		m.mu.Unlock()
	}
	c.Add(1)
}

// RecordTurn counts one conversation turn, failed or not.
func (m *Metrics) RecordTurn(failed bool) {
	if m == nil {
		return
	}
	m.turnsTotal.Add(1)
	if failed {
		m.turnFailures.Add(1)
	}
}

// RecordLLMUsage adds prompt/output token counts from a completion.
func (m *Metrics) RecordLLMUsage(promptTokens, outputTokens int64) {
	if m == nil {
		return
	}
	m.llmPromptTokens.Add(promptTokens)
	m.llmOutputTokens.Add(outputTokens)
}

// RecordWeatherCache counts a weather cache lookup.
func (m *Metrics) RecordWeatherCache(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.weatherCacheHits.Add(1)
	} else {
		m.weatherCacheMiss.Add(1)
	}
}

// Handler serves the current counters as plain text, one metric per line.
func (m *Metrics) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")

		var b strings.Builder
		ns := m.namespace
		fmt.Fprintf(&b, "%s_turns_total %d\n", ns, m.turnsTotal.Load())
		fmt.Fprintf(&b, "%s_turn_failures_total %d\n", ns, m.turnFailures.Load())
		fmt.Fprintf(&b, "%s_llm_prompt_tokens_total %d\n", ns, m.llmPromptTokens.Load())
		fmt.Fprintf(&b, "%s_llm_output_tokens_total %d\n", ns, m.llmOutputTokens.Load())
		fmt.Fprintf(&b, "%s_weather_cache_hits_total %d\n", ns, m.weatherCacheHits.Load())
		fmt.Fprintf(&b, "%s_weather_cache_misses_total %d\n", ns, m.weatherCacheMiss.Load())

		m.mu.RLock()
		keys := make([]string, 0, len(m.httpRequests))
		for k := range m.httpRequests {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			parts := strings.SplitN(k, ":", 3)
			fmt.Fprintf(&b, "%s_http_requests_total{method=%q,path=%q,status=%q} %d\n",
				ns, parts[0], parts[1], parts[2], m.httpRequests[k].Load())
		}
		m.mu.RUnlock()

		_, _ = w.Write([]byte(b.String()))
	})
}

// TurnsTotal returns the number of recorded turns. Used in tests.
func (m *Metrics) TurnsTotal() int64 { return m.turnsTotal.Load() }
