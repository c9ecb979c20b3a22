package weather

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tripflow/internal/observability"
)

// DefaultTTL bounds how long conditions are served from cache.
const DefaultTTL = 10 * time.Minute

// Service answers location lookups through the cache.
type Service struct {
	client  *Client
	cache   Cache
	logger  observability.Logger
	metrics *observability.Metrics
}

// NewService wires the upstream client with a cache. A nil cache disables
// caching (every lookup hits the upstream).
func NewService(client *Client, cache Cache, logger observability.Logger, metrics *observability.Metrics) *Service {
	if logger == nil {
		logger = observability.Discard()
	}
	return &Service{client: client, cache: cache, logger: logger, metrics: metrics}
}

// Current returns conditions for a location, from cache when fresh.
func (s *Service) Current(ctx context.Context, location string) (*Current, error) {
	key := strings.ToLower(strings.TrimSpace(location))
	if key == "" {
		return nil, fmt.Errorf("location is required")
	}

	if s.cache != nil {
		if cur, ok := s.cache.Get(ctx, key); ok {
			s.metrics.RecordWeatherCache(true)
			return cur, nil
		}
		s.metrics.RecordWeatherCache(false)
	}

	cur, err := s.client.Current(ctx, location)
	if err != nil {
		s.logger.Warn("weather lookup failed", "location", location, "error", err)
		return nil, err
	}
	if s.cache != nil {
		s.cache.Set(ctx, key, cur)
	}
	return cur, nil
}

// ActivityNote suggests how conditions should steer the day's plan. The
// thresholds mirror the recommendation rules the itinerary uses.
func ActivityNote(cur *Current) string {
	cond := strings.ToLower(cur.Condition.Text)
	switch {
	case strings.Contains(cond, "rain") || strings.Contains(cond, "shower") || strings.Contains(cond, "drizzle"):
		return "Rain expected; favor indoor activities."
	case strings.Contains(cond, "snow"):
		return "Snowy conditions; dress warmly and plan around closures."
	case cur.TempC > 28:
		return "Hot day; plan water or shaded activities and stay hydrated."
	case cur.TempC < 10:
		return "Cold day; favor indoor activities and warm layers."
	default:
		return "Good conditions for outdoor activities."
	}
}
