package http

import (
	"net/http"
	"net/url"
	"strings"

	"tripflow/internal/validation"
	"tripflow/internal/weather"
)

// GET /weather/{location}
// Proxies current conditions for a location, served from cache when fresh.
func (s *Server) handleWeather(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErr(w, http.StatusMethodNotAllowed, "method not allowed", "")
		return
	}
	if s.weather == nil {
		s.writeErr(w, http.StatusNotImplemented, "weather lookups are not configured", "")
		return
	}

	location := strings.TrimPrefix(r.URL.Path, "/weather/")
	if unescaped, err := url.PathUnescape(location); err == nil {
		location = unescaped
	}
	if err := validation.ValidateLocation(location); err != nil {
		s.writeErr(w, http.StatusBadRequest, "invalid location", err.Error())
		return
	}

	cur, err := s.weather.Current(r.Context(), location)
	if err != nil {
		s.writeErr(w, http.StatusBadGateway, "weather lookup failed", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, weather.Report{Current: *cur})
}
