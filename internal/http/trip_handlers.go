package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"tripflow/internal/domain"
	"tripflow/internal/storage"
	"tripflow/internal/validation"
)

type createTripRequest struct {
	Title       string                  `json:"title"`
	Preferences domain.PreferenceRecord `json:"preferences"`
	Itinerary   domain.Itinerary        `json:"itinerary"`
}

// /api/v1/trips
func (s *Server) handleTrips(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		trips, err := s.trips.ListTrips(r.Context())
		if err != nil {
			s.writeErr(w, http.StatusInternalServerError, "list trips failed", err.Error())
			return
		}
		writeJSON(w, http.StatusOK, trips)

	case http.MethodPost:
		var req createTripRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.writeErr(w, http.StatusBadRequest, "invalid request body", err.Error())
			return
		}
		if err := validation.ValidateTripTitle(req.Title); err != nil {
			s.writeErr(w, http.StatusBadRequest, "invalid title", err.Error())
			return
		}
		if req.Itinerary.Empty() {
			s.writeErr(w, http.StatusBadRequest, "itinerary must have at least one day", "")
			return
		}

		trip := domain.SavedTrip{
			ID:          uuid.New().String(),
			Title:       strings.TrimSpace(req.Title),
			Preferences: req.Preferences,
			Itinerary:   req.Itinerary,
			CreatedAt:   time.Now().UTC(),
		}
		if err := s.trips.CreateTrip(r.Context(), trip); err != nil {
			s.writeStoreErr(w, err, "create trip failed")
			return
		}
		writeJSON(w, http.StatusCreated, trip)

	default:
		s.writeErr(w, http.StatusMethodNotAllowed, "method not allowed", "")
	}
}

// /api/v1/trips/{id}
func (s *Server) handleTripsSubroutes(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/v1/trips/")
	if id == "" || strings.Contains(id, "/") {
		s.writeErr(w, http.StatusNotFound, "not found", "")
		return
	}

	switch r.Method {
	case http.MethodGet:
		trip, err := s.trips.GetTrip(r.Context(), id)
		if err != nil {
			s.writeStoreErr(w, err, "get trip failed")
			return
		}
		writeJSON(w, http.StatusOK, trip)

	case http.MethodDelete:
		if err := s.trips.DeleteTrip(r.Context(), id); err != nil {
			s.writeStoreErr(w, err, "delete trip failed")
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		s.writeErr(w, http.StatusMethodNotAllowed, "method not allowed", "")
	}
}

// writeStoreErr maps storage sentinel errors to HTTP status codes.
func (s *Server) writeStoreErr(w http.ResponseWriter, err error, msg string) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		s.writeErr(w, http.StatusNotFound, "trip not found", "")
	case errors.Is(err, storage.ErrConflict):
		s.writeErr(w, http.StatusConflict, "trip already exists", "")
	case errors.Is(err, storage.ErrValidation):
		s.writeErr(w, http.StatusBadRequest, msg, err.Error())
	default:
		s.writeErr(w, http.StatusInternalServerError, msg, err.Error())
	}
}
