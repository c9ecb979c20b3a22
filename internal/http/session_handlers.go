package http

import (
	"encoding/json"
	"net/http"

	"tripflow/internal/domain"
	"tripflow/internal/validation"
)

// turnEnvelope is the wire shape shared by requests and responses on the
// session endpoints.
type turnEnvelope struct {
	Message string                    `json:"message"`
	State   *domain.ConversationState `json:"state"`
}

// POST /session/start
// Returns the greeting and a fresh conversation state.
func (s *Server) handleSessionStart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeErr(w, http.StatusMethodNotAllowed, "method not allowed", "")
		return
	}
	msg, state := s.planner.StartSession(r.Context())
	writeJSON(w, http.StatusOK, turnEnvelope{Message: msg, State: &state})
}

// POST /session/turn
// Body: {"message": "...", "state": {...}}. Advances the dialogue one turn.
func (s *Server) handleSessionTurn(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeErr(w, http.StatusMethodNotAllowed, "method not allowed", "")
		return
	}

	var req turnEnvelope
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.metrics.RecordTurn(true)
		s.writeErr(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := validation.ValidateUtterance(req.Message); err != nil {
		s.metrics.RecordTurn(true)
		s.writeErr(w, http.StatusBadRequest, "invalid message", err.Error())
		return
	}
	if req.State == nil {
		s.metrics.RecordTurn(true)
		s.writeErr(w, http.StatusBadRequest, "state is required", "")
		return
	}
	if !domain.IsValidPhase(req.State.Phase) {
		s.metrics.RecordTurn(true)
		s.writeErr(w, http.StatusBadRequest, "unknown phase", string(req.State.Phase))
		return
	}

	reply, state := s.planner.Turn(r.Context(), req.Message, *req.State)
	s.metrics.RecordTurn(false)
	writeJSON(w, http.StatusOK, turnEnvelope{Message: reply, State: &state})
}
