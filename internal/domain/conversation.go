package domain

// Phase is the discrete stage of the conversation state machine.
type Phase string

const (
	PhaseInitial    Phase = "initial"
	PhaseCollecting Phase = "collecting"
	PhaseConfirming Phase = "confirming"
	PhaseComplete   Phase = "complete"
	PhaseErrored    Phase = "errored"
)

// IsValidPhase reports whether p is a member of the closed phase set.
func IsValidPhase(p Phase) bool {
	switch p {
	case PhaseInitial, PhaseCollecting, PhaseConfirming, PhaseComplete, PhaseErrored:
		return true
	}
	return false
}

// ConversationState is the full dialogue state exchanged with the backend on
// every turn. The client owns it for the lifetime of one session; the backend
// is stateless and receives it in each request.
//
// Itinerary is populated when the phase reaches "complete". After a
// complete -> collecting revision it is retained until a replacement arrives.
type ConversationState struct {
	Phase       Phase            `json:"phase"`
	Preferences PreferenceRecord `json:"preferences"`
	Itinerary   *Itinerary       `json:"itinerary,omitempty"`
}

// NewConversationState returns the session-start state.
func NewConversationState() ConversationState {
	return ConversationState{Phase: PhaseInitial}
}

// Clone returns a deep copy of the state.
func (s ConversationState) Clone() ConversationState {
	out := s
	out.Preferences = s.Preferences.Clone()
	if s.Itinerary != nil {
		it := s.Itinerary.Clone()
		out.Itinerary = &it
	}
	return out
}
