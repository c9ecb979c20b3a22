package conversation

import (
	"tripflow/internal/domain"
)

// Result is the outcome of reconciling a backend-returned state.
type Result struct {
	State domain.ConversationState

	// PhaseRejected is set when the backend's phase violated the transition
	// table and the previous phase was retained. The preference and
	// itinerary payloads are still applied so slot accumulation stays
	// monotonic even under a buggy backend.
	PhaseRejected bool
}

// Reconcile merges a backend-returned state into the previous known-good
// state. The returned state replaces the client's copy wholesale.
//
// The itinerary is retained until replaced: a complete -> collecting
// revision keeps showing the last plan until a new one arrives.
func Reconcile(prev, next domain.ConversationState) Result {
	res := Result{}

	res.State.Preferences = MergePreferences(prev.Preferences, next.Preferences)

	if AllowedTransition(prev.Phase, next.Phase) {
		res.State.Phase = next.Phase
	} else {
		res.State.Phase = prev.Phase
		res.PhaseRejected = true
	}

	switch {
	case next.Itinerary != nil && !next.Itinerary.Empty():
		it := next.Itinerary.Clone()
		res.State.Itinerary = &it
	case prev.Itinerary != nil:
		it := prev.Itinerary.Clone()
		res.State.Itinerary = &it
	}

	return res
}
