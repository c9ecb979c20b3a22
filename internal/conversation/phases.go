package conversation

import (
	"tripflow/internal/domain"
)

// AllowedTransition reports whether the state machine may move from one
// phase to another in a single turn. Staying in the same phase is always
// allowed (a turn that makes no phase progress), as is entering the errored
// phase from anywhere. A regression outside this table is treated by the
// client as a transport inconsistency, not applied.
func AllowedTransition(from, to domain.Phase) bool {
	if !domain.IsValidPhase(from) || !domain.IsValidPhase(to) {
		return false
	}
	if from == to {
		return true
	}
	if to == domain.PhaseErrored {
		return true
	}

	switch from {
	case domain.PhaseInitial:
		return to == domain.PhaseCollecting
	case domain.PhaseCollecting:
		return to == domain.PhaseConfirming
	case domain.PhaseConfirming:
		return to == domain.PhaseComplete || to == domain.PhaseCollecting
	case domain.PhaseComplete:
		// Revising the itinerary starts a new collection pass in place.
		return to == domain.PhaseCollecting
	case domain.PhaseErrored:
		return to == domain.PhaseCollecting
	}
	return false
}
