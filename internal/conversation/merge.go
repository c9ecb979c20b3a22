// Package conversation implements the dialogue state machine core: the
// preference merge rule, the phase transition table, and reconciliation of
// backend-returned state against the client's last known-good state.
package conversation

import (
	"tripflow/internal/domain"
)

// MergePreferences produces the next preference record from the previous one
// and the record asserted by the backend for this turn.
//
// Field-wise last-write-wins, except a slot filled in prev and empty in next
// is retained: the backend only echoes slots it newly extracted or confirmed,
// so an absent field means "nothing new", never "cleared". A genuinely new
// non-empty value always overwrites, which is what lets an explicit user
// correction ("actually, make it 5 days") take effect.
func MergePreferences(prev, next domain.PreferenceRecord) domain.PreferenceRecord {
	out := prev.Clone()

	if next.Destination != "" {
		out.Destination = next.Destination
	}
	if next.DurationDays > 0 {
		out.DurationDays = next.DurationDays
	}
	if next.BudgetTier != "" {
		out.BudgetTier = next.BudgetTier
	}
	if len(next.Interests) > 0 {
		out.Interests = make([]string, len(next.Interests))
		copy(out.Interests, next.Interests)
	}
	// Once asked, always asked.
	if next.InterestsAsked {
		out.InterestsAsked = true
	}

	return out
}
