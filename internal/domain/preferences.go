package domain

// BudgetTier classifies the traveler's spending level.
type BudgetTier string

const (
	BudgetTierBudget   BudgetTier = "budget"
	BudgetTierModerate BudgetTier = "moderate"
	BudgetTierLuxury   BudgetTier = "luxury"
)

// IsValidBudgetTier reports whether t is one of the known tiers.
func IsValidBudgetTier(t BudgetTier) bool {
	switch t {
	case BudgetTierBudget, BudgetTierModerate, BudgetTierLuxury:
		return true
	}
	return false
}

// PreferenceRecord is the structured travel preference data accumulated
// over the conversation. A zero value means the slot has not been filled.
//
// InterestsAsked distinguishes "interests not yet asked" from "asked, none
// given": an empty Interests slice alone cannot encode both.
type PreferenceRecord struct {
	Destination    string     `json:"destination,omitempty"`
	DurationDays   int        `json:"duration_days,omitempty"`
	BudgetTier     BudgetTier `json:"budget_tier,omitempty"`
	Interests      []string   `json:"interests,omitempty"`
	InterestsAsked bool       `json:"interests_asked,omitempty"`
}

// Complete reports whether every required slot has been filled.
// Interests count as filled once the question has been asked, even if the
// traveler declined to name any.
func (p PreferenceRecord) Complete() bool {
	return p.Destination != "" &&
		p.DurationDays > 0 &&
		p.BudgetTier != "" &&
		(len(p.Interests) > 0 || p.InterestsAsked)
}

// Clone returns a deep copy of the record.
func (p PreferenceRecord) Clone() PreferenceRecord {
	out := p
	if p.Interests != nil {
		out.Interests = make([]string, len(p.Interests))
		copy(out.Interests, p.Interests)
	}
	return out
}

// FilledSlots counts the filled preference slots. Used to assert monotonic
// slot accumulation.
func (p PreferenceRecord) FilledSlots() int {
	n := 0
	if p.Destination != "" {
		n++
	}
	if p.DurationDays > 0 {
		n++
	}
	if p.BudgetTier != "" {
		n++
	}
	if len(p.Interests) > 0 || p.InterestsAsked {
		n++
	}
	return n
}
