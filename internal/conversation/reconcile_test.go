package conversation

import (
	"testing"

	"tripflow/internal/domain"
)

func TestReconcileAppliesValidTransition(t *testing.T) {
	prev := domain.ConversationState{Phase: domain.PhaseCollecting}
	next := domain.ConversationState{
		Phase:       domain.PhaseConfirming,
		Preferences: domain.PreferenceRecord{Destination: "Lisbon"},
	}

	res := Reconcile(prev, next)
	if res.PhaseRejected {
		t.Fatal("valid transition flagged as rejected")
	}
	if res.State.Phase != domain.PhaseConfirming {
		t.Errorf("phase = %q, want confirming", res.State.Phase)
	}
	if res.State.Preferences.Destination != "Lisbon" {
		t.Errorf("destination = %q, want Lisbon", res.State.Preferences.Destination)
	}
}

func TestReconcileRejectsPhaseRegressionButKeepsPayload(t *testing.T) {
	prev := domain.ConversationState{
		Phase:       domain.PhaseConfirming,
		Preferences: domain.PreferenceRecord{Destination: "Lisbon", DurationDays: 4},
	}
	next := domain.ConversationState{
		Phase:       domain.PhaseInitial, // bogus regression
		Preferences: domain.PreferenceRecord{BudgetTier: domain.BudgetTierBudget},
	}

	res := Reconcile(prev, next)
	if !res.PhaseRejected {
		t.Fatal("expected phase rejection")
	}
	if res.State.Phase != domain.PhaseConfirming {
		t.Errorf("phase = %q, want retained confirming", res.State.Phase)
	}
	// Slot accumulation stays monotonic even under a buggy backend.
	p := res.State.Preferences
	if p.Destination != "Lisbon" || p.DurationDays != 4 || p.BudgetTier != domain.BudgetTierBudget {
		t.Errorf("preferences not merged: %+v", p)
	}
}

func TestReconcileRetainsItineraryUntilReplaced(t *testing.T) {
	it := &domain.Itinerary{Days: []domain.DayPlan{{DayNumber: 1}}}
	prev := domain.ConversationState{Phase: domain.PhaseComplete, Itinerary: it}
	next := domain.ConversationState{Phase: domain.PhaseCollecting} // revision, no itinerary yet

	res := Reconcile(prev, next)
	if res.State.Itinerary == nil || res.State.Itinerary.Empty() {
		t.Fatal("itinerary dropped during revision; want retained until replaced")
	}
}

func TestReconcileReplacesItinerary(t *testing.T) {
	old := &domain.Itinerary{Days: []domain.DayPlan{{DayNumber: 1}}, Summary: "old"}
	fresh := &domain.Itinerary{Days: []domain.DayPlan{{DayNumber: 1}, {DayNumber: 2}}, Summary: "new"}
	prev := domain.ConversationState{Phase: domain.PhaseCollecting, Itinerary: old}
	next := domain.ConversationState{Phase: domain.PhaseConfirming, Itinerary: fresh}

	res := Reconcile(prev, next)
	if res.State.Itinerary.Summary != "new" {
		t.Errorf("summary = %q, want new", res.State.Itinerary.Summary)
	}
	if len(res.State.Itinerary.Days) != 2 {
		t.Errorf("days = %d, want 2", len(res.State.Itinerary.Days))
	}
}

func TestReconcileDoesNotAliasItinerary(t *testing.T) {
	fresh := &domain.Itinerary{Days: []domain.DayPlan{{DayNumber: 1, Activities: []domain.Activity{{Time: "09:00", Name: "Walk"}}}}}
	res := Reconcile(domain.ConversationState{Phase: domain.PhaseConfirming}, domain.ConversationState{Phase: domain.PhaseComplete, Itinerary: fresh})
	fresh.Days[0].Activities[0].Name = "tampered"
	if res.State.Itinerary.Days[0].Activities[0].Name != "Walk" {
		t.Fatal("reconciled state aliases the incoming itinerary")
	}
}
