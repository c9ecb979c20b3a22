package http

import (
	"context"
	"testing"

	"tripflow/internal/domain"
	"tripflow/internal/session"
	"tripflow/internal/transport"
)

// Drives the full client stack (turn transport + session controller) against
// the real handler mux.
func TestEndToEndConversation(t *testing.T) {
	ts := newTestServer(t, nil)
	ctx := context.Background()

	var published []domain.Itinerary
	client := transport.NewClient(ts.URL)
	ctrl := session.NewController(client, session.WithPublisher(func(it domain.Itinerary) {
		published = append(published, it)
	}))

	if err := ctrl.Begin(ctx); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if got := ctrl.State().Phase; got != domain.PhaseInitial {
		t.Fatalf("phase after start = %s", got)
	}

	steps := []struct {
		utterance string
		wantPhase domain.Phase
	}{
		{"I want to visit Lisbon for 4 days with a moderate budget", domain.PhaseCollecting},
		{"food and history", domain.PhaseConfirming},
		{"yes", domain.PhaseComplete},
	}
	for _, step := range steps {
		if err := ctrl.Send(ctx, step.utterance); err != nil {
			t.Fatalf("Send(%q): %v", step.utterance, err)
		}
		if got := ctrl.State().Phase; got != step.wantPhase {
			t.Fatalf("after %q: phase = %s, want %s", step.utterance, got, step.wantPhase)
		}
	}

	state := ctrl.State()
	if state.Itinerary == nil || len(state.Itinerary.Days) != 4 {
		t.Fatalf("expected 4-day itinerary, got %+v", state.Itinerary)
	}
	if len(published) != 1 {
		t.Fatalf("published %d times, want 1", len(published))
	}

	// An acknowledgment in the complete phase must not republish.
	if err := ctrl.Send(ctx, "sounds perfect, thank you!"); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if len(published) != 1 {
		t.Fatalf("published %d times after acknowledgment, want 1", len(published))
	}

	// A revision re-opens collection, keeps the old itinerary around, and
	// publishes the regenerated one after confirmation.
	if err := ctrl.Send(ctx, "actually, change the budget to luxury"); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if got := ctrl.State().Phase; got != domain.PhaseCollecting {
		t.Fatalf("phase after revision = %s", got)
	}
	if ctrl.State().Itinerary == nil {
		t.Fatal("itinerary should be retained during revision")
	}
	if got := ctrl.State().Preferences.BudgetTier; got != domain.BudgetTierLuxury {
		t.Fatalf("budget after revision = %s", got)
	}

	if err := ctrl.Send(ctx, "that's everything"); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if got := ctrl.State().Phase; got != domain.PhaseConfirming {
		t.Fatalf("phase after revision follow-up = %s", got)
	}
	if err := ctrl.Send(ctx, "yes"); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if len(published) != 2 {
		t.Fatalf("published %d times after revision, want 2", len(published))
	}

	// Transcript holds the full exchange: greeting + 2 messages per turn.
	if got := len(ctrl.Transcript()); got != 1+2*7 {
		t.Fatalf("transcript length = %d, want 15", got)
	}
}

func TestEndToEndSlotRetention(t *testing.T) {
	ts := newTestServer(t, nil)
	ctx := context.Background()

	client := transport.NewClient(ts.URL)
	ctrl := session.NewController(client)
	if err := ctrl.Begin(ctx); err != nil {
		t.Fatalf("Begin: %v", err)
	}

	if err := ctrl.Send(ctx, "I'd like to go to Lisbon"); err != nil {
		t.Fatalf("Send: %v", err)
	}
	before := ctrl.State().Preferences.FilledSlots()

	if err := ctrl.Send(ctx, "6 days"); err != nil {
		t.Fatalf("Send: %v", err)
	}
	prefs := ctrl.State().Preferences
	if prefs.Destination != "Lisbon" {
		t.Fatalf("destination lost: %+v", prefs)
	}
	if prefs.DurationDays != 6 {
		t.Fatalf("duration = %d, want 6", prefs.DurationDays)
	}
	if got := prefs.FilledSlots(); got < before {
		t.Fatalf("filled slots regressed: %d -> %d", before, got)
	}
}
