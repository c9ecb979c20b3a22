package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"tripflow/internal/domain"
)

func sampleTrip(id string, createdAt time.Time) domain.SavedTrip {
	return domain.SavedTrip{
		ID:    id,
		Title: "Lisbon getaway",
		Preferences: domain.PreferenceRecord{
			Destination:  "Lisbon",
			DurationDays: 4,
			BudgetTier:   domain.BudgetTierModerate,
			Interests:    []string{"food"},
		},
		Itinerary: domain.Itinerary{
			Days: []domain.DayPlan{{DayNumber: 1, Activities: []domain.Activity{
				{Time: "09:00", Name: "Castle visit"},
			}}},
		},
		CreatedAt: createdAt,
	}
}

func TestMemoryTripStoreCRUD(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryTripStore()
	now := time.Now().UTC()

	trip := sampleTrip("t1", now)
	if err := store.CreateTrip(ctx, trip); err != nil {
		t.Fatalf("CreateTrip: %v", err)
	}

	got, err := store.GetTrip(ctx, "t1")
	if err != nil {
		t.Fatalf("GetTrip: %v", err)
	}
	if got.Title != "Lisbon getaway" || got.Preferences.Destination != "Lisbon" {
		t.Fatalf("unexpected trip: %+v", got)
	}

	if err := store.DeleteTrip(ctx, "t1"); err != nil {
		t.Fatalf("DeleteTrip: %v", err)
	}
	if _, err := store.GetTrip(ctx, "t1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryTripStoreDuplicateID(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryTripStore()
	now := time.Now().UTC()

	if err := store.CreateTrip(ctx, sampleTrip("t1", now)); err != nil {
		t.Fatalf("CreateTrip: %v", err)
	}
	if err := store.CreateTrip(ctx, sampleTrip("t1", now)); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestMemoryTripStoreValidation(t *testing.T) {
	store := NewMemoryTripStore()
	err := store.CreateTrip(context.Background(), domain.SavedTrip{ID: "t1"})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestMemoryTripStoreListOrder(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryTripStore()
	base := time.Now().UTC()

	for i, id := range []string{"a", "b", "c"} {
		trip := sampleTrip(id, base.Add(time.Duration(i)*time.Hour))
		if err := store.CreateTrip(ctx, trip); err != nil {
			t.Fatalf("CreateTrip(%s): %v", id, err)
		}
	}

	trips, err := store.ListTrips(ctx)
	if err != nil {
		t.Fatalf("ListTrips: %v", err)
	}
	if len(trips) != 3 {
		t.Fatalf("len = %d, want 3", len(trips))
	}
	if trips[0].ID != "c" || trips[1].ID != "b" || trips[2].ID != "a" {
		t.Fatalf("wrong order: %s, %s, %s", trips[0].ID, trips[1].ID, trips[2].ID)
	}
}
