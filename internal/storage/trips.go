// Package storage defines persistence interfaces and the in-memory backend.
// SQLite and PostgreSQL backends live in subpackages.
package storage

import (
	"context"

	"tripflow/internal/domain"
)

// TripStore provides storage operations for archived trips.
type TripStore interface {
	// CreateTrip persists a new saved trip.
	CreateTrip(ctx context.Context, trip domain.SavedTrip) error

	// GetTrip returns a saved trip by ID.
	GetTrip(ctx context.Context, id string) (*domain.SavedTrip, error)

	// ListTrips returns all saved trips ordered by created_at desc.
	ListTrips(ctx context.Context) ([]domain.SavedTrip, error)

	// DeleteTrip removes a saved trip.
	DeleteTrip(ctx context.Context, id string) error
}

// HealthCheck is implemented by backends with a live connection to verify.
type HealthCheck interface {
	Ping(ctx context.Context) error
}
