package storage

import (
	"context"
	"sort"
	"sync"

	"tripflow/internal/domain"
)

// MemoryTripStore is an in-memory implementation of TripStore.
type MemoryTripStore struct {
	mu    sync.RWMutex
	trips map[string]domain.SavedTrip
}

// NewMemoryTripStore creates a new in-memory trip store.
func NewMemoryTripStore() *MemoryTripStore {
	return &MemoryTripStore{trips: make(map[string]domain.SavedTrip)}
}

var _ TripStore = (*MemoryTripStore)(nil)

func (m *MemoryTripStore) CreateTrip(_ context.Context, trip domain.SavedTrip) error {
	if trip.ID == "" || trip.Title == "" {
		return ErrValidation
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.trips[trip.ID]; ok {
		return ErrConflict
	}
	m.trips[trip.ID] = trip
	return nil
}

func (m *MemoryTripStore) GetTrip(_ context.Context, id string) (*domain.SavedTrip, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	trip, ok := m.trips[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &trip, nil
}

func (m *MemoryTripStore) ListTrips(_ context.Context) ([]domain.SavedTrip, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]domain.SavedTrip, 0, len(m.trips))
	for _, t := range m.trips {
		result = append(result, t)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	return result, nil
}

func (m *MemoryTripStore) DeleteTrip(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.trips[id]; !ok {
		return ErrNotFound
	}
	delete(m.trips, id)
	return nil
}
