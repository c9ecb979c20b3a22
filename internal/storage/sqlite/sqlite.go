// Package sqlite provides a TripStore backed by a local SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	_ "modernc.org/sqlite" // CGO-less SQLite driver

	"tripflow/internal/domain"
	"tripflow/internal/storage"
)

const schema = `
CREATE TABLE IF NOT EXISTS trips (
	id          TEXT PRIMARY KEY,
	title       TEXT NOT NULL,
	preferences TEXT NOT NULL,
	itinerary   TEXT NOT NULL,
	created_at  TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_trips_created_at ON trips(created_at DESC);
`

// Store implements storage.TripStore backed by SQLite.
type Store struct {
	db *sql.DB
}

var _ storage.TripStore = (*Store)(nil)

// New opens (or creates) the database at dsn and applies the schema.
func New(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA journal_mode=WAL; PRAGMA busy_timeout=5000; PRAGMA foreign_keys=ON;`); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// Ping checks database connectivity.
func (s *Store) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

func (s *Store) CreateTrip(ctx context.Context, trip domain.SavedTrip) error {
	if trip.ID == "" || trip.Title == "" {
		return storage.ErrValidation
	}
	prefs, err := json.Marshal(trip.Preferences)
	if err != nil {
		return err
	}
	itin, err := json.Marshal(trip.Itinerary)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO trips (id, title, preferences, itinerary, created_at) VALUES (?, ?, ?, ?, ?)`,
		trip.ID, trip.Title, string(prefs), string(itin),
		trip.CreatedAt.UTC().Format(time.RFC3339),
	)
	return storage.WrapIfConflict(err)
}

func (s *Store) GetTrip(ctx context.Context, id string) (*domain.SavedTrip, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, title, preferences, itinerary, created_at FROM trips WHERE id = ?`, id)
	trip, err := scanTrip(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return trip, nil
}

func (s *Store) ListTrips(ctx context.Context) ([]domain.SavedTrip, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, preferences, itinerary, created_at FROM trips ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.SavedTrip{}
	for rows.Next() {
		trip, err := scanTrip(rows.Scan)
		if err != nil {
			return nil, err
		}
		result = append(result, *trip)
	}
	return result, rows.Err()
}

func (s *Store) DeleteTrip(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM trips WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func scanTrip(scan func(dest ...any) error) (*domain.SavedTrip, error) {
	var trip domain.SavedTrip
	var prefs, itin, createdAt string
	if err := scan(&trip.ID, &trip.Title, &prefs, &itin, &createdAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(prefs), &trip.Preferences); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(itin), &trip.Itinerary); err != nil {
		return nil, err
	}
	trip.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &trip, nil
}
