package domain

import "time"

// SavedTrip is a completed itinerary archived by the traveler, together with
// the preferences that produced it.
type SavedTrip struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Preferences PreferenceRecord `json:"preferences"`
	Itinerary   Itinerary        `json:"itinerary"`
	CreatedAt   time.Time        `json:"created_at"`
}
