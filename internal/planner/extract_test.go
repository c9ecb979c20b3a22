package planner

import (
	"reflect"
	"testing"

	"tripflow/internal/domain"
)

func TestExtractPreferences(t *testing.T) {
	tests := []struct {
		name      string
		message   string
		expecting slot
		want      domain.PreferenceRecord
	}{
		{
			name:    "destination and duration in one sentence",
			message: "I want to go to Lisbon for 4 days",
			want:    domain.PreferenceRecord{Destination: "Lisbon", DurationDays: 4},
		},
		{
			name:    "multi word destination",
			message: "We're planning a trip to New York next month",
			want:    domain.PreferenceRecord{Destination: "New York"},
		},
		{
			name:    "spelled out week",
			message: "probably a week, somewhere cheap",
			want:    domain.PreferenceRecord{DurationDays: 7, BudgetTier: domain.BudgetTierBudget},
		},
		{
			name:    "luxury keyword",
			message: "money is no object, make it luxury",
			want:    domain.PreferenceRecord{BudgetTier: domain.BudgetTierLuxury},
		},
		{
			name:    "interest aliases collapse",
			message: "we love museums, galleries and street food",
			want:    domain.PreferenceRecord{Interests: []string{"art", "food"}},
		},
		{
			name:      "bare destination answer",
			message:   "Kyoto",
			expecting: slotDestination,
			want:      domain.PreferenceRecord{Destination: "Kyoto"},
		},
		{
			name:      "bare number answer for duration",
			message:   "5",
			expecting: slotDuration,
			want:      domain.PreferenceRecord{DurationDays: 5},
		},
		{
			name:      "gibberish yields nothing",
			message:   "12345 !!!",
			expecting: slotDestination,
			want:      domain.PreferenceRecord{},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := extractPreferences(tc.message, tc.expecting)
			sortInterests(got.Interests)
			sortInterests(tc.want.Interests)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("extractPreferences(%q) = %+v, want %+v", tc.message, got, tc.want)
			}
		})
	}
}

func sortInterests(s []string) {
	for i := 0; i < len(s); i++ {
		for j := i + 1; j < len(s); j++ {
			if s[j] < s[i] {
				s[i], s[j] = s[j], s[i]
			}
		}
	}
}

func TestTrimDestination(t *testing.T) {
	if got := trimDestination("Lisbon for"); got != "Lisbon" {
		t.Errorf("got %q", got)
	}
	if got := trimDestination("New York in"); got != "New York" {
		t.Errorf("got %q", got)
	}
}

func TestBareDestinationRejects(t *testing.T) {
	for _, msg := range []string{"yes", "no thanks", "1234", "this is far too long to be a place name"} {
		if got := bareDestination(msg); got != "" {
			t.Errorf("bareDestination(%q) = %q, want empty", msg, got)
		}
	}
}

func TestWantsRevision(t *testing.T) {
	if !wantsRevision("can we change day two?") {
		t.Error("expected revision intent")
	}
	if wantsRevision("looks great, thanks!") {
		t.Error("unexpected revision intent")
	}
}
