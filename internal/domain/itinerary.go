package domain

// Activity is a single scheduled item within a day.
type Activity struct {
	Time          string `json:"time"` // HH:MM, 24h
	Name          string `json:"name"`
	Location      string `json:"location,omitempty"`
	Description   string `json:"description,omitempty"`
	WeatherNote   string `json:"weather_note,omitempty"`
	EstimatedCost string `json:"estimated_cost,omitempty"`
}

// WeatherOverview summarizes expected conditions for one day.
type WeatherOverview struct {
	Condition   string  `json:"condition"`
	Temperature float64 `json:"temperature"`
	Note        string  `json:"note,omitempty"`
}

// DayPlan is one day of the itinerary. Activities are ordered by ascending
// time.
type DayPlan struct {
	DayNumber       int              `json:"day_number"`
	WeatherOverview *WeatherOverview `json:"weather_overview,omitempty"`
	Activities      []Activity       `json:"activities"`
}

// Itinerary is the generated travel plan projected out of the conversation
// state once the dialogue completes.
type Itinerary struct {
	Days           []DayPlan `json:"days"`
	Summary        string    `json:"summary,omitempty"`
	Tips           []string  `json:"tips,omitempty"`
	WeatherSummary string    `json:"weather_summary,omitempty"`
}

// Empty reports whether the itinerary has no days.
func (it Itinerary) Empty() bool { return len(it.Days) == 0 }

// Clone returns a deep copy of the itinerary.
func (it Itinerary) Clone() Itinerary {
	out := it
	if it.Days != nil {
		out.Days = make([]DayPlan, len(it.Days))
		for i, d := range it.Days {
			nd := d
			if d.WeatherOverview != nil {
				w := *d.WeatherOverview
				nd.WeatherOverview = &w
			}
			if d.Activities != nil {
				nd.Activities = make([]Activity, len(d.Activities))
				copy(nd.Activities, d.Activities)
			}
			out.Days[i] = nd
		}
	}
	if it.Tips != nil {
		out.Tips = make([]string, len(it.Tips))
		copy(out.Tips, it.Tips)
	}
	return out
}
