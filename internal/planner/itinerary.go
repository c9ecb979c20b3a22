package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"

	"tripflow/internal/domain"
	"tripflow/internal/planner/llm"
	"tripflow/internal/weather"
)

const maxItineraryDays = 30

// generateItinerary builds the plan for a complete preference record. The
// LLM path is tried first; any failure falls through to the deterministic
// builder so a completed conversation always gets an itinerary.
func (s *Service) generateItinerary(ctx context.Context, prefs domain.PreferenceRecord) domain.Itinerary {
	var it domain.Itinerary
	var fromLLM bool
	if s.provider != nil && s.provider.Available() {
		generated, err := s.generateWithLLM(ctx, prefs)
		if err != nil {
			s.logger.Warn("llm generation failed, using built-in planner",
				"provider", s.provider.Name(), "error", err)
		} else {
			it = generated
			fromLLM = true
		}
	}
	if !fromLLM {
		it = buildFallbackItinerary(prefs)
	}

	normalizeItinerary(&it, prefs.DurationDays)
	s.attachWeather(ctx, &it, prefs.Destination)
	return it
}

func (s *Service) generateWithLLM(ctx context.Context, prefs domain.PreferenceRecord) (domain.Itinerary, error) {
	interests := "general sightseeing"
	if len(prefs.Interests) > 0 {
		interests = strings.Join(prefs.Interests, ", ")
	}
	userPrompt := fmt.Sprintf(
		"Create a %d-day itinerary for %s. Budget tier: %s. Interests: %s.",
		prefs.DurationDays, prefs.Destination, prefs.BudgetTier, interests)

	resp, err := s.provider.Complete(ctx, []llm.Message{
		{Role: "system", Content: generationSystemPrompt},
		{Role: "user", Content: userPrompt},
	}, llm.Options{MaxTokens: s.llmConfig.MaxTokens, Temperature: s.llmConfig.Temperature})
	if err != nil {
		return domain.Itinerary{}, err
	}
	s.metrics.RecordLLMUsage(resp.PromptTokens, resp.OutputTokens)

	var it domain.Itinerary
	if err := json.Unmarshal([]byte(extractJSONBlock(resp.Content)), &it); err != nil {
		return domain.Itinerary{}, fmt.Errorf("parse itinerary: %w", err)
	}
	if it.Empty() {
		return domain.Itinerary{}, fmt.Errorf("itinerary has no days")
	}
	return it, nil
}

// extractJSONBlock strips markdown fences and surrounding prose, leaving the
// outermost JSON object. Models occasionally wrap output despite instructions.
func extractJSONBlock(content string) string {
	content = strings.TrimSpace(content)
	if i := strings.Index(content, "```"); i >= 0 {
		content = content[i+3:]
		content = strings.TrimPrefix(content, "json")
		if j := strings.Index(content, "```"); j >= 0 {
			content = content[:j]
		}
	}
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start >= 0 && end > start {
		return content[start : end+1]
	}
	return content
}

// normalizeItinerary enforces sequential day numbers, ascending activity
// times, and the duration cap.
func normalizeItinerary(it *domain.Itinerary, wantDays int) {
	if wantDays > maxItineraryDays {
		wantDays = maxItineraryDays
	}
	if wantDays > 0 && len(it.Days) > wantDays {
		it.Days = it.Days[:wantDays]
	}
	for i := range it.Days {
		it.Days[i].DayNumber = i + 1
		sort.SliceStable(it.Days[i].Activities, func(a, b int) bool {
			return it.Days[i].Activities[a].Time < it.Days[i].Activities[b].Time
		})
	}
}

// attachWeather decorates the plan with current conditions. Lookup failures
// leave the itinerary without weather rather than failing the turn.
func (s *Service) attachWeather(ctx context.Context, it *domain.Itinerary, destination string) {
	if s.weather == nil {
		return
	}
	cur, err := s.weather.Current(ctx, destination)
	if err != nil {
		return
	}
	note := weather.ActivityNote(cur)
	for i := range it.Days {
		if it.Days[i].WeatherOverview == nil {
			it.Days[i].WeatherOverview = &domain.WeatherOverview{
				Condition:   cur.Condition.Text,
				Temperature: cur.TempC,
				Note:        note,
			}
		}
	}
	it.WeatherSummary = fmt.Sprintf("Current weather in %s: %s, %.0f°C. %s",
		destination, cur.Condition.Text, cur.TempC, note)
}

type activityTemplate struct {
	time     string
	name     string
	location string
	desc     string
}

// Interest-specific day parts. Each template is instantiated with the
// destination name at build time.
var interestActivities = map[string][]activityTemplate{
	"food": {
		{"12:30", "Local food tour", "Old town", "Sample regional specialties with a guided tasting walk."},
		{"19:00", "Dinner at a neighborhood favorite", "City center", "A well-reviewed spot serving traditional dishes."},
	},
	"history": {
		{"09:30", "Historic district walk", "Old town", "Explore landmarks and learn the city's story."},
		{"14:00", "Heritage site visit", "Main historic site", "Tour the area's most significant monument."},
	},
	"culture": {
		{"10:00", "Cultural quarter visit", "Arts district", "Browse local craft shops and cultural venues."},
		{"17:00", "Traditional performance", "City theater", "Catch a local music or dance performance."},
	},
	"art": {
		{"10:00", "Museum morning", "Main museum", "See the permanent collection before the crowds."},
		{"15:00", "Gallery hop", "Gallery district", "Visit a cluster of contemporary galleries."},
	},
	"nature": {
		{"09:00", "City park stroll", "Central park", "An easy walk through green space and viewpoints."},
		{"14:30", "Botanical garden", "Botanical garden", "Wander themed gardens at your own pace."},
	},
	"hiking": {
		{"08:30", "Morning trail hike", "Nearby trailhead", "A half-day hike with panoramic views."},
	},
	"adventure": {
		{"09:00", "Outdoor adventure outing", "Adventure park", "A guided activity with a bit of adrenaline."},
	},
	"nightlife": {
		{"21:00", "Evening out", "Nightlife district", "Bar-hop through the liveliest streets."},
	},
	"shopping": {
		{"11:00", "Market browse", "Central market", "Pick up local goods and souvenirs."},
	},
	"beach": {
		{"10:00", "Beach morning", "City beach", "Swim, sunbathe, or walk the shoreline."},
	},
	"music": {
		{"20:00", "Live music night", "Music venue", "Hear local acts at an intimate venue."},
	},
	"architecture": {
		{"10:30", "Architecture walk", "City center", "A self-guided route past the signature buildings."},
	},
	"wine": {
		{"16:00", "Wine tasting", "Wine bar", "Taste a flight of regional wines."},
	},
	"relaxation": {
		{"15:00", "Spa afternoon", "Wellness center", "Unwind with a massage or thermal baths."},
	},
}

var genericActivities = []activityTemplate{
	{"09:00", "City orientation walk", "City center", "Get your bearings with a loop past the main sights."},
	{"12:30", "Lunch at a local cafe", "City center", "Try the everyday food locals actually eat."},
	{"14:30", "Landmark visit", "Main square", "See the city's best-known sight up close."},
	{"16:30", "Viewpoint at golden hour", "Scenic overlook", "Photograph the skyline in the best light."},
	{"19:00", "Dinner in a lively neighborhood", "Popular district", "End the day with a relaxed meal."},
}

var costByTier = map[domain.BudgetTier]string{
	domain.BudgetTierBudget:   "$5-15",
	domain.BudgetTierModerate: "$20-50",
	domain.BudgetTierLuxury:   "$80-200",
}

var tipsByTier = map[domain.BudgetTier][]string{
	domain.BudgetTierBudget: {
		"Use public transport day passes to keep costs down.",
		"Many museums have free or discounted entry days.",
		"Lunch menus are far cheaper than dinner at the same restaurants.",
	},
	domain.BudgetTierModerate: {
		"Book popular attractions a day or two ahead to skip lines.",
		"Mix one splurge meal per day with casual options.",
		"A transit card usually beats ride-hailing for city distances.",
	},
	domain.BudgetTierLuxury: {
		"Ask your hotel concierge for hard-to-get reservations.",
		"Private guides make short visits dramatically more efficient.",
		"Book spa and fine dining slots before you arrive.",
	},
}

// buildFallbackItinerary assembles a plan from the template catalog. Output
// is deterministic for a given preference record.
func buildFallbackItinerary(prefs domain.PreferenceRecord) domain.Itinerary {
	days := prefs.DurationDays
	if days < 1 {
		days = 1
	}
	if days > maxItineraryDays {
		days = maxItineraryDays
	}

	pool := lo.FlatMap(prefs.Interests, func(interest string, _ int) []activityTemplate {
		return interestActivities[strings.ToLower(interest)]
	})

	cost := costByTier[prefs.BudgetTier]

	it := domain.Itinerary{Days: make([]domain.DayPlan, 0, days)}
	poolIdx := 0
	for d := 1; d <= days; d++ {
		acts := make([]domain.Activity, 0, 4)
		// Two interest-driven slots per day when available, generic filler
		// for the rest.
		for n := 0; n < 2 && poolIdx < len(pool); n++ {
			acts = append(acts, materialize(pool[poolIdx], prefs.Destination, cost))
			poolIdx++
		}
		for _, tpl := range genericActivities {
			if len(acts) >= 4 {
				break
			}
			if hasTimeSlot(acts, tpl.time) {
				continue
			}
			acts = append(acts, materialize(tpl, prefs.Destination, cost))
		}
		sort.SliceStable(acts, func(a, b int) bool { return acts[a].Time < acts[b].Time })
		it.Days = append(it.Days, domain.DayPlan{DayNumber: d, Activities: acts})
	}

	focus := "the highlights"
	if len(prefs.Interests) > 0 {
		focus = strings.Join(prefs.Interests, ", ")
	}
	it.Summary = fmt.Sprintf("A %d-day %s trip to %s focused on %s.",
		days, prefs.BudgetTier, prefs.Destination, focus)
	it.Tips = append([]string(nil), tipsByTier[prefs.BudgetTier]...)
	return it
}

func materialize(tpl activityTemplate, destination, cost string) domain.Activity {
	return domain.Activity{
		Time:          tpl.time,
		Name:          tpl.name,
		Location:      fmt.Sprintf("%s, %s", tpl.location, destination),
		Description:   tpl.desc,
		EstimatedCost: cost,
	}
}

func hasTimeSlot(acts []domain.Activity, t string) bool {
	return lo.SomeBy(acts, func(a domain.Activity) bool { return a.Time == t })
}
