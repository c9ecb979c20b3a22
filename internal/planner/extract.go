package planner

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"tripflow/internal/domain"
)

// Deterministic slot extraction. Used as the fallback when no LLM provider
// is configured and whenever the provider fails mid-conversation, so the
// dialogue keeps moving instead of erroring out.

var (
	durationRe = regexp.MustCompile(`(?i)\b(\d{1,2})\s*(?:-?\s*days?|nights?)\b`)

	destinationRe = regexp.MustCompile(
		`(?i)\b(?:go(?:ing)? to|visit(?:ing)?|travel(?:l)?(?:ing)? to|trip to|fly(?:ing)? to|head(?:ing)? to|off to|vacation in|holiday in)\s+([\p{L}][\p{L}' .-]*)`)

	// Words that end a destination capture ("Lisbon for 4 days").
	destinationStopwords = map[string]bool{
		"for": true, "in": true, "on": true, "with": true, "and": true,
		"next": true, "this": true, "during": true, "around": true, "about": true,
	}
)

var budgetKeywords = []struct {
	tier  domain.BudgetTier
	words []string
}{
	{domain.BudgetTierLuxury, []string{"luxury", "luxurious", "high-end", "high end", "5 star", "five star", "upscale", "splurge"}},
	{domain.BudgetTierModerate, []string{"moderate", "mid-range", "mid range", "medium", "average", "comfortable"}},
	{domain.BudgetTierBudget, []string{"budget", "cheap", "affordable", "low cost", "low-cost", "inexpensive", "backpack", "shoestring"}},
}

// interestAliases maps mention variants to canonical interest names.
var interestAliases = map[string]string{
	"food": "food", "foodie": "food", "cuisine": "food", "eating": "food",
	"restaurants": "food", "culinary": "food", "street food": "food",
	"history": "history", "historical": "history", "historic": "history",
	"culture": "culture", "cultural": "culture",
	"art": "art", "arts": "art", "museums": "art", "museum": "art", "galleries": "art",
	"nature": "nature", "outdoors": "nature", "parks": "nature",
	"hiking": "hiking", "trekking": "hiking", "trails": "hiking",
	"adventure": "adventure", "adrenaline": "adventure",
	"nightlife": "nightlife", "bars": "nightlife", "clubs": "nightlife",
	"shopping": "shopping", "markets": "shopping",
	"beach": "beach", "beaches": "beach",
	"music": "music", "concerts": "music",
	"architecture": "architecture",
	"wine": "wine", "wineries": "wine",
	"relaxation": "relaxation", "relaxing": "relaxation", "spa": "relaxation",
}

// wordDurations resolves spelled-out trip lengths.
var wordDurations = []struct {
	phrase string
	days   int
}{
	{"a week", 7},
	{"one week", 7},
	{"two weeks", 14},
	{"a fortnight", 14},
	{"weekend", 2},
	{"a couple of days", 2},
	{"a few days", 3},
}

// extractPreferences pulls newly asserted slots out of one utterance.
// expecting names the slot the previous bot question asked about, which lets
// a bare answer ("Lisbon") fill the right slot.
func extractPreferences(message string, expecting slot) domain.PreferenceRecord {
	var rec domain.PreferenceRecord
	lower := strings.ToLower(message)

	if m := durationRe.FindStringSubmatch(message); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			rec.DurationDays = n
		}
	}
	if rec.DurationDays == 0 {
		for _, wd := range wordDurations {
			if strings.Contains(lower, wd.phrase) {
				rec.DurationDays = wd.days
				break
			}
		}
	}

	for _, bk := range budgetKeywords {
		for _, w := range bk.words {
			if strings.Contains(lower, w) {
				rec.BudgetTier = bk.tier
				break
			}
		}
		if rec.BudgetTier != "" {
			break
		}
	}

	var interests []string
	for alias, canonical := range interestAliases {
		if containsWord(lower, alias) {
			interests = append(interests, canonical)
		}
	}
	if len(interests) > 0 {
		rec.Interests = lo.Uniq(interests)
	}

	if m := destinationRe.FindStringSubmatch(message); m != nil {
		rec.Destination = trimDestination(m[1])
	}
	if rec.Destination == "" && expecting == slotDestination {
		rec.Destination = bareDestination(message)
	}
	if rec.DurationDays == 0 && expecting == slotDuration {
		if n, err := strconv.Atoi(strings.TrimSpace(message)); err == nil && n > 0 && n < 100 {
			rec.DurationDays = n
		}
	}

	return rec
}

// trimDestination cuts a capture like "Lisbon for" down to the place name,
// preserving the user's capitalization.
func trimDestination(capture string) string {
	words := strings.Fields(capture)
	var kept []string
	for _, w := range words {
		if destinationStopwords[strings.ToLower(w)] {
			break
		}
		kept = append(kept, w)
	}
	return strings.Trim(strings.Join(kept, " "), " .,!?")
}

// bareDestination accepts a short free-standing answer to the destination
// question. Returns "" when the answer cannot be a place name.
func bareDestination(message string) string {
	msg := strings.Trim(strings.TrimSpace(message), ".!?,")
	words := strings.Fields(msg)
	if len(words) == 0 || len(words) > 4 {
		return ""
	}
	if !hasLetter(msg) {
		return ""
	}
	lower := strings.ToLower(msg)
	if isAffirmative(lower) || isNegative(lower) {
		return ""
	}
	for _, w := range words {
		for _, r := range w {
			if r >= '0' && r <= '9' {
				return ""
			}
		}
	}
	return msg
}

// emptyRecord reports whether extraction found nothing.
func emptyRecord(r domain.PreferenceRecord) bool {
	return r.Destination == "" && r.DurationDays == 0 && r.BudgetTier == "" && len(r.Interests) == 0
}

func isAffirmative(lower string) bool {
	for _, w := range []string{"yes", "yep", "yeah", "yup", "sure", "confirm", "correct", "sounds good", "looks good", "perfect", "ok", "okay", "go ahead", "please do", "let's do it"} {
		if lower == w || strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

func isNegative(lower string) bool {
	for _, w := range []string{"no", "nope", "not quite", "change", "actually", "instead", "different", "wrong"} {
		if lower == w || strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

// wantsRevision reports an intent to rework a completed itinerary.
func wantsRevision(message string) bool {
	lower := strings.ToLower(message)
	for _, w := range []string{"change", "revise", "redo", "again", "different", "instead", "update", "tweak", "new plan", "start over", "actually"} {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

// containsWord matches a whole-word (or whole-phrase) occurrence.
func containsWord(haystack, needle string) bool {
	idx := 0
	for {
		i := strings.Index(haystack[idx:], needle)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(needle)
		beforeOK := start == 0 || !isWordChar(rune(haystack[start-1]))
		afterOK := end == len(haystack) || !isWordChar(rune(haystack[end]))
		if beforeOK && afterOK {
			return true
		}
		idx = start + 1
	}
}

func isWordChar(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

func hasLetter(s string) bool {
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r > 127 {
			return true
		}
	}
	return false
}
