// Package planner implements the server side of the travel dialogue: slot
// extraction, phase progression, and itinerary generation.
package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"tripflow/internal/conversation"
	"tripflow/internal/domain"
	"tripflow/internal/observability"
	"tripflow/internal/planner/llm"
	"tripflow/internal/weather"
)

// slot identifies which preference the previous bot question asked about.
type slot int

const (
	slotNone slot = iota
	slotDestination
	slotDuration
	slotBudget
	slotInterests
)

const greeting = "Hi! I'm your travel planning assistant. Where would you like to go?"

// Service runs one dialogue turn at a time. It holds no per-session state;
// everything it needs arrives in the request.
type Service struct {
	provider  llm.Provider
	llmConfig llm.Config
	weather   *weather.Service
	logger    observability.Logger
	metrics   *observability.Metrics
}

// NewService builds a planner. provider and weatherSvc may be nil, which
// selects the built-in extraction and generation paths and skips weather
// enrichment.
func NewService(provider llm.Provider, cfg llm.Config, weatherSvc *weather.Service, logger observability.Logger, metrics *observability.Metrics) *Service {
	if logger == nil {
		logger = observability.Discard()
	}
	return &Service{
		provider:  provider,
		llmConfig: cfg,
		weather:   weatherSvc,
		logger:    logger,
		metrics:   metrics,
	}
}

// StartSession returns the opening message and a fresh state.
func (s *Service) StartSession(_ context.Context) (string, domain.ConversationState) {
	return greeting, domain.NewConversationState()
}

// Turn advances the dialogue by one user message. The returned state is a
// new value; the input state is never mutated.
func (s *Service) Turn(ctx context.Context, message string, state domain.ConversationState) (string, domain.ConversationState) {
	st := state.Clone()
	msg := strings.TrimSpace(message)

	// The phase advances at most one step per turn so clients can validate
	// every transition against the table.
	switch st.Phase {
	case domain.PhaseInitial:
		st.Phase = domain.PhaseCollecting
		return s.collect(ctx, msg, st, false)

	case domain.PhaseErrored:
		st.Phase = domain.PhaseCollecting
		return s.collect(ctx, msg, st, false)

	case domain.PhaseCollecting:
		return s.collect(ctx, msg, st, true)

	case domain.PhaseConfirming:
		return s.confirm(ctx, msg, st)

	case domain.PhaseComplete:
		if wantsRevision(msg) {
			return s.revise(ctx, msg, st)
		}
		return "Your itinerary is ready above. Tell me what you'd like to change and I'll rework it.", st

	default:
		st.Phase = domain.PhaseErrored
		return "Something went wrong on my end. Let's pick up from where we were.", st
	}
}

// collect extracts slots from the message and either asks the next question
// or moves to confirmation. allowConfirm is false on turns that already
// advanced a phase (initial or errored entry), deferring confirmation to the
// next turn.
func (s *Service) collect(ctx context.Context, msg string, st domain.ConversationState, allowConfirm bool) (string, domain.ConversationState) {
	expecting := nextMissingSlot(st.Preferences)

	extracted := s.extract(ctx, msg, expecting)
	st.Preferences = conversation.MergePreferences(st.Preferences, extracted)

	if st.Preferences.Complete() {
		if allowConfirm {
			st.Phase = domain.PhaseConfirming
		}
		return confirmationSummary(st.Preferences), st
	}

	next := nextMissingSlot(st.Preferences)
	if next == expecting && emptyRecord(extracted) && expecting == slotDestination && !hasLetter(msg) {
		// Gibberish where a destination was expected.
		st.Phase = domain.PhaseErrored
		return "I couldn't make out a destination there. Could you tell me the city or country you'd like to visit?", st
	}

	if next == slotInterests {
		st.Preferences.InterestsAsked = true
	}
	return s.question(next, st.Preferences), st
}

// revise re-opens collection from a completed plan. The previous itinerary
// stays on the state until a replacement is generated.
func (s *Service) revise(ctx context.Context, msg string, st domain.ConversationState) (string, domain.ConversationState) {
	st.Phase = domain.PhaseCollecting
	extracted := s.extract(ctx, msg, slotNone)
	st.Preferences = conversation.MergePreferences(st.Preferences, extracted)

	if missing := nextMissingSlot(st.Preferences); missing != slotNone {
		return s.question(missing, st.Preferences), st
	}
	if !emptyRecord(extracted) {
		return "Got it, I've noted that. Anything else to change before I rework the plan?", st
	}
	return "Sure, what would you like to change: the destination, trip length, budget, or interests?", st
}

// confirm handles the yes/no gate before generation.
func (s *Service) confirm(ctx context.Context, msg string, st domain.ConversationState) (string, domain.ConversationState) {
	lower := strings.ToLower(msg)

	if isAffirmative(lower) && !isNegative(lower) {
		it := s.generateItinerary(ctx, st.Preferences)
		st.Itinerary = &it
		st.Phase = domain.PhaseComplete
		return fmt.Sprintf("Here's your %d-day itinerary for %s! %s Say 'change' anytime to revise it.",
			st.Preferences.DurationDays, st.Preferences.Destination, it.Summary), st
	}

	// A correction mid-confirmation re-enters confirming with updated slots.
	extracted := s.extract(ctx, msg, slotNone)
	if !emptyRecord(extracted) {
		st.Preferences = conversation.MergePreferences(st.Preferences, extracted)
		if st.Preferences.Complete() {
			return confirmationSummary(st.Preferences), st
		}
		st.Phase = domain.PhaseCollecting
		return s.question(nextMissingSlot(st.Preferences), st.Preferences), st
	}

	if isNegative(lower) {
		st.Phase = domain.PhaseCollecting
		return "No problem. What would you like to change: the destination, trip length, budget, or interests?", st
	}
	return confirmationSummary(st.Preferences) + " (A simple yes works.)", st
}

// extract tries the LLM first and falls back to the keyword extractor.
func (s *Service) extract(ctx context.Context, msg string, expecting slot) domain.PreferenceRecord {
	if s.provider != nil && s.provider.Available() {
		rec, err := s.extractWithLLM(ctx, msg)
		if err == nil {
			return rec
		}
		s.logger.Warn("llm extraction failed, using keyword extractor",
			"provider", s.provider.Name(), "error", err)
	}
	return extractPreferences(msg, expecting)
}

func (s *Service) extractWithLLM(ctx context.Context, msg string) (domain.PreferenceRecord, error) {
	resp, err := s.provider.Complete(ctx, []llm.Message{
		{Role: "system", Content: extractionSystemPrompt},
		{Role: "user", Content: msg},
	}, llm.Options{MaxTokens: 256, Temperature: 0})
	if err != nil {
		return domain.PreferenceRecord{}, err
	}
	s.metrics.RecordLLMUsage(resp.PromptTokens, resp.OutputTokens)

	var rec domain.PreferenceRecord
	if err := json.Unmarshal([]byte(extractJSONBlock(resp.Content)), &rec); err != nil {
		return domain.PreferenceRecord{}, fmt.Errorf("parse extraction: %w", err)
	}
	if rec.BudgetTier != "" && !domain.IsValidBudgetTier(rec.BudgetTier) {
		rec.BudgetTier = ""
	}
	if rec.DurationDays < 0 || rec.DurationDays > 99 {
		rec.DurationDays = 0
	}
	rec.InterestsAsked = false
	return rec, nil
}

func nextMissingSlot(p domain.PreferenceRecord) slot {
	switch {
	case p.Destination == "":
		return slotDestination
	case p.DurationDays == 0:
		return slotDuration
	case p.BudgetTier == "":
		return slotBudget
	case len(p.Interests) == 0 && !p.InterestsAsked:
		return slotInterests
	default:
		return slotNone
	}
}

func (s *Service) question(next slot, p domain.PreferenceRecord) string {
	switch next {
	case slotDestination:
		return "Where would you like to go?"
	case slotDuration:
		return fmt.Sprintf("%s, great choice! How many days will you be traveling?", p.Destination)
	case slotBudget:
		return "What kind of budget are you planning: budget, moderate, or luxury?"
	case slotInterests:
		return "Any particular interests I should plan around, like food, history, or nature? Say 'none' if you'd rather I surprise you."
	default:
		return confirmationSummary(p)
	}
}

func confirmationSummary(p domain.PreferenceRecord) string {
	focus := ""
	if len(p.Interests) > 0 {
		focus = fmt.Sprintf(", focused on %s", strings.Join(p.Interests, ", "))
	}
	return fmt.Sprintf("Here's what I have: a %d-day trip to %s with a %s budget%s. Shall I put together your itinerary?",
		p.DurationDays, p.Destination, p.BudgetTier, focus)
}
