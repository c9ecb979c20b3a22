// Package validation provides input validation for tripflow API requests.
package validation

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"tripflow/internal/domain"
)

// Validation error types for specific error handling.
var (
	ErrEmptyValue    = errors.New("value cannot be empty")
	ErrTooLong       = errors.New("value exceeds maximum length")
	ErrInvalidFormat = errors.New("invalid format")
	ErrOutOfRange    = errors.New("value out of range")
)

// Constraints for validation.
const (
	MaxUtteranceLength = 2000
	MaxLocationLength  = 120
	MaxTitleLength     = 255
	MinDurationDays    = 1
	MaxDurationDays    = 30
)

// ValidateUtterance checks one user message before it is sent on a turn.
func ValidateUtterance(s string) error {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return fmt.Errorf("message: %w", ErrEmptyValue)
	}
	if len(trimmed) > MaxUtteranceLength {
		return fmt.Errorf("message: %w (max %d)", ErrTooLong, MaxUtteranceLength)
	}
	return nil
}

// ValidateLocation checks a weather lookup location.
func ValidateLocation(s string) error {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return fmt.Errorf("location: %w", ErrEmptyValue)
	}
	if len(trimmed) > MaxLocationLength {
		return fmt.Errorf("location: %w (max %d)", ErrTooLong, MaxLocationLength)
	}
	for _, r := range trimmed {
		if unicode.IsLetter(r) || unicode.IsSpace(r) || r == '-' || r == '\'' || r == ',' || r == '.' {
			continue
		}
		return fmt.Errorf("location %q: %w", trimmed, ErrInvalidFormat)
	}
	return nil
}

// ValidateTripTitle checks the title of a saved trip.
func ValidateTripTitle(s string) error {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return fmt.Errorf("title: %w", ErrEmptyValue)
	}
	if len(trimmed) > MaxTitleLength {
		return fmt.Errorf("title: %w (max %d)", ErrTooLong, MaxTitleLength)
	}
	return nil
}

// ValidateDurationDays checks a trip length.
func ValidateDurationDays(n int) error {
	if n < MinDurationDays || n > MaxDurationDays {
		return fmt.Errorf("duration_days %d: %w (%d-%d)", n, ErrOutOfRange, MinDurationDays, MaxDurationDays)
	}
	return nil
}

// ValidateBudgetTier checks a budget tier value.
func ValidateBudgetTier(t domain.BudgetTier) error {
	if !domain.IsValidBudgetTier(t) {
		return fmt.Errorf("budget_tier %q: %w", t, ErrInvalidFormat)
	}
	return nil
}
