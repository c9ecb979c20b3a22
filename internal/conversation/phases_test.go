package conversation

import (
	"testing"

	"tripflow/internal/domain"
)

func TestAllowedTransition(t *testing.T) {
	tests := []struct {
		from, to domain.Phase
		want     bool
	}{
		{domain.PhaseInitial, domain.PhaseCollecting, true},
		{domain.PhaseCollecting, domain.PhaseCollecting, true},
		{domain.PhaseCollecting, domain.PhaseConfirming, true},
		{domain.PhaseConfirming, domain.PhaseComplete, true},
		{domain.PhaseConfirming, domain.PhaseCollecting, true},
		{domain.PhaseComplete, domain.PhaseCollecting, true},
		{domain.PhaseErrored, domain.PhaseCollecting, true},

		// any -> errored
		{domain.PhaseInitial, domain.PhaseErrored, true},
		{domain.PhaseCollecting, domain.PhaseErrored, true},
		{domain.PhaseConfirming, domain.PhaseErrored, true},
		{domain.PhaseComplete, domain.PhaseErrored, true},

		// regressions and skips are rejected
		{domain.PhaseCollecting, domain.PhaseInitial, false},
		{domain.PhaseCollecting, domain.PhaseComplete, false},
		{domain.PhaseConfirming, domain.PhaseInitial, false},
		{domain.PhaseComplete, domain.PhaseConfirming, false},
		{domain.PhaseComplete, domain.PhaseInitial, false},
		{domain.PhaseInitial, domain.PhaseConfirming, false},
		{domain.PhaseInitial, domain.PhaseComplete, false},
		{domain.PhaseErrored, domain.PhaseComplete, false},

		// unknown phases
		{"banana", domain.PhaseCollecting, false},
		{domain.PhaseCollecting, "banana", false},
	}

	for _, tc := range tests {
		if got := AllowedTransition(tc.from, tc.to); got != tc.want {
			t.Errorf("AllowedTransition(%q, %q) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}
