package worker

import (
	"testing"
	"time"
)

func TestExponentialBackoffGrows(t *testing.T) {
	jitter := 250 * time.Millisecond

	tests := []struct {
		attempt int
		wantMin time.Duration
	}{
		{0, 2 * time.Second},
		{1, 4 * time.Second},
		{2, 8 * time.Second},
		{5, 64 * time.Second},
	}

	for _, tt := range tests {
		got := ExponentialBackoff(tt.attempt)

		if got < tt.wantMin || got > tt.wantMin+jitter {
			t.Errorf("attempt %d: delay = %v, want [%v, %v]", tt.attempt, got, tt.wantMin, tt.wantMin+jitter)
		}
	}
}

func TestExponentialBackoffCaps(t *testing.T) {
	capDelay := 5 * time.Minute
	jitter := 250 * time.Millisecond

	for _, attempt := range []int{10, 20, 30} {
		got := ExponentialBackoff(attempt)

		if got > capDelay+jitter {
			t.Errorf("attempt %d: delay = %v exceeds cap", attempt, got)
		}
	}
}
