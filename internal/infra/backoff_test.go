package infra

import (
	"testing"
	"time"
)

func TestLinearBackoff(t *testing.T) {
	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{0, 0},
		{1, 0},
		{2, 2 * time.Second},
		{3, 3 * time.Second},
		{10, 10 * time.Second},
	}

	for _, tt := range tests {
		if got := LinearBackoff(time.Second, tt.attempt); got != tt.want {
			t.Errorf("LinearBackoff(1s, %d) = %s, want %s", tt.attempt, got, tt.want)
		}
	}
}

func TestLinearBackoff_ZeroBase(t *testing.T) {
	if got := LinearBackoff(0, 3); got != 0 {
		t.Errorf("expected no delay with zero base, got %s", got)
	}
}
