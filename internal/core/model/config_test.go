package model

import (
	"errors"
	"math/rand"
	"testing"
)

func TestDefaultTimerConfigIsValid(t *testing.T) {
	config := DefaultTimerConfig()
	if err := config.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if config.MinSeconds != 60 || config.MaxSeconds != 3600 || config.DefaultSeconds != 600 {
		t.Fatalf("got %+v, want 60/3600/600", config)
	}
}

func TestValidateRejectsBadBounds(t *testing.T) {
	tests := []TimerConfig{
		{MinSeconds: 0, DefaultSeconds: 600, MaxSeconds: 3600},
		{MinSeconds: 600, DefaultSeconds: 600, MaxSeconds: 3600},
		{MinSeconds: 60, DefaultSeconds: 4000, MaxSeconds: 3600},
		{MinSeconds: -60, DefaultSeconds: 60, MaxSeconds: 120},
	}
	for _, config := range tests {
		err := config.Validate()
		if !errors.Is(err, ErrInvalidTimerConfig) {
			t.Fatalf("Validate(%+v): got %v, want ErrInvalidTimerConfig", config, err)
		}
	}
}

func TestValidateAllowsDefaultEqualToMax(t *testing.T) {
	config := TimerConfig{MinSeconds: 60, DefaultSeconds: 3600, MaxSeconds: 3600}
	if err := config.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestClamp(t *testing.T) {
	config := DefaultTimerConfig()
	tests := []struct{ in, want float64 }{
		{-10, 60},
		{0, 60},
		{59.9, 60},
		{61, 61},
		{3599.5, 3599.5},
		{3601, 3600},
		{1e9, 3600},
	}
	for _, tt := range tests {
		if got := config.Clamp(tt.in); got != tt.want {
			t.Fatalf("Clamp(%v): got %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSnapIsWholeMinuteInRange(t *testing.T) {
	config := DefaultTimerConfig()
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 2000; i++ {
		in := rng.Float64()*8000 - 2000
		got := config.Snap(in)
		if got%SecondsPerMinute != 0 {
			t.Fatalf("Snap(%v): got %d, not a multiple of 60", in, got)
		}
		if got < config.MinSeconds || got > config.MaxSeconds {
			t.Fatalf("Snap(%v): got %d, out of range", in, got)
		}
	}
}

func TestSnapRoundsToNearestMinute(t *testing.T) {
	config := DefaultTimerConfig()
	tests := []struct {
		in   float64
		want int
	}{
		{1500, 1500},
		{629, 600},
		{630, 660},
		{89, 60},
	}
	for _, tt := range tests {
		if got := config.Snap(tt.in); got != tt.want {
			t.Fatalf("Snap(%v): got %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestSnapKeepsOddBoundsInRange(t *testing.T) {
	config := TimerConfig{MinSeconds: 90, DefaultSeconds: 300, MaxSeconds: 3590}
	if got := config.Snap(0); got != 120 {
		t.Fatalf("Snap(0): got %d, want 120", got)
	}
	if got := config.Snap(5000); got != 3540 {
		t.Fatalf("Snap(5000): got %d, want 3540", got)
	}
}
