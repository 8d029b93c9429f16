package model

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidTimerConfig indicates bounds that violate 0 < min < default <= max.
var ErrInvalidTimerConfig = errors.New("invalid timer config")

// SecondsPerMinute is the snapping step for committed durations.
const SecondsPerMinute = 60

// Clip identifies a sound the timer asks to be played.
type Clip string

const (
	ClipTick Clip = "tick"
	ClipDone Clip = "done"
)

// TimerConfig bounds the duration that can be set on the dial.
type TimerConfig struct {
	MinSeconds     int
	MaxSeconds     int
	DefaultSeconds int
}

// DefaultTimerConfig returns the one-minute to one-hour dial with a ten minute default.
func DefaultTimerConfig() TimerConfig {
	return TimerConfig{
		MinSeconds:     60,
		MaxSeconds:     3600,
		DefaultSeconds: 600,
	}
}

// Validate checks the ordering of the bounds.
func (config TimerConfig) Validate() error {
	if config.MinSeconds <= 0 || config.MinSeconds >= config.DefaultSeconds || config.DefaultSeconds > config.MaxSeconds {
		return fmt.Errorf("%w: min=%d default=%d max=%d", ErrInvalidTimerConfig, config.MinSeconds, config.DefaultSeconds, config.MaxSeconds)
	}
	return nil
}

// Clamp limits seconds to [MinSeconds, MaxSeconds].
func (config TimerConfig) Clamp(seconds float64) float64 {
	if seconds < float64(config.MinSeconds) {
		return float64(config.MinSeconds)
	}
	if seconds > float64(config.MaxSeconds) {
		return float64(config.MaxSeconds)
	}
	return seconds
}

// Snap rounds seconds to the nearest whole minute and keeps the result in range.
func (config TimerConfig) Snap(seconds float64) int {
	snapped := int(math.Round(config.Clamp(seconds)/SecondsPerMinute)) * SecondsPerMinute
	for snapped > config.MaxSeconds {
		snapped -= SecondsPerMinute
	}
	for snapped < config.MinSeconds {
		snapped += SecondsPerMinute
	}
	return snapped
}
