package animation

import "time"

// EaseFunc maps elapsed time t onto a value that starts at b and moves by c
// over duration d.
type EaseFunc func(t, b, c, d float64) float64

// Linear moves at constant speed.
func Linear(t, b, c, d float64) float64 {
	return c*t/d + b
}

// EaseInQuad starts slow and accelerates.
func EaseInQuad(t, b, c, d float64) float64 {
	return c*(t/d)*(t/d) + b
}

// EaseOutQuad starts fast and decelerates.
func EaseOutQuad(t, b, c, d float64) float64 {
	return -c*(t/d)*(t/d-2) + b
}

// Spec pairs a duration with an ease curve.
type Spec struct {
	Duration time.Duration
	Ease     EaseFunc
}

// Config contains the animation presets used by the dial.
type Config struct {
	// EditStep animates the dial between minute snaps while dragging.
	EditStep Spec
	// Reset refills the dial after a finished timer is tapped.
	Reset Spec
}
