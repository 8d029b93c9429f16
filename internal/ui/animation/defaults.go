package animation

import "time"

// DefaultConfig returns the dial's animation presets.
func DefaultConfig() Config {
	return Config{
		EditStep: Spec{
			Duration: 100 * time.Millisecond,
			Ease:     EaseInQuad,
		},
		Reset: Spec{
			Duration: 500 * time.Millisecond,
			Ease:     EaseOutQuad,
		},
	}
}
