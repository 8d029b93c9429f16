package preferences

import (
	"dialtimer/internal/core/model"
)

// Settings defines editable user preferences.
type Settings struct {
	SoundEnabled bool
	ForceMouse   bool
}

// DefaultSettings returns default settings for the dial timer.
func DefaultSettings() Settings {
	return Settings{
		SoundEnabled: false,
		ForceMouse:   false,
	}
}

// TimerConfig returns the dial limits. They are fixed; only presentation
// preferences are editable.
func (settings Settings) TimerConfig() model.TimerConfig {
	return model.DefaultTimerConfig()
}
