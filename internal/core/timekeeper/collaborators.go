package timekeeper

import (
	"dialtimer/internal/core/model"
	"dialtimer/internal/core/sweep"
)

// SoundPlayer plays a clip without blocking the caller.
type SoundPlayer interface {
	Play(clip model.Clip)
}

// Notifier tells the user that a countdown reached zero.
type Notifier interface {
	NotifyFinished(title, body string)
}

// SettingsStore is a string key-value store for persisted preferences.
type SettingsStore interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// Collaborators groups the side-effect targets of a TimeKeeper. Any of them
// may be nil.
type Collaborators struct {
	Sound    SoundPlayer
	Notifier Notifier
	Settings SettingsStore
	Surface  sweep.Surface
}

const (
	// SettingLastSeconds stores the last committed duration.
	SettingLastSeconds = "last_seconds"
	// SettingSound stores whether sounds are enabled.
	SettingSound = "sound"
)
