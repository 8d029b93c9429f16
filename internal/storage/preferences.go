package storage

import (
	"fmt"
	"strconv"

	"dialtimer/internal/ui/preferences"
)

const (
	keySound      = "sound"
	keyForceMouse = "force_mouse"
)

// LoadSettings reads user preferences from store. Missing or malformed
// values keep their defaults.
func LoadSettings(store Store) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	sound, err := loadBool(store, keySound, settings.SoundEnabled)
	if err != nil {
		return settings, err
	}
	forceMouse, err := loadBool(store, keyForceMouse, settings.ForceMouse)
	if err != nil {
		return settings, err
	}

	settings.SoundEnabled = sound
	settings.ForceMouse = forceMouse
	return settings, nil
}

// SaveSettings writes the preferences owned by this package. The sound flag
// is written by the dial controller alone and is only read here.
func SaveSettings(store Store, settings preferences.Settings) error {
	if err := store.Set(keyForceMouse, strconv.FormatBool(settings.ForceMouse)); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

func loadBool(store Store, key string, fallback bool) (bool, error) {
	raw, ok, err := store.Get(key)
	if err != nil {
		return fallback, fmt.Errorf("load settings: %w", err)
	}
	if !ok {
		return fallback, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback, nil
	}
	return value, nil
}
