package preferences

import (
	"testing"

	"fyne.io/fyne/v2/test"
)

func TestSaveReportsCheckedValues(t *testing.T) {
	app := test.NewTempApp(t)
	var saved []Settings
	prefs := New(app, DefaultSettings(), func(settings Settings) {
		saved = append(saved, settings)
	})

	test.Tap(prefs.sound)
	prefs.handleSave()

	if len(saved) != 1 || !saved[0].SoundEnabled || saved[0].ForceMouse {
		t.Fatalf("got %+v, want sound only", saved)
	}
	if !prefs.Settings().SoundEnabled {
		t.Fatalf("window must remember saved settings")
	}
}

func TestUpdateSettingsSyncsChecks(t *testing.T) {
	app := test.NewTempApp(t)
	prefs := New(app, DefaultSettings(), nil)

	prefs.UpdateSettings(Settings{SoundEnabled: true, ForceMouse: true})
	if !prefs.sound.Checked || !prefs.forceMouse.Checked {
		t.Fatalf("checks not updated")
	}
}

func TestDefaultsUseFixedTimerLimits(t *testing.T) {
	config := DefaultSettings().TimerConfig()
	if err := config.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}
