package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"dialtimer/internal/ui/preferences"
)

func openBoth(t *testing.T) map[Backend]Store {
	t.Helper()
	stores := make(map[Backend]Store)
	for _, backend := range []Backend{BackendYAML, BackendSQLite} {
		store, err := Open(backend, filepath.Join(t.TempDir(), "data"))
		if err != nil {
			t.Fatalf("open %s: %v", backend, err)
		}
		t.Cleanup(func() { store.Close() })
		stores[backend] = store
	}
	return stores
}

func TestStoreGetSet(t *testing.T) {
	for backend, store := range openBoth(t) {
		t.Run(string(backend), func(t *testing.T) {
			if _, ok, err := store.Get("last_seconds"); err != nil || ok {
				t.Fatalf("got ok=%v err=%v for missing key, want false nil", ok, err)
			}
			if err := store.Set("last_seconds", "900"); err != nil {
				t.Fatalf("set: %v", err)
			}
			if err := store.Set("last_seconds", "1200"); err != nil {
				t.Fatalf("overwrite: %v", err)
			}
			value, ok, err := store.Get("last_seconds")
			if err != nil || !ok || value != "1200" {
				t.Fatalf("got %q ok=%v err=%v, want 1200", value, ok, err)
			}
		})
	}
}

func TestStoreSurvivesReopen(t *testing.T) {
	for _, backend := range []Backend{BackendYAML, BackendSQLite} {
		t.Run(string(backend), func(t *testing.T) {
			dir := t.TempDir()
			store, err := Open(backend, dir)
			if err != nil {
				t.Fatalf("open: %v", err)
			}
			if err := store.Set("sound", "true"); err != nil {
				t.Fatalf("set: %v", err)
			}
			if err := store.Close(); err != nil {
				t.Fatalf("close: %v", err)
			}

			reopened, err := Open(backend, dir)
			if err != nil {
				t.Fatalf("reopen: %v", err)
			}
			defer reopened.Close()
			value, ok, err := reopened.Get("sound")
			if err != nil || !ok || value != "true" {
				t.Fatalf("got %q ok=%v err=%v, want true", value, ok, err)
			}
		})
	}
}

func TestOpenUnknownBackend(t *testing.T) {
	_, err := Open("redis", t.TempDir())
	if !errors.Is(err, ErrUnknownBackend) {
		t.Fatalf("got %v, want ErrUnknownBackend", err)
	}
}

func TestOpenYAMLRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), settingsFileName)
	if err := os.WriteFile(path, []byte("sound: [unclosed"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, err := OpenYAML(path)
	if err == nil || !strings.Contains(err.Error(), "parse settings yaml") {
		t.Fatalf("got %v, want parse error", err)
	}
}

func TestYAMLFileIsReadable(t *testing.T) {
	dir := t.TempDir()
	store, err := Open(BackendYAML, dir)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := store.Set("last_seconds", "600"); err != nil {
		t.Fatalf("set: %v", err)
	}
	raw, err := os.ReadFile(filepath.Join(dir, settingsFileName))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got := strings.TrimSpace(string(raw)); got != `last_seconds: "600"` {
		t.Fatalf("got %q", got)
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	for backend, store := range openBoth(t) {
		t.Run(string(backend), func(t *testing.T) {
			settings, err := LoadSettings(store)
			if err != nil {
				t.Fatalf("load defaults: %v", err)
			}
			if settings != preferences.DefaultSettings() {
				t.Fatalf("got %+v, want defaults", settings)
			}

			if err := SaveSettings(store, preferences.Settings{SoundEnabled: true, ForceMouse: true}); err != nil {
				t.Fatalf("save: %v", err)
			}
			if _, ok, err := store.Get(keySound); err != nil || ok {
				t.Fatalf("got sound key present=%v err=%v, want it left to the controller", ok, err)
			}
			if err := store.Set(keySound, "true"); err != nil {
				t.Fatalf("set sound: %v", err)
			}
			got, err := LoadSettings(store)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			want := preferences.Settings{SoundEnabled: true, ForceMouse: true}
			if got != want {
				t.Fatalf("got %+v, want %+v", got, want)
			}
		})
	}
}

func TestLoadSettingsIgnoresMalformedValues(t *testing.T) {
	store, err := Open(BackendYAML, t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := store.Set("force_mouse", "sometimes"); err != nil {
		t.Fatalf("set: %v", err)
	}
	settings, err := LoadSettings(store)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if settings.ForceMouse {
		t.Fatalf("malformed value must keep default")
	}
}

func TestIsBusy(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{errors.New("syntax error"), false},
		{errors.New("database is locked"), true},
		{errors.New("sqlite: (5) busy"), true},
	}
	for _, tt := range tests {
		if got := isBusy(tt.err); got != tt.want {
			t.Fatalf("isBusy(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

func TestRetryOnContentionStopsOnSuccess(t *testing.T) {
	calls := 0
	err := retryOnContention(func() error {
		calls++
		if calls < 2 {
			return errors.New("database is locked")
		}
		return nil
	})
	if err != nil || calls != 2 {
		t.Fatalf("got err=%v calls=%d, want nil 2", err, calls)
	}
}
