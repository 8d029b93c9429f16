package app

import (
	"testing"
	"time"

	"github.com/spf13/cobra"

	"dialtimer/internal/core/loop"
	"dialtimer/internal/core/timekeeper"
	"dialtimer/internal/ui/preferences"
)

func TestBindFlags(t *testing.T) {
	var options Options
	cmd := &cobra.Command{Use: "dialtimer"}
	BindFlags(cmd, &options)

	if err := cmd.ParseFlags([]string{"--store", "sqlite", "--data-dir", "/tmp/x", "--force-mouse", "-v"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	want := Options{DataDir: "/tmp/x", Store: "sqlite", ForceMouse: true, Verbose: true}
	if options != want {
		t.Fatalf("got %+v, want %+v", options, want)
	}
}

func TestOpenAndKeeperShareStore(t *testing.T) {
	for _, backend := range []string{"yaml", "sqlite"} {
		t.Run(backend, func(t *testing.T) {
			dir := t.TempDir()
			runtime, err := Open(Options{DataDir: dir, Store: backend})
			if err != nil {
				t.Fatalf("open: %v", err)
			}
			if err := runtime.SaveSettings(preferences.Settings{SoundEnabled: true, ForceMouse: true}); err != nil {
				t.Fatalf("save settings: %v", err)
			}
			if !runtime.ForceMouse() {
				t.Fatalf("saved preference must force mouse")
			}

			clock := loop.NewManual(time.Now(), 0)
			keeper, err := runtime.NewKeeper(clock, nil, nil)
			if err != nil {
				t.Fatalf("new keeper: %v", err)
			}
			if keeper.SoundEnabled() {
				t.Fatalf("saving preferences must not write the sound flag")
			}
			keeper.SetSoundEnabled(true)
			if err := runtime.Store.Set(timekeeper.SettingLastSeconds, "1200"); err != nil {
				t.Fatalf("set: %v", err)
			}
			keeper.Close()
			if err := runtime.Close(); err != nil {
				t.Fatalf("close: %v", err)
			}

			reopened, err := Open(Options{DataDir: dir, Store: backend})
			if err != nil {
				t.Fatalf("reopen: %v", err)
			}
			defer reopened.Close()
			keeper, err = reopened.NewKeeper(loop.NewManual(time.Now(), 0), nil, nil)
			if err != nil {
				t.Fatalf("new keeper: %v", err)
			}
			defer keeper.Close()
			if got := keeper.Snapshot().LastSeconds; got != 1200 {
				t.Fatalf("got last seconds %d, want 1200", got)
			}
			if !keeper.SoundEnabled() || !reopened.Settings.SoundEnabled {
				t.Fatalf("sound flag written by the keeper must survive a reopen")
			}
		})
	}
}

func TestOpenRejectsUnknownStore(t *testing.T) {
	if _, err := Open(Options{DataDir: t.TempDir(), Store: "etcd"}); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
}
