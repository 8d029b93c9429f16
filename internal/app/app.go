// Package app holds the wiring shared by the Fyne and Ebiten frontends:
// command-line flags, the settings store and controller construction.
package app

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"dialtimer/internal/core/loop"
	"dialtimer/internal/core/sweep"
	"dialtimer/internal/core/timekeeper"
	"dialtimer/internal/platform"
	"dialtimer/internal/sound"
	"dialtimer/internal/storage"
	"dialtimer/internal/ui/animation"
	"dialtimer/internal/ui/preferences"
)

// Name is the application name used for the data directory and the
// single-instance lock.
const Name = "DialTimer"

// Options are the command-line settings common to both frontends.
type Options struct {
	DataDir    string
	Store      string
	ForceMouse bool
	Verbose    bool
}

// BindFlags registers the shared flags on cmd.
func BindFlags(cmd *cobra.Command, options *Options) {
	flags := cmd.Flags()
	flags.StringVar(&options.DataDir, "data-dir", "", "directory for settings (default: user config dir)")
	flags.StringVar(&options.Store, "store", string(storage.BackendYAML), "settings backend: yaml or sqlite")
	flags.BoolVar(&options.ForceMouse, "force-mouse", false, "use mouse input even on touch-capable devices")
	flags.BoolVarP(&options.Verbose, "verbose", "v", false, "log controller diagnostics to stderr")
}

// Runtime is the opened shared state of a running frontend.
type Runtime struct {
	Store    storage.Store
	Settings preferences.Settings
	Logger   *log.Logger
	Sound    *sound.Player
	options  Options
}

// Open resolves the data directory, opens the store and loads preferences.
func Open(options Options) (*Runtime, error) {
	dir := options.DataDir
	if dir == "" {
		resolved, err := platform.DataDir(Name)
		if err != nil {
			return nil, fmt.Errorf("resolve data dir: %w", err)
		}
		dir = resolved
	}

	store, err := storage.Open(storage.Backend(options.Store), dir)
	if err != nil {
		return nil, fmt.Errorf("open settings store: %w", err)
	}

	logger := log.New(io.Discard, "", 0)
	if options.Verbose {
		logger = log.New(os.Stderr, "dialtimer: ", log.LstdFlags)
	}

	settings, err := storage.LoadSettings(store)
	if err != nil {
		logger.Printf("load settings: %v", err)
	}

	return &Runtime{
		Store:    store,
		Settings: settings,
		Logger:   logger,
		Sound:    sound.NewPlayer(sound.WithLogger(logger)),
		options:  options,
	}, nil
}

// ForceMouse reports whether mouse input is forced by flag or preference.
func (runtime *Runtime) ForceMouse() bool {
	return runtime.options.ForceMouse || runtime.Settings.ForceMouse
}

// SaveSettings persists preferences and remembers them.
func (runtime *Runtime) SaveSettings(settings preferences.Settings) error {
	runtime.Settings = settings
	return storage.SaveSettings(runtime.Store, settings)
}

// NewKeeper builds the dial controller on scheduler, drawing to surface and
// announcing finishes through notifier.
func (runtime *Runtime) NewKeeper(scheduler loop.Scheduler, surface sweep.Surface, notifier timekeeper.Notifier) (*timekeeper.TimeKeeper, error) {
	keeper, err := timekeeper.New(runtime.Settings.TimerConfig(), timekeeper.Options{
		Scheduler: scheduler,
		Animation: animation.DefaultConfig(),
		Logger:    runtime.Logger,
	}, timekeeper.Collaborators{
		Sound:    runtime.Sound,
		Notifier: notifier,
		Settings: runtime.Store,
		Surface:  surface,
	})
	if err != nil {
		return nil, fmt.Errorf("create timer: %w", err)
	}
	return keeper, nil
}

// Close releases the settings store.
func (runtime *Runtime) Close() error {
	if err := runtime.Store.Close(); err != nil {
		return fmt.Errorf("close settings store: %w", err)
	}
	return nil
}
