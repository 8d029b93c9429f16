package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/spf13/cobra"

	"dialtimer/internal/app"
	"dialtimer/internal/core/gesture"
	"dialtimer/internal/core/loop"
	"dialtimer/internal/core/timekeeper"
	"dialtimer/internal/notify"
	"dialtimer/internal/platform"
	"dialtimer/internal/ui/dial"
	"dialtimer/internal/ui/preferences"
	"dialtimer/internal/ui/tray"
	"dialtimer/resources"
)

func main() {
	var options app.Options
	rootCmd := &cobra.Command{
		Use:           "dialtimer",
		Short:         "Circular countdown timer: drag the dial to set minutes, tap to start or stop",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(options)
		},
	}
	app.BindFlags(rootCmd, &options)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(options app.Options) error {
	guard, err := platform.AcquireSingleInstance(app.Name)
	if err != nil {
		if errors.Is(err, platform.ErrAlreadyRunning) {
			log.Printf("single instance: %v", err)
			return nil
		}
		return err
	}
	defer func() {
		_ = guard.Release()
	}()

	runtime, err := app.Open(options)
	if err != nil {
		return err
	}
	defer func() {
		if err := runtime.Close(); err != nil {
			log.Printf("%v", err)
		}
	}()

	fyneApp := fyneapp.NewWithID("io.dialtimer.app")
	fyneApp.SetIcon(resources.MustIcon(256))
	desktopApp, hasTray := fyneApp.(desktop.App)

	var keeper *timekeeper.TimeKeeper
	window := dial.New(fyneApp, dial.Config{Title: "Dial Timer", HideOnClose: hasTray}, func(width, height float64) {
		if keeper != nil {
			keeper.SetViewport(width, height)
		}
	})

	notifier := notify.Multi{
		dial.Notifier{App: fyneApp},
		notify.Log{Logger: runtime.Logger},
	}
	scheduler := loop.NewReal(loop.WithPost(fyne.Do))
	keeper, err = runtime.NewKeeper(scheduler, window.Dial(), notifier)
	if err != nil {
		return err
	}
	defer keeper.Close()

	size := window.Dial().Size()
	keeper.SetViewport(float64(size.Width), float64(size.Height))

	unifier := gesture.NewUnifier(keeper.HandleGesture)
	mode := unifier.Activate(window.Dial(), runtime.ForceMouse())
	defer unifier.Deactivate()
	runtime.Logger.Printf("input mode: %s", mode)

	window.OnSpace(keeper.Toggle)
	guard.OnActivate(func() {
		fyne.Do(window.Show)
	})

	var trayManager *tray.Manager
	initial := runtime.Settings
	initial.SoundEnabled = keeper.SoundEnabled()
	prefsWindow := preferences.New(fyneApp, initial, func(updated preferences.Settings) {
		if err := runtime.SaveSettings(updated); err != nil {
			log.Printf("save settings: %v", err)
		}
		keeper.SetSoundEnabled(updated.SoundEnabled)
		if trayManager != nil {
			trayManager.SetSound(updated.SoundEnabled)
		}
	})

	if hasTray {
		trayManager = tray.New(desktopApp, tray.Callbacks{
			OnShow:   window.Show,
			OnToggle: keeper.Toggle,
			OnSound: func(enabled bool) {
				keeper.SetSoundEnabled(enabled)
				settings := prefsWindow.Settings()
				settings.SoundEnabled = enabled
				prefsWindow.UpdateSettings(settings)
			},
			OnPreferences: prefsWindow.Show,
			OnQuit:        fyneApp.Quit,
		}, keeper.SoundEnabled())
		desktopApp.SetSystemTrayIcon(resources.MustIcon(64))
	} else {
		log.Printf("system tray unsupported on this platform")
	}

	apply := func(event timekeeper.Event) {
		window.Apply(event)
		if trayManager != nil {
			trayManager.Update(event)
		}
	}
	snapshot := keeper.Snapshot()
	apply(timekeeper.Event{
		Type:        timekeeper.EventPhaseChange,
		Phase:       snapshot.Phase,
		Remaining:   snapshot.Remaining,
		LastSeconds: snapshot.LastSeconds,
	})

	events := keeper.Subscribe(32)
	go func() {
		for event := range events {
			fyne.Do(func() {
				apply(event)
			})
		}
	}()

	window.ShowAndRun()
	return nil
}
