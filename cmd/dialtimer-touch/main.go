package main

import (
	"errors"
	"fmt"
	"image"
	"log"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"dialtimer/internal/app"
	"dialtimer/internal/core/gesture"
	"dialtimer/internal/core/loop"
	"dialtimer/internal/notify"
	"dialtimer/internal/platform"
	"dialtimer/internal/ui/touchdial"
	"dialtimer/resources"
)

const (
	windowWidth  = 420
	windowHeight = 420
)

func main() {
	var options app.Options
	rootCmd := &cobra.Command{
		Use:           "dialtimer-touch",
		Short:         "Touch-first dial timer; space toggles start and stop",
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
	guard, err := platform.AcquireSingleInstance(app.Name + "-touch")
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

	clock := loop.NewManual(time.Now(), time.Second/time.Duration(ebiten.DefaultTPS))
	game := touchdial.New(clock, touchdial.EbitenInput{})

	notifier := notify.Multi{
		notify.NewZenity(runtime.Logger),
		notify.Log{Logger: runtime.Logger},
	}
	keeper, err := runtime.NewKeeper(clock, game, notifier)
	if err != nil {
		return err
	}
	defer keeper.Close()
	game.Attach(keeper)

	unifier := gesture.NewUnifier(keeper.HandleGesture)
	mode := unifier.Activate(game, runtime.ForceMouse())
	defer unifier.Deactivate()
	runtime.Logger.Printf("input mode: %s", mode)

	ebiten.SetWindowSize(windowWidth, windowHeight)
	ebiten.SetWindowTitle("Dial Timer")
	ebiten.SetWindowIcon([]image.Image{resources.IconImage(64), resources.IconImage(256)})
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}
