// Package dial is the Fyne desktop frontend: a window hosting the dial
// widget plus a notification dispatcher backed by the Fyne app.
package dial

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"

	"dialtimer/internal/core/timekeeper"
	"dialtimer/internal/ui/dialface"
)

// Config defines window visuals.
type Config struct {
	Title string
	Size  fyne.Size
	// HideOnClose keeps the app alive in the tray when the window is closed.
	HideOnClose bool
}

// Window manages the dial window.
type Window struct {
	app    fyne.App
	window fyne.Window
	config Config
	dial   *Widget
}

const (
	defaultWidth  = float32(360)
	defaultHeight = float32(360)
)

// New creates the dial window. onResize receives the dial's size.
func New(app fyne.App, config Config, onResize func(width, height float64)) *Window {
	if config.Title == "" {
		config.Title = "Dial Timer"
	}
	if config.Size.Width <= 0 || config.Size.Height <= 0 {
		config.Size = fyne.NewSize(defaultWidth, defaultHeight)
	}

	window := app.NewWindow(config.Title)
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}
	window.SetPadded(false)

	background := canvas.NewRectangle(color.NRGBA{R: 0xfa, G: 0xfa, B: 0xfa, A: 0xff})
	dial := NewWidget(onResize)
	window.SetContent(container.NewStack(background, dial))
	window.Resize(config.Size)

	frontend := &Window{
		app:    app,
		window: window,
		config: config,
		dial:   dial,
	}
	if config.HideOnClose {
		window.SetCloseIntercept(func() {
			window.Hide()
		})
	}
	return frontend
}

// Dial returns the interactive dial widget.
func (frontend *Window) Dial() *Widget {
	return frontend.dial
}

// Show brings the window forward.
func (frontend *Window) Show() {
	frontend.window.Show()
	frontend.window.RequestFocus()
}

// OnSpace runs toggle whenever the space key is typed in the window.
func (frontend *Window) OnSpace(toggle func()) {
	frontend.window.Canvas().SetOnTypedKey(func(event *fyne.KeyEvent) {
		if event.Name == fyne.KeySpace {
			toggle()
		}
	})
}

// ShowAndRun shows the window and runs the Fyne event loop.
func (frontend *Window) ShowAndRun() {
	frontend.window.ShowAndRun()
}

// Apply updates the caption and ring styling from a controller event. It
// must run on the Fyne goroutine.
func (frontend *Window) Apply(event timekeeper.Event) {
	frontend.dial.SetText(dialface.Caption(event.Phase, event.Remaining))
	frontend.dial.SetRunState(event.Phase == timekeeper.PhaseRunning, event.Phase == timekeeper.PhaseFinished)
	frontend.window.SetTitle(fmt.Sprintf("%s - %s", frontend.config.Title, dialface.Caption(event.Phase, event.Remaining)))
	if event.Type == timekeeper.EventFinished {
		frontend.Show()
	}
}

// Notifier delivers finish notifications through the Fyne app.
type Notifier struct {
	App fyne.App
}

// NotifyFinished implements notify.Dispatcher.
func (notifier Notifier) NotifyFinished(title, body string) {
	if notifier.App == nil {
		return
	}
	notifier.App.SendNotification(fyne.NewNotification(title, body))
}
