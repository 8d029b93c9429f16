// Package touchdial is the Ebiten frontend. It owns the update loop, so it
// drives a manual scheduler from wall-clock time once per tick and polls
// multi-touch input with real touch identifiers.
package touchdial

import (
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"dialtimer/internal/core/gesture"
	"dialtimer/internal/core/loop"
	"dialtimer/internal/core/sweep"
	"dialtimer/internal/core/timekeeper"
	"dialtimer/internal/ui/dialface"
)

const ringSegments = 180

var backgroundColor = color.RGBA{R: 0xfa, G: 0xfa, B: 0xfa, A: 0xff}

// Controller is the part of the timer the game talks to directly.
type Controller interface {
	Toggle()
	SetViewport(width, height float64)
	Snapshot() timekeeper.Snapshot
}

// Game implements ebiten.Game, gesture.Source and sweep.Surface.
type Game struct {
	clock *loop.Manual
	now   func() time.Time
	input Input

	controller Controller

	mouse gesture.MouseListener
	touch gesture.TouchListener

	cursor   gesture.Point
	touches  map[gesture.TouchID]gesture.Point
	angles   sweep.Angles
	running  bool
	finished bool
	caption  string
	width    int
	height   int
}

var (
	_ ebiten.Game    = (*Game)(nil)
	_ gesture.Source = (*Game)(nil)
	_ sweep.Surface  = (*Game)(nil)
)

// New creates a game driving clock from the wall clock.
func New(clock *loop.Manual, input Input) *Game {
	return &Game{
		clock:   clock,
		now:     time.Now,
		input:   input,
		touches: make(map[gesture.TouchID]gesture.Point),
		caption: "--:--",
	}
}

// Attach connects the controller. Call it once before running the game.
func (game *Game) Attach(controller Controller) {
	game.controller = controller
	game.sync()
	if game.width > 0 && game.height > 0 {
		controller.SetViewport(float64(game.width), float64(game.height))
	}
}

// Update implements ebiten.Game.
func (game *Game) Update() error {
	game.clock.AdvanceTo(game.now())
	game.pollMouse()
	game.pollTouches()
	if game.controller != nil && game.input.SpaceJustPressed() {
		game.controller.Toggle()
	}
	game.sync()
	return nil
}

// Draw implements ebiten.Game.
func (game *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	bounds := screen.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	face := dialface.ForState(game.angles, game.running, game.finished)

	side := math.Min(float64(w), float64(h))
	radius := side * (dialface.OuterRatio + dialface.InnerRatio) / 2 * face.Scale
	width := side * (dialface.OuterRatio - dialface.InnerRatio) * face.Scale
	centerX, centerY := float64(w)/2, float64(h)/2

	step := 360.0 / ringSegments
	for i := 0; i < ringSegments; i++ {
		start := float64(i) * step
		end := start + step
		x1, y1 := onRing(centerX, centerY, radius, start)
		x2, y2 := onRing(centerX, centerY, radius, end)
		vector.StrokeLine(screen, float32(x1), float32(y1), float32(x2), float32(y2), float32(width), segmentColor(face, start+step/2), true)
	}

	ebitenutil.DebugPrintAt(screen, game.caption, int(centerX)-len(game.caption)*3, int(centerY)-8)
}

// Layout implements ebiten.Game.
func (game *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != game.width || outsideHeight != game.height {
		game.width = outsideWidth
		game.height = outsideHeight
		if game.controller != nil {
			game.controller.SetViewport(float64(outsideWidth), float64(outsideHeight))
		}
	}
	return outsideWidth, outsideHeight
}

// SetLeft implements sweep.Surface.
func (game *Game) SetLeft(degree float64) { game.angles.Left = degree }

// SetRight implements sweep.Surface.
func (game *Game) SetRight(degree float64) { game.angles.Right = degree }

// TouchCapable implements gesture.Source.
func (game *Game) TouchCapable() bool { return game.input.TouchCapable() }

// ListenMouse implements gesture.Source.
func (game *Game) ListenMouse(listener gesture.MouseListener) func() {
	game.mouse = listener
	return func() { game.mouse = nil }
}

// ListenTouch implements gesture.Source.
func (game *Game) ListenTouch(listener gesture.TouchListener) func() {
	game.touch = listener
	return func() { game.touch = nil }
}

// Caption returns the text drawn in the middle of the ring.
func (game *Game) Caption() string { return game.caption }

func (game *Game) pollMouse() {
	if game.mouse == nil {
		return
	}
	cursor := game.input.Cursor()
	if game.input.MouseJustPressed() {
		game.mouse.MouseDown(cursor)
	} else if cursor != game.cursor {
		game.mouse.MouseMove(cursor)
	}
	game.cursor = cursor
	if game.input.MouseJustReleased() {
		game.mouse.MouseUp(cursor)
	}
}

func (game *Game) pollTouches() {
	if game.touch == nil {
		return
	}
	if started := game.input.JustPressedTouches(); len(started) > 0 {
		for _, touch := range started {
			game.touches[touch.ID] = touch.Point
		}
		game.touch.TouchStart(started)
	}

	var moved []gesture.Touch
	for _, touch := range game.input.Touches() {
		if previous, ok := game.touches[touch.ID]; ok && previous != touch.Point {
			moved = append(moved, touch)
		}
		game.touches[touch.ID] = touch.Point
	}
	if len(moved) > 0 {
		game.touch.TouchMove(moved)
	}

	if ended := game.input.JustReleasedTouches(); len(ended) > 0 {
		for _, touch := range ended {
			delete(game.touches, touch.ID)
		}
		game.touch.TouchEnd(ended)
	}
}

// sync copies the controller's phase and remaining time for drawing. Polling
// once per tick keeps the frame consistent even after a long stall.
func (game *Game) sync() {
	if game.controller == nil {
		return
	}
	snapshot := game.controller.Snapshot()
	game.running = snapshot.Phase == timekeeper.PhaseRunning
	game.finished = snapshot.Phase == timekeeper.PhaseFinished
	game.caption = dialface.Caption(snapshot.Phase, snapshot.Remaining)
}

func segmentColor(face dialface.Face, bearing float64) color.Color {
	switch {
	case face.Finished:
		return dialface.FinishedColor
	case face.Covered(bearing):
		return dialface.RemainingColor
	default:
		return dialface.TrackColor
	}
}

func onRing(centerX, centerY, radius, bearing float64) (float64, float64) {
	radians := bearing * math.Pi / 180
	return centerX + radius*math.Sin(radians), centerY - radius*math.Cos(radians)
}
