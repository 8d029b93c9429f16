package dial

import (
	"image/color"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"

	"dialtimer/internal/core/gesture"
	"dialtimer/internal/core/sweep"
	"dialtimer/internal/ui/dialface"
)

// touchID is the only identifier Fyne's single-pointer touch events can carry.
const touchID gesture.TouchID = 0

// Widget is the interactive dial. It displays overlay angles and feeds raw
// pointer input to whichever gesture listener is registered.
type Widget struct {
	widget.BaseWidget

	mu        sync.Mutex
	angles    sweep.Angles
	running   bool
	finished  bool
	text      string
	mouse     gesture.MouseListener
	touch     gesture.TouchListener
	touchMode bool
	lastPoint gesture.Point
	onResize  func(width, height float64)
}

var (
	_ fyne.Widget       = (*Widget)(nil)
	_ desktop.Mouseable = (*Widget)(nil)
	_ desktop.Hoverable = (*Widget)(nil)
	_ fyne.Draggable    = (*Widget)(nil)
	_ mobile.Touchable  = (*Widget)(nil)
	_ gesture.Source    = (*Widget)(nil)
	_ sweep.Surface     = (*Widget)(nil)
)

// NewWidget creates a dial. onResize receives the widget size whenever it is
// laid out.
func NewWidget(onResize func(width, height float64)) *Widget {
	dial := &Widget{onResize: onResize, text: "--:--"}
	dial.ExtendBaseWidget(dial)
	return dial
}

// CreateRenderer implements fyne.Widget.
func (dial *Widget) CreateRenderer() fyne.WidgetRenderer {
	raster := canvas.NewRasterWithPixels(func(x, y, w, h int) color.Color {
		return dial.face().At(x, y, w, h)
	})
	label := canvas.NewText(dial.Text(), color.NRGBA{R: 0x42, G: 0x42, B: 0x42, A: 0xff})
	label.Alignment = fyne.TextAlignCenter
	label.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	label.TextSize = 22
	return &dialRenderer{dial: dial, raster: raster, label: label}
}

// SetLeft implements sweep.Surface.
func (dial *Widget) SetLeft(degree float64) {
	dial.mu.Lock()
	dial.angles.Left = degree
	dial.mu.Unlock()
	dial.Refresh()
}

// SetRight implements sweep.Surface.
func (dial *Widget) SetRight(degree float64) {
	dial.mu.Lock()
	dial.angles.Right = degree
	dial.mu.Unlock()
	dial.Refresh()
}

// SetRunState switches between the full-size running ring, the shrunken
// idle ring and the finished ring.
func (dial *Widget) SetRunState(running, finished bool) {
	dial.mu.Lock()
	changed := dial.running != running || dial.finished != finished
	dial.running = running
	dial.finished = finished
	dial.mu.Unlock()
	if changed {
		dial.Refresh()
	}
}

// SetText sets the caption drawn in the middle of the ring.
func (dial *Widget) SetText(text string) {
	dial.mu.Lock()
	changed := dial.text != text
	dial.text = text
	dial.mu.Unlock()
	if changed {
		dial.Refresh()
	}
}

// Text returns the current caption.
func (dial *Widget) Text() string {
	dial.mu.Lock()
	defer dial.mu.Unlock()
	return dial.text
}

func (dial *Widget) face() dialface.Face {
	dial.mu.Lock()
	defer dial.mu.Unlock()
	return dialface.ForState(dial.angles, dial.running, dial.finished)
}

// TouchCapable implements gesture.Source.
func (dial *Widget) TouchCapable() bool {
	return fyne.CurrentDevice().IsMobile()
}

// ListenMouse implements gesture.Source.
func (dial *Widget) ListenMouse(listener gesture.MouseListener) func() {
	dial.mu.Lock()
	dial.mouse = listener
	dial.mu.Unlock()
	return func() {
		dial.mu.Lock()
		dial.mouse = nil
		dial.mu.Unlock()
	}
}

// ListenTouch implements gesture.Source.
func (dial *Widget) ListenTouch(listener gesture.TouchListener) func() {
	dial.mu.Lock()
	dial.touch = listener
	dial.mu.Unlock()
	return func() {
		dial.mu.Lock()
		dial.touch = nil
		dial.mu.Unlock()
	}
}

// MouseDown implements desktop.Mouseable.
func (dial *Widget) MouseDown(event *desktop.MouseEvent) {
	if event.Button != desktop.MouseButtonPrimary {
		return
	}
	if listener := dial.mouseListener(); listener != nil {
		listener.MouseDown(point(event.Position))
	}
}

// MouseUp implements desktop.Mouseable.
func (dial *Widget) MouseUp(event *desktop.MouseEvent) {
	if event.Button != desktop.MouseButtonPrimary {
		return
	}
	if listener := dial.mouseListener(); listener != nil {
		listener.MouseUp(point(event.Position))
	}
}

// MouseIn implements desktop.Hoverable.
func (dial *Widget) MouseIn(*desktop.MouseEvent) {}

// MouseMoved implements desktop.Hoverable.
func (dial *Widget) MouseMoved(event *desktop.MouseEvent) {
	if listener := dial.mouseListener(); listener != nil {
		listener.MouseMove(point(event.Position))
	}
}

// MouseOut implements desktop.Hoverable.
func (dial *Widget) MouseOut() {}

// Dragged implements fyne.Draggable. Fyne reports pressed-pointer motion as
// drags on both desktop and mobile.
func (dial *Widget) Dragged(event *fyne.DragEvent) {
	current := point(event.Position)
	dial.mu.Lock()
	dial.lastPoint = current
	touch := dial.touch
	mouse := dial.mouse
	dial.mu.Unlock()

	if touch != nil {
		touch.TouchMove([]gesture.Touch{{ID: touchID, Point: current}})
		return
	}
	if mouse != nil {
		mouse.MouseMove(current)
	}
}

// DragEnd implements fyne.Draggable.
func (dial *Widget) DragEnd() {
	dial.mu.Lock()
	touch := dial.touch
	last := dial.lastPoint
	dial.mu.Unlock()
	if touch != nil {
		touch.TouchEnd([]gesture.Touch{{ID: touchID, Point: last}})
	}
}

// TouchDown implements mobile.Touchable.
func (dial *Widget) TouchDown(event *mobile.TouchEvent) {
	dial.forwardTouch(event, func(listener gesture.TouchListener, touches []gesture.Touch) {
		listener.TouchStart(touches)
	})
}

// TouchUp implements mobile.Touchable.
func (dial *Widget) TouchUp(event *mobile.TouchEvent) {
	dial.forwardTouch(event, func(listener gesture.TouchListener, touches []gesture.Touch) {
		listener.TouchEnd(touches)
	})
}

// TouchCancel implements mobile.Touchable.
func (dial *Widget) TouchCancel(event *mobile.TouchEvent) {
	dial.forwardTouch(event, func(listener gesture.TouchListener, touches []gesture.Touch) {
		listener.TouchCancel(touches)
	})
}

func (dial *Widget) forwardTouch(event *mobile.TouchEvent, deliver func(gesture.TouchListener, []gesture.Touch)) {
	current := point(event.Position)
	dial.mu.Lock()
	dial.lastPoint = current
	listener := dial.touch
	dial.mu.Unlock()
	if listener != nil {
		deliver(listener, []gesture.Touch{{ID: touchID, Point: current}})
	}
}

func (dial *Widget) mouseListener() gesture.MouseListener {
	dial.mu.Lock()
	defer dial.mu.Unlock()
	return dial.mouse
}

func (dial *Widget) resized(size fyne.Size) {
	if dial.onResize != nil {
		dial.onResize(float64(size.Width), float64(size.Height))
	}
}

func point(position fyne.Position) gesture.Point {
	return gesture.Point{X: float64(position.X), Y: float64(position.Y)}
}

type dialRenderer struct {
	dial   *Widget
	raster *canvas.Raster
	label  *canvas.Text
	size   fyne.Size
}

func (renderer *dialRenderer) Layout(size fyne.Size) {
	renderer.raster.Resize(size)
	renderer.raster.Move(fyne.NewPos(0, 0))

	labelSize := renderer.label.MinSize()
	renderer.label.Resize(labelSize)
	renderer.label.Move(fyne.NewPos((size.Width-labelSize.Width)/2, (size.Height-labelSize.Height)/2))

	if size != renderer.size {
		renderer.size = size
		renderer.dial.resized(size)
	}
}

func (renderer *dialRenderer) MinSize() fyne.Size {
	return fyne.NewSize(160, 160)
}

func (renderer *dialRenderer) Refresh() {
	renderer.label.Text = renderer.dial.Text()
	renderer.label.Refresh()
	renderer.raster.Refresh()
	renderer.Layout(renderer.dial.Size())
}

func (renderer *dialRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{renderer.raster, renderer.label}
}

func (renderer *dialRenderer) Destroy() {}
