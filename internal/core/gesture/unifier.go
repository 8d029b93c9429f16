// Package gesture turns mouse and multi-touch input into a single stream of
// down, move and up events so consumers never branch on input modality.
package gesture

import "sync"

// Unifier owns the listener registration on a Source and tracks the pointer
// state needed to emit unified events.
type Unifier struct {
	mu         sync.Mutex
	handler    Handler
	source     Source
	forceMouse bool
	mode       Mode
	remove     func()

	pressed      bool
	tracking     bool
	touchID      TouchID
	previous     Point
	displacement Point
}

// NewUnifier creates an inactive unifier that reports to handler.
func NewUnifier(handler Handler) *Unifier {
	return &Unifier{handler: handler}
}

// Activate registers the listener set matching the source's capabilities.
// Activating again with the same source and flag is a no-op; anything else
// releases the previous registration first.
func (unifier *Unifier) Activate(source Source, forceMouse bool) Mode {
	unifier.mu.Lock()
	defer unifier.mu.Unlock()

	if unifier.remove != nil && unifier.source == source && unifier.forceMouse == forceMouse {
		return unifier.mode
	}
	unifier.deactivateLocked()
	if source == nil {
		return ModeNone
	}

	unifier.source = source
	unifier.forceMouse = forceMouse
	if !forceMouse && source.TouchCapable() {
		unifier.mode = ModeTouch
		unifier.remove = source.ListenTouch(touchAdapter{unifier})
	} else {
		unifier.mode = ModeMouse
		unifier.remove = source.ListenMouse(mouseAdapter{unifier})
	}
	if unifier.remove == nil {
		unifier.remove = func() {}
	}
	return unifier.mode
}

// Deactivate releases the current registration, if any.
func (unifier *Unifier) Deactivate() {
	unifier.mu.Lock()
	defer unifier.mu.Unlock()
	unifier.deactivateLocked()
}

// Mode reports the active modality.
func (unifier *Unifier) Mode() Mode {
	unifier.mu.Lock()
	defer unifier.mu.Unlock()
	return unifier.mode
}

func (unifier *Unifier) deactivateLocked() {
	if unifier.remove != nil {
		unifier.remove()
	}
	unifier.remove = nil
	unifier.source = nil
	unifier.mode = ModeNone
	unifier.pressed = false
	unifier.tracking = false
}

func (unifier *Unifier) dispatch(event Event, ok bool) {
	if ok && unifier.handler != nil {
		unifier.handler(event)
	}
}

func (unifier *Unifier) down(point Point) Event {
	unifier.displacement = Point{}
	event := Event{Kind: Down, Point: point, Previous: unifier.previous, Displacement: unifier.displacement}
	unifier.previous = point
	return event
}

func (unifier *Unifier) move(point Point) Event {
	unifier.displacement = accumulate(unifier.displacement, unifier.previous, point)
	event := Event{Kind: Move, Point: point, Previous: unifier.previous, Displacement: unifier.displacement}
	unifier.previous = point
	return event
}

func (unifier *Unifier) up(point Point) Event {
	return Event{Kind: Up, Point: point, Previous: unifier.previous, Displacement: unifier.displacement}
}

type mouseAdapter struct{ unifier *Unifier }

func (adapter mouseAdapter) MouseDown(point Point) {
	unifier := adapter.unifier
	unifier.mu.Lock()
	unifier.pressed = true
	event := unifier.down(point)
	unifier.mu.Unlock()
	unifier.dispatch(event, true)
}

func (adapter mouseAdapter) MouseMove(point Point) {
	unifier := adapter.unifier
	unifier.mu.Lock()
	if !unifier.pressed {
		unifier.mu.Unlock()
		return
	}
	event := unifier.move(point)
	unifier.mu.Unlock()
	unifier.dispatch(event, true)
}

func (adapter mouseAdapter) MouseUp(point Point) {
	unifier := adapter.unifier
	unifier.mu.Lock()
	wasPressed := unifier.pressed
	unifier.pressed = false
	event := unifier.up(point)
	unifier.mu.Unlock()
	unifier.dispatch(event, wasPressed)
}

type touchAdapter struct{ unifier *Unifier }

func (adapter touchAdapter) TouchStart(touches []Touch) {
	unifier := adapter.unifier
	unifier.mu.Lock()
	if unifier.tracking || len(touches) == 0 {
		unifier.mu.Unlock()
		return
	}
	unifier.tracking = true
	unifier.touchID = touches[0].ID
	event := unifier.down(touches[0].Point)
	unifier.mu.Unlock()
	unifier.dispatch(event, true)
}

func (adapter touchAdapter) TouchMove(touches []Touch) {
	unifier := adapter.unifier
	for _, touch := range touches {
		unifier.mu.Lock()
		if !unifier.tracking || touch.ID != unifier.touchID {
			unifier.mu.Unlock()
			continue
		}
		event := unifier.move(touch.Point)
		unifier.mu.Unlock()
		unifier.dispatch(event, true)
	}
}

func (adapter touchAdapter) TouchEnd(touches []Touch) {
	adapter.release(touches)
}

func (adapter touchAdapter) TouchCancel(touches []Touch) {
	adapter.release(touches)
}

func (adapter touchAdapter) release(touches []Touch) {
	unifier := adapter.unifier
	unifier.mu.Lock()
	if !unifier.tracking || !containsTouch(touches, unifier.touchID) {
		unifier.mu.Unlock()
		return
	}
	unifier.tracking = false
	event := unifier.up(unifier.previous)
	unifier.mu.Unlock()
	unifier.dispatch(event, true)
}

func containsTouch(touches []Touch, id TouchID) bool {
	for _, touch := range touches {
		if touch.ID == id {
			return true
		}
	}
	return false
}
