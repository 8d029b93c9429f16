package gesture

import "math"

// Point is a position in surface coordinates.
type Point struct {
	X float64
	Y float64
}

// Sub returns point - other.
func (point Point) Sub(other Point) Point {
	return Point{X: point.X - other.X, Y: point.Y - other.Y}
}

// Kind identifies the phase of a unified gesture event.
type Kind int

const (
	Down Kind = iota
	Move
	Up
)

func (kind Kind) String() string {
	switch kind {
	case Down:
		return "down"
	case Move:
		return "move"
	case Up:
		return "up"
	default:
		return "unknown"
	}
}

// Event is one step of a gesture regardless of the input modality.
type Event struct {
	Kind     Kind
	Point    Point
	Previous Point
	// Displacement accumulates |dx| and |dy| of every move since the last Down.
	Displacement Point
}

// Handler consumes unified gesture events.
type Handler func(Event)

// Mode is the input modality chosen at activation.
type Mode int

const (
	ModeNone Mode = iota
	ModeMouse
	ModeTouch
)

func (mode Mode) String() string {
	switch mode {
	case ModeMouse:
		return "mouse"
	case ModeTouch:
		return "touch"
	default:
		return "none"
	}
}

// TouchID identifies a finger for the lifetime of its contact.
type TouchID int

// Touch is a single contact point.
type Touch struct {
	ID    TouchID
	Point Point
}

func accumulate(displacement, from, to Point) Point {
	return Point{
		X: displacement.X + math.Abs(to.X-from.X),
		Y: displacement.Y + math.Abs(to.Y-from.Y),
	}
}
