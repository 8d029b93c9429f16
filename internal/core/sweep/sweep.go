// Package sweep projects remaining time onto the two semicircular overlays of
// the dial.
package sweep

import (
	"math"
	"sync"
)

// FullTurnSeconds is the duration represented by one full dial revolution.
const FullTurnSeconds = 3600

// Angles are the overlay rotations in degrees. Each overlay covers one half
// of the ring so the visible sector can pass 180 degrees.
type Angles struct {
	Left  float64
	Right float64
}

// Project maps remaining seconds onto overlay rotations.
func Project(seconds float64) Angles {
	progress := math.Max(0, math.Min(FullTurnSeconds, seconds)) / FullTurnSeconds
	return Angles{
		Left:  math.Max(0, 0.5-progress) * 360,
		Right: math.Min(0.5, 1-progress) * 360,
	}
}

// Surface displays overlay rotations.
type Surface interface {
	SetLeft(degree float64)
	SetRight(degree float64)
}

// Writer forwards projections to a Surface, skipping values that did not change.
type Writer struct {
	mu       sync.Mutex
	surface  Surface
	last     Angles
	hasLeft  bool
	hasRight bool
}

// NewWriter wraps surface. A nil surface discards writes.
func NewWriter(surface Surface) *Writer {
	return &Writer{surface: surface}
}

// Write projects seconds and pushes the angles that differ from the last write.
func (writer *Writer) Write(seconds float64) Angles {
	angles := Project(seconds)

	writer.mu.Lock()
	writeLeft := !writer.hasLeft || writer.last.Left != angles.Left
	writeRight := !writer.hasRight || writer.last.Right != angles.Right
	writer.last = angles
	writer.hasLeft = true
	writer.hasRight = true
	surface := writer.surface
	writer.mu.Unlock()

	if surface == nil {
		return angles
	}
	if writeLeft {
		surface.SetLeft(angles.Left)
	}
	if writeRight {
		surface.SetRight(angles.Right)
	}
	return angles
}

// Last returns the most recently written angles.
func (writer *Writer) Last() Angles {
	writer.mu.Lock()
	defer writer.mu.Unlock()
	return writer.last
}
