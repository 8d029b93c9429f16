// Package dialface rasterizes the dial ring from overlay angles.
package dialface

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"time"

	"dialtimer/internal/core/sweep"
	"dialtimer/internal/core/timekeeper"
)

const (
	// OuterRatio and InnerRatio are the ring radii relative to the shorter side.
	OuterRatio = 0.45
	InnerRatio = 0.28
	// IdleScale shrinks the ring while the timer is not counting down.
	IdleScale = 0.93
)

var (
	RemainingColor = color.NRGBA{R: 0xe5, G: 0x39, B: 0x35, A: 0xff}
	TrackColor     = color.NRGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff}
	FinishedColor  = color.NRGBA{R: 0xf4, G: 0xa4, B: 0xa2, A: 0xff}
	Transparent    = color.NRGBA{}
)

// Face is everything needed to paint one frame of the dial.
type Face struct {
	Angles   sweep.Angles
	Scale    float64
	Finished bool
}

// ForState builds a face for the given run state.
func ForState(angles sweep.Angles, running, finished bool) Face {
	scale := IdleScale
	if running {
		scale = 1
	}
	return Face{Angles: angles, Scale: scale, Finished: finished}
}

// Bearing returns the clockwise angle of (dx, dy) from 12 o'clock in [0, 360).
func Bearing(dx, dy float64) float64 {
	degree := math.Atan2(dx, -dy) * 180 / math.Pi
	if degree < 0 {
		degree += 360
	}
	return degree
}

// Covered reports whether the remaining-time sector includes bearing. Each
// overlay hides the part of its half that lies before its rotation.
func (face Face) Covered(bearing float64) bool {
	if bearing < 180 {
		return bearing >= face.Angles.Right
	}
	return bearing >= 180+face.Angles.Left
}

// At returns the color of pixel (x, y) on a w by h surface.
func (face Face) At(x, y, w, h int) color.Color {
	scale := face.Scale
	if scale <= 0 {
		scale = 1
	}
	side := math.Min(float64(w), float64(h))
	dx := float64(x) + 0.5 - float64(w)/2
	dy := float64(y) + 0.5 - float64(h)/2
	distance := math.Hypot(dx, dy)
	if distance > side*OuterRatio*scale || distance < side*InnerRatio*scale {
		return Transparent
	}
	switch {
	case face.Finished:
		return FinishedColor
	case face.Covered(Bearing(dx, dy)):
		return RemainingColor
	default:
		return TrackColor
	}
}

// Render paints the whole face into a new image.
func (face Face) Render(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, face.At(x, y, w, h))
		}
	}
	return img
}

// Caption is the text shown in the middle of the dial.
func Caption(phase timekeeper.Phase, remaining time.Duration) string {
	if phase == timekeeper.PhaseFinished {
		return "done"
	}
	if remaining < 0 {
		remaining = 0
	}
	seconds := int((remaining + time.Second - 1) / time.Second)
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
