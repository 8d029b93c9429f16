// Package polar converts screen offsets into angles and distances.
package polar

import "math"

// Angle returns the direction of (dx, dy) in degrees relative to the positive
// x axis, in the range (-180, 180]. The origin maps to 0.
func Angle(dx, dy float64) float64 {
	if dx == 0 && dy == 0 {
		return 0
	}
	degree := math.Atan2(dy, dx) * 180 / math.Pi
	if degree <= -180 {
		return 180
	}
	return degree
}

// Distance returns the length of (dx, dy).
func Distance(dx, dy float64) float64 {
	return math.Sqrt(dx*dx + dy*dy)
}

// NormalizeDelta folds the difference of two Angle results into (-180, 180].
func NormalizeDelta(degree float64) float64 {
	if degree > 180 {
		return degree - 360
	}
	if degree <= -180 {
		return degree + 360
	}
	return degree
}
