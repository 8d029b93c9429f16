// Package loop schedules timer and frame callbacks onto a single logical thread.
//
// Every callback registered through a Scheduler runs on the host's event loop,
// so callers never need to synchronise callback bodies against each other.
// Cancel functions are idempotent and guarantee that a callback queued before
// cancellation never runs afterwards.
package loop

import "time"

// Cancel stops a scheduled callback. Calling it more than once is safe.
type Cancel func()

// Scheduler provides wall-clock time plus frame and interval callbacks.
type Scheduler interface {
	Now() time.Time
	// RequestFrame runs fn once on the next display refresh.
	RequestFrame(fn func(now time.Time)) Cancel
	// Every runs fn repeatedly at the given interval until canceled.
	Every(interval time.Duration, fn func(now time.Time)) Cancel
}

// DefaultFrameInterval approximates a 60 Hz display refresh.
const DefaultFrameInterval = time.Second / 60
