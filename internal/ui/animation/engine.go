// Package animation interpolates numeric values over time, one frame at a
// time, with cancelable handles.
package animation

import (
	"sync"
	"time"

	"dialtimer/internal/core/loop"
)

// Record is a fixed-shape set of named numeric fields.
type Record map[string]float64

// Handle controls a running animation.
type Handle struct {
	mu        sync.Mutex
	canceled  bool
	completed bool
	cancel    loop.Cancel
	done      chan struct{}
}

// Cancel stops the animation. No step callback runs once Cancel returns and
// Done is never closed afterwards. Cancel must not be called from within the
// animation's own step callback.
func (handle *Handle) Cancel() {
	handle.mu.Lock()
	defer handle.mu.Unlock()
	if handle.canceled || handle.completed {
		return
	}
	handle.canceled = true
	if handle.cancel != nil {
		handle.cancel()
		handle.cancel = nil
	}
}

// Done is closed after the final step has been applied.
func (handle *Handle) Done() <-chan struct{} {
	return handle.done
}

// Animate steps from start to end over duration, calling onStep once per
// frame. The last call always receives exactly end.
func Animate(scheduler loop.Scheduler, start, end float64, duration time.Duration, ease EaseFunc, onStep func(float64)) *Handle {
	return run(scheduler, duration, func(elapsed, total float64, expired bool) {
		if expired {
			onStep(end)
			return
		}
		onStep(ease(elapsed, start, end-start, total))
	})
}

// AnimateRecord interpolates every field of start towards the same field of
// end. Fields missing from end keep their start value.
func AnimateRecord(scheduler loop.Scheduler, start, end Record, duration time.Duration, ease EaseFunc, onStep func(Record)) *Handle {
	from := make(Record, len(start))
	to := make(Record, len(start))
	for key, value := range start {
		from[key] = value
		to[key] = value
		if target, ok := end[key]; ok {
			to[key] = target
		}
	}

	return run(scheduler, duration, func(elapsed, total float64, expired bool) {
		if expired {
			onStep(copyRecord(to))
			return
		}
		value := make(Record, len(from))
		for key, origin := range from {
			value[key] = ease(elapsed, origin, to[key]-origin, total)
		}
		onStep(value)
	})
}

func run(scheduler loop.Scheduler, duration time.Duration, step func(elapsed, total float64, expired bool)) *Handle {
	handle := &Handle{done: make(chan struct{})}
	total := float64(duration / time.Millisecond)

	var startTime time.Time
	var tick func(now time.Time)
	tick = func(now time.Time) {
		handle.mu.Lock()
		defer handle.mu.Unlock()
		if handle.canceled {
			return
		}
		if startTime.IsZero() {
			startTime = now
		}
		elapsed := float64(now.Sub(startTime)) / float64(time.Millisecond)
		expired := elapsed >= total
		step(elapsed, total, expired)
		if expired {
			handle.completed = true
			handle.cancel = nil
			close(handle.done)
			return
		}
		handle.cancel = scheduler.RequestFrame(tick)
	}

	handle.mu.Lock()
	handle.cancel = scheduler.RequestFrame(tick)
	handle.mu.Unlock()
	return handle
}

func copyRecord(record Record) Record {
	clone := make(Record, len(record))
	for key, value := range record {
		clone[key] = value
	}
	return clone
}

// Engine keeps at most one animation in flight.
type Engine struct {
	mu        sync.Mutex
	scheduler loop.Scheduler
	current   *Handle
}

// New creates an animation engine driven by scheduler.
func New(scheduler loop.Scheduler) *Engine {
	return &Engine{scheduler: scheduler}
}

// Start cancels any running animation and begins a new one.
func (engine *Engine) Start(start, end float64, spec Spec, onStep func(float64)) *Handle {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.current != nil {
		engine.current.Cancel()
		engine.current = nil
	}
	ease := spec.Ease
	if ease == nil {
		ease = Linear
	}
	engine.current = Animate(engine.scheduler, start, end, spec.Duration, ease, onStep)
	return engine.current
}

// Stop cancels the running animation, if any.
func (engine *Engine) Stop() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.current != nil {
		engine.current.Cancel()
		engine.current = nil
	}
}
