package loop

import (
	"sync"
	"sync/atomic"
	"time"
)

// Real drives callbacks from wall-clock timers and hands them to Post.
type Real struct {
	frameInterval time.Duration
	post          func(func())
}

// RealOption configures a Real scheduler.
type RealOption func(*Real)

// WithPost routes callbacks through the host's main-thread dispatcher.
func WithPost(post func(func())) RealOption {
	return func(real *Real) {
		if post != nil {
			real.post = post
		}
	}
}

// WithFrameInterval overrides the frame pacing.
func WithFrameInterval(interval time.Duration) RealOption {
	return func(real *Real) {
		if interval > 0 {
			real.frameInterval = interval
		}
	}
}

// NewReal creates a wall-clock scheduler. Without WithPost callbacks run on
// timer goroutines.
func NewReal(options ...RealOption) *Real {
	real := &Real{
		frameInterval: DefaultFrameInterval,
		post:          func(fn func()) { fn() },
	}
	for _, option := range options {
		option(real)
	}
	return real
}

// Now returns the current wall-clock time.
func (real *Real) Now() time.Time {
	return time.Now()
}

// RequestFrame schedules fn after one frame interval.
func (real *Real) RequestFrame(fn func(now time.Time)) Cancel {
	var canceled atomic.Bool
	timer := time.AfterFunc(real.frameInterval, func() {
		real.post(func() {
			if canceled.Load() {
				return
			}
			fn(time.Now())
		})
	})
	return func() {
		canceled.Store(true)
		timer.Stop()
	}
}

// Every starts a ticker goroutine that posts fn on each tick. fn receives the
// time the posted callback runs, not the tick time.
func (real *Real) Every(interval time.Duration, fn func(now time.Time)) Cancel {
	if interval <= 0 {
		interval = time.Second
	}
	var canceled atomic.Bool
	stopCh := make(chan struct{})
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-stopCh:
				return
			case <-ticker.C:
				real.post(func() {
					if canceled.Load() {
						return
					}
					fn(time.Now())
				})
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			canceled.Store(true)
			close(stopCh)
		})
	}
}
