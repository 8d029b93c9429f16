package loop

import (
	"sort"
	"sync"
	"time"
)

// Manual is a Scheduler whose clock only moves when told to. Callbacks run
// synchronously on the goroutine that advances it, which makes it suitable
// both for tests and for hosts that own their own update loop.
type Manual struct {
	mu            sync.Mutex
	now           time.Time
	frameInterval time.Duration
	nextID        uint64
	tasks         map[uint64]*manualTask
}

type manualTask struct {
	id       uint64
	at       time.Time
	interval time.Duration
	fn       func(time.Time)
}

// NewManual creates a Manual scheduler starting at start.
func NewManual(start time.Time, frameInterval time.Duration) *Manual {
	if frameInterval <= 0 {
		frameInterval = DefaultFrameInterval
	}
	return &Manual{
		now:           start,
		frameInterval: frameInterval,
		tasks:         make(map[uint64]*manualTask),
	}
}

// Now returns the scheduler's current time.
func (manual *Manual) Now() time.Time {
	manual.mu.Lock()
	defer manual.mu.Unlock()
	return manual.now
}

// RequestFrame schedules fn one frame interval from now.
func (manual *Manual) RequestFrame(fn func(now time.Time)) Cancel {
	manual.mu.Lock()
	defer manual.mu.Unlock()
	return manual.addLocked(manual.now.Add(manual.frameInterval), 0, fn)
}

// Every schedules fn at each multiple of interval from now.
func (manual *Manual) Every(interval time.Duration, fn func(now time.Time)) Cancel {
	if interval <= 0 {
		interval = time.Second
	}
	manual.mu.Lock()
	defer manual.mu.Unlock()
	return manual.addLocked(manual.now.Add(interval), interval, fn)
}

// Advance moves the clock forward by delta, running every callback that comes
// due in chronological order.
func (manual *Manual) Advance(delta time.Duration) {
	manual.AdvanceTo(manual.Now().Add(delta))
}

// AdvanceTo moves the clock to target, running due callbacks on the way.
// Targets in the past only flush overdue callbacks.
func (manual *Manual) AdvanceTo(target time.Time) {
	for {
		manual.mu.Lock()
		task := manual.nextDueLocked(target)
		if task == nil {
			if target.After(manual.now) {
				manual.now = target
			}
			manual.mu.Unlock()
			return
		}
		if task.at.After(manual.now) {
			manual.now = task.at
		}
		now := manual.now
		if task.interval > 0 {
			task.at = task.at.Add(task.interval)
			if !task.at.After(now) {
				task.at = now.Add(task.interval)
			}
		} else {
			delete(manual.tasks, task.id)
		}
		fn := task.fn
		manual.mu.Unlock()

		fn(now)
	}
}

// Stall moves the clock forward without running anything, as if the host's
// loop had been blocked. Overdue callbacks run late on the next Advance.
func (manual *Manual) Stall(delta time.Duration) {
	manual.mu.Lock()
	defer manual.mu.Unlock()
	manual.now = manual.now.Add(delta)
}

// Pending reports how many callbacks are scheduled.
func (manual *Manual) Pending() int {
	manual.mu.Lock()
	defer manual.mu.Unlock()
	return len(manual.tasks)
}

func (manual *Manual) addLocked(at time.Time, interval time.Duration, fn func(time.Time)) Cancel {
	manual.nextID++
	id := manual.nextID
	manual.tasks[id] = &manualTask{id: id, at: at, interval: interval, fn: fn}
	return func() {
		manual.mu.Lock()
		defer manual.mu.Unlock()
		delete(manual.tasks, id)
	}
}

func (manual *Manual) nextDueLocked(target time.Time) *manualTask {
	due := make([]*manualTask, 0, len(manual.tasks))
	for _, task := range manual.tasks {
		if !task.at.After(target) {
			due = append(due, task)
		}
	}
	if len(due) == 0 {
		return nil
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].at.Equal(due[j].at) {
			return due[i].id < due[j].id
		}
		return due[i].at.Before(due[j].at)
	})
	return due[0]
}
