// Package timekeeper implements the dial timer state machine: gestures adjust
// the duration, a deadline-driven sampler counts down and side effects flow
// out through narrow collaborator interfaces.
package timekeeper

import (
	"fmt"
	"log"
	"math"
	"strconv"
	"sync"
	"time"

	"dialtimer/internal/core/gesture"
	"dialtimer/internal/core/loop"
	"dialtimer/internal/core/model"
	"dialtimer/internal/core/polar"
	"dialtimer/internal/core/sweep"
	"dialtimer/internal/ui/animation"
)

const (
	// HitRadiusRatio is the dial grab radius relative to the shorter viewport side.
	HitRadiusRatio = 0.4
	// SecondsPerTurn is the duration change for one full rotation of the pointer.
	SecondsPerTurn = 3600
	// DefaultSampleInterval is the countdown cadence.
	DefaultSampleInterval = time.Second
)

// Options contains runtime dependencies for TimeKeeper.
type Options struct {
	Scheduler      loop.Scheduler
	Animation      animation.Config
	SampleInterval time.Duration
	Logger         *log.Logger
	FinishTitle    string
}

// TimeKeeper is the dial timer controller. It is the single writer of its
// State; collaborators only receive requests.
type TimeKeeper struct {
	mu           sync.Mutex
	config       model.TimerConfig
	options      Options
	collab       Collaborators
	scheduler    loop.Scheduler
	animations   *animation.Engine
	writer       *sweep.Writer
	logger       *log.Logger
	state        State
	session      *editSession
	width        float64
	height       float64
	soundEnabled bool
	generation   uint64
	stopSampler  loop.Cancel
	closed       bool

	eventsMu sync.Mutex
	events   []chan Event
}

// New creates a TimeKeeper, restoring the last duration and sound flag from
// the settings store, and renders the initial dial.
func New(config model.TimerConfig, options Options, collab Collaborators) (*TimeKeeper, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("new timekeeper: %w", err)
	}
	if options.Scheduler == nil {
		options.Scheduler = loop.NewReal()
	}
	if options.SampleInterval <= 0 {
		options.SampleInterval = DefaultSampleInterval
	}
	if options.Animation.EditStep.Ease == nil || options.Animation.Reset.Ease == nil {
		options.Animation = animation.DefaultConfig()
	}
	if options.Logger == nil {
		options.Logger = log.Default()
	}
	if options.FinishTitle == "" {
		options.FinishTitle = "Timer finished"
	}

	keeper := &TimeKeeper{
		config:     config,
		options:    options,
		collab:     collab,
		scheduler:  options.Scheduler,
		animations: animation.New(options.Scheduler),
		writer:     sweep.NewWriter(collab.Surface),
		logger:     options.Logger,
		state:      State{LastSeconds: config.DefaultSeconds},
	}
	keeper.restoreSettings()
	keeper.display(float64(keeper.state.LastSeconds))
	return keeper, nil
}

// SetViewport records the size of the dial surface; the dial is centered in it.
func (keeper *TimeKeeper) SetViewport(width, height float64) {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	keeper.width = width
	keeper.height = height
}

// HandleGesture applies one unified gesture event.
func (keeper *TimeKeeper) HandleGesture(event gesture.Event) {
	var effects []func()
	keeper.mu.Lock()
	if !keeper.closed {
		switch event.Kind {
		case gesture.Down:
			effects = keeper.downLocked(event)
		case gesture.Move:
			effects = keeper.moveLocked(event)
		case gesture.Up:
			effects = keeper.upLocked(event)
		}
	}
	keeper.mu.Unlock()
	run(effects)
}

// Toggle starts or stops the timer as a tap on the dial would.
func (keeper *TimeKeeper) Toggle() {
	var effects []func()
	keeper.mu.Lock()
	if !keeper.closed && !keeper.state.Editing {
		now := keeper.scheduler.Now()
		effects = keeper.tapLocked(now, keeper.state.Finished)
		effects = append(effects, keeper.phaseEventLocked(now))
	}
	keeper.mu.Unlock()
	run(effects)
}

// SetSoundEnabled switches tick and done sounds and persists the choice.
func (keeper *TimeKeeper) SetSoundEnabled(enabled bool) {
	keeper.mu.Lock()
	keeper.soundEnabled = enabled
	keeper.mu.Unlock()
	keeper.persist(SettingSound, strconv.FormatBool(enabled))
}

// SoundEnabled reports whether sounds are requested.
func (keeper *TimeKeeper) SoundEnabled() bool {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.soundEnabled
}

// Snapshot returns the current state with its derived phase and remaining time.
func (keeper *TimeKeeper) Snapshot() Snapshot {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return Snapshot{
		State:     keeper.state,
		Phase:     keeper.state.Phase(),
		Remaining: keeper.remainingLocked(keeper.scheduler.Now()),
	}
}

// Subscribe registers a new observer channel.
func (keeper *TimeKeeper) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	keeper.eventsMu.Lock()
	keeper.events = append(keeper.events, ch)
	keeper.eventsMu.Unlock()
	return ch
}

// Close stops the sampler and any animation and closes observers.
func (keeper *TimeKeeper) Close() {
	keeper.mu.Lock()
	if keeper.closed {
		keeper.mu.Unlock()
		return
	}
	keeper.closed = true
	keeper.session = nil
	keeper.stopSamplerLocked()
	keeper.mu.Unlock()

	keeper.animations.Stop()

	keeper.eventsMu.Lock()
	events := keeper.events
	keeper.events = nil
	keeper.eventsMu.Unlock()
	for _, ch := range events {
		close(ch)
	}
}

func (keeper *TimeKeeper) downLocked(event gesture.Event) []func() {
	if keeper.state.Editing || !keeper.hitLocked(event.Point) {
		return nil
	}
	now := keeper.scheduler.Now()
	baseline := float64(keeper.state.LastSeconds)
	if keeper.state.Enabled {
		baseline = secondsUntil(keeper.state.Deadline, now)
	}
	keeper.session = &editSession{baseline: baseline, wasFinished: keeper.state.Finished}
	keeper.stopSamplerLocked()
	keeper.state.Deadline = time.Time{}
	keeper.state.Editing = true

	return []func(){
		keeper.animations.Stop,
		keeper.phaseEventLocked(now),
	}
}

func (keeper *TimeKeeper) moveLocked(event gesture.Event) []func() {
	session := keeper.session
	if !keeper.state.Editing || session == nil {
		return nil
	}
	center := keeper.centerLocked()
	current := event.Point.Sub(center)
	previous := event.Previous.Sub(center)
	delta := polar.NormalizeDelta(polar.Angle(current.X, current.Y) - polar.Angle(previous.X, previous.Y))

	adjusted := keeper.config.Clamp(session.baseline - delta/360*SecondsPerTurn)
	session.baseline = adjusted
	snapped := keeper.config.Snap(adjusted)
	if snapped == keeper.state.LastSeconds {
		return nil
	}

	from := keeper.state.LastSeconds
	session.changed = true
	keeper.state.Enabled = false
	keeper.state.Finished = false
	keeper.state.LastSeconds = snapped
	sound := keeper.soundEnabled
	now := keeper.scheduler.Now()
	step := keeper.options.Animation.EditStep

	effects := []func(){
		func() { keeper.persist(SettingLastSeconds, strconv.Itoa(snapped)) },
	}
	if sound {
		effects = append(effects, func() { keeper.play(model.ClipTick) })
	}
	effects = append(effects,
		func() { keeper.animations.Start(float64(from), float64(snapped), step, keeper.display) },
		keeper.eventLocked(EventDurationChange, now),
	)
	return effects
}

func (keeper *TimeKeeper) upLocked(gesture.Event) []func() {
	session := keeper.session
	if !keeper.state.Editing || session == nil {
		return nil
	}
	now := keeper.scheduler.Now()
	keeper.session = nil
	keeper.state.Editing = false

	var effects []func()
	if session.changed {
		keeper.state.Enabled = true
		keeper.state.Finished = false
		effects = keeper.startCycleLocked(now)
	} else {
		effects = keeper.tapLocked(now, session.wasFinished)
	}
	return append(effects, keeper.phaseEventLocked(now))
}

// tapLocked toggles the run state, or resets the dial when it had finished.
func (keeper *TimeKeeper) tapLocked(now time.Time, wasFinished bool) []func() {
	if wasFinished {
		keeper.stopSamplerLocked()
		keeper.state.Enabled = false
		keeper.state.Finished = false
		keeper.state.Deadline = time.Time{}
		target := float64(keeper.state.LastSeconds)
		reset := keeper.options.Animation.Reset
		return []func(){
			func() { keeper.animations.Start(0, target, reset, keeper.display) },
		}
	}
	if keeper.state.Enabled {
		return keeper.stopLocked()
	}
	keeper.state.Enabled = true
	return keeper.startCycleLocked(now)
}

func (keeper *TimeKeeper) startCycleLocked(now time.Time) []func() {
	keeper.state.Finished = false
	keeper.state.Deadline = now.Add(time.Duration(keeper.state.LastSeconds) * time.Second)
	return keeper.startSamplerLocked()
}

func (keeper *TimeKeeper) stopLocked() []func() {
	keeper.stopSamplerLocked()
	keeper.state.Enabled = false
	keeper.state.Finished = false
	keeper.state.Deadline = time.Time{}
	pinned := float64(keeper.state.LastSeconds)
	return []func(){
		keeper.animations.Stop,
		func() { keeper.display(pinned) },
	}
}

func (keeper *TimeKeeper) startSamplerLocked() []func() {
	keeper.stopSamplerLocked()
	generation := keeper.generation
	keeper.stopSampler = keeper.scheduler.Every(keeper.options.SampleInterval, func(now time.Time) {
		keeper.sample(generation, now)
	})
	return []func(){
		keeper.animations.Stop,
		func() { keeper.sample(generation, keeper.scheduler.Now()) },
	}
}

func (keeper *TimeKeeper) stopSamplerLocked() {
	keeper.generation++
	if keeper.stopSampler != nil {
		keeper.stopSampler()
		keeper.stopSampler = nil
	}
}

// sample recomputes the remaining time from the deadline. Samples from a
// canceled run cycle are dropped.
func (keeper *TimeKeeper) sample(generation uint64, now time.Time) {
	keeper.mu.Lock()
	if keeper.closed || generation != keeper.generation || !keeper.state.Running() {
		keeper.mu.Unlock()
		return
	}
	remaining := secondsUntil(keeper.state.Deadline, now)
	effects := []func(){
		func() { keeper.display(remaining) },
		keeper.eventLocked(EventProgress, now),
	}
	if remaining <= 0 {
		keeper.state.Finished = true
		keeper.stopSamplerLocked()
		effects = append(effects, keeper.finishEffectsLocked(now)...)
	}
	keeper.mu.Unlock()
	run(effects)
}

func (keeper *TimeKeeper) finishEffectsLocked(now time.Time) []func() {
	minutes := keeper.state.LastSeconds / model.SecondsPerMinute
	title := keeper.options.FinishTitle
	body := fmt.Sprintf("%d minute timer is done", minutes)
	var effects []func()
	if keeper.soundEnabled {
		effects = append(effects, func() { keeper.play(model.ClipDone) })
	}
	effects = append(effects,
		func() {
			if keeper.collab.Notifier != nil {
				keeper.collab.Notifier.NotifyFinished(title, body)
			}
		},
		keeper.eventLocked(EventFinished, now),
		keeper.phaseEventLocked(now),
	)
	return effects
}

func (keeper *TimeKeeper) hitLocked(point gesture.Point) bool {
	offset := point.Sub(keeper.centerLocked())
	radius := HitRadiusRatio * math.Min(keeper.width, keeper.height)
	return polar.Distance(offset.X, offset.Y) < radius
}

func (keeper *TimeKeeper) centerLocked() gesture.Point {
	return gesture.Point{X: keeper.width / 2, Y: keeper.height / 2}
}

func (keeper *TimeKeeper) remainingLocked(now time.Time) time.Duration {
	switch {
	case keeper.state.Finished && keeper.state.Enabled:
		return 0
	case keeper.state.Running():
		return seconds(secondsUntil(keeper.state.Deadline, now))
	default:
		return time.Duration(keeper.state.LastSeconds) * time.Second
	}
}

func (keeper *TimeKeeper) restoreSettings() {
	store := keeper.collab.Settings
	if store == nil {
		return
	}
	if raw, ok, err := store.Get(SettingLastSeconds); err != nil {
		keeper.logger.Printf("read %s: %v", SettingLastSeconds, err)
	} else if ok {
		if value, err := strconv.Atoi(raw); err == nil {
			keeper.state.LastSeconds = keeper.config.Snap(float64(value))
		} else {
			keeper.logger.Printf("parse %s %q: %v", SettingLastSeconds, raw, err)
		}
	}
	if raw, ok, err := store.Get(SettingSound); err != nil {
		keeper.logger.Printf("read %s: %v", SettingSound, err)
	} else if ok {
		if value, err := strconv.ParseBool(raw); err == nil {
			keeper.soundEnabled = value
		} else {
			keeper.logger.Printf("parse %s %q: %v", SettingSound, raw, err)
		}
	}
}

func (keeper *TimeKeeper) persist(key, value string) {
	if keeper.collab.Settings == nil {
		return
	}
	if err := keeper.collab.Settings.Set(key, value); err != nil {
		keeper.logger.Printf("persist %s: %v", key, err)
	}
}

func (keeper *TimeKeeper) play(clip model.Clip) {
	if keeper.collab.Sound != nil {
		keeper.collab.Sound.Play(clip)
	}
}

// display pushes a value to the surface. It never touches controller state,
// so animation frames can call it without the controller lock.
func (keeper *TimeKeeper) display(value float64) {
	keeper.writer.Write(value)
}

func (keeper *TimeKeeper) phaseEventLocked(now time.Time) func() {
	return keeper.eventLocked(EventPhaseChange, now)
}

func (keeper *TimeKeeper) eventLocked(eventType EventType, now time.Time) func() {
	event := Event{
		Type:        eventType,
		Phase:       keeper.state.Phase(),
		Remaining:   keeper.remainingLocked(now),
		LastSeconds: keeper.state.LastSeconds,
		At:          now,
	}
	return func() { keeper.emit(event) }
}

func (keeper *TimeKeeper) emit(event Event) {
	keeper.eventsMu.Lock()
	defer keeper.eventsMu.Unlock()
	for _, ch := range keeper.events {
		select {
		case ch <- event:
		default:
		}
	}
}

func run(effects []func()) {
	for _, effect := range effects {
		effect()
	}
}

func secondsUntil(deadline, now time.Time) float64 {
	return math.Max(0, deadline.Sub(now).Seconds())
}

func seconds(value float64) time.Duration {
	return time.Duration(value * float64(time.Second))
}
