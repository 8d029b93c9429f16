package timekeeper

import "time"

// Phase is the externally visible mode of the dial.
type Phase string

const (
	PhaseIdle     Phase = "idle"
	PhaseEditing  Phase = "editing"
	PhaseRunning  Phase = "running"
	PhaseFinished Phase = "finished"
)

// EventType defines the type of TimeKeeper event.
type EventType string

const (
	EventPhaseChange    EventType = "phase_change"
	EventProgress       EventType = "progress"
	EventDurationChange EventType = "duration_change"
	EventFinished       EventType = "finished"
)

// Event represents a TimeKeeper update for observers.
type Event struct {
	Type        EventType
	Phase       Phase
	Remaining   time.Duration
	LastSeconds int
	At          time.Time
}

// State is the controller's authoritative timer state. Deadline is non-zero
// exactly when the timer is enabled and not being edited.
type State struct {
	LastSeconds int
	Deadline    time.Time
	Enabled     bool
	Editing     bool
	Finished    bool
}

// Phase derives the visible phase from the state flags.
func (state State) Phase() Phase {
	switch {
	case state.Editing:
		return PhaseEditing
	case state.Enabled && state.Finished:
		return PhaseFinished
	case state.Enabled:
		return PhaseRunning
	default:
		return PhaseIdle
	}
}

// Running reports whether the countdown sampler should be active.
func (state State) Running() bool {
	return state.Enabled && !state.Editing && !state.Finished
}

// Snapshot is a read-only view of the controller.
type Snapshot struct {
	State
	Phase     Phase
	Remaining time.Duration
}

// editSession lives from an accepted down until the matching up.
type editSession struct {
	baseline    float64
	changed     bool
	wasFinished bool
}
