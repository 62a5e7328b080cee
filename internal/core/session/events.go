package session

import "time"

// State represents the run state of a session.
type State string

const (
	StateIdle    State = "idle"
	StateRunning State = "running"
	StatePaused  State = "paused"
)

// Phase represents which timer is counting down.
type Phase string

const (
	PhaseWork  Phase = "work"
	PhaseBreak Phase = "break"
)

// EventType defines the type of session event.
type EventType string

const (
	EventStateChange  EventType = "state_change"
	EventProgress     EventType = "progress"
	EventInvalidInput EventType = "invalid_input"
)

// Event represents a session update for observers.
type Event struct {
	Type           EventType
	State          State
	Phase          Phase
	WorkRemaining  time.Duration
	BreakRemaining time.Duration
	Message        string
	At             time.Time
}

// Remaining returns the time left in the event's phase.
func (event Event) Remaining() time.Duration {
	if event.Phase == PhaseBreak {
		return event.BreakRemaining
	}
	return event.WorkRemaining
}
