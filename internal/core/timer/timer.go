package timer

import (
	"errors"
	"time"

	"pomodomo/internal/core/duration"
)

var (
	// ErrUnderflow indicates a tick on a timer that has already run out.
	ErrUnderflow = errors.New("timer underflow")
	// ErrNegativeDuration indicates an attempt to configure a negative duration.
	ErrNegativeDuration = errors.New("negative duration")
)

// Step is the amount of time removed by a single tick.
const Step = time.Second

// Role identifies which phase a timer counts down.
type Role string

const (
	RoleWork  Role = "work"
	RoleBreak Role = "break"
)

// Timer holds the configured length of one phase and the time left in it.
type Timer struct {
	role       Role
	configured time.Duration
	remaining  time.Duration
}

// New creates an empty timer for the given role.
func New(role Role) *Timer {
	return &Timer{role: role}
}

// Role returns the phase this timer belongs to.
func (timer *Timer) Role() Role {
	return timer.role
}

// SetDuration replaces both the configured and remaining time.
func (timer *Timer) SetDuration(value time.Duration) error {
	if value < 0 {
		return ErrNegativeDuration
	}
	value = value.Truncate(time.Second)
	timer.configured = value
	timer.remaining = value
	return nil
}

// Reset restores the remaining time to the configured duration.
func (timer *Timer) Reset() {
	timer.remaining = timer.configured
}

// Tick removes one second from the remaining time.
func (timer *Timer) Tick() error {
	if timer.IsExhausted() {
		return ErrUnderflow
	}
	timer.remaining -= Step
	if timer.remaining < 0 {
		timer.remaining = 0
	}
	return nil
}

// IsExhausted reports whether no time is left.
func (timer *Timer) IsExhausted() bool {
	return timer.remaining <= 0
}

// Configured returns the duration last set on the timer.
func (timer *Timer) Configured() time.Duration {
	return timer.configured
}

// Remaining returns the time left in the current cycle.
func (timer *Timer) Remaining() time.Duration {
	return timer.remaining
}

// RemainingDisplay renders the remaining time as H:MM:SS.
func (timer *Timer) RemainingDisplay() string {
	return duration.Format(timer.remaining)
}
