package scheduler

import (
	"sync"
	"time"
)

// Handle identifies a scheduled callback. The zero Handle refers to nothing.
type Handle uint64

// Scheduler runs one-shot callbacks after a delay.
type Scheduler interface {
	ScheduleAfter(delay time.Duration, callback func()) Handle
	// Cancel prevents a pending callback from running and reports whether it was pending.
	Cancel(handle Handle) bool
}

// Clock schedules callbacks on the wall clock.
type Clock struct {
	mu       sync.Mutex
	next     Handle
	pending  map[Handle]*time.Timer
	dispatch func(func())
}

// NewClock creates a Clock. Fired callbacks are passed to dispatch, which
// allows them to run on a UI goroutine. A nil dispatch runs them directly.
func NewClock(dispatch func(func())) *Clock {
	if dispatch == nil {
		dispatch = func(run func()) { run() }
	}
	return &Clock{
		pending:  make(map[Handle]*time.Timer),
		dispatch: dispatch,
	}
}

// ScheduleAfter runs callback once after delay unless cancelled first.
func (clock *Clock) ScheduleAfter(delay time.Duration, callback func()) Handle {
	clock.mu.Lock()
	defer clock.mu.Unlock()

	clock.next++
	handle := clock.next
	clock.pending[handle] = time.AfterFunc(delay, func() {
		clock.dispatch(func() {
			if clock.take(handle) {
				callback()
			}
		})
	})
	return handle
}

// Cancel stops a pending callback. A callback that fired but has not yet
// been run by the dispatcher is also suppressed.
func (clock *Clock) Cancel(handle Handle) bool {
	clock.mu.Lock()
	timer, ok := clock.pending[handle]
	delete(clock.pending, handle)
	clock.mu.Unlock()

	if !ok {
		return false
	}
	timer.Stop()
	return true
}

// Pending returns the number of callbacks that have not run or been cancelled.
func (clock *Clock) Pending() int {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	return len(clock.pending)
}

func (clock *Clock) take(handle Handle) bool {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	if _, ok := clock.pending[handle]; !ok {
		return false
	}
	delete(clock.pending, handle)
	return true
}
