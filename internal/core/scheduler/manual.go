package scheduler

import (
	"sort"
	"sync"
	"time"
)

type manualTask struct {
	handle   Handle
	due      time.Duration
	callback func()
}

// Manual is a Scheduler driven by virtual time. Callbacks run synchronously
// inside Advance.
type Manual struct {
	mu    sync.Mutex
	now   time.Duration
	next  Handle
	tasks map[Handle]manualTask
}

// NewManual creates a Manual scheduler at virtual time zero.
func NewManual() *Manual {
	return &Manual{tasks: make(map[Handle]manualTask)}
}

// ScheduleAfter registers callback to run once virtual time passes delay.
func (manual *Manual) ScheduleAfter(delay time.Duration, callback func()) Handle {
	manual.mu.Lock()
	defer manual.mu.Unlock()

	if delay < 0 {
		delay = 0
	}
	manual.next++
	handle := manual.next
	manual.tasks[handle] = manualTask{
		handle:   handle,
		due:      manual.now + delay,
		callback: callback,
	}
	return handle
}

// Cancel removes a pending callback.
func (manual *Manual) Cancel(handle Handle) bool {
	manual.mu.Lock()
	defer manual.mu.Unlock()

	if _, ok := manual.tasks[handle]; !ok {
		return false
	}
	delete(manual.tasks, handle)
	return true
}

// Advance moves virtual time forward and runs every callback that becomes
// due, in due order. Callbacks scheduled while advancing run too if they fall
// inside the window. It returns the number of callbacks run.
func (manual *Manual) Advance(delta time.Duration) int {
	manual.mu.Lock()
	target := manual.now + delta
	manual.mu.Unlock()

	fired := 0
	for {
		manual.mu.Lock()
		task, ok := manual.nextDueLocked(target)
		if !ok {
			manual.now = target
			manual.mu.Unlock()
			return fired
		}
		delete(manual.tasks, task.handle)
		manual.now = task.due
		manual.mu.Unlock()

		task.callback()
		fired++
	}
}

// Pending returns the number of callbacks waiting to run.
func (manual *Manual) Pending() int {
	manual.mu.Lock()
	defer manual.mu.Unlock()
	return len(manual.tasks)
}

// Now returns the current virtual time.
func (manual *Manual) Now() time.Duration {
	manual.mu.Lock()
	defer manual.mu.Unlock()
	return manual.now
}

func (manual *Manual) nextDueLocked(target time.Duration) (manualTask, bool) {
	due := make([]manualTask, 0, len(manual.tasks))
	for _, task := range manual.tasks {
		if task.due <= target {
			due = append(due, task)
		}
	}
	if len(due) == 0 {
		return manualTask{}, false
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].due != due[j].due {
			return due[i].due < due[j].due
		}
		return due[i].handle < due[j].handle
	})
	return due[0], true
}
