package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManualRunsInDueOrder(t *testing.T) {
	manual := NewManual()
	var order []string

	manual.ScheduleAfter(3*time.Second, func() { order = append(order, "c") })
	manual.ScheduleAfter(time.Second, func() { order = append(order, "a") })
	manual.ScheduleAfter(time.Second, func() { order = append(order, "b") })

	fired := manual.Advance(2 * time.Second)

	assert.Equal(t, 2, fired)
	assert.Equal(t, []string{"a", "b"}, order)
	assert.Equal(t, 1, manual.Pending())
	assert.Equal(t, 2*time.Second, manual.Now())

	manual.Advance(time.Second)
	assert.Equal(t, []string{"a", "b", "c"}, order)
	assert.Zero(t, manual.Pending())
}

func TestManualCancel(t *testing.T) {
	manual := NewManual()
	ran := false
	handle := manual.ScheduleAfter(time.Second, func() { ran = true })

	assert.True(t, manual.Cancel(handle))
	assert.False(t, manual.Cancel(handle))
	assert.False(t, manual.Cancel(0))

	manual.Advance(time.Hour)
	assert.False(t, ran)
}

func TestManualRunsRescheduledCallbacksWithinWindow(t *testing.T) {
	manual := NewManual()
	count := 0
	var tick func()
	tick = func() {
		count++
		manual.ScheduleAfter(time.Second, tick)
	}
	manual.ScheduleAfter(time.Second, tick)

	fired := manual.Advance(10 * time.Second)

	assert.Equal(t, 10, fired)
	assert.Equal(t, 10, count)
	assert.Equal(t, 1, manual.Pending())
}

func TestClockRunsCallback(t *testing.T) {
	clock := NewClock(nil)
	done := make(chan struct{})

	clock.ScheduleAfter(5*time.Millisecond, func() { close(done) })

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("callback did not run")
	}
	assert.Zero(t, clock.Pending())
}

func TestClockCancelBeforeFire(t *testing.T) {
	clock := NewClock(nil)
	ran := make(chan struct{}, 1)

	handle := clock.ScheduleAfter(50*time.Millisecond, func() { ran <- struct{}{} })
	require.Equal(t, 1, clock.Pending())
	assert.True(t, clock.Cancel(handle))
	assert.False(t, clock.Cancel(handle))

	select {
	case <-ran:
		t.Fatal("cancelled callback ran")
	case <-time.After(150 * time.Millisecond):
	}
	assert.Zero(t, clock.Pending())
}

func TestClockCancelSuppressesDispatchedCallback(t *testing.T) {
	queued := make(chan func(), 1)
	clock := NewClock(func(run func()) { queued <- run })
	ran := false

	handle := clock.ScheduleAfter(time.Millisecond, func() { ran = true })

	var run func()
	select {
	case run = <-queued:
	case <-time.After(2 * time.Second):
		t.Fatal("callback was not dispatched")
	}

	assert.True(t, clock.Cancel(handle))
	run()
	assert.False(t, ran)
}
