package session

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"pomodomo/internal/core/duration"
	"pomodomo/internal/core/model"
	"pomodomo/internal/core/scheduler"
	"pomodomo/internal/core/timer"
)

var (
	// ErrInvalidTransition indicates an event that the current state does not accept.
	ErrInvalidTransition = errors.New("invalid transition")
	// ErrStopped indicates the controller was used after Stop.
	ErrStopped = errors.New("session stopped")
)

// InputError reports a rejected duration field.
type InputError struct {
	Field timer.Role
	Err   error
}

func (err *InputError) Error() string {
	return fmt.Sprintf("%s input: %v", err.Field, err.Err)
}

func (err *InputError) Unwrap() error {
	return err.Err
}

// Renderer receives display updates from the controller.
type Renderer interface {
	RenderWorkRemaining(display string)
	RenderBreakRemaining(display string)
	SetInputsEnabled(enabled bool)
	SetResetEnabled(enabled bool)
	ReportInvalidInput(field timer.Role)
}

// PhaseRenderer is implemented by renderers that also show the active phase.
type PhaseRenderer interface {
	RenderPhase(phase Phase, state State)
}

// Controller is the start/pause/reset state machine that drives the work
// and break timers.
type Controller struct {
	mu         sync.Mutex
	config     model.SessionConfig
	scheduler  scheduler.Scheduler
	renderer   Renderer
	logger     *log.Logger
	work       *timer.Timer
	brk        *timer.Timer
	state      State
	workInput  string
	breakInput string
	pending    scheduler.Handle
	generation uint64
	events     []chan Event
	stopped    bool
}

type view struct {
	work          string
	brk           string
	phase         Phase
	state         State
	inputsEnabled bool
	resetEnabled  bool
}

// New creates an idle Controller. The default inputs from config are applied
// to the timers when both are valid, and the initial view is rendered.
func New(config model.SessionConfig, sched scheduler.Scheduler, renderer Renderer) *Controller {
	if config.TickInterval <= 0 {
		config.TickInterval = time.Second
	}

	controller := &Controller{
		config:     config,
		scheduler:  sched,
		renderer:   renderer,
		logger:     log.Default(),
		work:       timer.New(timer.RoleWork),
		brk:        timer.New(timer.RoleBreak),
		state:      StateIdle,
		workInput:  config.WorkInput,
		breakInput: config.BreakInput,
	}

	workDuration, workErr := duration.Parse(config.WorkInput)
	breakDuration, breakErr := duration.Parse(config.BreakInput)
	if workErr == nil && breakErr == nil {
		controller.setTimersLocked(workDuration, breakDuration)
	}

	controller.render(controller.snapshotLocked())
	return controller
}

// SetLogger replaces the logger used for ignored events.
func (controller *Controller) SetLogger(logger *log.Logger) {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	if logger == nil {
		logger = log.Default()
	}
	controller.logger = logger
}

// Subscribe registers a new observer channel.
func (controller *Controller) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	controller.mu.Lock()
	defer controller.mu.Unlock()
	if controller.stopped {
		close(ch)
		return ch
	}
	controller.events = append(controller.events, ch)
	return ch
}

// ProvideWorkInput records the text of the work duration field.
func (controller *Controller) ProvideWorkInput(text string) {
	controller.mu.Lock()
	controller.workInput = text
	controller.mu.Unlock()
}

// ProvideBreakInput records the text of the break duration field.
func (controller *Controller) ProvideBreakInput(text string) {
	controller.mu.Lock()
	controller.breakInput = text
	controller.mu.Unlock()
}

// OnStartPausePressed starts an idle session, pauses a running one or
// resumes a paused one.
func (controller *Controller) OnStartPausePressed() error {
	controller.mu.Lock()
	if controller.stopped {
		controller.mu.Unlock()
		return ErrStopped
	}

	switch controller.state {
	case StateIdle:
		if err := controller.startLocked(); err != nil {
			invalid := invalidFields(err)
			event := controller.eventLocked(EventInvalidInput)
			event.Message = err.Error()
			controller.mu.Unlock()

			if controller.renderer != nil {
				for _, field := range invalid {
					controller.renderer.ReportInvalidInput(field)
				}
			}
			controller.emit(event)
			return err
		}
	case StateRunning:
		controller.cancelTickLocked()
		controller.state = StatePaused
	case StatePaused:
		controller.state = StateRunning
		controller.scheduleTickLocked()
	}

	current := controller.snapshotLocked()
	event := controller.eventLocked(EventStateChange)
	controller.mu.Unlock()

	controller.render(current)
	controller.emit(event)
	return nil
}

// OnResetPressed stops the countdown and restores both timers to their
// configured durations.
func (controller *Controller) OnResetPressed() error {
	controller.mu.Lock()
	if controller.stopped {
		controller.mu.Unlock()
		return ErrStopped
	}
	if controller.state == StateIdle {
		controller.logger.Printf("session: reset ignored: %v", ErrInvalidTransition)
		controller.mu.Unlock()
		return fmt.Errorf("reset while idle: %w", ErrInvalidTransition)
	}

	controller.cancelTickLocked()
	controller.work.Reset()
	controller.brk.Reset()
	controller.state = StateIdle

	current := controller.snapshotLocked()
	event := controller.eventLocked(EventStateChange)
	controller.mu.Unlock()

	controller.render(current)
	controller.emit(event)
	return nil
}

// Stop cancels any scheduled tick and closes observers.
func (controller *Controller) Stop() {
	controller.mu.Lock()
	if controller.stopped {
		controller.mu.Unlock()
		return
	}
	controller.cancelTickLocked()
	controller.stopped = true
	events := controller.events
	controller.events = nil
	controller.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

// State returns the current run state.
func (controller *Controller) State() State {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.state
}

// Started reports whether a session is running or paused.
func (controller *Controller) Started() bool {
	return controller.State() != StateIdle
}

// Phase returns the phase that the next tick will count down.
func (controller *Controller) Phase() Phase {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.phaseLocked()
}

// WorkRemaining returns the work timer display.
func (controller *Controller) WorkRemaining() string {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.work.RemainingDisplay()
}

// BreakRemaining returns the break timer display.
func (controller *Controller) BreakRemaining() string {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.brk.RemainingDisplay()
}

// HasPendingTick reports whether a tick is scheduled.
func (controller *Controller) HasPendingTick() bool {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.pending != 0
}

func (controller *Controller) startLocked() error {
	workDuration, workErr := duration.Parse(controller.workInput)
	breakDuration, breakErr := duration.Parse(controller.breakInput)

	var errs []error
	if workErr != nil {
		errs = append(errs, &InputError{Field: timer.RoleWork, Err: workErr})
	}
	if breakErr != nil {
		errs = append(errs, &InputError{Field: timer.RoleBreak, Err: breakErr})
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	controller.setTimersLocked(workDuration, breakDuration)
	controller.state = StateRunning
	controller.scheduleTickLocked()
	return nil
}

func (controller *Controller) setTimersLocked(workDuration, breakDuration time.Duration) {
	if err := controller.work.SetDuration(workDuration); err != nil {
		controller.logger.Printf("session: set work duration: %v", err)
	}
	if err := controller.brk.SetDuration(breakDuration); err != nil {
		controller.logger.Printf("session: set break duration: %v", err)
	}
}

func (controller *Controller) scheduleTickLocked() {
	controller.generation++
	generation := controller.generation
	controller.pending = controller.scheduler.ScheduleAfter(controller.config.TickInterval, func() {
		controller.onTick(generation)
	})
}

func (controller *Controller) cancelTickLocked() {
	if controller.pending != 0 {
		controller.scheduler.Cancel(controller.pending)
		controller.pending = 0
	}
	controller.generation++
}

func (controller *Controller) onTick(generation uint64) {
	controller.mu.Lock()
	if controller.stopped || generation != controller.generation || controller.state != StateRunning {
		controller.logger.Printf("session: stale tick ignored in state %s: %v", controller.state, ErrInvalidTransition)
		controller.mu.Unlock()
		return
	}

	controller.pending = 0
	controller.advanceLocked()
	controller.scheduleTickLocked()

	current := controller.snapshotLocked()
	event := controller.eventLocked(EventProgress)
	controller.mu.Unlock()

	controller.render(current)
	controller.emit(event)
}

// advanceLocked drains the work timer, then the break timer, then starts a
// new cycle.
func (controller *Controller) advanceLocked() {
	switch {
	case !controller.work.IsExhausted():
		controller.tickLocked(controller.work)
	case !controller.brk.IsExhausted():
		controller.tickLocked(controller.brk)
	default:
		controller.work.Reset()
		controller.brk.Reset()
	}
}

func (controller *Controller) tickLocked(active *timer.Timer) {
	if err := active.Tick(); err != nil {
		controller.logger.Printf("session: %s tick skipped: %v", active.Role(), err)
	}
}

func (controller *Controller) phaseLocked() Phase {
	if !controller.work.IsExhausted() {
		return PhaseWork
	}
	return PhaseBreak
}

func (controller *Controller) snapshotLocked() view {
	idle := controller.state == StateIdle
	return view{
		work:          controller.work.RemainingDisplay(),
		brk:           controller.brk.RemainingDisplay(),
		phase:         controller.phaseLocked(),
		state:         controller.state,
		inputsEnabled: idle,
		resetEnabled:  !idle,
	}
}

func (controller *Controller) eventLocked(eventType EventType) Event {
	return Event{
		Type:           eventType,
		State:          controller.state,
		Phase:          controller.phaseLocked(),
		WorkRemaining:  controller.work.Remaining(),
		BreakRemaining: controller.brk.Remaining(),
		At:             time.Now(),
	}
}

func (controller *Controller) render(current view) {
	if controller.renderer == nil {
		return
	}
	controller.renderer.RenderWorkRemaining(current.work)
	controller.renderer.RenderBreakRemaining(current.brk)
	controller.renderer.SetInputsEnabled(current.inputsEnabled)
	controller.renderer.SetResetEnabled(current.resetEnabled)
	if phaseRenderer, ok := controller.renderer.(PhaseRenderer); ok {
		phaseRenderer.RenderPhase(current.phase, current.state)
	}
}

func (controller *Controller) emit(event Event) {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	for _, ch := range controller.events {
		select {
		case ch <- event:
		default:
		}
	}
}

func invalidFields(err error) []timer.Role {
	joined, ok := err.(interface{ Unwrap() []error })
	if !ok {
		var inputErr *InputError
		if errors.As(err, &inputErr) {
			return []timer.Role{inputErr.Field}
		}
		return nil
	}

	var fields []timer.Role
	for _, inner := range joined.Unwrap() {
		var inputErr *InputError
		if errors.As(inner, &inputErr) {
			fields = append(fields, inputErr.Field)
		}
	}
	return fields
}
