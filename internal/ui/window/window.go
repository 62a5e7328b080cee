package window

import (
	"fmt"
	"image/color"
	"log"
	"strings"

	"pomodomo/internal/core/session"
	"pomodomo/internal/core/timer"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Config defines the initial window contents.
type Config struct {
	Title      string
	WorkInput  string
	BreakInput string
}

// Controls receives user actions from the window.
type Controls interface {
	OnStartPausePressed() error
	OnResetPressed() error
	ProvideWorkInput(text string)
	ProvideBreakInput(text string)
}

// Window is the main timer window. It renders session state and forwards
// button presses and field edits to its Controls.
type Window struct {
	window      fyne.Window
	workTime    *canvas.Text
	breakTime   *canvas.Text
	phaseLabel  *widget.Label
	statusLabel *widget.Label
	workEntry   *widget.Entry
	breakEntry  *widget.Entry
	startButton *widget.Button
	resetButton *widget.Button
	controls    Controls
	invalid     []timer.Role
	hideOnClose bool
}

const (
	windowWidth  = float32(425)
	windowHeight = float32(300)
	timeTextSize = float32(48)
)

var (
	workColor  = color.NRGBA{R: 229, G: 83, B: 61, A: 255}
	breakColor = color.NRGBA{R: 63, G: 143, B: 58, A: 255}
)

// New creates the main window without showing it.
func New(app fyne.App, config Config) *Window {
	if config.Title == "" {
		config.Title = "Pomodomo"
	}
	window := app.NewWindow(config.Title)
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}

	workTime := newTimeText(workColor)
	breakTime := newTimeText(breakColor)

	workEntry := widget.NewEntry()
	workEntry.SetText(config.WorkInput)
	breakEntry := widget.NewEntry()
	breakEntry.SetText(config.BreakInput)

	phaseLabel := widget.NewLabelWithStyle("Ready", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	statusLabel := widget.NewLabel("")
	statusLabel.Wrapping = fyne.TextWrapWord

	startButton := widget.NewButton("Start", nil)
	resetButton := widget.NewButton("Reset", nil)
	resetButton.Disable()

	timers := container.New(layout.NewFormLayout(),
		widget.NewLabelWithStyle("WORK", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}), workTime,
		widget.NewLabelWithStyle("BREAK", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}), breakTime,
	)
	inputs := container.New(layout.NewFormLayout(),
		widget.NewLabel("Work time (minutes):"), workEntry,
		widget.NewLabel("Break time (minutes):"), breakEntry,
	)
	buttons := container.NewHBox(layout.NewSpacer(), startButton, resetButton, layout.NewSpacer())

	window.SetContent(container.NewVBox(phaseLabel, timers, inputs, buttons, statusLabel))
	window.Resize(fyne.NewSize(windowWidth, windowHeight))

	return &Window{
		window:      window,
		workTime:    workTime,
		breakTime:   breakTime,
		phaseLabel:  phaseLabel,
		statusLabel: statusLabel,
		workEntry:   workEntry,
		breakEntry:  breakEntry,
		startButton: startButton,
		resetButton: resetButton,
	}
}

// Bind connects the window widgets to controls and pushes the current field
// contents to them.
func (win *Window) Bind(controls Controls) {
	win.controls = controls

	win.workEntry.OnChanged = func(text string) {
		win.clearInvalid(timer.RoleWork)
		controls.ProvideWorkInput(text)
	}
	win.breakEntry.OnChanged = func(text string) {
		win.clearInvalid(timer.RoleBreak)
		controls.ProvideBreakInput(text)
	}
	controls.ProvideWorkInput(win.workEntry.Text)
	controls.ProvideBreakInput(win.breakEntry.Text)

	win.startButton.OnTapped = func() {
		win.clearInvalid()
		if err := controls.OnStartPausePressed(); err != nil {
			log.Printf("start/pause: %v", err)
		}
	}
	win.resetButton.OnTapped = func() {
		if err := controls.OnResetPressed(); err != nil {
			log.Printf("reset: %v", err)
		}
	}
}

// Show displays the window and brings it to front.
func (win *Window) Show() {
	win.window.Show()
	win.window.RequestFocus()
}

// HideOnClose makes closing the window hide it instead of quitting, so it
// can be shown again from the tray.
func (win *Window) HideOnClose() {
	win.hideOnClose = true
	win.window.SetCloseIntercept(win.closeRequested)
}

func (win *Window) closeRequested() {
	if win.hideOnClose {
		win.window.Hide()
		return
	}
	win.window.Close()
}

// ShowAndRun displays the window and runs the application event loop.
func (win *Window) ShowAndRun() {
	win.window.ShowAndRun()
}

// RenderWorkRemaining updates the work countdown.
func (win *Window) RenderWorkRemaining(display string) {
	win.workTime.Text = display
	win.workTime.Refresh()
}

// RenderBreakRemaining updates the break countdown.
func (win *Window) RenderBreakRemaining(display string) {
	win.breakTime.Text = display
	win.breakTime.Refresh()
}

// SetInputsEnabled toggles the duration fields. Disabling them also clears
// any previous validation message.
func (win *Window) SetInputsEnabled(enabled bool) {
	if enabled {
		win.workEntry.Enable()
		win.breakEntry.Enable()
		return
	}
	win.workEntry.Disable()
	win.breakEntry.Disable()
	win.clearInvalid()
}

// SetResetEnabled toggles the reset button.
func (win *Window) SetResetEnabled(enabled bool) {
	if enabled {
		win.resetButton.Enable()
		return
	}
	win.resetButton.Disable()
}

// ReportInvalidInput adds a validation message for the field.
func (win *Window) ReportInvalidInput(field timer.Role) {
	for _, reported := range win.invalid {
		if reported == field {
			return
		}
	}
	win.invalid = append(win.invalid, field)
	win.refreshStatus()
}

// clearInvalid drops the messages for fields, or all of them when none are given.
func (win *Window) clearInvalid(fields ...timer.Role) {
	if len(fields) == 0 {
		win.invalid = nil
		win.refreshStatus()
		return
	}
	kept := win.invalid[:0]
	for _, reported := range win.invalid {
		cleared := false
		for _, field := range fields {
			if reported == field {
				cleared = true
			}
		}
		if !cleared {
			kept = append(kept, reported)
		}
	}
	win.invalid = kept
	win.refreshStatus()
}

func (win *Window) refreshStatus() {
	messages := make([]string, 0, len(win.invalid))
	for _, field := range win.invalid {
		messages = append(messages, fmt.Sprintf("Invalid %s time: enter a whole number of minutes greater than zero.", field))
	}
	win.statusLabel.SetText(strings.Join(messages, "\n"))
}

// RenderPhase updates the phase headline and the start button label.
func (win *Window) RenderPhase(phase session.Phase, state session.State) {
	win.phaseLabel.SetText(phaseHeadline(phase, state))
	win.startButton.SetText(startLabel(state))
}

func newTimeText(fill color.Color) *canvas.Text {
	text := canvas.NewText("0:00:00", fill)
	text.TextSize = timeTextSize
	text.TextStyle = fyne.TextStyle{Monospace: true}
	text.Alignment = fyne.TextAlignLeading
	return text
}

func phaseHeadline(phase session.Phase, state session.State) string {
	switch state {
	case session.StateIdle:
		return "Ready"
	case session.StatePaused:
		return "Paused"
	}
	if phase == session.PhaseBreak {
		return "Break"
	}
	return "Work"
}

func startLabel(state session.State) string {
	switch state {
	case session.StateRunning:
		return "Pause"
	case session.StatePaused:
		return "Resume"
	default:
		return "Start"
	}
}
