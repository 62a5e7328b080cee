package tray

import (
	"fmt"

	"pomodomo/internal/core/duration"
	"pomodomo/internal/core/session"

	"fyne.io/fyne/v2"
	"fyne.io/systray"
)

// App is the part of desktop.App the tray needs.
type App interface {
	SetSystemTrayMenu(menu *fyne.Menu)
	SetSystemTrayIcon(icon fyne.Resource)
}

// Icons holds the tray icons for each run state.
type Icons struct {
	Active fyne.Resource
	Paused fyne.Resource
}

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow       func()
	OnStartPause func()
	OnReset      func()
	OnQuit       func()
}

// Manager handles system tray state.
type Manager struct {
	app         App
	icons       Icons
	callbacks   Callbacks
	statusItem  *fyne.MenuItem
	startItem   *fyne.MenuItem
	resetItem   *fyne.MenuItem
	state       session.State
	statusLabel string
	setTooltip  func(string)
}

// New creates a tray manager with the provided callbacks.
func New(app App, icons Icons, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:         app,
		icons:       icons,
		callbacks:   callbacks,
		state:       session.StateIdle,
		statusLabel: "ready",
		setTooltip:  systray.SetTooltip,
	}

	manager.statusItem = fyne.NewMenuItem("", nil)
	manager.statusItem.Disabled = true
	manager.startItem = fyne.NewMenuItem("Start", func() {
		if manager.callbacks.OnStartPause != nil {
			manager.callbacks.OnStartPause()
		}
	})
	manager.resetItem = fyne.NewMenuItem("Reset", func() {
		if manager.callbacks.OnReset != nil {
			manager.callbacks.OnReset()
		}
	})

	manager.refreshStatus()
	manager.refreshMenu()
	manager.refreshIcon()
	return manager
}

// Update applies a session event to the tray.
func (manager *Manager) Update(event session.Event) {
	manager.state = event.State
	switch event.State {
	case session.StateIdle:
		manager.statusLabel = "ready"
	case session.StatePaused:
		manager.statusLabel = fmt.Sprintf("%s %s (paused)", event.Phase, duration.Format(event.Remaining()))
	default:
		manager.statusLabel = fmt.Sprintf("%s %s", event.Phase, duration.Format(event.Remaining()))
	}

	manager.startItem.Label = startLabel(event.State)
	manager.refreshStatus()
	manager.refreshMenu()
	if manager.setTooltip != nil {
		manager.setTooltip(fmt.Sprintf("Pomodomo: %s", manager.statusLabel))
	}
	if event.Type == session.EventStateChange {
		manager.refreshIcon()
	}
}

// Status returns the current status line.
func (manager *Manager) Status() string {
	return manager.statusItem.Label
}

func (manager *Manager) refreshStatus() {
	manager.statusItem.Label = fmt.Sprintf("Status: %s", manager.statusLabel)
}

func (manager *Manager) refreshIcon() {
	icon := manager.icons.Active
	if manager.state == session.StatePaused && manager.icons.Paused != nil {
		icon = manager.icons.Paused
	}
	if icon != nil {
		manager.app.SetSystemTrayIcon(icon)
	}
}

func (manager *Manager) refreshMenu() {
	manager.resetItem.Disabled = manager.state == session.StateIdle
	show := fyne.NewMenuItem("Show", func() {
		if manager.callbacks.OnShow != nil {
			manager.callbacks.OnShow()
		}
	})
	quit := fyne.NewMenuItem("Quit", func() {
		if manager.callbacks.OnQuit != nil {
			manager.callbacks.OnQuit()
		}
	})
	quit.IsQuit = true
	manager.app.SetSystemTrayMenu(fyne.NewMenu("Pomodomo",
		manager.statusItem,
		fyne.NewMenuItemSeparator(),
		show,
		manager.startItem,
		manager.resetItem,
		fyne.NewMenuItemSeparator(),
		quit,
	))
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
