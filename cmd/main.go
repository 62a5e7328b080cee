package main

import (
	"log"

	"pomodomo/internal/core/scheduler"
	"pomodomo/internal/core/session"
	"pomodomo/internal/platform"
	"pomodomo/internal/storage"
	"pomodomo/internal/ui/tray"
	"pomodomo/internal/ui/window"
	"pomodomo/resources"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
)

const appName = "Pomodomo"

func main() {
	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		log.Printf("single instance: %v", err)
		return
	}
	defer func() {
		_ = guard.Release()
	}()

	settings, err := storage.LoadOrInitSettings(appName)
	if err != nil {
		log.Printf("settings: %v", err)
	}

	fyneApp := app.NewWithID("com.pomodomo.app")
	fyneApp.SetIcon(resources.MustLogo(resources.LogoActive))

	mainWindow := window.New(fyneApp, window.Config{
		Title:      "Pomodomo",
		WorkInput:  settings.WorkMinutes,
		BreakInput: settings.BreakMinutes,
	})

	controller := session.New(settings.SessionConfig(), scheduler.NewClock(fyne.Do), mainWindow)
	mainWindow.Bind(controller)
	defer controller.Stop()

	if desktopApp, ok := fyneApp.(desktop.App); ok && settings.TrayEnabled {
		mainWindow.HideOnClose()
		trayManager := tray.New(desktopApp, tray.Icons{
			Active: resources.MustLogo(resources.LogoActive),
			Paused: resources.MustLogo(resources.LogoPaused),
		}, tray.Callbacks{
			OnShow: mainWindow.Show,
			OnStartPause: func() {
				if err := controller.OnStartPausePressed(); err != nil {
					log.Printf("start/pause: %v", err)
				}
			},
			OnReset: func() {
				if err := controller.OnResetPressed(); err != nil {
					log.Printf("reset: %v", err)
				}
			},
			OnQuit: fyneApp.Quit,
		})

		events := controller.Subscribe(5)
		go func() {
			for event := range events {
				event := event
				fyne.Do(func() {
					trayManager.Update(event)
				})
			}
		}()
	}

	mainWindow.ShowAndRun()
}
