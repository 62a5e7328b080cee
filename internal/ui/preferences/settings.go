package preferences

import "pomodomo/internal/core/model"

// Settings defines editable user preferences.
type Settings struct {
	WorkMinutes  string
	BreakMinutes string
	TrayEnabled  bool
}

// DefaultSettings returns default settings for Pomodomo.
func DefaultSettings() Settings {
	return Settings{
		WorkMinutes:  "25",
		BreakMinutes: "5",
		TrayEnabled:  true,
	}
}

// SessionConfig converts settings to a SessionConfig. The tick interval is
// left to the controller's one second default.
func (settings Settings) SessionConfig() model.SessionConfig {
	return model.SessionConfig{
		WorkInput:  settings.WorkMinutes,
		BreakInput: settings.BreakMinutes,
	}
}
