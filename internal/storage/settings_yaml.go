package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"pomodomo/internal/core/duration"
	"pomodomo/internal/platform"
	"pomodomo/internal/ui/preferences"

	"gopkg.in/yaml.v3"
)

const settingsFileName = "settings.yaml"

type yamlSettings struct {
	WorkMinutes  string `yaml:"work_minutes"`
	BreakMinutes string `yaml:"break_minutes"`
	TrayEnabled  *bool  `yaml:"tray_enabled"`
}

// LoadOrInitSettings reads user preferences for appName. When no settings
// file exists yet, one is written with the defaults.
func LoadOrInitSettings(appName string) (preferences.Settings, error) {
	configPath, err := SettingsPath(appName)
	if err != nil {
		return preferences.DefaultSettings(), err
	}

	settings, err := LoadSettingsFile(configPath)
	if err != nil {
		return settings, err
	}
	if _, statErr := os.Stat(configPath); errors.Is(statErr, os.ErrNotExist) {
		if err := SaveSettingsFile(configPath, settings); err != nil {
			return settings, err
		}
	}
	return settings, nil
}

// LoadSettingsFile reads user preferences from YAML.
// If the file does not exist, default settings are returned.
func LoadSettingsFile(configPath string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	rawData, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// SaveSettingsFile writes user preferences to YAML.
func SaveSettingsFile(configPath string, settings preferences.Settings) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	trayEnabled := settings.TrayEnabled
	fileData := yamlSettings{
		WorkMinutes:  settings.WorkMinutes,
		BreakMinutes: settings.BreakMinutes,
		TrayEnabled:  &trayEnabled,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(configPath, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

// SettingsPath returns the settings file location for appName.
func SettingsPath(appName string) (string, error) {
	configDir, err := platform.ConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve settings path: %w", err)
	}
	return filepath.Join(configDir, appName, settingsFileName), nil
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	if _, err := duration.Parse(fileData.WorkMinutes); err == nil {
		settings.WorkMinutes = fileData.WorkMinutes
	}
	if _, err := duration.Parse(fileData.BreakMinutes); err == nil {
		settings.BreakMinutes = fileData.BreakMinutes
	}
	if fileData.TrayEnabled != nil {
		settings.TrayEnabled = *fileData.TrayEnabled
	}
}
