package storage

import (
	"os"
	"path/filepath"
	"testing"

	"pomodomo/internal/ui/preferences"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettingsFileMissingReturnsDefaults(t *testing.T) {
	settings, err := LoadSettingsFile(filepath.Join(t.TempDir(), "missing.yaml"))

	require.NoError(t, err)
	assert.Equal(t, preferences.DefaultSettings(), settings)
}

func TestSaveAndLoadSettingsFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "nested", settingsFileName)
	saved := preferences.Settings{
		WorkMinutes:  "50",
		BreakMinutes: "10",
		TrayEnabled:  false,
	}

	require.NoError(t, SaveSettingsFile(configPath, saved))
	loaded, err := LoadSettingsFile(configPath)

	require.NoError(t, err)
	assert.Equal(t, saved, loaded)
}

func TestLoadSettingsFileFallsBackPerField(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), settingsFileName)
	content := "work_minutes: \"0.5\"\nbreak_minutes: \"15\"\ntick_interval_ms: -3\n"
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o644))

	settings, err := LoadSettingsFile(configPath)

	require.NoError(t, err)
	defaults := preferences.DefaultSettings()
	assert.Equal(t, defaults.WorkMinutes, settings.WorkMinutes)
	assert.Equal(t, "15", settings.BreakMinutes)
	assert.True(t, settings.TrayEnabled)
}

func TestLoadSettingsFileRejectsMalformedYaml(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), settingsFileName)
	require.NoError(t, os.WriteFile(configPath, []byte("work_minutes: [unterminated"), 0o644))

	settings, err := LoadSettingsFile(configPath)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse settings yaml")
	assert.Equal(t, preferences.DefaultSettings(), settings)
}

func TestLoadOrInitSettingsWritesDefaults(t *testing.T) {
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)
	t.Setenv("HOME", configHome)
	t.Setenv("AppData", configHome)

	settings, err := LoadOrInitSettings("PomodomoTest")
	require.NoError(t, err)
	assert.Equal(t, preferences.DefaultSettings(), settings)

	configPath, err := SettingsPath("PomodomoTest")
	require.NoError(t, err)
	_, err = os.Stat(configPath)
	require.NoError(t, err)

	reloaded, err := LoadSettingsFile(configPath)
	require.NoError(t, err)
	assert.Equal(t, settings, reloaded)
}

func TestLoadSettingsFileIgnoresTickInterval(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), settingsFileName)
	content := "work_minutes: \"25\"\nbreak_minutes: \"5\"\ntick_interval_ms: 250\n"
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o644))

	settings, err := LoadSettingsFile(configPath)

	require.NoError(t, err)
	assert.Equal(t, preferences.DefaultSettings(), settings)
	assert.Zero(t, settings.SessionConfig().TickInterval)

	require.NoError(t, SaveSettingsFile(configPath, settings))
	saved, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.NotContains(t, string(saved), "tick_interval")
}
