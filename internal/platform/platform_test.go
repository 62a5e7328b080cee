package platform

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLockAddressIsStableAndInRange(t *testing.T) {
	first := lockAddress("Pomodomo")
	assert.Equal(t, first, lockAddress("Pomodomo"))

	var port int
	_, err := fmt.Sscanf(first, "127.0.0.1:%d", &port)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, port, minLockPort)
	assert.LessOrEqual(t, port, maxLockPort)
}

func TestAcquireSingleInstance(t *testing.T) {
	appName := fmt.Sprintf("pomodomo-test-%d", time.Now().UnixNano())

	guard, err := AcquireSingleInstance(appName)
	if err != nil {
		t.Skipf("lock port unavailable: %v", err)
	}
	assert.Equal(t, lockAddress(appName), guard.Address())

	_, err = AcquireSingleInstance(appName)
	require.ErrorIs(t, err, ErrAlreadyRunning)

	require.NoError(t, guard.Release())
	require.NoError(t, guard.Release())
	assert.Empty(t, guard.Address())

	again, err := AcquireSingleInstance(appName)
	require.NoError(t, err)
	require.NoError(t, again.Release())
}

func TestReleaseNilGuard(t *testing.T) {
	var guard *InstanceGuard
	assert.NoError(t, guard.Release())
	assert.Empty(t, guard.Address())
}

func TestConfigDirFallsBackToHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("HOME", home)

	configDir, err := ConfigDir()

	require.NoError(t, err)
	assert.NotEmpty(t, configDir)
}
