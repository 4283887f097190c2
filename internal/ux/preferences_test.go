package ux

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	t.Parallel()

	pm := NewPreferencesManager(t.TempDir())
	require.NoError(t, pm.Load())

	prefs := pm.Get()
	assert.Equal(t, PreferencesVersion, prefs.Version)
	assert.False(t, prefs.UserJourney.OnboardingCompleted)
	assert.Zero(t, prefs.Metrics.SessionsCount)
}

func TestSaveAndReload(t *testing.T) {
	t.Parallel()

	ws := t.TempDir()
	pm := NewPreferencesManager(ws)
	require.NoError(t, pm.Load())
	require.NoError(t, pm.MarkOnboardingComplete())
	require.NoError(t, pm.IncrementMetric("sessions_count"))
	require.NoError(t, pm.Save())

	again := NewPreferencesManager(ws)
	require.NoError(t, again.Load())
	prefs := again.Get()
	assert.True(t, prefs.UserJourney.OnboardingCompleted)
	assert.NotEmpty(t, prefs.UserJourney.CompletedAt)
	assert.Equal(t, 1, prefs.Metrics.SessionsCount)
}

func TestLoadRejectsCorruptFile(t *testing.T) {
	t.Parallel()

	ws := t.TempDir()
	path := filepath.Join(ws, ".aura", "preferences.json")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("broken"), 0644))

	pm := NewPreferencesManager(ws)
	assert.Error(t, pm.Load())
}

func TestCompleteOnboardingStepDeduplicates(t *testing.T) {
	t.Parallel()

	pm := NewPreferencesManager(t.TempDir())
	require.NoError(t, pm.Load())

	require.NoError(t, pm.CompleteOnboardingStep("intro"))
	require.NoError(t, pm.CompleteOnboardingStep("style"))
	require.NoError(t, pm.CompleteOnboardingStep("intro"))

	assert.Equal(t, []string{"intro", "style"}, pm.Get().UserJourney.CompletedSteps)
}

func TestSkipOnboardingCountsAsComplete(t *testing.T) {
	t.Parallel()

	pm := NewPreferencesManager(t.TempDir())
	require.NoError(t, pm.Load())
	assert.False(t, pm.IsOnboardingComplete())

	require.NoError(t, pm.SkipOnboarding())
	assert.True(t, pm.IsOnboardingComplete())
}

func TestIncrementMetric(t *testing.T) {
	t.Parallel()

	pm := NewPreferencesManager(t.TempDir())
	require.NoError(t, pm.Load())

	require.NoError(t, pm.IncrementMetric("wizard_restarts"))
	require.NoError(t, pm.IncrementMetric("wizard_restarts"))
	require.NoError(t, pm.IncrementMetric("messages_sent"))
	assert.Error(t, pm.IncrementMetric("unknown_metric"))

	m := pm.Get().Metrics
	assert.Equal(t, 2, m.WizardRestarts)
	assert.Equal(t, 1, m.MessagesSent)
}
