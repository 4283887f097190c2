// Package ux tracks user-journey state for aura: whether onboarding
// was completed or skipped, and local usage metrics. Preferences live
// in .aura/preferences.json. The personality profile itself is never
// persisted here; restarting the wizard always builds a fresh record.
package ux

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"aura/internal/logging"
)

// PreferencesVersion is the current schema version for preferences.json.
const PreferencesVersion = "1.0"

// UserPreferences is the on-disk preferences schema.
type UserPreferences struct {
	Version string `json:"version"`

	// UserJourney tracks progression through the app.
	UserJourney JourneyPrefs `json:"user_journey"`

	// Metrics tracks local usage statistics.
	Metrics UserMetrics `json:"metrics"`
}

// JourneyPrefs tracks onboarding state.
type JourneyPrefs struct {
	OnboardingCompleted bool     `json:"onboarding_completed"`
	OnboardingSkippedAt string   `json:"onboarding_skipped_at,omitempty"`
	CompletedAt         string   `json:"completed_at,omitempty"`
	CompletedSteps      []string `json:"completed_steps,omitempty"`
}

// UserMetrics are local counters, never sent anywhere.
type UserMetrics struct {
	SessionsCount  int `json:"sessions_count"`
	WizardRestarts int `json:"wizard_restarts"`
	MessagesSent   int `json:"messages_sent"`
}

// PreferencesManager handles loading/saving preferences.
type PreferencesManager struct {
	mu          sync.RWMutex
	path        string
	preferences *UserPreferences
}

// NewPreferencesManager creates a preferences manager for the workspace.
func NewPreferencesManager(workspace string) *PreferencesManager {
	return &PreferencesManager{
		path: filepath.Join(workspace, ".aura", "preferences.json"),
	}
}

// Load reads preferences from disk, creating defaults if not exists.
func (pm *PreferencesManager) Load() error {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	data, err := os.ReadFile(pm.path)
	if err != nil {
		if os.IsNotExist(err) {
			pm.preferences = DefaultUserPreferences()
			return nil
		}
		return fmt.Errorf("failed to read preferences: %w", err)
	}

	var prefs UserPreferences
	if err := json.Unmarshal(data, &prefs); err != nil {
		return fmt.Errorf("failed to parse preferences: %w", err)
	}

	pm.preferences = &prefs
	return nil
}

// Save writes preferences to disk.
func (pm *PreferencesManager) Save() error {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	if pm.preferences == nil {
		pm.preferences = DefaultUserPreferences()
	}

	if err := os.MkdirAll(filepath.Dir(pm.path), 0755); err != nil {
		return fmt.Errorf("failed to create preferences directory: %w", err)
	}

	data, err := json.MarshalIndent(pm.preferences, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}

	if err := os.WriteFile(pm.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write preferences: %w", err)
	}

	logging.Prefs("preferences saved to %s", pm.path)
	return nil
}

// Get returns the current preferences (thread-safe).
func (pm *PreferencesManager) Get() *UserPreferences {
	pm.mu.RLock()
	defer pm.mu.RUnlock()

	if pm.preferences == nil {
		return DefaultUserPreferences()
	}
	return pm.preferences
}

// CompleteOnboardingStep records a step the user passed through.
func (pm *PreferencesManager) CompleteOnboardingStep(step string) error {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	if pm.preferences == nil {
		pm.preferences = DefaultUserPreferences()
	}

	for _, s := range pm.preferences.UserJourney.CompletedSteps {
		if s == step {
			return nil
		}
	}
	pm.preferences.UserJourney.CompletedSteps = append(
		pm.preferences.UserJourney.CompletedSteps, step)
	return nil
}

// MarkOnboardingComplete marks the assessment as finished.
func (pm *PreferencesManager) MarkOnboardingComplete() error {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	if pm.preferences == nil {
		pm.preferences = DefaultUserPreferences()
	}

	pm.preferences.UserJourney.OnboardingCompleted = true
	pm.preferences.UserJourney.CompletedAt = time.Now().Format(time.RFC3339)
	return nil
}

// SkipOnboarding marks the assessment as skipped.
func (pm *PreferencesManager) SkipOnboarding() error {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	if pm.preferences == nil {
		pm.preferences = DefaultUserPreferences()
	}

	pm.preferences.UserJourney.OnboardingSkippedAt = time.Now().Format(time.RFC3339)
	return nil
}

// IsOnboardingComplete returns true if the assessment finished or was
// skipped at least once before.
func (pm *PreferencesManager) IsOnboardingComplete() bool {
	prefs := pm.Get()
	return prefs.UserJourney.OnboardingCompleted || prefs.UserJourney.OnboardingSkippedAt != ""
}

// IncrementMetric increments a numeric metric.
func (pm *PreferencesManager) IncrementMetric(metric string) error {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	if pm.preferences == nil {
		pm.preferences = DefaultUserPreferences()
	}

	switch metric {
	case "sessions_count":
		pm.preferences.Metrics.SessionsCount++
	case "wizard_restarts":
		pm.preferences.Metrics.WizardRestarts++
	case "messages_sent":
		pm.preferences.Metrics.MessagesSent++
	default:
		return fmt.Errorf("unknown metric: %s", metric)
	}
	return nil
}

// DefaultUserPreferences returns defaults for new users.
func DefaultUserPreferences() *UserPreferences {
	return &UserPreferences{
		Version: PreferencesVersion,
	}
}
