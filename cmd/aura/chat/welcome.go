package chat

import (
	"time"

	"aura/internal/logging"
	"aura/internal/profile"
	"aura/internal/script"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

// =============================================================================
// WELCOME SCREEN
// =============================================================================
// The entry screen. Begin kicks off the configuration fetch and the
// wizard; skip goes straight to chat with the default profile, for
// returning users who never want the assessment.

// handleWelcomeKey processes keys on the welcome screen.
func (m Model) handleWelcomeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "b":
		// Returning users who already finished (or skipped) the
		// assessment go straight to chat; "a" reruns it.
		if m.prefs.IsOnboardingComplete() {
			logging.UI("welcome: returning user, skipping assessment")
			return m.skipOnboarding()
		}
		m.inputMode = InputModeLoading
		logging.UI("welcome: begin pressed, loading step configuration")
		return m, tea.Batch(m.loadSteps(), m.spinner.Tick)

	case "a":
		m.inputMode = InputModeLoading
		logging.UI("welcome: assessment requested explicitly")
		return m, tea.Batch(m.loadSteps(), m.spinner.Tick)

	case "s":
		return m.skipOnboarding()

	case "q", "esc":
		return m, tea.Quit
	}
	return m, nil
}

// skipOnboarding bypasses the assessment entirely. The coach runs on
// the default profile: midpoint sliders, no enum leanings.
func (m Model) skipOnboarding() (tea.Model, tea.Cmd) {
	if err := m.prefs.SkipOnboarding(); err == nil {
		_ = m.prefs.Save()
	}
	logging.UI("welcome: onboarding skipped")

	m.coach = script.NewCoach(profile.NewRecord())
	m.aura = &script.Aura{}
	m.inputMode = InputModeChat
	m.history = append(m.history, Message{
		ID:      uuid.NewString(),
		Role:    "coach",
		Content: "No assessment, no problem. Tell me what you'd like to work on and we'll take it from there.",
		Time:    time.Now(),
	})

	m.textinput.SetValue("")
	m.textinput.Placeholder = "Say something to your coach..."
	return m, tea.Batch(m.textinput.Focus(), m.spinner.Tick)
}
