package chat

import (
	"time"

	"aura/internal/script"
	"aura/internal/steps"
)

// =============================================================================
// INPUT MODES
// =============================================================================
// InputMode is the screen-level state machine. Exactly one mode is
// active at a time; key handling, rendering, and command routing all
// switch on it. The error mode exists so a failed configuration load
// renders only the retry screen and never a half-built wizard.

type InputMode int

const (
	// InputModeWelcome shows the entry screen with the begin prompt.
	InputModeWelcome InputMode = iota
	// InputModeLoading covers the configuration fetch after "begin".
	InputModeLoading
	// InputModeOnboarding walks the assessment wizard.
	InputModeOnboarding
	// InputModeChat is the scripted coach conversation.
	InputModeChat
	// InputModeError shows the load failure and offers a retry.
	InputModeError
)

func (m InputMode) String() string {
	switch m {
	case InputModeWelcome:
		return "welcome"
	case InputModeLoading:
		return "loading"
	case InputModeOnboarding:
		return "onboarding"
	case InputModeChat:
		return "chat"
	case InputModeError:
		return "error"
	}
	return "unknown"
}

// =============================================================================
// MESSAGES (conversation history)
// =============================================================================

// Message is one entry in the chat transcript.
type Message struct {
	ID      string
	Role    string // "user" or "coach"
	Content string
	Time    time.Time
}

// =============================================================================
// WIZARD SCREEN STATE
// =============================================================================

// WizardState is the per-session view state of the onboarding screen.
// The sequencing itself lives in steps.Sequencer; this struct only
// holds what the renderer needs between updates.
type WizardState struct {
	// Revealed counts how many of a messages step's lines are shown.
	Revealed int
	// Cursor is the highlighted option index on choice steps.
	Cursor int
	// Slider is the active widget on slider steps, nil otherwise.
	Slider *Slider
	// Visited is the host-side navigation stack for steps that do not
	// declare an explicit previousStep.
	Visited []string
	// Pending is the transition currently animating, if any.
	Pending *steps.Transition
}

// =============================================================================
// TEA MESSAGES
// =============================================================================
// All bubbletea messages used by the Update loop. Internal commands
// produce these; nothing outside the package sends them.

type (
	// stepsLoadedMsg delivers the configuration fetch result.
	stepsLoadedMsg struct {
		seq     *steps.Sequence
		initial map[string]any
		err     error
	}

	// stepsReloadedMsg arrives from the dev-mode file watcher.
	stepsReloadedMsg struct {
		seq     *steps.Sequence
		initial map[string]any
	}

	// revealMsg uncovers the next line of a messages step.
	revealMsg struct {
		stepID string
		index  int
	}

	// stepCommitMsg fires when a transition's animation delay elapses.
	stepCommitMsg struct {
		t steps.Transition
	}

	// wizardDoneMsg carries the encoded profile into chat mode.
	wizardDoneMsg struct {
		payload string
	}

	// coachReplyMsg delivers the scripted reply after the aura's
	// processing dwell.
	coachReplyMsg struct {
		text string
	}

	// auraTickMsg moves the aura animation one state forward.
	auraTickMsg struct {
		next script.AuraState
	}
)
