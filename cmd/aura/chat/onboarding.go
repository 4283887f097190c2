package chat

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"aura/internal/logging"
	"aura/internal/steps"

	tea "github.com/charmbracelet/bubbletea"
)

// =============================================================================
// ONBOARDING WIZARD
// =============================================================================
// The wizard walks the assessment step sequence. Pacing rules:
//   - messages steps reveal one line at a time, then auto-advance
//   - transition steps auto-advance after their banner delay
//   - interactive steps wait for a submit, then animate out briefly
// While a transition animates, all wizard input is ignored; the
// sequencer enforces the same rule underneath.

// revealAfter schedules the next message line.
func revealAfter(stepID string, index int) tea.Cmd {
	return tea.Tick(steps.MessageRevealInterval, func(time.Time) tea.Msg {
		return revealMsg{stepID: stepID, index: index}
	})
}

// commitAfter schedules the transition commit at the end of its
// animation delay. The timer is never cancelled; a stale transition is
// rejected by the sequencer when it fires.
func commitAfter(t steps.Transition) tea.Cmd {
	return tea.Tick(t.Delay, func(time.Time) tea.Msg {
		return stepCommitMsg{t: t}
	})
}

// scheduleAutoAdvance fires the transition out of a self-advancing step.
func (m Model) scheduleAutoAdvance(stepID string) (Model, tea.Cmd) {
	t, err := m.seqr.AutoAdvance(stepID)
	if err != nil {
		logging.StepsWarn("auto-advance %q rejected: %v", stepID, err)
		return m, nil
	}
	m.wizard.Pending = &t
	return m, commitAfter(t)
}

// handleWizardKey routes keys while onboarding is active.
func (m Model) handleWizardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.seqr == nil {
		return m, nil
	}
	// Input is frozen during the transition animation.
	if m.seqr.Phase() == steps.PhaseTransitioning {
		return m, nil
	}
	step := m.seqr.Current()

	if msg.Type == tea.KeyEsc {
		return m.goBack(step)
	}

	switch step.Type {
	case steps.TypeChoice:
		return m.handleChoiceKey(step, msg)
	case steps.TypeSlider:
		return m.handleSliderKey(step, msg)
	case steps.TypeInput:
		return m.handleInputKey(step, msg)
	}
	return m, nil
}

// handleChoiceKey moves the cursor and submits a selection.
func (m Model) handleChoiceKey(step *steps.Step, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.wizard.Cursor > 0 {
			m.wizard.Cursor--
		}
		return m, nil
	case "down", "j":
		if m.wizard.Cursor < len(step.Options)-1 {
			m.wizard.Cursor++
		}
		return m, nil
	case "enter", " ":
		return m.submit(step, step.Options[m.wizard.Cursor].ID)
	}

	// Number keys select directly.
	if n, err := strconv.Atoi(msg.String()); err == nil && n >= 1 && n <= len(step.Options) {
		m.wizard.Cursor = n - 1
		return m.submit(step, step.Options[n-1].ID)
	}
	return m, nil
}

// handleSliderKey nudges or submits the slider.
func (m Model) handleSliderKey(step *steps.Step, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	sl := m.wizard.Slider
	if sl == nil {
		return m, nil
	}
	switch msg.String() {
	case "left", "h":
		sl.Nudge(-1)
	case "right", "l":
		sl.Nudge(1)
	case "shift+left":
		sl.Nudge(-5)
	case "shift+right":
		sl.Nudge(5)
	case "enter":
		return m.submit(step, sl.Value)
	}
	return m, nil
}

// handleInputKey feeds the text field and submits on enter. An empty
// submission is ignored; the field stays focused.
func (m Model) handleInputKey(step *steps.Step, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEnter {
		value := strings.TrimSpace(m.textinput.Value())
		if value == "" {
			return m, nil
		}
		m.textinput.Blur()
		return m.submit(step, value)
	}
	var cmd tea.Cmd
	m.textinput, cmd = m.textinput.Update(msg)
	return m, cmd
}

// submit applies the answer and starts the outgoing animation.
func (m Model) submit(step *steps.Step, value any) (tea.Model, tea.Cmd) {
	t, err := m.seqr.Advance(step.ID, value)
	if err != nil {
		if errors.Is(err, steps.ErrTransitioning) {
			return m, nil
		}
		logging.StepsWarn("submit %q rejected: %v", step.ID, err)
		return m, nil
	}
	m.wizard.Pending = &t
	return m, commitAfter(t)
}

// goBack honors the step's declared previous step, falling back to the
// host navigation stack when none is declared.
func (m Model) goBack(step *steps.Step) (tea.Model, tea.Cmd) {
	dest, err := m.seqr.Back(step.ID)
	switch {
	case err == nil:
		// Drop the destination's own departure entry (and anything
		// after it) so the stack stays aligned with where we are now;
		// a later stack-driven back must not land on the current step.
		for i := len(m.wizard.Visited) - 1; i >= 0; i-- {
			if m.wizard.Visited[i] == dest {
				m.wizard.Visited = m.wizard.Visited[:i]
				break
			}
		}

	case errors.Is(err, steps.ErrNoPrevious):
		if len(m.wizard.Visited) == 0 {
			// Backing out of the first step leaves the wizard.
			m.textinput.Blur()
			m.inputMode = InputModeWelcome
			return m, nil
		}
		last := m.wizard.Visited[len(m.wizard.Visited)-1]
		m.wizard.Visited = m.wizard.Visited[:len(m.wizard.Visited)-1]
		if err := m.seqr.Rewind(last); err != nil {
			logging.StepsWarn("back to %q rejected: %v", last, err)
			return m, nil
		}

	default:
		return m, nil
	}

	m.textinput.Blur()
	return m.enterStep(m.seqr.Current())
}
