package chat

import (
	"strings"
	"time"

	"aura/internal/logging"
	"aura/internal/script"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

// =============================================================================
// CHAT PROCESSING
// =============================================================================
// One user message drives one pass of the aura cycle:
//
//	idle -> listening -> processing -> responding -> idle
//
// The reply text is computed up front (it is canned); the cycle only
// paces when it appears. Input sent while a cycle is running is ignored
// until the aura settles, mirroring a real assistant being busy.

// handleChatKey processes keys in chat mode.
func (m Model) handleChatKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEnter {
		return m.sendToCoach()
	}
	if msg.Type == tea.KeyEsc {
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.textinput, cmd = m.textinput.Update(msg)
	return m, cmd
}

// sendToCoach submits the typed message and starts the aura cycle.
func (m Model) sendToCoach() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.textinput.Value())
	if input == "" {
		return m, nil
	}
	if m.aura.State() != script.AuraIdle {
		return m, nil // coach is "busy" until the cycle settles
	}

	if cmd, handled := m.handleChatCommand(input); handled {
		m.textinput.SetValue("")
		return m, cmd
	}

	m.history = append(m.history, Message{
		ID:      uuid.NewString(),
		Role:    "user",
		Content: input,
		Time:    time.Now(),
	})
	m.pendingInput = input
	m.textinput.SetValue("")

	if err := m.prefs.IncrementMetric("messages_sent"); err == nil {
		_ = m.prefs.Save()
	}

	m.aura.To(script.AuraListening)
	return m, auraTickAfter(script.AuraListening.Dwell(), script.AuraProcessing)
}

// handleChatCommand implements the slash commands.
func (m *Model) handleChatCommand(input string) (tea.Cmd, bool) {
	switch input {
	case "/restart":
		return m.restartWizard(), true
	case "/quit", "/exit":
		return tea.Quit, true
	}
	return nil, false
}

// restartWizard throws the profile away and runs the assessment again.
func (m *Model) restartWizard() tea.Cmd {
	if err := m.prefs.IncrementMetric("wizard_restarts"); err == nil {
		_ = m.prefs.Save()
	}
	logging.UI("chat: /restart, rerunning assessment")

	m.coach = nil
	m.history = nil
	m.pendingInput = ""
	m.aura.Settle()
	m.textinput.Blur()
	m.inputMode = InputModeLoading
	return tea.Batch(m.loadSteps(), m.spinner.Tick)
}

// auraTickAfter schedules the next aura state change.
func auraTickAfter(d time.Duration, next script.AuraState) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return auraTickMsg{next: next}
	})
}

// handleAuraTick advances the cycle and emits the reply on the
// responding edge. Out-of-order ticks are rejected by the cycle itself.
func (m Model) handleAuraTick(msg auraTickMsg) (tea.Model, tea.Cmd) {
	if m.aura == nil || !m.aura.To(msg.next) {
		return m, nil
	}

	switch msg.next {
	case script.AuraProcessing:
		return m, auraTickAfter(script.AuraProcessing.Dwell(), script.AuraResponding)

	case script.AuraResponding:
		reply := m.coach.Reply(m.pendingInput)
		m.pendingInput = ""
		return m, tea.Batch(
			func() tea.Msg { return coachReplyMsg{text: reply} },
			auraTickAfter(script.AuraResponding.Dwell(), script.AuraIdle),
		)
	}
	return m, nil
}
