package chat

import (
	"time"

	"aura/internal/logging"
	"aura/internal/profile"
	"aura/internal/script"
	"aura/internal/steps"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

// Update is the bubbletea message dispatcher.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.textinput.Width = min(60, msg.Width-6)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case stepsLoadedMsg:
		return m.handleStepsLoaded(msg)

	case stepsReloadedMsg:
		return m.handleStepsReloaded(msg)

	case revealMsg:
		return m.handleReveal(msg)

	case stepCommitMsg:
		return m.handleCommit(msg)

	case wizardDoneMsg:
		return m.enterChat(msg.payload)

	case auraTickMsg:
		return m.handleAuraTick(msg)

	case coachReplyMsg:
		m.history = append(m.history, Message{
			ID:      uuid.NewString(),
			Role:    "coach",
			Content: msg.text,
			Time:    time.Now(),
		})
		return m, nil
	}

	// Text input consumes everything else while focused.
	if m.textinput.Focused() {
		var cmd tea.Cmd
		m.textinput, cmd = m.textinput.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKey routes keys by input mode.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	switch m.inputMode {
	case InputModeWelcome:
		return m.handleWelcomeKey(msg)
	case InputModeLoading:
		return m, nil
	case InputModeOnboarding:
		return m.handleWizardKey(msg)
	case InputModeChat:
		return m.handleChatKey(msg)
	case InputModeError:
		return m.handleErrorKey(msg)
	}
	return m, nil
}

// handleMouse forwards mouse events to the slider when one is active.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.inputMode != InputModeOnboarding || m.wizard == nil || m.wizard.Slider == nil {
		return m, nil
	}
	if m.wizard.Pending != nil {
		return m, nil
	}
	sl := m.wizard.Slider
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			sl.StartDrag(msg.X)
		}
	case tea.MouseActionMotion:
		sl.Drag(msg.X)
	case tea.MouseActionRelease:
		sl.Release(msg.X)
	}
	return m, nil
}

// handleErrorKey implements the retry screen.
func (m Model) handleErrorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "r", "enter":
		m.loadErr = nil
		m.inputMode = InputModeLoading
		logging.Fetch("retrying step configuration load")
		return m, tea.Batch(m.loadSteps(), m.spinner.Tick)
	case "q", "esc":
		return m, tea.Quit
	}
	return m, nil
}

// handleStepsLoaded resolves the configuration fetch. On failure the
// session enters the error mode: no step content is rendered from a
// failed load, only the retry screen.
func (m Model) handleStepsLoaded(msg stepsLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.loadErr = msg.err
		m.inputMode = InputModeError
		return m, nil
	}

	var cmds []tea.Cmd
	if cmd := m.startWatcher(); cmd != nil {
		cmds = append(cmds, cmd)
	}

	var cmd tea.Cmd
	m, cmd = m.startWizard(msg.seq, msg.initial)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// startWatcher arms the dev-mode reload watcher for local file sources.
func (m *Model) startWatcher() tea.Cmd {
	if m.watcher != nil || !m.Config.WatchSteps {
		return nil
	}
	src := m.client.Source()
	if src == "" || steps.IsRemote(src) {
		return nil
	}

	ch := m.reloadCh
	w, err := steps.WatchFile(src, func(seq *steps.Sequence, initial map[string]any) {
		select {
		case ch <- stepsReloadedMsg{seq: seq, initial: initial}:
		default:
		}
	})
	if err != nil {
		logging.FetchError("step watcher unavailable: %v", err)
		return nil
	}
	m.watcher = w
	return m.waitForReload()
}

// handleStepsReloaded restarts the wizard on the fresh sequence. Only
// meaningful mid-onboarding; a reload during chat is ignored.
func (m Model) handleStepsReloaded(msg stepsReloadedMsg) (tea.Model, tea.Cmd) {
	rearm := m.waitForReload()
	if m.inputMode != InputModeOnboarding {
		return m, rearm
	}
	logging.Steps("step file changed, restarting wizard")
	var cmd tea.Cmd
	m, cmd = m.startWizard(msg.seq, msg.initial)
	return m, tea.Batch(cmd, rearm)
}

// handleReveal uncovers the next message line, then starts the advance
// timer once the last line is visible. Stale reveals from a step we
// already left are dropped.
func (m Model) handleReveal(msg revealMsg) (tea.Model, tea.Cmd) {
	if m.inputMode != InputModeOnboarding || m.seqr == nil {
		return m, nil
	}
	step := m.seqr.Current()
	if step.ID != msg.stepID || m.wizard.Revealed != msg.index {
		return m, nil
	}

	m.wizard.Revealed++
	if m.wizard.Revealed < len(step.Messages) {
		return m, revealAfter(step.ID, m.wizard.Revealed)
	}
	return m.scheduleAutoAdvance(step.ID)
}

// handleCommit finalizes a transition after its animation delay.
func (m Model) handleCommit(msg stepCommitMsg) (tea.Model, tea.Cmd) {
	if m.seqr == nil || !m.seqr.Commit(msg.t) {
		return m, nil // stale timer, already invalidated
	}

	if msg.t.Terminal {
		return m.finishWizard()
	}

	m.wizard.Visited = append(m.wizard.Visited, msg.t.From)
	return m.enterStep(m.seqr.Current())
}

// finishWizard encodes the record and hands off to chat.
func (m Model) finishWizard() (tea.Model, tea.Cmd) {
	rec, err := m.seqr.CompleteRecord()
	if err != nil {
		logging.StepsWarn("completion read before done: %v", err)
		return m, nil
	}
	payload, err := rec.Encode()
	if err != nil {
		m.loadErr = err
		m.inputMode = InputModeError
		return m, nil
	}

	if err := m.prefs.MarkOnboardingComplete(); err == nil {
		_ = m.prefs.Save()
	}
	logging.Steps("wizard handoff (complete=%v)", rec.Complete())
	return m, func() tea.Msg { return wizardDoneMsg{payload: payload} }
}

// enterChat decodes the handoff payload and opens the conversation.
func (m Model) enterChat(payload string) (tea.Model, tea.Cmd) {
	rec, err := profile.DecodeRecord(payload)
	if err != nil {
		// A corrupt payload falls back to the default profile rather
		// than stranding the user between screens.
		logging.ScriptDebug("handoff decode failed, using defaults: %v", err)
		rec = profile.NewRecord()
	}

	m.coach = script.NewCoach(rec)
	m.aura = &script.Aura{}
	m.inputMode = InputModeChat
	m.history = append(m.history, Message{
		ID:      uuid.NewString(),
		Role:    "coach",
		Content: m.coach.Greeting(),
		Time:    time.Now(),
	})

	m.textinput.SetValue("")
	m.textinput.Placeholder = "Say something to your coach..."
	return m, tea.Batch(m.textinput.Focus(), m.spinner.Tick)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
