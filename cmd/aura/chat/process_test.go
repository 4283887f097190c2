package chat

import (
	"testing"

	"aura/internal/script"

	tea "github.com/charmbracelet/bubbletea"
)

// chatModel skips straight into chat mode.
func chatModel(t *testing.T) Model {
	t.Helper()
	m := newTestModel(t)
	m, _ = update(t, m, keyRunes("s"))
	if m.inputMode != InputModeChat {
		t.Fatalf("mode = %v, want chat", m.inputMode)
	}
	return m
}

func TestSendStartsAuraCycle(t *testing.T) {
	t.Parallel()

	m := chatModel(t)
	m.textinput.SetValue("I want to get stronger")
	m, cmd := update(t, m, key(tea.KeyEnter))

	if m.aura.State() != script.AuraListening {
		t.Errorf("aura = %v, want listening", m.aura.State())
	}
	if cmd == nil {
		t.Error("send should schedule the next aura tick")
	}
	last := m.history[len(m.history)-1]
	if last.Role != "user" || last.Content != "I want to get stronger" {
		t.Errorf("transcript tail = %+v, want the user message", last)
	}
	if m.textinput.Value() != "" {
		t.Error("send should clear the input")
	}
	if m.pendingInput != "I want to get stronger" {
		t.Error("send should stash the input for the reply")
	}
}

func TestEmptySendIgnored(t *testing.T) {
	t.Parallel()

	m := chatModel(t)
	before := len(m.history)
	m, _ = update(t, m, key(tea.KeyEnter))
	if len(m.history) != before {
		t.Error("empty send must not append to the transcript")
	}
	if m.aura.State() != script.AuraIdle {
		t.Error("empty send must not start the aura cycle")
	}
}

func TestSendWhileBusyIgnored(t *testing.T) {
	t.Parallel()

	m := chatModel(t)
	m.textinput.SetValue("first")
	m, _ = update(t, m, key(tea.KeyEnter))

	m.textinput.SetValue("second")
	before := len(m.history)
	m, _ = update(t, m, key(tea.KeyEnter))
	if len(m.history) != before {
		t.Error("input while the coach is busy must be ignored")
	}
}

func TestAuraCycleDeliversReply(t *testing.T) {
	t.Parallel()

	m := chatModel(t)
	m.textinput.SetValue("I feel stuck")
	m, _ = update(t, m, key(tea.KeyEnter))

	m, cmd := update(t, m, auraTickMsg{next: script.AuraProcessing})
	if m.aura.State() != script.AuraProcessing {
		t.Fatalf("aura = %v, want processing", m.aura.State())
	}
	if cmd == nil {
		t.Fatal("processing should schedule the responding tick")
	}

	m, cmd = update(t, m, auraTickMsg{next: script.AuraResponding})
	if m.aura.State() != script.AuraResponding {
		t.Fatalf("aura = %v, want responding", m.aura.State())
	}
	if m.pendingInput != "" {
		t.Error("responding edge should consume the pending input")
	}
	if cmd == nil {
		t.Fatal("responding should emit the reply command")
	}

	before := len(m.history)
	m, _ = update(t, m, coachReplyMsg{text: "canned reply"})
	if len(m.history) != before+1 {
		t.Fatal("reply message should append to the transcript")
	}
	tail := m.history[len(m.history)-1]
	if tail.Role != "coach" || tail.Content != "canned reply" {
		t.Errorf("transcript tail = %+v", tail)
	}

	m, _ = update(t, m, auraTickMsg{next: script.AuraIdle})
	if m.aura.State() != script.AuraIdle {
		t.Errorf("aura = %v, want idle after the cycle", m.aura.State())
	}
}

func TestStaleAuraTickIgnored(t *testing.T) {
	t.Parallel()

	m := chatModel(t)
	// No cycle running: a stray tick must not move the state.
	m, _ = update(t, m, auraTickMsg{next: script.AuraResponding})
	if m.aura.State() != script.AuraIdle {
		t.Errorf("aura = %v, want idle", m.aura.State())
	}
}

func TestRestartCommand(t *testing.T) {
	t.Parallel()

	m := chatModel(t)
	m.textinput.SetValue("/restart")
	m, cmd := update(t, m, key(tea.KeyEnter))

	if m.inputMode != InputModeLoading {
		t.Errorf("mode after /restart = %v, want loading", m.inputMode)
	}
	if len(m.history) != 0 {
		t.Error("/restart should clear the transcript")
	}
	if m.coach != nil {
		t.Error("/restart should drop the old coach")
	}
	if cmd == nil {
		t.Error("/restart should re-issue the configuration load")
	}
}

func TestQuitCommand(t *testing.T) {
	t.Parallel()

	m := chatModel(t)
	m.textinput.SetValue("/quit")
	_, cmd := update(t, m, key(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("/quit should produce a command")
	}
	if msg := cmd(); msg == nil {
		t.Error("/quit command should emit the quit message")
	}
}
