package chat

import (
	"testing"

	"aura/internal/config"
	"aura/internal/profile"
	"aura/internal/steps"

	tea "github.com/charmbracelet/bubbletea"
)

// newTestModel builds a session model over a throwaway workspace.
func newTestModel(t *testing.T) Model {
	t.Helper()
	return NewModel(t.TempDir(), config.Default())
}

// testFlow is a compact five-step assessment covering every step type.
func testFlow() []steps.Step {
	return []steps.Step{
		{ID: "intro", Type: steps.TypeMessages, Messages: []string{"hello", "welcome"}, NextStep: "style"},
		{ID: "style", Type: steps.TypeChoice, Question: "Pick a style", Field: profile.FieldCoachingStyle,
			Options: []steps.Option{
				{ID: "direct", Text: "Direct", Icon: "⚡"},
				{ID: "supportive", Text: "Supportive", Icon: "🌱"},
			},
			NextStep: "pause"},
		{ID: "pause", Type: steps.TypeTransition, Question: "Almost done", NextStep: "energy"},
		{ID: "energy", Type: steps.TypeSlider, Question: "Energy?", Field: profile.FieldExtraversion,
			Slider:   &steps.SliderSpec{Min: 0, Max: 100, MinLabel: "Low", MaxLabel: "High"},
			NextStep: "focus"},
		{ID: "focus", Type: steps.TypeInput, Question: "Focus?", Field: profile.FieldCurrentFocus,
			PreviousStep: "energy"},
	}
}

// startTestWizard puts the model straight into onboarding on testFlow.
func startTestWizard(t *testing.T) Model {
	t.Helper()
	m := newTestModel(t)
	seq, err := steps.NewSequence(testFlow())
	if err != nil {
		t.Fatalf("build sequence: %v", err)
	}
	if err := seq.Validate(); err != nil {
		t.Fatalf("validate sequence: %v", err)
	}
	next, _ := m.startWizard(seq, nil)
	return next
}

// update drives one message through Update and recovers the Model.
func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	got, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want chat.Model", next)
	}
	return got, cmd
}

// commitPending finalizes the wizard's in-flight transition without
// waiting for the animation timer.
func commitPending(t *testing.T, m Model) (Model, tea.Cmd) {
	t.Helper()
	if m.wizard == nil || m.wizard.Pending == nil {
		t.Fatal("no pending transition to commit")
	}
	return update(t, m, stepCommitMsg{t: *m.wizard.Pending})
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func key(kt tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: kt}
}
