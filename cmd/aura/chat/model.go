// Package chat implements the aura TUI: the welcome screen, the
// onboarding assessment wizard, and the scripted coach conversation
// that follows it. One bubbletea Model hosts all three screens and
// switches between them via InputMode.
package chat

import (
	"context"
	"time"

	"aura/cmd/aura/ui"
	"aura/internal/config"
	"aura/internal/logging"
	"aura/internal/profile"
	"aura/internal/script"
	"aura/internal/steps"
	"aura/internal/ux"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
)

// Model is the root bubbletea model for the aura session.
type Model struct {
	workspace string
	Config    *config.Config
	styles    ui.Styles

	inputMode InputMode
	width     int
	height    int

	// Configuration loading.
	client  *steps.Client
	loadErr error

	// Wizard.
	seq    *steps.Sequence
	seqr   *steps.Sequencer
	wizard *WizardState

	// Chat.
	coach        *script.Coach
	aura         *script.Aura
	pendingInput string
	history      []Message
	textinput    textinput.Model
	spinner      spinner.Model
	renderer     *glamour.TermRenderer

	prefs *ux.PreferencesManager

	// Dev-mode file watcher; nil unless watch_steps is on and the
	// source is a local file.
	watcher  *steps.Watcher
	reloadCh chan stepsReloadedMsg
}

// NewModel creates the session model. The configuration fetch does not
// start here; it is kicked off when the user leaves the welcome screen.
func NewModel(workspace string, cfg *config.Config) Model {
	ti := textinput.New()
	ti.Placeholder = "Type your answer..."
	ti.CharLimit = 280
	ti.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	styles := ui.NewStyles(ui.SelectTheme(cfg.Theme))
	sp.Style = styles.OptionCursor

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(76),
	)
	if err != nil {
		logging.UIDebug("glamour renderer unavailable: %v", err)
	}

	prefs := ux.NewPreferencesManager(workspace)
	if err := prefs.Load(); err != nil {
		logging.PrefsError("preferences load failed: %v", err)
	}

	return Model{
		workspace: workspace,
		Config:    cfg,
		styles:    styles,
		inputMode: InputModeWelcome,
		client:    steps.NewClient(cfg.StepsSource, time.Duration(cfg.FetchTimeoutSeconds)*time.Second),
		aura:      &script.Aura{},
		textinput: ti,
		spinner:   sp,
		renderer:  renderer,
		prefs:     prefs,
		reloadCh:  make(chan stepsReloadedMsg, 1),
	}
}

// Init starts the spinner; everything else waits for the begin key.
func (m Model) Init() tea.Cmd {
	logging.Boot("aura session starting (workspace=%s)", m.workspace)
	if err := m.prefs.IncrementMetric("sessions_count"); err == nil {
		_ = m.prefs.Save()
	}
	return m.spinner.Tick
}

// loadSteps fetches and validates the step configuration. The bundled
// assessment is used when no source is configured; a configured source
// that fails produces the error screen, never a silent fallback.
func (m Model) loadSteps() tea.Cmd {
	client := m.client
	timeout := time.Duration(m.Config.FetchTimeoutSeconds) * time.Second
	return func() tea.Msg {
		if client.Source() == "" {
			seq, initial, err := steps.Default()
			return stepsLoadedMsg{seq: seq, initial: initial, err: err}
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		seq, initial, err := client.Load(ctx)
		return stepsLoadedMsg{seq: seq, initial: initial, err: err}
	}
}

// waitForReload blocks on the watcher channel as a long-lived command.
func (m Model) waitForReload() tea.Cmd {
	ch := m.reloadCh
	return func() tea.Msg {
		return <-ch
	}
}

// startWizard builds a fresh sequencer over the loaded sequence.
func (m Model) startWizard(seq *steps.Sequence, initial map[string]any) (Model, tea.Cmd) {
	rec := profile.NewRecord()
	if err := rec.ApplyDefaults(initial); err != nil {
		// Validated at load; a failure here means the initialData block
		// references a field the validator does not cover.
		logging.StepsWarn("initialData rejected: %v", err)
	}

	m.seq = seq
	m.seqr = steps.NewSequencer(seq, rec)
	m.wizard = &WizardState{}
	m.inputMode = InputModeOnboarding

	return m.enterStep(m.seqr.Current())
}

// enterStep prepares view state and timers for a newly current step.
func (m Model) enterStep(step *steps.Step) (Model, tea.Cmd) {
	m.wizard.Revealed = 0
	m.wizard.Cursor = 0
	m.wizard.Slider = nil
	m.wizard.Pending = nil

	if err := m.prefs.CompleteOnboardingStep(step.ID); err == nil {
		_ = m.prefs.Save()
	}

	switch step.Type {
	case steps.TypeMessages:
		// Reveal the first line immediately, the rest on a timer.
		m.wizard.Revealed = 1
		if len(step.Messages) > 1 {
			return m, revealAfter(step.ID, 1)
		}
		return m.scheduleAutoAdvance(step.ID)

	case steps.TypeTransition:
		return m.scheduleAutoAdvance(step.ID)

	case steps.TypeSlider:
		start := (step.Slider.Min + step.Slider.Max) / 2
		if v := m.recordedSliderValue(step.Field); v != nil {
			start = *v
		}
		m.wizard.Slider = NewSlider(*step.Slider, start)
		return m, nil

	case steps.TypeInput:
		m.textinput.SetValue("")
		m.textinput.Placeholder = "Type your answer..."
		return m, m.textinput.Focus()
	}

	return m, nil
}

// recordedSliderValue pre-seeds a slider from the record so revisiting
// the step shows the previous answer.
func (m Model) recordedSliderValue(field string) *int {
	rec := m.seqr.Record()
	switch field {
	case profile.FieldExtraversion:
		v := rec.Extraversion
		return &v
	case profile.FieldAgreeableness:
		v := rec.Agreeableness
		return &v
	}
	return nil
}

// Close releases session resources. Called by the host after the
// program exits.
func (m Model) Close() {
	if m.watcher != nil {
		_ = m.watcher.Close()
	}
	logging.CloseAll()
}
