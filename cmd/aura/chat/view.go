package chat

import (
	"fmt"
	"strings"

	"aura/cmd/aura/ui"
	"aura/internal/script"
	"aura/internal/steps"
)

// sliderLeftPad is the screen column of the slider track's first cell:
// content padding plus the card border and its inner padding.
const sliderLeftPad = 6

// View renders the active screen.
func (m Model) View() string {
	var body string
	switch m.inputMode {
	case InputModeWelcome:
		body = m.viewWelcome()
	case InputModeLoading:
		body = m.viewLoading()
	case InputModeOnboarding:
		body = m.viewWizard()
	case InputModeChat:
		body = m.viewChat()
	case InputModeError:
		body = m.viewError()
	}
	return m.styles.Content.Render(body)
}

// viewWelcome renders the entry screen.
func (m Model) viewWelcome() string {
	var b strings.Builder
	b.WriteString(ui.Logo(m.styles))
	b.WriteString("\n")
	b.WriteString(m.styles.Subtitle.Render("Your personal coach, tuned to how you actually work."))
	b.WriteString("\n\n")
	if m.prefs.IsOnboardingComplete() {
		b.WriteString(m.styles.Body.Render("Welcome back."))
		b.WriteString("\n\n")
		b.WriteString(m.styles.Muted.Render("enter chat · a retake assessment · q quit"))
	} else {
		b.WriteString(m.styles.Body.Render("A short assessment shapes how your coach talks to you."))
		b.WriteString("\n\n")
		b.WriteString(m.styles.Muted.Render("enter begin · s skip assessment · q quit"))
	}
	return b.String()
}

// viewLoading covers the configuration fetch.
func (m Model) viewLoading() string {
	return m.spinner.View() + " " + m.styles.Muted.Render("Preparing your assessment...")
}

// viewError renders the load failure. Nothing from the failed load is
// shown; only the error and the retry affordance.
func (m Model) viewError() string {
	var b strings.Builder
	b.WriteString(m.styles.Error.Render("Couldn't load your assessment"))
	b.WriteString("\n\n")
	if m.loadErr != nil {
		b.WriteString(m.styles.Muted.Render(m.loadErr.Error()))
		b.WriteString("\n\n")
	}
	b.WriteString(m.styles.Body.Render("Check your connection and try again."))
	b.WriteString("\n\n")
	b.WriteString(m.styles.Muted.Render("r retry · q quit"))
	return b.String()
}

// viewWizard renders the current assessment step.
func (m Model) viewWizard() string {
	if m.seqr == nil {
		return ""
	}
	step := m.seqr.Current()

	var b strings.Builder
	b.WriteString(m.styles.Muted.Render(
		fmt.Sprintf("step %d of %d", m.seq.Position(step.ID), m.seq.Len())))
	b.WriteString("\n\n")

	switch step.Type {
	case steps.TypeMessages:
		b.WriteString(m.viewMessagesStep(step))
	case steps.TypeTransition:
		b.WriteString(m.viewTransitionStep(step))
	case steps.TypeChoice:
		b.WriteString(m.viewChoiceStep(step))
	case steps.TypeSlider:
		b.WriteString(m.viewSliderStep(step))
	case steps.TypeInput:
		b.WriteString(m.viewInputStep(step))
	}

	b.WriteString("\n\n")
	if m.wizard != nil && m.wizard.Pending != nil && m.seqr.Phase() == steps.PhaseTransitioning {
		b.WriteString(m.styles.Muted.Render("…"))
	} else {
		b.WriteString(m.styles.Footer.Render(wizardHints(step)))
	}
	return b.String()
}

func wizardHints(step *steps.Step) string {
	switch step.Type {
	case steps.TypeChoice:
		return "↑/↓ move · enter select · esc back"
	case steps.TypeSlider:
		return "←/→ adjust · drag with mouse · enter confirm · esc back"
	case steps.TypeInput:
		return "enter submit · esc back"
	}
	return ""
}

// viewMessagesStep shows the revealed portion of the script.
func (m Model) viewMessagesStep(step *steps.Step) string {
	shown := len(step.Messages)
	if m.wizard != nil && m.wizard.Revealed < shown {
		shown = m.wizard.Revealed
	}
	var lines []string
	for _, msg := range step.Messages[:shown] {
		lines = append(lines, m.styles.CoachResponse.Render(msg))
	}
	return strings.Join(lines, "\n\n")
}

// viewTransitionStep shows the banner.
func (m Model) viewTransitionStep(step *steps.Step) string {
	text := step.Question
	if text == "" && len(step.Messages) > 0 {
		text = step.Messages[0]
	}
	return m.styles.Card.Render(m.styles.Title.Render(text))
}

// viewChoiceStep renders the question and its options.
func (m Model) viewChoiceStep(step *steps.Step) string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render(step.Question))
	b.WriteString("\n\n")
	for i, opt := range step.Options {
		line := opt.Text
		if opt.Icon != "" {
			line = opt.Icon + " " + line
		}
		if m.wizard != nil && i == m.wizard.Cursor {
			b.WriteString(m.styles.OptionCursor.Render("▸ "))
			b.WriteString(m.styles.Bold.Render(line))
		} else {
			b.WriteString("  ")
			b.WriteString(m.styles.Option.Render(line))
		}
		b.WriteString("\n")
	}
	return m.styles.Card.Render(strings.TrimRight(b.String(), "\n"))
}

// viewSliderStep renders the question and the slider widget.
func (m Model) viewSliderStep(step *steps.Step) string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render(step.Question))
	b.WriteString("\n\n")
	if m.wizard != nil && m.wizard.Slider != nil {
		b.WriteString(m.wizard.Slider.View(m.styles, sliderLeftPad))
	}
	return m.styles.Card.Render(b.String())
}

// viewInputStep renders the free-text question.
func (m Model) viewInputStep(step *steps.Step) string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render(step.Question))
	b.WriteString("\n\n")
	b.WriteString(m.textinput.View())
	return m.styles.Card.Render(b.String())
}

// viewChat renders the transcript, the aura indicator, and the input.
func (m Model) viewChat() string {
	var b strings.Builder

	for _, msg := range m.history {
		if msg.Role == "user" {
			b.WriteString(m.styles.Bold.Render("you"))
			b.WriteString("\n")
			b.WriteString(m.styles.UserInput.Render(msg.Content))
		} else {
			b.WriteString(m.styles.OptionCursor.Render("aura"))
			b.WriteString("\n")
			b.WriteString(m.styles.CoachResponse.Render(m.renderMarkdown(msg.Content)))
		}
		b.WriteString("\n\n")
	}

	b.WriteString(m.viewAura())
	b.WriteString("\n")
	b.WriteString(m.textinput.View())
	b.WriteString("\n")
	b.WriteString(m.styles.Footer.Render("/restart rerun assessment · esc quit"))
	return b.String()
}

// viewAura renders the animation state line.
func (m Model) viewAura() string {
	if m.aura == nil {
		return ""
	}
	switch m.aura.State() {
	case script.AuraListening:
		return m.styles.Muted.Render("◌ listening")
	case script.AuraProcessing:
		return m.spinner.View() + " " + m.styles.Muted.Render("thinking")
	case script.AuraResponding:
		return m.styles.OptionCursor.Render("● responding")
	}
	return m.styles.Muted.Render("○")
}

// renderMarkdown runs coach text through glamour, falling back to the
// raw string when the renderer is unavailable.
func (m Model) renderMarkdown(text string) string {
	if m.renderer == nil {
		return text
	}
	out, err := m.renderer.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimSpace(out)
}
