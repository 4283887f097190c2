// Package steps models the onboarding assessment as a sequence of step
// descriptors plus a small state machine (the sequencer) that walks
// them. Step descriptors are immutable once loaded from configuration;
// steps form a singly-linked sequence via NextStep references, with
// optional explicit back-links via PreviousStep.
package steps

import (
	"fmt"
	"time"

	"aura/internal/profile"
)

// Type tags the behavior of a step.
type Type string

const (
	// TypeMessages shows a scripted sequence of coach messages and
	// auto-advances once the display timer elapses.
	TypeMessages Type = "messages"
	// TypeChoice asks a question answered by picking one option.
	TypeChoice Type = "choice"
	// TypeTransition shows a short banner and auto-advances.
	TypeTransition Type = "transition"
	// TypeSlider asks for a 0-100 value via the slider widget.
	TypeSlider Type = "slider"
	// TypeInput asks for free text; the final step of the default flow.
	TypeInput Type = "input"
)

// Advance delays per step type. These pace the screen transition
// animation and carry no other meaning.
const (
	messagesDelay   = 1000 * time.Millisecond
	transitionDelay = 800 * time.Millisecond
	interactDelay   = 300 * time.Millisecond

	// messageRevealInterval paces the one-by-one reveal of a
	// messages step before its advance timer starts.
	MessageRevealInterval = 900 * time.Millisecond
)

// Option is one selectable answer of a choice step.
type Option struct {
	ID    string `json:"id" yaml:"id"`
	Text  string `json:"text" yaml:"text"`
	Icon  string `json:"icon,omitempty" yaml:"icon,omitempty"`
	Value string `json:"value,omitempty" yaml:"value,omitempty"`
}

// RecordValue is what gets written into the answer record when this
// option is chosen: the declared Value, or the ID when no Value is set.
func (o Option) RecordValue() string {
	if o.Value != "" {
		return o.Value
	}
	return o.ID
}

// SliderSpec carries the bounds and edge labels of a slider step.
type SliderSpec struct {
	Min      int    `json:"min" yaml:"min"`
	Max      int    `json:"max" yaml:"max"`
	MinLabel string `json:"minLabel,omitempty" yaml:"minLabel,omitempty"`
	MaxLabel string `json:"maxLabel,omitempty" yaml:"maxLabel,omitempty"`
}

// Step describes one screen of the wizard.
type Step struct {
	ID           string      `json:"id" yaml:"id"`
	Type         Type        `json:"type" yaml:"type"`
	Messages     []string    `json:"messages,omitempty" yaml:"messages,omitempty"`
	Question     string      `json:"question,omitempty" yaml:"question,omitempty"`
	Options      []Option    `json:"options,omitempty" yaml:"options,omitempty"`
	Slider       *SliderSpec `json:"slider,omitempty" yaml:"slider,omitempty"`
	Field        string      `json:"field,omitempty" yaml:"field,omitempty"`
	NextStep     string      `json:"nextStep,omitempty" yaml:"nextStep,omitempty"`
	PreviousStep string      `json:"previousStep,omitempty" yaml:"previousStep,omitempty"`
}

// Terminal reports whether this step ends the wizard.
func (s *Step) Terminal() bool { return s.NextStep == "" }

// Interactive reports whether the step waits for user action. The
// other types self-trigger their transition on a timer.
func (s *Step) Interactive() bool {
	switch s.Type {
	case TypeChoice, TypeSlider, TypeInput:
		return true
	}
	return false
}

// AdvanceDelay is the animation delay applied before committing the
// transition out of this step.
func (s *Step) AdvanceDelay() time.Duration {
	switch s.Type {
	case TypeMessages:
		return messagesDelay
	case TypeTransition:
		return transitionDelay
	default:
		return interactDelay
	}
}

// Option looks up a declared option by ID.
func (s *Step) Option(id string) (Option, bool) {
	for _, o := range s.Options {
		if o.ID == id {
			return o, true
		}
	}
	return Option{}, false
}

// Document is the wire shape of the step configuration endpoint.
type Document struct {
	Steps       []Step         `json:"steps" yaml:"steps"`
	InitialData map[string]any `json:"initialData,omitempty" yaml:"initialData,omitempty"`
}

// Sequence is an ordered, indexed step list.
type Sequence struct {
	steps []Step
	index map[string]int
}

// NewSequence builds a sequence from loaded steps. Duplicate IDs and
// empty lists are rejected here; referential checks live in Validate.
func NewSequence(list []Step) (*Sequence, error) {
	if len(list) == 0 {
		return nil, fmt.Errorf("step list is empty")
	}
	index := make(map[string]int, len(list))
	for i, s := range list {
		if s.ID == "" {
			return nil, fmt.Errorf("step %d has no id", i)
		}
		if _, dup := index[s.ID]; dup {
			return nil, fmt.Errorf("duplicate step id %q", s.ID)
		}
		index[s.ID] = i
	}
	return &Sequence{steps: list, index: index}, nil
}

// First returns the initial step of the wizard.
func (q *Sequence) First() *Step { return &q.steps[0] }

// Lookup returns the step with the given ID.
func (q *Sequence) Lookup(id string) (*Step, bool) {
	i, ok := q.index[id]
	if !ok {
		return nil, false
	}
	return &q.steps[i], true
}

// Len returns the number of steps.
func (q *Sequence) Len() int { return len(q.steps) }

// Position returns the 1-based ordinal of a step, for progress display.
func (q *Sequence) Position(id string) int {
	if i, ok := q.index[id]; ok {
		return i + 1
	}
	return 0
}

// Validate enforces the referential and shape invariants the screens
// depend on. A dangling NextStep reference is a configuration error
// caught here rather than a silent stall at runtime:
//   - every NextStep / PreviousStep must name an existing step
//   - terminal steps must be input or transition typed
//   - interactive steps must bind a known record field
//   - choice steps need at least two options with unique IDs
//   - slider steps need a spec with min < max
func (q *Sequence) Validate() error {
	terminals := 0
	for i := range q.steps {
		s := &q.steps[i]
		switch s.Type {
		case TypeMessages, TypeChoice, TypeTransition, TypeSlider, TypeInput:
		default:
			return fmt.Errorf("step %q: unknown type %q", s.ID, s.Type)
		}
		if s.NextStep != "" {
			if _, ok := q.index[s.NextStep]; !ok {
				return fmt.Errorf("step %q: nextStep %q does not exist", s.ID, s.NextStep)
			}
			if s.NextStep == s.ID {
				return fmt.Errorf("step %q: nextStep references itself", s.ID)
			}
		} else {
			terminals++
			if s.Type != TypeInput && s.Type != TypeTransition {
				return fmt.Errorf("step %q: terminal steps must be input or transition, got %q", s.ID, s.Type)
			}
		}
		if s.PreviousStep != "" {
			if _, ok := q.index[s.PreviousStep]; !ok {
				return fmt.Errorf("step %q: previousStep %q does not exist", s.ID, s.PreviousStep)
			}
		}
		if s.Interactive() {
			if s.Field == "" {
				return fmt.Errorf("step %q: interactive steps must declare a field", s.ID)
			}
			if !profile.KnownField(s.Field) {
				return fmt.Errorf("step %q: unknown record field %q", s.ID, s.Field)
			}
		}
		if s.Type == TypeChoice {
			if len(s.Options) < 2 {
				return fmt.Errorf("step %q: choice steps need at least two options", s.ID)
			}
			seen := make(map[string]bool, len(s.Options))
			for _, o := range s.Options {
				if o.ID == "" {
					return fmt.Errorf("step %q: option with empty id", s.ID)
				}
				if seen[o.ID] {
					return fmt.Errorf("step %q: duplicate option id %q", s.ID, o.ID)
				}
				seen[o.ID] = true
			}
		}
		if s.Type == TypeSlider {
			if s.Slider == nil {
				return fmt.Errorf("step %q: slider steps need a slider spec", s.ID)
			}
			if s.Slider.Min >= s.Slider.Max {
				return fmt.Errorf("step %q: slider min %d must be below max %d", s.ID, s.Slider.Min, s.Slider.Max)
			}
		}
		if s.Type == TypeMessages && len(s.Messages) == 0 {
			return fmt.Errorf("step %q: messages steps need at least one message", s.ID)
		}
	}
	if terminals == 0 {
		return fmt.Errorf("no terminal step: every step declares a nextStep")
	}
	return nil
}
