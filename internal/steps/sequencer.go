package steps

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"aura/internal/logging"
	"aura/internal/profile"
)

// Phase is the sequencer's own state, separate from which step is
// current. The transitioning phase replaces the fragile boolean
// re-entrancy flag of the screens this was modeled on: while a
// transition is pending, further advances are rejected instead of
// silently double-firing.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseTransitioning
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseTransitioning:
		return "transitioning"
	case PhaseDone:
		return "done"
	}
	return "unknown"
}

var (
	// ErrTransitioning rejects an advance while a transition is pending.
	ErrTransitioning = errors.New("transition already in progress")
	// ErrNotCurrent rejects input aimed at a step that is not current.
	ErrNotCurrent = errors.New("step is not current")
	// ErrNoPrevious signals the host screen to pop its own stack.
	ErrNoPrevious = errors.New("step declares no previous step")
	// ErrDone rejects operations after the wizard completed.
	ErrDone = errors.New("wizard already completed")
	// ErrNotDone rejects a completion read before the terminal commit.
	ErrNotDone = errors.New("wizard has not completed")
	// ErrUnknownOption rejects a choice value not declared by the step.
	ErrUnknownOption = errors.New("option not declared by step")
	// ErrMissingInput rejects an empty submission on an input step.
	ErrMissingInput = errors.New("input must not be empty")
	// ErrAutoOnly rejects AutoAdvance on interactive steps.
	ErrAutoOnly = errors.New("step requires user action")
)

// Transition describes a pending move between steps. The caller shows
// its animation for Delay, then calls Commit. The generation token ties
// the transition to the sequencer state it was created from; a Reset or
// Back in between makes the commit a stale no-op, which is how timers
// that were never cancelled stay harmless.
type Transition struct {
	From     string
	To       string
	Delay    time.Duration
	Terminal bool
	gen      uint64
}

// Sequencer tracks the current step, applies user input to the answer
// record, and hands out transitions for the host to animate and commit.
type Sequencer struct {
	seq     *Sequence
	rec     *profile.Record
	current string
	phase   Phase
	gen     uint64
}

// NewSequencer starts a walk at the sequence's first step. The record
// should already carry the configuration's initialData defaults.
func NewSequencer(seq *Sequence, rec *profile.Record) *Sequencer {
	return &Sequencer{
		seq:     seq,
		rec:     rec,
		current: seq.First().ID,
	}
}

// Current returns the current step descriptor.
func (s *Sequencer) Current() *Step {
	st, _ := s.seq.Lookup(s.current)
	return st
}

// Phase returns the sequencer phase.
func (s *Sequencer) Phase() Phase { return s.phase }

// Record exposes the accumulating answer record.
func (s *Sequencer) Record() *profile.Record { return s.rec }

// Advance applies the user's value to the current step and returns the
// pending transition. For choice steps the value is the chosen option
// ID and must be declared by the step; for sliders it is an int clamped
// to the declared bounds; for input steps a non-empty string.
func (s *Sequencer) Advance(id string, value any) (Transition, error) {
	step, err := s.guard(id)
	if err != nil {
		return Transition{}, err
	}

	stored, err := s.coerce(step, value)
	if err != nil {
		return Transition{}, err
	}
	if step.Field != "" {
		if err := s.rec.Set(step.Field, stored); err != nil {
			return Transition{}, err
		}
	}

	t := Transition{
		From:     id,
		To:       step.NextStep,
		Delay:    step.AdvanceDelay(),
		Terminal: step.Terminal(),
		gen:      s.gen,
	}
	s.phase = PhaseTransitioning
	logging.Steps("advance %q -> %q (terminal=%v)", t.From, t.To, t.Terminal)
	return t, nil
}

// AutoAdvance is Advance for the self-triggering step types. Message
// sequences and transition banners call this once their display timer
// elapses; interactive steps are rejected.
func (s *Sequencer) AutoAdvance(id string) (Transition, error) {
	step, ok := s.seq.Lookup(id)
	if !ok {
		return Transition{}, fmt.Errorf("step %q: %w", id, ErrNotCurrent)
	}
	if step.Interactive() {
		return Transition{}, fmt.Errorf("step %q: %w", id, ErrAutoOnly)
	}
	return s.Advance(id, nil)
}

// Commit finalizes a transition after the host's animation delay. It
// reports false when the transition is stale: a Back or Reset happened
// in between, or the commit already fired.
func (s *Sequencer) Commit(t Transition) bool {
	if s.phase != PhaseTransitioning || t.gen != s.gen {
		logging.StepsDebug("stale commit of %q -> %q ignored", t.From, t.To)
		return false
	}
	if t.Terminal {
		s.phase = PhaseDone
		logging.Steps("wizard complete at step %q", t.From)
		return true
	}
	s.current = t.To
	s.phase = PhaseIdle
	return true
}

// Back moves to the step's declared previous step. Already-recorded
// answers are left untouched; revisiting a step only overwrites its
// field when the user answers it again. ErrNoPrevious tells the host
// to fall back to its own navigation stack.
func (s *Sequencer) Back(id string) (string, error) {
	step, err := s.guard(id)
	if err != nil {
		return "", err
	}
	if step.PreviousStep == "" {
		return "", ErrNoPrevious
	}
	s.gen++ // invalidate any in-flight transition timer
	s.current = step.PreviousStep
	s.phase = PhaseIdle
	logging.Steps("back %q -> %q", id, s.current)
	return s.current, nil
}

// Rewind jumps back to an earlier step by ID. Hosts that keep their own
// navigation stack use this when the current step declares no explicit
// previous step. Like Back it invalidates any in-flight transition.
func (s *Sequencer) Rewind(to string) error {
	if s.phase == PhaseDone {
		return ErrDone
	}
	if _, ok := s.seq.Lookup(to); !ok {
		return fmt.Errorf("step %q: %w", to, ErrNotCurrent)
	}
	s.gen++
	s.current = to
	s.phase = PhaseIdle
	logging.Steps("rewind to %q", to)
	return nil
}

// CompleteRecord returns the finished record for the chat handoff.
// Valid only after the terminal transition committed.
func (s *Sequencer) CompleteRecord() (*profile.Record, error) {
	if s.phase != PhaseDone {
		return nil, ErrNotDone
	}
	return s.rec, nil
}

// Reset restarts the walk with a fresh record, discarding the old one
// and invalidating any pending transition.
func (s *Sequencer) Reset(rec *profile.Record) {
	s.gen++
	s.rec = rec
	s.current = s.seq.First().ID
	s.phase = PhaseIdle
	logging.Steps("sequencer reset to %q", s.current)
}

func (s *Sequencer) guard(id string) (*Step, error) {
	switch s.phase {
	case PhaseDone:
		return nil, ErrDone
	case PhaseTransitioning:
		return nil, ErrTransitioning
	}
	if id != s.current {
		return nil, fmt.Errorf("step %q (current %q): %w", id, s.current, ErrNotCurrent)
	}
	step, ok := s.seq.Lookup(id)
	if !ok {
		return nil, fmt.Errorf("step %q: %w", id, ErrNotCurrent)
	}
	return step, nil
}

// coerce turns the raw screen value into what the record stores.
func (s *Sequencer) coerce(step *Step, value any) (any, error) {
	switch step.Type {
	case TypeChoice:
		id, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("step %q: choice value must be an option id", step.ID)
		}
		opt, ok := step.Option(id)
		if !ok {
			return nil, fmt.Errorf("step %q, option %q: %w", step.ID, id, ErrUnknownOption)
		}
		return opt.RecordValue(), nil
	case TypeSlider:
		n, ok := value.(int)
		if !ok {
			return nil, fmt.Errorf("step %q: slider value must be an int", step.ID)
		}
		if n < step.Slider.Min {
			n = step.Slider.Min
		}
		if n > step.Slider.Max {
			n = step.Slider.Max
		}
		return n, nil
	case TypeInput:
		text, ok := value.(string)
		if !ok || strings.TrimSpace(text) == "" {
			return nil, fmt.Errorf("step %q: %w", step.ID, ErrMissingInput)
		}
		return strings.TrimSpace(text), nil
	default:
		return nil, nil // auto steps carry no value
	}
}
