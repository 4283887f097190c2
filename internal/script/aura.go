// Package script implements the scripted side of the chat screen: a
// coach whose replies are canned text picked by simple conditionals
// over the personality profile, and the aura animation state that
// decorates it. Nothing in this package talks to a model or a network.
package script

import "time"

// AuraState drives the decorative animation around the coach. It is
// cosmetic: "processing" does not mean any processing is happening,
// only that the processing animation is showing.
type AuraState int

const (
	AuraIdle AuraState = iota
	AuraListening
	AuraProcessing
	AuraResponding
)

func (s AuraState) String() string {
	switch s {
	case AuraIdle:
		return "idle"
	case AuraListening:
		return "listening"
	case AuraProcessing:
		return "processing"
	case AuraResponding:
		return "responding"
	}
	return "unknown"
}

// Dwell is how long the state's animation plays before the cycle moves
// on. Idle has no dwell; it holds until input arrives.
func (s AuraState) Dwell() time.Duration {
	switch s {
	case AuraListening:
		return 400 * time.Millisecond
	case AuraProcessing:
		return 1200 * time.Millisecond
	case AuraResponding:
		return 600 * time.Millisecond
	}
	return 0
}

// Aura is a small forward-only cycle: idle -> listening -> processing
// -> responding -> idle. Out-of-order transitions are rejected so a
// stale animation timer can't drag the state backwards.
type Aura struct {
	state AuraState
}

// State returns the current state.
func (a *Aura) State() AuraState { return a.state }

// To attempts a transition and reports whether it was allowed.
func (a *Aura) To(next AuraState) bool {
	allowed := map[AuraState]AuraState{
		AuraIdle:       AuraListening,
		AuraListening:  AuraProcessing,
		AuraProcessing: AuraResponding,
		AuraResponding: AuraIdle,
	}
	if allowed[a.state] != next {
		return false
	}
	a.state = next
	return true
}

// Settle forces the cycle back to idle, for restarts.
func (a *Aura) Settle() { a.state = AuraIdle }
