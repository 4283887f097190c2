package script

import (
	"fmt"
	"strings"

	"aura/internal/logging"
	"aura/internal/profile"
)

// Coach simulates an AI coach with static, canned text. Reply
// selection is a handful of keyword checks followed by conditionals
// over the profile; repeated unmatched inputs rotate through a small
// fallback list so the simulation doesn't repeat itself verbatim.
type Coach struct {
	rec      *profile.Record
	fallback int
}

// NewCoach creates a coach for the given (decoded) profile.
func NewCoach(rec *profile.Record) *Coach {
	return &Coach{rec: rec}
}

// Greeting builds the opening message from the profile.
func (c *Coach) Greeting() string {
	var b strings.Builder
	b.WriteString("Good to meet you properly. ")

	switch c.rec.Mindset {
	case profile.Growth:
		b.WriteString("You believe people can change — that's the raw material coaching works with. ")
	case profile.Fixed:
		b.WriteString("You're skeptical that people change much. Fair. Let's focus on leverage, not transformation. ")
	}

	if focus := strings.TrimSpace(c.rec.CurrentFocus); focus != "" {
		fmt.Fprintf(&b, "You said you want to work on **%s** — so that's where we start.", focus)
	} else {
		b.WriteString("Tell me what you'd like to work on first.")
	}

	logging.Script("greeting generated (mindset=%s)", c.rec.Mindset)
	return b.String()
}

// Reply picks the canned response for one user message.
func (c *Coach) Reply(input string) string {
	lower := strings.ToLower(strings.TrimSpace(input))

	// Keyword branches first, profile conditionals inside them.
	switch {
	case lower == "":
		return "I'm here. Say anything — even \"I don't know where to start\" counts."

	case containsAny(lower, "thank", "thx"):
		if c.rec.Agreeableness >= 70 {
			return "Of course. I'm glad it helped — that's what this is for."
		}
		return "You're welcome. Back to work."

	case containsAny(lower, "plan", "schedule", "organize"):
		if c.rec.Conscientiousness == profile.Adapter {
			return "Let's keep the plan loose on purpose: one fixed anchor per day, everything else flexes around it. Rigid plans break people like you; anchored ones don't."
		}
		return "Good instinct. Write the plan down tonight: three steps, each with a day attached. You're a planner — use that, don't fight it."

	case containsAny(lower, "stuck", "can't", "cannot", "hard", "difficult"):
		return c.stuckReply()

	case containsAny(lower, "goal", "want to", "wish"):
		if c.rec.RegulatoryFocus == profile.Prevention {
			return "Frame it as a floor, not a ceiling: what's the minimum you won't let slip this week? Protecting that is a win."
		}
		return "Then chase it. Name the single visible result you want by Friday, and we'll work backwards from there."

	case containsAny(lower, "tired", "exhaust", "burned", "burnt"):
		if c.rec.Extraversion <= 30 {
			return "Your energy profile says you recharge alone. Block one genuinely empty evening this week — no people, no screens — and treat it as part of the work."
		}
		return "Low energy usually means the work has drifted away from people. Who could you do the next step with, instead of alone?"
	}

	return c.fallbackReply()
}

// stuckReply handles the "I'm stuck" family using locus of control.
func (c *Coach) stuckReply() string {
	if c.rec.LocusOfControl == profile.External {
		return "Some of this genuinely isn't in your hands — and some of it is. List both columns. We only work on the second one, and that's enough."
	}
	if c.rec.Mindset == profile.Growth {
		return "Stuck is data, not a verdict. What's the smallest version of this you could finish today — not well, just finished?"
	}
	return "Then narrow it. Strip the task down to the part you already know how to do and start there."
}

// fallbackReply rotates through the generic canned lines.
func (c *Coach) fallbackReply() string {
	general := []string{
		"Tell me more — what does that look like day to day?",
		"What would \"better\" concretely look like a week from now?",
		"And what's the part of that you keep avoiding?",
	}
	supportive := []string{
		"I hear you. What part of that feels heaviest right now?",
		"That's worth taking seriously. What support would actually help?",
		"Okay. Let's slow down and take that apart together.",
	}

	lines := general
	if c.rec.CoachingStyle == "supportive" {
		lines = supportive
	}

	reply := lines[c.fallback%len(lines)]
	c.fallback++
	logging.ScriptDebug("fallback reply %d (style=%q)", c.fallback, c.rec.CoachingStyle)
	return reply
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
