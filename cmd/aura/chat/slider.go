package chat

import (
	"fmt"
	"math"
	"strings"

	"aura/cmd/aura/ui"
	"aura/internal/steps"
)

// =============================================================================
// SLIDER WIDGET
// =============================================================================
// Slider renders a horizontal track the user moves with arrow keys or
// the mouse. Mouse position maps linearly into the declared range and
// is clamped at the track edges; the value updates continuously while
// dragging and is only written to the record on submit.

// sliderTrackWidth is the track width in cells, excluding labels.
const sliderTrackWidth = 40

// Slider is the interactive widget for slider steps.
type Slider struct {
	Spec     steps.SliderSpec
	Value    int
	dragging bool

	// originX is the screen column of the track's first cell, set by
	// the renderer so mouse events can be mapped back onto the track.
	originX int
}

// NewSlider creates a slider positioned at the given starting value,
// clamped into the spec's range.
func NewSlider(spec steps.SliderSpec, start int) *Slider {
	s := &Slider{Spec: spec}
	s.Value = s.clamp(start)
	return s
}

// Nudge moves the value by delta (keyboard arrows), clamped.
func (s *Slider) Nudge(delta int) {
	s.Value = s.clamp(s.Value + delta)
}

// ValueAt maps a screen column onto the slider's range. Columns left of
// the track yield Min, right of it Max; in between the mapping is
// linear, rounded to the nearest integer.
func (s *Slider) ValueAt(x int) int {
	offset := x - s.originX
	if offset <= 0 {
		return s.Spec.Min
	}
	if offset >= sliderTrackWidth-1 {
		return s.Spec.Max
	}
	span := float64(s.Spec.Max - s.Spec.Min)
	frac := float64(offset) / float64(sliderTrackWidth-1)
	return s.Spec.Min + int(math.Round(frac*span))
}

// StartDrag begins a mouse drag at column x.
func (s *Slider) StartDrag(x int) {
	s.dragging = true
	s.Value = s.ValueAt(x)
}

// Drag updates the value while the button is held.
func (s *Slider) Drag(x int) {
	if !s.dragging {
		return
	}
	s.Value = s.ValueAt(x)
}

// Release ends the drag and returns the settled value.
func (s *Slider) Release(x int) int {
	if s.dragging {
		s.Value = s.ValueAt(x)
		s.dragging = false
	}
	return s.Value
}

// Dragging reports whether a mouse drag is active.
func (s *Slider) Dragging() bool { return s.dragging }

func (s *Slider) clamp(v int) int {
	if v < s.Spec.Min {
		return s.Spec.Min
	}
	if v > s.Spec.Max {
		return s.Spec.Max
	}
	return v
}

// thumbOffset is the inverse of ValueAt: the track cell for the value.
func (s *Slider) thumbOffset() int {
	span := float64(s.Spec.Max - s.Spec.Min)
	frac := float64(s.Value-s.Spec.Min) / span
	return int(math.Round(frac * float64(sliderTrackWidth-1)))
}

// View renders the slider with its edge labels and current value.
// originX is recorded from the left padding so mouse events line up.
func (s *Slider) View(styles ui.Styles, leftPad int) string {
	s.originX = leftPad

	thumb := s.thumbOffset()
	var track strings.Builder
	for i := 0; i < sliderTrackWidth; i++ {
		switch {
		case i == thumb:
			track.WriteString(styles.Thumb.Render("●"))
		case i < thumb:
			track.WriteString(styles.TrackFilled.Render("━"))
		default:
			track.WriteString(styles.TrackEmpty.Render("─"))
		}
	}

	labels := styles.Muted.Render(s.Spec.MinLabel) +
		strings.Repeat(" ", max(1, sliderTrackWidth-len(s.Spec.MinLabel)-len(s.Spec.MaxLabel))) +
		styles.Muted.Render(s.Spec.MaxLabel)

	value := styles.Bold.Render(fmt.Sprintf("%d", s.Value))

	return track.String() + "  " + value + "\n" + labels
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
