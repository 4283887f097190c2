package chat

import (
	"strings"
	"testing"

	"aura/cmd/aura/ui"
	"aura/internal/steps"
)

func testSlider() *Slider {
	return NewSlider(steps.SliderSpec{Min: 0, Max: 100, MinLabel: "Low", MaxLabel: "High"}, 50)
}

func TestNewSliderClampsStart(t *testing.T) {
	t.Parallel()

	s := NewSlider(steps.SliderSpec{Min: 10, Max: 90}, 500)
	if s.Value != 90 {
		t.Errorf("start clamped to %d, want 90", s.Value)
	}
	s = NewSlider(steps.SliderSpec{Min: 10, Max: 90}, -3)
	if s.Value != 10 {
		t.Errorf("start clamped to %d, want 10", s.Value)
	}
}

func TestNudgeClampsAtBounds(t *testing.T) {
	t.Parallel()

	s := testSlider()
	s.Nudge(1000)
	if s.Value != 100 {
		t.Errorf("value = %d, want 100", s.Value)
	}
	s.Nudge(-1)
	if s.Value != 99 {
		t.Errorf("value = %d, want 99", s.Value)
	}
	s.Nudge(-1000)
	if s.Value != 0 {
		t.Errorf("value = %d, want 0", s.Value)
	}
}

func TestValueAtClampsOutsideTrack(t *testing.T) {
	t.Parallel()

	s := testSlider()
	if got := s.ValueAt(-50); got != 0 {
		t.Errorf("left of track = %d, want min", got)
	}
	if got := s.ValueAt(10_000); got != 100 {
		t.Errorf("right of track = %d, want max", got)
	}
}

func TestValueAtIsMonotonic(t *testing.T) {
	t.Parallel()

	s := testSlider()
	prev := s.ValueAt(0)
	for x := 1; x < sliderTrackWidth+5; x++ {
		got := s.ValueAt(x)
		if got < prev {
			t.Fatalf("ValueAt(%d) = %d < ValueAt(%d) = %d", x, got, x-1, prev)
		}
		prev = got
	}
	if prev != 100 {
		t.Errorf("track end maps to %d, want max", prev)
	}
}

func TestValueAtHitsEndpointsExactly(t *testing.T) {
	t.Parallel()

	s := testSlider()
	if got := s.ValueAt(0); got != 0 {
		t.Errorf("track start = %d, want 0", got)
	}
	if got := s.ValueAt(sliderTrackWidth - 1); got != 100 {
		t.Errorf("track end = %d, want 100", got)
	}
}

func TestValueAtRespectsNonZeroOrigin(t *testing.T) {
	t.Parallel()

	s := testSlider()
	s.originX = 6
	if got := s.ValueAt(6); got != 0 {
		t.Errorf("origin column = %d, want 0", got)
	}
	if got := s.ValueAt(3); got != 0 {
		t.Errorf("left of origin = %d, want 0", got)
	}
}

func TestDragLifecycle(t *testing.T) {
	t.Parallel()

	s := testSlider()
	if s.Dragging() {
		t.Fatal("fresh slider must not be dragging")
	}

	// Motion without a press is ignored.
	s.Drag(sliderTrackWidth - 1)
	if s.Value != 50 {
		t.Errorf("motion without press moved value to %d", s.Value)
	}

	s.StartDrag(0)
	if !s.Dragging() || s.Value != 0 {
		t.Fatalf("after press: dragging=%v value=%d", s.Dragging(), s.Value)
	}
	s.Drag(sliderTrackWidth / 2)
	mid := s.Value
	if mid <= 0 || mid >= 100 {
		t.Errorf("mid-track drag = %d, want interior value", mid)
	}
	if got := s.Release(sliderTrackWidth - 1); got != 100 {
		t.Errorf("release at end = %d, want 100", got)
	}
	if s.Dragging() {
		t.Error("release must end the drag")
	}
}

func TestSliderViewMarksThumb(t *testing.T) {
	t.Parallel()

	s := testSlider()
	out := s.View(ui.NewStyles(ui.LightTheme()), 6)
	if !strings.Contains(out, "●") {
		t.Error("view should render the thumb")
	}
	if !strings.Contains(out, "50") {
		t.Error("view should render the current value")
	}
	if !strings.Contains(out, "Low") || !strings.Contains(out, "High") {
		t.Error("view should render the edge labels")
	}
	if s.originX != 6 {
		t.Errorf("view should record originX, got %d", s.originX)
	}
}

func TestSliderNarrowRangeRounds(t *testing.T) {
	t.Parallel()

	s := NewSlider(steps.SliderSpec{Min: 1, Max: 5}, 3)
	seen := map[int]bool{}
	for x := 0; x < sliderTrackWidth; x++ {
		v := s.ValueAt(x)
		if v < 1 || v > 5 {
			t.Fatalf("ValueAt(%d) = %d outside [1,5]", x, v)
		}
		seen[v] = true
	}
	for v := 1; v <= 5; v++ {
		if !seen[v] {
			t.Errorf("value %d unreachable across the track", v)
		}
	}
}
