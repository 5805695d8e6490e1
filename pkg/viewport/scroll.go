package viewport

import "math"

// ScrollState tracks the scroll position over content taller than its
// viewport. Every mutation clamps position to [0, Max()].
type ScrollState struct {
	position       float64
	contentHeight  float64
	viewportHeight float64
}

// NewScrollState returns a state for a viewport of the given height.
// Negative heights are treated as zero.
func NewScrollState(viewportHeight float64) ScrollState {
	return ScrollState{viewportHeight: math.Max(0, viewportHeight)}
}

// Max is the largest valid position.
func (s ScrollState) Max() float64 {
	return math.Max(0, s.contentHeight-s.viewportHeight)
}

func (s ScrollState) Position() float64       { return s.position }
func (s ScrollState) ContentHeight() float64  { return s.contentHeight }
func (s ScrollState) ViewportHeight() float64 { return s.viewportHeight }

// AtBottom reports whether the newest content is in view.
func (s ScrollState) AtBottom() bool {
	return s.position >= s.Max()
}

func (s *ScrollState) clamp() {
	if math.IsNaN(s.position) || s.position < 0 {
		s.position = 0
	}
	if m := s.Max(); s.position > m {
		s.position = m
	}
}

// SetContentHeight records a new content height and re-clamps.
func (s *ScrollState) SetContentHeight(h float64) {
	s.contentHeight = math.Max(0, h)
	s.clamp()
}

// ScrollTo jumps to p, clamped.
func (s *ScrollState) ScrollTo(p float64) {
	s.position = p
	s.clamp()
}

// ScrollBy moves one step in the direction of delta; the magnitude of delta
// is ignored, only its sign counts. A zero delta changes nothing.
func (s *ScrollState) ScrollBy(delta, step float64) {
	switch {
	case delta > 0:
		s.position += step
	case delta < 0:
		s.position -= step
	default:
		return
	}
	s.clamp()
}

// ScrollToBottom shows the end of the content.
func (s *ScrollState) ScrollToBottom() {
	s.position = s.Max()
}
