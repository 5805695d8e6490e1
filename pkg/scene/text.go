package scene

import (
	"math"
	"strings"
)

// Measurer reports text metrics in scene units. Each host provides one that
// matches the font it draws with.
type Measurer interface {
	// Advance is the width of s drawn on a single line.
	Advance(s string) float64
	// LineHeight is the vertical distance between consecutive baselines.
	LineHeight() float64
}

// Wrapper is implemented by measurers that know how to wrap text themselves.
type Wrapper interface {
	Wrap(text string, width float64) []string
}

// WrapText splits text into lines no wider than width, using the measurer's
// own wrapping when it has one. Explicit newlines always break.
func WrapText(m Measurer, text string, width float64) []string {
	if w, ok := m.(Wrapper); ok {
		return w.Wrap(text, width)
	}
	return Wrap(m, text, width)
}

// Wrap is a greedy word wrap. Words wider than width are split by rune so
// no line ever exceeds width (unless a single rune does).
func Wrap(m Measurer, text string, width float64) []string {
	var out []string
	for _, para := range strings.Split(text, "\n") {
		out = append(out, wrapParagraph(m, para, width)...)
	}
	return out
}

func wrapParagraph(m Measurer, para string, width float64) []string {
	words := strings.Fields(para)
	if len(words) == 0 {
		return []string{""}
	}
	var lines []string
	line := ""
	for _, w := range words {
		for _, piece := range splitLongWord(m, w, width) {
			candidate := piece
			if line != "" {
				candidate = line + " " + piece
			}
			if line != "" && m.Advance(candidate) > width {
				lines = append(lines, line)
				line = piece
				continue
			}
			line = candidate
		}
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}

func splitLongWord(m Measurer, w string, width float64) []string {
	if width <= 0 || m.Advance(w) <= width {
		return []string{w}
	}
	var parts []string
	var cur []rune
	for _, r := range w {
		next := append(cur, r)
		if len(cur) > 0 && m.Advance(string(next)) > width {
			parts = append(parts, string(cur))
			cur = []rune{r}
			continue
		}
		cur = next
	}
	if len(cur) > 0 {
		parts = append(parts, string(cur))
	}
	return parts
}

// TextBlock wraps text to width and returns the lines together with the
// block's measured size.
func TextBlock(m Measurer, text string, width float64) (lines []string, w, h float64) {
	lines = WrapText(m, text, width)
	for _, l := range lines {
		w = math.Max(w, m.Advance(l))
	}
	h = float64(len(lines)) * m.LineHeight()
	return lines, w, h
}

// NewTextBlock builds a text node sized to its wrapped content. A width of 0
// keeps the text on as few lines as its explicit newlines allow.
func NewTextBlock(m Measurer, name, text string, width float64, style TextStyle) *Node {
	if width <= 0 {
		width = math.Inf(1)
	}
	lines, w, h := TextBlock(m, text, width)
	return NewText(name, lines, w, h, style)
}

// SetTextBlock rewraps an existing text node in place.
func SetTextBlock(n *Node, m Measurer, text string, width float64) {
	if width <= 0 {
		width = math.Inf(1)
	}
	n.Lines, n.W, n.H = TextBlock(m, text, width)
}
