// Package termhost draws the scene graph in a terminal. The scene is laid out
// in pixels; every terminal cell stands for a CellW×CellH block of them.
package termhost

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"
)

const (
	CellW = 8
	CellH = 16
)

// Measurer reports text metrics in pixels for a monospaced cell grid.
type Measurer struct{}

func (Measurer) Advance(s string) float64 {
	return float64(lipgloss.Width(s) * CellW)
}

func (Measurer) LineHeight() float64 {
	return CellH
}

// Wrap word-wraps text to the number of whole cells that fit in width,
// hard-breaking words longer than a line.
func (Measurer) Wrap(text string, width float64) []string {
	if math.IsInf(width, 1) || width >= math.MaxInt32 {
		return strings.Split(text, "\n")
	}
	cols := max(1, int(width/CellW))
	wrapped := wrap.String(wordwrap.String(text, cols), cols)
	lines := strings.Split(wrapped, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	return lines
}
