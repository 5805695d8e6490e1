// Package scenetest provides deterministic scene helpers for tests.
package scenetest

import "unicode/utf8"

// FixedMeasurer measures every rune as CharW wide and every line as LineH tall.
type FixedMeasurer struct {
	CharW float64
	LineH float64
}

// NewFixedMeasurer returns a measurer with 8×16 cells, the terminal host's grid.
func NewFixedMeasurer() FixedMeasurer {
	return FixedMeasurer{CharW: 8, LineH: 16}
}

func (m FixedMeasurer) Advance(s string) float64 {
	return float64(utf8.RuneCountInString(s)) * m.CharW
}

func (m FixedMeasurer) LineHeight() float64 {
	return m.LineH
}
