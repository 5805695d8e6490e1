package conversation

import (
	"math"

	"github.com/jwebster45206/wizard-village/pkg/scene"
)

// Align is the horizontal placement of a message bubble.
type Align uint8

const (
	AlignLeft Align = iota
	AlignRight
)

// AlignFor returns the alignment used for a sender: NPC lines on the left,
// player lines on the right.
func AlignFor(s Sender) Align {
	if s == SenderPlayer {
		return AlignRight
	}
	return AlignLeft
}

// LayoutConfig sizes the message bubbles. All values are scene units.
type LayoutConfig struct {
	Width       float64 // content width of the viewport
	BubbleWidth float64 // widest a bubble may grow, padding included
	PadX        float64
	PadY        float64
	Gap         float64 // vertical space between consecutive bubbles
}

// wrapWidth is the text width available inside a bubble.
func (c LayoutConfig) wrapWidth() float64 {
	bw := c.BubbleWidth
	if bw <= 0 || bw > c.Width {
		bw = c.Width
	}
	return math.Max(1, bw-2*c.PadX)
}

// LayoutEntry is the computed placement of one message. Coordinates are
// relative to the top of the scrollable content.
type LayoutEntry struct {
	Index   int
	Message Message
	Lines   []string
	Align   Align
	X, Y    float64
	W, H    float64
}

// Bottom is the entry's lower edge in content coordinates.
func (e LayoutEntry) Bottom() float64 {
	return e.Y + e.H
}

// Layout stacks every message top to bottom and returns the entries together
// with the total content height (entry heights plus the gaps between them).
// An empty slice yields no entries and a height of 0.
func Layout(msgs []Message, m scene.Measurer, cfg LayoutConfig) ([]LayoutEntry, float64) {
	entries := make([]LayoutEntry, 0, len(msgs))
	wrap := cfg.wrapWidth()
	y := 0.0
	for i, msg := range msgs {
		if i > 0 {
			y += cfg.Gap
		}
		lines, tw, th := scene.TextBlock(m, msg.Text, wrap)
		w := math.Min(tw+2*cfg.PadX, wrap+2*cfg.PadX)
		h := th + 2*cfg.PadY
		align := AlignFor(msg.Sender)
		x := 0.0
		if align == AlignRight {
			x = cfg.Width - w
		}
		entries = append(entries, LayoutEntry{
			Index:   i,
			Message: msg,
			Lines:   lines,
			Align:   align,
			X:       x,
			Y:       y,
			W:       w,
			H:       h,
		})
		y += h
	}
	return entries, y
}
