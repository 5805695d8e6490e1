// Package viewport implements a clipped, scrollable view over a column of
// laid-out conversation messages.
package viewport

import (
	"errors"
	"fmt"

	"github.com/jwebster45206/wizard-village/pkg/scene"
)

// ErrInvalidViewport is returned for viewports without a positive area.
var ErrInvalidViewport = errors.New("viewport must have positive width and height")

// Clipper wraps a group of nodes so only a rectangular window of it shows.
// The frame node sits at the window's position and carries the clip; the
// content node inside it is what scrolls.
type Clipper struct {
	frame   *scene.Node
	content *scene.Node
	bounds  scene.Rect
}

// NewClipper creates a clipper whose window occupies bounds in the parent's
// coordinates.
func NewClipper(name string, bounds scene.Rect) (*Clipper, error) {
	if bounds.W <= 0 || bounds.H <= 0 {
		return nil, fmt.Errorf("clipper %q %vx%v: %w", name, bounds.W, bounds.H, ErrInvalidViewport)
	}
	frame := scene.NewGroup(name).
		SetPosition(bounds.X, bounds.Y).
		SetClip(scene.Rect{W: bounds.W, H: bounds.H})
	content := scene.NewGroup(name + "_content")
	frame.Add(content)
	return &Clipper{frame: frame, content: content, bounds: bounds}, nil
}

// Node is the frame to attach to the scene.
func (c *Clipper) Node() *scene.Node {
	return c.frame
}

// Content is the group that holds the clipped nodes.
func (c *Clipper) Content() *scene.Node {
	return c.content
}

// Bounds is the window rectangle in the parent's coordinates.
func (c *Clipper) Bounds() scene.Rect {
	return c.bounds
}

// SetOffset scrolls the content so that content-y == offset is at the
// window's top edge.
func (c *Clipper) SetOffset(offset float64) {
	c.content.Pos.Y = -offset
}

// Offset returns the current scroll offset.
func (c *Clipper) Offset() float64 {
	return -c.content.Pos.Y
}

// Shows reports whether any part of r (content coordinates) falls inside
// the window at the current offset.
func (c *Clipper) Shows(r scene.Rect) bool {
	window := scene.Rect{X: 0, Y: c.Offset(), W: c.bounds.W, H: c.bounds.H}
	return window.Overlaps(r)
}
