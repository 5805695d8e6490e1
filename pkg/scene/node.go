package scene

import (
	"image/color"
	"sort"
)

// Kind identifies what a Node draws.
type Kind uint8

const (
	KindGroup  Kind = iota // container, draws nothing itself
	KindText               // pre-wrapped lines of text
	KindRect               // filled rectangle
	KindSprite             // host-provided image looked up by key
)

// TextStyle controls how hosts draw a text node.
type TextStyle struct {
	Color  color.RGBA
	Italic bool
	Bold   bool
}

// Node is one element of the retained scene graph. Hosts never mutate nodes;
// they only walk the tree and draw it.
type Node struct {
	Kind    Kind
	Name    string
	Pos     Point // relative to the parent's origin point
	W, H    float64
	Origin  Point // 0..1 anchor within the node's own size (0.5,0.5 = centred)
	Depth   int   // higher draws later among siblings
	Visible bool
	Clip    *Rect // groups only, in the group's local coordinates

	Lines  []string
	Style  TextStyle
	Fill   color.RGBA
	Sprite string

	parent    *Node
	children  []*Node
	destroyed bool
}

// NewGroup returns an empty visible container.
func NewGroup(name string) *Node {
	return &Node{Kind: KindGroup, Name: name, Visible: true}
}

// NewText returns a text node with pre-wrapped lines and an explicit size.
func NewText(name string, lines []string, w, h float64, style TextStyle) *Node {
	return &Node{Kind: KindText, Name: name, Lines: lines, W: w, H: h, Style: style, Visible: true}
}

// NewRect returns a filled rectangle node.
func NewRect(name string, w, h float64, fill color.RGBA) *Node {
	return &Node{Kind: KindRect, Name: name, W: w, H: h, Fill: fill, Visible: true}
}

// NewSprite returns an image node; key selects the host asset.
func NewSprite(name, key string, w, h float64) *Node {
	return &Node{Kind: KindSprite, Name: name, Sprite: key, W: w, H: h, Visible: true}
}

// SetPosition moves the node relative to its parent.
func (n *Node) SetPosition(x, y float64) *Node {
	n.Pos = Point{X: x, Y: y}
	return n
}

// SetOrigin sets the anchor used to place the node's box around Pos.
func (n *Node) SetOrigin(ox, oy float64) *Node {
	n.Origin = Point{X: ox, Y: oy}
	return n
}

// SetDepth sets the draw order among siblings.
func (n *Node) SetDepth(d int) *Node {
	n.Depth = d
	return n
}

// SetClip restricts drawing of this node's subtree to r (local coordinates).
func (n *Node) SetClip(r Rect) *Node {
	n.Clip = &r
	return n
}

// Add appends children, detaching them from any previous parent.
func (n *Node) Add(children ...*Node) {
	for _, c := range children {
		if c == nil || c.destroyed {
			continue
		}
		if c.parent != nil {
			c.parent.Remove(c)
		}
		c.parent = n
		n.children = append(n.children, c)
	}
}

// Remove detaches c from n. It is a no-op when c is not a child of n.
func (n *Node) Remove(c *Node) {
	for i, ch := range n.children {
		if ch == c {
			n.children = append(n.children[:i], n.children[i+1:]...)
			c.parent = nil
			return
		}
	}
}

// Destroy detaches the node from its parent and marks the whole subtree dead.
// Destroying twice is harmless.
func (n *Node) Destroy() {
	if n.destroyed {
		return
	}
	if n.parent != nil {
		n.parent.Remove(n)
	}
	n.markDestroyed()
}

func (n *Node) markDestroyed() {
	n.destroyed = true
	for _, c := range n.children {
		c.markDestroyed()
		c.parent = nil
	}
	n.children = nil
}

// Destroyed reports whether Destroy was called on the node or an ancestor.
func (n *Node) Destroyed() bool {
	return n.destroyed
}

// Parent returns the node's parent, or nil for a root or detached node.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns a copy of the child list in insertion order.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// Find returns the first descendant (depth-first) with the given name.
func (n *Node) Find(name string) *Node {
	for _, c := range n.children {
		if c.Name == name {
			return c
		}
		if found := c.Find(name); found != nil {
			return found
		}
	}
	return nil
}

// anchor is the absolute position of the node's Pos point.
func (n *Node) anchor() Point {
	p := n.Pos
	for a := n.parent; a != nil; a = a.parent {
		p = p.Add(a.Pos)
	}
	return p
}

// Bounds returns the node's box in absolute scene coordinates.
func (n *Node) Bounds() Rect {
	a := n.anchor()
	return Rect{X: a.X - n.Origin.X*n.W, Y: a.Y - n.Origin.Y*n.H, W: n.W, H: n.H}
}

// ShownInTree reports whether the node and every ancestor are visible.
func (n *Node) ShownInTree() bool {
	for a := n; a != nil; a = a.parent {
		if !a.Visible || a.destroyed {
			return false
		}
	}
	return true
}

// VisitFunc receives a drawable node, its absolute bounds, and the clip
// rectangle in effect (nil when unclipped).
type VisitFunc func(n *Node, bounds Rect, clip *Rect)

// Walk visits the visible subtree rooted at root in draw order: parents before
// children, siblings ordered by Depth (ties keep insertion order). Subtrees
// whose clip has no area are skipped.
func Walk(root *Node, fn VisitFunc) {
	walk(root, Point{}, nil, fn)
}

func walk(n *Node, parentAnchor Point, clip *Rect, fn VisitFunc) {
	if n == nil || !n.Visible || n.destroyed {
		return
	}
	a := parentAnchor.Add(n.Pos)
	bounds := Rect{X: a.X - n.Origin.X*n.W, Y: a.Y - n.Origin.Y*n.H, W: n.W, H: n.H}
	if n.Clip != nil {
		abs := n.Clip.Translate(a.X, a.Y)
		if clip != nil {
			abs = clip.Intersect(abs)
		}
		if abs.Empty() {
			return
		}
		clip = &abs
	}
	fn(n, bounds, clip)

	if len(n.children) == 0 {
		return
	}
	ordered := make([]*Node, len(n.children))
	copy(ordered, n.children)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Depth < ordered[j].Depth
	})
	for _, c := range ordered {
		walk(c, a, clip, fn)
	}
}
