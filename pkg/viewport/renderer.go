package viewport

import (
	"fmt"
	"image/color"

	"github.com/jwebster45206/wizard-village/pkg/conversation"
	"github.com/jwebster45206/wizard-village/pkg/scene"
)

// Style is the look of message bubbles per sender.
type Style struct {
	NPCFill    color.RGBA
	PlayerFill color.RGBA
	NPCText    scene.TextStyle
	PlayerText scene.TextStyle
}

// DefaultStyle matches the parchment palette of the wizard's scroll.
func DefaultStyle() Style {
	return Style{
		NPCFill:    color.RGBA{R: 0x5d, G: 0x40, B: 0x37, A: 0xcc},
		PlayerFill: color.RGBA{R: 0x79, G: 0x55, B: 0x48, A: 0xcc},
		NPCText:    scene.TextStyle{Color: color.RGBA{R: 0xe6, G: 0xcc, B: 0xff, A: 0xff}, Italic: true},
		PlayerText: scene.TextStyle{Color: color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}},
	}
}

// Config configures a MessageRenderer.
type Config struct {
	Layout conversation.LayoutConfig // Width defaults to the viewport width
	Step   float64                   // distance moved by one ScrollBy call
	Style  Style
}

// Entry is a laid-out message together with the nodes drawing it.
type Entry struct {
	conversation.LayoutEntry
	Background *scene.Node
	Text       *scene.Node
}

// MessageRenderer lays out a conversation inside a clipped viewport and
// scrolls it. Every Rebuild discards the previous nodes and lays out the whole
// log again; conversations are short enough that this stays cheap.
type MessageRenderer struct {
	clip     *Clipper
	state    ScrollState
	measurer scene.Measurer
	cfg      Config
	entries  []Entry
	closed   bool
}

// NewMessageRenderer creates a renderer whose viewport occupies bounds in the
// coordinates of whatever node its Node is attached to.
func NewMessageRenderer(bounds scene.Rect, m scene.Measurer, cfg Config) (*MessageRenderer, error) {
	clip, err := NewClipper("messages", bounds)
	if err != nil {
		return nil, fmt.Errorf("failed to create message viewport: %w", err)
	}
	if cfg.Layout.Width <= 0 {
		cfg.Layout.Width = bounds.W
	}
	if cfg.Step <= 0 {
		cfg.Step = m.LineHeight()
	}
	return &MessageRenderer{
		clip:     clip,
		state:    NewScrollState(bounds.H),
		measurer: m,
		cfg:      cfg,
	}, nil
}

// Node is the clipped frame to attach to the scene.
func (r *MessageRenderer) Node() *scene.Node {
	return r.clip.Node()
}

// Rebuild throws away the rendered entries and lays out msgs from the top.
// It is safe to call while the viewport is hidden, and a no-op after Destroy.
func (r *MessageRenderer) Rebuild(msgs []conversation.Message) {
	if r.closed {
		return
	}
	for _, e := range r.entries {
		e.Background.Destroy()
		e.Text.Destroy()
	}

	layout, height := conversation.Layout(msgs, r.measurer, r.cfg.Layout)
	r.entries = make([]Entry, 0, len(layout))
	content := r.clip.Content()
	for _, le := range layout {
		fill, style := r.cfg.Style.NPCFill, r.cfg.Style.NPCText
		if le.Message.Sender == conversation.SenderPlayer {
			fill, style = r.cfg.Style.PlayerFill, r.cfg.Style.PlayerText
		}
		name := fmt.Sprintf("message_%d", le.Index)
		bg := scene.NewRect(name+"_bg", le.W, le.H, fill).SetPosition(le.X, le.Y)
		textW := le.W - 2*r.cfg.Layout.PadX
		text := scene.NewText(name+"_text", le.Lines, textW, le.H-2*r.cfg.Layout.PadY, style).
			SetPosition(le.X+r.cfg.Layout.PadX, le.Y+r.cfg.Layout.PadY).
			SetDepth(1)
		content.Add(bg, text)
		r.entries = append(r.entries, Entry{LayoutEntry: le, Background: bg, Text: text})
	}

	r.state.SetContentHeight(height)
	r.apply()
}

// ScrollBy moves one step up (delta < 0) or down (delta > 0).
func (r *MessageRenderer) ScrollBy(delta float64) {
	r.state.ScrollBy(delta, r.cfg.Step)
	r.apply()
}

// ScrollTo jumps to an absolute position, clamped.
func (r *MessageRenderer) ScrollTo(pos float64) {
	r.state.ScrollTo(pos)
	r.apply()
}

// ScrollToBottom shows the newest messages.
func (r *MessageRenderer) ScrollToBottom() {
	r.state.ScrollToBottom()
	r.apply()
}

func (r *MessageRenderer) apply() {
	if r.closed {
		return
	}
	r.clip.SetOffset(r.state.Position())
}

// State returns a snapshot of the scroll state.
func (r *MessageRenderer) State() ScrollState {
	return r.state
}

// Entries returns the currently rendered entries, oldest first.
func (r *MessageRenderer) Entries() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// VisibleIndexes lists the message indexes at least partly inside the window.
// Entries outside it stay laid out so scrolling needs no relayout.
func (r *MessageRenderer) VisibleIndexes() []int {
	var out []int
	for _, e := range r.entries {
		if r.clip.Shows(scene.Rect{X: e.X, Y: e.Y, W: e.W, H: e.H}) {
			out = append(out, e.Index)
		}
	}
	return out
}

// Destroy removes the viewport from the scene. Later calls are ignored.
func (r *MessageRenderer) Destroy() {
	if r.closed {
		return
	}
	r.closed = true
	r.entries = nil
	r.clip.Node().Destroy()
}
