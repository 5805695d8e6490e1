// Package textinput captures raw key events into an edit buffer and renders it
// with a blinking cursor, without relying on any platform text widget.
package textinput

import (
	"image/color"
	"log/slog"
	"math"
	"strings"
	"time"
	"unicode"

	"github.com/jwebster45206/wizard-village/pkg/scene"
)

const (
	DefaultMaxRunes   = 500
	DefaultBlinkEvery = 500 * time.Millisecond
)

// Config sizes and styles the input area. All lengths are scene units.
type Config struct {
	Width     float64 // full width of the input box
	MinHeight float64 // height of the box when the text fits on one line
	PadX      float64
	PadY      float64
	MaxRunes  int // 0 means DefaultMaxRunes
	Blink     time.Duration
	Style     scene.TextStyle
	BoxFill   color.RGBA
	Clipboard Clipboard // nil disables paste and copy
	Logger    *slog.Logger
}

// Capture is the edit buffer plus the nodes that display it. The group node
// is anchored at the lower-left corner of the input area so the box grows
// upward as the text wraps onto more lines.
type Capture struct {
	cfg      Config
	measurer scene.Measurer
	logger   *slog.Logger

	buf    []rune
	active bool

	onSubmit func(text string)
	onCancel func()

	node   *scene.Node
	box    *scene.Node
	text   *scene.Node
	cursor *scene.Node
	blink  *scene.Timer
}

// New creates an inactive capture with an empty buffer.
func New(m scene.Measurer, cfg Config) *Capture {
	if cfg.MaxRunes <= 0 {
		cfg.MaxRunes = DefaultMaxRunes
	}
	if cfg.Blink <= 0 {
		cfg.Blink = DefaultBlinkEvery
	}
	if cfg.MinHeight <= 0 {
		cfg.MinHeight = m.LineHeight() + 2*cfg.PadY
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	c := &Capture{
		cfg:      cfg,
		measurer: m,
		logger:   logger,
		node:     scene.NewGroup("input"),
		box:      scene.NewRect("input_box", cfg.Width, cfg.MinHeight, cfg.BoxFill),
		text:     scene.NewText("input_text", []string{""}, 0, m.LineHeight(), cfg.Style).SetDepth(1),
		cursor:   scene.NewRect("input_cursor", 2, m.LineHeight(), cfg.Style.Color).SetDepth(2),
	}
	c.blink = scene.NewTimer(cfg.Blink, func() {
		c.cursor.Visible = !c.cursor.Visible
	})
	c.node.Add(c.box, c.text, c.cursor)
	c.refresh()
	return c
}

// Node is the group to attach to the scene.
func (c *Capture) Node() *scene.Node {
	return c.node
}

// OnSubmit registers the callback run with the buffer text on Enter.
func (c *Capture) OnSubmit(fn func(text string)) {
	c.onSubmit = fn
}

// OnCancel registers the callback run on Escape.
func (c *Capture) OnCancel(fn func()) {
	c.onCancel = fn
}

// Focus clears the buffer, starts the cursor blinking and begins accepting keys.
func (c *Capture) Focus() {
	c.active = true
	c.Reset()
	c.blink.Start()
}

// Blur stops accepting keys. The buffer is kept until the next Focus.
func (c *Capture) Blur() {
	c.active = false
	c.blink.Stop()
	c.cursor.Visible = false
}

// Active reports whether keys are being captured.
func (c *Capture) Active() bool {
	return c.active
}

// Text returns the buffer contents.
func (c *Capture) Text() string {
	return string(c.buf)
}

// Reset empties the buffer.
func (c *Capture) Reset() {
	c.buf = c.buf[:0]
	c.refresh()
}

// Height is the current height of the input box.
func (c *Capture) Height() float64 {
	return c.box.H
}

// Update advances the cursor blink.
func (c *Capture) Update(dt time.Duration) {
	c.blink.Update(dt)
}

// HandleKey applies one key event and reports whether it was consumed. Keys
// the buffer has no use for, such as arrows, are left for the caller.
func (c *Capture) HandleKey(ev scene.KeyEvent) bool {
	if !c.active {
		return false
	}
	switch {
	case ev.Is(scene.KeyEnter):
		c.submit()
	case ev.Is(scene.KeyEscape):
		if c.onCancel != nil {
			c.onCancel()
		}
	case ev.Is(scene.KeyBackspace):
		if len(c.buf) > 0 {
			c.buf = c.buf[:len(c.buf)-1]
			c.refresh()
		}
	case ev.Key == scene.KeyRune && ev.Ctrl:
		return c.handleChord(ev.Rune)
	case ev.Key == scene.KeyRune && unicode.IsPrint(ev.Rune):
		c.insert(string(ev.Rune))
	default:
		return false
	}
	return true
}

func (c *Capture) handleChord(r rune) bool {
	switch unicode.ToLower(r) {
	case 'v':
		c.Paste()
	case 'c':
		c.Copy()
	default:
		return false
	}
	return true
}

// Paste inserts the clipboard contents, with line breaks flattened to spaces.
func (c *Capture) Paste() {
	if c.cfg.Clipboard == nil {
		return
	}
	s, err := c.cfg.Clipboard.ReadAll()
	if err != nil {
		c.logger.Warn("Clipboard read failed", "error", err)
		return
	}
	s = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(s)
	c.insert(s)
}

// Copy puts the buffer on the clipboard.
func (c *Capture) Copy() {
	if c.cfg.Clipboard == nil || len(c.buf) == 0 {
		return
	}
	if err := c.cfg.Clipboard.WriteAll(string(c.buf)); err != nil {
		c.logger.Warn("Clipboard write failed", "error", err)
	}
}

func (c *Capture) insert(s string) {
	changed := false
	for _, r := range s {
		if len(c.buf) >= c.cfg.MaxRunes {
			break
		}
		if r == '\t' {
			r = ' '
		}
		if !unicode.IsPrint(r) {
			continue
		}
		c.buf = append(c.buf, r)
		changed = true
	}
	if changed {
		c.refresh()
	}
}

func (c *Capture) submit() {
	text := string(c.buf)
	if strings.TrimSpace(text) == "" {
		return
	}
	c.Reset()
	if c.onSubmit != nil {
		c.onSubmit(text)
	}
}

// refresh rewraps the buffer into the text node, resizes the box and moves
// the cursor after the last character.
func (c *Capture) refresh() {
	wrap := math.Max(1, c.cfg.Width-2*c.cfg.PadX)
	lines, w, h := scene.TextBlock(c.measurer, string(c.buf), wrap)
	boxH := math.Max(c.cfg.MinHeight, h+2*c.cfg.PadY)

	c.box.H = boxH
	c.box.SetPosition(0, -boxH)
	c.text.Lines, c.text.W, c.text.H = lines, w, h
	c.text.SetPosition(c.cfg.PadX, -boxH+c.cfg.PadY)

	last := lines[len(lines)-1]
	cx := c.cfg.PadX + c.measurer.Advance(last)
	cy := -boxH + c.cfg.PadY + float64(len(lines)-1)*c.measurer.LineHeight()
	c.cursor.SetPosition(math.Min(cx, c.cfg.Width-c.cursor.W), cy)
	c.cursor.Visible = c.active
	if c.active {
		c.blink.Start()
	}
}
