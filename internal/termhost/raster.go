package termhost

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jwebster45206/wizard-village/pkg/scene"
)

type cell struct {
	ch     rune
	fg     color.RGBA
	bg     color.RGBA
	bold   bool
	italic bool
}

// spriteGlyph is how a sprite key looks in cells.
type spriteGlyph struct {
	ch rune
	fg color.RGBA
	bg color.RGBA
}

var sprites = map[string]spriteGlyph{
	"player": {ch: '@', fg: color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, bg: color.RGBA{R: 0x1e, G: 0x88, B: 0xe5, A: 0xff}},
	"wizard": {ch: 'W', fg: color.RGBA{R: 0xff, G: 0xd7, B: 0x00, A: 0xff}, bg: color.RGBA{R: 0x5e, G: 0x35, B: 0xb1, A: 0xff}},
	"house":  {ch: '#', fg: color.RGBA{R: 0xd7, G: 0xcc, B: 0xc8, A: 0xff}, bg: color.RGBA{R: 0x6d, G: 0x4c, B: 0x41, A: 0xff}},
	"tree":   {ch: '♣', fg: color.RGBA{R: 0x1b, G: 0x5e, B: 0x20, A: 0xff}, bg: color.RGBA{R: 0x43, G: 0xa0, B: 0x47, A: 0xff}},
	"stone":  {ch: 'o', fg: color.RGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff}, bg: color.RGBA{R: 0x75, G: 0x75, B: 0x75, A: 0xff}},
}

var unknownSprite = spriteGlyph{ch: '?', fg: color.RGBA{R: 0xff, A: 0xff}, bg: color.RGBA{A: 0xff}}

// Raster is a grid of cells the scene is painted into each frame.
type Raster struct {
	cols, rows int
	cells      []cell
}

// NewRaster sizes the grid for a scene of w×h pixels.
func NewRaster(w, h float64) *Raster {
	cols := int(math.Ceil(w / CellW))
	rows := int(math.Ceil(h / CellH))
	return &Raster{cols: cols, rows: rows, cells: make([]cell, cols*rows)}
}

func (r *Raster) Size() (cols, rows int) {
	return r.cols, r.rows
}

func (r *Raster) at(col, row int) *cell {
	return &r.cells[row*r.cols+col]
}

// Paint clears the grid and draws the visible scene into it.
func (r *Raster) Paint(root *scene.Node) {
	for i := range r.cells {
		r.cells[i] = cell{ch: ' ', bg: color.RGBA{A: 0xff}, fg: color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}}
	}
	scene.Walk(root, func(n *scene.Node, b scene.Rect, clip *scene.Rect) {
		switch n.Kind {
		case scene.KindRect:
			r.fill(b, clip, func(c *cell) {
				c.bg = blend(n.Fill, c.bg)
				c.fg = blend(n.Fill, c.fg)
				if n.Fill.A == 0xff {
					c.ch = ' '
					c.bold, c.italic = false, false
				}
			})
		case scene.KindSprite:
			g, ok := sprites[n.Sprite]
			if !ok {
				g = unknownSprite
			}
			r.fill(b, clip, func(c *cell) {
				*c = cell{ch: g.ch, fg: g.fg, bg: g.bg}
			})
		case scene.KindText:
			r.text(n, b, clip)
		}
	})
}

// span converts a pixel interval to the cells it mostly covers. Anything
// thinner than a cell still gets one.
func span(start, size, unit float64, limit int) (int, int) {
	from := int(math.Round(start / unit))
	to := int(math.Round((start + size) / unit))
	if to <= from && size > 0 {
		from = int(math.Floor(start / unit))
		to = from + 1
	}
	return max(0, from), min(limit, to)
}

func (r *Raster) fill(b scene.Rect, clip *scene.Rect, paint func(*cell)) {
	if clip != nil {
		b = b.Intersect(*clip)
	}
	if b.Empty() {
		return
	}
	c0, c1 := span(b.X, b.W, CellW, r.cols)
	r0, r1 := span(b.Y, b.H, CellH, r.rows)
	for row := r0; row < r1; row++ {
		for col := c0; col < c1; col++ {
			paint(r.at(col, row))
		}
	}
}

func (r *Raster) text(n *scene.Node, b scene.Rect, clip *scene.Rect) {
	col0 := int(math.Round(b.X / CellW))
	for i, line := range n.Lines {
		y := b.Y + float64(i)*CellH
		row := int(math.Round(y / CellH))
		if row < 0 || row >= r.rows {
			continue
		}
		col := col0
		for _, ch := range line {
			if col >= r.cols {
				break
			}
			center := scene.Point{X: float64(col)*CellW + CellW/2, Y: float64(row)*CellH + CellH/2}
			if col >= 0 && (clip == nil || clip.Contains(center)) {
				c := r.at(col, row)
				c.ch = ch
				c.fg = n.Style.Color
				c.bold = n.Style.Bold
				c.italic = n.Style.Italic
			}
			col++
		}
	}
}

// Lines returns the bare characters of each row, mostly for tests.
func (r *Raster) Lines() []string {
	out := make([]string, r.rows)
	var sb strings.Builder
	for row := 0; row < r.rows; row++ {
		sb.Reset()
		for col := 0; col < r.cols; col++ {
			sb.WriteRune(r.at(col, row).ch)
		}
		out[row] = sb.String()
	}
	return out
}

// Render turns the grid into styled terminal text, one lipgloss render per
// run of identically styled cells.
func (r *Raster) Render() string {
	var out strings.Builder
	var run strings.Builder
	for row := 0; row < r.rows; row++ {
		var style *cell
		flush := func() {
			if style != nil && run.Len() > 0 {
				out.WriteString(cellStyle(*style).Render(run.String()))
			}
			run.Reset()
		}
		for col := 0; col < r.cols; col++ {
			c := r.at(col, row)
			if style == nil || !sameStyle(*style, *c) {
				flush()
				style = c
			}
			run.WriteRune(c.ch)
		}
		flush()
		if row < r.rows-1 {
			out.WriteByte('\n')
		}
	}
	return out.String()
}

func sameStyle(a, b cell) bool {
	return a.fg == b.fg && a.bg == b.bg && a.bold == b.bold && a.italic == b.italic
}

func cellStyle(c cell) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(hex(c.fg)).
		Background(hex(c.bg)).
		Bold(c.bold).
		Italic(c.italic)
}

func hex(c color.RGBA) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}

// blend composites src over an opaque dst.
func blend(src, dst color.RGBA) color.RGBA {
	a := float64(src.A) / 0xff
	mix := func(s, d uint8) uint8 {
		return uint8(math.Round(float64(s)*a + float64(d)*(1-a)))
	}
	return color.RGBA{R: mix(src.R, dst.R), G: mix(src.G, dst.G), B: mix(src.B, dst.B), A: 0xff}
}
