package ebitenhost

import (
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/jwebster45206/wizard-village/pkg/scene"
)

// Renderer paints a scene graph onto an Ebiten image.
type Renderer struct {
	fonts   *Fonts
	sprites *Sprites
}

func NewRenderer(fonts *Fonts, sprites *Sprites) *Renderer {
	return &Renderer{fonts: fonts, sprites: sprites}
}

// Draw walks root and paints every visible node, honouring group clips.
func (r *Renderer) Draw(screen *ebiten.Image, root *scene.Node) {
	scene.Walk(root, func(n *scene.Node, b scene.Rect, clip *scene.Rect) {
		dst := screen
		if clip != nil {
			area := clipRect(*clip)
			if area.Empty() {
				return
			}
			dst = screen.SubImage(area).(*ebiten.Image)
		}
		switch n.Kind {
		case scene.KindRect:
			vector.FillRect(dst, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), n.Fill, false)
		case scene.KindSprite:
			r.drawSprite(dst, n, b)
		case scene.KindText:
			r.drawText(dst, n, b)
		}
	})
}

func (r *Renderer) drawSprite(dst *ebiten.Image, n *scene.Node, b scene.Rect) {
	img := r.sprites.Image(n.Sprite)
	size := img.Bounds().Size()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(b.W/float64(size.X), b.H/float64(size.Y))
	op.GeoM.Translate(b.X, b.Y)
	dst.DrawImage(img, op)
}

func (r *Renderer) drawText(dst *ebiten.Image, n *scene.Node, b scene.Rect) {
	face := r.fonts.Face(n.Style)
	lh := r.fonts.LineHeight()
	for i, line := range n.Lines {
		if line == "" {
			continue
		}
		op := &text.DrawOptions{}
		op.GeoM.Translate(b.X, b.Y+float64(i)*lh)
		op.ColorScale.ScaleWithColor(n.Style.Color)
		text.Draw(dst, line, face, op)
	}
}

// clipRect converts a scene clip to whole pixels, shrinking partial edges.
func clipRect(c scene.Rect) image.Rectangle {
	return image.Rect(
		int(math.Ceil(c.X)),
		int(math.Ceil(c.Y)),
		int(math.Floor(c.Right())),
		int(math.Floor(c.Bottom())),
	)
}
