package ebitenhost

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// spriteSize is the side of every generated sprite image; draw scales it to
// the node's size.
const spriteSize = 32

type spritePainter func(img *ebiten.Image)

var spritePainters = map[string]spritePainter{
	"player": paintPlayer,
	"wizard": paintWizard,
	"house":  paintHouse,
	"tree":   paintTree,
	"stone":  paintStone,
}

// Sprites generates the village art on first use.
type Sprites struct {
	images map[string]*ebiten.Image
}

func NewSprites() *Sprites {
	return &Sprites{images: make(map[string]*ebiten.Image)}
}

// Image returns the image for key, or a magenta square for unknown keys.
func (s *Sprites) Image(key string) *ebiten.Image {
	if img, ok := s.images[key]; ok {
		return img
	}
	img := ebiten.NewImage(spriteSize, spriteSize)
	paint, ok := spritePainters[key]
	if !ok {
		img.Fill(color.RGBA{R: 0xff, B: 0xff, A: 0xff})
	} else {
		paint(img)
	}
	s.images[key] = img
	return img
}

func paintPlayer(img *ebiten.Image) {
	vector.FillCircle(img, 16, 9, 6, color.RGBA{R: 0xff, G: 0xcc, B: 0x99, A: 0xff}, true)
	vector.FillRect(img, 9, 15, 14, 12, color.RGBA{R: 0x1e, G: 0x88, B: 0xe5, A: 0xff}, false)
	vector.FillRect(img, 10, 27, 4, 5, color.RGBA{R: 0x4e, G: 0x34, B: 0x2e, A: 0xff}, false)
	vector.FillRect(img, 18, 27, 4, 5, color.RGBA{R: 0x4e, G: 0x34, B: 0x2e, A: 0xff}, false)
}

func paintWizard(img *ebiten.Image) {
	robe := color.RGBA{R: 0x5e, G: 0x35, B: 0xb1, A: 0xff}
	vector.FillRect(img, 8, 14, 16, 18, robe, false)
	vector.FillCircle(img, 16, 11, 5, color.RGBA{R: 0xff, G: 0xcc, B: 0x99, A: 0xff}, true)
	vector.FillRect(img, 13, 13, 6, 7, color.RGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff}, false)
	for i := float32(0); i < 6; i++ {
		vector.FillRect(img, 10+i, 6-i, 12-2*i, 1, robe, false)
	}
	vector.FillCircle(img, 16, 2, 1.5, color.RGBA{R: 0xff, G: 0xd7, A: 0xff}, true)
}

func paintHouse(img *ebiten.Image) {
	vector.FillRect(img, 2, 14, 28, 18, color.RGBA{R: 0xd7, G: 0xcc, B: 0xc8, A: 0xff}, false)
	roof := color.RGBA{R: 0x8d, G: 0x3b, B: 0x2b, A: 0xff}
	for i := float32(0); i < 14; i++ {
		vector.FillRect(img, i, 14-i, 32-2*i, 1, roof, false)
	}
	vector.FillRect(img, 13, 22, 6, 10, color.RGBA{R: 0x6d, G: 0x4c, B: 0x41, A: 0xff}, false)
}

func paintTree(img *ebiten.Image) {
	vector.FillRect(img, 13, 20, 6, 12, color.RGBA{R: 0x6d, G: 0x4c, B: 0x41, A: 0xff}, false)
	vector.FillCircle(img, 16, 12, 11, color.RGBA{R: 0x2e, G: 0x7d, B: 0x32, A: 0xff}, true)
}

func paintStone(img *ebiten.Image) {
	vector.FillCircle(img, 16, 18, 13, color.RGBA{R: 0x75, G: 0x75, B: 0x75, A: 0xff}, true)
	vector.FillCircle(img, 12, 14, 4, color.RGBA{R: 0x9e, G: 0x9e, B: 0x9e, A: 0xff}, true)
}
