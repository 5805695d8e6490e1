package village

import (
	"image/color"

	"github.com/jwebster45206/wizard-village/pkg/scene"
)

// Scene size in pixels. The terminal host divides it into 8×16 cells.
const (
	Width  = 960
	Height = 640
)

const (
	PlayerSpeed = 160 // px per second
	PlayerSize  = 32

	promptOffset = 70 // prompt sits this far above the wizard's centre
)

// Sprite keys understood by both hosts.
const (
	SpritePlayer = "player"
	SpriteWizard = "wizard"
	SpriteHouse  = "house"
	SpriteTree   = "tree"
	SpriteStone  = "stone"
)

var (
	wizardPos   = scene.Point{X: 480, Y: 230}
	playerStart = scene.Point{X: 480, Y: 470}
	wizardSize  = scene.Point{X: 40, Y: 56}
)

type prop struct {
	sprite string
	rect   scene.Rect
}

// props are the solid scenery of the village.
var props = []prop{
	{SpriteHouse, scene.Rect{X: 80, Y: 80, W: 120, H: 96}},
	{SpriteHouse, scene.Rect{X: 740, Y: 90, W: 120, H: 96}},
	{SpriteHouse, scene.Rect{X: 100, Y: 420, W: 120, H: 96}},
	{SpriteHouse, scene.Rect{X: 720, Y: 430, W: 120, H: 96}},
	{SpriteTree, scene.Rect{X: 320, Y: 96, W: 48, H: 64}},
	{SpriteTree, scene.Rect{X: 600, Y: 110, W: 48, H: 64}},
	{SpriteTree, scene.Rect{X: 280, Y: 520, W: 48, H: 64}},
	{SpriteTree, scene.Rect{X: 620, Y: 540, W: 48, H: 64}},
	{SpriteTree, scene.Rect{X: 40, Y: 280, W: 48, H: 64}},
	{SpriteStone, scene.Rect{X: 400, Y: 360, W: 32, H: 24}},
	{SpriteStone, scene.Rect{X: 860, Y: 320, W: 32, H: 24}},
	{SpriteStone, scene.Rect{X: 200, Y: 250, W: 32, H: 24}},
}

// Modal geometry.
var (
	modalRect    = scene.Rect{X: 120, Y: 48, W: 720, H: 544}
	messagesRect = scene.Rect{X: 144, Y: 104, W: 672, H: 336}
	inputWidth   = 592.0
	inputBottom  = 568.0
)

var (
	grassColor  = color.RGBA{R: 0x4c, G: 0x8c, B: 0x3a, A: 0xff}
	pathColor   = color.RGBA{R: 0xb8, G: 0x9a, B: 0x6a, A: 0xff}
	dimColor    = color.RGBA{R: 0x00, G: 0x00, B: 0x00, A: 0x99}
	scrollColor = color.RGBA{R: 0x3e, G: 0x27, B: 0x23, A: 0xf2}
	borderColor = color.RGBA{R: 0xc9, G: 0xa2, B: 0x27, A: 0xff}
	inputColor  = color.RGBA{R: 0x26, G: 0x1a, B: 0x14, A: 0xff}
	sendColor   = color.RGBA{R: 0x79, G: 0x55, B: 0x48, A: 0xff}
	white       = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	gold        = color.RGBA{R: 0xff, G: 0xd7, B: 0x00, A: 0xff}
	lavender    = color.RGBA{R: 0xe6, G: 0xcc, B: 0xff, A: 0xff}
	promptBack  = color.RGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xb3}
	hintColor   = color.RGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff}
)
