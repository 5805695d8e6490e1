package ebitenhost

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/jwebster45206/wizard-village/internal/village"
	"github.com/jwebster45206/wizard-village/pkg/scene"
)

// Game adapts the village to ebiten.Game.
type Game struct {
	village  *village.Village
	renderer *Renderer
	keys     []scene.KeyEvent
	interact interactLatch
}

func NewGame(v *village.Village, fonts *Fonts) *Game {
	return &Game{village: v, renderer: NewRenderer(fonts, NewSprites())}
}

func (g *Game) Update() error {
	if ctrlHeld() && inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		g.village.Shutdown()
		return ebiten.Termination
	}
	g.keys = g.interact.filter(
		readKeys(g.keys[:0]),
		g.village.Controller().MovementAllowed(),
		inpututil.IsKeyJustPressed(ebiten.KeyE),
		ebiten.IsKeyPressed(ebiten.KeyE),
	)
	dx, dy := readMovement()
	g.village.Update(village.FrameInput{
		DT:    time.Second / time.Duration(ebiten.TPS()),
		MoveX: dx,
		MoveY: dy,
		Keys:  g.keys,
	})
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen, g.village.Root())
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return village.Width, village.Height
}
