package main

import (
	"errors"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/jwebster45206/wizard-village/internal/app"
	"github.com/jwebster45206/wizard-village/internal/ebitenhost"
	"github.com/jwebster45206/wizard-village/internal/village"
)

func main() {
	fonts, err := ebitenhost.LoadFonts(ebitenhost.FontSize)
	if err != nil {
		log.Fatal(err)
	}

	a, err := app.Start(fonts, app.Deps{})
	if err != nil {
		log.Fatal(err)
	}
	defer a.Close()

	ebiten.SetWindowTitle("Wizard Village")
	ebiten.SetWindowSize(village.Width, village.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(ebitenhost.NewGame(a.Village, fonts)); err != nil && !errors.Is(err, ebiten.Termination) {
		a.Logger.Error("Game exited with error", "error", err)
	}
}
