package ebitenhost

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/jwebster45206/wizard-village/pkg/dialog"
	"github.com/jwebster45206/wizard-village/pkg/scene"
)

// Key repeat, in ticks: the first press, then every repeatEvery ticks once a
// key has been held for repeatDelay.
const (
	repeatDelay = 24
	repeatEvery = 4
)

var editKeys = []struct {
	key   ebiten.Key
	event scene.Key
}{
	{ebiten.KeyEnter, scene.KeyEnter},
	{ebiten.KeyNumpadEnter, scene.KeyEnter},
	{ebiten.KeyEscape, scene.KeyEscape},
	{ebiten.KeyBackspace, scene.KeyBackspace},
	{ebiten.KeyArrowUp, scene.KeyUp},
	{ebiten.KeyArrowDown, scene.KeyDown},
	{ebiten.KeyPageUp, scene.KeyPageUp},
	{ebiten.KeyPageDown, scene.KeyPageDown},
	{ebiten.KeyTab, scene.KeyTab},
}

var ctrlChords = []struct {
	key ebiten.Key
	r   rune
}{
	{ebiten.KeyV, 'v'},
	{ebiten.KeyC, 'c'},
}

// repeats reports whether a key held for d ticks fires this tick.
func repeats(d int) bool {
	if d == 1 {
		return true
	}
	return d >= repeatDelay && (d-repeatDelay)%repeatEvery == 0
}

func ctrlHeld() bool {
	return ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)
}

// readKeys collects this tick's key-downs. Ctrl chords are reported instead
// of their letters.
func readKeys(buf []scene.KeyEvent) []scene.KeyEvent {
	ctrl := ctrlHeld()
	if ctrl {
		for _, c := range ctrlChords {
			if inpututil.IsKeyJustPressed(c.key) {
				buf = append(buf, scene.CtrlKey(c.r))
			}
		}
	} else {
		for _, r := range ebiten.AppendInputChars(nil) {
			buf = append(buf, scene.RuneKey(r))
		}
	}
	for _, k := range editKeys {
		if repeats(inpututil.KeyPressDuration(k.key)) {
			buf = append(buf, scene.KeyEvent{Key: k.event})
		}
	}
	return buf
}

// interactLatch turns the interact key into a true edge. Typed characters
// include OS key repeat, so while exploring only the tick where the key went
// down may carry it, and a key still held from opening the dialog types nothing.
type interactLatch struct {
	held bool
}

func (l *interactLatch) filter(keys []scene.KeyEvent, exploring, justPressed, pressed bool) []scene.KeyEvent {
	if !pressed || (justPressed && !exploring) {
		l.held = false
	}
	out := keys[:0]
	sent := false
	for _, ev := range keys {
		if ev.IsRune(dialog.InteractKey) {
			if l.held || (exploring && (!justPressed || sent)) {
				continue
			}
			if exploring {
				sent = true
			}
		}
		out = append(out, ev)
	}
	if exploring && justPressed && pressed {
		l.held = true
	}
	return out
}

// axis folds two opposing held states into -1, 0 or 1.
func axis(neg, pos bool) float64 {
	switch {
	case neg && !pos:
		return -1
	case pos && !neg:
		return 1
	}
	return 0
}

func anyPressed(keys ...ebiten.Key) bool {
	for _, k := range keys {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	return false
}

// readMovement returns the held direction from the arrows and WASD.
func readMovement() (dx, dy float64) {
	dx = axis(anyPressed(ebiten.KeyArrowLeft, ebiten.KeyA), anyPressed(ebiten.KeyArrowRight, ebiten.KeyD))
	dy = axis(anyPressed(ebiten.KeyArrowUp, ebiten.KeyW), anyPressed(ebiten.KeyArrowDown, ebiten.KeyS))
	return dx, dy
}
