package termhost

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/jwebster45206/wizard-village/pkg/scene"
)

// translateKey maps a terminal key press to a scene key event. The second
// result is false for keys the scene has no use for.
func translateKey(msg tea.KeyMsg) (scene.KeyEvent, bool) {
	switch msg.Type {
	case tea.KeyEnter:
		return scene.KeyEvent{Key: scene.KeyEnter}, true
	case tea.KeyEsc:
		return scene.KeyEvent{Key: scene.KeyEscape}, true
	case tea.KeyBackspace:
		return scene.KeyEvent{Key: scene.KeyBackspace}, true
	case tea.KeyUp:
		return scene.KeyEvent{Key: scene.KeyUp}, true
	case tea.KeyDown:
		return scene.KeyEvent{Key: scene.KeyDown}, true
	case tea.KeyPgUp:
		return scene.KeyEvent{Key: scene.KeyPageUp}, true
	case tea.KeyPgDown:
		return scene.KeyEvent{Key: scene.KeyPageDown}, true
	case tea.KeyTab:
		return scene.KeyEvent{Key: scene.KeyTab}, true
	case tea.KeyCtrlV:
		return scene.CtrlKey('v'), true
	case tea.KeyCtrlC:
		return scene.CtrlKey('c'), true
	case tea.KeySpace:
		return scene.RuneKey(' '), true
	case tea.KeyRunes:
		if len(msg.Runes) == 1 && !msg.Alt {
			return scene.RuneKey(msg.Runes[0]), true
		}
	}
	return scene.KeyEvent{}, false
}

// expandKey turns one key message into scene events. Pasted text arrives from
// the terminal as a single multi-rune message and becomes one event per rune.
func expandKey(msg tea.KeyMsg) []scene.KeyEvent {
	if msg.Type == tea.KeyRunes && len(msg.Runes) > 1 {
		out := make([]scene.KeyEvent, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			if r == '\n' || r == '\r' {
				r = ' '
			}
			out = append(out, scene.RuneKey(r))
		}
		return out
	}
	if ev, ok := translateKey(msg); ok {
		return []scene.KeyEvent{ev}
	}
	return nil
}

// direction reports the movement a key implies, if any. Keys only move the
// player while exploring; the caller decides that.
func direction(msg tea.KeyMsg, exploring bool) (dx, dy float64, ok bool) {
	if !exploring {
		return 0, 0, false
	}
	switch msg.Type {
	case tea.KeyUp:
		return 0, -1, true
	case tea.KeyDown:
		return 0, 1, true
	case tea.KeyLeft:
		return -1, 0, true
	case tea.KeyRight:
		return 1, 0, true
	}
	if msg.Type != tea.KeyRunes || len(msg.Runes) != 1 {
		return 0, 0, false
	}
	switch msg.Runes[0] {
	case 'w', 'W':
		return 0, -1, true
	case 's', 'S':
		return 0, 1, true
	case 'a', 'A':
		return -1, 0, true
	case 'd', 'D':
		return 1, 0, true
	}
	return 0, 0, false
}
