package scene

// Key names the non-printable keys the interaction layer cares about.
// Printable input arrives as KeyRune with the character in Rune.
type Key uint8

const (
	KeyNone Key = iota
	KeyRune
	KeyEnter
	KeyEscape
	KeyBackspace
	KeyUp
	KeyDown
	KeyPageUp
	KeyPageDown
	KeyTab
)

// KeyEvent is a single key-down delivered by a host.
type KeyEvent struct {
	Key  Key
	Rune rune
	Ctrl bool
}

// RuneKey builds a printable key event.
func RuneKey(r rune) KeyEvent {
	return KeyEvent{Key: KeyRune, Rune: r}
}

// CtrlKey builds a ctrl-chord event, e.g. CtrlKey('v').
func CtrlKey(r rune) KeyEvent {
	return KeyEvent{Key: KeyRune, Rune: r, Ctrl: true}
}

// Is reports whether e is the given non-rune key.
func (e KeyEvent) Is(k Key) bool {
	return e.Key == k && !e.Ctrl
}

// IsRune reports whether e is an unmodified press of r, ignoring case.
func (e KeyEvent) IsRune(r rune) bool {
	if e.Key != KeyRune || e.Ctrl {
		return false
	}
	return foldRune(e.Rune) == foldRune(r)
}

func foldRune(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}
