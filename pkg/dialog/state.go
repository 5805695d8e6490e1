package dialog

// State is the dialog session state.
type State uint8

const (
	StateClosed State = iota
	StateOpenIdle
	StateOpenAwaitingReply
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpenIdle:
		return "open_idle"
	case StateOpenAwaitingReply:
		return "open_awaiting_reply"
	default:
		return "unknown"
	}
}

// InputMode decides where keyboard input goes.
type InputMode uint8

const (
	// ModeExploration lets movement keys reach the player.
	ModeExploration InputMode = iota
	// ModeDialog routes keys to the edit buffer and freezes the player.
	ModeDialog
)

func (m InputMode) String() string {
	if m == ModeDialog {
		return "dialog"
	}
	return "exploration"
}
