// Package conversation holds the append-only message log of a dialog and the
// layout arithmetic used to stack its messages inside a viewport.
package conversation

// Sender tags who produced a message.
type Sender uint8

const (
	SenderNPC Sender = iota
	SenderPlayer
)

func (s Sender) String() string {
	switch s {
	case SenderNPC:
		return "npc"
	case SenderPlayer:
		return "player"
	default:
		return "unknown"
	}
}

// Message is one line of a conversation. It is a value type: once appended to
// a Log it is never changed.
type Message struct {
	Sender Sender
	Text   string
}

// Participant is anyone who can speak in a conversation. The wizard, other
// NPCs and the player all satisfy it; the sender tag decides how their lines
// are laid out.
type Participant interface {
	Name() string
	Sender() Sender
}

// Speaker is the stock Participant implementation.
type Speaker struct {
	DisplayName string
	Role        Sender
}

func (s Speaker) Name() string   { return s.DisplayName }
func (s Speaker) Sender() Sender { return s.Role }

// Say builds a message spoken by p.
func Say(p Participant, text string) Message {
	return Message{Sender: p.Sender(), Text: text}
}
