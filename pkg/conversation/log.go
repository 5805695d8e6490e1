package conversation

// Log is an ordered, append-only record of messages. Insertion order is
// display order, oldest first. There is no cap; windowing is the renderer's job.
type Log struct {
	messages []Message
}

// NewLog returns a log seeded with the given messages.
func NewLog(initial ...Message) *Log {
	l := &Log{}
	l.messages = append(l.messages, initial...)
	return l
}

// Append adds m at the end of the log.
func (l *Log) Append(m Message) {
	l.messages = append(l.messages, m)
}

// Len returns the number of messages.
func (l *Log) Len() int {
	return len(l.messages)
}

// At returns the i-th message, oldest first.
func (l *Log) At(i int) Message {
	return l.messages[i]
}

// Last returns the newest message and false when the log is empty.
func (l *Log) Last() (Message, bool) {
	if len(l.messages) == 0 {
		return Message{}, false
	}
	return l.messages[len(l.messages)-1], true
}

// Messages returns a copy of the log contents.
func (l *Log) Messages() []Message {
	out := make([]Message, len(l.messages))
	copy(out, l.messages)
	return out
}
