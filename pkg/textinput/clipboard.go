package textinput

import "github.com/atotto/clipboard"

// Clipboard is the system clipboard as seen by the edit buffer.
type Clipboard interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

// SystemClipboard talks to the OS clipboard. On Linux it needs xclip, xsel or
// wl-clipboard installed; without one every call returns an error.
type SystemClipboard struct{}

func (SystemClipboard) ReadAll() (string, error) {
	return clipboard.ReadAll()
}

func (SystemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}
