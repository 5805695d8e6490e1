package textinput

import (
	"errors"
	"strings"
	"testing"

	"github.com/jwebster45206/wizard-village/pkg/scene"
	"github.com/jwebster45206/wizard-village/pkg/scene/scenetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClipboard struct {
	content string
	readErr error
	written []string
}

func (f *fakeClipboard) ReadAll() (string, error) {
	return f.content, f.readErr
}

func (f *fakeClipboard) WriteAll(text string) error {
	f.written = append(f.written, text)
	return nil
}

// newTestCapture builds a focused capture 176 units wide: with 8 units of
// padding each side, 20 characters fit on a line.
func newTestCapture(t *testing.T, cb Clipboard) (*Capture, *[]string) {
	t.Helper()
	c := New(scenetest.NewFixedMeasurer(), Config{
		Width:     176,
		MinHeight: 40,
		PadX:      8,
		PadY:      4,
		Clipboard: cb,
	})
	var submitted []string
	c.OnSubmit(func(text string) { submitted = append(submitted, text) })
	c.Focus()
	return c, &submitted
}

func typeString(c *Capture, s string) {
	for _, r := range s {
		c.HandleKey(scene.RuneKey(r))
	}
}

func TestCapture_TypingAndBackspace(t *testing.T) {
	c, _ := newTestCapture(t, nil)

	typeString(c, "Hi!")
	assert.Equal(t, "Hi!", c.Text())

	assert.True(t, c.HandleKey(scene.KeyEvent{Key: scene.KeyBackspace}))
	assert.Equal(t, "Hi", c.Text())

	c.HandleKey(scene.KeyEvent{Key: scene.KeyBackspace})
	c.HandleKey(scene.KeyEvent{Key: scene.KeyBackspace})
	c.HandleKey(scene.KeyEvent{Key: scene.KeyBackspace})
	assert.Equal(t, "", c.Text())
}

func TestCapture_IgnoresKeysWhenInactive(t *testing.T) {
	c, _ := newTestCapture(t, nil)
	c.Blur()

	assert.False(t, c.HandleKey(scene.RuneKey('a')))
	assert.Equal(t, "", c.Text())
	assert.False(t, c.Active())
}

func TestCapture_Submit(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{name: "text is submitted", input: "Who are you?", expected: []string{"Who are you?"}},
		{name: "empty buffer is a no-op", input: "", expected: nil},
		{name: "whitespace only is a no-op", input: "   ", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, submitted := newTestCapture(t, nil)
			typeString(c, tt.input)

			assert.True(t, c.HandleKey(scene.KeyEvent{Key: scene.KeyEnter}))
			assert.Equal(t, tt.expected, *submitted)
			if tt.expected != nil {
				assert.Equal(t, "", c.Text(), "buffer clears after submit")
			} else {
				assert.Equal(t, tt.input, c.Text())
			}
		})
	}
}

func TestCapture_EscapeCancels(t *testing.T) {
	c, _ := newTestCapture(t, nil)
	cancelled := 0
	c.OnCancel(func() { cancelled++ })

	assert.True(t, c.HandleKey(scene.KeyEvent{Key: scene.KeyEscape}))
	assert.Equal(t, 1, cancelled)
}

func TestCapture_LeavesNavigationKeys(t *testing.T) {
	c, _ := newTestCapture(t, nil)
	for _, k := range []scene.Key{scene.KeyUp, scene.KeyDown, scene.KeyPageUp, scene.KeyPageDown} {
		assert.False(t, c.HandleKey(scene.KeyEvent{Key: k}))
	}
	assert.False(t, c.HandleKey(scene.RuneKey('\x07')), "control characters are not printable")
	assert.Equal(t, "", c.Text())
}

func TestCapture_MaxRunes(t *testing.T) {
	c, _ := newTestCapture(t, nil)
	typeString(c, strings.Repeat("a", DefaultMaxRunes+20))
	assert.Len(t, []rune(c.Text()), DefaultMaxRunes)
}

func TestCapture_BoxGrowsWithWrappedText(t *testing.T) {
	c, _ := newTestCapture(t, nil)
	assert.Equal(t, 40.0, c.Height())

	typeString(c, strings.Repeat("x", 45)) // 3 lines of 16 + 2*4 padding
	assert.Equal(t, 56.0, c.Height())
	assert.Equal(t, -56.0, c.box.Pos.Y, "box grows upward")

	for i := 0; i < 45; i++ {
		c.HandleKey(scene.KeyEvent{Key: scene.KeyBackspace})
	}
	assert.Equal(t, 40.0, c.Height(), "short text shrinks back to the minimum")
}

func TestCapture_CursorFollowsText(t *testing.T) {
	c, _ := newTestCapture(t, nil)
	startX := c.cursor.Pos.X

	typeString(c, "abc")
	assert.Equal(t, startX+24, c.cursor.Pos.X)
	assert.True(t, c.cursor.Visible)
}

func TestCapture_CursorBlinks(t *testing.T) {
	c, _ := newTestCapture(t, nil)
	require.True(t, c.cursor.Visible)

	c.Update(DefaultBlinkEvery)
	assert.False(t, c.cursor.Visible)
	c.Update(DefaultBlinkEvery)
	assert.True(t, c.cursor.Visible)

	c.Blur()
	c.Update(DefaultBlinkEvery)
	assert.False(t, c.cursor.Visible)
}

func TestCapture_Paste(t *testing.T) {
	cb := &fakeClipboard{content: "line one\nline two\r\nend"}
	c, _ := newTestCapture(t, cb)
	typeString(c, ">")

	assert.True(t, c.HandleKey(scene.CtrlKey('v')))
	assert.Equal(t, ">line one line two end", c.Text())
}

func TestCapture_PasteFailureKeepsBuffer(t *testing.T) {
	cb := &fakeClipboard{readErr: errors.New("no clipboard utility")}
	c, _ := newTestCapture(t, cb)
	typeString(c, "keep")

	c.HandleKey(scene.CtrlKey('v'))
	assert.Equal(t, "keep", c.Text())
}

func TestCapture_Copy(t *testing.T) {
	cb := &fakeClipboard{}
	c, _ := newTestCapture(t, cb)

	c.HandleKey(scene.CtrlKey('c'))
	assert.Empty(t, cb.written, "nothing to copy")

	typeString(c, "spell")
	assert.True(t, c.HandleKey(scene.CtrlKey('c')))
	assert.Equal(t, []string{"spell"}, cb.written)
	assert.Equal(t, "spell", c.Text())
}

func TestCapture_FocusResetsBuffer(t *testing.T) {
	c, _ := newTestCapture(t, nil)
	typeString(c, "draft")
	c.Blur()
	assert.Equal(t, "draft", c.Text())

	c.Focus()
	assert.Equal(t, "", c.Text())
	assert.True(t, c.Active())
}
