package conversation

import (
	"testing"

	"github.com/jwebster45206/wizard-village/pkg/scene/scenetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLayoutConfig() LayoutConfig {
	return LayoutConfig{Width: 400, BubbleWidth: 200, PadX: 8, PadY: 4, Gap: 10}
}

func TestLayout_Empty(t *testing.T) {
	entries, height := Layout(nil, scenetest.NewFixedMeasurer(), testLayoutConfig())
	assert.Empty(t, entries)
	assert.Equal(t, 0.0, height)
}

func TestLayout_StacksWithGapAndAlignment(t *testing.T) {
	msgs := []Message{
		{Sender: SenderNPC, Text: "Greetings"},       // 9 runes, one line
		{Sender: SenderPlayer, Text: "Who are you?"}, // 12 runes, one line
	}
	entries, height := Layout(msgs, scenetest.NewFixedMeasurer(), testLayoutConfig())
	require.Len(t, entries, 2)

	npc, player := entries[0], entries[1]
	assert.Equal(t, AlignLeft, npc.Align)
	assert.Equal(t, 0.0, npc.X)
	assert.Equal(t, 0.0, npc.Y)
	assert.Equal(t, 9*8.0+16, npc.W)
	assert.Equal(t, 16.0+8, npc.H)

	assert.Equal(t, AlignRight, player.Align)
	assert.Equal(t, 400-player.W, player.X)
	assert.Equal(t, npc.Bottom()+10, player.Y)

	assert.Equal(t, npc.H+10+player.H, height)
	assert.Equal(t, player.Bottom(), height)
}

func TestLayout_WrapsToBubbleWidth(t *testing.T) {
	// Wrap width is 200 - 2*8 = 184, i.e. 23 cells.
	msgs := []Message{{Sender: SenderNPC, Text: "I seem to be having trouble with my magical powers..."}}
	entries, height := Layout(msgs, scenetest.NewFixedMeasurer(), testLayoutConfig())
	require.Len(t, entries, 1)

	e := entries[0]
	assert.Greater(t, len(e.Lines), 1)
	for _, l := range e.Lines {
		assert.LessOrEqual(t, len([]rune(l))*8, 184)
	}
	assert.LessOrEqual(t, e.W, 200.0)
	assert.Equal(t, float64(len(e.Lines))*16+8, e.H)
	assert.Equal(t, e.H, height)
}

func TestLayout_BubbleWidthFallsBackToViewport(t *testing.T) {
	cfg := LayoutConfig{Width: 80, BubbleWidth: 0}
	entries, _ := Layout([]Message{{Sender: SenderPlayer, Text: "abcdefghijklmnop"}}, scenetest.NewFixedMeasurer(), cfg)
	require.Len(t, entries, 1)
	assert.Equal(t, []string{"abcdefghij", "klmnop"}, entries[0].Lines)
	assert.Equal(t, 0.0, entries[0].X)
}
