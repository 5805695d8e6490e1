package termhost

import (
	"log/slog"
	"os"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jwebster45206/wizard-village/internal/chatclient"
	"github.com/jwebster45206/wizard-village/internal/village"
	"github.com/jwebster45206/wizard-village/pkg/proximity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	v, err := village.New(village.Options{
		Measurer:    Measurer{},
		Client:      chatclient.NewMockClient("Hello there."),
		SessionID:   "5d3c8f2a-0c1e-4f6b-9a7d-2e4b6c8d0f12",
		ChatTimeout: time.Second,
		Proximity:   proximity.DefaultConfig(),
		Logger:      slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError})),
	})
	require.NoError(t, err)
	t.Cleanup(v.Shutdown)
	return NewModel(v)
}

func send(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlQ})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModelMovementImpulse(t *testing.T) {
	m := newTestModel(t)
	start := m.village.PlayerBounds().Center()

	m = send(m, tea.KeyMsg{Type: tea.KeyUp})
	m = send(m, frameMsg(time.Now()))
	moved := m.village.PlayerBounds().Center()
	assert.Less(t, moved.Y, start.Y)

	m = send(m, frameMsg(time.Now().Add(time.Second)))
	assert.Equal(t, moved, m.village.PlayerBounds().Center(), "impulse has expired")
}

func TestModelQueuesKeysUntilFrame(t *testing.T) {
	m := newTestModel(t)
	m = send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	assert.False(t, m.village.Root().Find("quest_panel").Visible)

	m = send(m, frameMsg(time.Now()))
	assert.True(t, m.village.Root().Find("quest_panel").Visible)
	assert.Empty(t, m.queued)
}

func TestModelView(t *testing.T) {
	m := newTestModel(t)
	out := m.View()
	assert.Contains(t, out, "exploration")
	assert.Contains(t, out, "ctrl+q quit")
}
