package dialog

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jwebster45206/wizard-village/internal/chatclient"
	"github.com/jwebster45206/wizard-village/pkg/chat"
	"github.com/jwebster45206/wizard-village/pkg/conversation"
	"github.com/jwebster45206/wizard-village/pkg/proximity"
	"github.com/jwebster45206/wizard-village/pkg/scene"
	"github.com/jwebster45206/wizard-village/pkg/scene/scenetest"
	"github.com/jwebster45206/wizard-village/pkg/textinput"
	"github.com/jwebster45206/wizard-village/pkg/viewport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	wizardPos  = scene.Point{X: 400, Y: 300}
	playerNear = scene.RectAround(scene.Point{X: 400, Y: 340}, 32, 32)
	playerFar  = scene.RectAround(scene.Point{X: 700, Y: 300}, 32, 32)

	wizard   = conversation.Speaker{DisplayName: "Wizard", Role: conversation.SenderNPC}
	villager = conversation.Speaker{DisplayName: "Villager", Role: conversation.SenderPlayer}
)

type fakeView struct {
	modal   bool
	prompt  bool
	pending int
}

func (v *fakeView) SetModalVisible(visible bool)  { v.modal = visible }
func (v *fakeView) SetPromptVisible(visible bool) { v.prompt = visible }
func (v *fakeView) SetPending(n int)              { v.pending = n }

type recordingListener struct {
	events []string
}

func (l *recordingListener) OnEvent(name string) { l.events = append(l.events, name) }

type upperFilter struct{}

func (upperFilter) FilterText(s string) string { return strings.ToUpper(s) }

type harness struct {
	c        *Controller
	view     *fakeView
	listener *recordingListener
	renderer *viewport.MessageRenderer
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newHarness(t *testing.T, client ChatClient, opts ...func(*Config)) *harness {
	t.Helper()
	m := scenetest.NewFixedMeasurer()
	renderer, err := viewport.NewMessageRenderer(scene.Rect{W: 400, H: 200}, m, viewport.Config{
		Layout: conversation.LayoutConfig{BubbleWidth: 280, PadX: 8, PadY: 4, Gap: 10},
		Step:   30,
		Style:  viewport.DefaultStyle(),
	})
	require.NoError(t, err)
	detector, err := proximity.New(proximity.DefaultConfig())
	require.NoError(t, err)

	h := &harness{view: &fakeView{}, listener: &recordingListener{}, renderer: renderer}
	cfg := Config{
		Client:    client,
		SessionID: "0b6f7c1e-7d0f-4a51-9a43-3c1f0d2e9b11",
		Timeout:   time.Second,
		NPC:       wizard,
		Player:    villager,
		Renderer:  renderer,
		Input:     textinput.New(m, textinput.Config{Width: 400, PadX: 8, PadY: 4}),
		Detector:  detector,
		View:      h.view,
		Listener:  h.listener,
		Logger:    testLogger(),
	}
	for _, o := range opts {
		o(&cfg)
	}
	h.c, err = New(cfg)
	require.NoError(t, err)
	t.Cleanup(h.c.Shutdown)
	return h
}

func (h *harness) tick(player scene.Rect) {
	h.c.Update(16*time.Millisecond, player, wizardPos)
}

func (h *harness) openDialog(t *testing.T) {
	t.Helper()
	h.tick(playerNear)
	require.True(t, h.c.HandleKey(scene.RuneKey('E')))
	require.Equal(t, StateOpenIdle, h.c.State())
}

func (h *harness) say(text string) {
	for _, r := range text {
		h.c.HandleKey(scene.RuneKey(r))
	}
	h.c.HandleKey(scene.KeyEvent{Key: scene.KeyEnter})
}

// waitForReplies ticks the main loop until no request is outstanding.
func (h *harness) waitForReplies(t *testing.T) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for h.c.Pending() > 0 {
		if time.Now().After(deadline) {
			t.Fatalf("replies still pending: %d", h.c.Pending())
		}
		time.Sleep(2 * time.Millisecond)
		h.tick(playerNear)
	}
}

func failingClient() *chatclient.MockClient {
	return &chatclient.MockClient{
		SendFunc: func(ctx context.Context, req chat.ChatRequest) (*chat.ChatResponse, error) {
			return nil, errors.New("connection refused")
		},
	}
}

// gatedClient answers each message with "re: <message>" once its gate opens.
type gatedClient struct {
	mu    sync.Mutex
	gates map[string]chan struct{}
}

func newGatedClient(messages ...string) *gatedClient {
	g := &gatedClient{gates: make(map[string]chan struct{})}
	for _, m := range messages {
		g.gates[m] = make(chan struct{})
	}
	return g
}

func (g *gatedClient) release(message string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	close(g.gates[message])
}

func (g *gatedClient) Send(ctx context.Context, req chat.ChatRequest) (*chat.ChatResponse, error) {
	g.mu.Lock()
	gate := g.gates[req.Message]
	g.mu.Unlock()
	select {
	case <-gate:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	text := "re: " + req.Message
	return &chat.ChatResponse{Response: &text}, nil
}

func TestNew_RequiresCollaborators(t *testing.T) {
	_, err := New(Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Client")
	assert.Contains(t, err.Error(), "View")
}

func TestController_Greeting(t *testing.T) {
	h := newHarness(t, chatclient.NewMockClient("hi"), func(c *Config) { c.Greeting = "Greetings!" })
	require.Equal(t, 1, h.c.Log().Len())
	assert.Equal(t, conversation.Message{Sender: conversation.SenderNPC, Text: "Greetings!"}, h.c.Log().At(0))
	assert.Len(t, h.renderer.Entries(), 1)
}

func TestController_OpenRequiresProximity(t *testing.T) {
	h := newHarness(t, chatclient.NewMockClient("hi"))

	h.tick(playerFar)
	assert.False(t, h.c.HandleKey(scene.RuneKey('e')))
	assert.Equal(t, StateClosed, h.c.State())
	assert.Equal(t, ModeExploration, h.c.Mode())
	assert.False(t, h.view.prompt)

	h.tick(playerNear)
	assert.True(t, h.view.prompt)
	assert.False(t, h.c.HandleKey(scene.RuneKey('q')), "other keys are left for exploration")
	assert.False(t, h.c.HandleKey(scene.CtrlKey('e')))

	assert.True(t, h.c.HandleKey(scene.RuneKey('e')))
	assert.Equal(t, StateOpenIdle, h.c.State())
	assert.Equal(t, ModeDialog, h.c.Mode())
	assert.True(t, h.view.modal)
	assert.False(t, h.view.prompt, "prompt is removed while the dialog is open")
	assert.Equal(t, []string{EventDialogOpened}, h.listener.events)
}

func TestController_InteractKeyWhileOpenIsTyped(t *testing.T) {
	h := newHarness(t, chatclient.NewMockClient("hi"))
	h.openDialog(t)

	assert.True(t, h.c.HandleKey(scene.RuneKey('e')))
	assert.False(t, h.c.Open(), "already open")
	assert.Equal(t, "e", h.c.cfg.Input.Text())
	assert.Equal(t, []string{EventDialogOpened}, h.listener.events)
}

func TestController_MovementSuspendedWhileOpen(t *testing.T) {
	h := newHarness(t, chatclient.NewMockClient("hi"))
	assert.True(t, h.c.MovementAllowed())

	h.openDialog(t)
	assert.False(t, h.c.MovementAllowed())
	for _, k := range []scene.KeyEvent{scene.RuneKey('w'), scene.RuneKey('q'), {Key: scene.KeyUp}} {
		assert.True(t, h.c.HandleKey(k), "open dialog swallows every key")
	}

	h.c.HandleKey(scene.KeyEvent{Key: scene.KeyEscape})
	assert.True(t, h.c.MovementAllowed())
	assert.Equal(t, StateClosed, h.c.State())
	assert.False(t, h.view.modal)
	assert.True(t, h.view.prompt, "still near after closing")
}

func TestController_WhoAreYou(t *testing.T) {
	client := chatclient.NewMockClient("I am the wizard.")
	h := newHarness(t, client)
	h.openDialog(t)

	h.say("Who are you?")
	assert.Equal(t, StateOpenAwaitingReply, h.c.State())
	assert.Equal(t, 1, h.view.pending)
	h.waitForReplies(t)

	msgs := h.c.Log().Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, conversation.Message{Sender: conversation.SenderPlayer, Text: "Who are you?"}, msgs[0])
	assert.Equal(t, conversation.Message{Sender: conversation.SenderNPC, Text: "I am the wizard."}, msgs[1])
	assert.Equal(t, ModeDialog, h.c.Mode())
	assert.Equal(t, StateOpenIdle, h.c.State())
	assert.Equal(t, 0, h.view.pending)

	calls := client.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "Who are you?", calls[0].Message)
	assert.Equal(t, "0b6f7c1e-7d0f-4a51-9a43-3c1f0d2e9b11", calls[0].SessionID)
	assert.Equal(t, []string{EventDialogOpened, EventReplyReceived}, h.listener.events)
	assert.Len(t, h.renderer.Entries(), 2)
}

func TestController_SessionIDStableAcrossMessages(t *testing.T) {
	client := chatclient.NewMockClient("ok")
	h := newHarness(t, client)
	h.openDialog(t)

	h.say("one")
	h.say("two")
	h.waitForReplies(t)

	calls := client.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, calls[0].SessionID, calls[1].SessionID)
}

func TestController_FallbackOnFailure(t *testing.T) {
	tests := []struct {
		name   string
		client *chatclient.MockClient
	}{
		{name: "endpoint error", client: failingClient()},
		{name: "missing response field", client: &chatclient.MockClient{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, tt.client)
			h.openDialog(t)

			h.say("hello")
			h.waitForReplies(t)

			msgs := h.c.Log().Messages()
			require.Len(t, msgs, 2)
			assert.Equal(t, conversation.Message{Sender: conversation.SenderPlayer, Text: "hello"}, msgs[0])
			assert.Equal(t, conversation.Message{Sender: conversation.SenderNPC, Text: FallbackText}, msgs[1])
			assert.NotContains(t, h.listener.events, EventReplyReceived)
		})
	}
}

func TestController_BlankSubmitIsIgnored(t *testing.T) {
	client := chatclient.NewMockClient("hi")
	h := newHarness(t, client)
	h.openDialog(t)

	for _, text := range []string{"", " ", "   "} {
		h.say(text)
		h.c.Submit(text)
	}
	assert.Equal(t, 0, h.c.Log().Len())
	assert.Empty(t, client.Calls())
	assert.Equal(t, StateOpenIdle, h.c.State())
}

func TestController_SubmitWhileClosedIsIgnored(t *testing.T) {
	client := chatclient.NewMockClient("hi")
	h := newHarness(t, client)

	h.c.Submit("hello")
	assert.Equal(t, 0, h.c.Log().Len())
	assert.Empty(t, client.Calls())
}

func TestController_EscapeWhileAwaitingReply(t *testing.T) {
	client := newGatedClient("slow question")
	h := newHarness(t, client)
	h.openDialog(t)

	h.say("slow question")
	require.Equal(t, StateOpenAwaitingReply, h.c.State())

	h.c.HandleKey(scene.KeyEvent{Key: scene.KeyEscape})
	assert.Equal(t, ModeExploration, h.c.Mode())
	assert.Equal(t, StateClosed, h.c.State())
	assert.False(t, h.view.modal)

	client.release("slow question")
	assert.NotPanics(t, func() { h.waitForReplies(t) })

	msgs := h.c.Log().Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, conversation.Message{Sender: conversation.SenderNPC, Text: "re: slow question"}, msgs[1])
	assert.Equal(t, StateClosed, h.c.State())
	assert.Len(t, h.renderer.Entries(), 2, "hidden renderer is kept current")

	h.openDialog(t)
	assert.True(t, h.renderer.State().AtBottom())
}

func TestController_RepliesInResolutionOrder(t *testing.T) {
	client := newGatedClient("first", "second")
	h := newHarness(t, client)
	h.openDialog(t)

	h.say("first")
	h.say("second")
	require.Equal(t, 2, h.c.Pending())

	client.release("second")
	for h.c.Log().Len() < 3 {
		time.Sleep(2 * time.Millisecond)
		h.tick(playerNear)
	}
	client.release("first")
	h.waitForReplies(t)

	var texts []string
	for _, m := range h.c.Log().Messages() {
		texts = append(texts, m.Text)
	}
	assert.Equal(t, []string{"first", "second", "re: second", "re: first"}, texts)
}

func TestController_ReplyIsFiltered(t *testing.T) {
	h := newHarness(t, chatclient.NewMockClient("abracadabra"), func(c *Config) { c.Filter = upperFilter{} })
	h.openDialog(t)

	h.say("spell?")
	h.waitForReplies(t)

	last, ok := h.c.Log().Last()
	require.True(t, ok)
	assert.Equal(t, "ABRACADABRA", last.Text)
	assert.Equal(t, "spell?", h.c.Log().At(0).Text, "player lines are not filtered")
}

func TestController_ScrollKeys(t *testing.T) {
	h := newHarness(t, chatclient.NewMockClient(strings.Repeat("word ", 60)))
	h.openDialog(t)
	for i := 0; i < 3; i++ {
		h.say("tell me more")
	}
	h.waitForReplies(t)

	st := h.renderer.State()
	require.Greater(t, st.Max(), 0.0)
	require.True(t, st.AtBottom())

	h.c.HandleKey(scene.KeyEvent{Key: scene.KeyUp})
	assert.Equal(t, st.Max()-30, h.renderer.State().Position())
	h.c.HandleKey(scene.KeyEvent{Key: scene.KeyDown})
	assert.Equal(t, st.Max(), h.renderer.State().Position())
	h.c.HandleKey(scene.KeyEvent{Key: scene.KeyPageUp})
	assert.Equal(t, st.Max()-200, h.renderer.State().Position())
	h.c.HandleKey(scene.KeyEvent{Key: scene.KeyPageDown})
	assert.Equal(t, st.Max(), h.renderer.State().Position())
}

func TestController_PromptFollowsProximity(t *testing.T) {
	h := newHarness(t, chatclient.NewMockClient("hi"))

	h.tick(playerNear)
	assert.True(t, h.view.prompt)
	h.tick(playerFar)
	assert.False(t, h.view.prompt)
}

func TestController_LogIsAppendOnly(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	client := &chatclient.MockClient{
		SendFunc: func(ctx context.Context, req chat.ChatRequest) (*chat.ChatResponse, error) {
			if strings.HasSuffix(req.Message, "!") {
				return nil, errors.New("flaky")
			}
			text := "yes"
			return &chat.ChatResponse{Response: &text}, nil
		},
	}
	h := newHarness(t, client)
	h.openDialog(t)

	snapshot := h.c.Log().Messages()
	for i := 0; i < 200; i++ {
		switch rng.Intn(5) {
		case 0:
			h.say("question?")
		case 1:
			h.say("shout!")
		case 2:
			h.say("  ")
		case 3:
			h.c.HandleKey(scene.KeyEvent{Key: scene.KeyEscape})
			h.tick(playerNear)
			h.c.HandleKey(scene.RuneKey('e'))
		default:
			h.tick(playerNear)
		}
		current := h.c.Log().Messages()
		require.GreaterOrEqual(t, len(current), len(snapshot), "step %d", i)
		for j, m := range snapshot {
			require.Equal(t, m, current[j], "step %d entry %d", i, j)
		}
		snapshot = current
	}
	h.waitForReplies(t)
}

func TestController_ShutdownWithRequestInFlight(t *testing.T) {
	client := newGatedClient("never answered")
	h := newHarness(t, client)
	h.openDialog(t)
	h.say("never answered")

	h.c.Shutdown()
	assert.NotPanics(t, func() {
		h.tick(playerNear)
		h.c.Close()
	})
}
