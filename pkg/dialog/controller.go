// Package dialog runs a conversation with an NPC: it opens and closes the
// modal, routes keys, sends the player's lines to the chat endpoint and
// appends the replies to the message log.
package dialog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jwebster45206/wizard-village/pkg/chat"
	"github.com/jwebster45206/wizard-village/pkg/conversation"
	"github.com/jwebster45206/wizard-village/pkg/proximity"
	"github.com/jwebster45206/wizard-village/pkg/scene"
	"github.com/jwebster45206/wizard-village/pkg/textinput"
	"github.com/jwebster45206/wizard-village/pkg/viewport"
)

// FallbackText is what the NPC says when the chat endpoint fails.
const FallbackText = "I seem to be having trouble with my magical powers..."

// InteractKey opens the dialog when the player is near the NPC.
const InteractKey = 'e'

// DefaultTimeout bounds a single chat request.
const DefaultTimeout = 30 * time.Second

// Events passed to the EventListener.
const (
	EventDialogOpened  = "dialog_opened"
	EventReplyReceived = "reply_received"
)

// ChatClient sends one player line to the remote endpoint.
type ChatClient interface {
	Send(ctx context.Context, req chat.ChatRequest) (*chat.ChatResponse, error)
}

// View is the part of the scene the controller shows and hides.
type View interface {
	SetModalVisible(visible bool)
	SetPromptVisible(visible bool)
	SetPending(n int)
}

// EventListener receives controller events such as EventDialogOpened.
type EventListener interface {
	OnEvent(name string)
}

// TextFilter rewrites NPC replies before they are shown.
type TextFilter interface {
	FilterText(text string) string
}

// Config wires a Controller. Client, SessionID, Renderer, Input, Detector and
// View are required.
type Config struct {
	Client    ChatClient
	SessionID string
	Timeout   time.Duration

	NPC      conversation.Participant
	Player   conversation.Participant
	Greeting string // first NPC line of the log, if any

	Renderer *viewport.MessageRenderer
	Input    *textinput.Capture
	Detector *proximity.Detector
	View     View

	Listener EventListener // optional
	Filter   TextFilter    // optional
	Logger   *slog.Logger
}

type reply struct {
	text string
	err  error
}

// Controller owns the message log, the input mode and the dialog state. All
// of its methods must be called from the main loop; chat requests run on
// their own goroutines and hand their results back through Update.
type Controller struct {
	cfg    Config
	logger *slog.Logger

	log  *conversation.Log
	open bool
	mode InputMode

	pending int
	replies chan reply
	ctx     context.Context
	cancel  context.CancelFunc
}

// New validates cfg and returns a closed controller in exploration mode.
func New(cfg Config) (*Controller, error) {
	var missing []string
	if cfg.Client == nil {
		missing = append(missing, "Client")
	}
	if cfg.SessionID == "" {
		missing = append(missing, "SessionID")
	}
	if cfg.Renderer == nil {
		missing = append(missing, "Renderer")
	}
	if cfg.Input == nil {
		missing = append(missing, "Input")
	}
	if cfg.Detector == nil {
		missing = append(missing, "Detector")
	}
	if cfg.View == nil {
		missing = append(missing, "View")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("dialog controller missing %s", strings.Join(missing, ", "))
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.NPC == nil {
		cfg.NPC = conversation.Speaker{DisplayName: "NPC", Role: conversation.SenderNPC}
	}
	if cfg.Player == nil {
		cfg.Player = conversation.Speaker{DisplayName: "Player", Role: conversation.SenderPlayer}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var initial []conversation.Message
	if cfg.Greeting != "" {
		initial = append(initial, conversation.Say(cfg.NPC, cfg.Greeting))
	}

	ctx, cancel := context.WithCancel(context.Background())
	c := &Controller{
		cfg:     cfg,
		logger:  logger.With("npc", cfg.NPC.Name(), "session_id", cfg.SessionID),
		log:     conversation.NewLog(initial...),
		mode:    ModeExploration,
		replies: make(chan reply, 16),
		ctx:     ctx,
		cancel:  cancel,
	}
	cfg.Input.OnSubmit(c.Submit)
	cfg.Input.OnCancel(c.Close)
	cfg.Renderer.Rebuild(c.log.Messages())
	cfg.View.SetModalVisible(false)
	cfg.View.SetPromptVisible(false)
	return c, nil
}

// State derives the dialog state from whether the modal is open and whether
// replies are outstanding.
func (c *Controller) State() State {
	switch {
	case !c.open:
		return StateClosed
	case c.pending > 0:
		return StateOpenAwaitingReply
	default:
		return StateOpenIdle
	}
}

// Mode is the current input mode.
func (c *Controller) Mode() InputMode {
	return c.mode
}

// MovementAllowed reports whether movement input may reach the player.
func (c *Controller) MovementAllowed() bool {
	return c.mode == ModeExploration && !c.open
}

// Pending is the number of chat requests still in flight.
func (c *Controller) Pending() int {
	return c.pending
}

// Log is the conversation so far.
func (c *Controller) Log() *conversation.Log {
	return c.log
}

// HandleKey routes one key event and reports whether it was used. While the
// dialog is closed only the interact key is of interest, and only when the
// player is near the NPC. While open every key is swallowed so nothing leaks
// through to exploration controls.
func (c *Controller) HandleKey(ev scene.KeyEvent) bool {
	if !c.open {
		if ev.IsRune(InteractKey) {
			return c.Open()
		}
		return false
	}

	if c.cfg.Input.HandleKey(ev) {
		return true
	}
	r := c.cfg.Renderer
	switch {
	case ev.Is(scene.KeyUp):
		r.ScrollBy(-1)
	case ev.Is(scene.KeyDown):
		r.ScrollBy(1)
	case ev.Is(scene.KeyPageUp):
		r.ScrollTo(r.State().Position() - r.State().ViewportHeight())
	case ev.Is(scene.KeyPageDown):
		r.ScrollTo(r.State().Position() + r.State().ViewportHeight())
	}
	return true
}

// Open starts a dialog session. It does nothing and returns false when the
// dialog is already open or the player is not near the NPC.
func (c *Controller) Open() bool {
	if c.open || !c.cfg.Detector.Near() {
		return false
	}
	c.open = true
	c.mode = ModeDialog

	c.cfg.Input.Focus()
	c.cfg.View.SetModalVisible(true)
	c.cfg.View.SetPromptVisible(false)
	c.cfg.View.SetPending(c.pending)
	c.cfg.Renderer.Rebuild(c.log.Messages())
	c.cfg.Renderer.ScrollToBottom()

	c.logger.Info("Dialog opened")
	c.emit(EventDialogOpened)
	return true
}

// Close ends the dialog session. Requests in flight keep running; their
// replies still land in the log.
func (c *Controller) Close() {
	if !c.open {
		return
	}
	c.open = false
	c.mode = ModeExploration

	c.cfg.Input.Blur()
	c.cfg.View.SetModalVisible(false)
	c.cfg.View.SetPromptVisible(c.cfg.Detector.Near())

	c.logger.Info("Dialog closed", "pending", c.pending)
}

// Submit appends the player's line and asks the endpoint for a reply.
// Blank text is ignored. Nothing stops a second submit while a reply is
// outstanding; replies are appended in the order they arrive.
func (c *Controller) Submit(text string) {
	if !c.open || strings.TrimSpace(text) == "" {
		return
	}
	c.append(conversation.Say(c.cfg.Player, text))

	c.pending++
	c.cfg.View.SetPending(c.pending)

	req := chat.ChatRequest{Message: text, SessionID: c.cfg.SessionID}
	go c.request(req)
}

func (c *Controller) request(req chat.ChatRequest) {
	ctx, cancel := context.WithTimeout(c.ctx, c.cfg.Timeout)
	defer cancel()

	var r reply
	resp, err := c.cfg.Client.Send(ctx, req)
	switch {
	case err != nil:
		r.err = err
	case strings.TrimSpace(resp.Text()) == "":
		r.err = errors.New("chat endpoint returned no response text")
	default:
		r.text = resp.Text()
	}

	select {
	case c.replies <- r:
	case <-c.ctx.Done():
	}
}

// Update runs once per frame: it applies finished replies, tracks proximity
// and advances the cursor blink.
func (c *Controller) Update(dt time.Duration, player scene.Rect, npc scene.Point) {
	c.drainReplies()

	tr := c.cfg.Detector.Update(player, npc)
	switch {
	case tr.Entered && !c.open:
		c.cfg.View.SetPromptVisible(true)
	case tr.Exited:
		c.cfg.View.SetPromptVisible(false)
	}

	c.cfg.Input.Update(dt)
}

func (c *Controller) drainReplies() {
	for {
		select {
		case r := <-c.replies:
			c.deliver(r)
		default:
			return
		}
	}
}

func (c *Controller) deliver(r reply) {
	c.pending--
	c.cfg.View.SetPending(c.pending)

	text := r.text
	if r.err != nil {
		c.logger.Warn("Chat request failed, using fallback reply", "error", r.err)
		text = FallbackText
	} else if c.cfg.Filter != nil {
		text = c.cfg.Filter.FilterText(text)
	}
	c.append(conversation.Say(c.cfg.NPC, text))

	if r.err == nil {
		c.emit(EventReplyReceived)
	}
}

// append adds msg to the log and refreshes the renderer. The renderer is
// rebuilt even while the modal is hidden so it is current on the next open.
func (c *Controller) append(msg conversation.Message) {
	c.log.Append(msg)
	c.cfg.Renderer.Rebuild(c.log.Messages())
	c.cfg.Renderer.ScrollToBottom()
}

func (c *Controller) emit(event string) {
	if c.cfg.Listener != nil {
		c.cfg.Listener.OnEvent(event)
	}
}

// Shutdown abandons outstanding requests and tears down the renderer.
func (c *Controller) Shutdown() {
	c.cancel()
	c.cfg.Renderer.Destroy()
}
