// Package village builds the village scene: the player, the wizard and the
// scenery, plus the conversation modal and quest panel on top of them.
package village

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/jwebster45206/wizard-village/pkg/conversation"
	"github.com/jwebster45206/wizard-village/pkg/dialog"
	"github.com/jwebster45206/wizard-village/pkg/proximity"
	"github.com/jwebster45206/wizard-village/pkg/quest"
	"github.com/jwebster45206/wizard-village/pkg/scene"
	"github.com/jwebster45206/wizard-village/pkg/textinput"
	"github.com/jwebster45206/wizard-village/pkg/viewport"
)

const (
	Greeting = "Greetings, young villager! I am the wizard of this humble village. What knowledge do you seek?"

	promptText  = "Press E to speak with the Wizard"
	modalTitle  = "Conversation with the Wizard"
	pendingText = "The wizard ponders..."
	hintText    = "Arrows/WASD move  E talk  Q quests"
	modalHint   = "Enter send  Esc close  Up/Down/PgUp/PgDn scroll"
)

var (
	Wizard   = conversation.Speaker{DisplayName: "Wizard", Role: conversation.SenderNPC}
	Villager = conversation.Speaker{DisplayName: "Villager", Role: conversation.SenderPlayer}
)

// Options are the collaborators the scene needs from its host.
type Options struct {
	Measurer    scene.Measurer
	Client      dialog.ChatClient
	SessionID   string
	ChatTimeout time.Duration
	Proximity   proximity.Config
	ScrollStep  float64
	Clipboard   textinput.Clipboard
	Filter      dialog.TextFilter
	Events      dialog.EventListener // optional, sees every event after the quests
	Logger      *slog.Logger
}

// FrameInput is everything a host collects for one tick. MoveX and MoveY are
// the held movement direction in -1..1; Keys are the key-downs since the last
// tick, in order.
type FrameInput struct {
	DT    time.Duration
	MoveX float64
	MoveY float64
	Keys  []scene.KeyEvent
}

// Village is the whole scene graph plus the state driving it.
type Village struct {
	logger *slog.Logger

	root      *scene.Node
	player    *scene.Node
	wizard    *scene.Node
	prompt    *scene.Node
	modal     *scene.Node
	pending   *scene.Node
	obstacles []scene.Rect

	playerPos scene.Point

	quests     *quest.Tracker
	panel      *quest.ScenePanel
	controller *dialog.Controller
}

// New lays out the village and wires the dialog subsystem.
func New(opts Options) (*Village, error) {
	if opts.Measurer == nil {
		return nil, fmt.Errorf("village needs a text measurer")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	m := opts.Measurer

	v := &Village{
		logger:    logger,
		root:      scene.NewGroup("village"),
		playerPos: playerStart,
	}

	v.buildWorld(m)

	renderer, err := viewport.NewMessageRenderer(
		scene.Rect{X: messagesRect.X - modalRect.X, Y: messagesRect.Y - modalRect.Y, W: messagesRect.W, H: messagesRect.H},
		m,
		viewport.Config{
			Layout: conversation.LayoutConfig{
				BubbleWidth: messagesRect.W * 0.7,
				PadX:        8,
				PadY:        4,
				Gap:         12,
			},
			Step:  opts.ScrollStep,
			Style: viewport.DefaultStyle(),
		},
	)
	if err != nil {
		return nil, err
	}
	input := textinput.New(m, textinput.Config{
		Width:     inputWidth,
		MinHeight: 40,
		PadX:      8,
		PadY:      8,
		Style:     scene.TextStyle{Color: white},
		BoxFill:   inputColor,
		Clipboard: opts.Clipboard,
		Logger:    logger,
	})
	v.buildModal(m, renderer, input)

	quests, triggers := quest.DefaultQuests()
	v.quests = quest.NewTracker(quests, triggers, logger)
	v.panel = quest.NewScenePanel(m, 300)
	v.panel.Node().SetPosition(12, 12).SetDepth(50)
	v.quests.SetPanel(v.panel)
	v.root.Add(v.panel.Node())

	pcfg := opts.Proximity
	pcfg.PlayerW, pcfg.PlayerH = PlayerSize, PlayerSize
	detector, err := proximity.New(pcfg)
	if err != nil {
		return nil, err
	}

	v.controller, err = dialog.New(dialog.Config{
		Client:    opts.Client,
		SessionID: opts.SessionID,
		Timeout:   opts.ChatTimeout,
		NPC:       Wizard,
		Player:    Villager,
		Greeting:  Greeting,
		Renderer:  renderer,
		Input:     input,
		Detector:  detector,
		View:      sceneView{v},
		Listener:  listeners{v.quests, opts.Events},
		Filter:    opts.Filter,
		Logger:    logger,
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (v *Village) buildWorld(m scene.Measurer) {
	world := scene.NewGroup("world")
	world.Add(
		scene.NewRect("grass", Width, Height, grassColor),
		scene.NewRect("path_ns", 64, Height, pathColor).SetPosition(wizardPos.X-32, 0).SetDepth(1),
		scene.NewRect("path_ew", Width, 48, pathColor).SetPosition(0, 300).SetDepth(1),
	)
	for i, p := range props {
		world.Add(scene.NewSprite(fmt.Sprintf("%s_%d", p.sprite, i), p.sprite, p.rect.W, p.rect.H).
			SetPosition(p.rect.X, p.rect.Y).
			SetDepth(2))
		v.obstacles = append(v.obstacles, p.rect)
	}

	v.wizard = scene.NewSprite("wizard", SpriteWizard, wizardSize.X, wizardSize.Y).
		SetPosition(wizardPos.X, wizardPos.Y).
		SetOrigin(0.5, 0.5).
		SetDepth(3)
	v.obstacles = append(v.obstacles, scene.RectAround(wizardPos, wizardSize.X, wizardSize.Y))

	v.player = scene.NewSprite("player", SpritePlayer, PlayerSize, PlayerSize).
		SetOrigin(0.5, 0.5).
		SetDepth(4)
	v.player.SetPosition(v.playerPos.X, v.playerPos.Y)
	world.Add(v.wizard, v.player)

	v.prompt = scene.NewGroup("prompt").SetPosition(wizardPos.X, wizardPos.Y-promptOffset).SetDepth(10)
	label := scene.NewTextBlock(m, "prompt_text", promptText, 0, scene.TextStyle{Color: white, Bold: true}).
		SetOrigin(0.5, 0.5).
		SetDepth(1)
	back := scene.NewRect("prompt_bg", label.W+16, label.H+8, promptBack).SetOrigin(0.5, 0.5)
	v.prompt.Add(back, label)
	v.prompt.Visible = false

	hint := scene.NewTextBlock(m, "hint", hintText, 0, scene.TextStyle{Color: hintColor}).
		SetPosition(12, Height-12).
		SetOrigin(0, 1).
		SetDepth(10)

	v.root.Add(world, v.prompt, hint)
}

func (v *Village) buildModal(m scene.Measurer, renderer *viewport.MessageRenderer, input *textinput.Capture) {
	v.modal = scene.NewGroup("modal").SetDepth(100)
	panel := scene.NewGroup("modal_panel").SetPosition(modalRect.X, modalRect.Y)

	lh := m.LineHeight()
	title := scene.NewTextBlock(m, "modal_title", modalTitle, 0, scene.TextStyle{Color: gold, Bold: true}).
		SetPosition(modalRect.W/2, 24).
		SetOrigin(0.5, 0.5).
		SetDepth(2)
	closeX := scene.NewTextBlock(m, "modal_close", "X", 0, scene.TextStyle{Color: white, Bold: true}).
		SetPosition(modalRect.W-24, 24).
		SetOrigin(0.5, 0.5).
		SetDepth(2)

	v.pending = scene.NewTextBlock(m, "modal_pending", pendingText, 0, scene.TextStyle{Color: lavender, Italic: true}).
		SetPosition(messagesRect.X-modalRect.X, messagesRect.Y-modalRect.Y+messagesRect.H+lh/2).
		SetDepth(2)
	v.pending.Visible = false

	input.Node().SetPosition(messagesRect.X-modalRect.X, inputBottom-modalRect.Y).SetDepth(2)
	sendX := messagesRect.X - modalRect.X + inputWidth + 8
	sendW := messagesRect.W - inputWidth - 8
	send := scene.NewRect("modal_send", sendW, 40, sendColor).
		SetPosition(sendX, inputBottom-modalRect.Y-40).
		SetDepth(2)
	sendLabel := scene.NewTextBlock(m, "modal_send_label", "Send", 0, scene.TextStyle{Color: white, Bold: true}).
		SetPosition(sendX+sendW/2, inputBottom-modalRect.Y-20).
		SetOrigin(0.5, 0.5).
		SetDepth(3)
	hint := scene.NewTextBlock(m, "modal_hint", modalHint, 0, scene.TextStyle{Color: hintColor}).
		SetPosition(modalRect.W/2, modalRect.H-4).
		SetOrigin(0.5, 1).
		SetDepth(2)

	panel.Add(
		scene.NewRect("modal_border", modalRect.W, modalRect.H, borderColor),
		scene.NewRect("modal_bg", modalRect.W-8, modalRect.H-8, scrollColor).SetPosition(4, 4).SetDepth(1),
		title, closeX,
		renderer.Node().SetDepth(2),
		v.pending, input.Node(), send, sendLabel, hint,
	)
	v.modal.Add(scene.NewRect("modal_dim", Width, Height, dimColor), panel)
	v.modal.Visible = false
	v.root.Add(v.modal)
}

// Root is the scene graph hosts draw.
func (v *Village) Root() *scene.Node {
	return v.root
}

// Controller exposes the dialog controller.
func (v *Village) Controller() *dialog.Controller {
	return v.controller
}

// Quests exposes the quest tracker.
func (v *Village) Quests() *quest.Tracker {
	return v.quests
}

// PlayerBounds is the player's collision box.
func (v *Village) PlayerBounds() scene.Rect {
	return scene.RectAround(v.playerPos, PlayerSize, PlayerSize)
}

// Update advances the scene by one frame.
func (v *Village) Update(in FrameInput) {
	for _, ev := range in.Keys {
		if v.controller.HandleKey(ev) {
			continue
		}
		if ev.IsRune('q') {
			shown := v.panel.Toggle(v.quests.Quests())
			v.logger.Debug("Quest panel toggled", "visible", shown)
		}
	}

	if v.controller.MovementAllowed() {
		v.move(in.MoveX, in.MoveY, in.DT)
	}
	v.controller.Update(in.DT, v.PlayerBounds(), wizardPos)
}

// move applies one frame of movement, resolving each axis separately so the
// player slides along obstacles instead of sticking to them.
func (v *Village) move(dx, dy float64, dt time.Duration) {
	if dx == 0 && dy == 0 {
		return
	}
	if l := math.Hypot(dx, dy); l > 1 {
		dx, dy = dx/l, dy/l
	}
	dist := PlayerSpeed * dt.Seconds()

	// Sub-step long frames so the player cannot tunnel through thin props.
	half := PlayerSize / 2.0
	steps := int(math.Ceil(dist / half))
	step := dist / float64(steps)
	next := v.playerPos
	for i := 0; i < steps; i++ {
		x := scene.Clamp(next.X+dx*step, half, Width-half)
		if !v.blocked(scene.Point{X: x, Y: next.Y}) {
			next.X = x
		}
		y := scene.Clamp(next.Y+dy*step, half, Height-half)
		if !v.blocked(scene.Point{X: next.X, Y: y}) {
			next.Y = y
		}
	}
	v.playerPos = next
	v.player.SetPosition(next.X, next.Y)
}

func (v *Village) blocked(center scene.Point) bool {
	box := scene.RectAround(center, PlayerSize, PlayerSize)
	for _, o := range v.obstacles {
		if box.Overlaps(o) {
			return true
		}
	}
	return false
}

// Shutdown abandons in-flight chat requests.
func (v *Village) Shutdown() {
	v.controller.Shutdown()
}

type listeners []dialog.EventListener

func (ls listeners) OnEvent(name string) {
	for _, l := range ls {
		if l != nil {
			l.OnEvent(name)
		}
	}
}

// sceneView lets the controller show and hide scene nodes.
type sceneView struct {
	v *Village
}

func (s sceneView) SetModalVisible(visible bool) {
	s.v.modal.Visible = visible
	if visible {
		s.v.panel.Hide()
	}
}

func (s sceneView) SetPromptVisible(visible bool) {
	s.v.prompt.Visible = visible
}

func (s sceneView) SetPending(n int) {
	s.v.pending.Visible = n > 0
}
