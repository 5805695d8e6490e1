package termhost

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jwebster45206/wizard-village/internal/village"
	"github.com/jwebster45206/wizard-village/pkg/scene"
)

const (
	// FrameInterval is how often the scene is advanced.
	FrameInterval = time.Second / 30
	// Terminals only report key presses, so a movement key keeps the player
	// walking this long; key repeat renews it while held.
	moveImpulse = 150 * time.Millisecond
	maxFrameDT  = 100 * time.Millisecond
)

var (
	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("236")).
			PaddingLeft(1).
			PaddingRight(1)

	modeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Bold(true).
			PaddingLeft(1).
			PaddingRight(1)

	pendingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Background(lipgloss.Color("236"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

type keyMap struct {
	Quit key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+q"),
			key.WithHelp("ctrl+q", "quit"),
		),
	}
}

type frameMsg time.Time

// Model is the bubbletea model hosting the village in a terminal.
type Model struct {
	village *village.Village
	raster  *Raster
	keys    keyMap
	spinner spinner.Model

	queued    []scene.KeyEvent
	moveX     float64
	moveY     float64
	moveUntil time.Time
	lastFrame time.Time

	width  int
	height int
}

// NewModel wraps v for bubbletea.
func NewModel(v *village.Village) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = pendingStyle
	return Model{
		village: v,
		raster:  NewRaster(village.Width, village.Height),
		keys:    defaultKeyMap(),
		spinner: s,
	}
}

func frame() tea.Cmd {
	return tea.Tick(FrameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(frame(), m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.village.Shutdown()
			return m, tea.Quit
		}
		m.queued = append(m.queued, expandKey(msg)...)
		if dx, dy, ok := direction(msg, m.village.Controller().MovementAllowed()); ok {
			m.moveX, m.moveY = dx, dy
			m.moveUntil = time.Now().Add(moveImpulse)
		}
		return m, nil

	case frameMsg:
		now := time.Time(msg)
		m = m.step(now)
		return m, frame()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	}
	return m, nil
}

// step advances the village to now with the keys queued since last frame.
func (m Model) step(now time.Time) Model {
	dt := FrameInterval
	if !m.lastFrame.IsZero() {
		dt = min(now.Sub(m.lastFrame), maxFrameDT)
	}
	m.lastFrame = now

	in := village.FrameInput{DT: dt, Keys: m.queued}
	if now.Before(m.moveUntil) {
		in.MoveX, in.MoveY = m.moveX, m.moveY
	}
	m.queued = nil
	m.village.Update(in)
	return m
}

func (m Model) View() string {
	m.raster.Paint(m.village.Root())
	return lipgloss.JoinVertical(lipgloss.Left, m.raster.Render(), m.statusBar())
}

func (m Model) statusBar() string {
	c := m.village.Controller()
	bar := modeStyle.Render(c.Mode().String())
	bar += statusStyle.Render(c.State().String())
	if n := c.Pending(); n > 0 {
		bar += statusStyle.Render(m.spinner.View() + fmt.Sprintf(" %d awaiting reply", n))
	}
	help := m.keys.Quit.Help()
	return bar + " " + helpStyle.Render(help.Key+" "+help.Desc)
}
