package quest

import (
	"fmt"
	"image/color"

	"github.com/jwebster45206/wizard-village/pkg/scene"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	panelFill  = color.RGBA{R: 0x2b, G: 0x1d, B: 0x0e, A: 0xe6}
	titleStyle = scene.TextStyle{Color: color.RGBA{R: 0xff, G: 0xd7, B: 0x00, A: 0xff}, Bold: true}
	openStyle  = scene.TextStyle{Color: color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}}
	doneStyle  = scene.TextStyle{Color: color.RGBA{R: 0x8b, G: 0xc3, B: 0x4a, A: 0xff}}
	descStyle  = scene.TextStyle{Color: color.RGBA{R: 0xcc, G: 0xcc, B: 0xcc, A: 0xff}, Italic: true}
)

// ScenePanel draws the quest list as a scene group.
type ScenePanel struct {
	node     *scene.Node
	measurer scene.Measurer
	width    float64
	pad      float64
	title    cases.Caser
}

// NewScenePanel returns a hidden panel width units wide.
func NewScenePanel(m scene.Measurer, width float64) *ScenePanel {
	n := scene.NewGroup("quest_panel")
	n.Visible = false
	return &ScenePanel{
		node:     n,
		measurer: m,
		width:    width,
		pad:      m.LineHeight() / 2,
		title:    cases.Title(language.English),
	}
}

func (p *ScenePanel) Node() *scene.Node { return p.node }

func (p *ScenePanel) Visible() bool { return p.node.Visible }

// Show makes the panel visible and lays it out for quests.
func (p *ScenePanel) Show(quests []Quest) {
	p.node.Visible = true
	p.Rebuild(quests)
}

func (p *ScenePanel) Hide() {
	p.node.Visible = false
}

// Toggle flips visibility and reports the new state.
func (p *ScenePanel) Toggle(quests []Quest) bool {
	if p.node.Visible {
		p.Hide()
	} else {
		p.Show(quests)
	}
	return p.node.Visible
}

// Rebuild replaces the panel contents.
func (p *ScenePanel) Rebuild(quests []Quest) {
	for _, c := range p.node.Children() {
		c.Destroy()
	}
	inner := p.width - 2*p.pad
	bg := scene.NewRect("quest_bg", p.width, 0, panelFill)
	p.node.Add(bg)

	y := p.pad
	heading := scene.NewTextBlock(p.measurer, "quest_heading", "Quests", inner, titleStyle).
		SetPosition(p.pad, y).SetDepth(1)
	p.node.Add(heading)
	y += heading.H + p.pad

	for i, q := range quests {
		mark, style := "[ ]", openStyle
		if q.Completed {
			mark, style = "[x]", doneStyle
		}
		line := scene.NewTextBlock(p.measurer, fmt.Sprintf("quest_%d", i),
			mark+" "+p.title.String(q.Title), inner, style).
			SetPosition(p.pad, y).SetDepth(1)
		p.node.Add(line)
		y += line.H

		if q.Description != "" && !q.Completed {
			desc := scene.NewTextBlock(p.measurer, fmt.Sprintf("quest_%d_desc", i), q.Description, inner, descStyle).
				SetPosition(p.pad, y).SetDepth(1)
			p.node.Add(desc)
			y += desc.H
		}
		y += p.pad / 2
	}
	bg.H = y + p.pad/2
}
