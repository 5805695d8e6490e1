// Package ebitenhost draws the scene graph in an Ebiten window and turns
// keyboard state into scene input.
package ebitenhost

import (
	"bytes"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/jwebster45206/wizard-village/pkg/scene"
)

const FontSize = 16

// Fonts holds one face per text style. It also measures text for the scene,
// always with the regular face so layout does not depend on emphasis.
type Fonts struct {
	regular    *text.GoTextFace
	italic     *text.GoTextFace
	bold       *text.GoTextFace
	boldItalic *text.GoTextFace
}

// LoadFonts parses the embedded Go fonts.
func LoadFonts(size float64) (*Fonts, error) {
	faces := make([]*text.GoTextFace, 0, 4)
	for _, ttf := range [][]byte{goregular.TTF, goitalic.TTF, gobold.TTF, gobolditalic.TTF} {
		src, err := text.NewGoTextFaceSource(bytes.NewReader(ttf))
		if err != nil {
			return nil, fmt.Errorf("failed to load font: %w", err)
		}
		faces = append(faces, &text.GoTextFace{Source: src, Size: size})
	}
	return &Fonts{regular: faces[0], italic: faces[1], bold: faces[2], boldItalic: faces[3]}, nil
}

// Face picks the face for a style.
func (f *Fonts) Face(s scene.TextStyle) *text.GoTextFace {
	switch {
	case s.Bold && s.Italic:
		return f.boldItalic
	case s.Bold:
		return f.bold
	case s.Italic:
		return f.italic
	}
	return f.regular
}

func (f *Fonts) Advance(s string) float64 {
	w, _ := text.Measure(s, f.regular, 0)
	return w
}

func (f *Fonts) LineHeight() float64 {
	m := f.regular.Metrics()
	return m.HAscent + m.HDescent + m.HLineGap
}
