package theme

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"git.lost.host/meutraa/pianofall/internal/game"
)

type DefaultTheme struct {
	colors [game.NKeys]colorful.Color
	panel  lipgloss.Style
	title  lipgloss.Style
}

const (
	noteSym   = "██"
	fieldSym  = "──"
	whiteSym  = "▀▀"
	blackSym  = "▄▄"
	accentHex = "#3296ff"
)

func NewDefaultTheme() *DefaultTheme {
	t := &DefaultTheme{}
	for _, k := range game.Keys() {
		c, err := colorful.Hex(k.Color())
		if nil != err {
			c = colorful.Color{R: 1, G: 1, B: 1}
		}
		t.colors[k] = c
	}
	t.panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(accentHex)).
		Padding(0, 2)
	t.title = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(accentHex))
	return t
}

func (t *DefaultTheme) Color(key game.NoteKey) color.RGBA {
	r, g, b := t.colors[key].RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

func ansi(c colorful.Color, s string) string {
	r, g, b := c.RGB255()
	return fmt.Sprintf("\033[38;2;%v;%v;%vm%v\033[0m", r, g, b, s)
}

func (t *DefaultTheme) RenderNote(key game.NoteKey) string {
	return ansi(t.colors[key], noteSym)
}

// RenderHitField lights up the hit zone of a lane while its key is held.
func (t *DefaultTheme) RenderHitField(key game.NoteKey, pressed bool) string {
	c := t.colors[key].BlendLab(colorful.Color{}, 0.6)
	if pressed {
		c = t.colors[key].BlendLab(colorful.Color{R: 1, G: 1, B: 1}, 0.4)
	}
	return ansi(c, fieldSym)
}

func (t *DefaultTheme) RenderKey(key game.PianoKey, pressed bool) string {
	c, sym := colorful.Color{R: 0.9, G: 0.9, B: 0.9}, whiteSym
	if key.Black {
		c, sym = colorful.Color{R: 0.25, G: 0.25, B: 0.25}, blackSym
	}
	if pressed {
		c = c.BlendLab(colorful.Color{R: 0.2, G: 0.6, B: 1}, 0.7)
	}
	return ansi(c, sym)
}

func (t *DefaultTheme) Panel(title string, lines []string) string {
	body := t.title.Render(title)
	if len(lines) > 0 {
		body += "\n\n" + strings.Join(lines, "\n")
	}
	return t.panel.Render(body)
}
