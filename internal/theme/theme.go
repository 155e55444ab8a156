package theme

import (
	"image/color"

	"git.lost.host/meutraa/pianofall/internal/game"
)

type Theme interface {
	Color(key game.NoteKey) color.RGBA
	RenderNote(key game.NoteKey) string
	RenderHitField(key game.NoteKey, pressed bool) string
	RenderKey(key game.PianoKey, pressed bool) string
	Panel(title string, lines []string) string
}
