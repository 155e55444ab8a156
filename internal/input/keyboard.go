package input

import (
	"fmt"
	"unicode"

	"github.com/eiannone/keyboard"
	"github.com/rs/zerolog/log"
)

var specialKeys = map[keyboard.Key]rune{
	keyboard.KeyCtrlC:      Interrupt,
	keyboard.KeyEnter:      Enter,
	keyboard.KeyEsc:        Esc,
	keyboard.KeySpace:      ' ',
	keyboard.KeyArrowUp:    Up,
	keyboard.KeyArrowDown:  Down,
	keyboard.KeyArrowLeft:  Left,
	keyboard.KeyArrowRight: Right,
}

// KeyRune is the rune State uses for a terminal key event.
func KeyRune(ev keyboard.KeyEvent) (rune, bool) {
	if ev.Rune != 0 {
		return unicode.ToLower(ev.Rune), true
	}
	r, ok := specialKeys[ev.Key]
	return r, ok
}

// ReadKeyboard feeds terminal key presses into state until the keyboard is
// closed. The returned function closes it.
func ReadKeyboard(state *State) (func(), error) {
	events, err := keyboard.GetKeys(128)
	if nil != err {
		return nil, fmt.Errorf("unable to open keyboard: %w", err)
	}
	go func() {
		for ev := range events {
			if nil != ev.Err {
				log.Error().Err(ev.Err).Msg("unable to read keyboard input")
				continue
			}
			if r, ok := KeyRune(ev); ok {
				state.Press(r)
			}
		}
	}()
	return func() {
		if err := keyboard.Close(); nil != err {
			log.Error().Err(err).Msg("unable to close keyboard")
		}
	}, nil
}
