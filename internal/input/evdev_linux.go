package input

import (
	"encoding/binary"
	"os"
	"syscall"

	"github.com/rs/zerolog/log"
)

// linux/input-event-codes.h
const evKey = 0x01

type keyEvent struct {
	Time  syscall.Timeval
	Type  uint16
	Code  uint16
	Value int32
}

// Key codes of the rows the piano is played on.
var keyCodes = map[uint16]rune{
	1:  Esc,
	28: Enter,
	57: ' ',
	16: 'q', 17: 'w', 18: 'e', 19: 'r', 20: 't', 21: 'y', 22: 'u', 23: 'i', 24: 'o', 25: 'p',
	30: 'a', 31: 's', 32: 'd', 33: 'f', 34: 'g', 35: 'h', 36: 'j', 37: 'k', 38: 'l', 39: ';',
	44: 'z', 45: 'x', 46: 'c', 47: 'v', 48: 'b', 49: 'n', 50: 'm',
	103: Up,
	105: Left,
	106: Right,
	108: Down,
}

// ReadDevice feeds presses and releases from an evdev keyboard into state.
// Unlike a terminal, the device reports releases, so held keys are exact.
func ReadDevice(kbd string, state *State) (func(), error) {
	file, err := os.Open(kbd)
	if err != nil {
		return nil, err
	}
	go func() {
		var ev keyEvent
		for {
			err := binary.Read(file, binary.LittleEndian, &ev)
			if nil != err {
				log.Debug().Err(err).Str("device", kbd).Msg("stopped reading keyboard device")
				return
			}
			if ev.Type != evKey {
				continue
			}
			r, ok := keyCodes[ev.Code]
			if !ok {
				continue
			}
			switch ev.Value {
			case 1:
				state.Press(r)
			case 0:
				state.Release(r)
			}
		}
	}()
	return func() { file.Close() }, nil
}
