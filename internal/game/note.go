package game

import (
	"fmt"
	"strings"
)

// NoteKey is a scale degree; each one owns exactly one lane.
type NoteKey uint8

const (
	C NoteKey = iota
	D
	E
	F
	G
	A
)

// NKeys is the number of lanes on the playfield.
const NKeys = 6

var noteKeys = [NKeys]struct {
	name  string
	pitch string // piano key sounded by the lane
	color string
}{
	{"C", "C4", "#ff3232"}, // red
	{"D", "D4", "#ff9632"}, // orange
	{"E", "E4", "#ffff32"}, // yellow
	{"F", "F4", "#32ff32"}, // green
	{"G", "G4", "#3296ff"}, // blue
	{"A", "A4", "#9632ff"}, // purple
}

func (k NoteKey) Valid() bool {
	return k < NKeys
}

func (k NoteKey) String() string {
	if !k.Valid() {
		return fmt.Sprintf("NoteKey(%d)", uint8(k))
	}
	return noteKeys[k].name
}

func (k NoteKey) Lane() int {
	return int(k)
}

// Pitch is the name of the piano key whose tone this lane plays.
func (k NoteKey) Pitch() string {
	return noteKeys[k].pitch
}

// Color is the lane color as a #rrggbb hex string.
func (k NoteKey) Color() string {
	return noteKeys[k].color
}

func KeyFromLane(lane int) (NoteKey, bool) {
	if lane < 0 || lane >= NKeys {
		return 0, false
	}
	return NoteKey(lane), true
}

func ParseNoteKey(s string) (NoteKey, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for i, k := range noteKeys {
		if k.name == s {
			return NoteKey(i), nil
		}
	}
	return 0, fmt.Errorf("unknown note key %q", s)
}

// Keys returns every NoteKey in lane order.
func Keys() []NoteKey {
	keys := make([]NoteKey, NKeys)
	for i := range keys {
		keys[i] = NoteKey(i)
	}
	return keys
}

// Bindings maps each lane to the keyboard rune that strikes it.
type Bindings [NKeys]rune

var DefaultBindings = Bindings{'a', 's', 'd', 'f', 'g', 'h'}

// ParseBindings reads one rune per lane, e.g. "asdfgh".
func ParseBindings(s string) (Bindings, error) {
	var b Bindings
	runes := []rune(s)
	if len(runes) != NKeys {
		return b, fmt.Errorf("expected %d lane keys, got %d (%q)", NKeys, len(runes), s)
	}
	for i, r := range runes {
		for j := 0; j < i; j++ {
			if runes[j] == r {
				return b, fmt.Errorf("lane key %q bound twice", r)
			}
		}
		b[i] = r
	}
	return b, nil
}

func (b Bindings) Key(k NoteKey) rune {
	return b[k]
}

func (b Bindings) Lookup(r rune) (NoteKey, bool) {
	for i, c := range b {
		if c == r {
			return NoteKey(i), true
		}
	}
	return 0, false
}
