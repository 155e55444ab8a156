package engine

import "git.lost.host/meutraa/pianofall/internal/game"

type keySet struct {
	held, pressed map[rune]bool
}

// press returns an input where every rune was just pressed and is held.
func press(runes ...rune) Input {
	k := keySet{held: map[rune]bool{}, pressed: map[rune]bool{}}
	for _, r := range runes {
		k.held[r] = true
		k.pressed[r] = true
	}
	return k
}

func hold(runes ...rune) Input {
	k := keySet{held: map[rune]bool{}, pressed: map[rune]bool{}}
	for _, r := range runes {
		k.held[r] = true
	}
	return k
}

func (k keySet) Held(r rune) bool        { return k.held[r] }
func (k keySet) JustPressed(r rune) bool { return k.pressed[r] }

func song(events ...game.SongEvent) *game.Song {
	return &game.Song{Title: "test", BPM: 120, Events: events}
}

func notes(a *Arena) []game.LiveNote {
	var out []game.LiveNote
	a.EachNote(func(_ EntityID, n *game.LiveNote) {
		out = append(out, *n)
	})
	return out
}
