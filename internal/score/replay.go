package score

import (
	"git.lost.host/meutraa/pianofall/internal/engine"
	"git.lost.host/meutraa/pianofall/internal/game"
)

// Keys lists every rune the engine reads: the lane bindings and the piano.
func Keys(b game.Bindings) []rune {
	keys := []rune{}
	seen := map[rune]bool{}
	add := func(r rune) {
		if !seen[r] {
			seen[r] = true
			keys = append(keys, r)
		}
	}
	for _, r := range b {
		add(r)
	}
	for _, k := range game.Piano {
		add(k.Key)
	}
	return keys
}

// Recorder captures the ticks of a Playing phase.
type Recorder struct {
	keys []rune
	rec  Recording
}

func NewRecorder(field engine.Playfield, bindings game.Bindings) *Recorder {
	return &Recorder{
		keys: Keys(bindings),
		rec:  Recording{Field: field, Bindings: bindings},
	}
}

// Tick must be called with the delta and input handed to the controller.
func (r *Recorder) Tick(delta float64, in engine.Input) {
	tick := len(r.rec.Deltas)
	r.rec.Deltas = append(r.rec.Deltas, delta)
	for _, k := range r.keys {
		if in.JustPressed(k) {
			r.rec.Presses = append(r.rec.Presses, Press{Tick: tick, Key: k})
		}
	}
}

func (r *Recorder) Recording() *Recording {
	return &r.rec
}

type replayInput map[rune]bool

func (in replayInput) Held(k rune) bool        { return in[k] }
func (in replayInput) JustPressed(k rune) bool { return in[k] }

// Replay plays a recording of song through a fresh controller, set up the
// way the recording was, and returns the resulting session.
func Replay(song *game.Song, rec *Recording) game.Session {
	c := engine.NewController(rec.Field, rec.Bindings, []*game.Song{song})
	c.Confirm()

	p := 0
	for tick, delta := range rec.Deltas {
		in := replayInput{}
		for ; p < len(rec.Presses) && rec.Presses[p].Tick <= tick; p++ {
			if rec.Presses[p].Tick == tick {
				in[rec.Presses[p].Key] = true
			}
		}
		c.Tick(delta, in)
		if c.Phase() != engine.Playing {
			break
		}
	}
	return c.Session()
}
