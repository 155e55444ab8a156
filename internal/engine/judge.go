package engine

import (
	"math"

	"git.lost.host/meutraa/pianofall/internal/game"
)

// Verdict is the outcome of one lane press.
type Verdict struct {
	Key       game.NoteKey
	Hit       bool
	Event     int // Song event that was hit
	Distance  float64
	Accuracy  float64
	Gain      uint32
	Judgement int // Index into game.Judgements, -1 for a blank press
}

type Judge struct {
	field Playfield
}

func NewJudge(field Playfield) *Judge {
	return &Judge{field: field}
}

// Press judges a press of key against the live notes in its lane. The
// closest note strictly inside the hit window is scored and removed; on a
// tie the earliest spawned note wins. A press with nothing to hit breaks
// the combo.
func (j *Judge) Press(key game.NoteKey, arena *Arena, session *game.Session) Verdict {
	v := Verdict{Key: key, Event: -1, Judgement: -1}

	var best EntityID
	var note *game.LiveNote
	bestDistance := math.Inf(1)
	arena.EachNote(func(id EntityID, n *game.LiveNote) {
		if n.Lane != key.Lane() {
			return
		}
		d := math.Abs(n.Y - j.field.HitZone)
		if d < j.field.HitWindow && d < bestDistance {
			best, note, bestDistance = id, n, d
		}
	})

	if nil == note {
		session.Blank()
		return v
	}

	v.Hit = true
	v.Event = note.Event
	v.Distance = bestDistance
	v.Accuracy = 1 - bestDistance/j.field.HitWindow
	v.Gain = uint32(math.Round(v.Accuracy * 100))
	v.Judgement = game.Judge(v.Accuracy)
	session.Hit(v.Gain, v.Judgement)
	arena.Despawn(best)
	return v
}
