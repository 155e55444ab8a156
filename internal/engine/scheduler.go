package engine

import "git.lost.host/meutraa/pianofall/internal/game"

type NoteState uint8

const (
	Pending NoteState = iota
	Live
	Hit
	Missed
)

func (s NoteState) String() string {
	return [...]string{"pending", "live", "hit", "missed"}[s]
}

// Scheduler turns song events into falling notes and moves them.
type Scheduler struct {
	field  Playfield
	events []game.SongEvent
	states []NoteState
	cursor int // First event that has not been spawned
}

func NewScheduler(field Playfield) *Scheduler {
	return &Scheduler{field: field}
}

// Load replaces the schedule with the events of song. A nil song leaves
// nothing to spawn.
func (s *Scheduler) Load(song *game.Song) {
	s.events, s.states, s.cursor = nil, nil, 0
	if nil == song {
		return
	}
	s.events = song.Sorted()
	s.states = make([]NoteState, len(s.events))
}

// Clear drops every event without resolving it.
func (s *Scheduler) Clear() {
	s.Load(nil)
}

func (s *Scheduler) Len() int {
	return len(s.events)
}

func (s *Scheduler) State(event int) NoteState {
	return s.states[event]
}

func (s *Scheduler) Event(event int) game.SongEvent {
	return s.events[event]
}

// Spawn creates a live note for every pending event whose hit time is now
// within the look-ahead horizon. Each event spawns at most once, and an
// event that is already inside the horizon when the session starts spawns
// on the first tick.
func (s *Scheduler) Spawn(clock float64, arena *Arena, owner Phase) int {
	n := 0
	for ; s.cursor < len(s.events); s.cursor++ {
		e := s.events[s.cursor]
		if e.HitTime-clock > s.field.LookAhead {
			break
		}
		if s.states[s.cursor] != Pending {
			continue
		}
		s.states[s.cursor] = Live
		arena.Spawn(Entity{
			Phase: owner,
			Kind:  KindNote,
			Note: &game.LiveNote{
				Event:     s.cursor,
				Key:       e.Key,
				Lane:      e.Key.Lane(),
				SpawnTime: s.field.SpawnTime(e.HitTime),
				HitTime:   e.HitTime,
				Y:         s.field.Y(e.HitTime, clock),
				Hold:      e.Hold,
			},
		})
		n++
	}
	return n
}

// Move positions every live note for clock and removes those that fell
// past the bottom of the playfield. The missed notes are returned.
func (s *Scheduler) Move(clock float64, arena *Arena) []game.LiveNote {
	var gone []EntityID
	var missed []game.LiveNote
	arena.EachNote(func(id EntityID, n *game.LiveNote) {
		n.Y = s.field.Y(n.HitTime, clock)
		if n.Y > s.field.Bottom {
			gone = append(gone, id)
			missed = append(missed, *n)
		}
	})
	for i, id := range gone {
		arena.Despawn(id)
		s.Resolve(missed[i].Event, Missed)
	}
	return missed
}

// Resolve records how a live note ended.
func (s *Scheduler) Resolve(event int, state NoteState) {
	if event >= 0 && event < len(s.states) && s.states[event] == Live {
		s.states[event] = state
	}
}

// Done reports whether every event has been spawned and resolved.
func (s *Scheduler) Done() bool {
	for _, st := range s.states {
		if st == Pending || st == Live {
			return false
		}
	}
	return true
}
