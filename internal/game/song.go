package game

import (
	"errors"
	"fmt"
	"sort"
)

type SongEvent struct {
	Key     NoteKey
	HitTime float64 // Seconds from the start of the song
	Hold    float64 // Seconds the note is sustained, 0 for a tap
}

// Song is immutable once a play session has loaded it.
type Song struct {
	Title  string
	Artist string
	BPM    float64
	Events []SongEvent
}

func (s *Song) Validate() error {
	if s.BPM <= 0 {
		return fmt.Errorf("song %q: bpm must be positive, got %v", s.Title, s.BPM)
	}
	for i, e := range s.Events {
		if !e.Key.Valid() {
			return fmt.Errorf("song %q: event %d has invalid key %v", s.Title, i, e.Key)
		}
		if e.HitTime < 0 {
			return fmt.Errorf("song %q: event %d has negative hit time %v", s.Title, i, e.HitTime)
		}
		if e.Hold < 0 {
			return fmt.Errorf("song %q: event %d has negative hold %v", s.Title, i, e.Hold)
		}
	}
	return nil
}

// Sorted returns the events ordered by hit time. Events sharing a hit time
// keep their relative order.
func (s *Song) Sorted() []SongEvent {
	events := make([]SongEvent, len(s.Events))
	copy(events, s.Events)
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].HitTime < events[j].HitTime
	})
	return events
}

// LastHitTime is the latest hit time of any event.
func (s *Song) LastHitTime() (float64, bool) {
	if nil == s || len(s.Events) == 0 {
		return 0, false
	}
	last := s.Events[0].HitTime
	for _, e := range s.Events[1:] {
		if e.HitTime > last {
			last = e.HitTime
		}
	}
	return last, true
}

var ErrNoSongs = errors.New("no songs available")

// Fallback is played when no song files could be loaded.
func Fallback() *Song {
	return &Song{
		Title:  "Default Song",
		Artist: "System",
		BPM:    120,
		Events: []SongEvent{
			{Key: C, HitTime: 1.0},
			{Key: D, HitTime: 1.5},
			{Key: E, HitTime: 2.0},
			{Key: F, HitTime: 2.5},
			{Key: G, HitTime: 3.0},
			{Key: A, HitTime: 3.5},
			{Key: C, HitTime: 4.0},
			{Key: E, HitTime: 4.5},
			{Key: G, HitTime: 5.0},
		},
	}
}
