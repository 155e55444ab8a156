package input

import (
	"sync"
	"time"
)

// Runes for keys that have no character.
const (
	Interrupt rune = 0x03
	Enter     rune = '\r'
	Esc       rune = 0x1b
)

// Arrow keys live in the private use area.
const (
	Up rune = 0xf700 + iota
	Down
	Left
	Right
)

// State collects presses and releases from any goroutine and exposes them
// to the game loop one tick at a time. Poll starts a tick.
type State struct {
	// Terminals report no releases, so a key counts as held for this long
	// after its last press. Zero holds until Release.
	Hold time.Duration

	mu      sync.Mutex
	down    map[rune]time.Time
	pending []rune

	held    map[rune]bool
	pressed map[rune]bool
	order   []rune

	now func() time.Time
}

func NewState(hold time.Duration) *State {
	return &State{
		Hold:    hold,
		down:    map[rune]time.Time{},
		held:    map[rune]bool{},
		pressed: map[rune]bool{},
		now:     time.Now,
	}
}

func (s *State) Press(r rune) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.down[r] = s.now()
	s.pending = append(s.pending, r)
}

func (s *State) Release(r rune) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.down, r)
}

// Poll snapshots the keyboard for the next tick. Keys pressed since the
// previous Poll are just pressed for this tick only.
func (s *State) Poll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	clear(s.held)
	clear(s.pressed)
	s.order = s.order[:0]

	now := s.now()
	for r, at := range s.down {
		if s.Hold > 0 && now.Sub(at) > s.Hold {
			delete(s.down, r)
			continue
		}
		s.held[r] = true
	}
	for _, r := range s.pending {
		s.held[r] = true
		if !s.pressed[r] {
			s.pressed[r] = true
			s.order = append(s.order, r)
		}
	}
	s.pending = s.pending[:0]
}

func (s *State) Held(r rune) bool {
	return s.held[r]
}

func (s *State) JustPressed(r rune) bool {
	return s.pressed[r]
}

// Pressed lists the keys just pressed this tick in arrival order.
func (s *State) Pressed() []rune {
	return s.order
}
