package game

// Session is the score state of one Playing phase.
type Session struct {
	Score    uint32
	Combo    uint32
	MaxCombo uint32

	Total  uint32 // Notes in the song
	Hits   uint32
	Missed uint32 // Notes that fell off the playfield
	Blanks uint32 // Presses that had nothing to hit
	Counts [4]uint32
}

func (s *Session) Reset(total int) {
	*s = Session{Total: uint32(total)}
}

func (s *Session) Hit(gain uint32, judgement int) {
	s.Score += gain
	s.Combo++
	if s.Combo > s.MaxCombo {
		s.MaxCombo = s.Combo
	}
	s.Hits++
	if judgement >= 0 && judgement < len(s.Counts) {
		s.Counts[judgement]++
	}
}

// Blank breaks the combo; the best combo is kept.
func (s *Session) Blank() {
	s.Combo = 0
	s.Blanks++
}

func (s *Session) Miss() {
	s.Missed++
}

// Accuracy is the percentage of song notes that were hit.
func (s *Session) Accuracy() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Hits) * 100 / float64(s.Total)
}

func (s *Session) Rank() string {
	return Rank(s.Accuracy())
}
