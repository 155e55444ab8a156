package game

// Difficulty rates a song from 0 to 100 using note density, tempo and the
// share of hold notes.
func (s *Song) Difficulty() int {
	last, ok := s.LastHitTime()
	density := 0.0
	if ok && last > 0 {
		density = float64(len(s.Events)) / last
	}
	holds := 0.0
	if len(s.Events) > 0 {
		for _, e := range s.Events {
			if e.Hold > 0 {
				holds++
			}
		}
		holds /= float64(len(s.Events))
	}

	d := density*20 + s.BPM/4 + holds*20
	if d > 100 {
		d = 100
	}
	if d < 0 {
		d = 0
	}
	return int(d)
}

func DifficultyName(d int) string {
	switch {
	case d >= 80:
		return "Expert"
	case d >= 60:
		return "Hard"
	case d >= 40:
		return "Medium"
	}
	return "Easy"
}
