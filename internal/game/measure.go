package game

// Measure is a beat line drawn behind the falling notes.
type Measure struct {
	Beat     int
	Time     float64 // Seconds from the start of the song
	Downbeat bool    // First beat of a 4/4 bar
}

// Measures lists every beat from zero up to and including until.
func (s *Song) Measures(until float64) []Measure {
	if s.BPM <= 0 || until < 0 {
		return nil
	}
	spb := 60 / s.BPM
	measures := []Measure{}
	for beat := 0; ; beat++ {
		t := float64(beat) * spb
		if t > until {
			break
		}
		measures = append(measures, Measure{Beat: beat, Time: t, Downbeat: beat%4 == 0})
	}
	return measures
}
