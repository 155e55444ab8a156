package engine

// Timeline is the play clock of one session, driven only by tick deltas.
type Timeline struct {
	clock float64
}

// Advance moves the clock forward. Negative deltas are ignored so the clock
// never runs backwards.
func (t *Timeline) Advance(delta float64) float64 {
	if delta > 0 {
		t.clock += delta
	}
	return t.clock
}

func (t *Timeline) Clock() float64 {
	return t.clock
}

func (t *Timeline) Reset() {
	t.clock = 0
}
