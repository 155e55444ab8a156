package engine

// Playfield is the screen-space geometry and timing of the note highway.
// Y grows downwards: notes appear at Top and are struck at HitZone.
type Playfield struct {
	Top       float64
	HitZone   float64
	Bottom    float64 // Notes below this line are missed
	LookAhead float64 // Seconds a note is visible before its hit time
	HitWindow float64 // Largest distance from HitZone that can be hit
	Grace     float64 // Seconds after the last hit time before the song ends
	Countdown float64 // Seconds between starting a song and its clock running
}

var DefaultPlayfield = Playfield{
	Top:       0,
	HitZone:   700,
	Bottom:    800,
	LookAhead: 2,
	HitWindow: 50,
	Grace:     3,
}

// Speed is the fall speed in units per second.
func (p Playfield) Speed() float64 {
	return (p.HitZone - p.Top) / p.LookAhead
}

// SpawnTime is the clock at which a note due at hit enters the playfield.
func (p Playfield) SpawnTime(hit float64) float64 {
	return hit - p.LookAhead
}

// Y is the position at clock of a note due at hit.
func (p Playfield) Y(hit, clock float64) float64 {
	return p.Top + p.Speed()*(clock-p.SpawnTime(hit))
}
