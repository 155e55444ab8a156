package game

// LiveNote is a spawned note falling down its lane.
type LiveNote struct {
	Event     int // Index of the song event this note was spawned from
	Key       NoteKey
	Lane      int
	SpawnTime float64
	HitTime   float64
	Y         float64
	Hold      float64 // Sustain in seconds; the tail trails above Y
}
