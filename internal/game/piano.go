package game

// PianoKey is one playable key of the on-screen piano.
type PianoKey struct {
	Name      string
	Frequency float64
	Key       rune
	Black     bool
}

// Piano is the C4..C#5 keyboard, white keys on the home row and black keys
// on the row above.
var Piano = []PianoKey{
	{Name: "C4", Frequency: 261.63, Key: 'a'},
	{Name: "C#4", Frequency: 277.18, Key: 'w', Black: true},
	{Name: "D4", Frequency: 293.66, Key: 's'},
	{Name: "D#4", Frequency: 311.13, Key: 'e', Black: true},
	{Name: "E4", Frequency: 329.63, Key: 'd'},
	{Name: "F4", Frequency: 349.23, Key: 'f'},
	{Name: "F#4", Frequency: 369.99, Key: 'r', Black: true},
	{Name: "G4", Frequency: 392.00, Key: 'g'},
	{Name: "G#4", Frequency: 415.30, Key: 't', Black: true},
	{Name: "A4", Frequency: 440.00, Key: 'h'},
	{Name: "A#4", Frequency: 466.16, Key: 'y', Black: true},
	{Name: "B4", Frequency: 493.88, Key: 'j'},
	{Name: "C5", Frequency: 523.25, Key: 'k'},
	{Name: "C#5", Frequency: 554.37, Key: 'u', Black: true},
}

func PianoKeyFor(r rune) (PianoKey, bool) {
	for _, k := range Piano {
		if k.Key == r {
			return k, true
		}
	}
	return PianoKey{}, false
}

func PianoKeyNamed(name string) (PianoKey, bool) {
	for _, k := range Piano {
		if k.Name == name {
			return k, true
		}
	}
	return PianoKey{}, false
}
