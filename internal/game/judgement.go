package game

// Judgement is a named accuracy tier; a hit earns the first tier whose
// MinAccuracy it reaches.
type Judgement struct {
	Name        string
	MinAccuracy float64
}

var Judgements = []Judgement{
	{Name: "Perfect", MinAccuracy: 0.9},
	{Name: "Great", MinAccuracy: 0.7},
	{Name: "Good", MinAccuracy: 0.4},
	{Name: "Okay", MinAccuracy: 0},
}

func Judge(accuracy float64) int {
	for i, j := range Judgements {
		if accuracy >= j.MinAccuracy {
			return i
		}
	}
	return len(Judgements) - 1
}

// Rank grades the percentage of notes hit.
func Rank(accuracy float64) string {
	switch {
	case accuracy >= 95:
		return "S"
	case accuracy >= 90:
		return "A"
	case accuracy >= 80:
		return "B"
	case accuracy >= 70:
		return "C"
	case accuracy >= 60:
		return "D"
	}
	return "F"
}
