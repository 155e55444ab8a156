package engine

// Input answers the two questions the engine asks about the keyboard.
type Input interface {
	Held(key rune) bool
	JustPressed(key rune) bool
}

type noInput struct{}

func (noInput) Held(rune) bool        { return false }
func (noInput) JustPressed(rune) bool { return false }
