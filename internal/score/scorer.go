package score

import (
	"time"

	"git.lost.host/meutraa/pianofall/internal/engine"
	"git.lost.host/meutraa/pianofall/internal/game"
)

type Store interface {
	Init() error
	Deinit()

	// Save a performance of the song, returning its id
	Save(song *game.Song, rec *Recording, session game.Session) (string, error)

	// Load every performance of the song, oldest first
	Load(song *game.Song) []History

	Get(id string) (*History, error)
}

// Press is a key that went down during the tick with index Tick.
type Press struct {
	Tick int
	Key  rune
}

// Recording is everything needed to replay a performance: the playfield
// and keys it was played with, the delta of every Playing tick and the
// presses in each.
type Recording struct {
	Field    engine.Playfield
	Bindings game.Bindings
	Deltas   []float64
	Presses  []Press
}

func (r *Recording) Duration() time.Duration {
	total := 0.0
	for _, d := range r.Deltas {
		total += d
	}
	return time.Duration(total * float64(time.Second))
}

type History struct {
	ID        string
	Sum       string
	Title     string
	Recorded  time.Time
	Score     uint32
	MaxCombo  uint32
	Recording *Recording
}
