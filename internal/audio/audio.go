package audio

import (
	"fmt"
	"os"

	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"
	"github.com/rs/zerolog/log"

	"git.lost.host/meutraa/pianofall/internal/asset"
)

// Handle is a decoded sound ready to be played any number of times.
type Handle struct {
	Name   string
	buffer *beep.Buffer
}

func (h *Handle) Format() beep.Format {
	return h.buffer.Format()
}

// Len is the length in sample frames.
func (h *Handle) Len() int {
	return h.buffer.Len()
}

func (h *Handle) Streamer() beep.StreamSeeker {
	return h.buffer.Streamer(0, h.buffer.Len())
}

func Load(name, path string) (*Handle, error) {
	f, err := os.Open(path)
	if nil != err {
		return nil, err
	}
	streamer, format, err := wav.Decode(f)
	if nil != err {
		f.Close()
		return nil, fmt.Errorf("unable to decode %s: %w", path, err)
	}
	defer streamer.Close()

	buffer := beep.NewBuffer(format)
	buffer.Append(streamer)
	if err := streamer.Err(); nil != err {
		return nil, fmt.Errorf("unable to read %s: %w", path, err)
	}
	return &Handle{Name: name, buffer: buffer}, nil
}

// Bank holds the tone of every piano key that could be loaded.
type Bank struct {
	handles map[string]*Handle
}

// LoadBank loads the asset of each named note from dir. A note whose asset
// is missing or unreadable stays silent.
func LoadBank(dir string, names []string) *Bank {
	b := &Bank{handles: map[string]*Handle{}}
	for _, name := range names {
		h, err := Load(name, asset.Path(dir, name))
		if nil != err {
			log.Warn().Err(err).Str("note", name).Msg("note will be silent")
			continue
		}
		b.handles[name] = h
	}
	return b
}

func (b *Bank) Handle(name string) (*Handle, bool) {
	h, ok := b.handles[name]
	return h, ok
}

func (b *Bank) Len() int {
	return len(b.handles)
}

// Player starts a sound and returns immediately.
type Player interface {
	Play(h *Handle)
}

// Cue plays every named sound the bank has.
func (b *Bank) Cue(p Player, names []string) {
	for _, name := range names {
		if h, ok := b.handles[name]; ok {
			p.Play(h)
		}
	}
}

type discard struct{}

func (discard) Play(*Handle) {}

// Discard plays nothing.
var Discard Player = discard{}
