package audio

import (
	"fmt"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/speaker"
)

// Speaker plays handles on the default output device.
type Speaker struct {
	rate  beep.SampleRate
	db    float64
	muted bool
}

// NewSpeaker opens the output device. volume is a change in decibels,
// 0 plays the tones as generated.
func NewSpeaker(rate beep.SampleRate, volume float64, muted bool) (*Speaker, error) {
	if err := speaker.Init(rate, rate.N(time.Second/30)); nil != err {
		return nil, fmt.Errorf("unable to open audio device: %w", err)
	}
	return &Speaker{rate: rate, db: volume, muted: muted}, nil
}

func (s *Speaker) Play(h *Handle) {
	var streamer beep.Streamer = h.Streamer()
	if r := h.Format().SampleRate; r != s.rate {
		streamer = beep.Resample(4, r, s.rate, streamer)
	}
	speaker.Play(s.effect(streamer))
}

// effect scales amplitude by 10^(db/20).
func (s *Speaker) effect(streamer beep.Streamer) beep.Streamer {
	return &effects.Volume{
		Streamer: streamer,
		Base:     10,
		Volume:   s.db / 20,
		Silent:   s.muted,
	}
}

// Stop silences everything still playing.
func (s *Speaker) Stop() {
	speaker.Clear()
}
