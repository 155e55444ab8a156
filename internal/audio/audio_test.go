package audio

import (
	"math"
	"os"
	"testing"

	"github.com/faiface/beep"

	"git.lost.host/meutraa/pianofall/internal/asset"
	"git.lost.host/meutraa/pianofall/internal/tone"
)

type recorder struct {
	played []string
}

func (r *recorder) Play(h *Handle) {
	r.played = append(r.played, h.Name)
}

func writeTone(t *testing.T, dir, name string, frequency float64) {
	samples, err := tone.Synthesize(frequency, 0.1, tone.SampleRate)
	if nil != err {
		t.Fatal(err)
	}
	b, err := asset.EncodeBytes(samples, asset.CD)
	if nil != err {
		t.Fatal(err)
	}
	if err := os.WriteFile(asset.Path(dir, name), b, 0o644); nil != err {
		t.Fatal(err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeTone(t, dir, "C#4", 277.18)
	h, err := Load("C#4", asset.Path(dir, "C#4"))
	if nil != err {
		t.Fatal(err)
	}
	if h.Len() != tone.Frames(0.1, tone.SampleRate) {
		t.Errorf("loaded %d frames", h.Len())
	}
	if h.Format().NumChannels != 2 || int(h.Format().SampleRate) != tone.SampleRate {
		t.Errorf("format %+v", h.Format())
	}
	if _, err := Load("x", asset.Path(dir, "missing")); nil == err {
		t.Error("loaded a missing file")
	}
}

func TestBankCue(t *testing.T) {
	dir := t.TempDir()
	writeTone(t, dir, "C4", 261.63)
	writeTone(t, dir, "D4", 293.66)
	os.WriteFile(asset.Path(dir, "E4"), []byte("not a wave"), 0o644)

	b := LoadBank(dir, []string{"C4", "D4", "E4", "F4"})
	if b.Len() != 2 {
		t.Fatalf("bank has %d sounds", b.Len())
	}

	r := &recorder{}
	b.Cue(r, []string{"D4", "E4", "F4", "C4"})
	if len(r.played) != 2 || r.played[0] != "D4" || r.played[1] != "C4" {
		t.Errorf("played %v", r.played)
	}
	b.Cue(Discard, []string{"C4"})
}

func TestSpeakerDecibels(t *testing.T) {
	tests := []struct {
		db       float64
		muted    bool
		expected float64
	}{
		{0, false, 0.5},
		{-20, false, 0.05},
		{20, false, 5},
		{0, true, 0},
	}
	for _, test := range tests {
		s := &Speaker{db: test.db, muted: test.muted}
		half := beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
			for i := range samples {
				samples[i] = [2]float64{0.5, 0.5}
			}
			return len(samples), true
		})
		samples := make([][2]float64, 4)
		s.effect(half).Stream(samples)
		if math.Abs(samples[3][0]-test.expected) > 1e-9 {
			t.Errorf("%v dB: sample %v, want %v", test.db, samples[3][0], test.expected)
		}
	}
}
