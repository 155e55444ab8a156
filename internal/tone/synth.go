package tone

import (
	"errors"
	"fmt"
	"math"
)

const (
	SampleRate = 44100
	Duration   = 1.5 // Seconds of tone per piano key

	// Amplitude leaves headroom for the harmonics summing constructively.
	Amplitude = 0.2
	decay     = 3.0
	channels  = 2
)

var (
	ErrInvalidFrequency  = errors.New("frequency must be positive")
	ErrInvalidDuration   = errors.New("duration must be positive")
	ErrInvalidSampleRate = errors.New("sample rate must be positive")
)

// harmonics are the (multiple, weight) pairs of the struck-string timbre.
var harmonics = [...][2]float64{
	{1, 0.6},
	{2, 0.3},
	{3, 0.1},
}

// Frames is the number of sample frames in duration seconds.
func Frames(duration float64, sampleRate uint32) int {
	return int(math.Round(float64(sampleRate) * duration))
}

// Sample evaluates the decaying harmonic tone at t seconds, before scaling.
func Sample(frequency, t float64) float64 {
	d := math.Exp(-decay * t)
	s := 0.0
	for _, h := range harmonics {
		s += h[1] * math.Sin(2*math.Pi*h[0]*frequency*t) * d
	}
	return s
}

func toPCM(s float64) int16 {
	v := s * Amplitude
	if v > 1 {
		v = 1
	} else if v < -1 {
		v = -1
	}
	return int16(math.Round(v * math.MaxInt16))
}

// Validate rejects parameters that cannot describe a tone.
func Validate(frequency, duration float64, sampleRate uint32) error {
	if !(frequency > 0) || math.IsInf(frequency, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidFrequency, frequency)
	}
	if !(duration > 0) || math.IsInf(duration, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidDuration, duration)
	}
	if sampleRate == 0 {
		return ErrInvalidSampleRate
	}
	return nil
}

// Synthesize renders an interleaved stereo 16-bit buffer of a piano-like
// tone. Parameters are checked before anything is allocated.
func Synthesize(frequency, duration float64, sampleRate uint32) ([]int16, error) {
	if err := Validate(frequency, duration, sampleRate); nil != err {
		return nil, err
	}

	n := Frames(duration, sampleRate)
	samples := make([]int16, n*channels)
	for i := 0; i < n; i++ {
		t := float64(i) / float64(sampleRate)
		pcm := toPCM(Sample(frequency, t))
		samples[i*channels] = pcm
		samples[i*channels+1] = pcm
	}
	return samples, nil
}
