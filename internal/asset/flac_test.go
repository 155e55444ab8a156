package asset

import (
	"bytes"
	"io"
	"testing"

	"github.com/mewkiz/flac"

	"git.lost.host/meutraa/pianofall/internal/tone"
)

func TestEncodeFLACLossless(t *testing.T) {
	samples, err := tone.Synthesize(329.63, 0.2, tone.SampleRate)
	if nil != err {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := EncodeFLAC(&buf, samples, CD); nil != err {
		t.Fatal(err)
	}

	stream, err := flac.New(&buf)
	if nil != err {
		t.Fatal(err)
	}
	defer stream.Close()
	if stream.Info.NChannels != 2 || stream.Info.SampleRate != 44100 || stream.Info.BitsPerSample != 16 {
		t.Errorf("stream info %+v", stream.Info)
	}
	if stream.Info.NSamples != uint64(len(samples)/2) {
		t.Errorf("NSamples = %d, want %d", stream.Info.NSamples, len(samples)/2)
	}

	i := 0
	for {
		fr, err := stream.ParseNext()
		if err == io.EOF {
			break
		} else if nil != err {
			t.Fatal(err)
		}
		for j := 0; j < int(fr.BlockSize); j++ {
			for c, sub := range fr.Subframes {
				if int16(sub.Samples[j]) != samples[(i+j)*2+c] {
					t.Fatalf("frame %d channel %d differs", i+j, c)
				}
			}
		}
		i += int(fr.BlockSize)
	}
	if i != len(samples)/2 {
		t.Errorf("decoded %d frames, want %d", i, len(samples)/2)
	}
}

func TestEncodeFLACRejectsChannels(t *testing.T) {
	f := Format{SampleRate: 44100, Channels: 3, BitsPerSample: 16}
	if err := EncodeFLAC(io.Discard, make([]int16, 6), f); nil == err {
		t.Error("three channels accepted")
	}
}
