package asset

import (
	"bytes"
	"fmt"
	"io"

	"github.com/mewkiz/flac"
	"github.com/mewkiz/flac/frame"
	"github.com/mewkiz/flac/meta"
)

// BlockSize is the number of frames per encoded FLAC block.
const BlockSize = 4096

// EncodeFLAC writes samples as a lossless FLAC stream. Only mono and
// stereo are supported.
func EncodeFLAC(w io.Writer, samples []int16, f Format) error {
	if err := f.validate(); nil != err {
		return err
	}
	var channels frame.Channels
	switch f.Channels {
	case 1:
		channels = frame.ChannelsMono
	case 2:
		channels = frame.ChannelsLR
	default:
		return fmt.Errorf("flac: unsupported channel count %d", f.Channels)
	}
	nc := int(f.Channels)
	if len(samples)%nc != 0 {
		return fmt.Errorf("%d samples do not fill %d channel frames", len(samples), nc)
	}
	frames := len(samples) / nc

	var buf bytes.Buffer
	info := &meta.StreamInfo{
		BlockSizeMin:  BlockSize,
		BlockSizeMax:  BlockSize,
		SampleRate:    f.SampleRate,
		NChannels:     uint8(f.Channels),
		BitsPerSample: uint8(f.BitsPerSample),
		NSamples:      uint64(frames),
	}
	enc, err := flac.NewEncoder(&buf, info)
	if nil != err {
		return fmt.Errorf("creating flac encoder: %w", err)
	}
	enc.EnablePredictionAnalysis(true)

	for start := 0; start < frames; start += BlockSize {
		n := BlockSize
		if start+n > frames {
			n = frames - start
		}
		subframes := make([]*frame.Subframe, nc)
		for c := range subframes {
			s := make([]int32, n)
			for i := range s {
				s[i] = int32(samples[(start+i)*nc+c])
			}
			subframes[c] = &frame.Subframe{
				SubHeader: frame.SubHeader{Pred: frame.PredVerbatim},
				Samples:   s,
				NSamples:  n,
			}
		}
		fr := &frame.Frame{
			Header: frame.Header{
				BlockSize:     uint16(n),
				SampleRate:    f.SampleRate,
				Channels:      channels,
				BitsPerSample: uint8(f.BitsPerSample),
			},
			Subframes: subframes,
		}
		if err := enc.WriteFrame(fr); nil != err {
			return fmt.Errorf("writing flac frame: %w", err)
		}
	}
	if err := enc.Close(); nil != err {
		return fmt.Errorf("closing flac encoder: %w", err)
	}

	_, err = buf.WriteTo(w)
	return err
}
