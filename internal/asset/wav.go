package asset

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// HeaderSize is the length of a canonical PCM WAVE header.
const HeaderSize = 44

const formatPCM = 1

var ErrMalformedHeader = errors.New("malformed wave header")

// Format describes interleaved signed PCM samples.
type Format struct {
	SampleRate    uint32
	Channels      uint16
	BitsPerSample uint16
}

// CD is the format of every generated tone.
var CD = Format{SampleRate: 44100, Channels: 2, BitsPerSample: 16}

func (f Format) BlockAlign() uint16 {
	return f.Channels * f.BitsPerSample / 8
}

func (f Format) ByteRate() uint32 {
	return f.SampleRate * uint32(f.BlockAlign())
}

func (f Format) validate() error {
	if f.SampleRate == 0 {
		return errors.New("sample rate must be positive")
	}
	if f.Channels == 0 {
		return errors.New("channel count must be positive")
	}
	if f.BitsPerSample != 16 {
		return fmt.Errorf("unsupported bits per sample %d", f.BitsPerSample)
	}
	return nil
}

// Header mirrors the fields of a canonical 44 byte RIFF/WAVE header.
type Header struct {
	RiffSize   uint32
	FmtSize    uint32
	FormatTag  uint16
	Channels   uint16
	SampleRate uint32
	ByteRate   uint32
	BlockAlign uint16
	Bits       uint16
	DataSize   uint32
}

func (h Header) Format() Format {
	return Format{SampleRate: h.SampleRate, Channels: h.Channels, BitsPerSample: h.Bits}
}

// Frames is the number of sample frames in the data chunk.
func (h Header) Frames() int {
	if h.BlockAlign == 0 {
		return 0
	}
	return int(h.DataSize / uint32(h.BlockAlign))
}

func newHeader(samples int, f Format) Header {
	data := uint32(samples) * uint32(f.BitsPerSample/8)
	return Header{
		RiffSize:   36 + data,
		FmtSize:    16,
		FormatTag:  formatPCM,
		Channels:   f.Channels,
		SampleRate: f.SampleRate,
		ByteRate:   f.ByteRate(),
		BlockAlign: f.BlockAlign(),
		Bits:       f.BitsPerSample,
		DataSize:   data,
	}
}

// Encode writes samples, interleaved by channel, as a PCM WAVE stream.
func Encode(w io.Writer, samples []int16, f Format) error {
	if err := f.validate(); nil != err {
		return err
	}
	if len(samples)%int(f.Channels) != 0 {
		return fmt.Errorf("%d samples do not fill %d channel frames", len(samples), f.Channels)
	}

	h := newHeader(len(samples), f)
	bw := bufio.NewWriter(w)
	bw.WriteString("RIFF")
	binary.Write(bw, binary.LittleEndian, h.RiffSize)
	bw.WriteString("WAVE")
	bw.WriteString("fmt ")
	binary.Write(bw, binary.LittleEndian, h.FmtSize)
	binary.Write(bw, binary.LittleEndian, h.FormatTag)
	binary.Write(bw, binary.LittleEndian, h.Channels)
	binary.Write(bw, binary.LittleEndian, h.SampleRate)
	binary.Write(bw, binary.LittleEndian, h.ByteRate)
	binary.Write(bw, binary.LittleEndian, h.BlockAlign)
	binary.Write(bw, binary.LittleEndian, h.Bits)
	bw.WriteString("data")
	binary.Write(bw, binary.LittleEndian, h.DataSize)
	if err := binary.Write(bw, binary.LittleEndian, samples); nil != err {
		return fmt.Errorf("unable to write samples: %w", err)
	}
	if err := bw.Flush(); nil != err {
		return fmt.Errorf("unable to write wave stream: %w", err)
	}
	return nil
}

func EncodeBytes(samples []int16, f Format) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(HeaderSize + len(samples)*2)
	if err := Encode(&buf, samples, f); nil != err {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ParseHeader reads and checks the header written by Encode.
func ParseHeader(r io.Reader) (Header, error) {
	var h Header
	var b [HeaderSize]byte
	if _, err := io.ReadFull(r, b[:]); nil != err {
		return h, fmt.Errorf("%w: %v", ErrMalformedHeader, err)
	}
	if string(b[0:4]) != "RIFF" || string(b[8:12]) != "WAVE" ||
		string(b[12:16]) != "fmt " || string(b[36:40]) != "data" {
		return h, fmt.Errorf("%w: missing chunk marks", ErrMalformedHeader)
	}

	le := binary.LittleEndian
	h.RiffSize = le.Uint32(b[4:])
	h.FmtSize = le.Uint32(b[16:])
	h.FormatTag = le.Uint16(b[20:])
	h.Channels = le.Uint16(b[22:])
	h.SampleRate = le.Uint32(b[24:])
	h.ByteRate = le.Uint32(b[28:])
	h.BlockAlign = le.Uint16(b[32:])
	h.Bits = le.Uint16(b[34:])
	h.DataSize = le.Uint32(b[40:])

	if h.FmtSize != 16 || h.FormatTag != formatPCM {
		return h, fmt.Errorf("%w: not plain PCM", ErrMalformedHeader)
	}
	if h.RiffSize != 36+h.DataSize {
		return h, fmt.Errorf("%w: riff size %d for %d data bytes", ErrMalformedHeader, h.RiffSize, h.DataSize)
	}
	return h, nil
}
