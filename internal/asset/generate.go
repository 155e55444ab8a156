package asset

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"git.lost.host/meutraa/pianofall/internal/tone"
)

// Note is a named pitch to render.
type Note struct {
	Name      string
	Frequency float64
}

type Options struct {
	Duration   float64 // Seconds, defaults to tone.Duration
	SampleRate uint32  // Defaults to tone.SampleRate
	FLAC       bool    // Also write a .flac copy next to each .wav
	Workers    int     // Defaults to GOMAXPROCS
}

func (o Options) withDefaults() Options {
	if o.Duration == 0 {
		o.Duration = tone.Duration
	}
	if o.SampleRate == 0 {
		o.SampleRate = tone.SampleRate
	}
	if o.Workers <= 0 {
		o.Workers = runtime.GOMAXPROCS(0)
	}
	return o
}

// Result reports what happened to one note. Written is false when the
// asset was already on disk.
type Result struct {
	Note    Note
	Path    string
	Written bool
	Err     error
}

// Generate renders a wave asset for every note into dir. A failure for one
// note is reported in its Result and never stops the others.
func Generate(ctx context.Context, dir string, notes []Note, opts Options) []Result {
	opts = opts.withDefaults()
	if err := os.MkdirAll(dir, 0o755); nil != err {
		log.Warn().Err(err).Str("dir", dir).Msg("unable to create asset directory")
	}

	results := make([]Result, len(notes))
	var g errgroup.Group
	g.SetLimit(opts.Workers)
	for i, n := range notes {
		g.Go(func() error {
			results[i] = generate(ctx, dir, n, opts)
			r := &results[i]
			if nil != r.Err {
				log.Error().Err(r.Err).Str("note", n.Name).Msg("unable to generate tone")
			} else if r.Written {
				log.Debug().Str("note", n.Name).Str("path", r.Path).Msg("generated tone")
			}
			return nil
		})
	}
	g.Wait()
	return results
}

func generate(ctx context.Context, dir string, n Note, opts Options) Result {
	r := Result{Note: n, Path: Path(dir, n.Name)}
	if err := ctx.Err(); nil != err {
		r.Err = err
		return r
	}
	if err := tone.Validate(n.Frequency, opts.Duration, opts.SampleRate); nil != err {
		r.Err = err
		return r
	}

	format := CD
	format.SampleRate = opts.SampleRate

	var samples []int16
	synthesize := func() ([]int16, error) {
		if nil == samples {
			s, err := tone.Synthesize(n.Frequency, opts.Duration, opts.SampleRate)
			if nil != err {
				return nil, err
			}
			samples = s
		}
		return samples, nil
	}

	r.Written, r.Err = WriteIfAbsent(r.Path, func(w io.Writer) error {
		s, err := synthesize()
		if nil != err {
			return err
		}
		return Encode(w, s, format)
	})

	if opts.FLAC {
		path := filepath.Join(dir, FileName(n.Name, ".flac"))
		_, err := WriteIfAbsent(path, func(w io.Writer) error {
			s, err := synthesize()
			if nil != err {
				return err
			}
			return EncodeFLAC(w, s, format)
		})
		r.Err = errors.Join(r.Err, err)
	}
	return r
}
