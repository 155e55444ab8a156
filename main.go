package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/faiface/beep"
	"github.com/rs/zerolog/log"

	"git.lost.host/meutraa/pianofall/internal/asset"
	"git.lost.host/meutraa/pianofall/internal/audio"
	"git.lost.host/meutraa/pianofall/internal/config"
	"git.lost.host/meutraa/pianofall/internal/engine"
	"git.lost.host/meutraa/pianofall/internal/game"
	"git.lost.host/meutraa/pianofall/internal/input"
	"git.lost.host/meutraa/pianofall/internal/parser"
	"git.lost.host/meutraa/pianofall/internal/render"
	"git.lost.host/meutraa/pianofall/internal/score"
	"git.lost.host/meutraa/pianofall/internal/theme"
	"git.lost.host/meutraa/pianofall/internal/tone"
)

func main() {
	cfg, err := config.Parse(os.Args[1:])
	if nil != err {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	closeLog, err := initLogging(cfg.LogFile, cfg.LogLevel)
	if nil != err {
		fmt.Fprintln(os.Stderr, "unable to open log:", err)
		os.Exit(1)
	}

	switch cfg.Command {
	case config.CommandAssets:
		err = generate(cfg)
	case config.CommandReplays:
		err = replays(cfg)
	default:
		err = play(cfg)
	}
	if nil != err {
		log.Error().Err(err).Str("command", cfg.Command).Msg("exiting")
		closeLog()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	closeLog()
}

func pianoNotes() []asset.Note {
	notes := make([]asset.Note, len(game.Piano))
	for i, k := range game.Piano {
		notes[i] = asset.Note{Name: k.Name, Frequency: k.Frequency}
	}
	return notes
}

func pianoNames() []string {
	names := make([]string, len(game.Piano))
	for i, k := range game.Piano {
		names[i] = k.Name
	}
	return names
}

// generate writes any missing tones, reporting failures without stopping.
func generate(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	results := asset.Generate(ctx, cfg.Assets, pianoNotes(), asset.Options{
		FLAC:    cfg.FLAC,
		Workers: cfg.Jobs,
	})

	var errs []error
	written := 0
	for _, r := range results {
		if nil != r.Err {
			errs = append(errs, fmt.Errorf("%s: %w", r.Note.Name, r.Err))
			continue
		}
		if r.Written {
			written++
		}
	}
	log.Info().
		Int("written", written).
		Int("failed", len(errs)).
		Dur("took", time.Since(start)).
		Str("dir", cfg.Assets).
		Msg("piano tones ready")

	if cfg.Command == config.CommandAssets {
		fmt.Printf("%d tones written, %d already present, %d failed\n", written, len(results)-written-len(errs), len(errs))
	}
	return errors.Join(errs...)
}

func loadSongs(cfg *config.Config, psr parser.Parser) []*game.Song {
	if cfg.Song != "" {
		song, err := psr.Parse(cfg.Song)
		if nil == err {
			return []*game.Song{song}
		}
		log.Error().Err(err).Msg("unable to load song")
	}

	songs, err := parser.ParseDir(psr, cfg.Songs)
	if nil != err {
		log.Warn().Err(err).Str("dir", cfg.Songs).Msg("unable to read song directory")
	}
	if len(songs) == 0 {
		log.Info().Err(game.ErrNoSongs).Msg("playing the built-in song")
		songs = []*game.Song{game.Fallback()}
	}
	return songs
}

func play(cfg *config.Config) error {
	// Missing tones only cost sound, so the game starts regardless.
	if err := generate(cfg); nil != err {
		log.Warn().Err(err).Msg("some piano keys will be silent")
	}

	p := &Program{
		Config:   cfg,
		Renderer: &render.DefaultRenderer{},
		Theme:    theme.NewDefaultTheme(),
		Bank:     audio.LoadBank(cfg.Assets, pianoNames()),
		Player:   audio.Discard,
		Input:    input.NewState(cfg.Hold),
	}

	if !cfg.Mute {
		spk, err := audio.NewSpeaker(beep.SampleRate(tone.SampleRate), cfg.Volume, cfg.Mute)
		if nil != err {
			log.Warn().Err(err).Msg("playing without sound")
		} else {
			defer spk.Stop()
			p.Player = spk
		}
	}

	if cfg.Record != "" {
		store := &score.DefaultStore{Path: cfg.Record}
		if err := store.Init(); nil != err {
			return err
		}
		defer store.Deinit()
		p.Store = store
	}

	var closeInput func()
	var err error
	if cfg.Device != "" {
		p.Input.Hold = 0
		closeInput, err = input.ReadDevice(cfg.Device, p.Input)
	} else {
		closeInput, err = input.ReadKeyboard(p.Input)
	}
	if nil != err {
		return err
	}
	defer closeInput()

	controller := engine.NewController(cfg.Playfield(), cfg.Bindings(), loadSongs(cfg, &parser.DefaultParser{}))
	return p.Run(controller)
}

func replays(cfg *config.Config) error {
	if cfg.Record == "" {
		return errors.New("replays need --record")
	}
	store := &score.DefaultStore{Path: cfg.Record}
	if err := store.Init(); nil != err {
		return err
	}
	defer store.Deinit()

	th := theme.NewDefaultTheme()
	songs := loadSongs(cfg, &parser.DefaultParser{})

	if cfg.Replay == "" {
		for _, song := range songs {
			lines := []string{}
			for _, h := range store.Load(song) {
				lines = append(lines, fmt.Sprintf("%s  %s  %6d  x%-4d  %v",
					h.ID, h.Recorded.Format(time.DateTime), h.Score, h.MaxCombo, h.Recording.Duration().Round(time.Second)))
			}
			if len(lines) > 0 {
				fmt.Println(th.Panel(song.Title, lines))
			}
		}
		return nil
	}

	h, err := store.Get(cfg.Replay)
	if nil != err {
		return err
	}
	for _, song := range songs {
		if score.HashSong(song) != h.Sum {
			continue
		}
		s := score.Replay(song, h.Recording)
		fmt.Println(th.Panel(song.Title, resultLines(s)))
		if s.Score != h.Score {
			fmt.Printf("recorded score was %d\n", h.Score)
		}
		return nil
	}
	return fmt.Errorf("the song of replay %s (%s) is not loaded", h.ID, h.Title)
}
