package config

import (
	"fmt"
	"time"

	"gopkg.in/alecthomas/kingpin.v2"

	"git.lost.host/meutraa/pianofall/internal/engine"
	"git.lost.host/meutraa/pianofall/internal/game"
)

const Version = "0.3.0"

const (
	CommandPlay    = "play"
	CommandAssets  = "assets"
	CommandReplays = "replays"
)

type Config struct {
	Command string

	Songs  string
	Song   string
	Assets string
	FLAC   bool
	Jobs   int

	Keys      string
	LookAhead time.Duration
	HitWindow float64
	Grace     time.Duration
	Countdown time.Duration
	FPS       uint
	Hold      time.Duration

	Volume float64
	Mute   bool
	Device string

	Record string
	Replay string

	LogFile  string
	LogLevel string

	bindings game.Bindings
}

func newApp(c *Config) *kingpin.Application {
	app := kingpin.New("pianofall", "Falling note piano game for the terminal.")
	app.Version(Version)

	app.Flag("songs", "Song directory").Default("songs").Short('S').StringVar(&c.Songs)
	app.Flag("song", "Play a single song file").Short('s').StringVar(&c.Song)
	app.Flag("assets", "Directory of generated piano tones").Default("assets/sounds").StringVar(&c.Assets)
	app.Flag("flac", "Also write FLAC copies of the tones").BoolVar(&c.FLAC)
	app.Flag("jobs", "Tones generated in parallel, 0 for one per CPU").Default("0").IntVar(&c.Jobs)
	app.Flag("keys", "Keys for the C D E F G A lanes").Default("asdfgh").Short('k').StringVar(&c.Keys)
	app.Flag("look-ahead", "How long a note is visible before its hit time").Default("2s").DurationVar(&c.LookAhead)
	app.Flag("hit-window", "Largest distance from the hit zone that still hits").Default("50").Float64Var(&c.HitWindow)
	app.Flag("grace", "Time after the last note before the song ends").Default("3s").DurationVar(&c.Grace)
	app.Flag("countdown", "Wait before a song starts").Default("3s").DurationVar(&c.Countdown)
	app.Flag("fps", "Frames per second").Default("120").UintVar(&c.FPS)
	app.Flag("hold", "How long a terminal key press counts as held").Default("150ms").DurationVar(&c.Hold)
	app.Flag("volume", "Volume change in decibels").Default("0").Float64Var(&c.Volume)
	app.Flag("mute", "Play no sound").BoolVar(&c.Mute)
	app.Flag("device", "Read keys from this evdev device instead of the terminal").Short('d').StringVar(&c.Device)
	app.Flag("record", "Record performances to this sqlite database").StringVar(&c.Record)
	app.Flag("log-file", "Log file").Default("pianofall.log").StringVar(&c.LogFile)
	app.Flag("log-level", "Log level").Default("info").EnumVar(&c.LogLevel, "debug", "info", "warn", "error")

	app.Command(CommandPlay, "Play songs").Default()
	app.Command(CommandAssets, "Generate the piano tones and exit")
	replays := app.Command(CommandReplays, "List recorded performances, or re-score one")
	replays.Arg("id", "Replay to re-score").StringVar(&c.Replay)
	return app
}

// Parse reads the command line, without the program name.
func Parse(args []string) (*Config, error) {
	c := &Config{}
	command, err := newApp(c).Parse(args)
	if nil != err {
		return nil, err
	}
	c.Command = command

	if c.bindings, err = game.ParseBindings(c.Keys); nil != err {
		return nil, fmt.Errorf("--keys: %w", err)
	}
	if c.LookAhead <= 0 {
		return nil, fmt.Errorf("--look-ahead must be positive, got %v", c.LookAhead)
	}
	if c.HitWindow <= 0 {
		return nil, fmt.Errorf("--hit-window must be positive, got %v", c.HitWindow)
	}
	if c.Grace < 0 {
		return nil, fmt.Errorf("--grace must not be negative, got %v", c.Grace)
	}
	if c.Countdown < 0 {
		return nil, fmt.Errorf("--countdown must not be negative, got %v", c.Countdown)
	}
	if c.FPS == 0 {
		return nil, fmt.Errorf("--fps must be positive")
	}
	return c, nil
}

func (c *Config) Bindings() game.Bindings {
	return c.bindings
}

func (c *Config) Playfield() engine.Playfield {
	p := engine.DefaultPlayfield
	p.LookAhead = c.LookAhead.Seconds()
	p.HitWindow = c.HitWindow
	p.Grace = c.Grace.Seconds()
	p.Countdown = c.Countdown.Seconds()
	return p
}

func (c *Config) FramePeriod() time.Duration {
	return time.Second / time.Duration(c.FPS)
}
