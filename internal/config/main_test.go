package config

import (
	"testing"
	"time"

	"git.lost.host/meutraa/pianofall/internal/engine"
	"git.lost.host/meutraa/pianofall/internal/game"
)

func TestDefaults(t *testing.T) {
	c, err := Parse([]string{})
	if nil != err {
		t.Fatal(err)
	}
	if c.Command != CommandPlay {
		t.Errorf("command %q", c.Command)
	}
	field := engine.DefaultPlayfield
	field.Countdown = 3
	if c.Playfield() != field {
		t.Errorf("playfield %+v", c.Playfield())
	}
	if c.Bindings() != game.DefaultBindings {
		t.Errorf("bindings %q", c.Bindings())
	}
	if c.FramePeriod() != time.Second/120 {
		t.Errorf("frame period %v", c.FramePeriod())
	}
	if c.Assets != "assets/sounds" || c.LogLevel != "info" {
		t.Errorf("config %+v", c)
	}
}

func TestFlags(t *testing.T) {
	c, err := Parse([]string{"--keys", "jkl;'\\", "--look-ahead", "1500ms", "--hit-window", "30", "--grace", "1s", "--countdown", "0s", "--volume=-6", "assets", "--flac"})
	if nil != err {
		t.Fatal(err)
	}
	if c.Command != CommandAssets || !c.FLAC {
		t.Errorf("command %q flac %v", c.Command, c.FLAC)
	}
	p := c.Playfield()
	if p.LookAhead != 1.5 || p.HitWindow != 30 || p.Grace != 1 || p.Countdown != 0 || c.Volume != -6 {
		t.Errorf("playfield %+v", p)
	}
	if k, ok := c.Bindings().Lookup('l'); !ok || k != game.E {
		t.Errorf("l maps to %v", k)
	}
}

func TestReplaysCommand(t *testing.T) {
	c, err := Parse([]string{"replays", "--record", "scores.db", "1234"})
	if nil != err {
		t.Fatal(err)
	}
	if c.Command != CommandReplays || c.Replay != "1234" || c.Record != "scores.db" {
		t.Errorf("config %+v", c)
	}
}

func TestInvalid(t *testing.T) {
	tests := [][]string{
		{"--keys", "asd"},
		{"--keys", "aaaaaa"},
		{"--look-ahead", "0s"},
		{"--hit-window=-1"},
		{"--grace=-1s"},
		{"--countdown=-1s"},
		{"--fps", "0"},
		{"--log-level", "loud"},
		{"--unknown"},
	}
	for _, args := range tests {
		if _, err := Parse(args); nil == err {
			t.Errorf("%v accepted", args)
		}
	}
}
