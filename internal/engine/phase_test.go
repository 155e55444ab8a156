package engine

import (
	"testing"

	"git.lost.host/meutraa/pianofall/internal/game"
)

func newController(field Playfield, songs ...*game.Song) *Controller {
	return NewController(field, game.DefaultBindings, songs)
}

func run(c *Controller, ticks int, delta float64) {
	for i := 0; i < ticks; i++ {
		c.Tick(delta, nil)
	}
}

func TestPlayThrough(t *testing.T) {
	c := newController(DefaultPlayfield, song(game.SongEvent{Key: game.C, HitTime: 1}))
	if c.Phase() != MainMenu {
		t.Fatalf("started in %v", c.Phase())
	}
	if !c.Confirm() || c.Phase() != Playing {
		t.Fatal("confirm did not start the song")
	}

	run(c, 3, 0.25)
	f := c.Tick(0.25, press('a'))
	if f.Clock != 1 || len(f.Verdicts) != 1 || f.Verdicts[0].Gain != 100 {
		t.Fatalf("frame %+v", f)
	}
	if len(f.Cues) != 1 || f.Cues[0] != "C4" {
		t.Errorf("cues %v, want one C4", f.Cues)
	}
	if l, _ := c.Arena().Label(LabelScore); l.Value != 100 {
		t.Errorf("score label %v", l.Value)
	}

	// The song ends strictly after last hit time plus grace.
	run(c, 12, 0.25)
	if c.Clock() != 4 || c.Phase() != Playing {
		t.Fatalf("clock=%v phase=%v", c.Clock(), c.Phase())
	}
	f = c.Tick(0.25, nil)
	if f.Phase != Playing || c.Phase() != GameOver {
		t.Fatalf("frame phase %v, controller %v", f.Phase, c.Phase())
	}

	s := c.Session()
	if s.Score != 100 || s.MaxCombo != 1 || s.Accuracy() != 100 || s.Rank() != "S" {
		t.Errorf("session %+v", s)
	}
	if l, ok := c.Arena().Label(LabelAccuracy); !ok || l.Value != 100 {
		t.Error("results screen has no accuracy")
	}
	if _, ok := c.Arena().Label(LabelCombo); ok {
		t.Error("playing labels leaked into game over")
	}
}

func TestGameOverWaitsForLiveNotes(t *testing.T) {
	field := DefaultPlayfield
	field.Grace = 0.1
	c := newController(field, song(game.SongEvent{Key: game.C, HitTime: 1}))
	c.Confirm()

	run(c, 5, 0.25)
	if c.Phase() != Playing || c.Arena().NoteCount() != 1 {
		t.Fatalf("grace has passed but the note at y=787.5 is live: phase=%v", c.Phase())
	}
	f := c.Tick(0.25, nil)
	if len(f.Missed) != 1 || c.Phase() != GameOver {
		t.Errorf("missed=%d phase=%v", len(f.Missed), c.Phase())
	}
	if s := c.Session(); s.Missed != 1 || s.Combo != 0 || s.Blanks != 0 {
		t.Errorf("session %+v", s)
	}
}

func TestTimeoutMissKeepsCombo(t *testing.T) {
	c := newController(DefaultPlayfield, song(
		game.SongEvent{Key: game.C, HitTime: 1},
		game.SongEvent{Key: game.D, HitTime: 1},
	))
	c.Confirm()
	run(c, 3, 0.25)
	c.Tick(0.25, press('a'))
	run(c, 2, 0.25)

	s := c.Session()
	if s.Missed != 1 || s.Combo != 1 {
		t.Errorf("a note falling off should not break combo: %+v", s)
	}
}

func TestEnteringPlayingResets(t *testing.T) {
	c := newController(DefaultPlayfield, song(game.SongEvent{Key: game.C, HitTime: 1}))
	c.Confirm()
	run(c, 3, 0.25)
	c.Tick(0.25, press('a'))
	run(c, 20, 0.25)
	if c.Phase() != GameOver || c.Session().Score == 0 {
		t.Fatalf("phase=%v session=%+v", c.Phase(), c.Session())
	}

	if c.Confirm() {
		t.Error("confirm accepted outside the menu")
	}
	if !c.ReturnToMenu() || c.Phase() != MainMenu {
		t.Fatal("unable to return to the menu")
	}
	c.Confirm()
	if s := c.Session(); s.Score != 0 || s.Combo != 0 || s.MaxCombo != 0 || s.Total != 1 {
		t.Errorf("session not reset: %+v", s)
	}
	if c.Clock() != 0 {
		t.Errorf("clock not reset: %v", c.Clock())
	}
}

func TestReturnToMenuCancels(t *testing.T) {
	c := newController(DefaultPlayfield, song(
		game.SongEvent{Key: game.C, HitTime: 1},
		game.SongEvent{Key: game.C, HitTime: 1.5},
	))
	c.Confirm()
	c.Tick(0.5, nil)
	if c.Arena().NoteCount() != 2 {
		t.Fatalf("%d live notes", c.Arena().NoteCount())
	}
	before := c.Session()

	c.ReturnToMenu()
	if c.Arena().NoteCount() != 0 {
		t.Error("live notes survived the phase change")
	}
	f := c.Tick(0.5, press('a'))
	if len(f.Verdicts) != 0 || c.Session() != before {
		t.Errorf("judged after cancellation: %+v", f)
	}
	if c.Clock() != 0.5 {
		t.Errorf("clock moved in the menu: %v", c.Clock())
	}
}

func TestNoEntityLeak(t *testing.T) {
	c := newController(DefaultPlayfield, song(game.SongEvent{Key: game.C, HitTime: 1}))
	menu := c.Arena().Len()
	c.Confirm()
	c.Tick(0.5, nil)
	c.ReturnToMenu()
	if c.Arena().Len() != menu {
		t.Errorf("menu had %d entities, now %d", menu, c.Arena().Len())
	}
	keys := 0
	c.Arena().EachKey(func(*KeyVisual) { keys++ })
	if keys != len(game.Piano) {
		t.Errorf("%d piano keys", keys)
	}
}

func TestSonglessPlay(t *testing.T) {
	for _, songs := range [][]*game.Song{nil, {song()}} {
		c := newController(DefaultPlayfield, songs...)
		c.Confirm()
		for i := 0; i < 100; i++ {
			f := c.Tick(0.5, press('a'))
			if len(f.Verdicts) != 0 || f.Spawned != 0 {
				t.Fatalf("tick %d judged or spawned: %+v", i, f)
			}
			if len(f.Cues) != 1 {
				t.Fatalf("the piano should still sound: %v", f.Cues)
			}
		}
		if c.Phase() != Playing || c.Session() != (game.Session{}) {
			t.Errorf("phase=%v session=%+v", c.Phase(), c.Session())
		}
	}
}

func TestPianoCues(t *testing.T) {
	c := newController(DefaultPlayfield)
	f := c.Tick(0.016, press('w', 'k', 'z'))
	if len(f.Cues) != 2 || f.Cues[0] != "C#4" || f.Cues[1] != "C5" {
		t.Errorf("cues %v", f.Cues)
	}

	c.Tick(0.016, hold('w'))
	pressed := []string{}
	c.Arena().EachKey(func(k *KeyVisual) {
		if k.Pressed {
			pressed = append(pressed, k.Piano.Name)
		}
	})
	if len(pressed) != 1 || pressed[0] != "C#4" {
		t.Errorf("pressed keys %v", pressed)
	}
}

func TestBlankPressBreaksCombo(t *testing.T) {
	c := newController(DefaultPlayfield, song(
		game.SongEvent{Key: game.C, HitTime: 1},
		game.SongEvent{Key: game.D, HitTime: 1},
		game.SongEvent{Key: game.E, HitTime: 1},
		game.SongEvent{Key: game.A, HitTime: 9},
	))
	c.Confirm()
	run(c, 3, 0.25)
	f := c.Tick(0.25, press('a', 's', 'd'))
	if len(f.Verdicts) != 3 || c.Session().Combo != 3 {
		t.Fatalf("verdicts=%d session=%+v", len(f.Verdicts), c.Session())
	}
	c.Tick(0.25, press('h'))
	if s := c.Session(); s.Combo != 0 || s.MaxCombo != 3 || s.Blanks != 1 {
		t.Errorf("session %+v", s)
	}
}

func TestSelect(t *testing.T) {
	a, b, d := song(), song(), song()
	c := newController(DefaultPlayfield, a, b, d)
	c.Select(-1)
	if c.Selected() != 2 {
		t.Errorf("selected %d", c.Selected())
	}
	c.Select(2)
	c.Confirm()
	if c.Song() != b {
		t.Error("wrong song started")
	}
	if c.Select(1) {
		t.Error("selection changed while playing")
	}
}

func TestPipelineOrder(t *testing.T) {
	expected := []string{"clock", "spawn", "move", "judge", "keys", "ui", "phase"}
	stages := Pipelines[Playing]
	if len(stages) != len(expected) {
		t.Fatalf("%d stages", len(stages))
	}
	for i, s := range stages {
		if s.Name != expected[i] {
			t.Errorf("stage %d is %s, want %s", i, s.Name, expected[i])
		}
	}
}

func TestCountdown(t *testing.T) {
	field := DefaultPlayfield
	field.Countdown = 3
	c := newController(field, song(game.SongEvent{Key: game.C, HitTime: 0.5}))
	c.Confirm()
	if l, _ := c.Arena().Label(LabelCount); l.Value != 3 {
		t.Errorf("countdown label %v", l.Value)
	}

	f := c.Tick(1.25, press('a'))
	if f.Clock != 0 || f.Spawned != 0 || len(f.Verdicts) != 0 {
		t.Fatalf("song ran during the countdown: %+v", f)
	}
	if len(f.Cues) != 1 || f.Cues[0] != "C4" {
		t.Errorf("the piano should sound during the countdown: %v", f.Cues)
	}
	if l, _ := c.Arena().Label(LabelCount); l.Value != 2 {
		t.Errorf("countdown label %v after 1.25s", l.Value)
	}

	// The tick that ends the countdown runs the clock with the rest.
	f = c.Tick(2, nil)
	if f.Clock != 0.25 || f.Spawned != 1 || c.Countdown() != 0 {
		t.Fatalf("frame %+v countdown %v", f, c.Countdown())
	}
	f = c.Tick(0.25, press('a'))
	if len(f.Verdicts) != 1 || f.Verdicts[0].Gain != 100 {
		t.Errorf("verdicts %+v", f.Verdicts)
	}

	c.ReturnToMenu()
	c.Confirm()
	if c.Countdown() != 3 || c.Clock() != 0 {
		t.Errorf("countdown %v clock %v on a new song", c.Countdown(), c.Clock())
	}
}

func TestSonglessPlaySkipsCountdown(t *testing.T) {
	field := DefaultPlayfield
	field.Countdown = 3
	c := newController(field)
	c.Confirm()
	if c.Countdown() != 0 {
		t.Errorf("countdown %v without a song", c.Countdown())
	}
}

func TestHitSoundsOnce(t *testing.T) {
	// w is also the C#4 piano key
	bindings, _ := game.ParseBindings("wsdfgh")
	c := NewController(DefaultPlayfield, bindings, []*game.Song{song(game.SongEvent{Key: game.C, HitTime: 1})})
	c.Confirm()
	run(c, 3, 0.25)
	f := c.Tick(0.25, press('w'))
	if len(f.Verdicts) != 1 || !f.Verdicts[0].Hit {
		t.Fatalf("verdicts %+v", f.Verdicts)
	}
	if len(f.Cues) != 1 || f.Cues[0] != "C4" {
		t.Errorf("cues %v, want only the C4 that was hit", f.Cues)
	}

	// Without a note to hit the key is just a piano key.
	f = c.Tick(0.25, press('w'))
	if len(f.Cues) != 1 || f.Cues[0] != "C#4" {
		t.Errorf("cues %v, want C#4", f.Cues)
	}
}
