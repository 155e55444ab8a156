package engine

import (
	"math"
	"slices"

	"github.com/rs/zerolog/log"

	"git.lost.host/meutraa/pianofall/internal/game"
)

type Phase uint8

const (
	MainMenu Phase = iota
	Playing
	GameOver
)

func (p Phase) String() string {
	switch p {
	case MainMenu:
		return "main menu"
	case Playing:
		return "playing"
	case GameOver:
		return "game over"
	}
	return "unknown"
}

// Labels shown while playing and on the results screen.
const (
	LabelScore    = "score"
	LabelCombo    = "combo"
	LabelMaxCombo = "max combo"
	LabelClock    = "clock"
	LabelAccuracy = "accuracy"
	LabelSong     = "song"
	LabelCount    = "countdown"
)

// Frame is what one tick did, for the audio and rendering collaborators.
type Frame struct {
	Phase    Phase
	Clock    float64
	Spawned  int
	Missed   []game.LiveNote
	Verdicts []Verdict
	Cues     []string // Piano key names to sound, each at most once

	struck []rune // Keys that already sounded the note they hit
}

func (f *Frame) cue(name string) {
	for _, c := range f.Cues {
		if c == name {
			return
		}
	}
	f.Cues = append(f.Cues, name)
}

// Stage is one step of a tick.
type Stage struct {
	Name string
	Run  func(c *Controller, f *Frame)
}

// Pipelines lists the stages run each tick, in order, for every phase.
var Pipelines = map[Phase][]Stage{
	MainMenu: {
		{"keys", (*Controller).keys},
	},
	Playing: {
		{"clock", (*Controller).advance},
		{"spawn", (*Controller).spawn},
		{"move", (*Controller).move},
		{"judge", (*Controller).judgePresses},
		{"keys", (*Controller).keys},
		{"ui", (*Controller).ui},
		{"phase", (*Controller).checkOver},
	},
	GameOver: {
		{"keys", (*Controller).keys},
	},
}

// Controller is the game phase state machine. It owns the play session
// and every entity, and is driven by Tick from a single goroutine.
type Controller struct {
	field    Playfield
	bindings game.Bindings

	songs    []*game.Song
	selected int

	phase     Phase
	arena     Arena
	timeline  Timeline
	scheduler *Scheduler
	judge     *Judge
	session   game.Session
	song      *game.Song

	countdown float64

	input Input
	delta float64
}

func NewController(field Playfield, bindings game.Bindings, songs []*game.Song) *Controller {
	c := &Controller{
		field:     field,
		bindings:  bindings,
		songs:     songs,
		scheduler: NewScheduler(field),
		judge:     NewJudge(field),
		input:     noInput{},
	}
	c.enter(MainMenu)
	return c
}

func (c *Controller) Phase() Phase {
	return c.phase
}

func (c *Controller) Session() game.Session {
	return c.session
}

// Song is the song being played, or nil when playing without one.
func (c *Controller) Song() *game.Song {
	return c.song
}

func (c *Controller) Songs() []*game.Song {
	return c.songs
}

func (c *Controller) Selected() int {
	return c.selected
}

func (c *Controller) Clock() float64 {
	return c.timeline.Clock()
}

// Countdown is the time left before the song clock starts.
func (c *Controller) Countdown() float64 {
	return c.countdown
}

func (c *Controller) Field() Playfield {
	return c.field
}

func (c *Controller) Bindings() game.Bindings {
	return c.bindings
}

// Arena is read by the renderer; it must not be changed outside Tick.
func (c *Controller) Arena() *Arena {
	return &c.arena
}

// Select moves the menu selection by step, wrapping around.
func (c *Controller) Select(step int) bool {
	if c.phase != MainMenu || len(c.songs) == 0 {
		return false
	}
	n := len(c.songs)
	c.selected = ((c.selected+step)%n + n) % n
	if l, ok := c.arena.Label(LabelSong); ok {
		l.Value = float64(c.selected)
	}
	return true
}

// Confirm starts the selected song.
func (c *Controller) Confirm() bool {
	if c.phase != MainMenu {
		return false
	}
	c.transition(Playing)
	return true
}

// ReturnToMenu abandons a song in progress or leaves the results screen.
// Live notes are discarded without being judged.
func (c *Controller) ReturnToMenu() bool {
	if c.phase == MainMenu {
		return false
	}
	c.transition(MainMenu)
	return true
}

// Tick runs the pipeline of the current phase once. A phase change ends
// the tick.
func (c *Controller) Tick(delta float64, in Input) Frame {
	if nil == in {
		in = noInput{}
	}
	c.input, c.delta = in, delta
	defer func() { c.input, c.delta = noInput{}, 0 }()

	phase := c.phase
	f := Frame{Phase: phase}
	for _, stage := range Pipelines[phase] {
		stage.Run(c, &f)
		if c.phase != phase {
			break
		}
	}
	f.Clock = c.timeline.Clock()
	return f
}

func (c *Controller) transition(to Phase) {
	from := c.phase
	c.exit(from)
	c.enter(to)
	log.Info().Stringer("from", from).Stringer("to", to).Msg("phase change")
}

func (c *Controller) exit(p Phase) {
	c.arena.DespawnPhase(p)
	if p == Playing {
		c.scheduler.Clear()
	}
}

func (c *Controller) enter(p Phase) {
	c.phase = p
	for _, k := range game.Piano {
		c.arena.Spawn(Entity{Phase: p, Kind: KindKey, Key: &KeyVisual{Piano: k}})
	}

	switch p {
	case MainMenu:
		c.label(p, LabelSong, float64(c.selected))
	case Playing:
		c.song = nil
		if c.selected < len(c.songs) {
			c.song = c.songs[c.selected]
		}
		total := 0
		if nil != c.song {
			total = len(c.song.Events)
		}
		c.session.Reset(total)
		c.timeline.Reset()
		c.scheduler.Load(c.song)
		c.countdown = 0
		if nil != c.song {
			c.countdown = c.field.Countdown
		}
		for _, name := range []string{LabelScore, LabelCombo, LabelMaxCombo, LabelClock} {
			c.label(p, name, 0)
		}
		c.label(p, LabelCount, math.Ceil(c.countdown))
	case GameOver:
		c.label(p, LabelScore, float64(c.session.Score))
		c.label(p, LabelMaxCombo, float64(c.session.MaxCombo))
		c.label(p, LabelAccuracy, c.session.Accuracy())
	}
}

func (c *Controller) label(p Phase, name string, value float64) {
	c.arena.Spawn(Entity{Phase: p, Kind: KindLabel, Label: &Label{Name: name, Value: value}})
}

func (c *Controller) hasEvents() bool {
	return nil != c.song && len(c.song.Events) > 0
}

// advance runs the countdown down first; the clock gets what is left of
// the delta.
func (c *Controller) advance(f *Frame) {
	delta := c.delta
	if c.countdown > 0 && delta > 0 {
		used := min(delta, c.countdown)
		c.countdown -= used
		delta -= used
	}
	c.timeline.Advance(delta)
}

func (c *Controller) counting() bool {
	return c.countdown > 0
}

func (c *Controller) spawn(f *Frame) {
	if !c.hasEvents() || c.counting() {
		return
	}
	f.Spawned = c.scheduler.Spawn(c.timeline.Clock(), &c.arena, Playing)
}

func (c *Controller) move(f *Frame) {
	f.Missed = c.scheduler.Move(c.timeline.Clock(), &c.arena)
	for range f.Missed {
		c.session.Miss()
	}
}

func (c *Controller) judgePresses(f *Frame) {
	if !c.hasEvents() || c.counting() {
		return
	}
	for _, k := range game.Keys() {
		r := c.bindings.Key(k)
		if !c.input.JustPressed(r) {
			continue
		}
		v := c.judge.Press(k, &c.arena, &c.session)
		if v.Hit {
			c.scheduler.Resolve(v.Event, Hit)
			f.cue(k.Pitch())
			f.struck = append(f.struck, r)
		}
		f.Verdicts = append(f.Verdicts, v)
	}
}

// keys sounds every piano key pressed this tick and lights the held ones.
// A key that hit a note has already sounded the note's pitch.
func (c *Controller) keys(f *Frame) {
	c.arena.EachKey(func(k *KeyVisual) {
		k.Pressed = c.input.Held(k.Piano.Key)
		if c.input.JustPressed(k.Piano.Key) && !slices.Contains(f.struck, k.Piano.Key) {
			f.cue(k.Piano.Name)
		}
	})
}

func (c *Controller) ui(f *Frame) {
	c.arena.EachLabel(func(l *Label) {
		switch l.Name {
		case LabelScore:
			l.Value = float64(c.session.Score)
		case LabelCombo:
			l.Value = float64(c.session.Combo)
		case LabelMaxCombo:
			l.Value = float64(c.session.MaxCombo)
		case LabelClock:
			l.Value = c.timeline.Clock()
		case LabelCount:
			l.Value = math.Ceil(c.countdown)
		}
	})
}

func (c *Controller) checkOver(f *Frame) {
	last, ok := c.song.LastHitTime()
	if !ok {
		return
	}
	if c.timeline.Clock() > last+c.field.Grace && c.arena.NoteCount() == 0 {
		c.transition(GameOver)
	}
}
