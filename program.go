package main

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"git.lost.host/meutraa/pianofall/internal/audio"
	"git.lost.host/meutraa/pianofall/internal/config"
	"git.lost.host/meutraa/pianofall/internal/engine"
	"git.lost.host/meutraa/pianofall/internal/game"
	"git.lost.host/meutraa/pianofall/internal/input"
	"git.lost.host/meutraa/pianofall/internal/render"
	"git.lost.host/meutraa/pianofall/internal/score"
	"git.lost.host/meutraa/pianofall/internal/theme"
)

const (
	fieldTop     = 2
	laneSpacing  = 4
	keySpacing   = 3
	sideCol      = 2
	verdictFrame = 30
	tailSym      = "▐▌"
)

// Program is the terminal frontend around an engine.Controller.
type Program struct {
	Config   *config.Config
	Renderer render.Renderer
	Theme    theme.Theme
	Bank     *audio.Bank
	Player   audio.Player
	Store    score.Store // nil unless recording
	Input    *input.State

	controller *engine.Controller
	recorder   *score.Recorder
	rows, cols int
}

func (p *Program) Run(c *engine.Controller) error {
	p.controller = c
	if err := p.Renderer.Init(); nil != err {
		return fmt.Errorf("unable to set up terminal: %w", err)
	}
	defer p.Renderer.Deinit()

	p.Renderer.RenderLoop(p.Config.FramePeriod(), func(now time.Time, delta time.Duration) bool {
		p.rows, p.cols = p.Renderer.Size()
		if !p.Update(delta.Seconds()) {
			return false
		}
		p.Render()
		return true
	})
	return nil
}

// Update handles menu keys and runs one tick. It returns false to quit.
func (p *Program) Update(delta float64) bool {
	p.Input.Poll()
	c := p.controller

	for _, r := range p.Input.Pressed() {
		if r == input.Interrupt {
			return false
		}
		switch c.Phase() {
		case engine.MainMenu:
			switch r {
			case input.Esc:
				return false
			case input.Up:
				c.Select(-1)
			case input.Down:
				c.Select(1)
			case input.Enter:
				p.start()
			}
		case engine.Playing:
			if r == input.Esc {
				c.ReturnToMenu()
				p.recorder = nil
			}
		case engine.GameOver:
			if r == input.Enter || r == input.Esc {
				c.ReturnToMenu()
			}
		}
	}

	if c.Phase() == engine.Playing && nil != p.recorder {
		p.recorder.Tick(delta, p.Input)
	}
	frame := c.Tick(delta, p.Input)
	p.Bank.Cue(p.Player, frame.Cues)
	p.decorate(frame)
	if frame.Phase == engine.Playing && c.Phase() == engine.GameOver {
		p.finish()
	}
	return true
}

func (p *Program) start() {
	c := p.controller
	if !c.Confirm() {
		return
	}
	if nil != p.Store && nil != c.Song() {
		p.recorder = score.NewRecorder(c.Field(), c.Bindings())
	}
}

func (p *Program) finish() {
	s := p.controller.Session()
	log.Info().
		Uint32("score", s.Score).
		Uint32("max_combo", s.MaxCombo).
		Float64("accuracy", s.Accuracy()).
		Msg("song finished")

	if nil == p.recorder {
		return
	}
	id, err := p.Store.Save(p.controller.Song(), p.recorder.Recording(), s)
	if nil != err {
		log.Error().Err(err).Msg("unable to save replay")
	} else {
		log.Info().Str("id", id).Msg("saved replay")
	}
	p.recorder = nil
}

func at(row, col int) (uint16, uint16) {
	if row < 1 {
		row = 1
	}
	if col < 1 {
		col = 1
	}
	return uint16(row), uint16(col)
}

func (p *Program) pianoRow() int {
	return p.rows - 1
}

func (p *Program) bottomRow() int {
	return p.rows - 3
}

// rowOf maps a playfield position to a terminal row.
func (p *Program) rowOf(y float64) int {
	f := p.controller.Field()
	span := float64(p.bottomRow() - fieldTop)
	return fieldTop + int(math.Round((y-f.Top)/(f.Bottom-f.Top)*span))
}

func (p *Program) laneCol(lane int) int {
	return p.cols/2 - game.NKeys*laneSpacing/2 + lane*laneSpacing
}

func (p *Program) decorate(f engine.Frame) {
	hitRow := p.rowOf(p.controller.Field().HitZone)
	for _, v := range f.Verdicts {
		row, col := at(hitRow+1, p.laneCol(v.Key.Lane()))
		if v.Hit {
			name := game.Judgements[v.Judgement].Name
			p.Renderer.AddDecoration(col, row, name[:1], verdictFrame)
		} else {
			p.Renderer.AddDecoration(col, row, "\033[1;31m✗\033[0m", verdictFrame)
		}
	}
	for _, n := range f.Missed {
		row, col := at(p.bottomRow(), p.laneCol(n.Lane))
		p.Renderer.AddDecoration(col, row, "\033[1;31m╳\033[0m", verdictFrame)
	}
}

func (p *Program) Render() {
	p.Renderer.Clear()
	switch p.controller.Phase() {
	case engine.MainMenu:
		p.renderMenu()
	case engine.Playing:
		p.renderField()
	case engine.GameOver:
		p.renderResults()
	}
	p.renderPiano()
}

func (p *Program) renderMenu() {
	c := p.controller
	lines := []string{}
	for i, song := range c.Songs() {
		cursor := "  "
		if i == c.Selected() {
			cursor = "› "
		}
		d := song.Difficulty()
		lines = append(lines, fmt.Sprintf("%s%-28s %-16s %-6s %3d", cursor, song.Title, song.Artist, game.DifficultyName(d), d))
	}
	if len(lines) == 0 {
		lines = append(lines, "No songs, free play only")
	}
	lines = append(lines, "", "↑/↓ choose   Enter play   Esc quit")
	row, col := at(fieldTop, sideCol)
	p.Renderer.FillBlock(row, col, p.Theme.Panel("pianofall", lines))
}

func (p *Program) renderField() {
	c := p.controller
	f := c.Field()
	clock := c.Clock()
	hitRow := p.rowOf(f.HitZone)
	left, right := p.laneCol(0), p.laneCol(game.NKeys-1)+2

	if song := c.Song(); nil != song {
		for _, m := range song.Measures(clock + f.LookAhead) {
			y := f.Y(m.Time, clock)
			if !m.Downbeat || y < f.Top || y > f.HitZone {
				continue
			}
			row, col := at(p.rowOf(y), left)
			p.Renderer.Fill(row, col, "\033[2m"+strings.Repeat("┄", right-left)+"\033[0m")
		}
	}

	for _, k := range game.Keys() {
		row, col := at(hitRow, p.laneCol(k.Lane()))
		p.Renderer.Fill(row, col, p.Theme.RenderHitField(k, p.Input.Held(c.Bindings().Key(k))))
		row, col = at(p.bottomRow()+1, p.laneCol(k.Lane()))
		p.Renderer.Fill(row, col, string(c.Bindings().Key(k)))
	}

	c.Arena().EachNote(func(_ engine.EntityID, n *game.LiveNote) {
		head := p.rowOf(n.Y)
		if n.Hold > 0 {
			tail := max(p.rowOf(n.Y-n.Hold*f.Speed()), fieldTop)
			for r := tail; r < head && r <= p.bottomRow(); r++ {
				row, col := at(r, p.laneCol(n.Lane))
				p.Renderer.FillColor(row, col, p.Theme.Color(n.Key), tailSym)
			}
		}
		if head < fieldTop || head > p.bottomRow() {
			return
		}
		row, col := at(head, p.laneCol(n.Lane))
		p.Renderer.Fill(row, col, p.Theme.RenderNote(n.Key))
	})

	if remaining := c.Countdown(); remaining > 0 {
		row, col := at(hitRow/2, p.cols/2-1)
		p.Renderer.Fill(row, col, fmt.Sprintf("\033[1m%.0f\033[0m", math.Ceil(remaining)))
	}

	title := "Free play"
	if song := c.Song(); nil != song {
		title = song.Title
	}
	lines := []string{}
	for _, name := range []string{engine.LabelScore, engine.LabelCombo, engine.LabelMaxCombo, engine.LabelClock} {
		if l, ok := c.Arena().Label(name); ok {
			lines = append(lines, fmt.Sprintf("%-10s %8.0f", name, l.Value))
		}
	}
	lines = append(lines, "", "Esc menu")
	row, col := at(fieldTop, sideCol)
	p.Renderer.FillBlock(row, col, p.Theme.Panel(title, lines))
}

func resultLines(s game.Session) []string {
	lines := []string{
		fmt.Sprintf("%-10s %6d", "Score", s.Score),
		fmt.Sprintf("%-10s %6d", "Max combo", s.MaxCombo),
		fmt.Sprintf("%-10s %5.1f%%", "Accuracy", s.Accuracy()),
		fmt.Sprintf("%-10s %6s", "Rank", s.Rank()),
		"",
	}
	for i, j := range game.Judgements {
		lines = append(lines, fmt.Sprintf("%-10s %6d", j.Name, s.Counts[i]))
	}
	return append(lines,
		fmt.Sprintf("%-10s %6d", "Missed", s.Missed),
		fmt.Sprintf("%-10s %6d", "Blanks", s.Blanks),
	)
}

func (p *Program) renderResults() {
	lines := append(resultLines(p.controller.Session()), "", "Enter continue")
	title := "Results"
	if song := p.controller.Song(); nil != song {
		title = song.Title
	}
	row, col := at(fieldTop, sideCol)
	p.Renderer.FillBlock(row, col, p.Theme.Panel(title, lines))
}

func (p *Program) renderPiano() {
	start := p.cols/2 - len(game.Piano)*keySpacing/2
	i := 0
	p.controller.Arena().EachKey(func(k *engine.KeyVisual) {
		row, col := at(p.pianoRow(), start+i*keySpacing)
		p.Renderer.Fill(row, col, p.Theme.RenderKey(k.Piano, k.Pressed))
		row, col = at(p.pianoRow()+1, start+i*keySpacing)
		p.Renderer.Fill(row, col, string(k.Piano.Key))
		i++
	})
}
