package parser

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"git.lost.host/meutraa/pianofall/internal/game"
)

type songNote struct {
	Key  string   `yaml:"key"`
	Lane *int     `yaml:"lane"`
	Time *float64 `yaml:"time"`
	Hold float64  `yaml:"hold"`
}

type songFile struct {
	Title  string     `yaml:"title"`
	Artist string     `yaml:"artist"`
	BPM    float64    `yaml:"bpm"`
	Notes  []songNote `yaml:"notes"`
}

// Notes name their lane by key ("C".."A") or by lane index. JSON files are
// read the same way since JSON is valid YAML.
func (p *DefaultParser) parseSongFile(file string) (*game.Song, error) {
	data, err := os.ReadFile(file)
	if nil != err {
		return nil, err
	}

	var sf songFile
	if err := yaml.Unmarshal(data, &sf); nil != err {
		return nil, err
	}

	song := &game.Song{Title: sf.Title, Artist: sf.Artist, BPM: sf.BPM, Events: []game.SongEvent{}}
	for i, n := range sf.Notes {
		if nil == n.Time {
			return nil, fmt.Errorf("note %d has no time", i)
		}
		key, err := noteKey(n)
		if nil != err {
			return nil, fmt.Errorf("note %d: %w", i, err)
		}
		song.Events = append(song.Events, game.SongEvent{Key: key, HitTime: *n.Time, Hold: n.Hold})
	}
	return song, nil
}

func noteKey(n songNote) (game.NoteKey, error) {
	if n.Key != "" {
		if k, err := game.ParseNoteKey(n.Key); nil == err {
			return k, nil
		} else if nil == n.Lane {
			return 0, err
		}
	}
	if nil == n.Lane {
		return 0, fmt.Errorf("no key or lane")
	}
	k, ok := game.KeyFromLane(*n.Lane)
	if !ok {
		return 0, fmt.Errorf("lane %d out of range", *n.Lane)
	}
	return k, nil
}
