package parser

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"git.lost.host/meutraa/pianofall/internal/game"
)

// DefaultParser reads song files by extension: .yml, .yaml and .json song
// descriptions, and .mid/.midi Standard MIDI Files.
type DefaultParser struct {
	// BPM assumed for MIDI files without a tempo event
	DefaultBPM float64
}

func (p *DefaultParser) Parse(file string) (*game.Song, error) {
	var song *game.Song
	var err error

	switch strings.ToLower(filepath.Ext(file)) {
	case ".yml", ".yaml", ".json":
		song, err = p.parseSongFile(file)
	case ".mid", ".midi":
		song, err = p.parseMIDI(file)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, file)
	}
	if nil != err {
		return nil, fmt.Errorf("unable to parse %s: %w", file, err)
	}

	if song.Title == "" {
		song.Title = strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	}
	if err := song.Validate(); nil != err {
		return nil, err
	}
	return song, nil
}

// ParseDir parses every file directly inside dir with p, sorted by title.
// Files that fail to parse are skipped with a warning.
func ParseDir(p Parser, dir string) ([]*game.Song, error) {
	entries, err := os.ReadDir(dir)
	if nil != err {
		return nil, err
	}

	songs := []*game.Song{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		file := filepath.Join(dir, entry.Name())
		song, err := p.Parse(file)
		if nil != err {
			log.Warn().Err(err).Str("file", file).Msg("skipping song")
			continue
		}
		songs = append(songs, song)
	}

	sort.SliceStable(songs, func(i, j int) bool {
		return songs[i].Title < songs[j].Title
	})
	return songs, nil
}
