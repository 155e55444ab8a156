package testdata

import (
	"gopkg.in/yaml.v3"

	"git.lost.host/meutraa/pianofall/internal/game"
)

func GetSong() (*game.Song, error) {
	var song game.Song
	if err := yaml.Unmarshal([]byte(data), &song); nil != err {
		return nil, err
	}
	if err := song.Validate(); nil != err {
		return nil, err
	}
	return &song, nil
}

// Keys are lane indices: C=0 D=1 E=2 F=3 G=4 A=5.
const data = `
title: Ode to Joy
artist: Beethoven
bpm: 120
events:
  - {key: 2, hittime: 1.0}
  - {key: 2, hittime: 1.5}
  - {key: 3, hittime: 2.0}
  - {key: 4, hittime: 2.5}
  - {key: 4, hittime: 3.0}
  - {key: 3, hittime: 3.5}
  - {key: 2, hittime: 4.0}
  - {key: 1, hittime: 4.5}
  - {key: 0, hittime: 5.0}
  - {key: 0, hittime: 5.5}
  - {key: 1, hittime: 6.0}
  - {key: 2, hittime: 6.5}
  - {key: 2, hittime: 7.25}
  - {key: 1, hittime: 7.5}
  - {key: 1, hittime: 8.0}
`
