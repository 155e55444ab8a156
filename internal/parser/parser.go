package parser

import (
	"errors"

	"git.lost.host/meutraa/pianofall/internal/game"
)

var ErrUnsupportedFormat = errors.New("unsupported song format")

type Parser interface {
	Parse(file string) (*game.Song, error)
}
