package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// initLogging sends the global logger to a file; the terminal belongs to
// the game.
func initLogging(path, level string) (func(), error) {
	lvl, err := zerolog.ParseLevel(level)
	if nil != err {
		return nil, err
	}
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if nil != err {
		return nil, err
	}

	consoleWriter := zerolog.ConsoleWriter{
		Out:        file,
		TimeFormat: time.TimeOnly,
		NoColor:    true,
	}
	log.Logger = zerolog.New(consoleWriter).Level(lvl).With().Timestamp().Int("pid", os.Getpid()).Logger()
	return func() { file.Close() }, nil
}
