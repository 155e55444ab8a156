package parser

import (
	"os"

	"github.com/rs/zerolog/log"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"git.lost.host/meutraa/pianofall/internal/game"
)

// pitchClasses maps a MIDI pitch class to its lane; sharps have none.
var pitchClasses = map[uint8]game.NoteKey{
	0: game.C,
	2: game.D,
	4: game.E,
	5: game.F,
	7: game.G,
	9: game.A,
}

// parseMIDI turns every note-on of a Standard MIDI File into an event in
// the lane of its pitch class, whatever the octave. The first tempo event
// sets the song BPM.
func (p *DefaultParser) parseMIDI(file string) (*game.Song, error) {
	f, err := os.Open(file)
	if nil != err {
		return nil, err
	}
	defer f.Close()

	song := &game.Song{Events: []game.SongEvent{}}
	skipped := 0
	err = smf.ReadTracksFrom(f).Do(func(te smf.TrackEvent) {
		var bpm float64
		if te.Message.GetMetaTempo(&bpm) {
			if song.BPM == 0 {
				song.BPM = bpm
			}
			return
		}
		var title string
		if te.Message.GetMetaTrackName(&title) {
			if song.Title == "" {
				song.Title = title
			}
			return
		}

		var ch, key, vel uint8
		if !midi.Message(te.Message).GetNoteStart(&ch, &key, &vel) {
			return
		}
		k, ok := pitchClasses[key%12]
		if !ok {
			skipped++
			return
		}
		song.Events = append(song.Events, game.SongEvent{
			Key:     k,
			HitTime: float64(te.AbsMicroSeconds) / 1e6,
		})
	}).Error()
	if nil != err {
		return nil, err
	}

	if song.BPM == 0 {
		song.BPM = p.DefaultBPM
		if song.BPM == 0 {
			song.BPM = 120
		}
	}
	if skipped > 0 {
		log.Debug().Str("file", file).Int("skipped", skipped).Msg("dropped notes without a lane")
	}
	song.Events = song.Sorted()
	return song, nil
}
