package score

import (
	"crypto/sha256"
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"git.lost.host/meutraa/pianofall/internal/game"
)

var ErrNotFound = errors.New("replay not found")

type DefaultStore struct {
	Path string
	db   *sql.DB
}

type PressesCompact struct {
	Key   rune
	Ticks []int
}

// compactPresses groups presses by key, keys ascending.
func compactPresses(presses []Press) []PressesCompact {
	byKey := map[rune]int{}
	ps := []PressesCompact{}
	for _, p := range presses {
		i, ok := byKey[p.Key]
		if !ok {
			i = len(ps)
			byKey[p.Key] = i
			ps = append(ps, PressesCompact{Key: p.Key, Ticks: []int{}})
		}
		ps[i].Ticks = append(ps[i].Ticks, p.Tick)
	}
	sort.Slice(ps, func(i, j int) bool { return ps[i].Key < ps[j].Key })
	return ps
}

// uncompactPresses orders presses by tick, then by key.
func uncompactPresses(presses []PressesCompact) []Press {
	ps := []Press{}
	for _, p := range presses {
		for _, t := range p.Ticks {
			ps = append(ps, Press{Tick: t, Key: p.Key})
		}
	}
	sort.SliceStable(ps, func(i, j int) bool {
		if ps[i].Tick != ps[j].Tick {
			return ps[i].Tick < ps[j].Tick
		}
		return ps[i].Key < ps[j].Key
	})
	return ps
}

func (s *DefaultStore) Init() error {
	path := s.Path
	if path == "" {
		path = "./replays.db"
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return fmt.Errorf("unable to open %s: %w", path, err)
	}

	initStatement := `
	create table if not exists replays
	  (
		  id text not null primary key,
		  sum text,
		  title text,
		  recorded integer,
		  score integer,
		  max_combo integer,
		  top real,
		  hit_zone real,
		  bottom real,
		  look_ahead real,
		  hit_window real,
		  grace real,
		  countdown real,
		  keys text,
		  deltas blob,
		  presses blob
	  );
	`
	_, err = db.Exec(initStatement)
	if nil != err {
		db.Close()
		return fmt.Errorf("unable to create replay table: %w", err)
	}

	s.db = db
	return nil
}

func (s *DefaultStore) Deinit() {
	if nil != s.db {
		s.db.Close()
	}
}

// HashSong identifies a song by its content.
func HashSong(song *game.Song) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s\x00%s\x00%v\x00", song.Title, song.Artist, song.BPM)
	for _, e := range song.Events {
		fmt.Fprintf(h, "%d:%v:%v;", e.Key, e.HitTime, e.Hold)
	}
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}

func (s *DefaultStore) Save(song *game.Song, rec *Recording, session game.Session) (string, error) {
	deltas, err := json.Marshal(rec.Deltas)
	if nil != err {
		return "", fmt.Errorf("unable to marshal deltas: %w", err)
	}
	presses, err := json.Marshal(compactPresses(rec.Presses))
	if nil != err {
		return "", fmt.Errorf("unable to marshal presses: %w", err)
	}

	id := uuid.NewString()
	f := rec.Field
	_, err = s.db.Exec(
		`insert into replays(id, sum, title, recorded, score, max_combo,
		  top, hit_zone, bottom, look_ahead, hit_window, grace, countdown, keys,
		  deltas, presses) values(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, HashSong(song), song.Title, time.Now().UnixNano(), session.Score, session.MaxCombo,
		f.Top, f.HitZone, f.Bottom, f.LookAhead, f.HitWindow, f.Grace, f.Countdown, string(rec.Bindings[:]),
		deltas, presses,
	)
	if nil != err {
		return "", fmt.Errorf("unable to save replay: %w", err)
	}
	return id, nil
}

const selectHistory = `select id, sum, title, recorded, score, max_combo,
  top, hit_zone, bottom, look_ahead, hit_window, grace, countdown, keys,
  deltas, presses from replays`

func scanHistory(rows interface{ Scan(...any) error }) (*History, error) {
	var h History
	var recorded int64
	var keys string
	var deltas, presses []byte
	rec := &Recording{}
	f := &rec.Field
	err := rows.Scan(&h.ID, &h.Sum, &h.Title, &recorded, &h.Score, &h.MaxCombo,
		&f.Top, &f.HitZone, &f.Bottom, &f.LookAhead, &f.HitWindow, &f.Grace, &f.Countdown, &keys,
		&deltas, &presses)
	if nil != err {
		return nil, err
	}
	h.Recorded = time.Unix(0, recorded)

	if rec.Bindings, err = game.ParseBindings(keys); nil != err {
		return nil, fmt.Errorf("replay %s: %w", h.ID, err)
	}
	if err := json.Unmarshal(deltas, &rec.Deltas); nil != err {
		return nil, fmt.Errorf("unable to unmarshal deltas: %w", err)
	}
	var ps []PressesCompact
	if err := json.Unmarshal(presses, &ps); nil != err {
		return nil, fmt.Errorf("unable to unmarshal presses: %w", err)
	}
	rec.Presses = uncompactPresses(ps)
	h.Recording = rec
	return &h, nil
}

func (s *DefaultStore) Load(song *game.Song) []History {
	histories := []History{}
	rows, err := s.db.Query(selectHistory+" where sum = ? order by recorded", HashSong(song))
	if nil != err {
		log.Error().Err(err).Str("song", song.Title).Msg("unable to load replays")
		return histories
	}
	defer rows.Close()
	for rows.Next() {
		h, err := scanHistory(rows)
		if nil != err {
			log.Warn().Err(err).Msg("skipping unreadable replay")
			continue
		}
		histories = append(histories, *h)
	}
	return histories
}

func (s *DefaultStore) Get(id string) (*History, error) {
	h, err := scanHistory(s.db.QueryRow(selectHistory+" where id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return h, err
}
