package engine

import (
	"slices"

	"git.lost.host/meutraa/pianofall/internal/game"
)

type EntityID uint64

type Kind uint8

const (
	KindNote Kind = iota
	KindKey
	KindLabel
)

// KeyVisual is an on-screen piano key.
type KeyVisual struct {
	Piano   game.PianoKey
	Pressed bool
}

// Label is a numeric readout for the UI.
type Label struct {
	Name  string
	Value float64
}

// Entity is a tagged variant; exactly one of Note, Key and Label is set,
// matching Kind. Phase is the phase that owns it.
type Entity struct {
	ID    EntityID
	Phase Phase
	Kind  Kind
	Note  *game.LiveNote
	Key   *KeyVisual
	Label *Label
}

// Arena owns every live entity, kept in ascending ID order, which is also
// spawn order.
type Arena struct {
	next     EntityID
	entities []Entity
}

func (a *Arena) Spawn(e Entity) EntityID {
	a.next++
	e.ID = a.next
	a.entities = append(a.entities, e)
	return e.ID
}

func (a *Arena) index(id EntityID) (int, bool) {
	return slices.BinarySearchFunc(a.entities, id, func(e Entity, id EntityID) int {
		switch {
		case e.ID < id:
			return -1
		case e.ID > id:
			return 1
		}
		return 0
	})
}

func (a *Arena) Get(id EntityID) (*Entity, bool) {
	i, ok := a.index(id)
	if !ok {
		return nil, false
	}
	return &a.entities[i], true
}

func (a *Arena) Despawn(id EntityID) bool {
	i, ok := a.index(id)
	if !ok {
		return false
	}
	a.entities = slices.Delete(a.entities, i, i+1)
	return true
}

// DespawnPhase removes everything owned by p and returns how many went.
func (a *Arena) DespawnPhase(p Phase) int {
	n := len(a.entities)
	a.entities = slices.DeleteFunc(a.entities, func(e Entity) bool {
		return e.Phase == p
	})
	return n - len(a.entities)
}

func (a *Arena) Len() int {
	return len(a.entities)
}

func (a *Arena) EachNote(fn func(EntityID, *game.LiveNote)) {
	for _, e := range a.entities {
		if e.Kind == KindNote {
			fn(e.ID, e.Note)
		}
	}
}

func (a *Arena) NoteCount() int {
	n := 0
	for _, e := range a.entities {
		if e.Kind == KindNote {
			n++
		}
	}
	return n
}

func (a *Arena) EachKey(fn func(*KeyVisual)) {
	for _, e := range a.entities {
		if e.Kind == KindKey {
			fn(e.Key)
		}
	}
}

func (a *Arena) EachLabel(fn func(*Label)) {
	for _, e := range a.entities {
		if e.Kind == KindLabel {
			fn(e.Label)
		}
	}
}

func (a *Arena) Label(name string) (*Label, bool) {
	for _, e := range a.entities {
		if e.Kind == KindLabel && e.Label.Name == name {
			return e.Label, true
		}
	}
	return nil, false
}
