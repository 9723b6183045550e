// Package membership derives which bricks reference which components.
//
// Membership is never stored on a save.Document: a component's brick list
// is always recomputed by scanning bricks in order, so the list written to
// the component table and the list checked after decoding come from the
// same derivation.
package membership

import (
	"fmt"
	"slices"

	"github.com/arloliu/brs/errs"
	"github.com/arloliu/brs/internal/hash"
	"github.com/arloliu/brs/save"
)

type entry struct {
	name   string
	bricks []uint32
}

// Tracker maps component names to ascending brick index lists.
//
// Names are keyed by their xxHash64 ID; entries that share an ID are
// chained and told apart by name.
type Tracker struct {
	entries map[uint64][]*entry
	count   int
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{
		entries: make(map[uint64][]*entry),
	}
}

// Derive scans bricks in order and records every component each brick references.
func Derive(bricks []save.Brick) *Tracker {
	t := NewTracker()
	for i := range bricks {
		for name := range bricks[i].Components {
			t.TrackBrick(name, uint32(i)) //nolint:gosec
		}
	}

	return t
}

func (t *Tracker) lookup(name string) *entry {
	for _, e := range t.entries[hash.ID(name)] {
		if e.name == name {
			return e
		}
	}

	return nil
}

func (t *Tracker) add(name string) *entry {
	id := hash.ID(name)
	e := &entry{name: name}
	t.entries[id] = append(t.entries[id], e)
	t.count++

	return e
}

// TrackComponent registers a component name without any bricks.
//
// Returns errs.ErrDuplicateComponent if the name was already registered.
func (t *Tracker) TrackComponent(name string) error {
	if t.lookup(name) != nil {
		return fmt.Errorf("%w: %q", errs.ErrDuplicateComponent, name)
	}
	t.add(name)

	return nil
}

// TrackBrick records that brick index references the named component.
// Indices must be tracked in ascending order per name.
func (t *Tracker) TrackBrick(name string, index uint32) {
	e := t.lookup(name)
	if e == nil {
		e = t.add(name)
	}
	e.bricks = append(e.bricks, index)
}

// Bricks returns the brick indices referencing name, in ascending order.
// It returns nil for names with no bricks.
func (t *Tracker) Bricks(name string) []uint32 {
	if e := t.lookup(name); e != nil {
		return e.bricks
	}

	return nil
}

// Names returns all tracked component names in ascending order.
func (t *Tracker) Names() []string {
	names := make([]string, 0, t.count)
	for _, chain := range t.entries {
		for _, e := range chain {
			names = append(names, e.name)
		}
	}
	slices.Sort(names)

	return names
}

// Count returns the number of tracked component names.
func (t *Tracker) Count() int {
	return t.count
}

// Equal reports whether name has exactly the given brick list in t.
func (t *Tracker) Equal(name string, bricks []uint32) bool {
	return slices.Equal(t.Bricks(name), bricks)
}
