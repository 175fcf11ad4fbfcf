package store

import (
	"fmt"
	"slices"

	"github.com/roach88/liz/internal/shortcut"
)

// Scope selects a partition of the store.
type Scope int

const (
	// ScopeActive is the set of live shortcuts.
	ScopeActive Scope = iota
	// ScopeDeleted is the archive.
	ScopeDeleted
)

// ParseScope maps a wire name to a Scope. "active" and "data" select the
// live set; "deleted" selects the archive.
func ParseScope(s string) (Scope, error) {
	switch s {
	case "", "active", "data":
		return ScopeActive, nil
	case "deleted":
		return ScopeDeleted, nil
	default:
		return ScopeActive, fmt.Errorf("unknown scope %q: must be active or deleted", s)
	}
}

// Store holds the active and deleted shortcut partitions.
type Store struct {
	active  []shortcut.Shortcut
	deleted []shortcut.Shortcut
}

// New creates an empty store.
func New() *Store {
	return &Store{
		active:  []shortcut.Shortcut{},
		deleted: []shortcut.Shortcut{},
	}
}

// AddAll appends shortcuts to the active set. With dedupe enabled, an
// incoming shortcut is dropped when its content key or ID matches an active
// shortcut or an earlier incoming one. Shortcuts already in the store are
// never removed.
func (s *Store) AddAll(shortcuts []shortcut.Shortcut, dedupe bool) {
	if dedupe {
		shortcuts = shortcut.DedupeAgainst(s.active, shortcuts)
	}
	s.active = append(s.active, shortcuts...)
}

// Get returns the shortcut with id from the given partition.
func (s *Store) Get(id shortcut.ID, scope Scope) (shortcut.Shortcut, bool) {
	list := s.active
	if scope == ScopeDeleted {
		list = s.deleted
	}
	for _, sc := range list {
		if sc.ID == id {
			return sc, true
		}
	}
	return shortcut.Shortcut{}, false
}

// Contains reports whether id is in the active set.
func (s *Store) Contains(id shortcut.ID) bool {
	_, ok := s.Get(id, ScopeActive)
	return ok
}

// Active returns a copy of the active set in its current order.
func (s *Store) Active() []shortcut.Shortcut {
	return slices.Clone(s.active)
}

// Deleted returns a copy of the archive.
func (s *Store) Deleted() []shortcut.Shortcut {
	return slices.Clone(s.deleted)
}

// Update overwrites the mutable fields of every active shortcut whose ID
// matches one of updates. The pre-update value of each applied shortcut is
// archived into Deleted.
//
// Updates are applied in order. One is returned unapplied, in input order,
// when its ID is not active or when its new content would duplicate another
// active shortcut.
func (s *Store) Update(updates []shortcut.Shortcut) []shortcut.Shortcut {
	unmatched := []shortcut.Shortcut{}
	var archived []shortcut.Shortcut

	for _, u := range updates {
		i := s.indexOf(u.ID)
		if i < 0 {
			unmatched = append(unmatched, u)
			continue
		}
		next := s.active[i]
		next.UpdateFrom(u)
		if s.keyTaken(next.Key(), i) {
			unmatched = append(unmatched, u)
			continue
		}
		archived = append(archived, s.active[i])
		s.active[i] = next
	}

	s.deleted = append(s.deleted, archived...)
	return unmatched
}

// Delete moves every active shortcut whose ID is in ids into Deleted.
// IDs that are not active are ignored. Returns the IDs actually moved,
// in active-set order.
func (s *Store) Delete(ids []shortcut.ID) []shortcut.ID {
	want := make(map[shortcut.ID]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}

	moved := []shortcut.ID{}
	kept := s.active[:0]
	for _, sc := range s.active {
		if _, ok := want[sc.ID]; ok {
			s.deleted = append(s.deleted, sc)
			moved = append(moved, sc.ID)
			continue
		}
		kept = append(kept, sc)
	}
	s.active = kept

	return moved
}

// ClearDeleted empties the archive.
func (s *Store) ClearDeleted() {
	s.deleted = []shortcut.Shortcut{}
}

// BumpHit increments the hit number of the active shortcut with id.
// Returns ErrNotFound if id is not active.
func (s *Store) BumpHit(id shortcut.ID) error {
	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("bump hit %s: %w", id, ErrNotFound)
	}
	s.active[i].HitNumber++
	return nil
}

// Len returns the sizes of the active and deleted partitions.
func (s *Store) Len() (active, deleted int) {
	return len(s.active), len(s.deleted)
}

// keyTaken reports whether an active shortcut other than the one at skip
// has content key k.
func (s *Store) keyTaken(k shortcut.Key, skip int) bool {
	for i, sc := range s.active {
		if i != skip && sc.Key() == k {
			return true
		}
	}
	return false
}

func (s *Store) indexOf(id shortcut.ID) int {
	return slices.IndexFunc(s.active, func(sc shortcut.Shortcut) bool {
		return sc.ID == id
	})
}
