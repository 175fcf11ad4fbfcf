package store

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/roach88/liz/internal/shortcut"
)

// Column names a sortable shortcut field.
type Column int

const (
	// ColumnNone sorts nothing. Unknown column names map here so that newer
	// callers asking for fields this version lacks get a no-op, not an error.
	ColumnNone Column = iota
	ColumnID
	ColumnHitNumber
	ColumnApplication
	ColumnDescription
)

var columnNames = map[string]Column{
	"id":          ColumnID,
	"hit_number":  ColumnHitNumber,
	"application": ColumnApplication,
	"description": ColumnDescription,
}

// ParseColumn maps a field name to a Column. Unknown names yield ColumnNone.
func ParseColumn(name string) Column {
	return columnNames[name]
}

// String returns the field name, or "none".
func (c Column) String() string {
	for name, col := range columnNames {
		if col == c {
			return name
		}
	}
	return "none"
}

type comparator func(a, b shortcut.Shortcut) int

var comparators = map[Column]comparator{
	ColumnID: func(a, b shortcut.Shortcut) int {
		return a.ID.Compare(b.ID)
	},
	ColumnHitNumber: func(a, b shortcut.Shortcut) int {
		return cmp.Compare(a.HitNumber, b.HitNumber)
	},
	ColumnApplication: func(a, b shortcut.Shortcut) int {
		return cmp.Compare(a.Application, b.Application)
	},
	ColumnDescription: func(a, b shortcut.Shortcut) int {
		return cmp.Compare(a.Description, b.Description)
	},
}

// SortBy stably sorts the active set by column. Equal elements keep their
// relative order, so sorting already-sorted data is a no-op. ColumnNone (and
// any column without a comparator) leaves the order untouched.
func (s *Store) SortBy(column Column, ascending bool) {
	compare, ok := comparators[column]
	if !ok {
		return
	}
	slices.SortStableFunc(s.active, func(a, b shortcut.Shortcut) int {
		if ascending {
			return compare(a, b)
		}
		return compare(b, a)
	})
}

// Rank applies the ranking policy: application ascending, then hit number
// descending. The second sort is stable and runs last, so it dominates; the
// application order survives only among shortcuts with equal hit numbers.
//
// The two calls must stay in this order.
func (s *Store) Rank() {
	s.SortBy(ColumnApplication, true)
	s.SortBy(ColumnHitNumber, false)
}

// ParseDirection maps "asc"/"desc" (or "" for ascending) to a bool.
func ParseDirection(s string) (ascending bool, err error) {
	switch s {
	case "", "asc", "ascending":
		return true, nil
	case "desc", "descending":
		return false, nil
	default:
		return false, fmt.Errorf("unknown sort direction %q: must be asc or desc", s)
	}
}
