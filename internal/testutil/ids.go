package testutil

import (
	"encoding/binary"

	"github.com/roach88/liz/internal/shortcut"
)

// ID returns a deterministic shortcut ID whose low 8 bytes encode n.
//
// ID(1) is "00000000-0000-0000-0000-000000000001", ID(2) ends in 2, and so
// on. IDs compare in the same order as their n values.
func ID(n uint64) shortcut.ID {
	var id shortcut.ID
	binary.BigEndian.PutUint64(id[8:], n)
	return id
}

// Shortcut builds a shortcut with ID(n) and the given notation and labels.
// Comment is left empty and HitNumber is zero.
func Shortcut(n uint64, notation, application, description string) shortcut.Shortcut {
	return shortcut.Shortcut{
		ID:          ID(n),
		Shortcut:    notation,
		Application: application,
		Description: description,
	}
}
