package shortcut

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID is the 128-bit identity of a Shortcut.
//
// The text form is the hyphenated UUID layout
// ("0190c1d2-7b3a-7c4e-9f00-1a2b3c4d5e6f", 36 characters), which is what
// the store file and the command protocol carry.
type ID uuid.UUID

// NilID is the zero ID. It never identifies a stored shortcut.
var NilID ID

// NewID returns a fresh time-sortable ID (UUIDv7).
//
// Panics if the random source fails (should never happen in practice).
func NewID() ID {
	return ID(uuid.Must(uuid.NewV7()))
}

// ParseID parses the text form of an ID. Surrounding whitespace is ignored.
func ParseID(s string) (ID, error) {
	u, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return NilID, fmt.Errorf("parse id %q: %w", s, err)
	}
	return ID(u), nil
}

// String returns the canonical text form.
func (id ID) String() string {
	return uuid.UUID(id).String()
}

// IsZero reports whether id is NilID.
func (id ID) IsZero() bool {
	return id == NilID
}

// Compare orders IDs as unsigned 128-bit big-endian integers.
func (id ID) Compare(other ID) int {
	return bytes.Compare(id[:], other[:])
}

// MarshalText implements encoding.TextMarshaler.
func (id ID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
// An empty value leaves id untouched so that a default can survive decoding.
func (id *ID) UnmarshalText(text []byte) error {
	if len(bytes.TrimSpace(text)) == 0 {
		return nil
	}
	parsed, err := ParseID(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
