package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/roach88/liz/internal/shortcut"
)

// table is the on-disk layout of the store file.
type table struct {
	Deleted []shortcut.Shortcut `json:"deleted"`
	Data    []shortcut.Shortcut `json:"data"`
}

// ImportJSON reads a store file written by ExportJSON.
//
// Missing partitions decode as empty. The active set is deduplicated on load
// so a hand-edited file cannot break the store invariants.
func ImportJSON(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &IOError{Op: "read", Path: path, Err: err}
	}

	var t table
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, &FormatError{Path: path, Err: err}
	}

	s := New()
	s.AddAll(t.Data, true)
	if t.Deleted != nil {
		s.deleted = t.Deleted
	}
	return s, nil
}

// ExportJSON writes both partitions to path.
//
// The file is written to a temporary sibling first and renamed into place,
// so readers never observe a half-written store.
func (s *Store) ExportJSON(path string) error {
	data, err := json.MarshalIndent(table{Deleted: s.deleted, Data: s.active}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal store: %w", err)
	}
	return writeFileAtomic(path, data)
}

// writeFileAtomic replaces path with data via a temp file and rename.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // No-op after a successful rename

	if _, err := tmp.Write(bytes.TrimSpace(data)); err != nil {
		tmp.Close()
		return &IOError{Op: "write", Path: path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	if err := os.Rename(tmpName, path); err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	return nil
}
