package journal

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/roach88/liz/internal/testutil"
)

// createTestJournal opens a fresh journal in a temp dir.
func createTestJournal(t *testing.T) *Journal {
	t.Helper()
	path := filepath.Join(t.TempDir(), "journal.db")
	j, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { j.Close() })
	return j
}

var baseTime = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

// createTestEntry builds an entry for shortcut n at the given seq.
func createTestEntry(seq int64, n uint64, outcome Outcome) Entry {
	return Entry{
		Seq:        seq,
		ShortcutID: testutil.ID(n),
		Notation:   "ctrl+c",
		Outcome:    outcome,
		Duration:   40 * time.Millisecond,
		At:         baseTime.Add(time.Duration(seq) * time.Second),
	}
}
