package journal

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/roach88/liz/internal/shortcut"
)

// Stat aggregates the journal for one shortcut.
type Stat struct {
	ShortcutID shortcut.ID `json:"shortcut_id"`
	OK         int64       `json:"ok"`
	Fail       int64       `json:"fail"`
	LastAt     time.Time   `json:"last_at"`
}

// Recent returns the newest entries first, at most limit of them.
// A non-positive limit returns every entry.
//
// Returns an empty slice (not nil) if the journal is empty.
func (j *Journal) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}

	rows, err := j.db.QueryContext(ctx, `
		SELECT id, seq, shortcut_id, notation, outcome, message, duration_ms, executed_at
		FROM executions
		ORDER BY seq DESC, id COLLATE BINARY DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query executions: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate executions: %w", err)
	}
	return entries, nil
}

// Stats returns per-shortcut success and failure counts, most recently
// executed first.
func (j *Journal) Stats(ctx context.Context) ([]Stat, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT shortcut_id,
		       SUM(CASE WHEN outcome = 'OK' THEN 1 ELSE 0 END),
		       SUM(CASE WHEN outcome = 'FAIL' THEN 1 ELSE 0 END),
		       MAX(executed_at)
		FROM executions
		GROUP BY shortcut_id
		ORDER BY MAX(seq) DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("query stats: %w", err)
	}
	defer rows.Close()

	stats := []Stat{}
	for rows.Next() {
		var (
			st     Stat
			rawID  string
			lastAt string
		)
		if err := rows.Scan(&rawID, &st.OK, &st.Fail, &lastAt); err != nil {
			return nil, fmt.Errorf("scan stat: %w", err)
		}
		if st.ShortcutID, err = unmarshalShortcutID(rawID); err != nil {
			return nil, err
		}
		if st.LastAt, err = unmarshalTime(lastAt); err != nil {
			return nil, err
		}
		stats = append(stats, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stats: %w", err)
	}
	return stats, nil
}

// MaxSeq returns the highest recorded sequence number, or 0 for an empty journal.
// The dispatcher continues numbering from here.
func (j *Journal) MaxSeq(ctx context.Context) (int64, error) {
	var seq sql.NullInt64
	if err := j.db.QueryRowContext(ctx, "SELECT MAX(seq) FROM executions").Scan(&seq); err != nil {
		return 0, fmt.Errorf("query max seq: %w", err)
	}
	return seq.Int64, nil
}

func scanEntry(rows *sql.Rows) (Entry, error) {
	var (
		e          Entry
		rawID      string
		outcome    string
		durationMS int64
		at         string
	)
	if err := rows.Scan(&e.ID, &e.Seq, &rawID, &e.Notation, &outcome, &e.Message, &durationMS, &at); err != nil {
		return Entry{}, fmt.Errorf("scan execution: %w", err)
	}

	var err error
	if e.ShortcutID, err = unmarshalShortcutID(rawID); err != nil {
		return Entry{}, err
	}
	if e.Outcome, err = parseOutcome(outcome); err != nil {
		return Entry{}, err
	}
	if e.At, err = unmarshalTime(at); err != nil {
		return Entry{}, err
	}
	e.Duration = time.Duration(durationMS) * time.Millisecond
	return e, nil
}
