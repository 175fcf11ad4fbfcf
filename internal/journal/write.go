package journal

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/roach88/liz/internal/shortcut"
)

// Outcome is the result of one execution attempt.
type Outcome string

const (
	OutcomeOK   Outcome = "OK"
	OutcomeFail Outcome = "FAIL"
)

// Entry is one journal row.
type Entry struct {
	ID         string        `json:"id"`
	Seq        int64         `json:"seq"`
	ShortcutID shortcut.ID   `json:"shortcut_id"`
	Notation   string        `json:"notation"`
	Outcome    Outcome       `json:"outcome"`
	Message    string        `json:"message,omitempty"`
	Duration   time.Duration `json:"duration_ns"`
	At         time.Time     `json:"at"`
}

// Record appends e to the journal.
//
// An empty e.ID is filled with a fresh UUIDv7. Uses ON CONFLICT(id) DO NOTHING,
// so recording the same entry twice is harmless.
func (j *Journal) Record(ctx context.Context, e Entry) error {
	if e.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("record execution: %w", err)
		}
		e.ID = id.String()
	}
	if _, err := parseOutcome(string(e.Outcome)); err != nil {
		return fmt.Errorf("record execution: %w", err)
	}

	_, err := j.db.ExecContext(ctx, `
		INSERT INTO executions
		(id, seq, shortcut_id, notation, outcome, message, duration_ms, executed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		e.ID,
		e.Seq,
		e.ShortcutID.String(),
		e.Notation,
		string(e.Outcome),
		e.Message,
		e.Duration.Milliseconds(),
		marshalTime(e.At),
	)
	if err != nil {
		return fmt.Errorf("record execution: %w", err)
	}
	return nil
}
