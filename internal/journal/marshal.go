package journal

import (
	"fmt"
	"time"

	"github.com/roach88/liz/internal/shortcut"
)

// Timestamps are stored as fixed-width RFC 3339 text in UTC so they sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func marshalTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func unmarshalTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("unmarshal time %q: %w", s, err)
	}
	return t, nil
}

func unmarshalShortcutID(s string) (shortcut.ID, error) {
	id, err := shortcut.ParseID(s)
	if err != nil {
		return shortcut.NilID, fmt.Errorf("unmarshal shortcut id: %w", err)
	}
	return id, nil
}

func parseOutcome(s string) (Outcome, error) {
	switch o := Outcome(s); o {
	case OutcomeOK, OutcomeFail:
		return o, nil
	default:
		return "", fmt.Errorf("unknown outcome %q", s)
	}
}
