package compiler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Keymap maps a lowercase key name ("meta", "pageup") to the platform key
// code the injection backend understands ("126", "104").
type Keymap map[string]string

// NewKeymap builds a keymap from arbitrary-case names. Names are lowercased
// and surrounding whitespace is dropped from names and codes; entries with an
// empty name or code are ignored.
func NewKeymap(entries map[string]string) Keymap {
	lower := cases.Lower(language.Und)
	km := make(Keymap, len(entries))
	for name, code := range entries {
		name = lower.String(strings.TrimSpace(name))
		code = strings.TrimSpace(code)
		if name == "" || code == "" {
			continue
		}
		km[name] = code
	}
	return km
}

// LoadKeymap reads a JSON object of key name -> key code from path.
//
// A missing file is not an error: an empty keymap is returned and a warning
// is logged, so Compile falls back to literal key identifiers. A file that
// exists but cannot be read or parsed returns an empty keymap together with
// the error; callers may log it and continue.
func LoadKeymap(path string) (Keymap, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Warn("keymap file not found, using literal key names", "path", path)
		return Keymap{}, nil
	}
	if err != nil {
		return Keymap{}, fmt.Errorf("read keymap %s: %w", path, err)
	}

	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return Keymap{}, fmt.Errorf("parse keymap %s: %w", path, err)
	}

	km := NewKeymap(raw)
	slog.Debug("keymap loaded", "path", path, "keys", len(km))
	return km, nil
}
