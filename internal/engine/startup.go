package engine

import (
	"errors"
	"io/fs"
	"log/slog"

	"github.com/roach88/liz/internal/compiler"
	"github.com/roach88/liz/internal/config"
	"github.com/roach88/liz/internal/store"
)

// LoadState reads the store file and keymap named by rhythm.
//
// Neither failure is fatal. An unreadable store file yields an empty store
// and a keymap that cannot be read yields an empty keymap; both are logged.
func LoadState(rhythm config.Rhythm) (*store.Store, compiler.Keymap) {
	s, err := store.ImportJSON(rhythm.MusicSheetPath)
	switch {
	case err == nil:
		active, deleted := s.Len()
		slog.Debug("store loaded", "path", rhythm.MusicSheetPath, "active", active, "deleted", deleted)
	case errors.Is(err, fs.ErrNotExist):
		slog.Info("no store file yet, starting empty", "path", rhythm.MusicSheetPath)
		s = store.New()
	default:
		slog.Warn("store file unreadable, starting empty", "path", rhythm.MusicSheetPath, "error", err)
		s = store.New()
	}

	km, err := compiler.LoadKeymap(rhythm.KeymapPath)
	if err != nil {
		slog.Warn("keymap unreadable, using literal key names", "error", err)
	}
	return s, km
}
