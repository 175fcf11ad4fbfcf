package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/roach88/liz/internal/config"
	"github.com/roach88/liz/internal/engine"
	"github.com/roach88/liz/internal/inject"
	"github.com/roach88/liz/internal/journal"
)

// Runtime is a started engine plus the resources it owns.
type Runtime struct {
	Rhythm     config.Rhythm
	ConfigPath string
	Engine     *engine.Engine
	journal    *journal.Journal
}

// runtimeOptions selects backends when opening a Runtime.
type runtimeOptions struct {
	// DryRun logs keystrokes instead of sending them.
	DryRun bool
	// Keyboard overrides the configured backend (tests).
	Keyboard inject.Keyboard
}

// loadRhythm resolves the configuration named by the global flags.
func loadRhythm(opts *RootOptions) (*config.Rhythm, string, error) {
	rhythm, path, err := config.Load(config.LoadOptions{
		ConfigFile: opts.ConfigFile,
		DataDir:    opts.DataDir,
	})
	if err != nil {
		return nil, "", WrapExitError(ExitCommandError, "failed to load config", err)
	}
	return rhythm, path, nil
}

// openRuntime loads config and state and starts an engine.
//
// The engine runs on a context detached from ctx so shutdown requests can
// still be answered after ctx is cancelled. Callers must Close the Runtime.
func openRuntime(ctx context.Context, opts *RootOptions, ro runtimeOptions) (*Runtime, error) {
	rhythm, path, err := loadRhythm(opts)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(rhythm.LizPath, 0o755); err != nil {
		return nil, WrapExitError(ExitFailure, "failed to create data directory", err)
	}

	s, km := engine.LoadState(*rhythm)
	engineOpts := []engine.Option{engine.WithStore(s), engine.WithKeymap(km)}

	rt := &Runtime{Rhythm: *rhythm, ConfigPath: path}
	if rhythm.JournalPath != "" {
		j, err := journal.Open(rhythm.JournalPath)
		if err != nil {
			slog.Warn("journal unavailable, executions will not be recorded", "path", rhythm.JournalPath, "error", err)
		} else {
			rt.journal = j
			engineOpts = append(engineOpts, engine.WithJournal(j))
		}
	}

	kb, err := newKeyboard(*rhythm, ro)
	if err != nil {
		_ = rt.journal.Close()
		return nil, err
	}

	rt.Engine = engine.New(*rhythm, inject.NewPlayer(kb), engineOpts...)
	rt.Engine.Start(context.WithoutCancel(ctx))
	slog.Debug("engine started", "config", path, "data_dir", rhythm.LizPath)
	return rt, nil
}

// newKeyboard picks the keystroke backend.
func newKeyboard(rhythm config.Rhythm, ro runtimeOptions) (inject.Keyboard, error) {
	switch {
	case ro.Keyboard != nil:
		return ro.Keyboard, nil
	case ro.DryRun:
		return inject.NewLogKeyboard(nil), nil
	}

	switch rhythm.Keyboard {
	case config.KeyboardLog:
		return inject.NewLogKeyboard(nil), nil
	case config.KeyboardYdotool:
		return inject.NewExecKeyboard(rhythm.KeyboardProgram, nil), nil
	default:
		return nil, NewExitError(ExitCommandError, fmt.Sprintf("unknown keyboard backend %q", rhythm.Keyboard))
	}
}

// Close stops the engine and closes the journal.
func (rt *Runtime) Close() {
	rt.Engine.Close()
	if err := rt.journal.Close(); err != nil {
		slog.Error("error closing journal", "error", err)
	}
}

// shutdown clears the trash and persists the store, then closes.
func (rt *Runtime) shutdown() error {
	defer rt.Close()

	ctx := context.Background()
	rt.Engine.Submit(ctx, engine.ClearDeleted{})
	resp := rt.Engine.Submit(ctx, engine.Persist{})
	if resp.Code != engine.OK {
		slog.Error("persist on shutdown failed", "code", resp.Code, "results", resp.Results)
		return responseError("persist", resp)
	}
	slog.Info("store persisted", "path", rt.Rhythm.MusicSheetPath)
	return nil
}
