package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/roach88/liz/internal/compiler"
	"github.com/roach88/liz/internal/inject"
	"github.com/roach88/liz/internal/journal"
	"github.com/roach88/liz/internal/store"
)

// execute resolves, compiles and plays one shortcut.
//
// The hit counter moves only after the injector reports success; every
// earlier exit leaves the store untouched.
func (e *Engine) execute(ctx context.Context, r Execute) Response {
	sc, found := e.store.Get(r.ID, store.ScopeActive)
	if !found {
		return bug(unknownID("execute", r.ID.String()).Error())
	}

	seq := compiler.Compile(sc.Shortcut, e.keymap)
	stamp := e.nextSeq(ctx)
	slog.Info("executing shortcut",
		"id", sc.ID,
		"seq", stamp,
		"shortcut", sc.Format(e.rhythm.ShortcutPrintFmt),
		"events", len(seq),
	)

	start := time.Now()
	err := e.injector.Inject(ctx, seq, e.rhythm.Interval())
	e.record(ctx, journal.Entry{
		Seq:        stamp,
		ShortcutID: sc.ID,
		Notation:   sc.Shortcut,
		Outcome:    outcomeOf(err),
		Message:    errorText(err),
		Duration:   time.Since(start),
		At:         start,
	})

	if err != nil {
		if !errors.Is(err, inject.ErrInjection) {
			err = fmt.Errorf("%w: %w", inject.ErrInjection, err)
		}
		return fail(err.Error())
	}

	if err := e.store.BumpHit(sc.ID); err != nil {
		return bug(err.Error())
	}
	e.store.Rank()
	return ok()
}

// nextSeq numbers the next execution. The first call continues after the
// highest seq already in the journal, so numbering survives restarts.
func (e *Engine) nextSeq(ctx context.Context) int64 {
	if !e.seqLoaded && e.journal != nil {
		last, err := e.journal.MaxSeq(context.WithoutCancel(ctx))
		if err != nil {
			slog.Warn("journal sequence unreadable, numbering from zero", "error", err)
		}
		e.lastSeq = last
	}
	e.seqLoaded = true
	e.lastSeq++
	return e.lastSeq
}

// record journals an execution. Journal failures are logged and never change
// the response.
func (e *Engine) record(ctx context.Context, entry journal.Entry) {
	if e.journal == nil {
		return
	}
	if err := e.journal.Record(context.WithoutCancel(ctx), entry); err != nil {
		slog.Warn("journal write failed", "seq", entry.Seq, "error", err)
	}
}

func outcomeOf(err error) journal.Outcome {
	if err != nil {
		return journal.OutcomeFail
	}
	return journal.OutcomeOK
}

func errorText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
