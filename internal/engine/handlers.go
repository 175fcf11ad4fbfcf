package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/roach88/liz/internal/shortcut"
	"github.com/roach88/liz/internal/store"
)

// apply routes a request to its handler. Runs on the loop goroutine only.
func (e *Engine) apply(ctx context.Context, req Request) Response {
	switch r := req.(type) {
	case List:
		return e.list(r)
	case Detail:
		return e.detail(r)
	case Create:
		return e.create(r)
	case Update:
		return e.update(r)
	case Delete:
		return e.delete(r)
	case Import:
		return e.importSheets(ctx, r.Path, false)
	case Export:
		return e.export(r)
	case Execute:
		return e.execute(ctx, r)
	case Persist:
		return e.persist()
	case Info:
		return ok(e.rhythm.Pairs()...)
	case NewID:
		return ok(shortcut.NewID().String())
	case Reload:
		path := r.Path
		if path == "" {
			path = e.rhythm.UserSheetsPath
		}
		return e.importSheets(ctx, path, true)
	case ClearDeleted:
		e.store.ClearDeleted()
		return ok()
	case Sort:
		e.store.SortBy(r.Column, r.Ascending)
		return ok()
	case History:
		return e.history(ctx, r)
	default:
		return bugf("unhandled request %T", req)
	}
}

// row is one list entry on the wire.
type row struct {
	ID string `json:"id"`
	SC string `json:"sc"`
}

func (e *Engine) list(r List) Response {
	rows := []string{}
	for _, sc := range e.store.Active() {
		formatted := sc.Format(e.rhythm.ShortcutPrintFmt)
		if r.Query != "" && !fuzzy.MatchNormalizedFold(r.Query, formatted) {
			continue
		}
		data, err := marshalJSON(row{ID: sc.ID.String(), SC: formatted})
		if err != nil {
			return bugf("encode row: %v", err)
		}
		rows = append(rows, data)
	}
	return ok(rows...)
}

func (e *Engine) detail(r Detail) Response {
	sc, found := e.store.Get(r.ID, r.Scope)
	if !found {
		return bug(unknownID("detail", r.ID.String()).Error())
	}
	data, err := marshalJSON(sc)
	if err != nil {
		return bugf("encode shortcut: %v", err)
	}
	return ok(data)
}

// create adds shortcuts and reports the IDs that were actually added.
// Records that duplicate an existing shortcut (by content or ID) are dropped.
func (e *Engine) create(r Create) Response {
	existing := make(map[shortcut.ID]struct{})
	for _, sc := range e.store.Active() {
		existing[sc.ID] = struct{}{}
	}

	e.store.AddAll(r.Shortcuts, true)
	e.store.Rank()

	created := []string{}
	for _, sc := range r.Shortcuts {
		if _, seen := existing[sc.ID]; seen {
			continue
		}
		if got, found := e.store.Get(sc.ID, store.ScopeActive); found && got == sc {
			created = append(created, sc.ID.String())
			existing[sc.ID] = struct{}{}
		}
	}
	return ok(created...)
}

// update applies matched updates and reports rejected ones as FAIL: an
// unknown ID, or new content that duplicates another active shortcut.
func (e *Engine) update(r Update) Response {
	unmatched := e.store.Update(r.Shortcuts)
	e.store.Rank()
	if len(unmatched) == 0 {
		return ok()
	}

	results := make([]string, 0, len(unmatched))
	for _, sc := range unmatched {
		data, err := marshalJSON(sc)
		if err != nil {
			return bugf("encode shortcut: %v", err)
		}
		results = append(results, data)
	}
	return fail(results...)
}

// delete archives every requested ID, or nothing if any ID is not active.
func (e *Engine) delete(r Delete) Response {
	for _, id := range r.IDs {
		if !e.store.Contains(id) {
			return bug(unknownID("delete", id.String()).Error())
		}
	}

	moved := e.store.Delete(r.IDs)
	results := make([]string, len(moved))
	for i, id := range moved {
		results[i] = id.String()
	}
	return ok(results...)
}

// importSheets merges sheets from path into the active set.
func (e *Engine) importSheets(ctx context.Context, path string, reload bool) Response {
	list, err := store.LoadSheets(ctx, path)
	if err != nil {
		return fail(storeErrorMessage(err)...)
	}

	before, _ := e.store.Len()
	e.store.AddAll(list, true)
	e.store.Rank()
	after, _ := e.store.Len()

	slog.Info("sheets imported", "path", path, "records", len(list), "added", after-before)
	if reload {
		return ok("Reload Done")
	}
	return ok(fmt.Sprintf("imported %d", after-before))
}

func (e *Engine) export(r Export) Response {
	if err := store.WriteSheet(r.Path, e.store.Active()); err != nil {
		return fail(storeErrorMessage(err)...)
	}
	return ok(r.Path)
}

func (e *Engine) persist() Response {
	path := e.rhythm.MusicSheetPath
	if err := e.store.ExportJSON(path); err != nil {
		return fail(storeErrorMessage(err)...)
	}
	slog.Debug("store persisted", "path", path)
	return ok(path)
}

func (e *Engine) history(ctx context.Context, r History) Response {
	if e.journal == nil {
		return fail("journal disabled")
	}
	entries, err := e.journal.Recent(ctx, r.Limit)
	if err != nil {
		return fail(err.Error())
	}

	results := make([]string, 0, len(entries))
	for _, entry := range entries {
		data, err := marshalJSON(entry)
		if err != nil {
			return bugf("encode journal entry: %v", err)
		}
		results = append(results, data)
	}
	return ok(results...)
}

// storeErrorMessage renders a store error as response results.
func storeErrorMessage(err error) []string {
	var ioErr *store.IOError
	var fmtErr *store.FormatError
	switch {
	case errors.As(err, &fmtErr):
		return []string{"bad format", fmtErr.Path, fmtErr.Err.Error()}
	case errors.As(err, &ioErr):
		return []string{"i/o error", ioErr.Path, ioErr.Err.Error()}
	default:
		return []string{err.Error()}
	}
}

// marshalJSON encodes v without HTML escaping so display templates like
// "<b>#description</b>" survive verbatim.
func marshalJSON(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	// Encoder adds a trailing newline
	return strings.TrimSpace(buf.String()), nil
}
