package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/roach88/liz/internal/compiler"
	"github.com/roach88/liz/internal/config"
	"github.com/roach88/liz/internal/inject"
	"github.com/roach88/liz/internal/journal"
	"github.com/roach88/liz/internal/store"
)

// Journal is the part of *journal.Journal the engine writes to.
type Journal interface {
	Record(ctx context.Context, e journal.Entry) error
	Recent(ctx context.Context, limit int) ([]journal.Entry, error)
	MaxSeq(ctx context.Context) (int64, error)
}

// Engine owns the shortcut store and serves requests one at a time.
//
// All store access happens on the loop goroutine started by Start; callers
// talk to it through Submit and Dispatch. A request therefore sees the store
// either entirely before or entirely after any other request, and an execute
// request blocks the queue for its whole playback.
//
// Thread-safety model:
//   - Submit(), Dispatch(), Close(): safe from any goroutine
//   - Start(): call once; later calls are ignored
type Engine struct {
	store    *store.Store
	keymap   compiler.Keymap
	rhythm   config.Rhythm
	injector inject.Injector
	journal  Journal

	// lastSeq is the seq of the latest journaled execution. Loop goroutine only.
	lastSeq   int64
	seqLoaded bool

	box       *mailbox
	startOnce sync.Once
	started   atomic.Bool
	done      chan struct{}
}

// Option configures an Engine.
type Option func(*Engine)

// WithStore sets the initial store. Default: empty.
func WithStore(s *store.Store) Option {
	return func(e *Engine) {
		e.store = s
	}
}

// WithKeymap sets the keymap used to compile notation. Default: empty.
func WithKeymap(km compiler.Keymap) Option {
	return func(e *Engine) {
		e.keymap = km
	}
}

// WithJournal enables execution journaling.
func WithJournal(j Journal) Option {
	return func(e *Engine) {
		e.journal = j
	}
}

// New creates an engine. The initial store is ranked immediately.
func New(rhythm config.Rhythm, injector inject.Injector, opts ...Option) *Engine {
	e := &Engine{
		rhythm:   rhythm,
		injector: injector,
		box:      newMailbox(),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.store == nil {
		e.store = store.New()
	}
	if e.keymap == nil {
		e.keymap = compiler.Keymap{}
	}
	e.store.Rank()
	return e
}

// Start launches the loop goroutine. The loop exits when ctx is cancelled
// or Close is called, after answering every request already queued.
func (e *Engine) Start(ctx context.Context) {
	e.startOnce.Do(func() {
		e.started.Store(true)
		go func() {
			defer close(e.done)
			e.run(ctx)
		}()
	})
}

// Close stops accepting requests and waits for the loop to finish.
// Safe to call more than once, and before Start.
func (e *Engine) Close() {
	e.box.Close()
	if e.started.Load() {
		<-e.done
	}
}

// Submit queues req and waits for its response.
//
// A closed engine answers BUG without running anything. If ctx ends while
// waiting the response is FAIL; the request may still run later.
func (e *Engine) Submit(ctx context.Context, req Request) Response {
	env := envelope{ctx: ctx, req: req, reply: make(chan Response, 1)}
	if !e.box.Enqueue(env) {
		slog.Warn("request rejected", "action", req.Action(), "reason", "engine not running")
		return bug("engine not running")
	}

	select {
	case resp := <-env.reply:
		return resp
	case <-ctx.Done():
		return fail(fmt.Sprintf("request cancelled: %v", ctx.Err()))
	}
}

// Dispatch decodes a wire command and submits it. Decode errors are BUG.
func (e *Engine) Dispatch(ctx context.Context, cmd Command) Response {
	req, err := Decode(cmd)
	if err != nil {
		slog.Warn("bad request", "action", cmd.Action, "error", err)
		return bug(err.Error())
	}
	return e.Submit(ctx, req)
}

func (e *Engine) run(ctx context.Context) {
	stop := ctx.Done()
	for {
		if env, ok := e.box.TryDequeue(); ok {
			env.reply <- e.handle(env)
			continue
		}

		select {
		case <-stop:
			// Stop intake; later iterations drain what is already queued.
			e.box.Close()
			stop = nil
		case _, open := <-e.box.Wait():
			if !open && e.box.Len() == 0 {
				return
			}
		}
	}
}

// handle runs one request, converting a panic into BUG.
func (e *Engine) handle(env envelope) (resp Response) {
	action := env.req.Action()
	defer func() {
		if r := recover(); r != nil {
			slog.Error("request panicked", "action", action, "panic", r)
			resp = bugf("internal error in %s: %v", action, r)
		}
	}()

	resp = e.apply(env.ctx, env.req)
	switch resp.Code {
	case FAIL:
		slog.Error("request failed", "action", action, "results", resp.Results)
	case BUG:
		slog.Warn("request rejected", "action", action, "results", resp.Results)
	default:
		slog.Debug("request done", "action", action, "results", len(resp.Results))
	}
	return resp
}
