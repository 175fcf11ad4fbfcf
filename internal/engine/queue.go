package engine

import (
	"context"
	"sync"
)

// envelope carries one request into the engine loop and its reply back out.
type envelope struct {
	ctx   context.Context
	req   Request
	reply chan Response // buffered, size 1
}

// mailbox is the engine's unbounded FIFO of pending requests.
//
// Submit may be called from any goroutine; only the engine loop dequeues.
// A buffered signal channel lets the loop wait on the mailbox and a context
// in the same select.
type mailbox struct {
	mu      sync.Mutex
	pending []envelope
	closed  bool
	signal  chan struct{} // buffered, size 1
}

func newMailbox() *mailbox {
	return &mailbox{
		pending: make([]envelope, 0, 16),
		signal:  make(chan struct{}, 1),
	}
}

// Enqueue appends env. Returns false if the mailbox is closed.
func (m *mailbox) Enqueue(env envelope) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return false
	}
	m.pending = append(m.pending, env)

	// Non-blocking: the buffer of 1 coalesces signals
	select {
	case m.signal <- struct{}{}:
	default:
	}
	return true
}

// TryDequeue pops the oldest envelope without blocking.
func (m *mailbox) TryDequeue() (envelope, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.pending) == 0 {
		return envelope{}, false
	}
	env := m.pending[0]
	m.pending[0] = envelope{} // release references for GC
	if len(m.pending) == 1 {
		m.pending = m.pending[:0]
	} else {
		m.pending = m.pending[1:]
	}
	return env, true
}

// Wait returns a channel that fires when envelopes may be available.
// It is closed by Close.
func (m *mailbox) Wait() <-chan struct{} {
	return m.signal
}

// Close rejects further envelopes and wakes the loop.
// Envelopes already queued stay dequeueable.
func (m *mailbox) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return
	}
	m.closed = true
	close(m.signal)
}

// Len returns the number of queued envelopes.
func (m *mailbox) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}
