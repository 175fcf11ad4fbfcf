package testutil

import (
	"errors"
	"strings"
	"sync"
)

// ErrKeyboardFailure is returned by a RecordingKeyboard once its failure budget is spent.
var ErrKeyboardFailure = errors.New("simulated keyboard failure")

// RecordingKeyboard is an in-memory key backend for tests.
//
// Every call is appended to a log using the compiled-sequence text form:
// "k.1" for a press, "k.0" for a release and "[STR]+ text[STR]" for typing.
// Thread-safety: all methods are safe for concurrent use via internal mutex.
type RecordingKeyboard struct {
	mu        sync.Mutex
	log       []string
	failAfter int // fail once len(log) reaches this; <0 never fails
}

// NewRecordingKeyboard creates a keyboard that never fails.
func NewRecordingKeyboard() *RecordingKeyboard {
	return &RecordingKeyboard{failAfter: -1}
}

// NewFailingKeyboard creates a keyboard that accepts n events and then
// returns ErrKeyboardFailure for every further call.
func NewFailingKeyboard(n int) *RecordingKeyboard {
	return &RecordingKeyboard{failAfter: n}
}

// KeyDown records a press.
func (k *RecordingKeyboard) KeyDown(key string) error {
	return k.record(key + ".1")
}

// KeyUp records a release.
func (k *RecordingKeyboard) KeyUp(key string) error {
	return k.record(key + ".0")
}

// Type records literal text input.
func (k *RecordingKeyboard) Type(text string) error {
	return k.record("[STR]+ " + text + "[STR]")
}

func (k *RecordingKeyboard) record(entry string) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.failAfter >= 0 && len(k.log) >= k.failAfter {
		return ErrKeyboardFailure
	}
	k.log = append(k.log, entry)
	return nil
}

// Events returns a copy of the recorded log.
func (k *RecordingKeyboard) Events() []string {
	k.mu.Lock()
	defer k.mu.Unlock()
	out := make([]string, len(k.log))
	copy(out, k.log)
	return out
}

// String joins the recorded log with single spaces.
func (k *RecordingKeyboard) String() string {
	return strings.Join(k.Events(), " ")
}
