// Package inject plays compiled key sequences on a keyboard backend.
//
// The Player is the only Injector. It splits a sequence into blocks, where a
// block is a maximal run of press/release events or a single type event, and
// sleeps the configured delay before each block. This matches how a person
// would pace a chord followed by typed text: the chord lands as one burst,
// then the text, then the next chord.
//
// Backends implement Keyboard:
//   - LogKeyboard writes every event to slog and touches no device (dry run).
//   - ExecKeyboard drives ydotool, using Linux input event codes as key names.
//
// Once playback starts it runs to completion or to the first backend error.
// There is no cancellation mid-sequence; the context is consulted only before
// the first block.
package inject
