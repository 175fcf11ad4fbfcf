// Package engine is the command dispatcher.
//
// A wire Command ({action, args}) is decoded into one of a closed set of
// typed Request values, queued, and applied to the shortcut store by a
// single loop goroutine. Every request gets exactly one Response carrying a
// tri-state Code:
//
//   - OK: success, Results holds the action payload
//   - FAIL: the environment failed (file I/O, key injection); retry may help
//   - BUG: the caller broke the contract (bad arguments, unknown id)
//
// Single-owner loop:
// The Store is not safe for concurrent use and is never shared. Only the
// loop touches it, so requests cannot interleave. An execute request holds
// the loop for its whole playback; other requests wait behind it.
//
// Execute flow:
//  1. Resolve the id in the active set (BUG if absent)
//  2. Compile the notation with the current keymap
//  3. Number the attempt after the journal's last seq and play through the Injector
//  4. Journal the attempt, success or not
//  5. On success only: bump the hit counter and re-rank
//
// Ranking runs after every request that adds, changes or executes
// shortcuts: application ascending, then hit number descending.
package engine
