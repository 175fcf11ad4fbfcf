// Package compiler turns shortcut notation into keyboard event sequences.
//
// The compiler is a pure function of its inputs (notation string and keymap).
// It never fails: tokens it cannot map degrade to literal typing so that
// every stored shortcut can be replayed. Validating notation is left to
// whoever edits shortcuts.
package compiler
