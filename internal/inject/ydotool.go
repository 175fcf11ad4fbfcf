package inject

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// Linux input event codes for keys that have no keymap entry but are commonly
// written as single characters in notation.
var evdevCodes = map[string]int{
	"1": 2, "2": 3, "3": 4, "4": 5, "5": 6, "6": 7, "7": 8, "8": 9, "9": 10, "0": 11,
	"-": 12, "=": 13,
	"q": 16, "w": 17, "e": 18, "r": 19, "t": 20, "y": 21, "u": 22, "i": 23, "o": 24, "p": 25,
	"[": 26, "]": 27,
	"a": 30, "s": 31, "d": 32, "f": 33, "g": 34, "h": 35, "j": 36, "k": 37, "l": 38,
	";": 39, "'": 40, "`": 41, "\\": 43,
	"z": 44, "x": 45, "c": 46, "v": 47, "b": 48, "n": 49, "m": 50,
	",": 51, ".": 52, "/": 53, " ": 57,
}

// Runner executes an external program. exec.CommandContext is the default.
type Runner func(ctx context.Context, name string, args ...string) error

func runCommand(ctx context.Context, name string, args ...string) error {
	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	if err != nil {
		msg := strings.TrimSpace(string(out))
		if msg != "" {
			return fmt.Errorf("%s: %w: %s", name, err, msg)
		}
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// ExecKeyboard drives the ydotool daemon. Keys are Linux input event codes,
// which is what keymap files map names to; a single character without a
// keymap entry is translated through the US layout table.
type ExecKeyboard struct {
	program string
	run     Runner
}

// NewExecKeyboard creates a keyboard that invokes program (usually "ydotool").
// A nil run uses os/exec.
func NewExecKeyboard(program string, run Runner) *ExecKeyboard {
	if run == nil {
		run = runCommand
	}
	return &ExecKeyboard{program: program, run: run}
}

func (k *ExecKeyboard) KeyDown(key string) error {
	return k.key(key, 1)
}

func (k *ExecKeyboard) KeyUp(key string) error {
	return k.key(key, 0)
}

func (k *ExecKeyboard) Type(text string) error {
	return k.run(context.Background(), k.program, "type", "--", text)
}

func (k *ExecKeyboard) key(key string, state int) error {
	code, err := keyCode(key)
	if err != nil {
		return err
	}
	return k.run(context.Background(), k.program, "key", fmt.Sprintf("%d:%d", code, state))
}

// keyCode resolves a key name to an event code. A single character goes
// through the layout table; anything else must be a decimal code. Codes
// below 10 therefore need a leading zero in the keymap ("01" for Escape).
func keyCode(key string) (int, error) {
	if len([]rune(key)) == 1 {
		if code, ok := evdevCodes[strings.ToLower(key)]; ok {
			return code, nil
		}
		return 0, fmt.Errorf("no key code for %q", key)
	}
	n, err := strconv.Atoi(key)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("no key code for %q", key)
	}
	return n, nil
}
