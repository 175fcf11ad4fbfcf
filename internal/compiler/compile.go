package compiler

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// comboSeparator joins the keys of a chord, as in "ctrl+shift+p".
const comboSeparator = "+"

// Compile turns a shortcut notation string into an ordered event sequence.
//
// Grammar:
//   - The input is split on TextMarker into blocks; empty blocks are skipped.
//   - A block right after a marker that starts with "+" is typed verbatim
//     (trimmed) as one Type event.
//   - Any other block is split on whitespace into tokens:
//   - "a+b+c" (anything containing "+" except "+" itself) is a chord: every key
//     is pressed left to right, then released right to left.
//   - A token found in the keymap is pressed and released using its code.
//   - An unmapped single character is pressed and released as itself.
//   - Any other unmapped word is typed as literal text.
//
// Key names are lowercased before keymap lookup. Compile is total: every
// input yields a (possibly empty) sequence and it never fails.
//
// Example, with keymap {meta: 126, tab: 15}:
//
//	Compile("Meta+S Tab", km).String() == "126.1 s.1 s.0 126.0 15.1 15.0"
func Compile(notation string, keymap Keymap) Sequence {
	c := &compilation{
		keymap: keymap,
		lower:  cases.Lower(language.Und),
		out:    Sequence{},
	}

	for i, block := range strings.Split(notation, TextMarker) {
		if block == "" {
			continue
		}
		// Only a block that follows a marker can open typed text; a leading
		// "+" at the very start of the notation is an ordinary key.
		if i > 0 && strings.HasPrefix(block, comboSeparator) {
			c.typeText(strings.TrimSpace(block[len(comboSeparator):]))
			continue
		}
		for _, token := range strings.Fields(block) {
			c.token(token)
		}
	}

	return c.out
}

// compilation holds the state of a single Compile call.
// cases.Caser is not safe for concurrent use, so each call owns one.
type compilation struct {
	keymap Keymap
	lower  cases.Caser
	out    Sequence
}

func (c *compilation) token(token string) {
	if token != comboSeparator && strings.Contains(token, comboSeparator) {
		c.chord(strings.Split(token, comboSeparator))
		return
	}

	if code, ok := c.keymap[c.fold(token)]; ok {
		c.tap(code)
		return
	}

	if utf8.RuneCountInString(token) == 1 {
		c.tap(token)
		return
	}

	// Unknown words degrade to literal typing rather than failing.
	c.typeText(token)
}

// chord presses keys left to right and releases them in reverse order.
// Empty parts (from "ctrl+" or "a++b") are dropped.
func (c *compilation) chord(parts []string) {
	keys := make([]string, 0, len(parts))
	for _, part := range parts {
		name := c.fold(strings.TrimSpace(part))
		if name == "" {
			continue
		}
		if code, ok := c.keymap[name]; ok {
			keys = append(keys, code)
		} else {
			keys = append(keys, name)
		}
	}

	for _, k := range keys {
		c.out = append(c.out, PressKey(k))
	}
	for i := len(keys) - 1; i >= 0; i-- {
		c.out = append(c.out, ReleaseKey(keys[i]))
	}
}

func (c *compilation) tap(key string) {
	c.out = append(c.out, PressKey(key), ReleaseKey(key))
}

func (c *compilation) typeText(text string) {
	if text == "" {
		return
	}
	c.out = append(c.out, TypeText(text))
}

func (c *compilation) fold(name string) string {
	return c.lower.String(name)
}
