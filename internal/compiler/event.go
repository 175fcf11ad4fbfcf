package compiler

import "strings"

// TextMarker delimits typed-text blocks inside a notation string and inside
// the text form of a compiled Sequence.
const TextMarker = "[STR]"

// Action is what an Event does to the keyboard.
type Action int

const (
	// Press holds a key down.
	Press Action = iota + 1
	// Release lets a held key go.
	Release
	// Type enters literal text.
	Type
)

// String returns the action name.
func (a Action) String() string {
	switch a {
	case Press:
		return "press"
	case Release:
		return "release"
	case Type:
		return "type"
	default:
		return "unknown"
	}
}

// Event is one atomic keyboard step.
// Key is set for Press and Release; Text is set for Type.
type Event struct {
	Action Action
	Key    string
	Text   string
}

// PressKey returns a press event for key.
func PressKey(key string) Event { return Event{Action: Press, Key: key} }

// ReleaseKey returns a release event for key.
func ReleaseKey(key string) Event { return Event{Action: Release, Key: key} }

// TypeText returns a typing event for text.
func TypeText(text string) Event { return Event{Action: Type, Text: text} }

// String renders the event in its text form: "k.1" for a press, "k.0" for a
// release and "[STR]+ text[STR]" for typing.
func (e Event) String() string {
	switch e.Action {
	case Press:
		return e.Key + ".1"
	case Release:
		return e.Key + ".0"
	case Type:
		return TextMarker + "+ " + e.Text + TextMarker
	default:
		return ""
	}
}

// Sequence is an ordered list of events produced by Compile.
// It is built fresh for every execution and never persisted.
type Sequence []Event

// String joins the text form of every event with single spaces.
//
// Example: "126.1 s.1 s.0 126.0 15.1 15.0 [STR]+ abc[STR]"
func (s Sequence) String() string {
	parts := make([]string, 0, len(s))
	for _, e := range s {
		parts = append(parts, e.String())
	}
	return strings.Join(parts, " ")
}
