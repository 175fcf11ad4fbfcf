package compiler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKeymap() Keymap {
	return Keymap{
		"meta":   "126",
		"pageup": "104",
		"tab":    "15",
	}
}

func TestCompile(t *testing.T) {
	tests := []struct {
		name     string
		notation string
		want     string
	}{
		{"mapped chord and key", "Meta+S Tab", "126.1 s.1 s.0 126.0 15.1 15.0"},
		{"unknown words are typed", "123!@# tab ABC", "[STR]+ 123!@#[STR] 15.1 15.0 [STR]+ ABC[STR]"},
		{
			"mixed chords and text",
			"meta+pageup tab 123!@# meta+tab",
			"126.1 104.1 104.0 126.0 15.1 15.0 [STR]+ 123!@#[STR] 126.1 15.1 15.0 126.0",
		},
		{"unmapped named key degrades", "enter tab", "[STR]+ enter[STR] 15.1 15.0"},
		{"three key chord", "meta+tab+pageup", "126.1 15.1 104.1 104.0 15.0 126.0"},
		{"empty input", "", ""},
		{"spaced plus is a key", "a + b + c", "a.1 a.0 +.1 +.0 b.1 b.0 +.1 +.0 c.1 c.0"},
		{
			"explicit typed block",
			"meta+pageup tab [STR]+ 123! @# [STR] meta+tab",
			"126.1 104.1 104.0 126.0 15.1 15.0 [STR]+ 123! @#[STR] 126.1 15.1 15.0 126.0",
		},
		{"single char keeps case", "A", "A.1 A.0"},
		{"chord folds case", "META+Q", "126.1 q.1 q.0 126.0"},
		{"only markers", "[STR][STR][STR]", ""},
		{"whitespace only", "   \t  ", ""},
		{"empty typed block", "tab [STR]+ [STR]", "15.1 15.0"},
		{"trailing chord separator", "ctrl+", "ctrl.1 ctrl.0"},
		{"leading plus block is not text", "+ b", "+.1 +.0 b.1 b.0"},
		{"typed block without space after plus", "[STR]+abc[STR]", "[STR]+ abc[STR]"},
		{"typed block keeps inner spacing", "[STR]+   hello   world  [STR]", "[STR]+ hello   world[STR]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compile(tt.notation, testKeymap())
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestCompile_TypedEvents(t *testing.T) {
	seq := Compile("tab [STR]+ hi there [STR]", testKeymap())
	require.Len(t, seq, 3)
	assert.Equal(t, PressKey("15"), seq[0])
	assert.Equal(t, ReleaseKey("15"), seq[1])
	assert.Equal(t, TypeText("hi there"), seq[2])
}

func TestCompile_ChordSymmetry(t *testing.T) {
	seq := Compile("a+b+c+d", nil)
	require.Len(t, seq, 8)

	for i, k := range []string{"a", "b", "c", "d"} {
		assert.Equal(t, PressKey(k), seq[i])
		assert.Equal(t, ReleaseKey(k), seq[len(seq)-1-i])
	}
}

func TestCompile_NilKeymap(t *testing.T) {
	seq := Compile("ctrl+c enter x", nil)
	assert.Equal(t, "ctrl.1 c.1 c.0 ctrl.0 [STR]+ enter[STR] x.1 x.0", seq.String())
}

func TestCompile_NeverNil(t *testing.T) {
	assert.NotNil(t, Compile("", nil))
}

func TestCompile_Deterministic(t *testing.T) {
	inputs := []string{
		"Meta+S Tab",
		"[STR]+ abc [STR] ctrl+alt+delete",
		"ünïcödé+ß tab",
		"[STR][STR]+",
	}
	for _, in := range inputs {
		first := Compile(in, testKeymap())
		for i := 0; i < 5; i++ {
			assert.Equal(t, first, Compile(in, testKeymap()), "input %q", in)
		}
	}
}

func TestCompile_Totality(t *testing.T) {
	// Awkward inputs must all produce a sequence without panicking.
	inputs := []string{
		"+", "++", "+++", "[STR]+", "[STR]", "[STR", "STR]", "[STR]++[STR]",
		"a+", "+a", "\x00", "\xff\xfe", strings.Repeat("x+", 100),
		"[STR]+\xff", "tab\n\ttab", "🙂 ctrl+🙂",
	}
	for _, in := range inputs {
		assert.NotPanics(t, func() { _ = Compile(in, testKeymap()) }, "input %q", in)
	}
}

func TestSequence_StringEmpty(t *testing.T) {
	assert.Equal(t, "", Sequence{}.String())
}

func TestAction_String(t *testing.T) {
	assert.Equal(t, "press", Press.String())
	assert.Equal(t, "release", Release.String())
	assert.Equal(t, "type", Type.String())
	assert.Equal(t, "unknown", Action(0).String())
}
