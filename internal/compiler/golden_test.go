package compiler

import (
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"
)

// Regenerate with: go test ./internal/compiler -run TestCompileGolden -update
func TestCompileGolden(t *testing.T) {
	km, err := LoadKeymap(filepath.Join("testdata", "keymap.json"))
	require.NoError(t, err)

	scenarios := []struct {
		name     string
		notation string
	}{
		{"vim_save_quit", "esc [STR]+ :wq [STR] enter"},
		{"browser_tabs", "ctrl+shift+tab ctrl+PageDown F5"},
		{"terminal_login", "ctrl+alt+t [STR]+ ssh deploy@host [STR] Enter password123 enter"},
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)

	for _, sc := range scenarios {
		t.Run(sc.name, func(t *testing.T) {
			seq := Compile(sc.notation, km)
			g.Assert(t, sc.name, []byte(seq.String()+"\n"))
		})
	}
}
