package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/roach88/liz/internal/shortcut"
	"github.com/roach88/liz/internal/store"
)

const (
	id1 = "00000000-0000-0000-0000-000000000001"
	id2 = "00000000-0000-0000-0000-000000000002"
)

// result captures one CLI invocation.
type result struct {
	stdout string
	stderr string
	err    error
}

// execute runs the root command with args and stdin.
func execute(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	cmd := NewRootCommand()
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return result{stdout: out.String(), stderr: errOut.String(), err: err}
}

// bareCommand returns a command wired to in-memory streams, for calling
// run functions directly.
func bareCommand(ctx context.Context, stdin string) (*cobra.Command, *bytes.Buffer) {
	cmd := &cobra.Command{}
	out := &bytes.Buffer{}
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetContext(ctx)
	return cmd, out
}

// writeRhythm writes a rhythm.toml into dataDir.
func writeRhythm(t *testing.T, dataDir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "rhythm.toml"), []byte(content), 0o644))
}

// loadStore reads the persisted store file of dataDir.
func loadStore(t *testing.T, dataDir string) *store.Store {
	t.Helper()
	s, err := store.ImportJSON(filepath.Join(dataDir, "music_sheet.lock"))
	require.NoError(t, err)
	return s
}

func shortcutJSON(id, notation, app, desc string) string {
	return `{"id":"` + id + `","shortcut":"` + notation + `","application":"` + app + `","description":"` + desc + `"}`
}

func mustID(t *testing.T, s string) shortcut.ID {
	t.Helper()
	id, err := shortcut.ParseID(s)
	require.NoError(t, err)
	return id
}
