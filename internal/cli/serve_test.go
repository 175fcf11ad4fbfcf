package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/liz/internal/engine"
	"github.com/roach88/liz/internal/journal"
	"github.com/roach88/liz/internal/testutil"
)

func commandLine(t *testing.T, action string, args ...string) string {
	t.Helper()
	if args == nil {
		args = []string{}
	}
	data, err := json.Marshal(engine.Command{Action: action, Args: args})
	require.NoError(t, err)
	return string(data)
}

func responses(t *testing.T, out string) []engine.Response {
	t.Helper()
	var resps []engine.Response
	scanner := bufio.NewScanner(strings.NewReader(out))
	for scanner.Scan() {
		var resp engine.Response
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &resp), "line: %s", scanner.Text())
		resps = append(resps, resp)
	}
	return resps
}

func codes(resps []engine.Response) []engine.Code {
	out := make([]engine.Code, len(resps))
	for i, r := range resps {
		out[i] = r.Code
	}
	return out
}

func TestServe_AnswersInOrderAndPersists(t *testing.T) {
	dataDir := t.TempDir()
	kb := testutil.NewRecordingKeyboard()

	stdin := strings.Join([]string{
		commandLine(t, "create", shortcutJSON(id1, "ctrl+c", "term", "copy")),
		commandLine(t, "execute", id1),
		"not json",
		"",
		`{"action": "bogus"}`,
		commandLine(t, "create", shortcutJSON(id2, "ctrl+v", "term", "paste")),
		commandLine(t, "delete", id2),
	}, "\n")

	cmd, out := bareCommand(context.Background(), stdin)
	opts := &ServeOptions{RootOptions: &RootOptions{Format: "text", DataDir: dataDir}, Keyboard: kb}
	require.NoError(t, runServe(opts, cmd))

	resps := responses(t, out.String())
	assert.Equal(t, []engine.Code{engine.OK, engine.OK, engine.BUG, engine.BUG, engine.OK, engine.OK}, codes(resps))
	assert.Equal(t, []string{id1}, resps[0].Results)
	assert.Contains(t, resps[2].Results[0], "malformed command")

	assert.Equal(t, "ctrl.1 c.1 c.0 ctrl.0", kb.String())

	// Shutdown clears the trash and persists.
	s := loadStore(t, dataDir)
	active := s.Active()
	require.Len(t, active, 1)
	assert.Equal(t, mustID(t, id1), active[0].ID)
	assert.Equal(t, uint64(1), active[0].HitNumber)
	assert.Empty(t, s.Deleted())

	j, err := journal.Open(filepath.Join(dataDir, "journal.db"))
	require.NoError(t, err)
	defer j.Close()
	entries, err := j.Recent(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, journal.OutcomeOK, entries[0].Outcome)
	assert.Equal(t, "ctrl+c", entries[0].Notation)
}

func TestServe_ResumesStoreAndSequence(t *testing.T) {
	dataDir := t.TempDir()
	opts := &ServeOptions{RootOptions: &RootOptions{Format: "text", DataDir: dataDir}, Keyboard: testutil.NewRecordingKeyboard()}

	first := strings.Join([]string{
		commandLine(t, "create", shortcutJSON(id1, "a", "x", "one")),
		commandLine(t, "execute", id1),
	}, "\n")
	cmd, _ := bareCommand(context.Background(), first)
	require.NoError(t, runServe(opts, cmd))

	cmd, out := bareCommand(context.Background(), commandLine(t, "execute", id1)+"\n"+commandLine(t, "history"))
	require.NoError(t, runServe(opts, cmd))

	resps := responses(t, out.String())
	require.Len(t, resps, 2)
	require.Equal(t, engine.OK, resps[1].Code)
	require.Len(t, resps[1].Results, 2)

	var newest journal.Entry
	require.NoError(t, json.Unmarshal([]byte(resps[1].Results[0]), &newest))
	assert.Equal(t, int64(2), newest.Seq)

	s := loadStore(t, dataDir)
	assert.Equal(t, uint64(2), s.Active()[0].HitNumber)
}

func TestServe_StopsOnCancel(t *testing.T) {
	dataDir := t.TempDir()
	stdinR, stdinW := io.Pipe()
	t.Cleanup(func() { stdinW.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	cmd, _ := bareCommand(ctx, "")
	cmd.SetIn(stdinR)

	opts := &ServeOptions{RootOptions: &RootOptions{Format: "text", DataDir: dataDir}, Keyboard: testutil.NewRecordingKeyboard()}

	done := make(chan error, 1)
	go func() { done <- runServe(opts, cmd) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not stop after cancel")
	}
	assert.FileExists(t, filepath.Join(dataDir, "music_sheet.lock"))
}

func TestServe_BadConfig(t *testing.T) {
	dataDir := t.TempDir()
	writeRhythm(t, dataDir, "interval_ms = -5\n")

	cmd, _ := bareCommand(context.Background(), "")
	err := runServe(&ServeOptions{RootOptions: &RootOptions{Format: "text", DataDir: dataDir}}, cmd)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestDispatchLine_Malformed(t *testing.T) {
	resp := dispatchLine(context.Background(), nil, `{"action": `)
	assert.Equal(t, engine.BUG, resp.Code)
	require.Len(t, resp.Results, 1)
	assert.Contains(t, resp.Results[0], "malformed command")
}

func TestStartWatcher_ReloadsSheets(t *testing.T) {
	dataDir := t.TempDir()
	ctx := context.Background()

	rt, err := openRuntime(ctx, &RootOptions{DataDir: dataDir}, runtimeOptions{Keyboard: testutil.NewRecordingKeyboard()})
	require.NoError(t, err)
	defer rt.Close()

	w, err := startWatcher(ctx, rt)
	require.NoError(t, err)
	defer w.Stop()

	sheet := filepath.Join(dataDir, "sheets", "editor.json")
	require.NoError(t, os.WriteFile(sheet, []byte(`[{"shortcut": "ctrl+s", "description": "save"}]`), 0o644))

	assert.Eventually(t, func() bool {
		return len(rt.Engine.Submit(ctx, engine.List{}).Results) == 1
	}, 5*time.Second, 50*time.Millisecond)
}
