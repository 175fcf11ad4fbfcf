package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/liz/internal/shortcut"
	"github.com/roach88/liz/internal/testutil"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestExportImport_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "music_sheet.json")

	s := New()
	s.AddAll([]shortcut.Shortcut{
		withHits(testutil.Shortcut(1, "ctrl+c", "term", "copy"), 3),
		testutil.Shortcut(2, "ctrl+v", "term", "paste"),
		testutil.Shortcut(3, "ctrl+z", "term", "undo"),
	}, true)
	s.Delete([]shortcut.ID{testutil.ID(3)})

	require.NoError(t, s.ExportJSON(path))

	loaded, err := ImportJSON(path)
	require.NoError(t, err)
	assert.Equal(t, s.Active(), loaded.Active())
	assert.Equal(t, s.Deleted(), loaded.Deleted())
}

func TestExportJSON_Layout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	require.NoError(t, New().ExportJSON(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"deleted": [], "data": []}`, string(data))
}

func TestExportJSON_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "store.json")
	require.NoError(t, New().ExportJSON(path))
	require.NoError(t, New().ExportJSON(path))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "store.json", entries[0].Name())
}

func TestExportJSON_MissingDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope", "store.json")
	err := New().ExportJSON(path)

	var ioErr *IOError
	require.True(t, errors.As(err, &ioErr))
	assert.Equal(t, path, ioErr.Path)
}

func TestImportJSON_MissingFile(t *testing.T) {
	_, err := ImportJSON(filepath.Join(t.TempDir(), "missing.json"))

	var ioErr *IOError
	require.True(t, errors.As(err, &ioErr))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestImportJSON_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	writeFile(t, path, `{"data": [`)

	_, err := ImportJSON(path)
	var fmtErr *FormatError
	assert.True(t, errors.As(err, &fmtErr))
}

func TestImportJSON_MissingPartitions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	writeFile(t, path, `{}`)

	s, err := ImportJSON(path)
	require.NoError(t, err)
	active, deleted := s.Len()
	assert.Zero(t, active)
	assert.Zero(t, deleted)
	assert.NotNil(t, s.Deleted())
}

func TestImportJSON_DedupesActive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	writeFile(t, path, `{
		"deleted": [],
		"data": [
			{"id": "00000000-0000-0000-0000-000000000001", "shortcut": "a", "application": "x", "description": "d", "comment": ""},
			{"id": "00000000-0000-0000-0000-000000000002", "shortcut": "a", "application": "x", "description": "d", "comment": ""}
		]
	}`)

	s, err := ImportJSON(path)
	require.NoError(t, err)
	assert.Equal(t, []shortcut.ID{testutil.ID(1)}, ids(s.Active()))
}

func TestLoadSheets_JSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sheet.json")
	writeFile(t, path, `[
		{"shortcut": "ctrl+c", "application": "term"},
		{"id": "00000000-0000-0000-0000-000000000002", "shortcut": "ctrl+v", "hit_number": 4}
	]`)

	list, err := LoadSheets(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, list, 2)

	assert.Equal(t, "ctrl+c", list[0].Shortcut)
	assert.Equal(t, "term", list[0].Application)
	assert.Equal(t, shortcut.DefaultLabel, list[0].Description)
	assert.False(t, list[0].ID.IsZero())

	assert.Equal(t, testutil.ID(2), list[1].ID)
	assert.Equal(t, uint64(4), list[1].HitNumber)
	assert.Equal(t, shortcut.DefaultLabel, list[1].Application)
}

func TestLoadSheets_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sheet.yaml")
	writeFile(t, path, `
- shortcut: ctrl+alt+t
  application: desktop
  description: open terminal
- shortcut: "[STR]+ hello [STR]"
`)

	list, err := LoadSheets(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "open terminal", list[0].Description)
	assert.Equal(t, "[STR]+ hello [STR]", list[1].Shortcut)
	assert.Equal(t, shortcut.DefaultLabel, list[1].Application)
}

func TestLoadSheets_Directory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.json"), `[{"shortcut": "b1"}, {"shortcut": "b2"}]`)
	writeFile(t, filepath.Join(dir, "a.yml"), "- shortcut: a1\n")
	writeFile(t, filepath.Join(dir, "c.yaml"), "- shortcut: c1\n")
	writeFile(t, filepath.Join(dir, "notes.txt"), "not a sheet")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o755))
	writeFile(t, filepath.Join(dir, "nested", "d.json"), `[{"shortcut": "d1"}]`)

	list, err := LoadSheets(context.Background(), dir)
	require.NoError(t, err)

	var notations []string
	for _, sc := range list {
		notations = append(notations, sc.Shortcut)
	}
	assert.Equal(t, []string{"a1", "b1", "b2", "c1"}, notations)
}

func TestLoadSheets_EmptyDirectory(t *testing.T) {
	list, err := LoadSheets(context.Background(), t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.NotNil(t, list)
}

func TestLoadSheets_BadFileInDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "good.json"), `[{"shortcut": "a"}]`)
	writeFile(t, filepath.Join(dir, "bad.json"), `[{"shortcut": `)

	_, err := LoadSheets(context.Background(), dir)
	var fmtErr *FormatError
	require.True(t, errors.As(err, &fmtErr))
	assert.Equal(t, filepath.Join(dir, "bad.json"), fmtErr.Path)
}

func TestLoadSheets_Missing(t *testing.T) {
	_, err := LoadSheets(context.Background(), filepath.Join(t.TempDir(), "gone"))
	var ioErr *IOError
	assert.True(t, errors.As(err, &ioErr))
}

func TestLoadSheets_NegativeHitsRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sheet.json")
	writeFile(t, path, `[{"shortcut": "a", "hit_number": -1}]`)

	_, err := LoadSheets(context.Background(), path)
	var fmtErr *FormatError
	assert.True(t, errors.As(err, &fmtErr))
}

func TestWriteSheet_RoundTrip(t *testing.T) {
	list := []shortcut.Shortcut{
		withHits(testutil.Shortcut(1, "ctrl+c", "term", "copy"), 2),
		testutil.Shortcut(2, "ctrl+v", "term", "paste"),
	}

	for _, name := range []string{"out.json", "out.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, WriteSheet(path, list))

			loaded, err := LoadSheets(context.Background(), path)
			require.NoError(t, err)
			assert.Equal(t, list, loaded)
		})
	}
}

func TestIsSheetFile(t *testing.T) {
	assert.True(t, IsSheetFile("a.json"))
	assert.True(t, IsSheetFile("a.YAML"))
	assert.True(t, IsSheetFile("dir/a.yml"))
	assert.False(t, IsSheetFile("a.txt"))
	assert.False(t, IsSheetFile("json"))
}
