package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/roach88/liz/internal/shortcut"
)

// sheetExts lists the file extensions recognised as user sheets.
var sheetExts = map[string]bool{
	".json": true,
	".yaml": true,
	".yml":  true,
}

// IsSheetFile reports whether path has a user sheet extension.
func IsSheetFile(path string) bool {
	return sheetExts[strings.ToLower(filepath.Ext(path))]
}

// LoadSheets reads user sheets from path.
//
// If path is a file it is decoded on its own. If path is a directory every
// sheet file directly inside it (no recursion) is decoded concurrently and
// the records are concatenated in file-name order. No deduplication happens
// here; callers pass the result to AddAll.
func LoadSheets(ctx context.Context, path string) ([]shortcut.Shortcut, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &IOError{Op: "stat", Path: path, Err: err}
	}

	if !info.IsDir() {
		return loadSheetFile(path)
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, &IOError{Op: "read", Path: path, Err: err}
	}

	var files []string
	for _, entry := range entries {
		if entry.Type().IsRegular() && IsSheetFile(entry.Name()) {
			files = append(files, filepath.Join(path, entry.Name()))
		}
	}

	// os.ReadDir sorts by name; each goroutine writes only its own slot so
	// the concatenation order is stable.
	results := make([][]shortcut.Shortcut, len(files))
	g, gctx := errgroup.WithContext(ctx)
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			records, err := loadSheetFile(file)
			if err != nil {
				return err
			}
			results[i] = records
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	all := []shortcut.Shortcut{}
	for _, records := range results {
		all = append(all, records...)
	}
	return all, nil
}

func loadSheetFile(path string) ([]shortcut.Shortcut, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &IOError{Op: "read", Path: path, Err: err}
	}

	records := []shortcut.Shortcut{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &records)
	default:
		err = json.Unmarshal(data, &records)
	}
	if err != nil {
		return nil, &FormatError{Path: path, Err: err}
	}
	return records, nil
}

// WriteSheet writes shortcuts to path as a user sheet. The format follows
// the extension: YAML for .yaml/.yml, JSON otherwise.
func WriteSheet(path string, shortcuts []shortcut.Shortcut) error {
	if shortcuts == nil {
		shortcuts = []shortcut.Shortcut{}
	}

	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(shortcuts)
	default:
		data, err = json.MarshalIndent(shortcuts, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal sheet: %w", err)
	}
	return writeFileAtomic(path, data)
}
