package config

import (
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	// AppName is the data directory name under the user config dir.
	AppName = "liz"
	// FileName is the rhythm file inside the data directory.
	FileName = "rhythm.toml"
	// EnvPrefix prefixes every environment override.
	EnvPrefix = "LIZ"
	// DataDirEnv overrides the data directory itself.
	DataDirEnv = "LIZ_DATA_DIR"
)

// Keyboard backends.
const (
	KeyboardYdotool = "ydotool"
	KeyboardLog     = "log"
)

//go:embed rhythm.cue
var rhythmSchema string

// Rhythm is the liz configuration.
type Rhythm struct {
	LizPath          string `mapstructure:"liz_path" toml:"liz_path" json:"liz_path"`
	UserSheetsPath   string `mapstructure:"user_sheets_path" toml:"user_sheets_path" json:"user_sheets_path"`
	MusicSheetPath   string `mapstructure:"music_sheet_path" toml:"music_sheet_path" json:"music_sheet_path"`
	KeymapPath       string `mapstructure:"keymap_path" toml:"keymap_path" json:"keymap_path"`
	JournalPath      string `mapstructure:"journal_path" toml:"journal_path" json:"journal_path"`
	PersistFreqS     int    `mapstructure:"persist_freq_s" toml:"persist_freq_s" json:"persist_freq_s"`
	IntervalMS       int    `mapstructure:"interval_ms" toml:"interval_ms" json:"interval_ms"`
	TriggerShortcut  string `mapstructure:"trigger_shortcut" toml:"trigger_shortcut" json:"trigger_shortcut"`
	ShortcutPrintFmt string `mapstructure:"shortcut_print_fmt" toml:"shortcut_print_fmt" json:"shortcut_print_fmt"`
	Keyboard         string `mapstructure:"keyboard" toml:"keyboard" json:"keyboard"`
	KeyboardProgram  string `mapstructure:"keyboard_program" toml:"keyboard_program" json:"keyboard_program"`
}

// Interval returns IntervalMS as a duration.
func (r Rhythm) Interval() time.Duration {
	return time.Duration(r.IntervalMS) * time.Millisecond
}

// Pairs flattens the rhythm into alternating key, value strings in field order.
func (r Rhythm) Pairs() []string {
	return []string{
		"liz_path", r.LizPath,
		"user_sheets_path", r.UserSheetsPath,
		"music_sheet_path", r.MusicSheetPath,
		"keymap_path", r.KeymapPath,
		"journal_path", r.JournalPath,
		"persist_freq_s", strconv.Itoa(r.PersistFreqS),
		"interval_ms", strconv.Itoa(r.IntervalMS),
		"trigger_shortcut", r.TriggerShortcut,
		"shortcut_print_fmt", r.ShortcutPrintFmt,
		"keyboard", r.Keyboard,
		"keyboard_program", r.KeyboardProgram,
	}
}

// DataDir returns $LIZ_DATA_DIR, or the liz directory under the user config dir.
func DataDir() (string, error) {
	if dir := os.Getenv(DataDirEnv); dir != "" {
		return dir, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(base, AppName), nil
}

// Default returns the built-in rhythm rooted at dataDir.
func Default(dataDir string) Rhythm {
	return Rhythm{
		LizPath:          dataDir,
		UserSheetsPath:   filepath.Join(dataDir, "sheets"),
		MusicSheetPath:   filepath.Join(dataDir, "music_sheet.lock"),
		KeymapPath:       filepath.Join(dataDir, "keymap_builtin.json"),
		JournalPath:      filepath.Join(dataDir, "journal.db"),
		PersistFreqS:     3600,
		IntervalMS:       100,
		TriggerShortcut:  "Ctrl+Alt+L",
		ShortcutPrintFmt: "<b>#description</b> | #application | #shortcut",
		Keyboard:         KeyboardYdotool,
		KeyboardProgram:  "ydotool",
	}
}

// LoadOptions selects where Load looks.
type LoadOptions struct {
	// ConfigFile is an explicit rhythm file. It must exist.
	ConfigFile string
	// DataDir overrides DataDir().
	DataDir string
}

// Load resolves the rhythm. It returns the config and the path of the file
// that was read, or "" when only defaults and environment applied.
func Load(opts LoadOptions) (*Rhythm, string, error) {
	dataDir := opts.DataDir
	if dataDir == "" {
		var err error
		if dataDir, err = DataDir(); err != nil {
			return nil, "", err
		}
	}

	v := viper.New()
	setDefaults(v, Default(dataDir))
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	path := opts.ConfigFile
	explicit := path != ""
	if !explicit {
		path = filepath.Join(dataDir, FileName)
	}

	resolved := ""
	switch _, err := os.Stat(path); {
	case err == nil:
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, "", fmt.Errorf("read config %s: %w", path, err)
		}
		resolved = path
	case explicit:
		return nil, "", fmt.Errorf("config file %s: %w", path, err)
	case errors.Is(err, os.ErrNotExist):
		slog.Warn("rhythm file not found, using defaults", "path", path)
	default:
		return nil, "", fmt.Errorf("stat config %s: %w", path, err)
	}

	var r Rhythm
	if err := v.Unmarshal(&r); err != nil {
		return nil, "", fmt.Errorf("parse config: %w", err)
	}
	if err := Validate(r); err != nil {
		return nil, "", err
	}
	return &r, resolved, nil
}

func setDefaults(v *viper.Viper, d Rhythm) {
	v.SetDefault("liz_path", d.LizPath)
	v.SetDefault("user_sheets_path", d.UserSheetsPath)
	v.SetDefault("music_sheet_path", d.MusicSheetPath)
	v.SetDefault("keymap_path", d.KeymapPath)
	v.SetDefault("journal_path", d.JournalPath)
	v.SetDefault("persist_freq_s", d.PersistFreqS)
	v.SetDefault("interval_ms", d.IntervalMS)
	v.SetDefault("trigger_shortcut", d.TriggerShortcut)
	v.SetDefault("shortcut_print_fmt", d.ShortcutPrintFmt)
	v.SetDefault("keyboard", d.Keyboard)
	v.SetDefault("keyboard_program", d.KeyboardProgram)
}

// ValidationError reports a rhythm that does not satisfy the schema.
type ValidationError struct {
	Details string
	Err     error
}

func (e *ValidationError) Error() string {
	return "invalid config: " + e.Details
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Validate unifies r with the embedded #Rhythm schema.
func Validate(r Rhythm) error {
	ctx := cuecontext.New()

	schemaValue := ctx.CompileString(rhythmSchema)
	if schemaValue.Err() != nil {
		return fmt.Errorf("internal error: compile rhythm schema: %w", schemaValue.Err())
	}
	schema := schemaValue.LookupPath(cue.ParsePath("#Rhythm"))

	value := ctx.Encode(r)
	if value.Err() != nil {
		return fmt.Errorf("encode config: %w", value.Err())
	}

	if err := schema.Unify(value).Validate(cue.Concrete(true)); err != nil {
		return &ValidationError{Details: cueerrors.Details(err, nil), Err: err}
	}
	return nil
}

// Write stores r at path as TOML, creating parent directories.
func Write(path string, r Rhythm) error {
	data, err := Marshal(r)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}

// Marshal renders r as TOML.
func Marshal(r Rhythm) ([]byte, error) {
	data, err := toml.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return data, nil
}
