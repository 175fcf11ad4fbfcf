package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/liz/internal/compiler"
)

// CompileOptions holds flags for the compile command.
type CompileOptions struct {
	*RootOptions
	Keymap string // keymap file overriding the configured one
	Output string // output file path
}

// CompileResult is the JSON payload of the compile command.
type CompileResult struct {
	Notation string   `json:"notation"`
	Sequence string   `json:"sequence"`
	Events   []string `json:"events"`
}

// NewCompileCommand creates the compile command.
func NewCompileCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompileOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compile <notation>...",
		Short: "Show the key events a notation produces",
		Long: `Compile a shortcut notation into its key event sequence without sending it.

Arguments are joined with single spaces. Keys are resolved through the
configured keymap unless --keymap is given.

Example:
  liz compile ctrl+shift+t
  liz compile 'esc [STR]+ :wq [STR] enter' --keymap ./keymap.json`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(opts, strings.Join(args, " "), cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Keymap, "keymap", "k", "", "keymap file (default from config)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "write the sequence to a file")

	return cmd
}

func runCompile(opts *CompileOptions, notation string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	km, err := compileKeymap(opts)
	if err != nil {
		return err
	}

	seq := compiler.Compile(notation, km)
	result := CompileResult{
		Notation: notation,
		Sequence: seq.String(),
		Events:   make([]string, len(seq)),
	}
	for i, ev := range seq {
		result.Events[i] = ev.String()
	}
	formatter.VerboseLog("Compiled %d event(s)", len(seq))

	if opts.Output != "" {
		if err := os.WriteFile(opts.Output, []byte(result.Sequence+"\n"), 0o644); err != nil {
			return WrapExitError(ExitFailure, "failed to write output", err)
		}
		formatter.VerboseLog("Wrote %s", opts.Output)
	}

	if opts.Format == "json" {
		return formatter.Success(result)
	}
	return formatter.Success(result.Sequence)
}

func compileKeymap(opts *CompileOptions) (compiler.Keymap, error) {
	if opts.Keymap != "" {
		km, err := compiler.LoadKeymap(opts.Keymap)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, fmt.Sprintf("failed to load keymap %s", opts.Keymap), err)
		}
		return km, nil
	}

	rhythm, _, err := loadRhythm(opts.RootOptions)
	if err != nil {
		return nil, err
	}
	km, err := compiler.LoadKeymap(rhythm.KeymapPath)
	if err != nil {
		slog.Warn("keymap unreadable, using literal key names", "error", err)
	}
	return km, nil
}
