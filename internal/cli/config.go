package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/liz/internal/config"
)

// ConfigInitOptions holds flags for the config init command.
type ConfigInitOptions struct {
	*RootOptions
	Force bool
}

// NewConfigCommand creates the config command group.
func NewConfigCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the rhythm configuration",
	}

	cmd.AddCommand(newConfigInitCommand(rootOpts))
	cmd.AddCommand(newConfigShowCommand(rootOpts))

	return cmd
}

func newConfigInitCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ConfigInitOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a rhythm.toml with default values",
		Long: `Write the default configuration to <data-dir>/rhythm.toml, or to the
path given with --config. An existing file is kept unless --force is set.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigInit(opts, cmd)
		},
	}

	cmd.Flags().BoolVarP(&opts.Force, "force", "f", false, "overwrite an existing file")

	return cmd
}

func runConfigInit(opts *ConfigInitOptions, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	dataDir := opts.DataDir
	if dataDir == "" {
		var err error
		if dataDir, err = config.DataDir(); err != nil {
			return WrapExitError(ExitFailure, "failed to locate data directory", err)
		}
	}

	path := opts.ConfigFile
	if path == "" {
		path = filepath.Join(dataDir, config.FileName)
	}

	_, err := os.Stat(path)
	switch {
	case err == nil && !opts.Force:
		return NewExitError(ExitCommandError, fmt.Sprintf("%s already exists (use --force to overwrite)", path))
	case err != nil && !errors.Is(err, fs.ErrNotExist):
		return WrapExitError(ExitFailure, "failed to inspect config file", err)
	}

	if err := config.Write(path, config.Default(dataDir)); err != nil {
		return WrapExitError(ExitFailure, "failed to write config", err)
	}

	if opts.Format == "json" {
		return formatter.Success(map[string]string{"path": path})
	}
	return formatter.Success("Wrote " + path)
}

func newConfigShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the resolved configuration",
		Long: `Print the configuration after defaults, rhythm.toml and LIZ_* environment
variables have been applied.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow(rootOpts, cmd)
		},
	}
}

func runConfigShow(opts *RootOptions, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	rhythm, path, err := loadRhythm(opts)
	if err != nil {
		return err
	}
	if path == "" {
		formatter.VerboseLog("No rhythm file found; showing defaults")
	} else {
		formatter.VerboseLog("Loaded %s", path)
	}

	if opts.Format == "json" {
		return formatter.Success(rhythm)
	}

	data, err := config.Marshal(*rhythm)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to render config", err)
	}
	return formatter.Success(strings.TrimRight(string(data), "\n"))
}
