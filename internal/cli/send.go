package cli

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/liz/internal/engine"
	"github.com/roach88/liz/internal/inject"
)

// SendOptions holds flags for the send command.
type SendOptions struct {
	*RootOptions
	DryRun bool

	// Keyboard overrides the configured backend (for testing).
	Keyboard inject.Keyboard
}

// NewSendCommand creates the send command.
func NewSendCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SendOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "send <action> [args...]",
		Short: "Run one command against the store",
		Long: `Run a single command and print its response.

The store file is loaded, the command is dispatched, and the store is
persisted again if the command changed it and succeeded. The exit code
follows the response: 0 for OK, 1 for FAIL, 2 for BUG.

Example:
  liz send list
  liz send create '{"shortcut":"ctrl+c","application":"term","description":"copy"}'
  liz send execute 0195c3a4-7b1e-7d2a-9a4f-3c1e2b6d8f00
  liz send --format json sort hit_number desc`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSend(opts, args[0], args[1:], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "log keystrokes instead of sending them")

	return cmd
}

func runSend(opts *SendOptions, action string, args []string, cmd *cobra.Command) error {
	out := opts.formatter(cmd)

	req, err := engine.Decode(engine.Command{Action: action, Args: args})
	if err != nil {
		resp := engine.Response{Code: engine.BUG, Results: []string{err.Error()}}
		if printErr := out.Response(resp); printErr != nil {
			return printErr
		}
		return responseError(action, resp)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	rt, err := openRuntime(ctx, opts.RootOptions, runtimeOptions{DryRun: opts.DryRun, Keyboard: opts.Keyboard})
	if err != nil {
		return err
	}
	defer rt.Close()

	resp := rt.Engine.Submit(ctx, req)
	if err := out.Response(resp); err != nil {
		return err
	}

	if resp.Code == engine.OK && engine.Mutates(req) {
		saved := rt.Engine.Submit(ctx, engine.Persist{})
		if saved.Code != engine.OK {
			slog.Error("persist failed", "code", saved.Code, "results", saved.Results)
			return responseError("persist", saved)
		}
		out.VerboseLog("persisted %s", rt.Rhythm.MusicSheetPath)
	}

	return responseError(action, resp)
}
