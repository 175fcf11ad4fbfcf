package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/liz/internal/engine"
	"github.com/roach88/liz/internal/inject"
	"github.com/roach88/liz/internal/watch"
)

// maxLineBytes bounds one JSON command line on stdin.
const maxLineBytes = 4 << 20

// ServeOptions holds flags for the serve command.
type ServeOptions struct {
	*RootOptions
	Watch  bool
	DryRun bool

	// Keyboard overrides the configured backend (for testing).
	Keyboard inject.Keyboard
}

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Answer JSON commands on stdin",
		Long: `Start the dispatcher and answer one JSON command per line on stdin.

Each line is {"action": "<name>", "args": ["..."]}; each answer is one line
{"code": "OK|FAIL|BUG", "results": ["..."]} on stdout, in request order.

The store is persisted every persist_freq_s seconds. On EOF or a signal the
trash is cleared and the store is persisted before exit.

Example:
  echo '{"action":"list","args":[]}' | liz serve
  liz serve --watch --dry-run`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(opts, cmd)
		},
	}

	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "reload user sheets when they change")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "log keystrokes instead of sending them")

	return cmd
}

func runServe(opts *ServeOptions, cmd *cobra.Command) error {
	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, cancel := context.WithCancel(parentCtx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case sig := <-sigChan:
			slog.Info("received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	rt, err := openRuntime(ctx, opts.RootOptions, runtimeOptions{DryRun: opts.DryRun, Keyboard: opts.Keyboard})
	if err != nil {
		return err
	}

	var watcher *watch.Watcher
	if opts.Watch {
		watcher, err = startWatcher(ctx, rt)
		if err != nil {
			rt.Close()
			return WrapExitError(ExitFailure, "failed to watch sheets", err)
		}
	}

	var persistTick <-chan time.Time
	if freq := rt.Rhythm.PersistFreqS; freq > 0 {
		ticker := time.NewTicker(time.Duration(freq) * time.Second)
		defer ticker.Stop()
		persistTick = ticker.C
	}

	slog.Info("serving", "data_dir", rt.Rhythm.LizPath, "watch", opts.Watch)

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetEscapeHTML(false)
	lines := readLines(ctx, cmd.InOrStdin())

loop:
	for {
		select {
		case <-ctx.Done():
			break loop

		case <-persistTick:
			if resp := rt.Engine.Submit(ctx, engine.Persist{}); resp.Code != engine.OK {
				slog.Warn("periodic persist failed", "code", resp.Code, "results", resp.Results)
			}

		case line, ok := <-lines:
			if !ok {
				break loop
			}
			if err := enc.Encode(dispatchLine(ctx, rt.Engine, line)); err != nil {
				slog.Error("writing response", "error", err)
				break loop
			}
		}
	}

	if watcher != nil {
		watcher.Stop()
	}
	return rt.shutdown()
}

// dispatchLine decodes one JSON command and runs it. A line that is not a
// command object is answered BUG.
func dispatchLine(ctx context.Context, eng *engine.Engine, line string) engine.Response {
	var command engine.Command
	if err := json.Unmarshal([]byte(line), &command); err != nil {
		slog.Warn("malformed command", "error", err)
		return engine.Response{Code: engine.BUG, Results: []string{"malformed command: " + err.Error()}}
	}
	return eng.Dispatch(ctx, command)
}

// readLines streams non-blank lines from r until EOF or ctx ends.
func readLines(ctx context.Context, r io.Reader) <-chan string {
	out := make(chan string)
	go func() {
		defer close(out)
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 64*1024), maxLineBytes)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			select {
			case out <- line:
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil {
			slog.Error("reading commands", "error", err)
		}
	}()
	return out
}

// startWatcher reloads the user sheets directory whenever it changes.
func startWatcher(ctx context.Context, rt *Runtime) (*watch.Watcher, error) {
	dir := rt.Rhythm.UserSheetsPath
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	w, err := watch.New(dir, 0, func(ctx context.Context) {
		resp := rt.Engine.Submit(ctx, engine.Reload{})
		if resp.Code != engine.OK {
			slog.Warn("sheet reload failed", "code", resp.Code, "results", resp.Results)
			return
		}
		slog.Info("sheets reloaded", "dir", dir)
	})
	if err != nil {
		return nil, err
	}
	if err := w.Start(ctx); err != nil {
		w.Stop()
		return nil, err
	}
	return w, nil
}
