package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/liz/internal/engine"
	"github.com/roach88/liz/internal/journal"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Limit int
	Stats bool
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded executions",
		Long: `Show shortcut executions recorded in the journal, newest first.

With --stats, print per-shortcut success and failure counts instead.

Example:
  liz history --limit 50
  liz history --stats --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", engine.DefaultHistoryLimit, "number of entries (0 for all)")
	cmd.Flags().BoolVar(&opts.Stats, "stats", false, "show per-shortcut counts")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	rhythm, _, err := loadRhythm(opts.RootOptions)
	if err != nil {
		return err
	}
	if rhythm.JournalPath == "" {
		return NewExitError(ExitCommandError, "journal disabled: journal_path is empty")
	}

	j, err := journal.Open(rhythm.JournalPath)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to open journal", err)
	}
	defer j.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if opts.Stats {
		stats, err := j.Stats(ctx)
		if err != nil {
			return WrapExitError(ExitFailure, "failed to read journal", err)
		}
		if opts.Format == "json" {
			return formatter.Success(stats)
		}
		return formatter.Success(renderStats(stats))
	}

	entries, err := j.Recent(ctx, opts.Limit)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to read journal", err)
	}
	if opts.Format == "json" {
		return formatter.Success(entries)
	}
	return formatter.Success(renderEntries(entries))
}

func renderEntries(entries []journal.Entry) string {
	if len(entries) == 0 {
		return "No executions recorded"
	}

	var sb strings.Builder
	for i, e := range entries {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "%6d  %s  %s  %s  %s",
			e.Seq,
			dimStyle.Render(e.At.Format(time.DateTime)),
			codeLabel(engine.Code(e.Outcome)),
			e.ShortcutID,
			e.Notation,
		)
		if e.Message != "" {
			sb.WriteString("  " + dimStyle.Render(e.Message))
		}
	}
	return sb.String()
}

func renderStats(stats []journal.Stat) string {
	if len(stats) == 0 {
		return "No executions recorded"
	}

	var sb strings.Builder
	for i, s := range stats {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "%s  ok=%d fail=%d  last %s",
			s.ShortcutID, s.OK, s.Fail, dimStyle.Render(s.LastAt.Format(time.DateTime)))
	}
	return sb.String()
}
