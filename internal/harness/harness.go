package harness

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/roach88/liz/internal/compiler"
	"github.com/roach88/liz/internal/config"
	"github.com/roach88/liz/internal/engine"
	"github.com/roach88/liz/internal/inject"
	"github.com/roach88/liz/internal/store"
	"github.com/roach88/liz/internal/testutil"
)

// Harness is the scenario execution engine.
// It owns one dispatcher, its store and the recording keyboard.
type Harness struct {
	engine   *engine.Engine
	store    *store.Store
	keyboard *testutil.RecordingKeyboard
}

// Run executes a scenario and returns the result.
//
// Each scenario runs against a fresh store, with its data directory in a
// temporary directory that is removed afterwards. Pacing is disabled so
// runs take no wall-clock time.
//
// Execution flow:
// 1. Build the engine with the scenario keymap and keyboard
// 2. Execute setup steps; any non-OK answer aborts the run
// 3. Execute flow steps with expect validation
// 4. Stop the engine and evaluate assertions on the final store
func Run(scenario *Scenario) (*Result, error) {
	workDir, err := os.MkdirTemp("", "liz-scenario-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create work dir: %w", err)
	}
	defer os.RemoveAll(workDir)

	h := newHarness(scenario, workDir)
	ctx := context.Background()
	h.engine.Start(ctx)

	result := NewResult()
	if err := h.executeSetup(ctx, scenario.Setup, result); err != nil {
		h.engine.Close()
		return nil, fmt.Errorf("failed to execute setup: %w", err)
	}
	h.executeFlow(ctx, scenario.Flow, result)

	// Close waits for the loop, so the store is ours to read afterwards.
	h.engine.Close()
	result.Keys = h.keyboard.String()
	result.Active = h.store.Active()
	result.Deleted = h.store.Deleted()

	for _, errMsg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(errMsg)
	}

	slog.Debug("scenario finished", "name", scenario.Name, "pass", result.Pass, "steps", len(result.Trace))
	return result, nil
}

func newHarness(scenario *Scenario, workDir string) *Harness {
	rhythm := config.Default(workDir)
	rhythm.IntervalMS = 0
	rhythm.JournalPath = ""
	if scenario.PrintFmt != "" {
		rhythm.ShortcutPrintFmt = scenario.PrintFmt
	}

	kb := testutil.NewRecordingKeyboard()
	if scenario.KeyboardFailAfter != nil {
		kb = testutil.NewFailingKeyboard(*scenario.KeyboardFailAfter)
	}

	st := store.New()
	player := inject.NewPlayer(kb, inject.WithSleep(func(time.Duration) {}))

	return &Harness{
		engine: engine.New(rhythm, player,
			engine.WithStore(st),
			engine.WithKeymap(compiler.NewKeymap(scenario.Keymap)),
		),
		store:    st,
		keyboard: kb,
	}
}

// dispatch sends one step and records it in the trace.
func (h *Harness) dispatch(ctx context.Context, phase string, step Step, result *Result) engine.Response {
	before := len(h.keyboard.Events())
	resp := h.engine.Dispatch(ctx, engine.Command{Action: step.Action, Args: step.Args})
	keys := h.keyboard.Events()[before:]

	result.AddTrace(TraceEvent{
		Seq:     int64(len(result.Trace) + 1),
		Phase:   phase,
		Action:  step.Action,
		Args:    step.Args,
		Code:    resp.Code,
		Results: resp.Results,
		Keys:    strings.Join(keys, " "),
	})
	return resp
}

// executeSetup runs all setup steps. Setup establishes state, so anything
// other than OK is an error in the scenario itself.
func (h *Harness) executeSetup(ctx context.Context, setup []Step, result *Result) error {
	for i, step := range setup {
		resp := h.dispatch(ctx, PhaseSetup, step, result)
		if resp.Code != engine.OK {
			return fmt.Errorf("setup[%d]: %s answered %s: %s", i, step.Action, resp.Code, strings.Join(resp.Results, "; "))
		}
	}
	return nil
}

// executeFlow runs all flow steps and validates expect clauses.
func (h *Harness) executeFlow(ctx context.Context, flow []Step, result *Result) {
	for i, step := range flow {
		resp := h.dispatch(ctx, PhaseFlow, step, result)
		if step.Expect == nil {
			continue
		}
		for _, msg := range checkExpect(step.Expect, resp) {
			result.AddError(fmt.Sprintf("flow[%d] %s: %s", i, step.Action, msg))
		}
	}
}

func checkExpect(expect *Expect, resp engine.Response) []string {
	var errs []string
	if string(resp.Code) != expect.Code {
		errs = append(errs, fmt.Sprintf("expected code %s, got %s %v", expect.Code, resp.Code, resp.Results))
	}
	if expect.Results != nil && !slices.Equal(expect.Results, resp.Results) {
		errs = append(errs, fmt.Sprintf("expected results %q, got %q", expect.Results, resp.Results))
	}
	if expect.Contains != "" && !slices.ContainsFunc(resp.Results, func(r string) bool {
		return strings.Contains(r, expect.Contains)
	}) {
		errs = append(errs, fmt.Sprintf("expected a result containing %q, got %q", expect.Contains, resp.Results))
	}
	return errs
}
