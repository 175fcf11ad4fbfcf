package harness

import (
	"github.com/roach88/liz/internal/engine"
	"github.com/roach88/liz/internal/shortcut"
)

// Phases of a scenario run.
const (
	PhaseSetup = "setup"
	PhaseFlow  = "flow"
)

// TraceEvent is one dispatched command and the response it produced.
type TraceEvent struct {
	Seq     int64       `json:"seq"`
	Phase   string      `json:"phase"`
	Action  string      `json:"action"`
	Args    []string    `json:"args"`
	Code    engine.Code `json:"code"`
	Results []string    `json:"results"`
	// Keys holds the keystrokes sent while this command ran.
	Keys string `json:"keys,omitempty"`
}

// Result is the outcome of a scenario run.
type Result struct {
	// Pass is true when every expect clause and assertion held.
	Pass bool `json:"pass"`

	// Trace lists setup and flow commands in dispatch order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains validation error messages.
	Errors []string `json:"errors,omitempty"`

	// Keys is every keystroke sent during the run.
	Keys string `json:"keys"`

	// Active and Deleted are the store partitions after the run.
	Active  []shortcut.Shortcut `json:"active"`
	Deleted []shortcut.Shortcut `json:"deleted"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:    true,
		Trace:   []TraceEvent{},
		Errors:  []string{},
		Active:  []shortcut.Shortcut{},
		Deleted: []shortcut.Shortcut{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddTrace appends a dispatched command to the trace.
func (r *Result) AddTrace(ev TraceEvent) {
	if ev.Args == nil {
		ev.Args = []string{}
	}
	if ev.Results == nil {
		ev.Results = []string{}
	}
	r.Trace = append(r.Trace, ev)
}
