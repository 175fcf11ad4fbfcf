// Package harness runs shortcut scenarios against a real dispatcher.
//
// A scenario drives an engine backed by an in-memory store and a recording
// keyboard, so every run is deterministic and sends no real keystrokes.
//
// # Scenario Format
//
// Scenarios are YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario checks"
//	keymap:                      # optional, key name -> code
//	  ctrl: "29"
//	print_fmt: "#description"    # optional shortcut_print_fmt
//	keyboard_fail_after: 2       # optional, keyboard fails after n events
//	setup:                       # commands that must answer OK
//	  - action: create
//	    args: ['{"id": "...", "shortcut": "ctrl+c"}']
//	flow:
//	  - action: execute
//	    args: ["..."]
//	    expect:
//	      code: OK
//	      results: []            # optional, exact match
//	      contains: "..."        # optional, substring of some result
//	assertions:
//	  - type: keys
//	    keys: "29.1 c.1 c.0 29.0"
//	  - type: hits
//	    id: "..."
//	    count: 1
//	  - type: active_count
//	    count: 1
//	  - type: deleted_count
//	    count: 0
//	  - type: active_order
//	    ids: ["...", "..."]
//
// Shortcuts created without an explicit id get a random one, so scenarios
// compared against golden traces should always name their ids.
//
// # Golden Files
//
// RunWithGolden compares the trace of a run with
// testdata/golden/<name>.golden. Regenerate with:
//
//	go test ./internal/harness -update
package harness
