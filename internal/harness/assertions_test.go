package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/liz/internal/engine"
	"github.com/roach88/liz/internal/shortcut"
	"github.com/roach88/liz/internal/testutil"
)

func sampleResult() *Result {
	r := NewResult()
	r.AddTrace(TraceEvent{Seq: 1, Phase: PhaseFlow, Action: "execute", Args: []string{id1}, Code: engine.OK})
	r.Keys = "29.1 c.1 c.0 29.0"

	hit := testutil.Shortcut(1, "ctrl+c", "term", "copy")
	hit.HitNumber = 3
	r.Active = []shortcut.Shortcut{hit, testutil.Shortcut(2, "ctrl+v", "term", "paste")}
	r.Deleted = []shortcut.Shortcut{testutil.Shortcut(3, "ctrl+z", "term", "undo")}
	return r
}

func TestEvaluateAssertions_Pass(t *testing.T) {
	errs := EvaluateAssertions(sampleResult(), []Assertion{
		{Type: AssertKeys, Keys: "29.1 c.1 c.0 29.0"},
		{Type: AssertHits, ID: id1, Count: 3},
		{Type: AssertHits, ID: id2, Count: 0},
		{Type: AssertActiveCount, Count: 2},
		{Type: AssertDeletedCount, Count: 1},
		{Type: AssertActiveOrder, IDs: []string{id1, id2}},
	})
	assert.Empty(t, errs)
}

func TestEvaluateAssertions_Failures(t *testing.T) {
	tests := []struct {
		name      string
		assertion Assertion
		want      string
	}{
		{"keys", Assertion{Type: AssertKeys, Keys: "c.1 c.0"}, `Expected: "c.1 c.0"`},
		{"hits", Assertion{Type: AssertHits, ID: id1, Count: 1}, "Actual: 3 hits"},
		{"hits missing", Assertion{Type: AssertHits, ID: "00000000-0000-0000-0000-000000000003", Count: 1}, "not in the active partition"},
		{"active count", Assertion{Type: AssertActiveCount, Count: 5}, "Expected: 5 shortcuts"},
		{"deleted count", Assertion{Type: AssertDeletedCount, Count: 0}, "Actual: 1 shortcuts"},
		{"order", Assertion{Type: AssertActiveOrder, IDs: []string{id2, id1}}, "Assertion failed: active_order"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := EvaluateAssertions(sampleResult(), []Assertion{tt.assertion})
			require.Len(t, errs, 1)
			assert.Contains(t, errs[0], "assertions[0]")
			assert.Contains(t, errs[0], tt.want)
		})
	}
}

func TestAssertionError_IncludesTrace(t *testing.T) {
	err := &AssertionError{
		Type:     AssertKeys,
		Expected: `"a"`,
		Actual:   `"b"`,
		Trace:    sampleResult().Trace,
	}
	msg := err.Error()
	assert.Contains(t, msg, "Full trace:")
	assert.Contains(t, msg, "[1] execute")
	assert.Contains(t, msg, "-> OK")
}

func TestResult_AddError(t *testing.T) {
	r := NewResult()
	assert.True(t, r.Pass)
	r.AddError("boom")
	assert.False(t, r.Pass)
	assert.Equal(t, []string{"boom"}, r.Errors)
}

func TestResult_AddTraceNormalizesSlices(t *testing.T) {
	r := NewResult()
	r.AddTrace(TraceEvent{Action: "info"})
	assert.NotNil(t, r.Trace[0].Args)
	assert.NotNil(t, r.Trace[0].Results)
}
