package harness

import (
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/liz/internal/shortcut"
)

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string       // Assertion type for categorization
	Expected string       // Human-readable expected outcome
	Actual   string       // Human-readable actual outcome
	Trace    []TraceEvent // Full trace for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Trace) > 0 {
		fmt.Fprintf(&buf, "\nFull trace:\n")
		for _, event := range e.Trace {
			fmt.Fprintf(&buf, "  [%d] %s %v -> %s\n", event.Seq, event.Action, event.Args, event.Code)
		}
	}

	return buf.String()
}

// EvaluateAssertions checks every assertion against result and returns one
// message per failure.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var errs []string
	for i, a := range assertions {
		if err := evaluate(result, a); err != nil {
			errs = append(errs, fmt.Sprintf("assertions[%d]: %v", i, err))
		}
	}
	return errs
}

func evaluate(result *Result, a Assertion) error {
	switch a.Type {
	case AssertKeys:
		return assertKeys(result, a)
	case AssertHits:
		return assertHits(result, a)
	case AssertActiveCount:
		return assertCount(result, a.Type, len(result.Active), a.Count)
	case AssertDeletedCount:
		return assertCount(result, a.Type, len(result.Deleted), a.Count)
	case AssertActiveOrder:
		return assertActiveOrder(result, a)
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
}

// assertKeys compares the whole keystroke log of the run.
func assertKeys(result *Result, a Assertion) error {
	want := strings.Join(strings.Fields(a.Keys), " ")
	if result.Keys == want {
		return nil
	}
	return &AssertionError{
		Type:     AssertKeys,
		Expected: fmt.Sprintf("%q", want),
		Actual:   fmt.Sprintf("%q", result.Keys),
		Trace:    result.Trace,
	}
}

// assertHits checks the hit counter of one active shortcut.
func assertHits(result *Result, a Assertion) error {
	id, err := shortcut.ParseID(a.ID)
	if err != nil {
		return err
	}

	for _, sc := range result.Active {
		if sc.ID != id {
			continue
		}
		if sc.HitNumber == uint64(a.Count) {
			return nil
		}
		return &AssertionError{
			Type:     AssertHits,
			Expected: fmt.Sprintf("%d hits on %s", a.Count, id),
			Actual:   fmt.Sprintf("%d hits", sc.HitNumber),
			Trace:    result.Trace,
		}
	}

	return &AssertionError{
		Type:     AssertHits,
		Expected: fmt.Sprintf("active shortcut %s", id),
		Actual:   "not in the active partition",
		Trace:    result.Trace,
	}
}

func assertCount(result *Result, kind string, got, want int) error {
	if got == want {
		return nil
	}
	return &AssertionError{
		Type:     kind,
		Expected: fmt.Sprintf("%d shortcuts", want),
		Actual:   fmt.Sprintf("%d shortcuts", got),
		Trace:    result.Trace,
	}
}

// assertActiveOrder checks the exact order of the active partition.
func assertActiveOrder(result *Result, a Assertion) error {
	want := make([]shortcut.ID, 0, len(a.IDs))
	for _, s := range a.IDs {
		id, err := shortcut.ParseID(s)
		if err != nil {
			return err
		}
		want = append(want, id)
	}

	got := make([]shortcut.ID, len(result.Active))
	for i, sc := range result.Active {
		got[i] = sc.ID
	}

	if slices.Equal(got, want) {
		return nil
	}
	return &AssertionError{
		Type:     AssertActiveOrder,
		Expected: fmt.Sprintf("%v", want),
		Actual:   fmt.Sprintf("%v", got),
		Trace:    result.Trace,
	}
}
