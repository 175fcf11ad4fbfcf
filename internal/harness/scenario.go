package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/liz/internal/engine"
	"github.com/roach88/liz/internal/shortcut"
)

// Scenario defines a shortcut scenario: commands to run and what must hold
// afterwards.
type Scenario struct {
	// Name uniquely identifies this scenario. It also names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario checks.
	Description string `yaml:"description"`

	// Keymap maps key names to device codes. Empty means literal names.
	Keymap map[string]string `yaml:"keymap,omitempty"`

	// PrintFmt overrides shortcut_print_fmt for list output.
	PrintFmt string `yaml:"print_fmt,omitempty"`

	// KeyboardFailAfter makes the keyboard fail once it has accepted this
	// many events. Nil means it never fails.
	KeyboardFailAfter *int `yaml:"keyboard_fail_after,omitempty"`

	// Setup runs before the flow. Every setup command must answer OK.
	Setup []Step `yaml:"setup,omitempty"`

	// Flow is the main sequence of commands, each optionally checked.
	Flow []Step `yaml:"flow"`

	// Assertions check the keyboard trace and final store.
	Assertions []Assertion `yaml:"assertions"`
}

// Step is one command sent to the dispatcher.
type Step struct {
	Action string   `yaml:"action"`
	Args   []string `yaml:"args,omitempty"`

	// Expect checks the response. If nil, any response is accepted.
	Expect *Expect `yaml:"expect,omitempty"`
}

// Expect specifies the expected response.
type Expect struct {
	// Code is OK, FAIL or BUG.
	Code string `yaml:"code"`

	// Results, when set, must equal the response results exactly.
	Results []string `yaml:"results,omitempty"`

	// Contains, when set, must be a substring of at least one result.
	Contains string `yaml:"contains,omitempty"`
}

// Assertion validates the keyboard trace or the final store.
type Assertion struct {
	// Type specifies the assertion type:
	// - "keys": every keystroke of the run equals Keys
	// - "hits": the active shortcut ID has exactly Count hits
	// - "active_count": the active partition holds Count shortcuts
	// - "deleted_count": the deleted partition holds Count shortcuts
	// - "active_order": the active partition is exactly IDs, in order
	Type string `yaml:"type"`

	Keys  string   `yaml:"keys,omitempty"`
	ID    string   `yaml:"id,omitempty"`
	IDs   []string `yaml:"ids,omitempty"`
	Count int      `yaml:"count,omitempty"`
}

// Assertion type constants.
const (
	AssertKeys         = "keys"
	AssertHits         = "hits"
	AssertActiveCount  = "active_count"
	AssertDeletedCount = "deleted_count"
	AssertActiveOrder  = "active_order"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict decoding catches typos like "assertion:" vs "assertions:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if len(s.Flow) == 0 {
		return fmt.Errorf("flow list is required and must be non-empty")
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	if s.KeyboardFailAfter != nil && *s.KeyboardFailAfter < 0 {
		return fmt.Errorf("keyboard_fail_after must be non-negative")
	}

	for i, step := range s.Setup {
		if step.Action == "" {
			return fmt.Errorf("setup[%d]: action is required", i)
		}
	}

	for i, step := range s.Flow {
		if step.Action == "" {
			return fmt.Errorf("flow[%d]: action is required", i)
		}
		if step.Expect != nil {
			switch engine.Code(step.Expect.Code) {
			case engine.OK, engine.FAIL, engine.BUG:
			default:
				return fmt.Errorf("flow[%d].expect: code must be OK, FAIL or BUG, got %q", i, step.Expect.Code)
			}
		}
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertKeys:
		// An empty Keys asserts that nothing was typed.
	case AssertHits:
		if _, err := shortcut.ParseID(a.ID); err != nil {
			return fmt.Errorf("assertions[%d]: hits needs a valid id: %w", index, err)
		}
	case AssertActiveOrder:
		for _, id := range a.IDs {
			if _, err := shortcut.ParseID(id); err != nil {
				return fmt.Errorf("assertions[%d]: active_order id %q: %w", index, id, err)
			}
		}
	case AssertActiveCount, AssertDeletedCount:
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	if a.Count < 0 {
		return fmt.Errorf("assertions[%d]: count must be non-negative", index)
	}

	return nil
}
