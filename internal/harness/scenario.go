package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Scenario defines a measurement scenario: which definitions to load,
// which contexts to enter, which propositions to evaluate and what the
// trace must look like afterwards.
type Scenario struct {
	// Name uniquely identifies this scenario; it also names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario demonstrates.
	Description string `yaml:"description"`

	// Definitions is the directory of CUE definition files, relative to
	// the scenario file location.
	Definitions string `yaml:"definitions"`

	// ScopeToken is an optional fixed scope token. Defaults to
	// "test-scope-default" so golden traces are stable.
	ScopeToken string `yaml:"scope_token,omitempty"`

	// Steps is the measurement sequence.
	Steps []Step `yaml:"steps"`

	// Assertions validate the recorded trace after the steps ran.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// Step is one scenario action. Exactly one of Enter, Exit or Evaluate is
// set.
type Step struct {
	// Enter activates the named context.
	Enter string `yaml:"enter,omitempty"`

	// Exit deactivates the named context, which must be the innermost
	// active one.
	Exit string `yaml:"exit,omitempty"`

	// Evaluate asks a proposition under the active context.
	Evaluate *EvaluateStep `yaml:"evaluate,omitempty"`

	// Expect validates the evaluation outcome. Only valid on evaluate
	// steps; nil means the step runs unchecked.
	Expect *ExpectClause `yaml:"expect,omitempty"`
}

// EvaluateStep names the proposition to evaluate: does the observable
// take this eigenvalue.
type EvaluateStep struct {
	Observable string  `yaml:"observable"`
	Eigenvalue float64 `yaml:"eigenvalue"`
}

// ExpectClause specifies the expected outcome of an evaluate step.
type ExpectClause struct {
	// Verdict is the expected classification: undefined, min, max or
	// proper.
	Verdict string `yaml:"verdict"`

	// Size is the expected projector trace in canonical string form, e.g.
	// "1". Empty means unchecked.
	Size string `yaml:"size,omitempty"`
}

// Assertion validates the recorded trace.
type Assertion struct {
	// Type is one of trace_contains, trace_count, trace_order or
	// final_verdict.
	Type string `yaml:"type"`

	// Observable narrows trace_contains and trace_count to one operator.
	Observable string `yaml:"observable,omitempty"`

	// Context narrows trace_contains and trace_count to one context.
	Context string `yaml:"context,omitempty"`

	// Verdict narrows trace_contains and trace_count; for final_verdict
	// it is the expected verdict of the last evaluation.
	Verdict string `yaml:"verdict,omitempty"`

	// Count is the expected number of matches for trace_count.
	Count int `yaml:"count"`

	// Observables is the expected evaluation order for trace_order. It
	// must be a subsequence of the trace.
	Observables []string `yaml:"observables,omitempty"`
}

// Assertion type constants.
const (
	AssertTraceContains = "trace_contains"
	AssertTraceCount    = "trace_count"
	AssertTraceOrder    = "trace_order"
	AssertFinalVerdict  = "final_verdict"
)

// LoadScenario reads and parses a scenario YAML file. The definitions
// directory is resolved relative to the scenario file. Unknown YAML fields
// are rejected so typos fail loudly.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario file: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("parse scenario YAML: %w", err)
	}

	if scenario.Definitions != "" && !filepath.IsAbs(scenario.Definitions) {
		scenario.Definitions = filepath.Join(filepath.Dir(path), scenario.Definitions)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Definitions == "" {
		return fmt.Errorf("definitions directory is required")
	}
	if info, err := os.Stat(s.Definitions); err != nil || !info.IsDir() {
		return fmt.Errorf("definitions directory not found: %s", s.Definitions)
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	for i, step := range s.Steps {
		set := 0
		if step.Enter != "" {
			set++
		}
		if step.Exit != "" {
			set++
		}
		if step.Evaluate != nil {
			set++
		}
		if set != 1 {
			return fmt.Errorf("steps[%d]: exactly one of enter, exit or evaluate is required", i)
		}
		if step.Expect != nil && step.Evaluate == nil {
			return fmt.Errorf("steps[%d]: expect is only valid on evaluate steps", i)
		}
		if step.Evaluate != nil && step.Evaluate.Observable == "" {
			return fmt.Errorf("steps[%d].evaluate: observable is required", i)
		}
		if step.Expect != nil && !validVerdict(step.Expect.Verdict) {
			return fmt.Errorf("steps[%d].expect: unknown verdict %q", i, step.Expect.Verdict)
		}
	}

	for i, a := range s.Assertions {
		if err := validateAssertion(i, &a); err != nil {
			return err
		}
	}
	return nil
}

func validateAssertion(index int, a *Assertion) error {
	switch a.Type {
	case AssertTraceContains:
		if a.Observable == "" && a.Context == "" && a.Verdict == "" {
			return fmt.Errorf("assertions[%d]: trace_contains needs at least one of observable, context or verdict", index)
		}
	case AssertTraceCount:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative", index)
		}
	case AssertTraceOrder:
		if len(a.Observables) == 0 {
			return fmt.Errorf("assertions[%d]: observables list is required for trace_order", index)
		}
	case AssertFinalVerdict:
		if !validVerdict(a.Verdict) {
			return fmt.Errorf("assertions[%d]: unknown verdict %q", index, a.Verdict)
		}
	case "":
		return fmt.Errorf("assertions[%d]: type is required", index)
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	if a.Verdict != "" && !validVerdict(a.Verdict) {
		return fmt.Errorf("assertions[%d]: unknown verdict %q", index, a.Verdict)
	}
	return nil
}

func validVerdict(v string) bool {
	switch v {
	case "undefined", "min", "max", "proper":
		return true
	}
	return false
}
