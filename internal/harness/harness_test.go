package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func qubitDefinitions(t *testing.T) string {
	t.Helper()
	dir, err := filepath.Abs("testdata/definitions")
	require.NoError(t, err)
	return dir
}

func zBasisScenario(t *testing.T) *Scenario {
	t.Helper()
	return &Scenario{
		Name:        "z_basis_measurement",
		Description: "Z inside its own basis",
		Definitions: qubitDefinitions(t),
		Steps: []Step{
			{Enter: "ZBasis"},
			{
				Evaluate: &EvaluateStep{Observable: "Z", Eigenvalue: 1},
				Expect:   &ExpectClause{Verdict: "proper", Size: "1"},
			},
			{
				Evaluate: &EvaluateStep{Observable: "Z", Eigenvalue: 2},
				Expect:   &ExpectClause{Verdict: "min", Size: "0"},
			},
			{
				Evaluate: &EvaluateStep{Observable: "X", Eigenvalue: 1},
				Expect:   &ExpectClause{Verdict: "undefined"},
			},
			{Exit: "ZBasis"},
		},
	}
}

func TestRun_ZBasisScenario(t *testing.T) {
	result, err := Run(zBasisScenario(t))
	require.NoError(t, err)

	assert.True(t, result.Pass, "errors: %v", result.Errors)
	require.Len(t, result.Trace, 3)

	assert.Equal(t, TraceEvent{
		Observable: "Z", Context: "ZBasis", Eigenvalue: "1",
		Verdict: "proper", Size: "1", Seq: 1,
	}, result.Trace[0])
	assert.Equal(t, "min", result.Trace[1].Verdict)
	assert.Equal(t, "undefined", result.Trace[2].Verdict)
	assert.Equal(t, "", result.Trace[2].Size, "undefined answers carry no size")
}

func TestRun_ExpectMismatchFailsResult(t *testing.T) {
	scenario := zBasisScenario(t)
	scenario.Steps[1].Expect.Verdict = "max"

	result, err := Run(scenario)
	require.NoError(t, err)

	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "answered proper, expected max")
}

func TestRun_EvaluationOutsideContext(t *testing.T) {
	// No active context: the observable answers from its own spectrum and
	// the record carries an empty context name.
	result, err := Run(&Scenario{
		Name:        "context_free",
		Definitions: qubitDefinitions(t),
		Steps: []Step{
			{
				Evaluate: &EvaluateStep{Observable: "Z", Eigenvalue: 1},
				Expect:   &ExpectClause{Verdict: "proper", Size: "1"},
			},
		},
	})
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Equal(t, "", result.Trace[0].Context)
}

func TestRun_NestedContexts(t *testing.T) {
	result, err := Run(&Scenario{
		Name:        "nested",
		Definitions: qubitDefinitions(t),
		Steps: []Step{
			{Enter: "ZBasis"},
			{Enter: "XBasis"},
			{
				Evaluate: &EvaluateStep{Observable: "X", Eigenvalue: 1},
				Expect:   &ExpectClause{Verdict: "proper"},
			},
			{Exit: "XBasis"},
			{
				Evaluate: &EvaluateStep{Observable: "Z", Eigenvalue: -1},
				Expect:   &ExpectClause{Verdict: "proper"},
			},
			{Exit: "ZBasis"},
		},
	})
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)

	require.Len(t, result.Trace, 2)
	assert.Equal(t, "XBasis", result.Trace[0].Context)
	assert.Equal(t, "ZBasis", result.Trace[1].Context)
}

func TestRun_ScenarioErrors(t *testing.T) {
	testCases := []struct {
		name    string
		steps   []Step
		wantMsg string
	}{
		{
			name:    "unknown_context",
			steps:   []Step{{Enter: "Ghost"}},
			wantMsg: `unknown context "Ghost"`,
		},
		{
			name: "unknown_observable",
			steps: []Step{
				{Enter: "ZBasis"},
				{Evaluate: &EvaluateStep{Observable: "Q", Eigenvalue: 1}},
			},
			wantMsg: `unknown observable "Q"`,
		},
		{
			name:    "exit_without_enter",
			steps:   []Step{{Exit: "ZBasis"}},
			wantMsg: "no active context",
		},
		{
			name: "exit_out_of_order",
			steps: []Step{
				{Enter: "ZBasis"},
				{Enter: "XBasis"},
				{Exit: "ZBasis"},
			},
			wantMsg: `innermost context is "XBasis"`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Run(&Scenario{
				Name:        tc.name,
				Definitions: qubitDefinitions(t),
				Steps:       tc.steps,
			})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantMsg)
		})
	}
}

func TestLoadScenario(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/z_basis_measurement.yaml")
	require.NoError(t, err)

	assert.Equal(t, "z_basis_measurement", scenario.Name)
	assert.Len(t, scenario.Steps, 5)
	assert.Len(t, scenario.Assertions, 4)
	assert.True(t, filepath.IsAbs(scenario.Definitions) || scenario.Definitions != "../definitions",
		"definitions path is resolved relative to the scenario file")

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
}

func writeScenarioFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadScenario_Invalid(t *testing.T) {
	defs := qubitDefinitions(t)

	testCases := []struct {
		name    string
		content string
		wantMsg string
	}{
		{
			name:    "unknown_field",
			content: "name: s\ndefinitions: " + defs + "\nassertion: []\nsteps:\n  - enter: ZBasis\n",
			wantMsg: "field assertion not found",
		},
		{
			name:    "missing_steps",
			content: "name: s\ndefinitions: " + defs + "\n",
			wantMsg: "steps list is required",
		},
		{
			name:    "step_with_two_actions",
			content: "name: s\ndefinitions: " + defs + "\nsteps:\n  - enter: ZBasis\n    exit: ZBasis\n",
			wantMsg: "exactly one of enter, exit or evaluate",
		},
		{
			name:    "expect_on_enter",
			content: "name: s\ndefinitions: " + defs + "\nsteps:\n  - enter: ZBasis\n    expect: {verdict: min}\n",
			wantMsg: "expect is only valid on evaluate steps",
		},
		{
			name:    "bad_verdict",
			content: "name: s\ndefinitions: " + defs + "\nsteps:\n  - evaluate: {observable: Z, eigenvalue: 1}\n    expect: {verdict: perhaps}\n",
			wantMsg: `unknown verdict "perhaps"`,
		},
		{
			name:    "missing_definitions",
			content: "name: s\nsteps:\n  - enter: ZBasis\n",
			wantMsg: "definitions directory is required",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadScenario(writeScenarioFile(t, tc.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantMsg)
		})
	}
}
