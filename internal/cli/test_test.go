package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runTestCommand(t *testing.T, format string, args ...string) (*bytes.Buffer, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := NewTestCommand(&RootOptions{Format: format})
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	return buf, cmd.Execute()
}

func TestTest_AllScenariosPass(t *testing.T) {
	buf, err := runTestCommand(t, "json", "testdata/scenarios")
	require.NoError(t, err)

	var resp struct {
		Data TestResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, 2, resp.Data.Total)
	assert.Equal(t, 2, resp.Data.Passed)
	assert.Equal(t, 0, resp.Data.Failed)
}

func TestTest_TextOutput(t *testing.T) {
	buf, err := runTestCommand(t, "text", "testdata/scenarios")
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "PASS  x_in_z_basis")
	assert.Contains(t, out, "PASS  z_basis")
	assert.Contains(t, out, "2 passed, 0 failed, 2 total")
}

func TestTest_Filter(t *testing.T) {
	buf, err := runTestCommand(t, "json", "testdata/scenarios", "--filter", "z_basis")
	require.NoError(t, err)

	var resp struct {
		Data TestResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	require.Equal(t, 1, resp.Data.Total)
	assert.Equal(t, "z_basis", resp.Data.Scenarios[0].Name)
}

func TestTest_FailingScenarioExitsOne(t *testing.T) {
	dir := t.TempDir()
	defs, err := filepath.Abs("testdata/definitions")
	require.NoError(t, err)

	scenario := `name: wrong_expectation
description: Z answers proper, scenario expects max.
definitions: ` + defs + `
steps:
  - enter: ZBasis
  - evaluate: {observable: Z, eigenvalue: 1}
    expect: {verdict: max}
  - exit: ZBasis
assertions:
  - type: final_verdict
    verdict: max
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "wrong.yaml"), []byte(scenario), 0o644))

	buf, err := runTestCommand(t, "json", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp struct {
		Data TestResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	require.Equal(t, 1, resp.Data.Failed)
	assert.NotEmpty(t, resp.Data.Scenarios[0].Errors)
}

func TestTest_CommandErrors(t *testing.T) {
	t.Run("missing_directory", func(t *testing.T) {
		_, err := runTestCommand(t, "text", "testdata/absent")
		require.Error(t, err)
		assert.Equal(t, ExitCommandError, GetExitCode(err))
	})

	t.Run("no_scenarios", func(t *testing.T) {
		_, err := runTestCommand(t, "text", t.TempDir())
		require.Error(t, err)
		assert.Equal(t, ExitCommandError, GetExitCode(err))
		assert.Contains(t, err.Error(), "no scenario files")
	})

	t.Run("broken_scenario_file", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("name: s\n"), 0o644))

		_, err := runTestCommand(t, "text", dir)
		require.Error(t, err)
		assert.Equal(t, ExitCommandError, GetExitCode(err))
	})
}
